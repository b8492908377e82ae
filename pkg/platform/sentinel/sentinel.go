package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Registries, sources and caches
// return these (optionally wrapped) so callers can translate them with
// errors.Is:
//   - ErrNotFound: a unit code or record does not exist
//   - ErrConflict: the same unit code was loaded twice
//   - ErrInvalidState: loaded data violates a structural rule
//   - ErrUnavailable: a backing store or broker cannot be reached
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
