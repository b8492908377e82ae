package units

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fordeling/pkg/platform/sentinel"
)

// Well-known unit codes referenced by the static rule table.
const (
	CodePensionForeign     = "0001"
	CodePensionDomestic    = "4862"
	CodeDisabilityDomestic = "4476"
	CodeDisabilityForeign  = "4475"
	CodeRepayment          = "4819"
	CodeMissingSubject     = "4303"
	CodeProtected          = "2103"
)

// RequiredCodes must be present in any registry the router is built with.
var RequiredCodes = []string{
	CodePensionForeign,
	CodePensionDomestic,
	CodeDisabilityDomestic,
	CodeDisabilityForeign,
	CodeRepayment,
	CodeMissingSubject,
}

// Unit is an organizational office (enhet) able to handle a case.
type Unit struct {
	Code        string
	DisplayName string
}

// IsZero reports whether u is the empty unit.
func (u Unit) IsZero() bool { return u.Code == "" }

func (u Unit) String() string {
	if u.DisplayName == "" {
		return u.Code
	}
	return u.Code + " " + u.DisplayName
}

// Registry maps unit codes to units. It is immutable after construction and
// safe for concurrent reads.
type Registry struct {
	byCode map[string]Unit
	sorted []Unit
}

// Source supplies the raw unit table.
type Source interface {
	LoadUnits(ctx context.Context) ([]Unit, error)
}

// NewRegistry builds a registry, rejecting empty and duplicate codes.
func NewRegistry(list []Unit) (*Registry, error) {
	byCode := make(map[string]Unit, len(list))
	for _, u := range list {
		code := strings.TrimSpace(u.Code)
		if code == "" {
			return nil, fmt.Errorf("unit with empty code (%q): %w", u.DisplayName, sentinel.ErrInvalidState)
		}
		if _, dup := byCode[code]; dup {
			return nil, fmt.Errorf("duplicate unit code %s: %w", code, sentinel.ErrConflict)
		}
		byCode[code] = Unit{Code: code, DisplayName: strings.TrimSpace(u.DisplayName)}
	}

	sorted := make([]Unit, 0, len(byCode))
	for _, u := range byCode {
		sorted = append(sorted, u)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	return &Registry{byCode: byCode, sorted: sorted}, nil
}

// Load reads the table from src and builds a registry that contains every
// code in RequiredCodes.
func Load(ctx context.Context, src Source) (*Registry, error) {
	list, err := src.LoadUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}
	reg, err := NewRegistry(list)
	if err != nil {
		return nil, err
	}
	if err := reg.Require(RequiredCodes...); err != nil {
		return nil, err
	}
	return reg, nil
}

// Lookup returns the unit for code. An unknown code is not an error.
func (r *Registry) Lookup(code string) (Unit, bool) {
	u, ok := r.byCode[strings.TrimSpace(code)]
	return u, ok
}

// Get returns the unit for a code that Require has already validated.
func (r *Registry) Get(code string) Unit {
	if u, ok := r.byCode[code]; ok {
		return u
	}
	return Unit{Code: code}
}

// Require fails when any of the given codes is missing.
func (r *Registry) Require(codes ...string) error {
	var missing []string
	for _, c := range codes {
		if _, ok := r.byCode[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("unit registry missing codes %s: %w", strings.Join(missing, ","), sentinel.ErrNotFound)
	}
	return nil
}

// All returns every unit ordered by code.
func (r *Registry) All() []Unit {
	out := make([]Unit, len(r.sorted))
	copy(out, r.sorted)
	return out
}

// Len returns the number of registered units.
func (r *Registry) Len() int { return len(r.byCode) }
