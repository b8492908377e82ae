package norg

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized lookup failure taxonomy.
type ErrorCategory string

const (
	// ErrorTimeout indicates NORG took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates NORG returned invalid or malformed data
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates credential or permission issues
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorProviderOutage indicates NORG is unavailable
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorContractMismatch indicates an unexpected status or shape
	ErrorContractMismatch ErrorCategory = "contract_mismatch"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorCancelled indicates the caller gave up before NORG answered
	ErrorCancelled ErrorCategory = "cancelled"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// LookupError wraps lookup failures with a normalized category.
type LookupError struct {
	Category   ErrorCategory
	Message    string
	Underlying error
}

func (e *LookupError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("norg [%s]: %s: %v", e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("norg [%s]: %s", e.Category, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Underlying
}

func newLookupError(category ErrorCategory, message string, underlying error) *LookupError {
	return &LookupError{Category: category, Message: message, Underlying: underlying}
}

// GetCategory extracts the error category from an error.
func GetCategory(err error) ErrorCategory {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Category
	}
	return ErrorInternal
}
