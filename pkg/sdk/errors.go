package askdex

import (
	"fmt"

	"github.com/solistra/askdex/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check for them.
var (
	ErrInvalidInput     = domain.ErrInvalidInput
	ErrRetrievalFailed  = domain.ErrRetrievalFailed
	ErrGenerationFailed = domain.ErrGenerationFailed
)

// APIError is an error response returned by the service. Use errors.As()
// to inspect the status code; sentinel checks with errors.Is() keep
// working because known failures are wrapped with their sentinel.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("askdex: %s (status %d)", e.Message, e.StatusCode)
}
