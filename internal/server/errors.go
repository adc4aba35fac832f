package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/portfolio-ai/internal/assistant"
	"github.com/jonathan/portfolio-ai/internal/contact"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		questionErr   *assistant.ValidationError
		rejection     *assistant.SecurityRejection
		limitErr      *assistant.RateLimitError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &questionErr),
		errors.As(err, &rejection),
		errors.Is(err, contact.ErrInvalidMessage):
		return http.StatusBadRequest
	case errors.As(err, &limitErr):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
