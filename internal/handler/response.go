package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation          = "https://ledger.gofinances.dev/errors/validation"
	ErrorTypeInsufficientBalance = "https://ledger.gofinances.dev/errors/insufficient-balance"
	ErrorTypeNotFound            = "https://ledger.gofinances.dev/errors/not-found"
	ErrorTypeInternal            = "https://ledger.gofinances.dev/errors/internal"
	ErrorTypeServiceUnavailable  = "https://ledger.gofinances.dev/errors/service-unavailable"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewInsufficientBalanceError creates the response for an outcome the balance cannot cover
func NewInsufficientBalanceError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeInsufficientBalance,
		Title:    "Insufficient Balance",
		Status:   http.StatusBadRequest,
		Detail:   domain.ErrInsufficientBalance.Error(),
		Instance: c.Request().URL.Path,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewServiceUnavailableError creates a service unavailable error response
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeServiceUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// respondServiceError maps a service error to a problem details response.
// Unknown errors are logged and reported as an opaque internal error.
func respondServiceError(c echo.Context, err error, detail string) error {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: validationErr.Field, Message: validationErr.Message},
		})
	case errors.Is(err, domain.ErrInsufficientBalance):
		return NewInsufficientBalanceError(c)
	case errors.Is(err, domain.ErrTransactionNotFound):
		return NewNotFoundError(c, "Transaction not found")
	default:
		log.Error().
			Err(err).
			Str("path", c.Request().URL.Path).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg(detail)
		return NewInternalError(c, detail)
	}
}
