package domain

import "errors"

// ValidationError describes malformed input for a single field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation errors
var (
	ErrValueNotNumber    = &ValidationError{Field: "value", Message: "value must be a number"}
	ErrValueNegative     = &ValidationError{Field: "value", Message: "value must not be negative"}
	ErrValueTooLarge     = &ValidationError{Field: "value", Message: "value must not exceed 999999999999.99"}
	ErrValuePrecision    = &ValidationError{Field: "value", Message: "value must have at most 2 decimal places"}
	ErrTitleNotString    = &ValidationError{Field: "title", Message: "title must be a string"}
	ErrInvalidType       = &ValidationError{Field: "type", Message: "type must be income or outcome"}
	ErrCategoryNotString = &ValidationError{Field: "category", Message: "category must be a string"}
	ErrCategoryRequired  = &ValidationError{Field: "category", Message: "category must not be empty"}
)

// Domain errors
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryUnresolved  = errors.New("category could not be resolved")
	ErrUploadNotFound      = errors.New("upload not found")
)
