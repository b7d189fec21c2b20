package models

import "fmt"

// ValidationError описывает ошибку валидации входных данных на границе API
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError создает ошибку валидации для конкретного поля
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
