package service

import "fmt"

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
)

// BusinessError - ожидаемая ошибка бизнес-логики.
// Всё, что не BusinessError, наружу уходит как 500.
type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewValidation(message string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewFieldErrors оборачивает карту ошибок валидатора полей:
// наружу уходит именно она, по ошибке на каждое невалидное поле
func NewFieldErrors(fieldErrors map[string]string) *BusinessError {
	details := make(map[string]any, len(fieldErrors))
	for field, msg := range fieldErrors {
		details[field] = msg
	}
	return &BusinessError{
		Code:    CodeValidation,
		Message: "validation failed",
		Details: details,
	}
}

func NewConflict(message string) *BusinessError {
	return &BusinessError{
		Code:    CodeConflict,
		Message: message,
	}
}

func NewNotFound(message string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: message,
	}
}

func NewUnauthorized(message string) *BusinessError {
	return &BusinessError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}
