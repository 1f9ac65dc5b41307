package domain

import (
	"errors"
	"fmt"
)

// Категории ошибок. Ошибки пакетов оборачивают одну из них,
// чтобы HTTP-слой мог сопоставить статус через errors.Is.
var (
	// ErrValidation ошибка, исправимая клиентом (поле, емкость, окно дат)
	ErrValidation = errors.New("validation error")

	// ErrNotFound ресурс (чанк, суб-бронирование, клиент) не существует
	ErrNotFound = errors.New("not found")

	// ErrConflict атомарная фиксация отклонена: другая аллокация успела раньше
	ErrConflict = errors.New("conflict")

	// ErrAccessDenied ресурс принадлежит другому координатору
	ErrAccessDenied = errors.New("access denied")
)

// ValidationError описывает нарушенное ограничение конкретного поля.
// errors.Is срабатывает и на ErrValidation, и на причину (sentinel пакета).
type ValidationError struct {
	Field  string
	Reason string
	cause  error
}

// Invalid создает ValidationError с причиной cause
func Invalid(cause error, field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
		cause:  cause,
	}
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrValidation}
	}
	return []error{e.cause, ErrValidation}
}
