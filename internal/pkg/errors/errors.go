package errors

import (
	"errors"
	"fmt"
)

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется, когда учетные данные не подтверждены.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов уникальности (например, занятое имя пользователя).
	ErrConflict = errors.New("resource state conflict")
)

// ClientError несет сообщение, которое можно показать клиенту, и сентинел-ошибку
// для выбора HTTP статуса через errors.Is.
type ClientError struct {
	Kind    error
	Message string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ClientError) Unwrap() error {
	return e.Kind
}

// Validation создает ошибку валидации с сообщением для клиента
func Validation(format string, args ...interface{}) error {
	return &ClientError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflict создает ошибку конфликта с сообщением для клиента
func Conflict(format string, args ...interface{}) error {
	return &ClientError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized создает ошибку аутентификации с сообщением для клиента
func Unauthorized(format string, args ...interface{}) error {
	return &ClientError{Kind: ErrUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// NotFound создает ошибку отсутствия ресурса с сообщением для клиента
func NotFound(format string, args ...interface{}) error {
	return &ClientError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// ClientMessage возвращает сообщение для клиента, если ошибка его несет
func ClientMessage(err error) (string, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Message, true
	}
	return "", false
}

// IsClientError сообщает, вызвана ли ошибка некорректным запросом клиента,
// а не сбоем инфраструктуры.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotFound)
}
