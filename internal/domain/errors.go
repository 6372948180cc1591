package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmailTaken возвращается при попытке создать пользователя с существующим email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound возвращается при обновлении несуществующего пользователя.
	ErrUserNotFound = errors.New("user not found")
	// ErrPlaylistNotFound возвращается, когда плейлист отсутствует.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrForbidden — вызывающий не является владельцем ресурса.
	ErrForbidden = errors.New("access denied")
	// ErrUnauthenticated — запрос без действующей сессии.
	ErrUnauthenticated = errors.New("unauthorized")
	// ErrInvalidCredentials — неверный email или пароль.
	ErrInvalidCredentials = errors.New("wrong email or password")
)

// ValidationError описывает ошибку проверки входных данных.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError создает ошибку валидации для поля.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
