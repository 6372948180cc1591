// internal/domain/user.go
package domain

import "strings"

// ID — нормализованный идентификатор сущности.
// Для MongoDB это hex-представление ObjectID, для PostgreSQL — строковый UUID.
// Конвертация выполняется один раз внутри каждого адаптера.
type ID string

func (id ID) String() string {
	return string(id)
}

// NormalizeEmail приводит email к виду, в котором он хранится и сравнивается
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User представляет модель пользователя в системе.
// Email глобально уникален и используется как ключ владения плейлистами.
type User struct {
	ID           ID     `json:"_id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// UserUpdate описывает частичное обновление пользователя.
// nil-поля не изменяются.
type UserUpdate struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
}

// Empty сообщает, что обновление не содержит ни одного поля.
func (u UserUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.PasswordHash == nil
}

// Apply применяет обновление к пользователю на месте.
func (u UserUpdate) Apply(user *User) {
	if u.FirstName != nil {
		user.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		user.LastName = *u.LastName
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.PasswordHash != nil {
		user.PasswordHash = *u.PasswordHash
	}
}
