package usecase

import (
	"context"

	"github.com/GoArmGo/Playlister/internal/domain"
)

// RegisterInput — данные регистрации нового пользователя.
type RegisterInput struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	PasswordVerify string
}

// ProfileInput — частичное обновление профиля; nil-поля не меняются.
type ProfileInput struct {
	FirstName *string
	LastName  *string
}

// AccountUseCase описывает сценарии работы с учетными записями.
type AccountUseCase interface {
	// Register создает пользователя с bcrypt-хешем пароля
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)

	// Login проверяет пароль; domain.ErrInvalidCredentials при несовпадении
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// CurrentUser возвращает пользователя сессии или nil, если его больше нет
	CurrentUser(ctx context.Context, id domain.ID) (*domain.User, error)

	UpdateProfile(ctx context.Context, id domain.ID, in ProfileInput) (*domain.User, error)
}
