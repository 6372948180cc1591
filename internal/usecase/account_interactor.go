package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/Playlister/internal/auth"
	"github.com/GoArmGo/Playlister/internal/core/ports"
	"github.com/GoArmGo/Playlister/internal/domain"
)

const (
	minPasswordLength = 8
	// bcrypt учитывает только первые 72 байта
	maxPasswordLength = 72
)

// accountUseCase implements AccountUseCase
type accountUseCase struct {
	db     ports.DatabaseManager
	logger *slog.Logger
}

// NewAccountUseCase создает сценарии учетных записей поверх выбранного хранилища
func NewAccountUseCase(db ports.DatabaseManager, logger *slog.Logger) AccountUseCase {
	return &accountUseCase{db: db, logger: logger}
}

func (uc *accountUseCase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	existing, err := uc.db.FindUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при проверке email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("usecase: %w", err)
	}

	user, err := uc.db.CreateUser(ctx, &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		// гонка двух регистраций ловится уникальным индексом
		return nil, fmt.Errorf("usecase: ошибка при создании пользователя: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

func validateRegistration(in RegisterInput) error {
	switch {
	case in.FirstName == "":
		return domain.NewValidationError("firstName", "обязательное поле")
	case in.LastName == "":
		return domain.NewValidationError("lastName", "обязательное поле")
	case in.Email == "":
		return domain.NewValidationError("email", "обязательное поле")
	case len(in.Password) < minPasswordLength:
		return domain.NewValidationError("password", fmt.Sprintf("минимум %d символов", minPasswordLength))
	case len(in.Password) > maxPasswordLength:
		return domain.NewValidationError("password", fmt.Sprintf("максимум %d байт", maxPasswordLength))
	case in.Password != in.PasswordVerify:
		return domain.NewValidationError("passwordVerify", "пароли не совпадают")
	}
	return nil
}

func (uc *accountUseCase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.db.FindUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при поиске пользователя: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("usecase: %w", err)
	}
	if !ok {
		uc.logger.Warn("login rejected", "user_id", user.ID)
		return nil, domain.ErrInvalidCredentials
	}

	uc.logger.Info("user logged in", "user_id", user.ID)
	return user, nil
}

func (uc *accountUseCase) CurrentUser(ctx context.Context, id domain.ID) (*domain.User, error) {
	user, err := uc.db.FindUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении пользователя %s: %w", id, err)
	}
	return user, nil
}

func (uc *accountUseCase) UpdateProfile(ctx context.Context, id domain.ID, in ProfileInput) (*domain.User, error) {
	update := domain.UserUpdate{}
	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if v == "" {
			return nil, domain.NewValidationError("firstName", "не может быть пустым")
		}
		update.FirstName = &v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if v == "" {
			return nil, domain.NewValidationError("lastName", "не может быть пустым")
		}
		update.LastName = &v
	}

	user, err := uc.db.UpdateUser(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении профиля: %w", err)
	}
	return user, nil
}
