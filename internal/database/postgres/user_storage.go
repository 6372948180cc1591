package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/GoArmGo/Playlister/internal/domain"
)

// CreateUser сохраняет пользователя с UUID, сгенерированным адаптером
func (m *Manager) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	start := time.Now()

	model := userModel{
		ID:           uuid.New(),
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}

	if err := m.conn(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		m.logger.Error("failed to insert user", "email", user.Email, "error", err)
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	m.logger.Info("user created",
		"id", model.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return model.toDomain(), nil
}

func (m *Manager) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model userModel
	err := m.conn(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при поиске пользователя по email: %w", err)
	}
	return model.toDomain(), nil
}

func (m *Manager) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	model, err := m.findUserModel(ctx, uid)
	if err != nil || model == nil {
		return nil, err
	}
	return model.toDomain(), nil
}

func (m *Manager) findUserModel(ctx context.Context, uid uuid.UUID) (*userModel, error) {
	var model userModel
	err := m.conn(ctx).Where("id = ?", uid).First(&model).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при поиске пользователя по ID: %w", err)
	}
	return &model, nil
}

// UpdateUser обновляет только заданные поля
func (m *Manager) UpdateUser(ctx context.Context, id domain.ID, update domain.UserUpdate) (*domain.User, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	model, err := m.findUserModel(ctx, uid)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, domain.ErrUserNotFound
	}
	if update.Empty() {
		return model.toDomain(), nil
	}

	values := map[string]any{}
	if update.FirstName != nil {
		values["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		values["last_name"] = *update.LastName
	}
	if update.Email != nil {
		values["email"] = *update.Email
	}
	if update.PasswordHash != nil {
		values["password_hash"] = *update.PasswordHash
	}

	res := m.conn(ctx).Model(model).Updates(values)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("ошибка при обновлении пользователя %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}

	user := model.toDomain()
	update.Apply(user)

	m.logger.Info("user updated", "id", id)
	return user, nil
}
