package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/GoArmGo/Playlister/internal/core/ports"
	"github.com/GoArmGo/Playlister/internal/domain"
)

// SeedData — формат файла начальных данных.
// Пароли хранятся уже захешированными.
type SeedData struct {
	Users []struct {
		FirstName    string `json:"firstName"`
		LastName     string `json:"lastName"`
		Email        string `json:"email"`
		PasswordHash string `json:"passwordHash"`
	} `json:"users"`
	Playlists []domain.Playlist `json:"playlists"`
}

// LoadSeedData читает файл начальных данных
func LoadSeedData(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла данных: %w", err)
	}

	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла данных %s: %w", path, err)
	}

	// email в файле приводится к тому же виду, что и при регистрации
	for i := range data.Users {
		data.Users[i].Email = domain.NormalizeEmail(data.Users[i].Email)
	}
	for i := range data.Playlists {
		data.Playlists[i].OwnerEmail = domain.NormalizeEmail(data.Playlists[i].OwnerEmail)
	}
	return &data, nil
}

// Seed очищает хранилище и заполняет его: сначала пользователи, затем плейлисты.
func Seed(ctx context.Context, db ports.DatabaseManager, data *SeedData, logger *slog.Logger) error {
	resetter, ok := db.(ports.Resetter)
	if !ok {
		return errors.New("хранилище не поддерживает очистку")
	}
	if err := resetter.Reset(ctx); err != nil {
		return err
	}

	for _, u := range data.Users {
		if _, err := db.CreateUser(ctx, &domain.User{
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
		}); err != nil {
			return fmt.Errorf("ошибка создания пользователя %s: %w", u.Email, err)
		}
	}
	logger.Info("users seeded", "count", len(data.Users))

	for i := range data.Playlists {
		p := data.Playlists[i]
		p.Songs = domain.NormalizeSongs(p.Songs)
		if _, err := db.CreatePlaylist(ctx, &p); err != nil {
			return fmt.Errorf("ошибка создания плейлиста %q: %w", p.Name, err)
		}
	}
	logger.Info("playlists seeded", "count", len(data.Playlists))
	return nil
}

func runSeed(ctx context.Context, logger *slog.Logger, db ports.DatabaseManager, path string) error {
	if path == "" {
		return errors.New("для режима seed нужен флаг -data")
	}

	data, err := LoadSeedData(path)
	if err != nil {
		return err
	}
	return Seed(ctx, db, data, logger)
}
