package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/GoArmGo/Playlister/internal/domain"
)

// CreatePlaylist сохраняет плейлист. Если ID не передан, адаптер генерирует UUID.
func (m *Manager) CreatePlaylist(ctx context.Context, playlist *domain.Playlist) (*domain.Playlist, error) {
	start := time.Now()

	id := string(playlist.ID)
	if id == "" {
		id = uuid.NewString()
	}

	model := playlistModel{
		ID:         id,
		Name:       playlist.Name,
		OwnerEmail: playlist.OwnerEmail,
		Songs:      datatypes.JSONSlice[domain.Song](domain.NormalizeSongs(playlist.Songs)),
	}

	if err := m.conn(ctx).Create(&model).Error; err != nil {
		m.logger.Error("failed to insert playlist", "owner", playlist.OwnerEmail, "error", err)
		return nil, fmt.Errorf("ошибка при создании плейлиста: %w", err)
	}

	m.logger.Info("playlist created",
		"id", model.ID,
		"owner", model.OwnerEmail,
		"songs", len(model.Songs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return model.toDomain(), nil
}

func (m *Manager) FindPlaylistByID(ctx context.Context, id domain.ID) (*domain.Playlist, error) {
	model, err := m.findPlaylistModel(ctx, id)
	if err != nil || model == nil {
		return nil, err
	}
	return model.toDomain(), nil
}

func (m *Manager) findPlaylistModel(ctx context.Context, id domain.ID) (*playlistModel, error) {
	var model playlistModel
	err := m.conn(ctx).Where("id = ?", string(id)).First(&model).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении плейлиста по ID: %w", err)
	}
	return &model, nil
}

// GetPlaylistPairsByOwner выбирает только id и name через sqlx
func (m *Manager) GetPlaylistPairsByOwner(ctx context.Context, ownerEmail string) ([]domain.PlaylistPair, error) {
	start := time.Now()

	var rows []pairRow
	q := `SELECT id, name FROM playlists WHERE owner_email = $1`
	if err := m.db.SelectContext(ctx, &rows, q, ownerEmail); err != nil {
		m.logger.Error("failed to select playlist pairs", "owner", ownerEmail, "error", err)
		return nil, fmt.Errorf("ошибка при получении плейлистов владельца: %w", err)
	}

	pairs := make([]domain.PlaylistPair, 0, len(rows))
	for _, r := range rows {
		pairs = append(pairs, domain.PlaylistPair{ID: domain.ID(r.ID), Name: r.Name})
	}

	m.logger.Debug("playlist pairs loaded",
		"owner", ownerEmail,
		"count", len(pairs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return pairs, nil
}

// UpdatePlaylist полностью заменяет name и songs
func (m *Manager) UpdatePlaylist(ctx context.Context, id domain.ID, update domain.PlaylistUpdate) (*domain.Playlist, error) {
	model, err := m.findPlaylistModel(ctx, id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, domain.ErrPlaylistNotFound
	}

	songs := datatypes.JSONSlice[domain.Song](domain.NormalizeSongs(update.Songs))
	res := m.conn(ctx).Model(model).Updates(map[string]any{
		"name":  update.Name,
		"songs": songs,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("ошибка при обновлении плейлиста %s: %w", id, res.Error)
	}
	// строка удалена между SELECT и UPDATE
	if res.RowsAffected == 0 {
		return nil, domain.ErrPlaylistNotFound
	}

	model.Name = update.Name
	model.Songs = songs

	m.logger.Info("playlist updated", "id", id, "songs", len(songs))
	return model.toDomain(), nil
}

// DeletePlaylist удаляет плейлист и возвращает его предыдущее состояние
func (m *Manager) DeletePlaylist(ctx context.Context, id domain.ID) (*domain.Playlist, error) {
	model, err := m.findPlaylistModel(ctx, id)
	if err != nil || model == nil {
		return nil, err
	}

	res := m.conn(ctx).Delete(&playlistModel{}, "id = ?", model.ID)
	if res.Error != nil {
		return nil, fmt.Errorf("ошибка при удалении плейлиста %s: %w", id, res.Error)
	}
	// удален параллельным запросом
	if res.RowsAffected == 0 {
		return nil, nil
	}

	m.logger.Info("playlist deleted", "id", id)
	return model.toDomain(), nil
}
