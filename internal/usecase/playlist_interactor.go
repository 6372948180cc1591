package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/Playlister/internal/auth"
	"github.com/GoArmGo/Playlister/internal/core/ports"
	"github.com/GoArmGo/Playlister/internal/domain"
	"github.com/GoArmGo/Playlister/internal/messaging/payloads"
)

// playlistUseCase implements PlaylistUseCase
type playlistUseCase struct {
	db        ports.DatabaseManager
	publisher ports.PlaylistEventPublisher
	logger    *slog.Logger
}

// NewPlaylistUseCase создает сценарии плейлистов.
// publisher получает события после успешной записи.
func NewPlaylistUseCase(
	db ports.DatabaseManager,
	publisher ports.PlaylistEventPublisher,
	logger *slog.Logger,
) PlaylistUseCase {
	return &playlistUseCase{
		db:        db,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *playlistUseCase) CreatePlaylist(ctx context.Context, callerID domain.ID, in CreatePlaylistInput) (*domain.Playlist, error) {
	caller, err := uc.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "обязательное поле")
	}

	owner := domain.NormalizeEmail(in.OwnerEmail)
	if owner == "" {
		owner = caller.Email
	}
	if owner != caller.Email {
		uc.logger.Warn("playlist create for foreign owner rejected",
			"caller_id", callerID,
			"owner", owner,
		)
		return nil, domain.ErrForbidden
	}

	playlist, err := uc.db.CreatePlaylist(ctx, &domain.Playlist{
		Name:       name,
		OwnerEmail: owner,
		Songs:      domain.NormalizeSongs(in.Songs),
	})
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при создании плейлиста: %w", err)
	}

	uc.publish(ctx, payloads.PlaylistCreated, playlist)
	return playlist, nil
}

func (uc *playlistUseCase) GetPlaylist(ctx context.Context, callerID, id domain.ID) (*domain.Playlist, error) {
	return uc.ownedPlaylist(ctx, callerID, id)
}

func (uc *playlistUseCase) UpdatePlaylist(ctx context.Context, callerID, id domain.ID, update domain.PlaylistUpdate) (*domain.Playlist, error) {
	update.Name = strings.TrimSpace(update.Name)
	if update.Name == "" {
		return nil, domain.NewValidationError("name", "обязательное поле")
	}

	if _, err := uc.ownedPlaylist(ctx, callerID, id); err != nil {
		return nil, err
	}

	update.Songs = domain.NormalizeSongs(update.Songs)
	playlist, err := uc.db.UpdatePlaylist(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении плейлиста %s: %w", id, err)
	}

	uc.publish(ctx, payloads.PlaylistUpdated, playlist)
	return playlist, nil
}

func (uc *playlistUseCase) DeletePlaylist(ctx context.Context, callerID, id domain.ID) (*domain.Playlist, error) {
	if _, err := uc.ownedPlaylist(ctx, callerID, id); err != nil {
		return nil, err
	}

	deleted, err := uc.db.DeletePlaylist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при удалении плейлиста %s: %w", id, err)
	}
	if deleted == nil {
		// удален параллельным запросом
		return nil, domain.ErrPlaylistNotFound
	}

	uc.publish(ctx, payloads.PlaylistDeleted, deleted)
	return deleted, nil
}

func (uc *playlistUseCase) GetPlaylistPairs(ctx context.Context, callerID domain.ID) ([]domain.PlaylistPair, error) {
	caller, err := uc.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	pairs, err := uc.db.GetPlaylistPairsByOwner(ctx, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении плейлистов: %w", err)
	}
	if pairs == nil {
		pairs = []domain.PlaylistPair{}
	}
	return pairs, nil
}

// caller загружает пользователя сессии; удаленный пользователь не аутентифицирован
func (uc *playlistUseCase) caller(ctx context.Context, callerID domain.ID) (*domain.User, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	user, err := uc.db.FindUserByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении пользователя %s: %w", callerID, err)
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// ownedPlaylist находит плейлист и проверяет, что вызывающий его владелец
func (uc *playlistUseCase) ownedPlaylist(ctx context.Context, callerID, id domain.ID) (*domain.Playlist, error) {
	playlist, err := uc.db.FindPlaylistByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении плейлиста %s: %w", id, err)
	}
	if playlist == nil {
		return nil, domain.ErrPlaylistNotFound
	}

	owner, err := uc.db.FindUserByEmail(ctx, playlist.OwnerEmail)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении владельца плейлиста: %w", err)
	}

	if err := auth.Authorize(owner, callerID); err != nil {
		uc.logger.Warn("playlist access denied",
			"playlist_id", id,
			"caller_id", callerID,
		)
		return nil, err
	}
	return playlist, nil
}

// publish отправляет событие; ошибка брокера не отменяет уже выполненную запись
func (uc *playlistUseCase) publish(ctx context.Context, eventType payloads.EventType, playlist *domain.Playlist) {
	event := payloads.NewPlaylistEvent(eventType, playlist)
	if err := uc.publisher.PublishPlaylistEvent(ctx, event); err != nil {
		uc.logger.Error("failed to publish playlist event",
			"type", eventType,
			"playlist_id", playlist.ID,
			"error", err,
		)
	}
}
