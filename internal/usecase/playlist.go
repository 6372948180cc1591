package usecase

import (
	"context"

	"github.com/GoArmGo/Playlister/internal/domain"
)

// CreatePlaylistInput — данные нового плейлиста.
// Пустой OwnerEmail означает email вызывающего.
type CreatePlaylistInput struct {
	Name       string
	OwnerEmail string
	Songs      []domain.Song
}

// PlaylistUseCase описывает сценарии работы с плейлистами.
// callerID — пользователь текущей сессии; все операции проверяют владение.
type PlaylistUseCase interface {
	CreatePlaylist(ctx context.Context, callerID domain.ID, in CreatePlaylistInput) (*domain.Playlist, error)

	// GetPlaylist возвращает domain.ErrPlaylistNotFound или domain.ErrForbidden
	GetPlaylist(ctx context.Context, callerID, id domain.ID) (*domain.Playlist, error)

	// UpdatePlaylist полностью заменяет имя и песни
	UpdatePlaylist(ctx context.Context, callerID, id domain.ID, update domain.PlaylistUpdate) (*domain.Playlist, error)

	DeletePlaylist(ctx context.Context, callerID, id domain.ID) (*domain.Playlist, error)

	// GetPlaylistPairs возвращает {id, name} плейлистов вызывающего; пустой список не ошибка
	GetPlaylistPairs(ctx context.Context, callerID domain.ID) ([]domain.PlaylistPair, error)
}
