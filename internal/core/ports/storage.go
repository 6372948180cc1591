package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/Playlister/internal/domain"
)

// DatabaseManager определяет единый контракт хранилища пользователей и плейлистов.
// Реализации: MongoDB (документное хранилище) и PostgreSQL (реляционное).
//
// Отсутствие записи при поиске возвращается как (nil, nil), а не как ошибка.
// Обе реализации обязаны возвращать структурно одинаковые результаты.
type DatabaseManager interface {
	// Connect открывает соединение с хранилищем. Вызывается один раз при старте.
	Connect(ctx context.Context) error
	// Disconnect закрывает соединение. Вызывается один раз при остановке.
	Disconnect(ctx context.Context) error

	// CreateUser создает пользователя; возвращает domain.ErrEmailTaken при дубликате email.
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error)
	// UpdateUser частично обновляет пользователя; domain.ErrUserNotFound для неизвестного id.
	UpdateUser(ctx context.Context, id domain.ID, update domain.UserUpdate) (*domain.User, error)

	CreatePlaylist(ctx context.Context, playlist *domain.Playlist) (*domain.Playlist, error)
	FindPlaylistByID(ctx context.Context, id domain.ID) (*domain.Playlist, error)
	// GetPlaylistPairsByOwner возвращает проекции {id, name}; порядок не гарантируется.
	GetPlaylistPairsByOwner(ctx context.Context, ownerEmail string) ([]domain.PlaylistPair, error)
	// UpdatePlaylist полностью заменяет имя и песни; domain.ErrPlaylistNotFound для неизвестного id.
	UpdatePlaylist(ctx context.Context, id domain.ID, update domain.PlaylistUpdate) (*domain.Playlist, error)
	// DeletePlaylist возвращает удаленную запись или nil, если ее не было.
	DeletePlaylist(ctx context.Context, id domain.ID) (*domain.Playlist, error)
}

// Resetter — необязательная возможность хранилища удалить все данные (используется сидингом).
type Resetter interface {
	Reset(ctx context.Context) error
}

// FileStorage определяет интерфейс для работы с объектным хранилищем (AWS S3, MinIO)
type FileStorage interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}
