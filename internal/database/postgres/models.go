package postgres

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/GoArmGo/Playlister/internal/domain"
)

// userModel соответствует таблице users
type userModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

func (userModel) TableName() string {
	return "users"
}

// playlistModel соответствует таблице playlists.
// ID хранится как текст, чтобы принимать идентификаторы из других хранилищ при сидинге.
type playlistModel struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	OwnerEmail string
	Songs      datatypes.JSONSlice[domain.Song] `gorm:"type:jsonb"`
}

func (playlistModel) TableName() string {
	return "playlists"
}

// pairRow — проекция для sqlx
type pairRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

func (m userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           domain.ID(m.ID.String()),
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
	}
}

func (m playlistModel) toDomain() *domain.Playlist {
	songs := make([]domain.Song, len(m.Songs))
	copy(songs, m.Songs)
	return &domain.Playlist{
		ID:         domain.ID(m.ID),
		Name:       m.Name,
		OwnerEmail: m.OwnerEmail,
		Songs:      songs,
	}
}

// parseID переводит нормализованный ID в UUID; некорректный ID означает отсутствие записи
func parseID(id domain.ID) (uuid.UUID, bool) {
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil, false
	}
	return uid, true
}
