package mongodb

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/GoArmGo/Playlister/internal/domain"
)

// userDocument соответствует документу коллекции users
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    string             `bson:"firstName"`
	LastName     string             `bson:"lastName"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
}

type songDocument struct {
	Title     string `bson:"title"`
	Artist    string `bson:"artist"`
	Year      int    `bson:"year"`
	YouTubeID string `bson:"youTubeId"`
}

// playlistDocument соответствует документу коллекции playlists
type playlistDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	OwnerEmail string             `bson:"ownerEmail"`
	Songs      []songDocument     `bson:"songs"`
}

type pairDocument struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
}

// parseID переводит нормализованный ID в ObjectID.
// Некорректный ID означает отсутствие записи, а не ошибку.
func parseID(id domain.ID) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func formatID(oid primitive.ObjectID) domain.ID {
	return domain.ID(oid.Hex())
}

func newUserDocument(u *domain.User) userDocument {
	return userDocument{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           formatID(d.ID),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
	}
}

func newSongDocuments(songs []domain.Song) []songDocument {
	docs := make([]songDocument, 0, len(songs))
	for _, s := range songs {
		docs = append(docs, songDocument{
			Title:     s.Title,
			Artist:    s.Artist,
			Year:      s.Year,
			YouTubeID: s.ExternalMediaID,
		})
	}
	return docs
}

func (d playlistDocument) toDomain() *domain.Playlist {
	songs := make([]domain.Song, 0, len(d.Songs))
	for _, s := range d.Songs {
		songs = append(songs, domain.Song{
			Title:           s.Title,
			Artist:          s.Artist,
			Year:            s.Year,
			ExternalMediaID: s.YouTubeID,
		})
	}
	return &domain.Playlist{
		ID:         formatID(d.ID),
		Name:       d.Name,
		OwnerEmail: d.OwnerEmail,
		Songs:      songs,
	}
}
