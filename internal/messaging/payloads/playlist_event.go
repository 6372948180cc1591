package payloads

import (
	"time"

	"github.com/GoArmGo/Playlister/internal/domain"
)

// EventType — тип изменения плейлиста.
type EventType string

const (
	PlaylistCreated EventType = "created"
	PlaylistUpdated EventType = "updated"
	PlaylistDeleted EventType = "deleted"
)

// PlaylistEvent передается через RabbitMQ от сервера к воркеру.
// Playlist содержит снимок после изменения (для deleted — последнее состояние).
type PlaylistEvent struct {
	Type       EventType        `json:"type"`
	PlaylistID domain.ID        `json:"playlistId"`
	OwnerEmail string           `json:"ownerEmail"`
	Playlist   *domain.Playlist `json:"playlist,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// NewPlaylistEvent собирает событие по плейлисту.
func NewPlaylistEvent(eventType EventType, playlist *domain.Playlist) PlaylistEvent {
	return PlaylistEvent{
		Type:       eventType,
		PlaylistID: playlist.ID,
		OwnerEmail: playlist.OwnerEmail,
		Playlist:   playlist,
		OccurredAt: time.Now().UTC(),
	}
}

// SnapshotKey — ключ объекта снимка плейлиста в объектном хранилище.
func (e PlaylistEvent) SnapshotKey() string {
	return "playlists/" + e.OwnerEmail + "/" + string(e.PlaylistID) + ".json"
}
