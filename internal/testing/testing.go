// Package testing содержит общие тестовые двойники
package testing

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/GoArmGo/Playlister/internal/core/ports"
	"github.com/GoArmGo/Playlister/internal/domain"
	"github.com/GoArmGo/Playlister/internal/messaging/payloads"
)

var (
	_ ports.DatabaseManager        = (*MemoryDB)(nil)
	_ ports.Resetter               = (*MemoryDB)(nil)
	_ ports.PlaylistEventPublisher = (*RecordingPublisher)(nil)
)

// MemoryDB — хранилище в памяти, реализующее [ports.DatabaseManager].
// Отсутствие записи и ошибка различаются так же, как в настоящих адаптерах.
type MemoryDB struct {
	mu        sync.Mutex
	users     map[domain.ID]domain.User
	playlists map[domain.ID]domain.Playlist

	// Err, если задан, возвращается из каждого вызова хранилища
	Err error
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		users:     map[domain.ID]domain.User{},
		playlists: map[domain.ID]domain.Playlist{},
	}
}

func (m *MemoryDB) Connect(ctx context.Context) error    { return m.Err }
func (m *MemoryDB) Disconnect(ctx context.Context) error { return m.Err }

func (m *MemoryDB) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.users = map[domain.ID]domain.User{}
	m.playlists = map[domain.ID]domain.Playlist{}
	return nil
}

func (m *MemoryDB) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	u := *user
	u.ID = domain.ID(uuid.NewString())
	m.users[u.ID] = u
	return &u, nil
}

func (m *MemoryDB) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MemoryDB) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *MemoryDB) UpdateUser(ctx context.Context, id domain.ID, update domain.UserUpdate) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Email != nil && *update.Email != u.Email {
		for _, other := range m.users {
			if other.Email == *update.Email {
				return nil, domain.ErrEmailTaken
			}
		}
	}
	update.Apply(&u)
	m.users[id] = u
	return &u, nil
}

func (m *MemoryDB) CreatePlaylist(ctx context.Context, playlist *domain.Playlist) (*domain.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p := *playlist
	if p.ID == "" {
		p.ID = domain.ID(uuid.NewString())
	}
	p.Songs = cloneSongs(p.Songs)
	m.playlists[p.ID] = p
	return clonePlaylist(p), nil
}

func (m *MemoryDB) FindPlaylistByID(ctx context.Context, id domain.ID) (*domain.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.playlists[id]
	if !ok {
		return nil, nil
	}
	return clonePlaylist(p), nil
}

func (m *MemoryDB) GetPlaylistPairsByOwner(ctx context.Context, ownerEmail string) ([]domain.PlaylistPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	pairs := []domain.PlaylistPair{}
	for _, p := range m.playlists {
		if p.OwnerEmail == ownerEmail {
			pairs = append(pairs, domain.PlaylistPair{ID: p.ID, Name: p.Name})
		}
	}
	return pairs, nil
}

func (m *MemoryDB) UpdatePlaylist(ctx context.Context, id domain.ID, update domain.PlaylistUpdate) (*domain.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.playlists[id]
	if !ok {
		return nil, domain.ErrPlaylistNotFound
	}
	p.Name = update.Name
	p.Songs = cloneSongs(update.Songs)
	m.playlists[id] = p
	return clonePlaylist(p), nil
}

func (m *MemoryDB) DeletePlaylist(ctx context.Context, id domain.ID) (*domain.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.playlists[id]
	if !ok {
		return nil, nil
	}
	delete(m.playlists, id)
	return clonePlaylist(p), nil
}

func cloneSongs(songs []domain.Song) []domain.Song {
	out := make([]domain.Song, len(songs))
	copy(out, songs)
	return out
}

func clonePlaylist(p domain.Playlist) *domain.Playlist {
	p.Songs = cloneSongs(p.Songs)
	return &p
}

// RecordingPublisher запоминает все опубликованные события
type RecordingPublisher struct {
	mu     sync.Mutex
	events []payloads.PlaylistEvent

	// Err, если задан, возвращается из PublishPlaylistEvent после записи события
	Err error
}

func (p *RecordingPublisher) PublishPlaylistEvent(ctx context.Context, event payloads.PlaylistEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.Err
}

// Events возвращает копию записанных событий
func (p *RecordingPublisher) Events() []payloads.PlaylistEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]payloads.PlaylistEvent, len(p.events))
	copy(out, p.events)
	return out
}

// Types возвращает типы событий в порядке публикации
func (p *RecordingPublisher) Types() []payloads.EventType {
	events := p.Events()
	out := make([]payloads.EventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
