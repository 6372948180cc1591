// Package mongodb реализует ports.DatabaseManager поверх MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/GoArmGo/Playlister/internal/core/ports"
	"github.com/GoArmGo/Playlister/internal/domain"
)

const (
	usersCollection     = "users"
	playlistsCollection = "playlists"
)

var (
	_ ports.DatabaseManager = (*Manager)(nil)
	_ ports.Resetter        = (*Manager)(nil)
)

// Manager — документная реализация хранилища.
type Manager struct {
	uri      string
	database string

	client    *mongo.Client
	users     *mongo.Collection
	playlists *mongo.Collection
	logger    *slog.Logger
}

// NewManager создает менеджер; соединение открывается в Connect.
func NewManager(uri, database string, logger *slog.Logger) *Manager {
	return &Manager{uri: uri, database: database, logger: logger}
}

// newManagerWithDatabase привязывает менеджер к уже открытой базе (используется в тестах).
func newManagerWithDatabase(db *mongo.Database, logger *slog.Logger) *Manager {
	m := &Manager{database: db.Name(), logger: logger}
	m.bind(db)
	return m
}

func (m *Manager) bind(db *mongo.Database) {
	m.users = db.Collection(usersCollection)
	m.playlists = db.Collection(playlistsCollection)
}

// Connect открывает соединение с MongoDB и создает индексы
func (m *Manager) Connect(ctx context.Context) error {
	start := time.Now()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
	if err != nil {
		m.logger.Error("failed to open MongoDB connection", "error", err)
		return fmt.Errorf("ошибка открытия соединения с MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		m.logger.Error("failed to ping MongoDB", "error", err)
		return fmt.Errorf("не удалось подключиться к MongoDB: %w", err)
	}

	if err := m.attach(ctx, client); err != nil {
		return err
	}

	m.logger.Info("MongoDB connection established successfully",
		"database", m.database,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// attach привязывает клиента к менеджеру и создает индексы.
// При ошибке клиент закрывается и менеджер остается без соединения.
func (m *Manager) attach(ctx context.Context, client *mongo.Client) error {
	m.client = client
	m.bind(client.Database(m.database))

	if err := m.ensureIndexes(ctx); err != nil {
		if dErr := client.Disconnect(ctx); dErr != nil {
			m.logger.Warn("failed to close MongoDB connection after index error", "error", dErr)
		}
		m.client = nil
		m.users, m.playlists = nil, nil
		return err
	}
	return nil
}

// ensureIndexes создает уникальный индекс email и индекс владельца плейлистов.
// Операция идемпотентна.
func (m *Manager) ensureIndexes(ctx context.Context) error {
	_, err := m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ошибка создания индекса users.email: %w", err)
	}

	_, err = m.playlists.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerEmail", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("ошибка создания индекса playlists.ownerEmail: %w", err)
	}
	return nil
}

func (m *Manager) Disconnect(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	if err := m.client.Disconnect(ctx); err != nil {
		m.logger.Error("failed to close MongoDB connection", "error", err)
		return fmt.Errorf("ошибка закрытия соединения с MongoDB: %w", err)
	}
	m.client = nil
	m.logger.Info("MongoDB disconnected")
	return nil
}

// CreateUser сохраняет нового пользователя. Уникальность email обеспечивает индекс.
func (m *Manager) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	start := time.Now()

	doc := newUserDocument(user)
	doc.ID = primitive.NewObjectID()

	if _, err := m.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		m.logger.Error("failed to insert user", "email", user.Email, "error", err)
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	m.logger.Info("user created",
		"id", doc.ID.Hex(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return doc.toDomain(), nil
}

func (m *Manager) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.findUser(ctx, bson.M{"email": email})
}

func (m *Manager) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return m.findUser(ctx, bson.M{"_id": oid})
}

func (m *Manager) findUser(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	err := m.users.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateUser применяет $set только для заданных полей
func (m *Manager) UpdateUser(ctx context.Context, id domain.ID, update domain.UserUpdate) (*domain.User, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	if update.Empty() {
		user, err := m.findUser(ctx, bson.M{"_id": oid})
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		return user, nil
	}

	set := bson.D{}
	if update.FirstName != nil {
		set = append(set, bson.E{Key: "firstName", Value: *update.FirstName})
	}
	if update.LastName != nil {
		set = append(set, bson.E{Key: "lastName", Value: *update.LastName})
	}
	if update.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *update.Email})
	}
	if update.PasswordHash != nil {
		set = append(set, bson.E{Key: "passwordHash", Value: *update.PasswordHash})
	}

	var doc userDocument
	err := m.users.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrUserNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("ошибка при обновлении пользователя %s: %w", id, err)
	}

	m.logger.Info("user updated", "id", id)
	return doc.toDomain(), nil
}

// CreatePlaylist сохраняет плейлист. Переданный ID сохраняется, если это корректный ObjectID.
func (m *Manager) CreatePlaylist(ctx context.Context, playlist *domain.Playlist) (*domain.Playlist, error) {
	start := time.Now()

	oid, ok := parseID(playlist.ID)
	if !ok {
		oid = primitive.NewObjectID()
	}

	doc := playlistDocument{
		ID:         oid,
		Name:       playlist.Name,
		OwnerEmail: playlist.OwnerEmail,
		Songs:      newSongDocuments(playlist.Songs),
	}

	if _, err := m.playlists.InsertOne(ctx, doc); err != nil {
		m.logger.Error("failed to insert playlist", "owner", playlist.OwnerEmail, "error", err)
		return nil, fmt.Errorf("ошибка при создании плейлиста: %w", err)
	}

	m.logger.Info("playlist created",
		"id", oid.Hex(),
		"owner", doc.OwnerEmail,
		"songs", len(doc.Songs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return doc.toDomain(), nil
}

func (m *Manager) FindPlaylistByID(ctx context.Context, id domain.ID) (*domain.Playlist, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	var doc playlistDocument
	err := m.playlists.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении плейлиста по ID: %w", err)
	}
	return doc.toDomain(), nil
}

func (m *Manager) GetPlaylistPairsByOwner(ctx context.Context, ownerEmail string) ([]domain.PlaylistPair, error) {
	start := time.Now()

	cursor, err := m.playlists.Find(ctx,
		bson.M{"ownerEmail": ownerEmail},
		options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}, {Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении плейлистов владельца: %w", err)
	}

	var docs []pairDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("ошибка чтения курсора плейлистов: %w", err)
	}

	pairs := make([]domain.PlaylistPair, 0, len(docs))
	for _, d := range docs {
		pairs = append(pairs, domain.PlaylistPair{ID: formatID(d.ID), Name: d.Name})
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
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrPlaylistNotFound
	}

	set := bson.D{
		{Key: "name", Value: update.Name},
		{Key: "songs", Value: newSongDocuments(update.Songs)},
	}

	var doc playlistDocument
	err := m.playlists.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("ошибка при обновлении плейлиста %s: %w", id, err)
	}

	m.logger.Info("playlist updated", "id", id, "songs", len(doc.Songs))
	return doc.toDomain(), nil
}

// DeletePlaylist удаляет плейлист и возвращает его предыдущее состояние
func (m *Manager) DeletePlaylist(ctx context.Context, id domain.ID) (*domain.Playlist, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	var doc playlistDocument
	err := m.playlists.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при удалении плейлиста %s: %w", id, err)
	}

	m.logger.Info("playlist deleted", "id", id)
	return doc.toDomain(), nil
}

// Reset удаляет все документы обеих коллекций
func (m *Manager) Reset(ctx context.Context) error {
	if _, err := m.playlists.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("ошибка очистки playlists: %w", err)
	}
	if _, err := m.users.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("ошибка очистки users: %w", err)
	}
	m.logger.Warn("MongoDB collections cleared")
	return nil
}
