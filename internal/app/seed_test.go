package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/Playlister/internal/domain"
	tu "github.com/GoArmGo/Playlister/internal/testing"
)

const seedJSON = `{
  "users": [
    {"firstName": "Alice", "lastName": "Liddell", "email": "alice@example.com", "passwordHash": "$2a$10$abc"},
    {"firstName": "Bob", "lastName": "Builder", "email": "bob@example.com", "passwordHash": "$2a$10$def"}
  ],
  "playlists": [
    {"_id": "p1", "name": "Road Trip", "ownerEmail": "alice@example.com",
     "songs": [{"title": "Highway Star", "artist": "Deep Purple", "year": 1972, "youTubeId": "Wr9ie2J2690"}]},
    {"_id": "p2", "name": "Empty", "ownerEmail": "bob@example.com"}
  ]
}`

func writeSeedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(seedJSON), 0o600))
	return path
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	db := tu.NewMemoryDB()
	_, err := db.CreateUser(ctx, &domain.User{Email: "stale@example.com"})
	require.NoError(t, err)

	err = runSeed(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), db, writeSeedFile(t))
	require.NoError(t, err)

	stale, err := db.FindUserByEmail(ctx, "stale@example.com")
	require.NoError(t, err)
	assert.Nil(t, stale)

	alice, err := db.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, alice)
	assert.Equal(t, "$2a$10$abc", alice.PasswordHash)

	pl, err := db.FindPlaylistByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, pl)
	assert.Equal(t, "Wr9ie2J2690", pl.Songs[0].ExternalMediaID)

	empty, err := db.FindPlaylistByID(ctx, "p2")
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.NotNil(t, empty.Songs)
}

func TestLoadSeedData_NormalizesEmails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	raw := `{
  "users": [{"firstName": "Alice", "lastName": "Liddell", "email": "  Alice@Example.COM ", "passwordHash": "$2a$10$abc"}],
  "playlists": [{"_id": "p1", "name": "Road Trip", "ownerEmail": "ALICE@example.com"}]
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	data, err := LoadSeedData(path)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", data.Users[0].Email)
	assert.Equal(t, "alice@example.com", data.Playlists[0].OwnerEmail)

	ctx := context.Background()
	db := tu.NewMemoryDB()
	require.NoError(t, Seed(ctx, db, data, slog.New(slog.NewTextHandler(io.Discard, nil))))

	alice, err := db.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, alice)

	pairs, err := db.GetPlaylistPairsByOwner(ctx, alice.Email)
	require.NoError(t, err)
	assert.Equal(t, []domain.PlaylistPair{{ID: "p1", Name: "Road Trip"}}, pairs)
}

func TestSeed_Errors(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Error(t, runSeed(ctx, logger, tu.NewMemoryDB(), ""))
	assert.Error(t, runSeed(ctx, logger, tu.NewMemoryDB(), filepath.Join(t.TempDir(), "missing.json")))

	db := tu.NewMemoryDB()
	db.Err = assert.AnError
	assert.ErrorIs(t, runSeed(ctx, logger, db, writeSeedFile(t)), assert.AnError)
}

func TestRun_UnknownMode(t *testing.T) {
	db := tu.NewMemoryDB()
	a := NewApp(nil, slog.New(slog.NewTextHandler(io.Discard, nil)), Deps{DB: db})

	err := a.Run(context.Background(), Options{Mode: "daemon"})
	assert.Error(t, err)
}

func TestRun_WorkerWithoutBroker(t *testing.T) {
	a := NewApp(nil, slog.New(slog.NewTextHandler(io.Discard, nil)), Deps{DB: tu.NewMemoryDB()})
	assert.Error(t, a.Run(context.Background(), Options{Mode: ModeWorker}))
}
