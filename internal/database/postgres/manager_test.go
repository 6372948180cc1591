package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoArmGo/Playlister/internal/domain"
)

func newMockManager(t *testing.T) (*Manager, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return newManagerWithDB(sqlx.NewDb(sqlDB, "postgres"), gdb, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

var userColumns = []string{"id", "first_name", "last_name", "email", "password_hash"}

func TestManager_CreateUser(t *testing.T) {
	t.Run("assigns uuid", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

		user, err := m.CreateUser(context.Background(), &domain.User{
			FirstName: "Alice", LastName: "Liddell", Email: "alice@example.com", PasswordHash: "h",
		})
		require.NoError(t, err)
		_, err = uuid.Parse(user.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to email taken", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(&pq.Error{Code: uniqueViolation})

		user, err := m.CreateUser(context.Background(), &domain.User{Email: "alice@example.com"})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestManager_FindUser(t *testing.T) {
	id := uuid.New()

	t.Run("by email", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id.String(), "Alice", "Liddell", "alice@example.com", "h"))

		user, err := m.FindUserByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, domain.ID(id.String()), user.ID)
		assert.Equal(t, "h", user.PasswordHash)
	})

	t.Run("absent email", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WillReturnRows(sqlmock.NewRows(userColumns))

		user, err := m.FindUserByEmail(context.Background(), "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("malformed id does not hit the database", func(t *testing.T) {
		m, mock := newMockManager(t)

		user, err := m.FindUserByID(context.Background(), "42")
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestManager_UpdateUser(t *testing.T) {
	id := uuid.New()

	t.Run("applies given fields", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id.String(), "Alice", "Liddell", "alice@example.com", "h"))
		mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

		name := "Alicia"
		user, err := m.UpdateUser(context.Background(), domain.ID(id.String()), domain.UserUpdate{FirstName: &name})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", user.FirstName)
		assert.Equal(t, "Liddell", user.LastName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(userColumns))

		name := "Alicia"
		_, err := m.UpdateUser(context.Background(), domain.ID(id.String()), domain.UserUpdate{FirstName: &name})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("row removed before update", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id.String(), "Alice", "Liddell", "alice@example.com", "h"))
		mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

		name := "Alicia"
		user, err := m.UpdateUser(context.Background(), domain.ID(id.String()), domain.UserUpdate{FirstName: &name})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

var playlistColumns = []string{"id", "name", "owner_email", "songs"}

const songsJSON = `[{"title":"Highway Star","artist":"Deep Purple","year":1972,"youTubeId":"Wr9ie2J2690"}]`

func TestManager_Playlists(t *testing.T) {
	t.Run("create keeps supplied id", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectExec(`INSERT INTO "playlists"`).WillReturnResult(sqlmock.NewResult(0, 1))

		pl, err := m.CreatePlaylist(context.Background(), &domain.Playlist{
			ID: "seed-1", Name: "Road Trip", OwnerEmail: "alice@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ID("seed-1"), pl.ID)
		assert.NotNil(t, pl.Songs)
		assert.Empty(t, pl.Songs)
	})

	t.Run("create generates id", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectExec(`INSERT INTO "playlists"`).WillReturnResult(sqlmock.NewResult(0, 1))

		pl, err := m.CreatePlaylist(context.Background(), &domain.Playlist{Name: "Focus", OwnerEmail: "alice@example.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, pl.ID)
	})

	t.Run("find decodes songs", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "playlists" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(playlistColumns).AddRow("p1", "Road Trip", "alice@example.com", []byte(songsJSON)))

		pl, err := m.FindPlaylistByID(context.Background(), "p1")
		require.NoError(t, err)
		require.NotNil(t, pl)
		require.Len(t, pl.Songs, 1)
		assert.Equal(t, "Wr9ie2J2690", pl.Songs[0].ExternalMediaID)
		assert.Equal(t, 1972, pl.Songs[0].Year)
	})

	t.Run("find unknown id", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "playlists" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(playlistColumns))

		pl, err := m.FindPlaylistByID(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, pl)
	})

	t.Run("pairs by owner", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT id, name FROM playlists WHERE owner_email = \$1`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("p1", "Road Trip").AddRow("p2", "Focus"))

		pairs, err := m.GetPlaylistPairsByOwner(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, []domain.PlaylistPair{{ID: "p1", Name: "Road Trip"}, {ID: "p2", Name: "Focus"}}, pairs)
	})

	t.Run("pairs empty", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT id, name FROM playlists WHERE owner_email = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		pairs, err := m.GetPlaylistPairsByOwner(context.Background(), "bob@example.com")
		require.NoError(t, err)
		assert.NotNil(t, pairs)
		assert.Empty(t, pairs)
	})

	t.Run("update replaces name and songs", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "playlists" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(playlistColumns).AddRow("p1", "Road Trip", "alice@example.com", []byte(songsJSON)))
		mock.ExpectExec(`UPDATE "playlists" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

		pl, err := m.UpdatePlaylist(context.Background(), "p1", domain.PlaylistUpdate{Name: "Night Drive"})
		require.NoError(t, err)
		assert.Equal(t, "Night Drive", pl.Name)
		assert.Equal(t, "alice@example.com", pl.OwnerEmail)
		assert.Empty(t, pl.Songs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update unknown id", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "playlists" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(playlistColumns))

		_, err := m.UpdatePlaylist(context.Background(), "missing", domain.PlaylistUpdate{Name: "x"})
		assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
	})

	t.Run("delete returns previous record", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "playlists" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(playlistColumns).AddRow("p1", "Road Trip", "alice@example.com", []byte(songsJSON)))
		mock.ExpectExec(`DELETE FROM "playlists"`).WillReturnResult(sqlmock.NewResult(0, 1))

		pl, err := m.DeletePlaylist(context.Background(), "p1")
		require.NoError(t, err)
		require.NotNil(t, pl)
		assert.Equal(t, "Road Trip", pl.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete unknown id", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "playlists" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(playlistColumns))

		pl, err := m.DeletePlaylist(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, pl)
	})

	t.Run("update of row removed concurrently", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "playlists" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(playlistColumns).AddRow("p1", "Road Trip", "alice@example.com", []byte(songsJSON)))
		mock.ExpectExec(`UPDATE "playlists" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

		pl, err := m.UpdatePlaylist(context.Background(), "p1", domain.PlaylistUpdate{Name: "Night Drive"})
		assert.Nil(t, pl)
		assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete of row removed concurrently", func(t *testing.T) {
		m, mock := newMockManager(t)
		mock.ExpectQuery(`SELECT \* FROM "playlists" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(playlistColumns).AddRow("p1", "Road Trip", "alice@example.com", []byte(songsJSON)))
		mock.ExpectExec(`DELETE FROM "playlists"`).WillReturnResult(sqlmock.NewResult(0, 0))

		pl, err := m.DeletePlaylist(context.Background(), "p1")
		require.NoError(t, err)
		assert.Nil(t, pl)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestManager_Reset(t *testing.T) {
	m, mock := newMockManager(t)
	mock.ExpectExec(`TRUNCATE TABLE playlists, users`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, m.Reset(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
