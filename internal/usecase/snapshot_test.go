package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/Playlister/internal/domain"
	"github.com/GoArmGo/Playlister/internal/messaging/payloads"
)

type mockFileStorage struct {
	mock.Mock
	uploaded []byte
}

func (m *mockFileStorage) UploadFile(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	body, _ := io.ReadAll(r)
	m.uploaded = body
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func TestSnapshotArchiver(t *testing.T) {
	ctx := context.Background()
	playlist := &domain.Playlist{
		ID:         "p1",
		Name:       "Road Trip",
		OwnerEmail: "alice@example.com",
		Songs:      []domain.Song{{Title: "Highway Star", Artist: "Deep Purple", Year: 1972, ExternalMediaID: "Wr9ie2J2690"}},
	}
	const key = "playlists/alice@example.com/p1.json"

	t.Run("created uploads snapshot", func(t *testing.T) {
		files := &mockFileStorage{}
		files.On("UploadFile", ctx, key, "application/json").Return("http://minio/p1.json", nil)

		err := NewSnapshotArchiver(files, discardLogger()).HandleEvent(ctx, payloads.NewPlaylistEvent(payloads.PlaylistCreated, playlist))
		require.NoError(t, err)
		files.AssertExpectations(t)

		var stored domain.Playlist
		require.NoError(t, json.Unmarshal(files.uploaded, &stored))
		assert.Equal(t, *playlist, stored)
	})

	t.Run("deleted removes snapshot", func(t *testing.T) {
		files := &mockFileStorage{}
		files.On("DeleteFile", ctx, key).Return(nil)

		err := NewSnapshotArchiver(files, discardLogger()).HandleEvent(ctx, payloads.NewPlaylistEvent(payloads.PlaylistDeleted, playlist))
		require.NoError(t, err)
		files.AssertExpectations(t)
	})

	t.Run("storage failure is returned for requeue", func(t *testing.T) {
		files := &mockFileStorage{}
		files.On("UploadFile", ctx, key, "application/json").Return("", errors.New("minio down"))

		err := NewSnapshotArchiver(files, discardLogger()).HandleEvent(ctx, payloads.NewPlaylistEvent(payloads.PlaylistUpdated, playlist))
		assert.Error(t, err)
	})

	t.Run("update without snapshot", func(t *testing.T) {
		files := &mockFileStorage{}
		err := NewSnapshotArchiver(files, discardLogger()).HandleEvent(ctx, payloads.PlaylistEvent{
			Type: payloads.PlaylistUpdated, PlaylistID: "p1", OwnerEmail: "alice@example.com",
		})
		assert.Error(t, err)
		files.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
	})
}
