package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/Playlister/internal/domain"
	"github.com/GoArmGo/Playlister/internal/messaging/payloads"
)

func TestProcess(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	event := payloads.NewPlaylistEvent(payloads.PlaylistCreated, &domain.Playlist{
		ID: "p1", Name: "Road Trip", OwnerEmail: "alice@example.com", Songs: []domain.Song{},
	})
	body, err := json.Marshal(event)
	require.NoError(t, err)

	t.Run("ack after successful handler", func(t *testing.T) {
		var got payloads.PlaylistEvent
		o := process(context.Background(), body, func(_ context.Context, e payloads.PlaylistEvent) error {
			got = e
			return nil
		}, logger)

		assert.Equal(t, ack, o)
		assert.Equal(t, domain.ID("p1"), got.PlaylistID)
		assert.Equal(t, payloads.PlaylistCreated, got.Type)
		assert.Equal(t, "Road Trip", got.Playlist.Name)
	})

	t.Run("handler failure is requeued", func(t *testing.T) {
		o := process(context.Background(), body, func(context.Context, payloads.PlaylistEvent) error {
			return errors.New("storage unavailable")
		}, logger)
		assert.Equal(t, requeue, o)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		called := false
		o := process(context.Background(), []byte("not json"), func(context.Context, payloads.PlaylistEvent) error {
			called = true
			return nil
		}, logger)
		assert.Equal(t, reject, o)
		assert.False(t, called)
	})

	t.Run("event without playlist id is rejected", func(t *testing.T) {
		o := process(context.Background(), []byte(`{"type":"created"}`), func(context.Context, payloads.PlaylistEvent) error {
			return nil
		}, logger)
		assert.Equal(t, reject, o)
	})
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	err := p.PublishPlaylistEvent(context.Background(), payloads.PlaylistEvent{Type: payloads.PlaylistDeleted, PlaylistID: "p9"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"playlist_id":"p9"`)
}
