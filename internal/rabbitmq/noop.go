package rabbitmq

import (
	"context"
	"log/slog"

	"github.com/GoArmGo/Playlister/internal/core/ports"
	"github.com/GoArmGo/Playlister/internal/messaging/payloads"
)

var _ ports.PlaylistEventPublisher = (*LogPublisher)(nil)

// LogPublisher используется, когда брокер не настроен: события только логируются.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishPlaylistEvent(ctx context.Context, event payloads.PlaylistEvent) error {
	p.logger.Debug("playlist event (broker disabled)",
		"type", event.Type,
		"playlist_id", event.PlaylistID,
	)
	return nil
}
