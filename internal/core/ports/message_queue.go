package ports

import (
	"context"

	"github.com/GoArmGo/Playlister/internal/messaging/payloads"
)

// PlaylistEventPublisher публикует события об изменении плейлистов.
// Используется usecase-слоем после успешной записи.
type PlaylistEventPublisher interface {
	PublishPlaylistEvent(ctx context.Context, event payloads.PlaylistEvent) error
}

// PlaylistEventConsumer потребляет события об изменении плейлистов (режим worker).
type PlaylistEventConsumer interface {
	// StartConsumingPlaylistEvents начинает прослушивание очереди;
	// handler вызывается для каждого полученного сообщения
	StartConsumingPlaylistEvents(ctx context.Context, handler func(context.Context, payloads.PlaylistEvent) error) error
}
