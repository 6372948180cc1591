package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/Playlister/internal/core/ports"
	"github.com/GoArmGo/Playlister/internal/messaging/payloads"
)

// SnapshotArchiver поддерживает JSON-снимки плейлистов в объектном хранилище.
// Вызывается воркером на каждое событие из очереди.
type SnapshotArchiver struct {
	files  ports.FileStorage
	logger *slog.Logger
}

func NewSnapshotArchiver(files ports.FileStorage, logger *slog.Logger) *SnapshotArchiver {
	return &SnapshotArchiver{files: files, logger: logger}
}

// HandleEvent записывает снимок для created/updated и удаляет его для deleted.
func (a *SnapshotArchiver) HandleEvent(ctx context.Context, event payloads.PlaylistEvent) error {
	key := event.SnapshotKey()

	switch event.Type {
	case payloads.PlaylistCreated, payloads.PlaylistUpdated:
		if event.Playlist == nil {
			return fmt.Errorf("usecase: событие %s без снимка плейлиста %s", event.Type, event.PlaylistID)
		}
		body, err := json.Marshal(event.Playlist)
		if err != nil {
			return fmt.Errorf("usecase: ошибка сериализации плейлиста: %w", err)
		}
		location, err := a.files.UploadFile(ctx, key, bytes.NewReader(body), "application/json")
		if err != nil {
			return fmt.Errorf("usecase: ошибка загрузки снимка: %w", err)
		}
		a.logger.Info("snapshot stored", "playlist_id", event.PlaylistID, "location", location)

	case payloads.PlaylistDeleted:
		if err := a.files.DeleteFile(ctx, key); err != nil {
			return fmt.Errorf("usecase: ошибка удаления снимка: %w", err)
		}
		a.logger.Info("snapshot removed", "playlist_id", event.PlaylistID)

	default:
		// неизвестные типы пропускаем, чтобы не зациклить повторную доставку
		a.logger.Warn("unknown playlist event type", "type", event.Type, "playlist_id", event.PlaylistID)
	}
	return nil
}
