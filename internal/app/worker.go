package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/Playlister/internal/core/ports"
	"github.com/GoArmGo/Playlister/internal/usecase"
)

// runWorker потребляет события плейлистов и архивирует снимки до отмены ctx
func runWorker(
	ctx context.Context,
	logger *slog.Logger,
	consumer ports.PlaylistEventConsumer,
	archiver *usecase.SnapshotArchiver,
) error {
	if consumer == nil || archiver == nil {
		return errors.New("режим worker требует RABBITMQ_URL и параметры MINIO_*")
	}

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if err := consumer.StartConsumingPlaylistEvents(workerCtx, archiver.HandleEvent); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	logger.Info("worker started, waiting for playlist events")
	<-ctx.Done()

	logger.Info("shutdown signal received, stopping worker")
	return nil
}
