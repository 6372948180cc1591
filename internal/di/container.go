package di

import (
	"context"
	"fmt"
	"time"

	"github.com/GoArmGo/Playlister/internal/adapter/storage/minio"
	"github.com/GoArmGo/Playlister/internal/app"
	"github.com/GoArmGo/Playlister/internal/auth"
	"github.com/GoArmGo/Playlister/internal/config"
	"github.com/GoArmGo/Playlister/internal/core/ports"
	"github.com/GoArmGo/Playlister/internal/database"
	"github.com/GoArmGo/Playlister/internal/logger"
	"github.com/GoArmGo/Playlister/internal/rabbitmq"
	"github.com/GoArmGo/Playlister/internal/usecase"
)

const connectTimeout = 15 * time.Second

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
// Ошибка подключения к хранилищу фатальна для старта.
func BuildApp(ctx context.Context, mode string) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Выбор и подключение хранилища
	db, err := database.New(cfg, slogger)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("ошибка подключения к хранилищу: %w", err)
	}

	deps := app.Deps{
		DB:       db,
		Sessions: auth.NewSessionManager(cfg.SessionSecret, cfg.CookieSecure),
	}

	// 3. RabbitMQ: без URL события только логируются
	var publisher ports.PlaylistEventPublisher = rabbitmq.NewLogPublisher(slogger.With("component", "events"))
	if cfg.RabbitMQEnabled() {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger.With("component", "rabbitmq"))
		if err != nil {
			_ = db.Disconnect(ctx)
			return nil, err
		}
		publisher = rabbitMQClient
		deps.Consumer = rabbitMQClient
	}
	deps.Publisher = publisher

	// 4. MinIO нужен только воркеру
	if mode == app.ModeWorker && cfg.MinioEnabled() {
		fileStorage, err := minio.NewMinioClient(ctx, cfg, slogger.With("component", "minio"))
		if err != nil {
			_ = db.Disconnect(ctx)
			return nil, err
		}
		deps.Archiver = usecase.NewSnapshotArchiver(fileStorage, slogger.With("component", "archive"))
	}

	// 5. Инициализация бизнес-логики (usecases)
	deps.Accounts = usecase.NewAccountUseCase(db, slogger.With("component", "accounts"))
	deps.Playlists = usecase.NewPlaylistUseCase(db, publisher, slogger.With("component", "playlists"))

	slogger.Info("dependencies initialized", "mode", mode, "events", cfg.RabbitMQEnabled())
	return app.NewApp(cfg, slogger, deps), nil
}
