package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoArmGo/Playlister/internal/auth"
	"github.com/GoArmGo/Playlister/internal/config"
	"github.com/GoArmGo/Playlister/internal/core/ports"
	"github.com/GoArmGo/Playlister/internal/usecase"
)

// Режимы запуска
const (
	ModeServer = "server"
	ModeWorker = "worker"
	ModeSeed   = "seed"
)

const shutdownTimeout = 10 * time.Second

// Options — параметры командной строки.
type Options struct {
	Mode string
	// DataPath — JSON-файл с данными для режима seed
	DataPath string
}

type App struct {
	Config    *config.Config
	logger    *slog.Logger
	db        ports.DatabaseManager
	accounts  usecase.AccountUseCase
	playlists usecase.PlaylistUseCase
	sessions  *auth.SessionManager
	publisher ports.PlaylistEventPublisher
	consumer  ports.PlaylistEventConsumer
	archiver  *usecase.SnapshotArchiver
}

// Deps — собранные в di зависимости. Consumer и Archiver нужны только воркеру.
type Deps struct {
	DB        ports.DatabaseManager
	Accounts  usecase.AccountUseCase
	Playlists usecase.PlaylistUseCase
	Sessions  *auth.SessionManager
	Publisher ports.PlaylistEventPublisher
	Consumer  ports.PlaylistEventConsumer
	Archiver  *usecase.SnapshotArchiver
}

func NewApp(cfg *config.Config, logger *slog.Logger, deps Deps) *App {
	return &App{
		Config:    cfg,
		logger:    logger,
		db:        deps.DB,
		accounts:  deps.Accounts,
		playlists: deps.Playlists,
		sessions:  deps.Sessions,
		publisher: deps.Publisher,
		consumer:  deps.Consumer,
		archiver:  deps.Archiver,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, opts Options) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("running", "mode", opts.Mode)

	var err error
	switch opts.Mode {
	case ModeServer:
		err = runServer(ctx, a.Config, a.logger, a.accounts, a.playlists, a.sessions)
	case ModeWorker:
		err = runWorker(ctx, a.logger, a.consumer, a.archiver)
	case ModeSeed:
		err = runSeed(ctx, a.logger, a.db, opts.DataPath)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server', 'worker' или 'seed')", opts.Mode)
	}

	// аккуратно закрываем ресурсы
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if closeErr := a.Shutdown(shutdownCtx); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
		err = errors.Join(err, closeErr)
	}

	return err
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	if a.db != nil {
		if err := a.db.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ошибка закрытия БД: %w", err))
		}
	}

	// publisher и consumer могут быть одним клиентом RabbitMQ
	closed := map[interface{}]bool{}
	for _, c := range []interface{}{a.publisher, a.consumer} {
		closer, ok := c.(interface{ Close() error })
		if !ok || closed[c] {
			continue
		}
		closed[c] = true
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
