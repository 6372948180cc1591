package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/Playlister/internal/auth"
	"github.com/GoArmGo/Playlister/internal/config"
	"github.com/GoArmGo/Playlister/internal/handler"
	"github.com/GoArmGo/Playlister/internal/usecase"
)

// runServer запускает HTTP сервер и блокируется до отмены ctx
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	accounts usecase.AccountUseCase,
	playlists usecase.PlaylistUseCase,
	sessions *auth.SessionManager,
) error {
	router := handler.NewRouter(
		handler.RouterConfig{
			CORSOrigins:    cfg.CORSOrigins,
			RequestTimeout: cfg.RequestTimeout,
		},
		handler.NewAuthHandler(accounts, sessions, logger.With("component", "auth")),
		handler.NewPlaylistHandler(playlists, logger.With("component", "store")),
		sessions,
		logger,
	)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
