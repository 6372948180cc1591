package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/GoArmGo/Playlister/internal/app"
	"github.com/GoArmGo/Playlister/internal/di"
)

func main() {
	mode := flag.String("mode", app.ModeServer, "Режим запуска приложения: server, worker или seed")
	dataPath := flag.String("data", "", "JSON-файл с начальными данными для режима seed")
	flag.Parse()

	// bootstrap-логгер (используется только на этапе инициализации т.к еще не создал slogger)
	bootstrapLogger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	bootstrapLogger.Info("starting application", "mode", *mode)

	ctx := context.Background()

	application, err := di.BuildApp(ctx, *mode)
	if err != nil {
		bootstrapLogger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	logger := application.LoggerIns()

	if err := application.Run(ctx, app.Options{Mode: *mode, DataPath: *dataPath}); err != nil {
		logger.Error("application run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
