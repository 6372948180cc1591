// Package database выбирает реализацию хранилища по конфигурации.
package database

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/Playlister/internal/config"
	"github.com/GoArmGo/Playlister/internal/core/ports"
	"github.com/GoArmGo/Playlister/internal/database/mongodb"
	"github.com/GoArmGo/Playlister/internal/database/postgres"
)

// Kind — нормализованный тип хранилища.
type Kind string

const (
	KindMongo    Kind = "mongodb"
	KindPostgres Kind = "postgresql"
)

// ParseKind сопоставляет значение DATABASE_TYPE с типом хранилища.
// Пустое значение означает MongoDB.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "mongodb", "mongo", "document-store":
		return KindMongo, nil
	case "postgresql", "postgres", "relational":
		return KindPostgres, nil
	default:
		return "", fmt.Errorf("неподдерживаемый тип базы данных: %q", value)
	}
}

// New создает менеджер хранилища. Соединение не открывается до вызова Connect.
func New(cfg *config.Config, logger *slog.Logger) (ports.DatabaseManager, error) {
	kind, err := ParseKind(cfg.DatabaseType)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindPostgres:
		logger.Info("database backend selected", "type", kind)
		return postgres.NewManager(cfg.PostgresDSN(), logger.With("component", "postgres")), nil
	default:
		logger.Info("database backend selected", "type", kind, "database", cfg.Mongo.Database)
		return mongodb.NewManager(cfg.Mongo.URI, cfg.Mongo.Database, logger.With("component", "mongodb")), nil
	}
}
