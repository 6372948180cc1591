// Package postgres реализует ports.DatabaseManager поверх PostgreSQL.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoArmGo/Playlister/internal/core/ports"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const uniqueViolation = "23505"

var (
	_ ports.DatabaseManager = (*Manager)(nil)
	_ ports.Resetter        = (*Manager)(nil)
)

// Manager — реляционная реализация хранилища.
// sqlx держит пул соединений и используется для проекций,
// GORM работает поверх того же *sql.DB для CRUD.
type Manager struct {
	dsn    string
	db     *sqlx.DB
	gorm   *gorm.DB
	logger *slog.Logger
}

// NewManager создает менеджер; соединение открывается в Connect.
func NewManager(dsn string, logger *slog.Logger) *Manager {
	return &Manager{dsn: dsn, logger: logger}
}

// newManagerWithDB привязывает менеджер к готовым соединениям (используется в тестах).
func newManagerWithDB(db *sqlx.DB, gdb *gorm.DB, logger *slog.Logger) *Manager {
	return &Manager{db: db, gorm: gdb, logger: logger}
}

// Connect открывает соединение с PostgreSQL и создает недостающие таблицы
func (m *Manager) Connect(ctx context.Context) error {
	start := time.Now()

	db, err := sqlx.ConnectContext(ctx, "postgres", m.dsn)
	if err != nil {
		m.logger.Error("failed to open PostgreSQL connection", "error", err)
		return fmt.Errorf("ошибка открытия соединения с БД: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := applyMigrations(m.dsn, m.logger); err != nil {
		_ = db.Close()
		return fmt.Errorf("ошибка при применении миграций: %w", err)
	}

	gdb, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("ошибка инициализации GORM: %w", err)
	}

	m.db = db
	m.gorm = gdb

	m.logger.Info("PostgreSQL connection established successfully",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// applyMigrations создает таблицы, если их нет. Существующие данные не затрагиваются.
func applyMigrations(dsn string, logger *slog.Logger) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("не удалось открыть встроенные миграции: %w", err)
	}

	mg, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("не удалось создать экземпляр мигратора: %w", err)
	}
	defer mg.Close()

	err = mg.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("schema is up to date")
	case err != nil:
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	default:
		logger.Info("schema migrations applied")
	}
	return nil
}

func (m *Manager) Disconnect(ctx context.Context) error {
	if m.db == nil {
		return nil
	}

	start := time.Now()
	if err := m.db.Close(); err != nil {
		m.logger.Error("failed to close database connection", "error", err)
		return fmt.Errorf("ошибка закрытия БД: %w", err)
	}
	m.db = nil
	m.gorm = nil

	m.logger.Info("PostgreSQL disconnected", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Reset очищает обе таблицы
func (m *Manager) Reset(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, `TRUNCATE TABLE playlists, users`); err != nil {
		return fmt.Errorf("ошибка очистки таблиц: %w", err)
	}
	m.logger.Warn("PostgreSQL tables truncated")
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (m *Manager) conn(ctx context.Context) *gorm.DB {
	return m.gorm.WithContext(ctx)
}

// notFound сообщает, что GORM не нашел запись
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
