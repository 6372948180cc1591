package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	// Выбор хранилища: mongodb (по умолчанию) или postgresql
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"mongodb"`

	Mongo struct {
		URI      string `env:"DB_CONNECT" envDefault:"mongodb://localhost:27017"`
		Database string `env:"MONGO_DB" envDefault:"playlister"`
	}

	Postgres struct {
		// DatabaseURL, если задан, имеет приоритет над отдельными параметрами
		DatabaseURL string `env:"DATABASE_URL"`
		Host        string `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port        string `env:"POSTGRES_PORT" envDefault:"5432"`
		User        string `env:"POSTGRES_USER" envDefault:"postgres"`
		Password    string `env:"POSTGRES_PASSWORD"`
		Database    string `env:"POSTGRES_DB" envDefault:"playlister"`
		SSLMode     string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	}

	ServerPort     string        `env:"SERVER_PORT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	SessionSecret string   `env:"SESSION_SECRET,required,notEmpty"`
	CookieSecure  bool     `env:"COOKIE_SECURE"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Необязательные настройки MinIO (архив снимков плейлистов, режим worker)
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"playlist-snapshots"`
	MinioRegion          string `env:"MINIO_REGION" envDefault:"us-east-1"`

	// RabbitMQ: если URL пуст, события плейлистов только логируются
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"playlist_events"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "4000"
	}

	return &cfg, nil
}

// PostgresDSN возвращает строку подключения к PostgreSQL.
func (c *Config) PostgresDSN() string {
	if c.Postgres.DatabaseURL != "" {
		return c.Postgres.DatabaseURL
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Postgres.Host, c.Postgres.Port),
		Path:   "/" + c.Postgres.Database,
	}
	if c.Postgres.Password != "" {
		u.User = url.UserPassword(c.Postgres.User, c.Postgres.Password)
	} else {
		u.User = url.User(c.Postgres.User)
	}

	q := url.Values{}
	q.Set("sslmode", c.Postgres.SSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}

// MinioEnabled сообщает, заданы ли параметры MinIO.
func (c *Config) MinioEnabled() bool {
	return c.MinioEndpoint != "" && c.MinioAccessKeyID != "" && c.MinioSecretAccessKey != ""
}

// RabbitMQEnabled сообщает, задан ли адрес брокера.
func (c *Config) RabbitMQEnabled() bool {
	return c.RabbitMQ.RabbitMQURL != ""
}
