// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/MiSArch/wishlist/pkg/config"
	"github.com/MiSArch/wishlist/pkg/database"
)

// Config holds the full runtime configuration of the wishlist service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPPort        int           `env:"WISHLIST_HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	PostgresHost     string `env:"WISHLIST_DB_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"WISHLIST_DB_PORT" envDefault:"5432"`
	PostgresUser     string `env:"WISHLIST_DB_USER" envDefault:"wishlist"`
	PostgresPassword string `env:"WISHLIST_DB_PASSWORD" envDefault:"wishlist_secret"`
	PostgresDB       string `env:"WISHLIST_DB_NAME" envDefault:"wishlist_db"`
	PostgresSSLMode  string `env:"WISHLIST_DB_SSLMODE" envDefault:"disable"`

	DBMaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns        int32         `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID" envDefault:"wishlist-service"`

	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := pkgconfig.Load(&cfg); err != nil {
		return nil, err
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid http port %d", cfg.HTTPPort)
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}
	return &cfg, nil
}

// Postgres translates the flat env fields into a pool configuration.
func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPassword,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSLMode,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: c.DBMaxConnLifetime,
		MaxConnIdleTime: c.DBMaxConnIdleTime,
	}
}
