package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel   LogLeveler `mapstructure:"LOG_LEVEL"`
	DB         DB         `mapstructure:",squash"`
	HTTP       HTTP       `mapstructure:",squash"`
	Redis      Redis      `mapstructure:",squash"`
	Stats      Stats      `mapstructure:",squash"`
	Forwarding Forwarding `mapstructure:",squash"`
}

type DB struct {
	DSN                   string        `mapstructure:"DB_DSN"`
	MaxConnections        int           `mapstructure:"DB_MAX_CONNECTIONS"`
	MinConnections        int           `mapstructure:"DB_MIN_CONNECTIONS"`
	MaxConnectionLifetime time.Duration `mapstructure:"DB_MAX_CONNECTION_LIFETIME"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// Stats tunes the redis cache in front of the aggregate statistics.
type Stats struct {
	CacheExpiration time.Duration `mapstructure:"STATS_CACHE_EXPIRATION"`
	LockTimeout     time.Duration `mapstructure:"STATS_LOCK_TIMEOUT"`
}

// Forwarding configures the inbound email import surface.
type Forwarding struct {
	Enabled             bool   `mapstructure:"FORWARDING_ENABLED"`
	Domain              string `mapstructure:"FORWARDING_DOMAIN"`
	ImportRatePerMinute int    `mapstructure:"INBOX_IMPORT_RATE_LIMIT"`
}
