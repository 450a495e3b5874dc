// Package config loads service settings from the environment and an optional
// config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting of the catalog service.
type Config struct {
	AppPort   string
	APIPrefix string

	DatabaseDriver       string
	DatabaseDSN          string
	DatabaseMaxOpenConns int
	DatabaseAutoMigrate  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RabbitMQURL    string
	EventsExchange string

	LogLevel  string
	LogFormat string

	RateLimitMax    int
	RateLimitWindow time.Duration
	RequestTimeout  time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "catalog.db")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_EXCHANGE", "catalog_events")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
}

// Load reads the configuration. Environment variables override values from
// the file at path, which is optional.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		AppPort:              v.GetString("APP_PORT"),
		APIPrefix:            v.GetString("API_PREFIX"),
		DatabaseDriver:       strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:          v.GetString("DATABASE_DSN"),
		DatabaseMaxOpenConns: v.GetInt("DATABASE_MAX_OPEN_CONNS"),
		DatabaseAutoMigrate:  v.GetBool("DATABASE_AUTO_MIGRATE"),
		RedisAddr:            v.GetString("REDIS_ADDR"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		RedisDB:              v.GetInt("REDIS_DB"),
		CacheTTL:             v.GetDuration("CACHE_TTL"),
		RabbitMQURL:          v.GetString("RABBITMQ_URL"),
		EventsExchange:       v.GetString("EVENTS_EXCHANGE"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
		RateLimitMax:         v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow:      v.GetDuration("RATE_LIMIT_WINDOW"),
		RequestTimeout:       v.GetDuration("REQUEST_TIMEOUT"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have no usable fallback.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres", "postgresql", "memory":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseDriver != "memory" && c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for driver %s", c.DatabaseDriver)
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("API_PREFIX must start with /")
	}
	if c.RateLimitMax < 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must not be negative")
	}
	return nil
}
