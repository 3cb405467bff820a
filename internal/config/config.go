// Package config loads service settings from the environment, an optional
// .env file and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds every setting the service reads at startup.
type Config struct {
	AppPort         string        `mapstructure:"APP_PORT"`
	DBDriver        string        `mapstructure:"DB_DRIVER"`
	DatabaseDSN     string        `mapstructure:"DATABASE_DSN"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"`
	RabbitMQURL     string        `mapstructure:"RABBITMQ_URL"`
	EventsExchange  string        `mapstructure:"EVENTS_EXCHANGE"`
	EventsQueue     string        `mapstructure:"EVENTS_QUEUE"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// EventsEnabled reports whether product events should be published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8000")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "product.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_EXCHANGE", "products")
	v.SetDefault("EVENTS_QUEUE", "product_events")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Load reads configuration into a Config. When envFile is not empty and
// exists, its variables are exported first; variables already present in
// the environment win.
func Load(v *viper.Viper, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DBDriver != DriverMemory && cfg.DatabaseDSN == "" {
		return nil, errors.New("DATABASE_DSN is required")
	}
	return &cfg, nil
}
