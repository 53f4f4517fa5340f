// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/nathoo/turncore/logger"
)

// Container store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds every setting read from TURNCORE_* variables.
type Config struct {
	LogLevel  string `env:"TURNCORE_LOG_LEVEL"  envDefault:"info" validate:"oneof=debug info warn warning error"`
	LogFormat string `env:"TURNCORE_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogSource bool   `env:"TURNCORE_LOG_SOURCE"`

	Seed              int64 `env:"TURNCORE_SEED"`
	PageSize          int   `env:"TURNCORE_PAGE_SIZE"          envDefault:"16"  validate:"gte=1,lte=16"`
	AttackNeutralNPCs bool  `env:"TURNCORE_ATTACK_NEUTRAL_NPCS"`
	Wizard            bool  `env:"TURNCORE_WIZARD"`
	RouteCacheSize    int   `env:"TURNCORE_ROUTE_CACHE_SIZE"   envDefault:"256" validate:"gte=1"`

	Store       string `env:"TURNCORE_STORE"        envDefault:"file" validate:"oneof=file redis sqlite"`
	SaveDir     string `env:"TURNCORE_SAVE_DIR"     envDefault:"save" validate:"required"`
	RedisAddr   string `env:"TURNCORE_REDIS_ADDR"   validate:"required_if=Store redis"`
	SQLitePath  string `env:"TURNCORE_SQLITE_PATH"  validate:"required_if=Store sqlite"`
	MetricsAddr string `env:"TURNCORE_METRICS_ADDR"`
}

var validate = validator.New()

// Load reads .env files (when present) and then the environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse reads the environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and store requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Logger returns the logging section.
func (c *Config) Logger() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat, AddSource: c.LogSource}
}
