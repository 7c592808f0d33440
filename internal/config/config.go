// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTP    HTTPConfig
	PG      PGConfig
	Auth    AuthConfig
	Limiter LimiterConfig
}

type HTTPConfig struct {
	Port         string        `env:"HTTP_PORT" env-default:"5000"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type PGConfig struct {
	DSN string `env:"PG_DSN" env-required:"true"`
}

type AuthConfig struct {
	// JWTSecret signs both user and collection tokens. Injected here so
	// tests and rotations can use distinct secrets.
	JWTSecret string `env:"JWT_SECRET" env-required:"true"`
}

type LimiterConfig struct {
	Window   time.Duration `env:"LOGIN_LIMIT_WINDOW" env-default:"15m"`
	MaxFails int           `env:"LOGIN_LIMIT_MAX_FAILS" env-default:"5"`
	BlockFor time.Duration `env:"LOGIN_LIMIT_BLOCK" env-default:"15m"`
}

// Load reads the environment into Config.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
