// Package config holds the development server configuration, populated
// from environment variables.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Addr            string        `env:"AUTHGATE_ADDR, default=:8080"`
	JWTSecret       string        `env:"AUTHGATE_JWT_SECRET, default=dev-only-secret"`
	AccessTokenTTL  time.Duration `env:"AUTHGATE_ACCESS_TTL, default=15m"`
	RefreshTokenTTL time.Duration `env:"AUTHGATE_REFRESH_TTL, default=168h"`
	LogLevel        string        `env:"AUTHGATE_LOG_LEVEL, default=info"`
	Pretty          bool          `env:"AUTHGATE_LOG_PRETTY, default=false"`
}

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}
