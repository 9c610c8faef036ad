// internal/config/config.go
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Database struct {
	Host     string `env:"DB_HOST, default=localhost"`
	Port     string `env:"DB_PORT, default=5432"`
	User     string `env:"DB_USER, default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME, default=attendance"`
	SSLMode  string `env:"DB_SSLMODE, default=disable"`
}

func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type Config struct {
	Port      string `env:"PORT, default=8080"`
	JWTSecret string `env:"JWT_SECRET, required"`

	// postgres or memory
	StoreDriver string `env:"STORE_DRIVER, default=postgres"`

	DB Database
}

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
