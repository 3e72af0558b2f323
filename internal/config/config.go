package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"productapi/internal/goldprice"
)

type Config struct {
	ServerPort     int
	GoldAPIURL     string
	GoldAPIKey     string
	GoldAPITimeout time.Duration
	CatalogPath    string
	DatabaseURL    string
}

// Load reads the environment, filling it first from a .env file when one
// exists. Variables already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading env file: %w", err)
	}

	cfg := Config{
		ServerPort:     8080,
		GoldAPIURL:     getEnv("GOLD_API_URL", goldprice.DefaultURL),
		GoldAPIKey:     os.Getenv("GOLD_API_KEY"),
		GoldAPITimeout: goldprice.DefaultTimeout,
		CatalogPath:    os.Getenv("CATALOG_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid SERVER_PORT %q", v)
		}
		cfg.ServerPort = port
	}

	if v := os.Getenv("GOLD_API_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			return Config{}, fmt.Errorf("invalid GOLD_API_TIMEOUT %q", v)
		}
		cfg.GoldAPITimeout = timeout
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
