package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is everything the process reads from its environment.
type Config struct {
	Addr     string // listen address, ADDR
	Capacity int    // max concurrent game sessions, GAME_CAPACITY
	Env      string // "dev" or "prod", selects the logger, APP_ENV
}

// Load reads configuration from the environment, pulling in a .env file
// first when one exists.
func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	cfg := Config{
		Addr:     envOr("ADDR", ":8080"),
		Capacity: 10,
		Env:      envOr("APP_ENV", "dev"),
	}

	if v := os.Getenv("GAME_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid GAME_CAPACITY %q", v)
		}
		cfg.Capacity = n
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
