package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port string

	// Snapshot storage
	Backend      string
	SnapshotPath string
	SQLiteDBPath string

	// Persistence gateway
	SaveDebounce  time.Duration
	SaveInterval  time.Duration
	WatchInterval time.Duration

	// Logging
	LogLevel slog.Level
}

// Load reads configuration from the environment, after loading a .env
// file if one is present. Absent variables fall back to defaults.
func Load() *Config {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Backend:      getEnv("STORE_BACKEND", "file"),
		SnapshotPath: getEnv("FINBOOK_FILE", "./data/finbook.json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/finbook.db"),

		SaveDebounce:  getEnvDuration("SAVE_DEBOUNCE", 300*time.Millisecond),
		SaveInterval:  getEnvDuration("SAVE_INTERVAL", 10*time.Second),
		WatchInterval: getEnvDuration("WATCH_INTERVAL", 2*time.Second),

		LogLevel: getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

// Validate checks the configuration and returns one error naming every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Backend {
	case "file":
		if c.SnapshotPath == "" {
			problems = append(problems, "snapshot path cannot be empty when using file backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "memory":
	default:
		problems = append(problems, fmt.Sprintf("invalid store backend '%s': must be one of [file sqlite memory]", c.Backend))
	}

	if c.SaveDebounce <= 0 {
		problems = append(problems, "save debounce must be positive")
	}
	if c.SaveInterval <= 0 {
		problems = append(problems, "save interval must be positive")
	}
	if c.WatchInterval <= 0 {
		problems = append(problems, "watch interval must be positive")
	}
	if c.SaveDebounce > c.SaveInterval {
		problems = append(problems, "save debounce longer than the backstop interval defeats both")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	switch strings.ToLower(os.Getenv(key)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "":
		return fallback
	}
	return fallback
}
