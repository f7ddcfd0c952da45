package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:          "8080",
		Backend:       "file",
		SnapshotPath:  "./data/finbook.json",
		SQLiteDBPath:  "./data/finbook.db",
		SaveDebounce:  300 * time.Millisecond,
		SaveInterval:  10 * time.Second,
		WatchInterval: 2 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid file backend",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid sqlite backend",
			mutate: func(c *Config) { c.Backend = "sqlite" },
		},
		{
			name:   "valid memory backend",
			mutate: func(c *Config) { c.Backend = "memory"; c.SnapshotPath = "" },
		},
		{
			name:        "non-numeric port",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc'",
		},
		{
			name:        "port out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "must be between 1 and 65535",
		},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.Backend = "postgres" },
			wantErr:     true,
			errorString: "invalid store backend",
		},
		{
			name:        "file backend without path",
			mutate:      func(c *Config) { c.SnapshotPath = "" },
			wantErr:     true,
			errorString: "snapshot path cannot be empty",
		},
		{
			name:        "sqlite backend without path",
			mutate:      func(c *Config) { c.Backend = "sqlite"; c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "debounce longer than backstop",
			mutate:      func(c *Config) { c.SaveDebounce = time.Minute; c.SaveInterval = time.Second },
			wantErr:     true,
			errorString: "debounce longer than the backstop",
		},
		{
			name:        "non-positive watch interval",
			mutate:      func(c *Config) { c.WatchInterval = 0 },
			wantErr:     true,
			errorString: "watch interval must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err, tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port == "" || cfg.Backend == "" {
		t.Fatalf("defaults missing: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("SAVE_DEBOUNCE", "50ms")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9090" || cfg.Backend != "sqlite" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.SaveDebounce != 50*time.Millisecond {
		t.Fatalf("duration not parsed: %v", cfg.SaveDebounce)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("level not parsed: %v", cfg.LogLevel)
	}
}

func TestEnvDurationFallback(t *testing.T) {
	t.Setenv("SAVE_INTERVAL", "not-a-duration")
	cfg := Load()
	if cfg.SaveInterval != 10*time.Second {
		t.Fatalf("bad duration must fall back, got %v", cfg.SaveInterval)
	}
}
