package store

import (
	"fmt"
	"log/slog"
)

const (
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

type BackendType string

func (t BackendType) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend, MemoryBackend:
		return true
	}
	return false
}

// Config selects and parameterizes a snapshot store backend.
type Config struct {
	Type         BackendType
	FilePath     string
	SQLiteDBPath string
}

// New builds the snapshot store described by config.
func New(config Config, logger *slog.Logger) (SnapshotStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch config.Type {
	case FileBackend:
		s, err := NewFileStore(config.FilePath)
		if err != nil {
			return nil, fmt.Errorf("initialize file store: %w", err)
		}
		logger.Info("Initialized file backend", "path", config.FilePath)
		return s, nil
	case SQLiteBackend:
		s, err := NewSQLiteStore(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", config.SQLiteDBPath)
		return s, nil
	case MemoryBackend:
		logger.Info("Initialized memory backend")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
