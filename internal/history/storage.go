package history

import (
	"context"
	"fmt"

	"web-calculator/internal/config"
)

// Storage is a small key-value store local to one client, the terminal
// counterpart of the browser's localStorage.
type Storage interface {
	// Get returns the value under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// OpenStorage opens the backend selected in cfg.
func OpenStorage(cfg config.History) (Storage, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileStorage(cfg.Path)
	case config.BackendSQLite:
		return OpenSQLiteStorage(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}
