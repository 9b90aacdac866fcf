// Package persistence provides the blob store backends behind ports.BlobStore.
//
// Three backends are available:
//   - file: one <partition>.json per partition, replaced atomically
//   - sqlite: a single embedded database with a blobs table
//   - memory: a map, for tests and throwaway runs
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open creates the blob store selected by cfg.
func Open(cfg config.StorageConfig, logger *slog.Logger) (ports.BlobStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("backend", cfg.Backend))

	switch cfg.Backend {
	case BackendFile:
		store, err := NewFileStore(cfg.Path)
		if err != nil {
			return nil, err
		}

		logger.Info("blob store opened", slog.String("path", store.Dir()))

		return store, nil
	case BackendSQLite:
		store, err := NewSQLiteStore(cfg.Path, logger)
		if err != nil {
			return nil, err
		}

		logger.Info("blob store opened", slog.String("path", store.Path()))

		return store, nil
	case BackendMemory:
		logger.Warn("using in-memory blob store, state is lost on exit")

		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
