package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// FileStore keeps each partition in <dir>/<partition>.json. Writes go to a
// temp file in the same directory which is then renamed over the target,
// so readers see either the old or the new blob.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

var _ ports.BlobStore = (*FileStore)(nil)

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving storage path: %w", err)
	}

	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &FileStore{dir: abs}, nil
}

// Dir returns the absolute storage directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(p ports.Partition) string {
	return filepath.Join(s.dir, string(p)+".json")
}

// Name implements ports.HealthChecker.
func (s *FileStore) Name() string { return "blobstore" }

// Check verifies the storage directory is still present.
func (s *FileStore) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("storage directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("storage path %s is not a directory", s.dir)
	}

	return nil
}

// Load implements ports.BlobStore.
func (s *FileStore) Load(ctx context.Context, p ports.Partition) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(p))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.NewNotFoundError("partition", string(p))
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}

	return data, nil
}

// Save implements ports.BlobStore.
func (s *FileStore) Save(ctx context.Context, p ports.Partition, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, string(p)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}

	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()

		return fmt.Errorf("writing %s: %w", p, err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()

		return fmt.Errorf("syncing %s: %w", p, err)
	}

	if err := tmp.Close(); err != nil {
		cleanup()

		return fmt.Errorf("closing %s: %w", p, err)
	}

	if err := os.Rename(tmp.Name(), s.path(p)); err != nil {
		cleanup()

		return fmt.Errorf("replacing %s: %w", p, err)
	}

	return nil
}

// Close implements ports.BlobStore.
func (s *FileStore) Close() error { return nil }
