package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// SQLiteFile is the database file created inside the storage directory.
const SQLiteFile = "quotevault.db"

// migrations are applied in order. Append only.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS blobs (
		name TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
}

// SQLiteStore keeps all partitions in one embedded database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ ports.BlobStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates <dir>/quotevault.db and migrates it.
// A dir of ":memory:" opens a private in-memory database.
func NewSQLiteStore(dir string, logger *slog.Logger) (*SQLiteStore, error) {
	path := dir
	if dir != ":memory:" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}

		path = filepath.Join(dir, SQLiteFile)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	applied, err := s.migrate(context.Background())
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	if applied > 0 && logger != nil {
		logger.Info("database migrated", slog.Int("applied", applied), slog.Int("version", len(migrations)))
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) migrate(ctx context.Context) (int, error) {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`); err != nil {
		return 0, err
	}

	var current int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return 0, err
	}

	applied := 0

	for i := current; i < len(migrations); i++ {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return applied, err
		}

		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			_ = tx.Rollback()

			return applied, fmt.Errorf("migration %d: %w", i+1, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
			i+1, time.Now().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()

			return applied, fmt.Errorf("migration %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("migration %d: %w", i+1, err)
		}

		applied++
	}

	return applied, nil
}

// Name implements ports.HealthChecker.
func (s *SQLiteStore) Name() string { return "blobstore" }

// Check pings the database.
func (s *SQLiteStore) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Load implements ports.BlobStore.
func (s *SQLiteStore) Load(ctx context.Context, p ports.Partition) ([]byte, error) {
	var data []byte

	err := s.db.QueryRowContext(ctx, `SELECT data FROM blobs WHERE name = ?`, string(p)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("partition", string(p))
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}

	return data, nil
}

// Save implements ports.BlobStore.
func (s *SQLiteStore) Save(ctx context.Context, p ports.Partition, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blobs (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(p), data, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}

	return nil
}

// Close implements ports.BlobStore.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
