// Package app contains the QuoteVault store and its use cases.
//
// The Vault owns the in-memory entity graph. Every mutation is applied to a
// copy of that graph, flushed through the blob store, and only then made
// visible. Readers never observe a state that failed to persist.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quotevault/internal/app/txn"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Defaults applied when VaultConfig leaves a limit at zero.
const (
	DefaultFreeLimit          = 20
	DefaultDailyRewardCredits = 10
	DefaultHistoryRetention   = 30 * 24 * time.Hour
	DefaultMaxImages          = 10
	DefaultRecentLimit        = 5
)

// VaultConfig contains the dependencies and rules of a Vault.
type VaultConfig struct {
	Store      ports.BlobStore
	Classifier ports.Classifier
	Logger     *slog.Logger

	// Now defaults to time.Now. Location defaults to time.Local and defines
	// calendar days for the daily reward and the "today" history filter.
	Now      func() time.Time
	Location *time.Location

	// NewID defaults to uuid.NewString. RandIntN defaults to rand.IntN.
	NewID    func() string
	RandIntN func(n int) int

	FreeLimit          int
	DailyRewardCredits int
	HistoryRetention   time.Duration
	MaxImages          int
	RecentLimit        int
}

// Vault is the single store object for categories, collections, the
// account, and link history.
type Vault struct {
	store      ports.BlobStore
	classifier ports.Classifier
	logger     *slog.Logger
	executor   *Executor

	now      func() time.Time
	loc      *time.Location
	newID    func() string
	randIntN func(int) int

	freeLimit          int
	dailyRewardCredits int
	historyRetention   time.Duration
	maxImages          int
	recentLimit        int

	mu        sync.RWMutex
	state     *state
	persisted map[ports.Partition][]byte
}

// NewVault creates a vault holding the default categories and nothing else.
// Call Load to read persisted state. Panics if Store or Classifier is nil.
func NewVault(cfg *VaultConfig) *Vault {
	if cfg.Store == nil {
		panic("app.NewVault: Store is required")
	}

	if cfg.Classifier == nil {
		panic("app.NewVault: Classifier is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "app.Vault"))

	v := &Vault{
		store:              cfg.Store,
		classifier:         cfg.Classifier,
		logger:             logger,
		executor:           NewExecutor(logger),
		now:                cfg.Now,
		loc:                cfg.Location,
		newID:              cfg.NewID,
		randIntN:           cfg.RandIntN,
		freeLimit:          orDefault(cfg.FreeLimit, DefaultFreeLimit),
		dailyRewardCredits: orDefault(cfg.DailyRewardCredits, DefaultDailyRewardCredits),
		historyRetention:   orDefault(cfg.HistoryRetention, DefaultHistoryRetention),
		maxImages:          orDefault(cfg.MaxImages, DefaultMaxImages),
		recentLimit:        orDefault(cfg.RecentLimit, DefaultRecentLimit),
		state:              &state{categories: domain.DefaultCategories()},
		persisted:          make(map[ports.Partition][]byte),
	}

	if v.now == nil {
		v.now = time.Now
	}

	if v.loc == nil {
		v.loc = time.Local
	}

	if v.newID == nil {
		v.newID = uuid.NewString
	}

	if v.randIntN == nil {
		v.randIntN = rand.IntN
	}

	return v
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}

	return v
}

// state is the full entity graph.
type state struct {
	collections []domain.Collection
	account     domain.UserAccount
	history     []domain.LinkHistoryItem
	categories  []domain.Category
}

func (s *state) clone() *state {
	out := &state{
		collections: make([]domain.Collection, len(s.collections)),
		account:     s.account.Clone(),
		history:     append([]domain.LinkHistoryItem(nil), s.history...),
		categories:  append([]domain.Category(nil), s.categories...),
	}

	for i, c := range s.collections {
		out.collections[i] = c.Clone()
	}

	return out
}

// Load reads all partitions, seeds missing categories, and prunes link
// history older than the retention window. Pruning happens only here.
func (v *Vault) Load(ctx context.Context) error {
	blobs, err := Parallel(ctx, v.loaders()...)
	if err != nil {
		return fmt.Errorf("loading vault: %w", err)
	}

	raw := make(map[ports.Partition][]byte, len(blobs))
	for i, p := range ports.Partitions {
		if blobs[i] != nil {
			raw[p] = blobs[i]
		}
	}

	loaded, err := decodeState(raw)
	if err != nil {
		return fmt.Errorf("decoding vault: %w", err)
	}

	if loaded.categories == nil {
		loaded.categories = domain.DefaultCategories()
	}

	if categoryIndex(loaded.categories, domain.OtherCategoryID) < 0 {
		loaded.categories = append(loaded.categories, domain.OtherCategory())
	}

	dropped := v.pruneHistory(loaded)

	v.mu.Lock()
	v.state = loaded
	v.persisted = raw
	v.mu.Unlock()

	v.logger.InfoContext(ctx, "vault loaded",
		slog.Int("collections", len(loaded.collections)),
		slog.Int("quotes", domain.CountQuotes(loaded.collections)),
		slog.Int("categories", len(loaded.categories)),
		slog.Int("history", len(loaded.history)),
		slog.Int("history_pruned", dropped),
	)

	return nil
}

func (v *Vault) loaders() []func(context.Context) ([]byte, error) {
	fns := make([]func(context.Context) ([]byte, error), len(ports.Partitions))

	for i, p := range ports.Partitions {
		fns[i] = func(ctx context.Context) ([]byte, error) {
			data, err := v.store.Load(ctx, p)
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil
			}

			if err != nil {
				return nil, fmt.Errorf("partition %s: %w", p, err)
			}

			return data, nil
		}
	}

	return fns
}

func (v *Vault) pruneHistory(s *state) int {
	cutoff := v.now().Add(-v.historyRetention)
	kept := s.history[:0]

	for _, item := range s.history {
		if !item.CreatedAt.Before(cutoff) {
			kept = append(kept, item)
		}
	}

	dropped := len(s.history) - len(kept)
	s.history = kept

	return dropped
}

// mutation changes s in place. It reports whether anything changed; an
// unchanged state is not flushed. A returned error aborts the mutation.
type mutation func(s *state) (changed bool, err error)

// mutate applies fn to a copy of the state, flushes it, and swaps it in.
func (v *Vault) mutate(ctx context.Context, op string, fn mutation) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := v.state.clone()

	changed, err := fn(next)
	if err != nil {
		return err
	}

	if !changed {
		v.logger.DebugContext(ctx, "mutation was a no-op", slog.String("op", op))

		return nil
	}

	if err := v.flush(ctx, next); err != nil {
		v.logger.ErrorContext(ctx, "flush failed, mutation discarded",
			slog.String("op", op),
			slog.Any("error", err),
		)

		return domain.NewUnavailableError("blobstore", err.Error())
	}

	v.state = next

	return nil
}

// flush writes every partition whose encoding differs from what was last
// persisted. Earlier writes are restored if a later one fails.
func (v *Vault) flush(ctx context.Context, next *state) error {
	encoded, err := encodeState(next)
	if err != nil {
		return err
	}

	// A partition never written before is restored to the in-memory state
	// the mutation started from, so a reload sees what memory holds.
	current, err := encodeState(v.state)
	if err != nil {
		return err
	}

	tx := txn.New(v.logger)

	for _, p := range ports.Partitions {
		data := encoded[p]

		previous, existed := v.persisted[p]
		if existed && string(previous) == string(data) {
			continue
		}

		if !existed {
			previous = current[p]
		}

		if err := tx.Add(txn.Func{
			Name: "save " + string(p),
			Do:   func(ctx context.Context) error { return v.store.Save(ctx, p, data) },
			Undo: func(ctx context.Context) error { return v.store.Save(ctx, p, previous) },
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	for p, data := range encoded {
		v.persisted[p] = data
	}

	return nil
}

// read runs fn under the read lock.
func (v *Vault) read(fn func(s *state)) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	fn(v.state)
}

// timestamp returns the current time truncated to the persisted precision.
func (v *Vault) timestamp() time.Time {
	return time.UnixMilli(v.now().UnixMilli())
}

// QuoteCount implements telemetry.VaultStats.
func (v *Vault) QuoteCount() int {
	return v.TotalQuotes()
}

// CollectionCount implements telemetry.VaultStats.
func (v *Vault) CollectionCount() int {
	var n int

	v.read(func(s *state) { n = len(s.collections) })

	return n
}

// Credits implements telemetry.VaultStats.
func (v *Vault) Credits() int {
	var n int

	v.read(func(s *state) { n = s.account.Credits })

	return n
}
