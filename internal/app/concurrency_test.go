package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

func TestParallel(t *testing.T) {
	results, err := Parallel(context.Background(),
		func(context.Context) (int, error) {
			time.Sleep(10 * time.Millisecond)
			return 1, nil
		},
		func(context.Context) (int, error) { return 2, nil },
		func(context.Context) (int, error) { return 3, nil },
	)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, results)
}

func TestParallel_ErrorCancelsOthers(t *testing.T) {
	sentinel := errors.New("partition unreadable")

	results, err := Parallel(context.Background(),
		func(context.Context) (int, error) { return 0, sentinel },
		func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		},
	)

	require.ErrorIs(t, err, sentinel)
	assert.Nil(t, results)
}

func TestParallel2(t *testing.T) {
	n, s, err := Parallel2(context.Background(),
		func(context.Context) (int, error) { return 7, nil },
		func(context.Context) (string, error) { return "seven", nil },
	)

	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "seven", s)

	n, s, err = Parallel2(context.Background(),
		func(context.Context) (int, error) { return 7, nil },
		func(context.Context) (string, error) { return "partial", errors.New("failed") },
	)

	require.Error(t, err)
	assert.Zero(t, n)
	assert.Empty(t, s)
}

func TestVault_ConcurrentAddsRespectQuota(t *testing.T) {
	const (
		limit   = 10
		workers = 40
	)

	tv := newTestVault(t, withFreeLimit(limit))

	var (
		wg       sync.WaitGroup
		created  atomic.Int32
		refused  atomic.Int32
		start    = make(chan struct{})
		failures = make(chan error, workers)
	)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()
			<-start

			_, ok, err := tv.AddCollection(context.Background(), NewCollection{Title: "Burst", Quotes: []string{"One."}})

			switch {
			case err == nil && ok:
				created.Add(1)
			case domain.IsQuotaExceeded(err):
				refused.Add(1)
			default:
				failures <- err
			}
		}()
	}

	close(start)
	wg.Wait()
	close(failures)

	for err := range failures {
		t.Errorf("unexpected result: %v", err)
	}

	assert.Equal(t, int32(limit), created.Load())
	assert.Equal(t, int32(workers-limit), refused.Load())
	assert.Equal(t, limit, tv.TotalQuotes())
	assert.Equal(t, limit, tv.reopen(t).TotalQuotes())
}

func TestVault_ConcurrentClaimsCreditOnce(t *testing.T) {
	tv := newTestVault(t)

	var (
		wg      sync.WaitGroup
		claimed atomic.Int32
	)

	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, err := tv.ClaimDailyReward(context.Background()); err == nil {
				claimed.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), claimed.Load())
	assert.Equal(t, DefaultDailyRewardCredits, tv.Account().Credits)
}

func TestVault_ConcurrentReadsDuringWrites(t *testing.T) {
	tv := newTestVault(t, withFreeLimit(1000))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for ctx.Err() == nil {
			_ = tv.Collections()
			_ = tv.RecentQuotes(3)
			_ = tv.SearchQuotes("quote")
			_ = tv.QuotaStatus()
		}
	}()

	for range 50 {
		tv.addCollection(t, "Quote batch", "", "A quote.")
	}

	cancel()
	wg.Wait()

	assert.Equal(t, 50, tv.CollectionCount())
}
