package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Parallel runs fns concurrently and returns their results in order. The
// first error cancels the shared context and is returned.
func Parallel[T any](ctx context.Context, fns ...func(context.Context) (T, error)) ([]T, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]T, len(fns))

	for i, fn := range fns {
		g.Go(func() error {
			result, err := fn(ctx)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parallel: %w", err)
	}

	return results, nil
}

// Parallel2 runs two differently typed functions concurrently.
func Parallel2[T1, T2 any](
	ctx context.Context,
	fn1 func(context.Context) (T1, error),
	fn2 func(context.Context) (T2, error),
) (T1, T2, error) {
	var (
		r1 T1
		r2 T2
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		r1, err = fn1(ctx)

		return err
	})

	g.Go(func() (err error) {
		r2, err = fn2(ctx)

		return err
	})

	if err := g.Wait(); err != nil {
		var (
			zero1 T1
			zero2 T2
		)

		return zero1, zero2, fmt.Errorf("parallel: %w", err)
	}

	return r1, r2, nil
}
