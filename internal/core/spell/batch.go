package spell

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// GenerateBatch generates one spell per seed concurrently. Each spell gets its
// own stream, so the results equal calling Generate for every seed in order.
// Options, including hooks, are shared across goroutines and must be safe for
// concurrent use.
func GenerateBatch(ctx context.Context, seeds []any, effectCount int, opts ...Option) ([]Spell, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	spells := make([]Spell, len(seeds))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, seed := range seeds {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			s, err := Generate(seed, effectCount, opts...)
			if err != nil {
				return fmt.Errorf("generate spell %d: %w", i, err)
			}
			spells[i] = s
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return spells, nil
}
