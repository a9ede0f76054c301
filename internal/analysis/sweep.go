package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Sweep runs independent analyses concurrently. Each analysis is a pure
// computation over its own inputs, so the only shared work is file output
// into per-analysis directories. The first failure cancels the rest.
func Sweep(ctx context.Context, reqs []Request) ([]*Result, error) {
	results := make([]*Result, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := Run(ctx, req)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
