package cmd

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize bounds concurrent requests for multi-id commands
const DefaultBatchSize = 8

// batchResult is the outcome of one id in a batch
type batchResult[T any] struct {
	ID       int64
	Response *T
	Err      error
}

// fetchAll runs fetch for every id with bounded concurrency.
// A failed id does not cancel the others; results keep the order of ids.
func fetchAll[T any](ctx context.Context, ids []int64, limit int, fetch func(context.Context, int64) (*T, error)) []batchResult[T] {
	results := make([]batchResult[T], len(ids))
	if limit <= 0 {
		limit = DefaultBatchSize
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			resp, err := fetch(ctx, id)
			results[i] = batchResult[T]{ID: id, Response: resp, Err: err}
			if err != nil {
				logger.Warn().
					Err(err).
					Int64("id", id).
					Msg("Request failed")
			}
			// Continue processing other ids
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// parseIDs converts positional arguments into resource ids
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q: must be a positive integer", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// countFailures returns how many results carry an error
func countFailures[T any](results []batchResult[T]) int {
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	return failed
}
