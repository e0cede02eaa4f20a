package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Operation is one unit of work submitted to BatchExecute.
type Operation func(ctx context.Context) error

// BatchExecute runs operations in chunks of batchSize, waiting for each chunk
// to settle before starting the next. Every operation runs regardless of the
// others' outcome; the returned slice holds one error (or nil) per operation
// in submission order.
func BatchExecute(ctx context.Context, operations []Operation, batchSize int) []error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	results := make([]error, len(operations))

	for start := 0; start < len(operations); start += batchSize {
		end := min(start+batchSize, len(operations))

		var g errgroup.Group
		for i := start; i < end; i++ {
			i := i
			op := operations[i]
			g.Go(func() error {
				results[i] = op(ctx)
				return nil
			})
		}
		_ = g.Wait()
	}

	return results
}
