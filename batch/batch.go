package batch

import (
	"context"
	"fmt"
	"runtime"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/sparsetable"
	"github.com/hupe1980/sparsetable/internal/conv"
	"github.com/hupe1980/sparsetable/resource"
	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of ranges a single task answers.
const DefaultChunkSize = 256

// Range is a half-open query range [Begin, End).
type Range struct {
	Begin int
	End   int
}

// Result is a combined value together with the position that produced it.
type Result[T any] struct {
	Value T
	Index int
}

// Options configures a batch.
type Options struct {
	// Concurrency bounds the number of tasks in flight.
	// If 0, defaults to runtime.GOMAXPROCS(0).
	Concurrency int

	// ChunkSize is the number of ranges per task.
	// If 0, defaults to DefaultChunkSize.
	ChunkSize int

	// Controller, if set, must grant a worker slot before each task starts.
	Controller *resource.Controller
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	return o
}

// Run answers every range in ranges with q.Query.
func Run[T any](ctx context.Context, q sparsetable.Querier[T], ranges []Range, opts Options) ([]T, error) {
	out := make([]T, len(ranges))
	err := forEach(ctx, len(ranges), opts, func(i int) error {
		v, err := q.Query(ranges[i].Begin, ranges[i].End)
		if err != nil {
			return fmt.Errorf("batch: range %d: %w", i, err)
		}
		out[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RunIndex answers every range in ranges with q.QueryValueIndex.
func RunIndex[T any](ctx context.Context, q sparsetable.IndexQuerier[T], ranges []Range, opts Options) ([]Result[T], error) {
	out := make([]Result[T], len(ranges))
	err := forEach(ctx, len(ranges), opts, func(i int) error {
		v, pos, err := q.QueryValueIndex(ranges[i].Begin, ranges[i].End)
		if err != nil {
			return fmt.Errorf("batch: range %d: %w", i, err)
		}
		out[i] = Result[T]{Value: v, Index: pos}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Winners returns the set of distinct positions that won at least one of
// the ranges.
func Winners[T any](ctx context.Context, q sparsetable.IndexQuerier[T], ranges []Range, opts Options) (*roaring.Bitmap, error) {
	results, err := RunIndex(ctx, q, ranges, opts)
	if err != nil {
		return nil, err
	}

	positions := make([]uint32, len(results))
	for i, r := range results {
		p, err := conv.To[uint32](r.Index)
		if err != nil {
			return nil, fmt.Errorf("batch: position %d: %w", r.Index, err)
		}
		positions[i] = p
	}

	bm := roaring.New()
	bm.AddMany(positions)
	bm.RunOptimize()
	return bm, nil
}

func forEach(ctx context.Context, n int, opts Options, fn func(i int) error) error {
	opts = opts.withDefaults()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for start := 0; start < n; start += opts.ChunkSize {
		end := min(start+opts.ChunkSize, n)

		if err := opts.Controller.AcquireWorker(gctx); err != nil {
			if werr := g.Wait(); werr != nil {
				return werr
			}
			return err
		}

		g.Go(func() error {
			defer opts.Controller.ReleaseWorker()
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
