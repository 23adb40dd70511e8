package filter

import (
	"context"
	"runtime"
	"sync"

	"github.com/s0up4200/goplaces/places"
	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the number of spots below which evaluation stays sequential
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator implements both Evaluator and BatchEvaluator
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the spots matching filter in their input order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, spots []*places.Spot) ([]*places.Spot, error) {
	if len(spots) == 0 {
		return []*places.Spot{}, nil
	}

	// Searches rarely return more than a few pages.
	if len(spots) < e.batchSize {
		return evaluateSequential(filter, spots), nil
	}

	return e.evaluateConcurrent(ctx, filter, spots)
}

// EvaluateBatch evaluates multiple filters against spots concurrently
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, spots []*places.Spot) (map[string][]*places.Spot, error) {
	results := make(map[string][]*places.Spot, len(filters))
	if len(filters) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for name, filter := range filters {
		g.Go(func() error {
			matches, err := e.Evaluate(ctx, filter, spots)
			if err != nil {
				return err
			}

			mu.Lock()
			results[name] = matches
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func evaluateSequential(filter CompiledFilter, spots []*places.Spot) []*places.Spot {
	matches := make([]*places.Spot, 0, len(spots))
	for _, spot := range spots {
		if filter.Evaluate(spot) {
			matches = append(matches, spot)
		}
	}
	return matches
}

// evaluateConcurrent splits spots into chunks evaluated in parallel
func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, spots []*places.Spot) ([]*places.Spot, error) {
	chunkSize := max(len(spots)/e.workerCount, e.batchSize)
	chunks := make([][]*places.Spot, (len(spots)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(spots))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks[i] = evaluateSequential(filter, spots[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}

	matches := make([]*places.Spot, 0, total)
	for _, chunk := range chunks {
		matches = append(matches, chunk...)
	}

	return matches, nil
}
