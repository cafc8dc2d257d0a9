package custodian

import (
	"context"
	"sync"
)

// ForEachBounded runs fn once per item with at most width concurrent
// goroutines, a fixed batch width that keeps per-resource lookups under
// provider rate limits. Results are flattened in input order. The first
// error cancels remaining work and is returned.
func ForEachBounded[T, R any](ctx context.Context, width int, items []T, fn func(context.Context, T) ([]R, error)) ([]R, error) {
	if width < 1 {
		width = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	results := make([][]R, len(items))
	sem := make(chan struct{}, width)

	for i, item := range items {
		select {
		case <-ctx.Done():
			mu.Lock()
			if firstErr == nil {
				firstErr = ctx.Err()
			}
			mu.Unlock()
		case sem <- struct{}{}:
			wg.Add(1)
			go func(i int, item T) {
				defer wg.Done()
				defer func() { <-sem }()

				res, err := fn(ctx, item)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
						cancel()
					}
					return
				}
				results[i] = res
			}(i, item)
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	var flat []R
	for _, res := range results {
		flat = append(flat, res...)
	}
	return flat, nil
}
