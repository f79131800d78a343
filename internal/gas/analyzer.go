package gas

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Analyzer walks a range of recent blocks and collects their metrics.
//
// Workers bounds how many fetches run at once. The default of 1 keeps the
// original strictly sequential model: one call in flight, oldest block first.
// Higher values fetch concurrently; output order is unaffected because every
// result is placed by range index, and progress is still reported once per
// completed fetch.
type Analyzer struct {
	fetcher  *Fetcher
	workers  int
	progress ProgressSink
}

func NewAnalyzer(fetcher *Fetcher, workers int, progress ProgressSink) *Analyzer {
	if workers < 1 {
		workers = 1
	}
	if progress == nil {
		progress = NopProgress
	}
	return &Analyzer{fetcher: fetcher, workers: workers, progress: progress}
}

// Analyze queries the chain head once, then fetches the count most recent
// blocks ending at the head and returns their metrics ordered oldest first
// with block numbers increasing by exactly 1.
//
// When count exceeds the chain height the range is clamped to start at block
// 0; the returned length and the progress total reflect the clamped count.
// Any fetch failure aborts the run and discards all partial results.
func (a *Analyzer) Analyze(ctx context.Context, count int) ([]BlockMetrics, error) {
	head, err := a.fetcher.client.BlockNumber(ctx)
	if err != nil {
		return nil, &FetchError{BlockArg: "latest", Err: err}
	}

	start := uint64(0)
	if uint64(count) <= head {
		start = head - uint64(count) + 1
	}
	total := int(head - start + 1)

	results := make([]BlockMetrics, total)

	if a.workers == 1 {
		for i := 0; i < total; i++ {
			number := start + uint64(i)
			m, err := a.fetcher.FetchNumber(ctx, number)
			if err != nil {
				return nil, err
			}
			results[i] = m
			a.progress.Report(number, i+1, total)
		}
		return results, nil
	}

	var (
		mu        sync.Mutex
		processed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i := 0; i < total; i++ {
		i := i
		g.Go(func() error {
			number := start + uint64(i)
			m, err := a.fetcher.FetchNumber(gctx, number)
			if err != nil {
				return err
			}

			mu.Lock()
			results[i] = m
			processed++
			a.progress.Report(number, processed, total)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
