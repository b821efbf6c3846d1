package poll

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Fetcher runs all configured sources concurrently for one cycle and merges
// their results into a Snapshot. Failures are isolated per source: a slot
// holds either a payload or a failure, and one source can never block
// another beyond its own timeout.
type Fetcher struct {
	sources []Source
	primary string
	client  *http.Client
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher over the given sources. primary names the
// source whose outcome feeds cumulative Stats; it must be one of the
// sources' names. The shared client is released by Close.
func NewFetcher(sources []Source, primary string, client *http.Client, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{
		sources: sources,
		primary: primary,
		client:  client,
		logger:  logger,
	}
}

// Primary returns the name of the source that feeds Stats.
func (f *Fetcher) Primary() string { return f.primary }

// FetchAll runs one polling cycle: one goroutine per source, each writing
// its own isolated slot, joined before the merge. It returns only after
// every poll has completed or timed out, so the cycle's wall time is
// bounded by the slowest source, not the sum.
func (f *Fetcher) FetchAll(ctx context.Context) Snapshot {
	start := time.Now()
	slots := make([]Result, len(f.sources))

	var wg sync.WaitGroup
	for i, src := range f.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			pollStart := time.Now()
			payload, err := src.Poll(ctx)
			latency := time.Since(pollStart)

			if err != nil {
				slots[i] = Result{Failure: asFailure(err), Latency: latency}
				return
			}
			slots[i] = Result{Payload: payload, Latency: latency}
		}(i, src)
	}
	wg.Wait()

	order := make([]string, 0, len(f.sources))
	results := make(map[string]Result, len(f.sources))
	for i, src := range f.sources {
		order = append(order, src.Name())
		results[src.Name()] = slots[i]
		if fail := slots[i].Failure; fail != nil {
			f.logger.Debug("source poll failed",
				"source", src.Name(),
				"reason", fail.Reason.String(),
				"error", fail.Message,
			)
		}
	}
	return NewSnapshot(start, order, results)
}

// Close releases the shared HTTP client's idle connections.
func (f *Fetcher) Close() {
	if f.client != nil {
		f.client.CloseIdleConnections()
	}
}

// asFailure normalizes any error returned by a Source into a *Failure so
// snapshot slots are uniformly classified.
func asFailure(err error) *Failure {
	if f, ok := err.(*Failure); ok {
		return f
	}
	return failf(ReasonNetworkRefused, "%v", err)
}
