// Package poll implements the polling side of svcpulse: individual source
// pollers (HTTP endpoints and local JSON files), the aggregate fetcher that
// runs them concurrently and merges one immutable Snapshot per cycle, and
// the cumulative Stats fed by the primary source.
//
// A poller failure is data, not an error: it becomes a Failure value in the
// source's Snapshot slot and never aborts a cycle.
package poll

import "context"

// Payload is the decoded body of one successful poll. The concrete fields
// are owned by the monitored service; widgets pick out the keys they know.
type Payload map[string]any

// Source performs one fetch attempt against one data source. Implementations
// must be safe for use from the fetcher's per-source goroutine.
type Source interface {
	// Name returns the unique identifier for this source (e.g. "health").
	Name() string

	// Poll performs one fetch attempt. On failure the returned error is a
	// *Failure carrying the classified reason; the payload is nil. Poll
	// never retries — the next cycle is the retry.
	Poll(ctx context.Context) (Payload, error)
}

// String returns the payload's value for key if it is a string, or "".
func (p Payload) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// Float returns the payload's value for key as a float64. JSON numbers
// decode as float64; integers stored by tests are converted too.
func (p Payload) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
