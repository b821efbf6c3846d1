package poll

import "time"

// Result is one source's outcome within a Snapshot: either a payload or a
// classified failure, plus the wall time the poll took.
type Result struct {
	Payload Payload
	Failure *Failure
	Latency time.Duration
}

// OK reports whether the poll succeeded.
func (r Result) OK() bool { return r.Failure == nil }

// Snapshot is the immutable merged outcome of one polling cycle. It always
// carries exactly one Result per configured source — never a partial or
// missing slot — and is never mutated after NewSnapshot returns.
type Snapshot struct {
	Time    time.Time
	results map[string]Result
	order   []string
}

// NewSnapshot assembles a snapshot from per-source results. order lists the
// configured source names; every name must have an entry in results.
func NewSnapshot(at time.Time, order []string, results map[string]Result) Snapshot {
	return Snapshot{Time: at, results: results, order: order}
}

// Result returns the named source's result. The second return is false only
// for names that were never configured.
func (s Snapshot) Result(name string) (Result, bool) {
	r, ok := s.results[name]
	return r, ok
}

// Sources returns the configured source names in registration order.
func (s Snapshot) Sources() []string { return s.order }
