package poll

import "time"

// historyCap bounds the latency history kept for sparkline display. The
// average is computed from the full running sum, not this window.
const historyCap = 60

// Stats holds cumulative polling counters across the process lifetime.
// They are fed by the primary source's outcome, one Record call per cycle,
// always on the run loop's control thread. Counters are monotonically
// non-decreasing; the average is recomputed from the running latency sum.
type Stats struct {
	Start       time.Time
	Cycles      int64
	Successes   int64
	Failures    int64
	LastLatency time.Duration

	latencySum time.Duration
	history    []float64
}

// NewStats returns Stats anchored at the given process start time.
func NewStats(start time.Time) *Stats {
	return &Stats{Start: start}
}

// Record folds one cycle's primary-source result into the counters. Only
// successful polls contribute to the latency sum and history.
func (s *Stats) Record(r Result) {
	s.Cycles++
	if !r.OK() {
		s.Failures++
		return
	}
	s.Successes++
	s.LastLatency = r.Latency
	s.latencySum += r.Latency

	s.history = append(s.history, float64(r.Latency.Milliseconds()))
	if len(s.history) > historyCap {
		s.history = s.history[len(s.history)-historyCap:]
	}
}

// AverageLatency returns the mean latency over successful polls, or zero
// when no poll has succeeded yet.
func (s *Stats) AverageLatency() time.Duration {
	if s.Successes == 0 {
		return 0
	}
	return s.latencySum / time.Duration(s.Successes)
}

// History returns the recent success latencies in milliseconds, oldest
// first, capped to the sparkline window. Callers must not mutate it.
func (s *Stats) History() []float64 { return s.history }

// Uptime returns how long the process has been running.
func (s *Stats) Uptime(now time.Time) time.Duration {
	return now.Sub(s.Start)
}
