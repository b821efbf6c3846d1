package poll

import (
	"testing"
	"time"
)

func TestStatsMonotonicCounters(t *testing.T) {
	s := NewStats(time.Now())

	for i := 0; i < 4; i++ {
		s.Record(Result{Latency: 10 * time.Millisecond})
	}
	for i := 0; i < 2; i++ {
		s.Record(Result{Failure: failf(ReasonNetworkTimeout, "slow")})
	}

	if s.Successes != 4 {
		t.Errorf("Successes = %d, want 4", s.Successes)
	}
	if s.Failures != 2 {
		t.Errorf("Failures = %d, want 2", s.Failures)
	}
	if s.Cycles != 6 {
		t.Errorf("Cycles = %d, want 6", s.Cycles)
	}
}

// Scenario from the polling contract: success(100ms), failure, success(200ms)
// over three cycles.
func TestStatsAlternatingScenario(t *testing.T) {
	s := NewStats(time.Now())

	s.Record(Result{Latency: 100 * time.Millisecond})
	s.Record(Result{Failure: failf(ReasonNetworkRefused, "down")})
	s.Record(Result{Latency: 200 * time.Millisecond})

	if s.Cycles != 3 {
		t.Errorf("Cycles = %d, want 3", s.Cycles)
	}
	if s.Successes != 2 {
		t.Errorf("Successes = %d, want 2", s.Successes)
	}
	if s.Failures != 1 {
		t.Errorf("Failures = %d, want 1", s.Failures)
	}
	if avg := s.AverageLatency(); avg != 150*time.Millisecond {
		t.Errorf("AverageLatency = %v, want 150ms", avg)
	}
}

func TestStatsFailuresDoNotDistortAverage(t *testing.T) {
	s := NewStats(time.Now())
	s.Record(Result{Latency: 80 * time.Millisecond})
	before := s.AverageLatency()

	s.Record(Result{Failure: failf(ReasonHTTPStatus, "HTTP 500"), Latency: 3 * time.Second})

	if got := s.AverageLatency(); got != before {
		t.Errorf("AverageLatency changed after failure: %v -> %v", before, got)
	}
	if s.LastLatency != 80*time.Millisecond {
		t.Errorf("LastLatency = %v, should only track successes", s.LastLatency)
	}
}

func TestStatsAverageZeroWithNoSuccesses(t *testing.T) {
	s := NewStats(time.Now())
	s.Record(Result{Failure: failf(ReasonFileNotFound, "missing")})
	if s.AverageLatency() != 0 {
		t.Errorf("AverageLatency = %v, want 0", s.AverageLatency())
	}
}

func TestStatsHistoryCapped(t *testing.T) {
	s := NewStats(time.Now())
	for i := 0; i < historyCap+25; i++ {
		s.Record(Result{Latency: time.Duration(i) * time.Millisecond})
	}
	h := s.History()
	if len(h) != historyCap {
		t.Fatalf("history length = %d, want %d", len(h), historyCap)
	}
	// Oldest entries fall off the front.
	if h[len(h)-1] != float64(historyCap+24) {
		t.Errorf("newest history entry = %v, want %v", h[len(h)-1], float64(historyCap+24))
	}
}
