package poll

import (
	"context"
	"testing"
	"time"
)

func TestFetchAllIsolatesFailures(t *testing.T) {
	a := NewMockSource("a", WithPayload(Payload{"v": 1.0}))
	b := NewMockSource("b", WithFailure(failf(ReasonNetworkRefused, "down")))
	c := NewMockSource("c", WithPayload(Payload{"v": 3.0}))

	f := NewFetcher([]Source{a, b, c}, "a", nil, nil)
	snap := f.FetchAll(context.Background())

	ra, _ := snap.Result("a")
	if !ra.OK() {
		t.Errorf("a should succeed despite b failing: %v", ra.Failure)
	}
	if v, _ := ra.Payload.Float("v"); v != 1.0 {
		t.Errorf("a payload v = %v, want 1.0", v)
	}

	rb, _ := snap.Result("b")
	if rb.OK() {
		t.Error("b should have failed")
	}
	if rb.Failure.Reason != ReasonNetworkRefused {
		t.Errorf("b Reason = %v, want refused", rb.Failure.Reason)
	}

	rc, _ := snap.Result("c")
	if !rc.OK() {
		t.Errorf("c should succeed despite b failing: %v", rc.Failure)
	}
}

func TestFetchAllCompleteness(t *testing.T) {
	sources := []Source{
		NewMockSource("health"),
		NewMockSource("stats", WithFailure(failf(ReasonDecode, "bad body"))),
		NewMockSource("ingest", WithFailure(failf(ReasonFileNotFound, "missing"))),
	}
	f := NewFetcher(sources, "health", nil, nil)
	snap := f.FetchAll(context.Background())

	names := snap.Sources()
	if len(names) != 3 {
		t.Fatalf("Sources() has %d entries, want 3", len(names))
	}
	for _, name := range []string{"health", "stats", "ingest"} {
		if _, ok := snap.Result(name); !ok {
			t.Errorf("snapshot missing slot for %q", name)
		}
	}
	if _, ok := snap.Result("bogus"); ok {
		t.Error("snapshot should not have a slot for an unconfigured source")
	}
}

func TestFetchAllRunsConcurrently(t *testing.T) {
	// Three sources sleeping 50ms each: serial execution would take 150ms.
	const delay = 50 * time.Millisecond
	sources := []Source{
		NewMockSource("a", WithDelay(delay)),
		NewMockSource("b", WithDelay(delay)),
		NewMockSource("c", WithDelay(delay)),
	}
	f := NewFetcher(sources, "a", nil, nil)

	start := time.Now()
	f.FetchAll(context.Background())
	elapsed := time.Since(start)

	if elapsed >= 3*delay {
		t.Errorf("cycle took %v, sources appear to run serially", elapsed)
	}
}

func TestFetchAllWaitsForSlowest(t *testing.T) {
	const delay = 60 * time.Millisecond
	fast := NewMockSource("fast")
	slow := NewMockSource("slow", WithDelay(delay))

	f := NewFetcher([]Source{fast, slow}, "fast", nil, nil)
	start := time.Now()
	snap := f.FetchAll(context.Background())
	elapsed := time.Since(start)

	if elapsed < delay {
		t.Errorf("FetchAll returned after %v, before the slow source finished", elapsed)
	}
	if r, ok := snap.Result("slow"); !ok || !r.OK() {
		t.Error("slow source result missing or failed")
	}
}

func TestFetchAllRecordsLatency(t *testing.T) {
	const delay = 30 * time.Millisecond
	s := NewMockSource("health", WithDelay(delay))
	f := NewFetcher([]Source{s}, "health", nil, nil)

	snap := f.FetchAll(context.Background())
	r, _ := snap.Result("health")
	if r.Latency < delay {
		t.Errorf("Latency = %v, want >= %v", r.Latency, delay)
	}
}
