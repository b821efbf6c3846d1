package poll

import (
	"context"
	"sync/atomic"
	"time"
)

// MockSource implements Source for testing. All behavior is configurable
// and it tracks how many times Poll has been called.
type MockSource struct {
	name      string
	payload   Payload
	failure   *Failure
	delay     time.Duration
	pollCount atomic.Int64

	// PollFunc, if set, overrides the default Poll behavior. This allows
	// tests to inject dynamic behavior (e.g., alternate success/failure
	// across cycles).
	PollFunc func(ctx context.Context) (Payload, error)
}

// MockOption configures a MockSource.
type MockOption func(*MockSource)

// WithPayload sets the payload returned by Poll.
func WithPayload(p Payload) MockOption {
	return func(m *MockSource) { m.payload = p }
}

// WithFailure makes Poll return the given failure.
func WithFailure(f *Failure) MockOption {
	return func(m *MockSource) { m.failure = f }
}

// WithDelay makes Poll sleep before returning, to simulate a slow source.
func WithDelay(d time.Duration) MockOption {
	return func(m *MockSource) { m.delay = d }
}

// WithPollFunc sets a custom function for Poll.
func WithPollFunc(fn func(ctx context.Context) (Payload, error)) MockOption {
	return func(m *MockSource) { m.PollFunc = fn }
}

// NewMockSource creates a mock source with the given name and options.
// Without options it succeeds with an empty payload.
func NewMockSource(name string, opts ...MockOption) *MockSource {
	m := &MockSource{name: name, payload: Payload{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the source identifier.
func (m *MockSource) Name() string { return m.name }

// Poll returns the configured payload or failure after the configured delay.
func (m *MockSource) Poll(ctx context.Context) (Payload, error) {
	m.pollCount.Add(1)
	if m.PollFunc != nil {
		return m.PollFunc(ctx)
	}
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, failf(ReasonNetworkTimeout, "poll cancelled")
		}
	}
	if m.failure != nil {
		return nil, m.failure
	}
	return m.payload, nil
}

// PollCount returns how many times Poll has been called.
func (m *MockSource) PollCount() int64 { return m.pollCount.Load() }
