// Package loop implements the cooperative scheduler at the heart of
// svcpulse: a single control goroutine that polls for keystrokes on every
// tick and runs the fetch+render cycle when the refresh interval elapses
// (or a refresh is forced), with interrupt-driven graceful shutdown.
//
// All mutable dashboard state — the cumulative poll stats, the transient
// status message, the refresh flags — is owned here and touched only on
// the loop goroutine. The fetcher's internal fan-out hands back immutable
// snapshots, so no locking is needed anywhere in the render path.
package loop

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"
	"unicode"

	"gitlab.com/tinyland/lab/svcpulse/pkg/frame"
	"gitlab.com/tinyland/lab/svcpulse/pkg/poll"
	"gitlab.com/tinyland/lab/svcpulse/pkg/term"
)

// State is the run loop's lifecycle phase.
type State int

const (
	StateStarting State = iota
	StateRunning
	StateStopping
	StateStopped
)

// String returns the state's lowercase name.
func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Fetcher runs one polling cycle and owns the network client released at
// shutdown. *poll.Fetcher is the production implementation.
type Fetcher interface {
	FetchAll(ctx context.Context) poll.Snapshot
	Primary() string
	Close()
}

// Renderer is the diff renderer surface the loop drives.
// *render.Renderer is the production implementation.
type Renderer interface {
	Render(frame []string) error
	Invalidate()
	Clear() error
	HideCursor() error
	ShowCursor() error
}

// Input is the raw keystroke channel. *term.RawInput is the production
// implementation.
type Input interface {
	Enable(onKey term.KeyFunc) error
	PollOnce()
	Disable() error
}

// Builder turns one cycle's context into the full frame.
// *frame.Builder is the production implementation.
type Builder interface {
	Build(ctx frame.Context) []string
}

// Config carries the loop's timing knobs.
type Config struct {
	// RefreshInterval is how often a fetch+render cycle runs.
	RefreshInterval time.Duration

	// Tick is the cooperative granularity; it bounds keystroke latency
	// and idle CPU use. Defaults to 100ms.
	Tick time.Duration

	// Logger receives loop lifecycle and best-effort error events.
	Logger *slog.Logger
}

// Loop is the cooperative scheduler. Construct with New, register
// commands with Bind, then call Run once.
type Loop struct {
	cfg      Config
	fetcher  Fetcher
	builder  Builder
	renderer Renderer
	input    Input
	logger   *slog.Logger

	stats    *poll.Stats
	status   frame.TransientStatus
	commands map[rune]func()

	state        State
	forceRefresh bool
	stopRequest  bool
	lastRefresh  time.Time
}

// New creates a Loop over the given collaborators.
func New(cfg Config, fetcher Fetcher, builder Builder, renderer Renderer, input Input) *Loop {
	if cfg.Tick <= 0 {
		cfg.Tick = 100 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loop{
		cfg:      cfg,
		fetcher:  fetcher,
		builder:  builder,
		renderer: renderer,
		input:    input,
		logger:   logger,
		stats:    poll.NewStats(time.Now()),
		commands: make(map[rune]func()),
	}
}

// Bind registers action for a keystroke. Dispatch is case-insensitive;
// actions run synchronously on the loop goroutine, between cycles.
func (l *Loop) Bind(ch rune, action func()) {
	l.commands[unicode.ToLower(ch)] = action
}

// ForceRefresh makes the next tick run a fetch+render cycle regardless of
// the refresh interval.
func (l *Loop) ForceRefresh() {
	l.forceRefresh = true
}

// RequestStop asks the loop to shut down. It takes effect at the top of
// the next tick; an in-flight cycle always completes first.
func (l *Loop) RequestStop() {
	l.stopRequest = true
}

// SetStatus shows a transient message in the frame for ttl.
func (l *Loop) SetStatus(message string, ttl time.Duration) {
	l.status.Set(message, ttl, time.Now())
}

// Stats exposes the cumulative poll counters (e.g. for one-shot mode).
func (l *Loop) Stats() *poll.Stats { return l.stats }

// State returns the loop's current lifecycle phase.
func (l *Loop) State() State { return l.state }

// Run drives the loop until an interrupt, a quit command, or context
// cancellation. It returns after cleanup has completed; the terminal is
// restored on every exit path.
func (l *Loop) Run(ctx context.Context) error {
	l.state = StateStarting

	// An interrupt requests the Stopping transition; it never terminates
	// the process directly, so cleanup always runs.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	if err := l.input.Enable(l.dispatch); err != nil {
		l.state = StateStopped
		return err
	}
	if err := l.renderer.HideCursor(); err != nil {
		l.logger.Warn("hide cursor failed", "error", err)
	}

	// Zero time is far in the past: the first tick fires a cycle.
	l.lastRefresh = time.Time{}
	l.state = StateRunning
	l.logger.Info("run loop started",
		"refresh_interval", l.cfg.RefreshInterval,
		"tick", l.cfg.Tick,
	)

	for l.state == StateRunning {
		select {
		case <-sigCh:
			l.logger.Info("interrupt received")
			l.state = StateStopping
			continue
		case <-ctx.Done():
			l.state = StateStopping
			continue
		default:
		}

		tickStart := time.Now()

		l.input.PollOnce()
		if l.stopRequest {
			l.state = StateStopping
			continue
		}

		now := time.Now()
		if l.forceRefresh || now.Sub(l.lastRefresh) >= l.cfg.RefreshInterval {
			l.forceRefresh = false
			l.cycle(ctx, now)
			l.lastRefresh = now
		}

		if rest := l.cfg.Tick - time.Since(tickStart); rest > 0 {
			time.Sleep(rest)
		}
	}

	l.shutdown()
	l.state = StateStopped
	l.logger.Info("run loop stopped")
	return nil
}

// cycle runs one fetch+render pass. Stats are updated strictly after the
// fetch returns and before the frame is built, so every rendered frame
// pairs a snapshot with the stats of the same cycle.
func (l *Loop) cycle(ctx context.Context, now time.Time) {
	snap := l.fetcher.FetchAll(ctx)

	primary, _ := snap.Result(l.fetcher.Primary())
	l.stats.Record(primary)

	f := l.builder.Build(frame.Context{
		Snapshot: snap,
		Stats:    l.stats,
		Status:   l.status.Text(now),
		Now:      now,
	})

	if err := l.renderer.Render(f); err != nil {
		// Best effort: skipping a frame beats killing a monitoring tool
		// over a transient terminal write failure.
		l.logger.Warn("render failed", "error", err)
	}
}

// dispatch routes one decoded keystroke to its bound action.
func (l *Loop) dispatch(ch rune) {
	if action, ok := l.commands[unicode.ToLower(ch)]; ok {
		action()
	}
}

// shutdown runs the cleanup sequence. Restoring the terminal comes first
// and is never skipped; everything after it is best effort.
func (l *Loop) shutdown() {
	if err := l.input.Disable(); err != nil {
		l.logger.Warn("terminal restore failed", "error", err)
	}
	if err := l.renderer.ShowCursor(); err != nil {
		l.logger.Warn("show cursor failed", "error", err)
	}
	if err := l.renderer.Clear(); err != nil {
		l.logger.Warn("final clear failed", "error", err)
	}
	l.fetcher.Close()
}
