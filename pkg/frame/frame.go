// Package frame turns one cycle's polling outcome into the full text frame
// handed to the diff renderer. The dashboard is a list of sections; each
// section produces its own lines from the same immutable context, so adding
// a monitored source means adding one Section implementation.
package frame

import (
	"strings"
	"time"

	"gitlab.com/tinyland/lab/svcpulse/pkg/components"
	"gitlab.com/tinyland/lab/svcpulse/pkg/poll"
)

// Context is the read-only input to section rendering: the cycle's
// snapshot, the cumulative stats updated just before the frame is built,
// and the resolved transient status line ("" when none is active).
type Context struct {
	Snapshot poll.Snapshot
	Stats    *poll.Stats
	Status   string
	Width    int
	Now      time.Time
}

// Section produces the lines for one region of the dashboard.
type Section interface {
	Lines(ctx Context) []string
}

// SectionFunc adapts a function to the Section interface.
type SectionFunc func(ctx Context) []string

// Lines implements Section.
func (f SectionFunc) Lines(ctx Context) []string { return f(ctx) }

// Builder assembles a frame from an ordered list of sections. Every line
// is fitted to the frame width so the diff renderer's whole-line compare
// never leaves stale tails on screen.
type Builder struct {
	width    int
	sections []Section
}

// NewBuilder creates a Builder producing frames of the given fixed width.
func NewBuilder(width int, sections ...Section) *Builder {
	if width <= 0 {
		width = 80
	}
	return &Builder{width: width, sections: sections}
}

// Width returns the frame width.
func (b *Builder) Width() int { return b.width }

// Add appends a section to the end of the dashboard.
func (b *Builder) Add(s Section) {
	b.sections = append(b.sections, s)
}

// Build produces a fresh frame for the cycle. A separator rule is placed
// between sections that both produced output.
func (b *Builder) Build(ctx Context) []string {
	ctx.Width = b.width

	var lines []string
	rule := components.Dim(strings.Repeat("─", b.width))
	for _, s := range b.sections {
		produced := s.Lines(ctx)
		if len(produced) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, rule)
		}
		lines = append(lines, produced...)
	}

	for i, line := range lines {
		lines[i] = components.FitLine(line, b.width)
	}
	return lines
}
