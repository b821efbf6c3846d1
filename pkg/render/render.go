// Package render implements the differential terminal renderer. It keeps
// the previously emitted frame and, given a new one, writes only the escape
// sequences needed to transform the screen: unchanged lines are never
// retouched. All output for one render call is buffered and flushed as a
// single write so the terminal never shows a torn frame.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Renderer owns the previous-frame buffer. It is not safe for concurrent
// use; the run loop is its only caller.
type Renderer struct {
	out  io.Writer
	buf  bytes.Buffer
	term *termenv.Output

	prev  []string
	drawn bool
}

// New creates a Renderer writing to out (normally os.Stdout).
func New(out io.Writer) *Renderer {
	r := &Renderer{out: out}
	r.term = termenv.NewOutput(&r.buf)
	return r
}

// Render transforms the screen from the previous frame to the given one.
//
// The first call (and the first after Invalidate) clears the screen and
// draws every line. Subsequent calls compare line-by-line up to the longer
// of the two frames, treating missing indexes as empty lines: a changed
// line is rewritten in place, a line present before but not now is cleared.
func (r *Renderer) Render(frame []string) error {
	r.buf.Reset()

	if !r.drawn {
		r.term.ClearScreen()
		for i, line := range frame {
			r.term.MoveCursor(i+1, 1)
			r.term.WriteString(line)
		}
	} else {
		n := len(frame)
		if len(r.prev) > n {
			n = len(r.prev)
		}
		for i := 0; i < n; i++ {
			var oldLine, newLine string
			if i < len(r.prev) {
				oldLine = r.prev[i]
			}
			if i < len(frame) {
				newLine = frame[i]
			}
			if oldLine == newLine {
				continue
			}
			r.term.MoveCursor(i+1, 1)
			r.term.ClearLine()
			if newLine != "" {
				r.term.WriteString(newLine)
			}
		}
	}

	// Single flush: a reader never observes a partially-updated frame.
	if r.buf.Len() > 0 {
		if _, err := r.out.Write(r.buf.Bytes()); err != nil {
			return fmt.Errorf("render flush: %w", err)
		}
	}

	r.prev = append(r.prev[:0], frame...)
	r.drawn = true
	return nil
}

// Invalidate forces the next Render call to clear and redraw everything,
// without touching any other state in the system.
func (r *Renderer) Invalidate() {
	r.prev = r.prev[:0]
	r.drawn = false
}

// Clear performs an immediate full-screen clear and resets the renderer to
// its pre-first-render state. Used during shutdown.
func (r *Renderer) Clear() error {
	r.buf.Reset()
	r.term.ClearScreen()
	_, err := r.out.Write(r.buf.Bytes())
	r.prev = r.prev[:0]
	r.drawn = false
	if err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

// HideCursor hides the terminal cursor. Called once at startup.
func (r *Renderer) HideCursor() error {
	return r.writeDirect(func() { r.term.HideCursor() })
}

// ShowCursor restores the terminal cursor. Called once at shutdown, after
// the raw input channel has already been restored.
func (r *Renderer) ShowCursor() error {
	return r.writeDirect(func() { r.term.ShowCursor() })
}

// writeDirect runs an escape-emitting function against the buffer and
// flushes it immediately.
func (r *Renderer) writeDirect(emit func()) error {
	r.buf.Reset()
	emit()
	if _, err := r.out.Write(r.buf.Bytes()); err != nil {
		return fmt.Errorf("cursor control: %w", err)
	}
	return nil
}
