package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

const (
	escClearScreen = "\x1b[2J"
	escClearLine   = "\x1b[2K"
)

func moveTo(row int) string {
	return fmt.Sprintf("\x1b[%d;1H", row)
}

func TestFirstRenderClearsAndDrawsEverything(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)

	if err := r.Render([]string{"alpha", "beta"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, escClearScreen) {
		t.Error("first render should emit a full clear")
	}
	for _, want := range []string{"alpha", "beta"} {
		if !strings.Contains(got, want) {
			t.Errorf("first render output missing %q", want)
		}
	}
}

func TestIdenticalFrameEmitsNothing(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)
	frame := []string{"one", "two", "three"}

	if err := r.Render(frame); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := r.Render(frame); err != nil {
		t.Fatal(err)
	}

	if out.Len() != 0 {
		t.Errorf("identical frame produced %d bytes of output: %q", out.Len(), out.String())
	}
}

func TestSingleChangedLineEmitsOneUpdate(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)

	if err := r.Render([]string{"one", "two", "three"}); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := r.Render([]string{"one", "TWO", "three"}); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if n := strings.Count(got, escClearLine); n != 1 {
		t.Errorf("changed frame emitted %d line clears, want exactly 1", n)
	}
	if !strings.Contains(got, moveTo(2)) {
		t.Error("update should address row 2")
	}
	if !strings.Contains(got, "TWO") {
		t.Error("update should carry the new line content")
	}
	if strings.Contains(got, escClearScreen) {
		t.Error("diff update must not clear the whole screen")
	}
	// Unchanged rows are never retouched.
	if strings.Contains(got, moveTo(1)) || strings.Contains(got, moveTo(3)) {
		t.Error("unchanged rows were addressed")
	}
}

func TestShrinkingFrameClearsTrailingRows(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)

	long := make([]string, 10)
	for i := range long {
		long[i] = fmt.Sprintf("row %d", i+1)
	}
	if err := r.Render(long); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := r.Render(long[:7]); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	for row := 8; row <= 10; row++ {
		if !strings.Contains(got, moveTo(row)) {
			t.Errorf("row %d should be explicitly cleared", row)
		}
	}
	if n := strings.Count(got, escClearLine); n != 3 {
		t.Errorf("emitted %d line clears, want 3", n)
	}
}

func TestGrowingFrameDrawsNewRows(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)

	if err := r.Render([]string{"a"}); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := r.Render([]string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.Contains(got, moveTo(2)) || !strings.Contains(got, moveTo(3)) {
		t.Error("new rows 2 and 3 should be drawn")
	}
	if strings.Contains(got, moveTo(1)) {
		t.Error("unchanged row 1 was retouched")
	}
}

func TestInvalidateForcesFullRedraw(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)
	frame := []string{"x", "y"}

	if err := r.Render(frame); err != nil {
		t.Fatal(err)
	}
	r.Invalidate()

	out.Reset()
	if err := r.Render(frame); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.Contains(got, escClearScreen) {
		t.Error("render after Invalidate should behave like a first render")
	}
	if !strings.Contains(got, "x") || !strings.Contains(got, "y") {
		t.Error("render after Invalidate should draw every line")
	}
}

func TestClearResetsState(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)

	if err := r.Render([]string{"data"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Clear(); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := r.Render([]string{"data"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), escClearScreen) {
		t.Error("render after Clear should behave like a first render")
	}
}

func TestRenderFlushesAsSingleWrite(t *testing.T) {
	w := &countingWriter{}
	r := New(w)

	if err := r.Render([]string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}
	if w.writes != 1 {
		t.Errorf("first render used %d writes, want 1", w.writes)
	}

	w.writes = 0
	if err := r.Render([]string{"a", "B", "C"}); err != nil {
		t.Fatal(err)
	}
	if w.writes != 1 {
		t.Errorf("diff render used %d writes, want 1", w.writes)
	}
}

func TestCursorControls(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)

	if err := r.HideCursor(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\x1b[?25l") {
		t.Error("HideCursor should emit the hide sequence")
	}

	out.Reset()
	if err := r.ShowCursor(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\x1b[?25h") {
		t.Error("ShowCursor should emit the show sequence")
	}
}

// countingWriter counts Write calls to verify single-flush behavior.
type countingWriter struct {
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return len(p), nil
}
