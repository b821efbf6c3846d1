package term

import (
	"os"
	"testing"
)

// Raw-mode behavior against a real pty cannot run in CI; these tests cover
// the state machine around it.

func TestEnableFailsOnNonTerminal(t *testing.T) {
	rd, wr, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()
	defer wr.Close()

	in := NewRawInput(rd)
	if err := in.Enable(func(rune) {}); err == nil {
		t.Error("Enable on a pipe should fail (not a terminal)")
		_ = in.Disable()
	}
	if in.Enabled() {
		t.Error("failed Enable must not leave the channel enabled")
	}
}

func TestDisableBeforeEnableIsNoop(t *testing.T) {
	rd, _, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()

	in := NewRawInput(rd)
	if err := in.Disable(); err != nil {
		t.Errorf("Disable before Enable returned %v, want nil", err)
	}
	// Second call is also a no-op.
	if err := in.Disable(); err != nil {
		t.Errorf("second Disable returned %v, want nil", err)
	}
}

func TestPollOnceBeforeEnableIsNoop(t *testing.T) {
	rd, _, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()

	in := NewRawInput(rd)
	// Must not block or panic.
	in.PollOnce()
}

func TestEnvSizeFallback(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	t.Setenv("LINES", "50")

	s := getSizeFromEnv()
	if s.Cols != 132 || s.Rows != 50 {
		t.Errorf("size = %dx%d, want 132x50", s.Cols, s.Rows)
	}
}

func TestEnvSizeDefaults(t *testing.T) {
	t.Setenv("COLUMNS", "")
	t.Setenv("LINES", "garbage")

	s := getSizeFromEnv()
	if s.Cols != 80 || s.Rows != 24 {
		t.Errorf("size = %dx%d, want 80x24 defaults", s.Cols, s.Rows)
	}
}
