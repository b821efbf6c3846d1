// Package term owns the process's interaction with the controlling
// terminal: raw-mode keystroke input with guaranteed attribute restoration,
// and terminal size detection.
package term

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KeyFunc receives one decoded keystroke. It runs synchronously on the
// caller's goroutine, from inside PollOnce.
type KeyFunc func(ch rune)

// RawInput switches a terminal into non-canonical, no-echo, non-blocking
// mode and exposes a poll-for-one-keystroke primitive.
//
// Disable restores the attributes captured by Enable. It is idempotent and
// is designed to be the first cleanup action on every exit path: a process
// that dies before restoring termios leaves the user's shell unusable.
type RawInput struct {
	fd      int
	onKey   KeyFunc
	saved   *unix.Termios
	enabled bool
	readBuf [1]byte
}

// NewRawInput creates a RawInput over the given file, normally os.Stdin.
func NewRawInput(f *os.File) *RawInput {
	return &RawInput{fd: int(f.Fd())}
}

// Enable captures the terminal's current attributes for later restoration,
// then disables canonical mode and echo and makes reads return immediately
// when no byte is available. onKey fires for each decoded keystroke.
func (r *RawInput) Enable(onKey KeyFunc) error {
	if r.enabled {
		return nil
	}

	saved, err := unix.IoctlGetTermios(r.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("get terminal attributes: %w", err)
	}

	raw := *saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	// Zero VMIN/VTIME: read returns immediately with whatever is buffered.
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(r.fd, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	if err := unix.SetNonblock(r.fd, true); err != nil {
		// Roll back: leaving the terminal half-configured is worse than
		// failing to start.
		_ = unix.IoctlSetTermios(r.fd, ioctlSetTermios, saved)
		return fmt.Errorf("set non-blocking: %w", err)
	}

	r.saved = saved
	r.onKey = onKey
	r.enabled = true
	return nil
}

// PollOnce checks for at most one buffered keystroke. If a byte is
// available it is decoded and the callback fires synchronously; otherwise
// PollOnce returns immediately. It never blocks, even transiently.
func (r *RawInput) PollOnce() {
	if !r.enabled {
		return
	}
	n, err := unix.Read(r.fd, r.readBuf[:])
	if err != nil || n == 0 {
		return
	}
	if r.onKey != nil {
		r.onKey(rune(r.readBuf[0]))
	}
}

// Disable restores the attributes captured by Enable and clears the
// non-blocking flag. A second call is a no-op. Errors are returned for
// logging but the receiver is marked disabled regardless: retrying a
// failed restore during shutdown has nowhere better to go.
func (r *RawInput) Disable() error {
	if !r.enabled {
		return nil
	}
	r.enabled = false
	r.onKey = nil

	var restoreErr error
	if r.saved != nil {
		if err := unix.IoctlSetTermios(r.fd, ioctlSetTermios, r.saved); err != nil {
			restoreErr = fmt.Errorf("restore terminal attributes: %w", err)
		}
	}
	if err := unix.SetNonblock(r.fd, false); err != nil && restoreErr == nil {
		restoreErr = fmt.Errorf("clear non-blocking: %w", err)
	}
	return restoreErr
}

// Enabled reports whether raw mode is currently active.
func (r *RawInput) Enabled() bool { return r.enabled }

// Saved returns the attributes captured at Enable time, or nil before the
// first Enable. Exposed for shutdown verification.
func (r *RawInput) Saved() *unix.Termios { return r.saved }
