package frame

import "time"

// TransientStatus is a short-lived message set by command handling (e.g.
// "Refreshing…") and shown until its expiry passes or it is overwritten.
// It is owned by the run loop and only touched on the loop's goroutine.
type TransientStatus struct {
	message string
	expires time.Time
}

// Set replaces the current message, visible for ttl from now.
func (s *TransientStatus) Set(message string, ttl time.Duration, now time.Time) {
	s.message = message
	s.expires = now.Add(ttl)
}

// Text returns the active message, auto-clearing it once expired.
func (s *TransientStatus) Text(now time.Time) string {
	if s.message == "" {
		return ""
	}
	if now.After(s.expires) {
		s.message = ""
		return ""
	}
	return s.message
}

// Clear drops the current message immediately.
func (s *TransientStatus) Clear() {
	s.message = ""
}
