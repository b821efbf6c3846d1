// Package widgets provides the concrete dashboard sections for svcpulse.
// Each widget implements frame.Section and picks the payload keys it knows
// out of the cycle snapshot; a failed source renders as a short inline
// error while every other section keeps updating.
package widgets

import (
	"fmt"
	"sort"
	"time"

	"gitlab.com/tinyland/lab/svcpulse/pkg/components"
	"gitlab.com/tinyland/lab/svcpulse/pkg/poll"
)

// sourceLine renders the shared "no data / error" presentation for a
// source's result. ok is true when the caller should render the payload.
func sourceLine(snap poll.Snapshot, source string) (poll.Result, string, bool) {
	r, found := snap.Result(source)
	if !found {
		return r, components.Dim("no data"), false
	}
	if !r.OK() {
		msg := fmt.Sprintf("error: %s", r.Failure.Message)
		return r, components.Fg(components.ColorCrit, msg), false
	}
	return r, "", true
}

// formatUptime formats a duration like "14d 6h 23m", "2h 15m", or "45m".
func formatUptime(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	totalMinutes := int(d.Minutes())
	days := totalMinutes / (60 * 24)
	hours := (totalMinutes % (60 * 24)) / 60
	minutes := totalMinutes % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// sortedKeys returns the map's keys in stable order for deterministic
// frame output.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatCount renders a counter compactly: 1234 -> "1.2k", 5000000 -> "5.0M".
func formatCount(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fG", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
