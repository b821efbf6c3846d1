package widgets

import (
	"fmt"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/svcpulse/pkg/components"
	"gitlab.com/tinyland/lab/svcpulse/pkg/frame"
)

// Health renders the monitored service's health endpoint result. On the
// degraded plain-text fallback only the raw status line is available.
type Health struct {
	Source string
}

// NewHealth creates a health widget bound to the named source.
func NewHealth(source string) *Health {
	return &Health{Source: source}
}

// Lines implements frame.Section.
func (w *Health) Lines(ctx frame.Context) []string {
	title := components.Bold("Health")
	r, errLine, ok := sourceLine(ctx.Snapshot, w.Source)
	if !ok {
		return []string{title, "  " + errLine}
	}

	p := r.Payload
	status := p.String("status")
	if status == "" {
		status = "unknown"
	}

	statusColor := components.ColorCrit
	if isHealthyStatus(status) {
		statusColor = components.ColorOK
	}
	line := "  Status: " + components.Fg(statusColor, status)
	if degraded, _ := p["degraded"].(bool); degraded {
		line += components.Dim(" (plain-text response)")
	}
	lines := []string{title, line}

	if v := p.String("version"); v != "" {
		lines = append(lines, "  Version: "+v)
	}
	if secs, found := p.Float("uptime_seconds"); found {
		up := time.Duration(secs) * time.Second
		lines = append(lines, "  Uptime: "+formatUptime(up))
	}
	if checks, found := p["checks"].(map[string]any); found {
		lines = append(lines, renderChecks(checks)...)
	}

	lines = append(lines, components.Dim(
		fmt.Sprintf("  polled in %dms", r.Latency.Milliseconds())))
	return lines
}

// isHealthyStatus treats the conventional healthy spellings as green.
func isHealthyStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "ok", "up", "healthy", "pass", "passing":
		return true
	}
	return false
}

// renderChecks renders per-dependency health checks, one per line.
func renderChecks(checks map[string]any) []string {
	var lines []string
	for _, name := range sortedKeys(checks) {
		state, _ := checks[name].(string)
		color := components.ColorCrit
		if isHealthyStatus(state) {
			color = components.ColorOK
		}
		lines = append(lines, fmt.Sprintf("  %s %s",
			components.PadRight(name+":", 14), components.Fg(color, state)))
	}
	return lines
}

var _ frame.Section = (*Health)(nil)
