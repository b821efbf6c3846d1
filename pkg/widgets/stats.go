package widgets

import (
	"fmt"

	"gitlab.com/tinyland/lab/svcpulse/pkg/components"
	"gitlab.com/tinyland/lab/svcpulse/pkg/frame"
)

// ServiceStats renders the structured stats endpoint: request counters,
// connection counts, and the error-rate gauge. Unknown keys are simply
// skipped, so the widget tolerates schema growth on the service side.
type ServiceStats struct {
	Source string
}

// NewServiceStats creates a stats widget bound to the named source.
func NewServiceStats(source string) *ServiceStats {
	return &ServiceStats{Source: source}
}

// Lines implements frame.Section.
func (w *ServiceStats) Lines(ctx frame.Context) []string {
	title := components.Bold("Service")
	r, errLine, ok := sourceLine(ctx.Snapshot, w.Source)
	if !ok {
		return []string{title, "  " + errLine}
	}
	p := r.Payload

	lines := []string{title}
	if v, found := p.Float("requests_total"); found {
		line := "  Requests: " + formatCount(v)
		if rps, found := p.Float("requests_per_second"); found {
			line += components.Dim(fmt.Sprintf("  (%.1f/s)", rps))
		}
		lines = append(lines, line)
	}
	if v, found := p.Float("active_connections"); found {
		lines = append(lines, fmt.Sprintf("  Connections: %.0f", v))
	}
	if v, found := p.Float("goroutines"); found {
		lines = append(lines, fmt.Sprintf("  Goroutines: %.0f", v))
	}
	if rate, found := p.Float("error_rate"); found {
		gauge := components.Gauge("  Errors:", 11, rate, components.GaugeOpts{
			Width:       barWidth(ctx.Width),
			WarnAt:      0.01,
			CritAt:      0.05,
			ShowPercent: true,
		})
		lines = append(lines, gauge)
	}

	if len(lines) == 1 {
		lines = append(lines, "  "+components.Dim("no known fields in payload"))
	}
	return lines
}

// barWidth sizes gauges relative to the frame, clamped to a usable range.
func barWidth(frameWidth int) int {
	w := frameWidth - 25
	if w < 10 {
		w = 10
	}
	if w > 40 {
		w = 40
	}
	return w
}

var _ frame.Section = (*ServiceStats)(nil)
