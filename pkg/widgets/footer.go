package widgets

import (
	"fmt"

	"gitlab.com/tinyland/lab/svcpulse/pkg/components"
	"gitlab.com/tinyland/lab/svcpulse/pkg/frame"
)

// Footer renders the cumulative polling stats line, a latency sparkline,
// the transient status message, and the key help.
type Footer struct {
	Keys string
}

// NewFooter creates the footer. keys is the rendered key-help text, owned
// by the application wiring (it knows the command map).
func NewFooter(keys string) *Footer {
	return &Footer{Keys: keys}
}

// Lines implements frame.Section.
func (w *Footer) Lines(ctx frame.Context) []string {
	var lines []string

	if s := ctx.Stats; s != nil {
		counters := fmt.Sprintf("cycles %d  ok %d  fail %d", s.Cycles, s.Successes, s.Failures)
		latency := ""
		if s.Successes > 0 {
			latency = fmt.Sprintf("  last %dms  avg %dms",
				s.LastLatency.Milliseconds(), s.AverageLatency().Milliseconds())
		}
		lines = append(lines, components.Dim(counters+latency))

		if spark := components.Sparkline(s.History(), 30, components.ColorInfo); spark != "" {
			lines = append(lines, "latency "+spark)
		}
		lines = append(lines, components.Dim("up "+formatUptime(s.Uptime(ctx.Now))))
	}

	if ctx.Status != "" {
		lines = append(lines, components.Fg(components.ColorAccent, ctx.Status))
	}
	if w.Keys != "" {
		lines = append(lines, components.Dim(w.Keys))
	}
	return lines
}

var _ frame.Section = (*Footer)(nil)
