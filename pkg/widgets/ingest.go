package widgets

import (
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/svcpulse/pkg/components"
	"gitlab.com/tinyland/lab/svcpulse/pkg/frame"
)

// Ingest renders the service's on-disk stats file: queue depth, processed
// and dropped counters, and the age of the last event. The file not
// existing yet is the normal "service has not started" presentation, not
// an alarming one.
type Ingest struct {
	Source string

	// QueueMax scales the queue gauge; depth/QueueMax is the fill ratio.
	QueueMax float64
}

// NewIngest creates an ingest widget bound to the named file source.
func NewIngest(source string) *Ingest {
	return &Ingest{Source: source, QueueMax: 500}
}

// Lines implements frame.Section.
func (w *Ingest) Lines(ctx frame.Context) []string {
	title := components.Bold("Ingest")
	r, errLine, ok := sourceLine(ctx.Snapshot, w.Source)
	if !ok {
		return []string{title, "  " + errLine}
	}
	p := r.Payload

	lines := []string{title}
	if depth, found := p.Float("queue_depth"); found {
		ratio := 0.0
		if w.QueueMax > 0 {
			ratio = depth / w.QueueMax
		}
		gauge := components.Gauge("  Queue:", 11, ratio, components.GaugeOpts{
			Width:  barWidth(ctx.Width),
			WarnAt: 0.5,
			CritAt: 0.8,
		})
		lines = append(lines, fmt.Sprintf("%s %.0f", gauge, depth))
	}
	if v, found := p.Float("processed"); found {
		line := "  Processed: " + formatCount(v)
		if dropped, found := p.Float("dropped"); found && dropped > 0 {
			line += components.Fg(components.ColorWarn,
				fmt.Sprintf("  dropped %s", formatCount(dropped)))
		}
		lines = append(lines, line)
	}
	if unix, found := p.Float("last_event_unix"); found && unix > 0 {
		age := ctx.Now.Sub(time.Unix(int64(unix), 0))
		if age < 0 {
			age = 0
		}
		lines = append(lines, components.Dim(
			fmt.Sprintf("  last event %s ago", age.Round(time.Second))))
	}

	if len(lines) == 1 {
		lines = append(lines, "  "+components.Dim("no known fields in payload"))
	}
	return lines
}

var _ frame.Section = (*Ingest)(nil)
