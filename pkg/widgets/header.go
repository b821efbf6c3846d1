package widgets

import (
	"fmt"

	"gitlab.com/tinyland/lab/svcpulse/pkg/components"
	"gitlab.com/tinyland/lab/svcpulse/pkg/frame"
)

// Header renders the dashboard title bar: application name, the monitored
// service's URL, and the wall clock.
type Header struct {
	Title   string
	Service string
}

// NewHeader creates a header for the given service URL.
func NewHeader(title, service string) *Header {
	return &Header{Title: title, Service: service}
}

// Lines implements frame.Section.
func (h *Header) Lines(ctx frame.Context) []string {
	left := components.Bold(components.Fg(components.ColorAccent, h.Title))
	if h.Service != "" {
		left += components.Dim(" • ") + h.Service
	}
	clock := ctx.Now.Format("15:04:05")

	gap := ctx.Width - components.VisibleLen(left) - len(clock)
	if gap < 1 {
		gap = 1
	}
	return []string{fmt.Sprintf("%s%*s", left, gap+len(clock), clock)}
}

var _ frame.Section = (*Header)(nil)
