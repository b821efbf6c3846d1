package widgets

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"gitlab.com/tinyland/lab/svcpulse/pkg/components"
	"gitlab.com/tinyland/lab/svcpulse/pkg/frame"
)

// System renders local host metrics (RAM, load) alongside the polled
// service, sampled in-process via gopsutil. Sampling happens during frame
// build; only cheap, non-blocking gopsutil calls are used so the render
// path never stalls. The section can be toggled off with the 's' key.
type System struct {
	enabled bool
}

// NewSystem creates the local system section.
func NewSystem(enabled bool) *System {
	return &System{enabled: enabled}
}

// Toggle flips the section's visibility and reports the new state.
func (w *System) Toggle() bool {
	w.enabled = !w.enabled
	return w.enabled
}

// Lines implements frame.Section. Sampling errors degrade to a dim note
// rather than failing the frame.
func (w *System) Lines(ctx frame.Context) []string {
	if !w.enabled {
		return nil
	}
	lines := []string{components.Bold("Local system")}

	if vm, err := mem.VirtualMemory(); err == nil {
		gauge := components.Gauge("  RAM:", 11, vm.UsedPercent/100, components.GaugeOpts{
			Width:       barWidth(ctx.Width),
			WarnAt:      0.5,
			CritAt:      0.8,
			ShowPercent: true,
		})
		lines = append(lines, gauge)
	} else {
		lines = append(lines, "  "+components.Dim("memory unavailable"))
	}

	if avg, err := load.Avg(); err == nil {
		lines = append(lines, fmt.Sprintf("  Load: %.2f / %.2f / %.2f",
			avg.Load1, avg.Load5, avg.Load15))
	}

	return lines
}

var _ frame.Section = (*System)(nil)
