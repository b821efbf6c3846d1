package components

import (
	"fmt"
	"math"
	"strings"
)

// Block characters for sub-cell precision (8 levels per cell).
var gaugeBlocks = [9]rune{
	' ',      // 0/8 empty
	'▏', // 1/8 ▏
	'▎', // 2/8 ▎
	'▍', // 3/8 ▍
	'▌', // 4/8 ▌
	'▋', // 5/8 ▋
	'▊', // 6/8 ▊
	'▉', // 7/8 ▉
	'█', // 8/8 █
}

// GaugeOpts configures a horizontal bar gauge.
type GaugeOpts struct {
	// Width is the bar portion's width in cells.
	Width int

	// WarnAt/CritAt shift the fill color when the ratio crosses them
	// (0 disables a threshold).
	WarnAt float64
	CritAt float64

	// ShowPercent appends " NN%" after the bar.
	ShowPercent bool
}

// Gauge renders a labeled horizontal bar for ratio in [0,1] with sub-cell
// precision. The label is padded to labelWidth cells when positive.
func Gauge(label string, labelWidth int, ratio float64, opts GaugeOpts) string {
	width := opts.Width
	if width <= 0 {
		width = 20
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	totalUnits := width * 8
	filledUnits := int(math.Round(ratio * float64(totalUnits)))
	fullCells := filledUnits / 8
	partial := filledUnits % 8
	emptyCells := width - fullCells
	if partial > 0 {
		emptyCells--
	}
	if emptyCells < 0 {
		emptyCells = 0
	}

	var bar strings.Builder
	bar.WriteString(strings.Repeat(string(gaugeBlocks[8]), fullCells))
	if partial > 0 {
		bar.WriteRune(gaugeBlocks[partial])
	}
	bar.WriteString(strings.Repeat("·", emptyCells))

	colored := Fg(StatusColor(ratio, opts.WarnAt, opts.CritAt), bar.String())

	var b strings.Builder
	if label != "" {
		if labelWidth <= 0 {
			labelWidth = len(label) + 1
		}
		b.WriteString(PadRight(label, labelWidth))
	}
	b.WriteString(colored)
	if opts.ShowPercent {
		b.WriteString(fmt.Sprintf(" %d%%", int(math.Round(ratio*100))))
	}
	return b.String()
}
