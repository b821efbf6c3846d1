package components

import (
	"math"
	"strings"
)

// Sparkline block characters: 8 vertical levels per cell.
var sparkBlocks = [8]rune{
	'▁', // ▁
	'▂', // ▂
	'▃', // ▃
	'▄', // ▄
	'▅', // ▅
	'▆', // ▆
	'▇', // ▇
	'█', // █
}

// Sparkline renders the last `width` points of data as an inline chart in
// the given hex color, auto-scaled to the visible range. Returns "" for
// empty data.
func Sparkline(data []float64, width int, color string) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	points := data
	if len(points) > width {
		points = points[len(points)-width:]
	}

	minY, maxY := points[0], points[0]
	for _, v := range points[1:] {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	var b strings.Builder
	rangeY := maxY - minY
	for _, v := range points {
		idx := 3 // flat data renders at mid-height
		if rangeY > 0 {
			normalized := (v - minY) / rangeY
			idx = int(math.Round(normalized * 7))
			if idx < 0 {
				idx = 0
			}
			if idx > 7 {
				idx = 7
			}
		}
		b.WriteRune(sparkBlocks[idx])
	}

	if color == "" {
		return b.String()
	}
	return Fg(color, b.String())
}
