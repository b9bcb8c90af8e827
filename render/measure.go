// Package render draws text blocks and image stamps onto PDF pages. All
// drawing happens in physical page coordinates; rotation handling belongs to
// the caller.
package render

import "strings"

// WidthFunc measures one line of text in points.
type WidthFunc func(line string) float64

// BlockMetrics describes a measured multi-line text block.
type BlockMetrics struct {
	Lines       []string
	Widths      []float64
	Ascent      float64
	Descent     float64
	LineHeight  float64
	BlockWidth  float64
	TotalHeight float64
}

// Measure splits text on newlines and computes the block geometry. A font
// reporting zero ascent and descent falls back to the font size for the
// line height. Padding is applied once around each line; only the gap
// separates stacked lines.
func Measure(text string, fontSize, padY, lineGap, ascent, descent float64, width WidthFunc) BlockMetrics {
	lines := []string{""}
	if text != "" {
		lines = strings.Split(text, "\n")
	}

	widths := make([]float64, len(lines))
	blockWidth := 0.0
	for i, line := range lines {
		if width != nil {
			widths[i] = width(line)
		}
		if widths[i] > blockWidth {
			blockWidth = widths[i]
		}
	}

	lineHeight := ascent + descent + 2*padY + lineGap
	if ascent == 0 && descent == 0 {
		lineHeight = fontSize + 2*padY + lineGap
	}

	base := ascent + descent + 2*padY
	totalHeight := base
	if len(lines) > 1 {
		totalHeight = base*float64(len(lines)) + lineGap*float64(len(lines)-1)
	}

	return BlockMetrics{
		Lines:       lines,
		Widths:      widths,
		Ascent:      ascent,
		Descent:     descent,
		LineHeight:  lineHeight,
		BlockWidth:  blockWidth,
		TotalHeight: totalHeight,
	}
}
