// Package layout computes block placement on a page from compass position
// presets and margin rules.
package layout

import "strings"

// PtsPerMM converts millimeters to PDF points.
const PtsPerMM = 72.0 / 25.4

// DefaultMarginMM is the margin the default feature configurations start
// from.
const DefaultMarginMM = 10.0

// MMToPoints converts millimeters to points.
func MMToPoints(mm float64) float64 { return mm * PtsPerMM }

// Presets lists the nine compass positions in row order.
var Presets = []string{
	"Top Left", "Top Center", "Top Right",
	"Center Left", "Center", "Center Right",
	"Bottom Left", "Bottom Center", "Bottom Right",
}

// Position is a parsed compass preset. The axis predicates are derived once
// at construction; a name matching neither keyword on an axis centers on
// that axis.
type Position struct {
	name   string
	top    bool
	bottom bool
	left   bool
	right  bool
}

// ParsePosition derives axis predicates from a preset name by substring
// match. Unrecognized names yield dead-center placement, never an error.
func ParsePosition(name string) Position {
	return Position{
		name:   name,
		top:    strings.Contains(name, "Top"),
		bottom: strings.Contains(name, "Bottom"),
		left:   strings.Contains(name, "Left"),
		right:  strings.Contains(name, "Right"),
	}
}

func (p Position) Name() string    { return p.name }
func (p Position) HasTop() bool    { return p.top }
func (p Position) HasBottom() bool { return p.bottom }
func (p Position) HasLeft() bool   { return p.left }
func (p Position) HasRight() bool  { return p.right }

// Alignment returns the text alignment implied by the preset: presets ending
// in Left align left, ending in Right align right, everything else centers.
func (p Position) Alignment() Align {
	switch {
	case strings.HasSuffix(p.name, "Left"):
		return AlignLeft
	case strings.HasSuffix(p.name, "Right"):
		return AlignRight
	}
	return AlignCenter
}

// Align selects per-line horizontal alignment inside a text block.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Anchor returns the top-left corner of a block of the given size on a page,
// honoring the position preset and margins in millimeters. The caller is
// responsible for translating the corner into its drawing coordinate system
// (for text, a baseline offset).
func Anchor(pageW, pageH, blockW, blockH float64, pos Position, hMarginMM, vMarginMM float64) (float64, float64) {
	mx := MMToPoints(hMarginMM)
	my := MMToPoints(vMarginMM)

	y := (pageH - blockH) / 2
	switch {
	case pos.HasTop():
		y = my
	case pos.HasBottom():
		y = pageH - my - blockH
	}

	x := (pageW - blockW) / 2
	switch {
	case pos.HasLeft():
		x = mx
	case pos.HasRight():
		x = pageW - mx - blockW
	}

	return x, y
}
