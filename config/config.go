// Package config defines the per-feature visual configuration structs and
// the resolver that maps a page to its configuration. The same resolver is
// used by the interactive preview and the batch worker so both always agree.
package config

import (
	"github.com/wudi/pdfstamp/layout"
	"github.com/wudi/pdfstamp/pagesel"
)

// TextConfig controls text block rendering for one paper size. Opacity
// values are stored as 0-100 integers and normalized to 0.0-1.0 at render
// time.
type TextConfig struct {
	FontFamily  string  `json:"font_family"`
	Bold        bool    `json:"bold"`
	Italic      bool    `json:"italic"`
	Underline   bool    `json:"underline"`
	Strike      bool    `json:"strike"`
	FontSize    float64 `json:"font_size"`
	PadX        float64 `json:"pad_x"`
	PadY        float64 `json:"pad_y"`
	LineGap     float64 `json:"line_gap"`
	TextColor   string  `json:"text_color"`
	TextOpacity int     `json:"text_opacity"`
	BGColor     string  `json:"bg_color"`
	BGOpacity   int     `json:"bg_opacity"`
	HMargin     float64 `json:"h_margin"`
	VMargin     float64 `json:"v_margin"`
	Position    string  `json:"position"`

	pagesel.Selection
}

// StampConfig controls image stamp placement for one paper size. Rotation is
// limited to axis-aligned values (0/90/180/270).
type StampConfig struct {
	WidthMM        float64 `json:"stamp_width_mm"`
	HeightMM       float64 `json:"stamp_height_mm"`
	MaintainAspect bool    `json:"maintain_aspect"`
	Rotation       int     `json:"stamp_rotation"`
	Opacity        int     `json:"stamp_opacity"`
	HMargin        float64 `json:"h_margin"`
	VMargin        float64 `json:"v_margin"`
	Position       string  `json:"position"`

	pagesel.Selection
}

// DefaultText returns the fallback text configuration.
func DefaultText() *TextConfig {
	return &TextConfig{
		FontFamily:  "Arial",
		FontSize:    12,
		PadX:        3,
		PadY:        3,
		TextColor:   "#000000",
		TextOpacity: 100,
		BGColor:     "#ffff00",
		BGOpacity:   0,
		HMargin:     layout.DefaultMarginMM,
		VMargin:     layout.DefaultMarginMM,
		Position:    "Top Left",
		Selection:   pagesel.Selection{Mode: pagesel.ModeAll},
	}
}

// DefaultTimestamp returns the fallback timestamp configuration.
func DefaultTimestamp() *TextConfig {
	cfg := DefaultText()
	cfg.FontSize = 10
	cfg.Position = "Bottom Right"
	return cfg
}

// DefaultStamp returns the fallback stamp configuration.
func DefaultStamp() *StampConfig {
	return &StampConfig{
		WidthMM:        150,
		HeightMM:       150,
		MaintainAspect: true,
		Rotation:       90,
		Opacity:        100,
		HMargin:        layout.DefaultMarginMM,
		VMargin:        layout.DefaultMarginMM,
		Position:       "Center Right",
		Selection:      pagesel.Selection{Mode: pagesel.ModeAll},
	}
}

// NormalizeOpacity converts a 0-100 integer to the 0.0-1.0 range, clamping
// out-of-range input.
func NormalizeOpacity(percent int) float64 {
	if percent <= 0 {
		return 0
	}
	if percent >= 100 {
		return 1
	}
	return float64(percent) / 100
}
