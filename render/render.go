package render

import (
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"

	"github.com/wudi/pdfstamp/config"
	"github.com/wudi/pdfstamp/fonts"
	"github.com/wudi/pdfstamp/layout"
	"github.com/wudi/pdfstamp/observability"
	"github.com/wudi/pdfstamp/stamp"
)

// Renderer owns the font caches for one execution context. The interactive
// preview and the batch worker each hold their own instance; nothing here is
// safe for concurrent use.
type Renderer struct {
	families fonts.Map
	faces    *fonts.Cache
	log      observability.Logger
}

// New creates a renderer over a font family map.
func New(families fonts.Map, log observability.Logger) *Renderer {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Renderer{
		families: families,
		faces:    fonts.NewCache(log),
		log:      log,
	}
}

// ApplyText measures, positions, and draws a multi-line text block with
// optional background, underline, and strikeout. Page dimensions are the
// rotation-corrected display size the position config was authored against.
func (r *Renderer) ApplyText(c *Canvas, pageW, pageH float64, text string, cfg *config.TextConfig) {
	if text == "" {
		return
	}

	path := r.families.ResolvePath(cfg.FontFamily, cfg.Bold, cfg.Italic)
	face, err := r.faces.Face(path)
	if err != nil {
		face = nil
		path = ""
	}
	family, style := c.registerFont(path, cfg.Bold, cfg.Italic)
	builtin := path == "" || family == fallbackFamily

	pdf := c.PDF()
	pdf.SetFont(family, style, cfg.FontSize)

	var ascent, descent float64
	if face != nil {
		ascent, descent = face.Metrics(cfg.FontSize)
	} else {
		fd := pdf.GetFontDesc("", "")
		ascent = float64(fd.Ascent) / 1000 * cfg.FontSize
		descent = math.Abs(float64(fd.Descent)) / 1000 * cfg.FontSize
	}
	width := func(line string) float64 {
		if face != nil {
			return face.LineWidth(line, cfg.FontSize)
		}
		return pdf.GetStringWidth(line)
	}

	m := Measure(text, cfg.FontSize, cfg.PadY, cfg.LineGap, ascent, descent, width)

	pos := layout.ParsePosition(cfg.Position)
	blockX, blockY := layout.Anchor(pageW, pageH, m.BlockWidth, m.TotalHeight, pos, cfg.HMargin, cfg.VMargin)
	baseline := blockY + cfg.PadY + m.Ascent
	align := pos.Alignment()

	textOpacity := config.NormalizeOpacity(cfg.TextOpacity)
	bgOpacity := config.NormalizeOpacity(cfg.BGOpacity)

	if bgOpacity > 0 {
		bgR, bgG, bgB := ParseHexColor(cfg.BGColor)
		pdf.SetFillColor(bgR, bgG, bgB)
		pdf.SetAlpha(bgOpacity, "Normal")
		for i := range m.Lines {
			lw := m.Widths[i]
			if lw <= 0 {
				continue
			}
			x := lineX(blockX, m.BlockWidth, lw, cfg.PadX, align)
			y := baseline + float64(i)*m.LineHeight
			pdf.Rect(x-cfg.PadX, y-m.Ascent-cfg.PadY, lw+2*cfg.PadX, m.Ascent+m.Descent+2*cfg.PadY, "F")
		}
		pdf.SetAlpha(1, "Normal")
	}

	textR, textG, textB := ParseHexColor(cfg.TextColor)
	pdf.SetTextColor(textR, textG, textB)
	pdf.SetDrawColor(textR, textG, textB)
	pdf.SetAlpha(textOpacity, "Normal")

	for i, line := range m.Lines {
		if line == "" {
			continue
		}
		lw := m.Widths[i]
		x := lineX(blockX, m.BlockWidth, lw, cfg.PadX, align)
		y := baseline + float64(i)*m.LineHeight

		drawn := line
		if builtin {
			if latin1, err := charmap.ISO8859_1.NewEncoder().String(line); err == nil {
				drawn = latin1
			}
		}
		pdf.Text(x, y, drawn)

		if cfg.Underline || cfg.Strike {
			pdf.SetLineWidth(math.Max(cfg.FontSize*0.05, 0.5))
			if cfg.Underline {
				offset := math.Max(m.Descent*0.5, cfg.FontSize*0.08)
				pdf.Line(x, y+offset, x+lw, y+offset)
			}
			if cfg.Strike {
				mid := y - m.Ascent*0.3
				pdf.Line(x, mid, x+lw, mid)
			}
		}
	}
	pdf.SetAlpha(1, "Normal")
}

func lineX(blockX, blockWidth, lineWidth, padX float64, align layout.Align) float64 {
	switch align {
	case layout.AlignLeft:
		return blockX + padX
	case layout.AlignRight:
		return blockX + (blockWidth - lineWidth) - padX
	}
	return blockX + (blockWidth-lineWidth)/2
}

// ApplyStamp places a prepared stamp image. Sizes come from the config in
// millimeters; a 90 or 270 degree rotation transposes the visual bounding
// box handed to the anchor while the image itself is drawn unswapped inside
// the rotated frame. Empty processed bytes make this a no-op.
func (r *Renderer) ApplyStamp(c *Canvas, pageW, pageH float64, prepared *stamp.Prepared, cfg *config.StampConfig) {
	opacity := config.NormalizeOpacity(cfg.Opacity)
	if opacity <= 0 {
		return
	}
	data := prepared.Bytes(opacity)
	if len(data) == 0 {
		return
	}

	w := layout.MMToPoints(cfg.WidthMM)
	h := layout.MMToPoints(cfg.HeightMM)
	rotation := ((cfg.Rotation % 360) + 360) % 360

	visualW, visualH := w, h
	if rotation%180 == 90 {
		visualW, visualH = h, w
	}

	pos := layout.ParsePosition(cfg.Position)
	x, y := layout.Anchor(pageW, pageH, visualW, visualH, pos, cfg.HMargin, cfg.VMargin)

	name := c.registerImage(fmt.Sprintf("%s@%.2f", prepared.Path(), opacity), data)
	opts := fpdfImageOptions()

	pdf := c.PDF()
	if rotation == 0 {
		pdf.ImageOptions(name, x, y, visualW, visualH, false, opts, 0, "")
		return
	}

	cx := x + visualW/2
	cy := y + visualH/2
	pdf.TransformBegin()
	pdf.TransformRotate(float64(rotation), cx, cy)
	pdf.ImageOptions(name, cx-w/2, cy-h/2, w, h, false, opts, 0, "")
	pdf.TransformEnd()
}
