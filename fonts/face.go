package fonts

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"unicode"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face is a parsed font ready for measurement. Methods are not safe for
// concurrent use; each execution context owns its own faces via a Cache.
type Face struct {
	font   *sfnt.Font
	shape  *gofont.Face
	shaper shaping.HarfbuzzShaper
	buf    sfnt.Buffer
}

// Parse reads TrueType/OpenType data into a Face.
func Parse(data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("font data is empty")
	}
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	shape, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font for shaping: %w", err)
	}
	return &Face{font: parsed, shape: shape}, nil
}

// Load parses a font file from disk.
func Load(path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	face, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	return face, nil
}

// Metrics returns the ascent and descent in points at the given size.
// Descent is reported as a positive distance below the baseline. Both are
// zero when the font carries no usable vertical metrics.
func (f *Face) Metrics(size float64) (ascent, descent float64) {
	ppem := fixed.Int26_6(math.Round(size * 64))
	m, err := f.font.Metrics(&f.buf, ppem, xfont.HintingNone)
	if err != nil {
		return 0, 0
	}
	return float64(m.Ascent) / 64, math.Abs(float64(m.Descent)) / 64
}

// LineWidth measures a single line of text at the given size using full
// shaping, so ligatures and Arabic joining measure the same way they render.
func (f *Face) LineWidth(text string, size float64) float64 {
	if text == "" {
		return 0
	}
	runes := []rune(text)
	script := detectScript(runes)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: scriptDirection(script),
		Face:      f.shape,
		Size:      fixed.Int26_6(math.Round(size * 64)),
		Script:    script,
		Language:  language.DefaultLanguage(),
	}
	output := f.shaper.Shape(input)

	var width fixed.Int26_6
	for _, g := range output.Glyphs {
		width += g.XAdvance
	}
	if len(output.Glyphs) > 0 {
		return float64(width) / 64
	}
	return f.advanceWidth(runes, size)
}

// advanceWidth sums per-rune advances straight from the font tables, used
// when shaping produces no glyphs.
func (f *Face) advanceWidth(runes []rune, size float64) float64 {
	ppem := fixed.Int26_6(math.Round(size * 64))
	var width fixed.Int26_6
	for _, r := range runes {
		idx, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			continue
		}
		adv, err := f.font.GlyphAdvance(&f.buf, idx, ppem, xfont.HintingNone)
		if err != nil {
			continue
		}
		width += adv
	}
	return float64(width) / 64
}

func scriptDirection(script language.Script) di.Direction {
	switch script {
	case language.Arabic, language.Hebrew, language.Syriac, language.Thaana, language.Nko:
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

func detectScript(runes []rune) language.Script {
	counts := make(map[language.Script]int)
	maxCount := 0
	best := language.Latin
	for _, r := range runes {
		script := scriptFromRune(r)
		if script == language.Unknown {
			continue
		}
		counts[script]++
		if counts[script] > maxCount {
			maxCount = counts[script]
			best = script
		}
	}
	return best
}

func scriptFromRune(r rune) language.Script {
	switch {
	case unicode.Is(unicode.Latin, r):
		return language.Latin
	case unicode.Is(unicode.Arabic, r):
		return language.Arabic
	case unicode.Is(unicode.Hebrew, r):
		return language.Hebrew
	case unicode.Is(unicode.Cyrillic, r):
		return language.Cyrillic
	case unicode.Is(unicode.Greek, r):
		return language.Greek
	case unicode.Is(unicode.Han, r):
		return language.Han
	case unicode.Is(unicode.Hiragana, r):
		return language.Hiragana
	case unicode.Is(unicode.Katakana, r):
		return language.Katakana
	case unicode.Is(unicode.Hangul, r):
		return language.Hangul
	case unicode.Is(unicode.Thai, r):
		return language.Thai
	case unicode.Is(unicode.Devanagari, r):
		return language.Devanagari
	}
	return language.Unknown
}
