// Package fonts resolves font files by family and style and exposes the
// metrics the text renderer needs: ascent, descent, and shaped line widths.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Family holds the file paths for the four style variants. Missing variants
// are empty strings.
type Family struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

// Map indexes families by display name.
type Map map[string]Family

// variant file-name suffixes, matched case-insensitively after the last
// hyphen of the base name.
var variantNames = map[string]int{
	"regular":    0,
	"bold":       1,
	"italic":     2,
	"bolditalic": 3,
}

// Discover scans a folder for TrueType/OpenType files named
// "Family-Variant.ttf" and groups them into a Map. Files without a
// recognized variant suffix are treated as the regular cut of a family
// named after the whole base name.
func Discover(dir string) (Map, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan fonts folder: %w", err)
	}

	m := make(Map)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		path := filepath.Join(dir, e.Name())

		family, variant := base, "regular"
		if idx := strings.LastIndex(base, "-"); idx > 0 {
			if _, ok := variantNames[strings.ToLower(base[idx+1:])]; ok {
				family = base[:idx]
				variant = strings.ToLower(base[idx+1:])
			}
		}

		fam := m[family]
		switch variant {
		case "regular":
			fam.Regular = path
		case "bold":
			fam.Bold = path
		case "italic":
			fam.Italic = path
		case "bolditalic":
			fam.BoldItalic = path
		}
		m[family] = fam
	}
	return m, nil
}

// Families returns the family names in sorted order.
func (m Map) Families() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolvePath picks the font file for a family and style. Requested styles
// degrade toward regular: bold+italic falls back through bold, then italic,
// then regular. An unknown family returns "" so the caller can use the
// built-in fallback font.
func (m Map) ResolvePath(family string, bold, italic bool) string {
	fam, ok := m[family]
	if !ok {
		return ""
	}
	switch {
	case bold && italic:
		return firstNonEmpty(fam.BoldItalic, fam.Bold, fam.Italic, fam.Regular)
	case bold:
		return firstNonEmpty(fam.Bold, fam.Regular)
	case italic:
		return firstNonEmpty(fam.Italic, fam.Regular)
	}
	return fam.Regular
}

func firstNonEmpty(paths ...string) string {
	for _, p := range paths {
		if p != "" {
			return p
		}
	}
	return ""
}
