// Package paper classifies physical page dimensions into a fixed catalog of
// canonical paper sizes.
package paper

import "math"

// Orientation of a page within a paper family.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Key is the canonical identity of a physical page size. It is comparable
// and used as a map key for per-size configuration.
type Key struct {
	Family      string
	Orientation Orientation
}

// FamilyUnknown is the fallback bucket for pages that match no catalog
// entry. Classify never returns it.
const FamilyUnknown = "Unknown"

// DefaultTolerance is the comparison slack in points when matching page
// dimensions against the catalog.
const DefaultTolerance = 10.0

// Size is one catalog entry with reference dimensions in points.
type Size struct {
	Key    Key
	Width  float64
	Height float64
	Label  string
}

// Catalog lists every supported paper size. Orientation is pre-baked:
// portrait and landscape are separate entries with swapped dimensions.
// The Unknown entries exist so configuration maps and labels cover the
// fallback bucket; their dimensions mirror A4 for display purposes.
var Catalog = []Size{
	{Key{"A3", Portrait}, 842, 1191, "A3 × Portrait"},
	{Key{"A3", Landscape}, 1191, 842, "A3 × Landscape"},
	{Key{"A4", Portrait}, 595, 842, "A4 × Portrait"},
	{Key{"A4", Landscape}, 842, 595, "A4 × Landscape"},
	{Key{"A5", Portrait}, 420, 595, "A5 × Portrait"},
	{Key{"A5", Landscape}, 595, 420, "A5 × Landscape"},
	{Key{"US Letter", Portrait}, 612, 792, "US Letter × Portrait"},
	{Key{"US Letter", Landscape}, 792, 612, "US Letter × Landscape"},
	{Key{"US Legal", Portrait}, 612, 1008, "US Legal × Portrait"},
	{Key{"US Legal", Landscape}, 1008, 612, "US Legal × Landscape"},
	{Key{"Tabloid", Portrait}, 792, 1224, "Tabloid × Portrait"},
	{Key{"Tabloid", Landscape}, 1224, 792, "Tabloid × Landscape"},
	{Key{FamilyUnknown, Portrait}, 595, 842, "Generic × Portrait"},
	{Key{FamilyUnknown, Landscape}, 842, 595, "Generic × Landscape"},
}

// AllKeys returns every catalog key in declaration order, including the
// Unknown fallback entries.
func AllKeys() []Key {
	keys := make([]Key, len(Catalog))
	for i, s := range Catalog {
		keys[i] = s.Key
	}
	return keys
}

// Label returns the display label for a key, or the empty string for keys
// outside the catalog.
func Label(k Key) string {
	for _, s := range Catalog {
		if s.Key == k {
			return s.Label
		}
	}
	return ""
}

// Classify maps page dimensions in points to a catalog key. Both axes must
// be within tol of a reference entry. The Unknown family is excluded: it is
// a fallback bucket, never a classification result.
func Classify(width, height, tol float64) (Key, bool) {
	for _, s := range Catalog {
		if s.Key.Family == FamilyUnknown {
			continue
		}
		if math.Abs(width-s.Width) < tol && math.Abs(height-s.Height) < tol {
			return s.Key, true
		}
	}
	return Key{}, false
}

// OrientationFor derives an orientation from raw dimensions. Square pages
// count as portrait.
func OrientationFor(width, height float64) Orientation {
	if height >= width {
		return Portrait
	}
	return Landscape
}

// CorrectedDims undoes the /Rotate swap applied by viewers. For 90 and 270
// degree rotations the reported display rect has width and height exchanged
// relative to the physical media box; 0 and 180 leave them unchanged.
func CorrectedDims(width, height float64, rotation int) (float64, float64) {
	rotation = ((rotation % 360) + 360) % 360
	if rotation == 90 || rotation == 270 {
		return height, width
	}
	return width, height
}
