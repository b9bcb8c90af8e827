package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeDummy(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	regular := writeDummy(t, dir, "Arial-Regular.ttf")
	bold := writeDummy(t, dir, "Arial-Bold.ttf")
	italic := writeDummy(t, dir, "Arial-Italic.ttf")
	boldItalic := writeDummy(t, dir, "Arial-BoldItalic.ttf")
	mono := writeDummy(t, dir, "SpaceMono-Regular.ttf")
	plain := writeDummy(t, dir, "Majalla.ttf")
	writeDummy(t, dir, "notes.txt")

	m, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := Map{
		"Arial":     {Regular: regular, Bold: bold, Italic: italic, BoldItalic: boldItalic},
		"SpaceMono": {Regular: mono},
		"Majalla":   {Regular: plain},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("Discover mismatch (-want +got):\n%s", diff)
	}

	families := m.Families()
	if diff := cmp.Diff([]string{"Arial", "Majalla", "SpaceMono"}, families); diff != "" {
		t.Fatalf("Families mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePathDegrades(t *testing.T) {
	full := Family{Regular: "r", Bold: "b", Italic: "i", BoldItalic: "bi"}
	noBI := Family{Regular: "r", Bold: "b", Italic: "i"}
	onlyRegular := Family{Regular: "r"}

	tests := []struct {
		name         string
		fam          Family
		bold, italic bool
		want         string
	}{
		{"exact bolditalic", full, true, true, "bi"},
		{"bolditalic to bold", noBI, true, true, "b"},
		{"bolditalic to regular", onlyRegular, true, true, "r"},
		{"bold to regular", onlyRegular, true, false, "r"},
		{"italic to regular", onlyRegular, false, true, "r"},
		{"regular", full, false, false, "r"},
	}
	for _, tc := range tests {
		m := Map{"F": tc.fam}
		if got := m.ResolvePath("F", tc.bold, tc.italic); got != tc.want {
			t.Fatalf("%s: got %q; want %q", tc.name, got, tc.want)
		}
	}

	if got := (Map{}).ResolvePath("Missing", true, false); got != "" {
		t.Fatalf("unknown family should resolve to empty path, got %q", got)
	}
}

func TestCache(t *testing.T) {
	c := NewCache(nil)

	face, err := c.Face("")
	if face != nil || err != nil {
		t.Fatalf("empty path should yield (nil, nil), got %v %v", face, err)
	}

	bad := writeDummy(t, t.TempDir(), "Broken-Regular.ttf")
	if _, err := c.Face(bad); err == nil {
		t.Fatal("expected parse error for garbage font data")
	}
	// Cached failure: removing the file must not change the outcome.
	if err := os.Remove(bad); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Face(bad); err == nil {
		t.Fatal("expected cached parse error")
	}
}
