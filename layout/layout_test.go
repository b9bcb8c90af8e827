package layout

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAnchorCenterSymmetry(t *testing.T) {
	x, y := Anchor(600, 800, 0, 0, ParsePosition("Center"), 10, 10)
	if !almostEqual(x, 300) || !almostEqual(y, 400) {
		t.Fatalf("center anchor = (%v, %v); want (300, 400)", x, y)
	}
}

func TestAnchorTopLeftMargin(t *testing.T) {
	m := 10.0
	x, y := Anchor(600, 800, 50, 20, ParsePosition("Top Left"), m, m)
	want := MMToPoints(m)
	if !almostEqual(x, want) || !almostEqual(y, want) {
		t.Fatalf("top-left anchor = (%v, %v); want (%v, %v)", x, y, want, want)
	}
}

func TestAnchorBottomRight(t *testing.T) {
	x, y := Anchor(600, 800, 50, 20, ParsePosition("Bottom Right"), 10, 5)
	wantX := 600 - MMToPoints(10) - 50
	wantY := 800 - MMToPoints(5) - 20
	if !almostEqual(x, wantX) || !almostEqual(y, wantY) {
		t.Fatalf("bottom-right anchor = (%v, %v); want (%v, %v)", x, y, wantX, wantY)
	}
}

func TestAnchorUnknownPositionCenters(t *testing.T) {
	x, y := Anchor(600, 800, 100, 100, ParsePosition("Sideways"), 10, 10)
	if !almostEqual(x, 250) || !almostEqual(y, 350) {
		t.Fatalf("unknown position should center: got (%v, %v)", x, y)
	}
}

func TestPositionPredicates(t *testing.T) {
	tests := []struct {
		name                     string
		top, bottom, left, right bool
	}{
		{"Top Left", true, false, true, false},
		{"Top Center", true, false, false, false},
		{"Center", false, false, false, false},
		{"Bottom Right", false, true, false, true},
		{"Center Right", false, false, false, true},
		{"", false, false, false, false},
	}
	for _, tc := range tests {
		p := ParsePosition(tc.name)
		if p.HasTop() != tc.top || p.HasBottom() != tc.bottom ||
			p.HasLeft() != tc.left || p.HasRight() != tc.right {
			t.Fatalf("predicates for %q: %+v", tc.name, p)
		}
	}
}

func TestAlignment(t *testing.T) {
	if ParsePosition("Top Left").Alignment() != AlignLeft {
		t.Fatal("Top Left should align left")
	}
	if ParsePosition("Bottom Right").Alignment() != AlignRight {
		t.Fatal("Bottom Right should align right")
	}
	if ParsePosition("Top Center").Alignment() != AlignCenter {
		t.Fatal("Top Center should align center")
	}
	if ParsePosition("Center").Alignment() != AlignCenter {
		t.Fatal("Center should align center")
	}
}
