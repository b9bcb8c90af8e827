package paper

import "testing"

func TestClassifyExactAndTolerance(t *testing.T) {
	for _, s := range Catalog {
		if s.Key.Family == FamilyUnknown {
			continue
		}
		key, ok := Classify(s.Width, s.Height, DefaultTolerance)
		if !ok || key != s.Key {
			t.Fatalf("Classify(%v, %v) = %v, %v; want %v", s.Width, s.Height, key, ok, s.Key)
		}
		key, ok = Classify(s.Width+9, s.Height, DefaultTolerance)
		if !ok || key != s.Key {
			t.Fatalf("Classify within tolerance failed for %v", s.Key)
		}
	}
}

func TestClassifyOutsideTolerance(t *testing.T) {
	// A5 portrait is 420x595; every other entry is further away, so +11 on
	// one axis must not match anything.
	if key, ok := Classify(420+11, 595, DefaultTolerance); ok {
		t.Fatalf("Classify(431, 595) = %v; want no match", key)
	}
}

func TestClassifyNeverReturnsUnknown(t *testing.T) {
	// Unknown entries mirror A4 dimensions, so an A4-sized page must
	// classify as A4, not Unknown.
	key, ok := Classify(595, 842, DefaultTolerance)
	if !ok || key.Family != "A4" {
		t.Fatalf("Classify(595, 842) = %v, %v; want A4 portrait", key, ok)
	}
}

func TestCorrectedDims(t *testing.T) {
	tests := []struct {
		rot          int
		w, h         float64
		wantW, wantH float64
	}{
		{0, 595, 842, 595, 842},
		{90, 842, 595, 595, 842},
		{180, 595, 842, 595, 842},
		{270, 842, 595, 595, 842},
		{-90, 842, 595, 595, 842},
		{450, 842, 595, 595, 842},
	}
	for _, tc := range tests {
		w, h := CorrectedDims(tc.w, tc.h, tc.rot)
		if w != tc.wantW || h != tc.wantH {
			t.Fatalf("CorrectedDims(%v, %v, %d) = %v, %v; want %v, %v",
				tc.w, tc.h, tc.rot, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestOrientationFor(t *testing.T) {
	if OrientationFor(595, 842) != Portrait {
		t.Fatal("taller than wide should be portrait")
	}
	if OrientationFor(842, 595) != Landscape {
		t.Fatal("wider than tall should be landscape")
	}
	if OrientationFor(500, 500) != Portrait {
		t.Fatal("square pages count as portrait")
	}
}

func TestLabels(t *testing.T) {
	if got := Label(Key{"A4", Portrait}); got != "A4 × Portrait" {
		t.Fatalf("label = %q", got)
	}
	if got := Label(Key{FamilyUnknown, Landscape}); got != "Generic × Landscape" {
		t.Fatalf("unknown label = %q", got)
	}
	if got := Label(Key{"B5", Portrait}); got != "" {
		t.Fatalf("unexpected label for uncataloged key: %q", got)
	}
}
