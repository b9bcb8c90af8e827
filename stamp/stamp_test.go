package stamp

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 50, B: 50, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "stamp.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodePNG(t *testing.T, data []byte) *image.NRGBA {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	out, ok := img.(*image.NRGBA)
	if !ok {
		out = image.NewNRGBA(img.Bounds())
		for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
			for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
				out.Set(x, y, img.At(x, y))
			}
		}
	}
	return out
}

func TestProcessUpscalesSmallImages(t *testing.T) {
	path := writePNG(t, 100, 80)
	data, err := Process(path, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	img := decodePNG(t, data)
	if got := img.Bounds(); got.Dx() != 300 || got.Dy() != 240 {
		t.Fatalf("small image should be upscaled 3x, got %dx%d", got.Dx(), got.Dy())
	}
}

func TestProcessKeepsLargeImages(t *testing.T) {
	// One dimension at the threshold disables upscaling.
	path := writePNG(t, 1000, 40)
	data, err := Process(path, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	img := decodePNG(t, data)
	if got := img.Bounds(); got.Dx() != 1000 || got.Dy() != 40 {
		t.Fatalf("large image must keep its size, got %dx%d", got.Dx(), got.Dy())
	}
}

func TestProcessAppliesOpacity(t *testing.T) {
	path := writePNG(t, 1200, 1200)
	data, err := Process(path, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	img := decodePNG(t, data)
	if a := img.NRGBAAt(10, 10).A; a != 127 {
		t.Fatalf("alpha = %d; want 127", a)
	}
}

func TestProcessMissingFile(t *testing.T) {
	if _, err := Process(filepath.Join(t.TempDir(), "missing.png"), 1.0); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDimensions(t *testing.T) {
	path := writePNG(t, 321, 123)
	w, h, err := Dimensions(path)
	if err != nil {
		t.Fatal(err)
	}
	if w != 321 || h != 123 {
		t.Fatalf("Dimensions = %dx%d; want 321x123", w, h)
	}
}

func TestPreparedCachesPerRoundedOpacity(t *testing.T) {
	p := NewPrepared("stamp.png", nil)
	var calls []float64
	p.process = func(path string, opacity float64) ([]byte, error) {
		calls = append(calls, opacity)
		return []byte(fmt.Sprintf("processed@%.2f", opacity)), nil
	}

	// 0.501 and 0.502 round to the same key; 0.60 is distinct.
	first := p.Bytes(0.501)
	second := p.Bytes(0.502)
	third := p.Bytes(0.60)

	if len(calls) != 2 {
		t.Fatalf("process called %d times; want 2 (opacities %v)", len(calls), calls)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("same rounded opacity must return cached bytes")
	}
	if bytes.Equal(first, third) {
		t.Fatal("distinct opacities must be processed separately")
	}
	if p.CacheHits() != 1 {
		t.Fatalf("cache hits = %d; want 1", p.CacheHits())
	}
}

func TestPreparedSwallowsErrors(t *testing.T) {
	p := NewPrepared("stamp.png", nil)
	calls := 0
	p.process = func(path string, opacity float64) ([]byte, error) {
		calls++
		return nil, fmt.Errorf("boom")
	}
	if data := p.Bytes(0.8); len(data) != 0 {
		t.Fatalf("failed processing should yield empty bytes, got %d", len(data))
	}
	if data := p.Bytes(0.8); len(data) != 0 {
		t.Fatal("failure must stay cached as empty bytes")
	}
	if calls != 1 {
		t.Fatalf("process called %d times; want 1", calls)
	}
}
