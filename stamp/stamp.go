// Package stamp prepares stamp images for page insertion: RGBA
// normalization, quality upscaling for small sources, opacity, and fast PNG
// encoding.
package stamp

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Sources with both dimensions under this many pixels get upscaled so the
// stamp stays crisp when stretched across a page.
const smallThreshold = 1000

const upscaleFactor = 3

// Process loads a stamp image and returns it as PNG bytes with the given
// opacity (0..1) baked into the alpha channel. Small sources are upscaled
// 3x through premultiplied alpha and mildly sharpened; larger sources are
// never resized. Encoding favors speed: the final document save compresses
// streams again anyway.
func Process(path string, opacity float64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stamp: %w", err)
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode stamp %s: %w", path, err)
	}

	img := toNRGBA(decoded)
	bounds := img.Bounds()
	if bounds.Dx() < smallThreshold && bounds.Dy() < smallThreshold {
		img = sharpen(upscale(img, upscaleFactor))
	}
	if opacity < 1.0 {
		applyOpacity(img, opacity)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode stamp: %w", err)
	}
	return buf.Bytes(), nil
}

// Dimensions reports the pixel size of an image file without decoding the
// pixel data.
func Dimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open stamp: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("read stamp header %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if img, ok := src.(*image.NRGBA); ok {
		return img
	}
	dst := image.NewNRGBA(src.Bounds())
	draw.Copy(dst, dst.Bounds().Min, src, src.Bounds(), draw.Src, nil)
	return dst
}

// upscale resizes through premultiplied RGBA so semi-transparent edges
// interpolate cleanly instead of bleeding the colors of fully transparent
// pixels.
func upscale(src *image.NRGBA, factor int) *image.NRGBA {
	bounds := src.Bounds()
	pre := image.NewRGBA(bounds)
	draw.Copy(pre, bounds.Min, src, bounds, draw.Src, nil)

	scaled := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), pre, bounds, draw.Src, nil)

	dst := image.NewNRGBA(scaled.Bounds())
	draw.Copy(dst, scaled.Bounds().Min, scaled, scaled.Bounds(), draw.Src, nil)
	return dst
}

// sharpen applies a mild unsharp pass: each channel moves 20% further from
// its 3x3 smoothed value.
func sharpen(src *image.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewNRGBA(bounds)
	copy(dst.Pix, src.Pix)

	// 3x3 smoothing weights: center 5, neighbors 1, sum 13.
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			for c := 0; c < 4; c++ {
				var sum int
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						weight := 1
						if dx == 0 && dy == 0 {
							weight = 5
						}
						sum += weight * int(src.Pix[(y+dy)*src.Stride+(x+dx)*4+c])
					}
				}
				smooth := float64(sum) / 13.0
				orig := float64(src.Pix[y*src.Stride+x*4+c])
				dst.Pix[y*dst.Stride+x*4+c] = clampByte(smooth + 1.2*(orig-smooth))
			}
		}
	}
	return dst
}

func applyOpacity(img *image.NRGBA, opacity float64) {
	if opacity < 0 {
		opacity = 0
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(float64(img.Pix[i]) * opacity)
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
