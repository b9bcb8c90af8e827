package render

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"
)

// fallbackFamily is the built-in core font used when no font file resolves.
const fallbackFamily = "Helvetica"

// Canvas wraps one output document and tracks which fonts and images have
// already been registered with it, so repeated pages reuse resources.
type Canvas struct {
	pdf    *fpdf.Fpdf
	fonts  map[string]string
	images map[string]string
}

// NewCanvas wraps a document.
func NewCanvas(pdf *fpdf.Fpdf) *Canvas {
	return &Canvas{
		pdf:    pdf,
		fonts:  make(map[string]string),
		images: make(map[string]string),
	}
}

// PDF exposes the underlying document.
func (c *Canvas) PDF() *fpdf.Fpdf { return c.pdf }

// registerFont maps a font file to a document family name, loading it on
// first use. An empty path selects the built-in fallback, with bold/italic
// expressed through the core style string.
func (c *Canvas) registerFont(path string, bold, italic bool) (family, style string) {
	if path == "" {
		if bold {
			style += "B"
		}
		if italic {
			style += "I"
		}
		return fallbackFamily, style
	}
	if name, ok := c.fonts[path]; ok {
		return name, ""
	}
	name := fmt.Sprintf("embedded%d", len(c.fonts)+1)
	c.pdf.AddUTF8Font(name, "", path)
	if c.pdf.Err() {
		// Registration failure degrades to the core font for this document.
		c.fonts[path] = fallbackFamily
		c.pdf.ClearError()
		return fallbackFamily, ""
	}
	c.fonts[path] = name
	return name, ""
}

func fpdfImageOptions() fpdf.ImageOptions {
	return fpdf.ImageOptions{ImageType: "PNG"}
}

// registerImage registers PNG bytes under a stable key and returns the
// document-local image name.
func (c *Canvas) registerImage(key string, data []byte) string {
	if name, ok := c.images[key]; ok {
		return name
	}
	name := fmt.Sprintf("stamp%d", len(c.images)+1)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	c.images[key] = name
	return name
}
