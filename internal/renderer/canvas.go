package renderer

import (
	"cmp"
	"image"
	"image/color"
	"slices"

	"github.com/ryanlewis/bdfgo/internal/parser"
)

// Canvas is a sparse monochrome raster: the set of lit pixels plus advisory
// bounds. Y grows upwards from the baseline row 0.
//
// Width and Height are only used by the printer and image export; pixels
// outside them are kept but not shown. The zero value is an empty canvas.
type Canvas struct {
	Width  int
	Height int

	pixels map[parser.Point]struct{}
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{pixels: make(map[parser.Point]struct{})}
}

// Set lights the pixel at p.
func (c *Canvas) Set(p parser.Point) {
	if c.pixels == nil {
		c.pixels = make(map[parser.Point]struct{})
	}
	c.pixels[p] = struct{}{}
}

// Has reports whether the pixel at p is lit.
func (c *Canvas) Has(p parser.Point) bool {
	_, ok := c.pixels[p]
	return ok
}

// Len returns the number of lit pixels.
func (c *Canvas) Len() int {
	return len(c.pixels)
}

// Points returns the lit pixels ordered by x, then y.
func (c *Canvas) Points() []parser.Point {
	pts := make([]parser.Point, 0, len(c.pixels))
	for p := range c.pixels {
		pts = append(pts, p)
	}
	slices.SortFunc(pts, func(a, b parser.Point) int {
		if n := cmp.Compare(a.X, b.X); n != 0 {
			return n
		}
		return cmp.Compare(a.Y, b.Y)
	})
	return pts
}

// Clone returns an independent copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{
		Width:  c.Width,
		Height: c.Height,
		pixels: make(map[parser.Point]struct{}, len(c.pixels)),
	}
	for p := range c.pixels {
		out.pixels[p] = struct{}{}
	}
	return out
}

// Image converts the canvas to a grayscale image with black ink on white.
// Canvas row Height-1 becomes the top image row.
func (c *Canvas) Image() *image.Gray {
	w, h := max(c.Width, 0), max(c.Height, 0)
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	for p := range c.pixels {
		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		img.SetGray(p.X, h-1-p.Y, color.Gray{Y: 0})
	}
	return img
}
