package renderer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ryanlewis/bdfgo/internal/common"
	"github.com/ryanlewis/bdfgo/internal/parser"
)

// Print writes the canvas as a text raster. Row Height-1 is printed first;
// every column in [0, Width) is fill when lit and a space otherwise, and each
// row ends with a newline.
func (c *Canvas) Print(w io.Writer, fill rune) error {
	buf := acquireWriteBuffer()
	defer func() { releaseWriteBuffer(buf) }()

	for y := c.Height - 1; y >= 0; y-- {
		buf = buf[:0]
		for x := 0; x < c.Width; x++ {
			if c.Has(parser.Point{X: x, Y: y}) {
				buf = utf8.AppendRune(buf, fill)
			} else {
				buf = append(buf, ' ')
			}
		}
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// String returns the raster Print produces with the default fill character.
func (c *Canvas) String() string {
	var sb strings.Builder
	//nolint:errcheck // strings.Builder never fails
	c.Print(&sb, common.DefaultFill)
	return sb.String()
}

// WriteCode writes the canvas as a listing of statements that rebuild it,
// one Set per lit pixel in Points order. Handy for pinning fixtures in tests.
func (c *Canvas) WriteCode(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "canvas.Width = %d\ncanvas.Height = %d\n", c.Width, c.Height); err != nil {
		return err
	}
	for _, p := range c.Points() {
		if _, err := fmt.Fprintf(w, "canvas.Set(Point{X: %d, Y: %d})\n", p.X, p.Y); err != nil {
			return err
		}
	}
	return nil
}
