package bdfgo

import (
	"fmt"
	"io"

	"golang.org/x/image/bmp"
)

// WriteBMP encodes the visible area of the canvas, Width by Height pixels, as
// a grayscale BMP with black ink on white. Canvas row Height-1 is the top of
// the image, matching Canvas.Print.
func WriteBMP(w io.Writer, c *Canvas) error {
	if c == nil {
		return ErrNilCanvas
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyCanvas, c.Width, c.Height)
	}
	if err := bmp.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("failed to encode bmp: %w", err)
	}
	return nil
}
