package renderer

import (
	"testing"

	"github.com/ryanlewis/bdfgo/internal/parser"
)

func TestPointBufferPool(t *testing.T) {
	buf := acquirePointBuffer()
	if len(buf) != 0 {
		t.Errorf("acquired buffer has length %d, want 0", len(buf))
	}
	buf = append(buf, parser.Point{X: 1, Y: 1})
	releasePointBuffer(buf)

	again := acquirePointBuffer()
	if len(again) != 0 {
		t.Errorf("reacquired buffer has length %d, want 0", len(again))
	}
	releasePointBuffer(again)

	// Oversized and nil buffers are dropped
	releasePointBuffer(nil)
	releasePointBuffer(make([]parser.Point, 0, maxRetainPoints+1))
}

func TestWriteBufferPool(t *testing.T) {
	buf := acquireWriteBuffer()
	if len(buf) != 0 {
		t.Errorf("acquired buffer has length %d, want 0", len(buf))
	}
	releaseWriteBuffer(append(buf, "row"...))

	releaseWriteBuffer(nil)
	releaseWriteBuffer(make([]byte, 0, 8))
	releaseWriteBuffer(make([]byte, 0, maxRetainWriteBytes+1))
}
