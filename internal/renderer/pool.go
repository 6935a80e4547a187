package renderer

import (
	"sync"

	"github.com/ryanlewis/bdfgo/internal/parser"
)

// Buffer retention thresholds - buffers larger than these are released
// to prevent memory bloat in the pool from occasional large renders
const (
	defaultPointBuffer  = 256
	maxRetainPoints     = 64 * 1024
	defaultWriteBuffer  = 256
	maxRetainWriteBytes = 64 * 1024
)

// pointBufferPool manages the staging buffers a render collects pixels in
// before committing them to the canvas.
//
// A render stages every pixel first so a failing glyph never leaves a
// half-drawn phrase on the caller's canvas. Pooling the staging slices keeps
// that guarantee from costing an allocation per render.
var pointBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]parser.Point, 0, defaultPointBuffer)
		return &buf
	},
}

// writeBufferPool manages row buffers for the canvas printer
var writeBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, defaultWriteBuffer)
		return &buf
	},
}

// acquirePointBuffer gets a staging buffer from the pool
func acquirePointBuffer() []parser.Point {
	bufPtr, ok := pointBufferPool.Get().(*[]parser.Point)
	if !ok {
		return make([]parser.Point, 0, defaultPointBuffer)
	}
	buf := *bufPtr
	return buf[:0]
}

// releasePointBuffer returns a staging buffer to the pool
func releasePointBuffer(buf []parser.Point) {
	if buf == nil || cap(buf) > maxRetainPoints {
		return
	}
	buf = buf[:0]
	pointBufferPool.Put(&buf)
}

// acquireWriteBuffer gets a write buffer from the pool
func acquireWriteBuffer() []byte {
	bufPtr, ok := writeBufferPool.Get().(*[]byte)
	if !ok {
		return make([]byte, 0, defaultWriteBuffer)
	}
	buf := *bufPtr
	return buf[:0] // Reset length but keep capacity
}

// releaseWriteBuffer returns a write buffer to the pool
func releaseWriteBuffer(buf []byte) {
	if buf == nil || cap(buf) < defaultWriteBuffer/2 || cap(buf) > maxRetainWriteBytes {
		return // Don't pool small or oversized buffers
	}
	buf = buf[:0]
	writeBufferPool.Put(&buf)
}
