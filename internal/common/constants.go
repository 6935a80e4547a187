// Package common provides shared constants and types for internal packages.
// These constants must match the public API in the bdfgo package.
package common

import "errors"

// Glyph geometry limits
const (
	// RowBits is the number of pixel columns a single bitmap row mask can hold
	RowBits = 8
	// MaxRowHexDigits is the longest hex token accepted for a bitmap row
	MaxRowHexDigits = 2
	// UnsetCode marks a glyph whose ENCODING has not been seen
	UnsetCode = -1
	// MaxCode is the largest glyph code that fits the single-byte glyph table
	MaxCode = 255
)

// DefaultFill is the character printed for set pixels by the canvas printer
const DefaultFill = '#'

// Common errors (must match public API in bdfgo package)
var (
	// ErrNilFont is returned when a nil font is provided
	ErrNilFont = errors.New("font cannot be nil")
	// ErrNilCanvas is returned when a nil canvas is provided
	ErrNilCanvas = errors.New("canvas cannot be nil")
)
