package renderer

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/ryanlewis/bdfgo/internal/common"
	"github.com/ryanlewis/bdfgo/internal/debug"
)

// Error definitions for the renderer package
var (
	// ErrNilFont is returned when a nil font is provided to Render
	ErrNilFont = common.ErrNilFont
	// ErrNilCanvas is returned when a nil canvas is provided to RenderTo
	ErrNilCanvas = common.ErrNilCanvas
	// ErrGlyphNotFound is returned when a character has no glyph in the font
	ErrGlyphNotFound = errors.New("glyph not found")
	// ErrRowIndexOutOfRange is returned when a glyph has fewer rows than its BBX height
	ErrRowIndexOutOfRange = errors.New("row index out of range")
)

// DefaultCharmap narrows text runes to glyph codes when Options.Charmap is nil.
var DefaultCharmap = charmap.ISO8859_1

// Options contains rendering options passed from the main package
type Options struct {
	// Charmap maps text runes to single-byte glyph codes
	Charmap *charmap.Charmap
	// Debug receives render events when non-nil
	Debug *debug.Session
}

// GlyphError reports the character a render failed on.
type GlyphError struct {
	Index  int    // position of the character in the phrase, in runes
	Char   rune   // the character as it appeared in the text
	Code   int    // glyph code the character narrowed to, -1 if it has none
	Detail string // extra context such as expected vs. actual row counts
	Err    error
}

func (e *GlyphError) Error() string {
	msg := fmt.Sprintf("%v: %q at index %d", e.Err, e.Char, e.Index)
	if e.Code >= 0 {
		msg += fmt.Sprintf(" (code %d)", e.Code)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the underlying sentinel error.
func (e *GlyphError) Unwrap() error {
	return e.Err
}
