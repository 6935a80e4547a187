package bdfgo

import (
	"errors"
	"slices"

	"golang.org/x/text/encoding/charmap"

	"github.com/ryanlewis/bdfgo/internal/common"
	"github.com/ryanlewis/bdfgo/internal/debug"
	"github.com/ryanlewis/bdfgo/internal/parser"
	"github.com/ryanlewis/bdfgo/internal/renderer"
)

// Font represents an immutable BDF font that can be safely shared across goroutines.
//
// Font data is loaded once and never modified, making it safe for concurrent use
// without locking.
type Font struct {
	// glyphs maps single-byte codes to glyph records (unexported for immutability)
	glyphs map[byte]Glyph

	// Name is the FONT property, or the file name when the font has none
	Name string

	// Version is the STARTFONT version, if present
	Version string

	// MaxGlyphExtent is the highest row any glyph reaches above the baseline,
	// the maximum of BBX.Height + BBX.YOffset. Every render sweeps rows from
	// here down to 0.
	MaxGlyphExtent int

	// Comments contains the COMMENT lines of the font file
	Comments []string

	// Warnings contains non-fatal issues found while loading (glyphs skipped
	// for duplicate or out of range codes, an unterminated trailing glyph)
	Warnings []string
}

// Glyph is one glyph record: bounding box, advance and 8-bit row masks with
// the top row first.
type Glyph = parser.Glyph

// Point is an integer (x, y) pair. On a canvas y grows upwards from the baseline.
type Point = parser.Point

// BoundingBox is a glyph's ink extent and its offset from the glyph origin.
type BoundingBox = parser.BoundingBox

// Canvas is the sparse pixel set produced by a render.
type Canvas = renderer.Canvas

// ParseError reports the line and directive a load failed on.
type ParseError = parser.ParseError

// GlyphError reports the character a render failed on.
type GlyphError = renderer.GlyphError

// Glyph returns the glyph record for a code, or false if the font has none.
// The returned Rows slice should not be modified by the caller.
func (f *Font) Glyph(code byte) (Glyph, bool) {
	if f == nil || f.glyphs == nil {
		return Glyph{}, false
	}
	g, ok := f.glyphs[code]
	return g, ok
}

// Len returns the number of glyphs in the font.
func (f *Font) Len() int {
	if f == nil {
		return 0
	}
	return len(f.glyphs)
}

// Codes returns the codes the font has glyphs for, in ascending order.
func (f *Font) Codes() []byte {
	if f == nil {
		return nil
	}
	codes := make([]byte, 0, len(f.glyphs))
	for code := range f.glyphs {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Common errors returned by the bdfgo package. Load errors arrive wrapped in
// a *ParseError and render errors in a *GlyphError; match them with errors.Is.
var (
	// ErrNilFont is returned when Render is called without a font
	ErrNilFont = common.ErrNilFont
	// ErrNilCanvas is returned when RenderTo or WriteBMP is given a nil canvas
	ErrNilCanvas = common.ErrNilCanvas
	// ErrEmptyCanvas is returned by WriteBMP for a canvas without area
	ErrEmptyCanvas = errors.New("canvas has no area")

	ErrSourceUnreadable     = parser.ErrSourceUnreadable
	ErrUnexpectedStartChar  = parser.ErrUnexpectedStartChar
	ErrMissingCharName      = parser.ErrMissingCharName
	ErrUnexpectedEndChar    = parser.ErrUnexpectedEndChar
	ErrBadArgumentCount     = parser.ErrBadArgumentCount
	ErrDuplicateBitmapBlock = parser.ErrDuplicateBitmapBlock
	ErrOversizedBitmapToken = parser.ErrOversizedBitmapToken
	ErrInvalidHexDigit      = parser.ErrInvalidHexDigit

	ErrGlyphNotFound      = renderer.ErrGlyphNotFound
	ErrRowIndexOutOfRange = renderer.ErrRowIndexOutOfRange
)

// Option configures rendering behavior.
type Option func(*options)

type options struct {
	charmap *charmap.Charmap
	debug   *debug.Session
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) toInternal() *renderer.Options {
	return &renderer.Options{
		Charmap: o.charmap,
		Debug:   o.debug,
	}
}

// WithCharmap sets the code page text is narrowed through before glyph lookup.
// The default is ISO-8859-1, which maps U+0000..U+00FF straight to codes
// 0..255; any rune the code page cannot encode fails the render with
// ErrGlyphNotFound.
//
// Example:
//
//	// Render box drawing characters with a PC font
//	bdfgo.Render("╔═╗", font, bdfgo.WithCharmap(charmap.CodePage437))
func WithCharmap(cm *charmap.Charmap) Option {
	return func(opts *options) {
		opts.charmap = cm
	}
}

// WithDebug attaches a debug session that receives render events.
// Values other than a non-nil debug session are ignored.
func WithDebug(session interface{}) Option {
	return func(opts *options) {
		if s, ok := session.(*debug.Session); ok && s != nil {
			opts.debug = s
		}
	}
}

// LoadOption configures font loading.
type LoadOption func(*loadOptions)

type loadOptions struct {
	debug *debug.Session
}

// WithLoadDebug attaches a debug session that receives load events.
// Values other than a non-nil debug session are ignored.
func WithLoadDebug(session interface{}) LoadOption {
	return func(opts *loadOptions) {
		if s, ok := session.(*debug.Session); ok && s != nil {
			opts.debug = s
		}
	}
}
