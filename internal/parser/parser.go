// Package parser implements BDF (Glyph Bitmap Distribution Format) font loading.
//
// Only the glyph blocks are enforced. The loader walks the source line by line
// through three states:
//
//	Idle ──STARTCHAR──▶ InGlyph ──BITMAP──▶ InGlyphBitmap
//	  ▲                    │                     │
//	  └──────ENDCHAR───────┴───────ENDCHAR───────┘
//
// Lines that are not recognised in the current state are ignored, which lets
// the font-wide property block (SIZE, FONTBOUNDINGBOX, STARTPROPERTIES...)
// pass through untouched.
package parser

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ryanlewis/bdfgo/internal/common"
	"github.com/ryanlewis/bdfgo/internal/debug"
)

// Directive keywords. Matching is case-sensitive.
const (
	dirStartFont = "STARTFONT"
	dirFont      = "FONT"
	dirComment   = "COMMENT"
	dirStartChar = "STARTCHAR"
	dirEncoding  = "ENCODING"
	dirSWidth    = "SWIDTH"
	dirDWidth    = "DWIDTH"
	dirBBX       = "BBX"
	dirBitmap    = "BITMAP"
	dirEndChar   = "ENDCHAR"

	// dirBitmapRow names hex rows in errors; it is not a keyword
	dirBitmapRow = "bitmap row"
)

// Point is an integer (x, y) pair.
type Point struct {
	X, Y int
}

// BoundingBox describes a glyph's ink extent and its placement relative to
// the glyph origin.
type BoundingBox struct {
	Width   int
	Height  int
	XOffset int
	YOffset int
}

// Glyph is one glyph record. Rows holds one 8-bit mask per bitmap line, top
// row first, most significant bit leftmost.
//
// len(Rows) == BBX.Height is not checked while loading; the renderer reports
// the mismatch when it reaches a missing row.
type Glyph struct {
	Name          string
	Code          int
	ScalableWidth Point
	DeviceWidth   Point
	BBX           BoundingBox
	Rows          []uint8
}

// Extent returns the topmost row the glyph reaches above the baseline.
func (g *Glyph) Extent() int {
	return g.BBX.Height + g.BBX.YOffset
}

// Font is a parsed BDF font.
type Font struct {
	// Glyphs maps single-byte character codes to glyph records
	Glyphs map[byte]Glyph

	// MaxGlyphExtent is the maximum of BBX.Height + BBX.YOffset over every BBX
	// seen in the source (0 for a font without glyphs)
	MaxGlyphExtent int

	// Name is the FONT property, if present
	Name string

	// Version is the STARTFONT version, if present
	Version string

	// Comments contains the COMMENT lines outside glyph blocks
	Comments []string

	// Lines is the number of source lines read
	Lines int

	// Warnings contains any non-fatal issues encountered during parsing
	Warnings []string
}

// Options configures a load.
type Options struct {
	// Source names the input in debug traces (usually the file path)
	Source string
	// Debug receives load events when non-nil
	Debug *debug.Session
}

// state is the loader's position in the glyph block grammar.
type state int

const (
	stateIdle state = iota
	stateInGlyph
	stateInGlyphBitmap
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "Idle"
	case stateInGlyph:
		return "InGlyph"
	case stateInGlyphBitmap:
		return "InGlyphBitmap"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Parse reads a BDF font from r.
func Parse(r io.Reader) (*Font, error) {
	return ParseWithOptions(r, nil)
}

// ParseWithOptions reads a BDF font from r. opts may be nil.
func ParseWithOptions(r io.Reader, opts *Options) (*Font, error) {
	if opts == nil {
		opts = &Options{}
	}
	lines := acquireLineReader(r)
	defer releaseLineReader(lines)

	b := newBuilder(opts.Debug)
	var startTime time.Time
	if b.debug != nil {
		startTime = time.Now()
		b.debug.Emit("load", "Start", debug.LoadStartData{Source: opts.Source})
	}

	for {
		line, ok := lines.next()
		if !ok {
			break
		}
		if err := b.line(line); err != nil {
			b.emitError(err)
			return nil, err
		}
	}
	if err := lines.Err(); err != nil {
		perr := &ParseError{
			Line:   b.lineNo + 1,
			Detail: err.Error(),
			Err:    ErrSourceUnreadable,
		}
		b.emitError(perr)
		return nil, perr
	}

	font := b.finish()
	if b.debug != nil {
		b.debug.Emit("load", "End", debug.LoadEndData{
			Lines:          font.Lines,
			Glyphs:         len(font.Glyphs),
			MaxGlyphExtent: font.MaxGlyphExtent,
			Warnings:       font.Warnings,
			ElapsedMs:      time.Since(startTime).Milliseconds(),
		})
	}
	return font, nil
}

// builder owns every piece of mutable load state. The glyph table only
// leaves the builder through finish, after the whole source was accepted.
type builder struct {
	state     state
	glyph     Glyph
	glyphLine int

	glyphs    map[byte]Glyph
	maxExtent int
	extentSet bool

	name     string
	version  string
	comments []string
	warnings []string

	lineNo int
	debug  *debug.Session
}

func newBuilder(session *debug.Session) *builder {
	return &builder{
		glyphs: make(map[byte]Glyph, 256),
		debug:  session,
	}
}

// line feeds one source line through the state machine.
func (b *builder) line(text string) error {
	b.lineNo++
	if b.lineNo == 1 {
		// Strip UTF-8 BOM, some editors add one
		text = strings.TrimPrefix(text, "\uFEFF")
	}
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}
	return b.transition(tokens, text)
}

// transition applies one directive to the current state.
func (b *builder) transition(tokens []string, text string) error {
	switch tokens[0] {
	case dirStartChar:
		if b.state != stateIdle {
			return b.fail(dirStartChar, ErrUnexpectedStartChar,
				"glyph %q started on line %d has no ENDCHAR", b.glyph.Name, b.glyphLine)
		}
		if len(tokens) != 2 {
			return b.fail(dirStartChar, ErrMissingCharName,
				"expected 1 char name, got %d tokens", len(tokens)-1)
		}
		b.glyph = Glyph{Name: tokens[1], Code: common.UnsetCode}
		b.glyphLine = b.lineNo
		b.state = stateInGlyph

	case dirEndChar:
		if b.state == stateIdle {
			return b.fail(dirEndChar, ErrUnexpectedEndChar, "no glyph block is open")
		}
		b.commit()
		b.state = stateIdle

	case dirEncoding:
		if err := b.wantArgs(tokens, 1); err != nil {
			return err
		}
		if b.state != stateIdle {
			b.glyph.Code = parseInt(tokens[1])
		}

	case dirSWidth:
		if err := b.wantArgs(tokens, 2); err != nil {
			return err
		}
		if b.state != stateIdle {
			b.glyph.ScalableWidth = Point{X: parseInt(tokens[1]), Y: parseInt(tokens[2])}
		}

	case dirDWidth:
		if err := b.wantArgs(tokens, 2); err != nil {
			return err
		}
		if b.state != stateIdle {
			b.glyph.DeviceWidth = Point{X: parseInt(tokens[1]), Y: parseInt(tokens[2])}
		}

	case dirBBX:
		if err := b.wantArgs(tokens, 4); err != nil {
			return err
		}
		if b.state != stateIdle {
			b.glyph.BBX = BoundingBox{
				Width:   parseInt(tokens[1]),
				Height:  parseInt(tokens[2]),
				XOffset: parseInt(tokens[3]),
				YOffset: parseInt(tokens[4]),
			}
			b.trackExtent(b.glyph.Extent())
		}

	case dirBitmap:
		if err := b.wantArgs(tokens, 0); err != nil {
			return err
		}
		switch b.state {
		case stateInGlyphBitmap:
			return b.fail(dirBitmap, ErrDuplicateBitmapBlock,
				"glyph %q already has a bitmap", b.glyph.Name)
		case stateInGlyph:
			b.state = stateInGlyphBitmap
		}

	default:
		switch b.state {
		case stateInGlyphBitmap:
			return b.bitmapRow(tokens)
		case stateIdle:
			b.property(tokens, text)
		}
	}
	return nil
}

// bitmapRow decodes one hex row of the current glyph.
func (b *builder) bitmapRow(tokens []string) error {
	if len(tokens) != 1 {
		return b.fail(dirBitmapRow, ErrBadArgumentCount,
			"expected 1 hex token, got %d", len(tokens))
	}
	mask, err := decodeRow(tokens[0])
	if err != nil {
		return b.fail(dirBitmapRow, err, "token %q in glyph %q", tokens[0], b.glyph.Name)
	}
	b.glyph.Rows = append(b.glyph.Rows, mask)
	return nil
}

// property records the font-wide metadata this package keeps. Every other
// Idle line is ignored.
func (b *builder) property(tokens []string, text string) {
	switch tokens[0] {
	case dirStartFont:
		if len(tokens) > 1 {
			b.version = tokens[1]
		}
	case dirFont:
		b.name = strings.Join(tokens[1:], " ")
	case dirComment:
		rest := strings.TrimSpace(text)
		rest = strings.TrimPrefix(rest, dirComment)
		b.comments = append(b.comments, strings.TrimSpace(rest))
	}
}

// commit hands the finished glyph to the table.
func (b *builder) commit() {
	g := b.glyph
	skipped := ""
	switch {
	case g.Code == common.UnsetCode:
		skipped = "unset"
		b.warnf("glyph %q (line %d) has no ENCODING, skipped", g.Name, b.glyphLine)
	case g.Code < 0 || g.Code > common.MaxCode:
		skipped = "out_of_range"
		b.warnf("glyph %q (line %d) has code %d outside 0-%d, skipped",
			g.Name, b.glyphLine, g.Code, common.MaxCode)
	default:
		if prev, exists := b.glyphs[byte(g.Code)]; exists {
			skipped = "duplicate"
			b.warnf("glyph %q (line %d) reuses code %d of glyph %q, skipped",
				g.Name, b.glyphLine, g.Code, prev.Name)
		} else {
			b.glyphs[byte(g.Code)] = g
		}
	}

	if b.debug != nil {
		b.debug.Emit("load", "Glyph", debug.LoadGlyphData{
			Line:    b.glyphLine,
			Name:    g.Name,
			Code:    g.Code,
			Width:   g.BBX.Width,
			Height:  g.BBX.Height,
			XOffset: g.BBX.XOffset,
			YOffset: g.BBX.YOffset,
			Rows:    len(g.Rows),
			Skipped: skipped,
		})
	}
	b.glyph = Glyph{}
}

func (b *builder) trackExtent(ext int) {
	if !b.extentSet || ext > b.maxExtent {
		b.maxExtent = ext
		b.extentSet = true
	}
}

// finish closes the load and returns the immutable font.
func (b *builder) finish() *Font {
	if b.state != stateIdle {
		b.warnf("glyph %q (line %d) is not terminated by ENDCHAR, dropped", b.glyph.Name, b.glyphLine)
	}
	return &Font{
		Glyphs:         b.glyphs,
		MaxGlyphExtent: b.maxExtent,
		Name:           b.name,
		Version:        b.version,
		Comments:       b.comments,
		Lines:          b.lineNo,
		Warnings:       b.warnings,
	}
}

// wantArgs checks the argument count of a directive line.
func (b *builder) wantArgs(tokens []string, n int) error {
	if got := len(tokens) - 1; got != n {
		return b.fail(tokens[0], ErrBadArgumentCount, "takes %d arguments, got %d", n, got)
	}
	return nil
}

func (b *builder) fail(directive string, err error, format string, args ...interface{}) error {
	return &ParseError{
		Line:      b.lineNo,
		Directive: directive,
		Detail:    fmt.Sprintf(format, args...),
		Err:       err,
	}
}

func (b *builder) warnf(format string, args ...interface{}) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

func (b *builder) emitError(err error) {
	if b.debug == nil {
		return
	}
	b.debug.Emit("load", "Error", debug.ErrorData{Index: b.lineNo, Error: err.Error()})
}
