package renderer

import (
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ryanlewis/bdfgo/internal/common"
	"github.com/ryanlewis/bdfgo/internal/debug"
	"github.com/ryanlewis/bdfgo/internal/parser"
)

// Render draws text onto a fresh canvas.
func Render(text string, font *parser.Font, opts *Options) (*Canvas, error) {
	canvas := NewCanvas()
	if err := RenderTo(canvas, text, font, opts); err != nil {
		return nil, err
	}
	return canvas, nil
}

// RenderTo draws text onto canvas, starting at canvas.Width.
//
// Every glyph of the phrase shares one coordinate frame: rows are swept from
// font.MaxGlyphExtent down to 0 and each glyph contributes only the rows its
// bounding box covers. Pixels are staged and committed once the whole phrase
// has been placed, so on error the canvas is left exactly as it was.
func RenderTo(canvas *Canvas, text string, font *parser.Font, opts *Options) error {
	if font == nil {
		return ErrNilFont
	}
	if canvas == nil {
		return ErrNilCanvas
	}

	cm := DefaultCharmap
	var session *debug.Session
	if opts != nil {
		if opts.Charmap != nil {
			cm = opts.Charmap
		}
		session = opts.Debug
	}

	var startTime time.Time
	if session != nil {
		startTime = time.Now()
		session.Emit("render", "Start", debug.RenderStartData{
			Text:           text,
			TextLength:     len(text),
			FontGlyphs:     len(font.Glyphs),
			MaxGlyphExtent: font.MaxGlyphExtent,
			Charmap:        cm.String(),
			StartWidth:     canvas.Width,
		})
	}

	staged := acquirePointBuffer()
	defer func() { releasePointBuffer(staged) }()

	ext := font.MaxGlyphExtent
	width, height := canvas.Width, canvas.Height
	index, glyphs := 0, 0

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		code, ok := narrow(cm, r, size, text[i])
		i += size
		if !ok {
			return renderFailed(session, &GlyphError{Index: index, Char: r, Code: common.UnsetCode, Err: ErrGlyphNotFound})
		}
		g, ok := font.Glyphs[code]
		if !ok {
			return renderFailed(session, &GlyphError{Index: index, Char: r, Code: int(code), Err: ErrGlyphNotFound})
		}

		before := len(staged)
		var err error
		staged, err = place(staged, &g, ext, width)
		if err != nil {
			if ge, ok := err.(*GlyphError); ok {
				ge.Index, ge.Char = index, r
			}
			return renderFailed(session, err)
		}

		if session != nil {
			session.Emit("render", "Glyph", debug.GlyphData{
				Index:        index,
				Rune:         r,
				Code:         g.Code,
				Name:         g.Name,
				Width:        g.BBX.Width,
				Height:       g.BBX.Height,
				XOffset:      g.BBX.XOffset,
				YOffset:      g.BBX.YOffset,
				Origin:       width,
				Advance:      g.DeviceWidth.X,
				PixelsDrawn:  len(staged) - before,
				RowsRendered: debug.FormatRows(g.Rows, g.BBX.Width),
			})
		}

		width += g.DeviceWidth.X
		height = max(height, ext)
		index++
		glyphs++
	}

	for _, p := range staged {
		canvas.Set(p)
	}
	canvas.Width, canvas.Height = width, height

	if session != nil {
		session.Emit("render", "End", debug.RenderEndData{
			Width:       canvas.Width,
			Height:      canvas.Height,
			Pixels:      canvas.Len(),
			TotalGlyphs: glyphs,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		})
	}
	return nil
}

// narrow maps the character decoded from text to a glyph code. A byte that
// is not valid UTF-8 is taken as the glyph code itself, so text already in
// the font's code page renders unchanged.
func narrow(cm *charmap.Charmap, r rune, size int, raw byte) (byte, bool) {
	if r == utf8.RuneError && size == 1 {
		return raw, true
	}
	return cm.EncodeRune(r)
}

// place appends the pixels of g drawn at origin to dst. Rows are visited
// from ext down to 0, limited to the rows the bounding box covers; rows
// above ext and below the baseline are never drawn.
func place(dst []parser.Point, g *parser.Glyph, ext, origin int) ([]parser.Point, error) {
	bbx := g.BBX
	top := min(ext, bbx.YOffset+bbx.Height-1)
	bottom := max(0, bbx.YOffset)
	for y := top; y >= bottom; y-- {
		rowIndex := bbx.Height - y + bbx.YOffset - 1
		if rowIndex < 0 || rowIndex >= len(g.Rows) {
			return dst, &GlyphError{
				Code:   g.Code,
				Detail: fmt.Sprintf("glyph %q wants row %d of %d (bbx height %d)", g.Name, rowIndex, len(g.Rows), bbx.Height),
				Err:    ErrRowIndexOutOfRange,
			}
		}
		mask := g.Rows[rowIndex]
		for x := 0; x < bbx.Width && x < common.RowBits; x++ {
			if mask&(1<<(common.RowBits-1-x)) != 0 {
				dst = append(dst, parser.Point{X: x + bbx.XOffset + origin, Y: y + bbx.YOffset})
			}
		}
	}
	return dst, nil
}

func renderFailed(session *debug.Session, err error) error {
	if session != nil {
		data := debug.ErrorData{Error: err.Error()}
		if ge, ok := err.(*GlyphError); ok {
			data.Index, data.Rune = ge.Index, ge.Char
		}
		session.Emit("render", "Error", data)
	}
	return err
}
