// Package bdfgo loads BDF (Glyph Bitmap Distribution Format) bitmap fonts and
// renders text with them onto a sparse pixel canvas.
//
// A font is loaded once and is read-only afterwards, so a single *Font can be
// shared by any number of goroutines rendering concurrently. Text is narrowed
// to single-byte glyph codes through a code page (ISO-8859-1 unless
// WithCharmap says otherwise) and every glyph of a phrase is placed in one
// coordinate frame keyed off the font's maximum glyph extent.
package bdfgo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ryanlewis/bdfgo/internal/parser"
	"github.com/ryanlewis/bdfgo/internal/renderer"
)

// ParseFont reads a BDF font from the provided reader and returns a Font instance.
// The returned Font is immutable and safe for concurrent use across goroutines.
//
// Only the glyph grammar (STARTCHAR, ENCODING, SWIDTH, DWIDTH, BBX, BITMAP,
// ENDCHAR) is interpreted; FONT, COMMENT and STARTFONT are recorded as
// metadata and every other directive is ignored.
//
// Example:
//
//	file, err := os.Open("6x13.bdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	font, err := bdfgo.ParseFont(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
func ParseFont(r io.Reader, opts ...LoadOption) (*Font, error) {
	return parseFont(r, "", opts)
}

// ParseFontBytes parses a BDF font held in memory.
func ParseFontBytes(data []byte, opts ...LoadOption) (*Font, error) {
	return parseFont(bytes.NewReader(data), "", opts)
}

// LoadFont loads a BDF font from a file on disk. Font.Name falls back to the
// file name without extension when the font has no FONT line.
func LoadFont(fontPath string, opts ...LoadOption) (*Font, error) {
	file, err := os.Open(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w: %w", parser.ErrSourceUnreadable, err)
	}
	defer file.Close()

	font, err := parseFont(file, fontPath, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", fontPath, err)
	}
	if font.Name == "" {
		base := filepath.Base(fontPath)
		font.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return font, nil
}

// cleanFSPath validates and cleans a path for use with fs.FS.
// It ensures the path is valid according to fs.ValidPath rules and
// prevents directory traversal attacks.
func cleanFSPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	// fs.FS disallows leading slash and uses '/' only
	if strings.HasPrefix(p, "/") {
		return "", errors.New("absolute paths not allowed")
	}
	if strings.ContainsRune(p, '\\') {
		return "", errors.New("backslashes not allowed in fs paths")
	}
	if !fs.ValidPath(p) {
		// rejects ".", ".." segments, empty elements, etc.
		return "", fmt.Errorf("invalid fs path: %s", p)
	}
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", errors.New("path traversal not allowed")
	}
	return clean, nil
}

// LoadFontFS loads a BDF font from a filesystem at the specified path.
// The returned Font is immutable and safe for concurrent use across goroutines.
//
// Path traversal (e.g., "../") is not allowed.
//
// Example with embed.FS:
//
//	//go:embed fonts/*.bdf
//	var fonts embed.FS
//
//	font, err := bdfgo.LoadFontFS(fonts, "fonts/6x13.bdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
func LoadFontFS(fsys fs.FS, fontPath string, opts ...LoadOption) (*Font, error) {
	if fsys == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}

	clean, err := cleanFSPath(fontPath)
	if err != nil {
		return nil, err
	}

	file, err := fsys.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w: %w", parser.ErrSourceUnreadable, err)
	}
	defer file.Close()

	font, err := parseFont(file, clean, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", clean, err)
	}

	// Use path package for fs.FS paths (not filepath)
	if font.Name == "" {
		font.Name = strings.TrimSuffix(path.Base(clean), path.Ext(clean))
	}
	return font, nil
}

func parseFont(r io.Reader, source string, opts []LoadOption) (*Font, error) {
	lo := &loadOptions{}
	for _, opt := range opts {
		opt(lo)
	}

	pf, err := parser.ParseWithOptions(r, &parser.Options{
		Source: source,
		Debug:  lo.debug,
	})
	if err != nil {
		return nil, err
	}

	for _, w := range pf.Warnings {
		Logger().Warn("bdfgo: font load warning", "source", source, "warning", w)
	}
	return convertParserFont(pf), nil
}

// convertParserFont converts internal parser.Font to public Font type.
// The returned Font shares the glyph map with the parser font; neither the
// parser nor the renderer touch it after the load.
func convertParserFont(pf *parser.Font) *Font {
	return &Font{
		glyphs:         pf.Glyphs,
		Name:           pf.Name,
		Version:        pf.Version,
		MaxGlyphExtent: pf.MaxGlyphExtent,
		Comments:       pf.Comments,
		Warnings:       pf.Warnings,
	}
}

// convertToParserFont converts public Font to internal parser.Font
func convertToParserFont(f *Font) *parser.Font {
	if f == nil {
		return nil
	}
	return &parser.Font{
		Glyphs:         f.glyphs,
		MaxGlyphExtent: f.MaxGlyphExtent,
		Name:           f.Name,
		Version:        f.Version,
	}
}

// Render draws text onto a new canvas using the specified font and options.
//
// A character with no glyph fails the render with ErrGlyphNotFound; a glyph
// whose bitmap is shorter than its bounding box fails it with
// ErrRowIndexOutOfRange. Either way the error is a *GlyphError naming the
// character and its position, and no canvas is returned.
func Render(text string, f *Font, opts ...Option) (*Canvas, error) {
	if f == nil {
		return nil, ErrNilFont
	}
	return renderer.Render(text, convertToParserFont(f), buildOptions(opts).toInternal())
}

// RenderTo draws text onto an existing canvas, continuing at canvas.Width.
// On error the canvas is left exactly as it was.
func RenderTo(c *Canvas, text string, f *Font, opts ...Option) error {
	if f == nil {
		return ErrNilFont
	}
	return renderer.RenderTo(c, text, convertToParserFont(f), buildOptions(opts).toInternal())
}

// RenderString renders text and prints the canvas as a text raster, top row
// first, with fill for lit pixels and spaces elsewhere.
func RenderString(text string, f *Font, fill rune, opts ...Option) (string, error) {
	c, err := Render(text, f, opts...)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := c.Print(&sb, fill); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// NewCanvas returns an empty canvas for use with RenderTo.
func NewCanvas() *Canvas {
	return renderer.NewCanvas()
}
