package parser

import (
	"fmt"
	"strings"
	"testing"
)

// Test helpers for BDF parser testing.
//
// Common patterns:
//   - glyphBlock builds the source text of one STARTCHAR..ENDCHAR block
//   - bdfSource wraps glyph blocks in a minimal font header
//   - ValidateX functions fail the test on mismatch
//   - MustX functions return values or fail the test

// testGlyph describes one glyph block for glyphBlock.
type testGlyph struct {
	Name    string
	Code    int
	DWidth  int
	Width   int
	Height  int
	XOffset int
	YOffset int
	Rows    []string
}

// glyphBlock renders g as BDF source lines.
func glyphBlock(g testGlyph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "STARTCHAR %s\n", g.Name)
	fmt.Fprintf(&sb, "ENCODING %d\n", g.Code)
	fmt.Fprintf(&sb, "SWIDTH %d 0\n", g.DWidth*100)
	fmt.Fprintf(&sb, "DWIDTH %d 0\n", g.DWidth)
	fmt.Fprintf(&sb, "BBX %d %d %d %d\n", g.Width, g.Height, g.XOffset, g.YOffset)
	sb.WriteString("BITMAP\n")
	for _, row := range g.Rows {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	sb.WriteString("ENDCHAR\n")
	return sb.String()
}

// bdfSource wraps glyph blocks in a font header like the ones real fonts carry.
func bdfSource(glyphs ...testGlyph) string {
	var sb strings.Builder
	sb.WriteString("STARTFONT 2.1\n")
	sb.WriteString("FONT -test-fixed-medium-r-normal--8-80-75-75-c-60-iso8859-1\n")
	sb.WriteString("SIZE 8 75 75\n")
	sb.WriteString("FONTBOUNDINGBOX 6 8 0 -1\n")
	sb.WriteString("STARTPROPERTIES 2\n")
	sb.WriteString("FONT_ASCENT 7\n")
	sb.WriteString("FONT_DESCENT 1\n")
	sb.WriteString("ENDPROPERTIES\n")
	fmt.Fprintf(&sb, "CHARS %d\n", len(glyphs))
	for _, g := range glyphs {
		sb.WriteString(glyphBlock(g))
	}
	sb.WriteString("ENDFONT\n")
	return sb.String()
}

// parseTestFont parses src and fails the test on error.
func parseTestFont(t *testing.T, src string) *Font {
	t.Helper()
	f, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return f
}

// MustGetGlyph returns the glyph for code or fails the test.
func MustGetGlyph(t *testing.T, f *Font, code byte) Glyph {
	t.Helper()
	g, exists := f.Glyphs[code]
	if !exists {
		t.Fatalf("glyph for code %d not found", code)
	}
	return g
}

// ValidateRows checks a glyph's row masks.
func ValidateRows(t *testing.T, g Glyph, expected []uint8) {
	t.Helper()
	if len(g.Rows) != len(expected) {
		t.Fatalf("glyph %q has %d rows, want %d", g.Name, len(g.Rows), len(expected))
	}
	for i, want := range expected {
		if g.Rows[i] != want {
			t.Errorf("glyph %q row %d = 0x%02X, want 0x%02X", g.Name, i, g.Rows[i], want)
		}
	}
}

// ValidateGlyphCount checks the number of glyphs in the table.
func ValidateGlyphCount(t *testing.T, f *Font, expected int) {
	t.Helper()
	if got := len(f.Glyphs); got != expected {
		t.Errorf("font has %d glyphs, want %d", got, expected)
	}
}

// ValidateRowsMatchHeight checks len(Rows) == BBX.Height for every glyph.
func ValidateRowsMatchHeight(t *testing.T, f *Font) {
	t.Helper()
	for code, g := range f.Glyphs {
		if len(g.Rows) != g.BBX.Height {
			t.Errorf("glyph %q (code %d) has %d rows, BBX height %d", g.Name, code, len(g.Rows), g.BBX.Height)
		}
	}
}
