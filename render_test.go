package bdfgo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/bmp"
	"golang.org/x/text/encoding/charmap"

	"github.com/ryanlewis/bdfgo/internal/debug"
)

func mustParseTestFont(t testing.TB) *Font {
	t.Helper()
	font, err := ParseFontBytes([]byte(testFontData))
	if err != nil {
		t.Fatalf("ParseFontBytes() error = %v", err)
	}
	return font
}

func TestRender(t *testing.T) {
	font := mustParseTestFont(t)

	canvas, err := Render(".A", font)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := []Point{{X: 0, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 0}, {X: 3, Y: 1}, {X: 3, Y: 2}}
	if diff := cmp.Diff(want, canvas.Points()); diff != "" {
		t.Errorf("Points() mismatch (-want +got):\n%s", diff)
	}
	if canvas.Width != 5 || canvas.Height != 3 {
		t.Errorf("bounds = %dx%d, want 5x3", canvas.Width, canvas.Height)
	}
}

func TestRenderString(t *testing.T) {
	font := mustParseTestFont(t)

	tests := []struct {
		name string
		text string
		fill rune
		want string
	}{
		{"letter", "A", '#', " # \n## \n # \n"},
		{"dot then letter", ".A", '@', "   @ \n  @@ \n@  @ \n"},
		{"empty", "", '#', ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderString(tt.text, font, tt.fill)
			if err != nil {
				t.Fatalf("RenderString() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderString() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	font := mustParseTestFont(t)

	if _, err := Render("A", nil); !errors.Is(err, ErrNilFont) {
		t.Errorf("Render(nil font) error = %v, want ErrNilFont", err)
	}
	if err := RenderTo(NewCanvas(), "A", nil); !errors.Is(err, ErrNilFont) {
		t.Errorf("RenderTo(nil font) error = %v, want ErrNilFont", err)
	}
	if err := RenderTo(nil, "A", font); !errors.Is(err, ErrNilCanvas) {
		t.Errorf("RenderTo(nil canvas) error = %v, want ErrNilCanvas", err)
	}

	out, err := RenderString("A.B", font, '#')
	if !errors.Is(err, ErrGlyphNotFound) {
		t.Fatalf("RenderString() error = %v, want ErrGlyphNotFound", err)
	}
	if out != "" {
		t.Errorf("RenderString() = %q, want empty on error", out)
	}
	var gerr *GlyphError
	if !errors.As(err, &gerr) || gerr.Char != 'B' || gerr.Index != 2 {
		t.Errorf("error = %#v, want a GlyphError for 'B' at index 2", err)
	}
}

func TestRenderTo(t *testing.T) {
	font := mustParseTestFont(t)

	canvas := NewCanvas()
	for _, word := range []string{"A", ".", "A"} {
		if err := RenderTo(canvas, word, font); err != nil {
			t.Fatalf("RenderTo(%q) error = %v", word, err)
		}
	}
	whole, err := Render("A.A", font)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if diff := cmp.Diff(whole.Points(), canvas.Points()); diff != "" {
		t.Errorf("incremental render differs (-whole +incremental):\n%s", diff)
	}

	before := canvas.Clone()
	if err := RenderTo(canvas, "AAx", font); err == nil {
		t.Fatal("RenderTo() should fail on a missing glyph")
	}
	if diff := cmp.Diff(before.Points(), canvas.Points()); diff != "" {
		t.Errorf("failed RenderTo mutated the canvas (-before +after):\n%s", diff)
	}
}

func TestWithCharmap(t *testing.T) {
	// Code 0x9C is the pound sign in code page 437 and unassigned in Latin-1
	data := strings.Replace(testFontData, "ENCODING 46", "ENCODING 156", 1)
	font, err := ParseFontBytes([]byte(data))
	if err != nil {
		t.Fatalf("ParseFontBytes() error = %v", err)
	}

	if _, err := Render("£", font); !errors.Is(err, ErrGlyphNotFound) {
		t.Errorf("Render() with Latin-1 error = %v, want ErrGlyphNotFound", err)
	}
	canvas, err := Render("£", font, WithCharmap(charmap.CodePage437))
	if err != nil {
		t.Fatalf("Render() with CP437 error = %v", err)
	}
	if canvas.Len() != 1 {
		t.Errorf("Len() = %d, want 1", canvas.Len())
	}
}

func TestWithDebug(t *testing.T) {
	font := mustParseTestFont(t)

	// Values that are not sessions are ignored
	if _, err := Render("A", font, WithDebug("not a session"), WithDebug(nil)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	debug.SetEnabled(true)
	defer debug.SetEnabled(false)

	var buf bytes.Buffer
	session := debug.NewSession(debug.NewPrettySink(&buf))
	if _, err := ParseFontBytes([]byte(testFontData), WithLoadDebug(session)); err != nil {
		t.Fatalf("ParseFontBytes() error = %v", err)
	}
	if _, err := Render("A.", font, WithDebug(session)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := session.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"[load/Start]", "[load/End]", "[render/Start]", "[render/Glyph]", "[render/End]"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteBMP(t *testing.T) {
	font := mustParseTestFont(t)
	canvas, err := Render(".A", font)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteBMP(&buf, canvas); err != nil {
		t.Fatalf("WriteBMP() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("BM")) {
		t.Fatalf("output does not start with a BMP signature")
	}
	if size := binary.LittleEndian.Uint32(buf.Bytes()[2:6]); int(size) != buf.Len() {
		t.Errorf("BMP header size = %d, file is %d bytes", size, buf.Len())
	}

	img, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("bmp.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Fatalf("decoded bounds = %v, want 5x3", b)
	}
	// Canvas (0, 0) is the bottom-left image pixel
	if g := color.GrayModel.Convert(img.At(0, 2)).(color.Gray); g.Y != 0 {
		t.Errorf("pixel (0, 2) = %v, want ink", g)
	}
	if g := color.GrayModel.Convert(img.At(1, 2)).(color.Gray); g.Y != 0xFF {
		t.Errorf("pixel (1, 2) = %v, want paper", g)
	}

	if err := WriteBMP(&buf, nil); !errors.Is(err, ErrNilCanvas) {
		t.Errorf("WriteBMP(nil) error = %v, want ErrNilCanvas", err)
	}
	if err := WriteBMP(&buf, NewCanvas()); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("WriteBMP(empty) error = %v, want ErrEmptyCanvas", err)
	}
}

func TestLookupCharmap(t *testing.T) {
	tests := []struct {
		name    string
		want    *charmap.Charmap
		wantErr bool
	}{
		{"", charmap.ISO8859_1, false},
		{"latin1", charmap.ISO8859_1, false},
		{"CP437", charmap.CodePage437, false},
		{"cp1252", charmap.Windows1252, false},
		{"koi8r", charmap.KOI8R, false},
		{"ebcdic", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LookupCharmap(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LookupCharmap() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("LookupCharmap() = %v, want %v", got, tt.want)
			}
		})
	}

	if diff := cmp.Diff([]string{"cp1252", "cp437", "koi8r", "latin1"}, CharmapNames()); diff != "" {
		t.Errorf("CharmapNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestNilFontAccessors(t *testing.T) {
	var f *Font
	if f.Len() != 0 || f.Codes() != nil {
		t.Error("nil font should be empty")
	}
	if _, ok := f.Glyph('A'); ok {
		t.Error("nil font should have no glyphs")
	}
}

func BenchmarkRender(b *testing.B) {
	font, err := LoadFont("testdata/fonts/mini.bdf")
	if err != nil {
		b.Fatalf("Failed to load mini font: %v", err)
	}

	b.Run("Render", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := Render("Hi. Hello!", font); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("RenderString", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := RenderString("Hi. Hello!", font, '#'); err != nil {
				b.Fatal(err)
			}
		}
	})
}
