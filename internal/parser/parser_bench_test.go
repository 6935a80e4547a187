package parser

import (
	"fmt"
	"strings"
	"testing"
)

// createTestFont creates a font with glyphCount 8x8 glyphs for benchmarking
func createTestFont(glyphCount int) string {
	glyphs := make([]testGlyph, 0, glyphCount)
	for i := 0; i < glyphCount; i++ {
		glyphs = append(glyphs, testGlyph{
			Name:   fmt.Sprintf("g%d", i),
			Code:   i % 256,
			DWidth: 8,
			Width:  8, Height: 8, YOffset: -1,
			Rows: []string{"18", "3C", "66", "C3", "FF", "C3", "C3", "00"},
		})
	}
	return bdfSource(glyphs...)
}

func BenchmarkParse(b *testing.B) {
	testCases := []struct {
		name       string
		glyphCount int
	}{
		{"Small_10", 10},
		{"Medium_95", 95},
		{"Full_256", 256},
	}

	for _, tc := range testCases {
		fontData := createTestFont(tc.glyphCount)

		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(fontData)))
			for i := 0; i < b.N; i++ {
				if _, err := Parse(strings.NewReader(fontData)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkParseParallel benchmarks parallel parsing, which exercises the line reader pool
func BenchmarkParseParallel(b *testing.B) {
	fontData := createTestFont(256)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = Parse(strings.NewReader(fontData))
		}
	})
}

func BenchmarkDecodeRow(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = decodeRow("A5")
	}
}
