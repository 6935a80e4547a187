package bdfgo

import (
	"fmt"
	"strings"
	"testing"
)

// syntheticFont returns BDF data with n 8x8 glyphs, codes 0 to n-1.
func syntheticFont(n int) []byte {
	var b strings.Builder
	b.WriteString("STARTFONT 2.1\nFONT -bench-block-medium-r-normal--8-80-75-75-c-80-iso8859-1\n")
	for code := 0; code < n; code++ {
		fmt.Fprintf(&b, "STARTCHAR g%d\nENCODING %d\nSWIDTH 500 0\nDWIDTH 8 0\nBBX 8 8 0 -1\nBITMAP\n", code, code)
		for row := 0; row < 8; row++ {
			fmt.Fprintf(&b, "%02X\n", (code+row)&0xFF)
		}
		b.WriteString("ENDCHAR\n")
	}
	b.WriteString("ENDFONT\n")
	return []byte(b.String())
}

// BenchmarkContentKey measures a cache hit through ParseFont, which hashes
// the whole source on every call, for small and large fonts.
func BenchmarkContentKey(b *testing.B) {
	sources := []struct {
		name string
		data []byte
	}{
		{"2_glyphs", []byte(testFontData)},
		{"200_glyphs", syntheticFont(200)},
	}

	for _, src := range sources {
		b.Run(src.name, func(b *testing.B) {
			cache := NewFontCache(4)
			if _, err := cache.ParseFont(src.data); err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(src.data)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := cache.ParseFont(src.data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkCachedRender is the server loop: fetch the font by path, then
// render a phrase with it.
func BenchmarkCachedRender(b *testing.B) {
	const path = "testdata/fonts/mini.bdf"

	b.Run("Uncached", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			font, err := LoadFont(path)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := Render("Hello", font); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Cached", func(b *testing.B) {
		cache := NewFontCache(1)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			font, err := cache.LoadFont(path)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := Render("Hello", font); err != nil {
				b.Fatal(err)
			}
		}
		b.ReportMetric(cache.Stats().HitRate(), "hit_rate_%")
	})
}

// BenchmarkEvictionChurn alternates two fonts through a single-slot cache,
// so every call misses, parses and evicts.
func BenchmarkEvictionChurn(b *testing.B) {
	fonts := [][]byte{syntheticFont(64), syntheticFont(65)}
	cache := NewFontCache(1)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := cache.ParseFont(fonts[i%2]); err != nil {
			b.Fatal(err)
		}
	}

	stats := cache.Stats()
	b.ReportMetric(float64(stats.Evictions)/float64(b.N), "evictions/op")
	b.ReportMetric(float64(stats.Bytes), "cached_bytes")
}

// BenchmarkSharedCacheParallel renders from one shared cache across
// goroutines, the contended path through lookup's lock upgrade.
func BenchmarkSharedCacheParallel(b *testing.B) {
	cache := NewFontCache(8)
	fonts := make([][]byte, 4)
	for i := range fonts {
		fonts[i] = syntheticFont(96 + i)
	}

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			font, err := cache.ParseFont(fonts[i%len(fonts)])
			if err != nil {
				b.Error(err)
				return
			}
			if _, err := Render("AB", font); err != nil {
				b.Error(err)
				return
			}
			i++
		}
	})
}
