package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"unterminated last line", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := acquireLineReader(strings.NewReader(tt.input))
			defer releaseLineReader(lr)

			var got []string
			for {
				line, ok := lr.next()
				if !ok {
					break
				}
				got = append(got, line)
			}
			if err := lr.Err(); err != nil {
				t.Fatalf("Err() = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}

	// Releasing nil is a no-op
	releaseLineReader(nil)
}

func TestPooledReaderReadsLongLines(t *testing.T) {
	// A comment longer than the pooled buffer must still read whole
	long := "COMMENT " + strings.Repeat("x", readerBufferSize*3)
	f, err := Parse(strings.NewReader(long + "\n" + glyphBlock(glyphDot)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(f.Comments) != 1 || len(f.Comments[0]) != readerBufferSize*3 {
		t.Errorf("long comment not preserved")
	}
	ValidateGlyphCount(t, f, 1)
}
