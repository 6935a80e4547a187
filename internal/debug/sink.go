package debug

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	// Format: [timestamp] [phase/event]
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s seq=%d\n",
		event.Timestamp, event.Phase, event.Event, event.SessionID, event.Seq)

	// Pretty print data based on type
	switch d := event.Data.(type) {
	case LoadStartData:
		s.writeLoadStart(d)
	case LoadGlyphData:
		s.writeLoadGlyph(d)
	case LoadEndData:
		s.writeLoadEnd(d)
	case RenderStartData:
		s.writeRenderStart(d)
	case RenderEndData:
		s.writeRenderEnd(d)
	case GlyphData:
		s.writeGlyph(d)
	case ErrorData:
		s.writeError(d)
	case map[string]interface{}:
		s.writeMap(d)
	case map[string]int64:
		s.writeMapInt64(d)
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeLoadStart(d LoadStartData) {
	if d.Source != "" {
		fmt.Fprintf(s.w, "  source: %s\n", d.Source)
	}
}

func (s *PrettySink) writeLoadGlyph(d LoadGlyphData) {
	fmt.Fprintf(s.w, "  line: %d, name: %s, code: %d\n", d.Line, d.Name, d.Code)
	fmt.Fprintf(s.w, "  bbx: %dx%d%+d%+d, rows: %d\n", d.Width, d.Height, d.XOffset, d.YOffset, d.Rows)
	if d.Skipped != "" {
		fmt.Fprintf(s.w, "  skipped: %s\n", d.Skipped)
	}
}

func (s *PrettySink) writeLoadEnd(d LoadEndData) {
	fmt.Fprintf(s.w, "  lines: %d, glyphs: %d, max_glyph_extent: %d\n", d.Lines, d.Glyphs, d.MaxGlyphExtent)
	for _, w := range d.Warnings {
		fmt.Fprintf(s.w, "  warning: %s\n", w)
	}
	fmt.Fprintf(s.w, "  elapsed_ms: %d\n", d.ElapsedMs)
}

func (s *PrettySink) writeRenderStart(d RenderStartData) {
	fmt.Fprintf(s.w, "  text: %q (length: %d)\n", d.Text, d.TextLength)
	fmt.Fprintf(s.w, "  font_glyphs: %d, max_glyph_extent: %d\n", d.FontGlyphs, d.MaxGlyphExtent)
	fmt.Fprintf(s.w, "  charmap: %s, start_width: %d\n", d.Charmap, d.StartWidth)
}

func (s *PrettySink) writeRenderEnd(d RenderEndData) {
	fmt.Fprintf(s.w, "  canvas: %dx%d, pixels: %d, total_glyphs: %d\n",
		d.Width, d.Height, d.Pixels, d.TotalGlyphs)
	fmt.Fprintf(s.w, "  elapsed_ms: %d\n", d.ElapsedMs)
}

func (s *PrettySink) writeGlyph(d GlyphData) {
	fmt.Fprintf(s.w, "  index: %d, rune: %s, code: %d, name: %s\n", d.Index, runeStr(d.Rune), d.Code, d.Name)
	fmt.Fprintf(s.w, "  bbx: %dx%d%+d%+d\n", d.Width, d.Height, d.XOffset, d.YOffset)
	fmt.Fprintf(s.w, "  origin: %d, advance: %d, pixels_drawn: %d\n", d.Origin, d.Advance, d.PixelsDrawn)
	for i, row := range d.RowsRendered {
		fmt.Fprintf(s.w, "  row %2d: %s\n", i, row)
	}
}

func (s *PrettySink) writeError(d ErrorData) {
	if d.Rune != 0 {
		fmt.Fprintf(s.w, "  index: %d, rune: %s\n", d.Index, runeStr(d.Rune))
	} else {
		fmt.Fprintf(s.w, "  index: %d\n", d.Index)
	}
	fmt.Fprintf(s.w, "  error: %s\n", d.Error)
}

func (s *PrettySink) writeMap(d map[string]interface{}) {
	for _, k := range sortedKeys(d) {
		fmt.Fprintf(s.w, "  %s: %v\n", k, d[k])
	}
}

func (s *PrettySink) writeMapInt64(d map[string]int64) {
	for _, k := range sortedKeys(d) {
		fmt.Fprintf(s.w, "  %s: %d\n", k, d[k])
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}

// runeStr formats a rune for display: 'X' (0x58) or NUL for 0.
func runeStr(r rune) string {
	if r == 0 {
		return "NUL"
	}
	if r >= 32 && r < 127 {
		return fmt.Sprintf("'%c' (0x%02X)", r, r)
	}
	return fmt.Sprintf("0x%02X", r)
}

// SlogSink forwards events to a structured logger at debug level, for
// programs that already collect their logs in one place. The event payload
// is attached under the "data" key.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink logging through logger, or slog.Default when
// logger is nil.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

// Write logs the event. The logger's handler decides whether debug records
// are kept.
func (s *SlogSink) Write(event Event) error {
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "bdfgo debug event",
		slog.String("session_id", event.SessionID),
		slog.Int("seq", event.Seq),
		slog.String("phase", event.Phase),
		slog.String("event", event.Event),
		slog.Any("data", event.Data),
	)
	return nil
}

// Flush is a no-op; the logger's handler owns buffering.
func (s *SlogSink) Flush() error { return nil }

// Close is a no-op.
func (s *SlogSink) Close() error { return nil }
