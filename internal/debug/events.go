package debug

// LoadStartData contains information about the start of a font load.
type LoadStartData struct {
	Source string `json:"source,omitempty"`
}

// LoadGlyphData contains information about a finalized glyph record.
type LoadGlyphData struct {
	Line    int    `json:"line"`
	Name    string `json:"name"`
	Code    int    `json:"code"`
	Width   int    `json:"bbx_width"`
	Height  int    `json:"bbx_height"`
	XOffset int    `json:"bbx_x_offset"`
	YOffset int    `json:"bbx_y_offset"`
	Rows    int    `json:"rows"`
	Skipped string `json:"skipped,omitempty"` // "duplicate", "out_of_range"
}

// LoadEndData contains information about the end of a font load.
type LoadEndData struct {
	Lines          int      `json:"lines"`
	Glyphs         int      `json:"glyphs"`
	MaxGlyphExtent int      `json:"max_glyph_extent"`
	Warnings       []string `json:"warnings,omitempty"`
	ElapsedMs      int64    `json:"elapsed_ms"`
}

// RenderStartData contains information about the start of a render operation.
type RenderStartData struct {
	Text           string `json:"text"`
	TextLength     int    `json:"text_length"`
	FontGlyphs     int    `json:"font_glyphs"`
	MaxGlyphExtent int    `json:"max_glyph_extent"`
	Charmap        string `json:"charmap"`
	StartWidth     int    `json:"start_width"`
}

// RenderEndData contains information about the end of a render operation.
type RenderEndData struct {
	Width       int   `json:"width"`
	Height      int   `json:"height"`
	Pixels      int   `json:"pixels"`
	TotalGlyphs int   `json:"total_glyphs"`
	ElapsedMs   int64 `json:"elapsed_ms"`
}

// GlyphData contains information about a glyph placed on the canvas.
type GlyphData struct {
	Index        int      `json:"index"`
	Rune         rune     `json:"rune"`
	Code         int      `json:"code"`
	Name         string   `json:"name"`
	Width        int      `json:"bbx_width"`
	Height       int      `json:"bbx_height"`
	XOffset      int      `json:"bbx_x_offset"`
	YOffset      int      `json:"bbx_y_offset"`
	Origin       int      `json:"origin"`
	Advance      int      `json:"advance"`
	PixelsDrawn  int      `json:"pixels_drawn"`
	RowsRendered []string `json:"rows_rendered,omitempty"`
}

// ErrorData contains information about an aborted operation.
type ErrorData struct {
	Index int    `json:"index"`
	Rune  rune   `json:"rune,omitempty"`
	Error string `json:"error"`
}
