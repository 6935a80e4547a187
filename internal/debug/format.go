package debug

import "strings"

// FormatRowMask renders the leftmost width bits of a row mask as '#' for
// set pixels and '.' for clear ones, most significant bit first.
func FormatRowMask(mask uint8, width int) string {
	if width <= 0 {
		return ""
	}
	if width > 8 {
		width = 8
	}
	var b strings.Builder
	b.Grow(width)
	for x := 0; x < width; x++ {
		if mask&(1<<(7-x)) != 0 {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// FormatRows renders each row mask of a glyph with FormatRowMask.
func FormatRows(rows []uint8, width int) []string {
	if len(rows) == 0 {
		return nil
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = FormatRowMask(r, width)
	}
	return out
}
