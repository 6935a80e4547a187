package parser

import (
	"strconv"

	"github.com/ryanlewis/bdfgo/internal/common"
)

// parseInt reads an optionally signed decimal prefix of s.
//
// Trailing non-digits are ignored and a token without digits reads as 0.
// Values outside the int range saturate.
func parseInt(s string) int {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	// strconv returns the saturated value alongside ErrRange
	n, _ := strconv.Atoi(s[:end])
	return n
}

// decodeRow decodes one bitmap row token into its 8-bit mask, high nibble
// first. Hex digits are case-insensitive.
func decodeRow(tok string) (uint8, error) {
	if len(tok) > common.MaxRowHexDigits {
		return 0, ErrOversizedBitmapToken
	}
	v, err := strconv.ParseUint(tok, 16, common.RowBits)
	if err != nil {
		return 0, ErrInvalidHexDigit
	}
	return uint8(v), nil
}
