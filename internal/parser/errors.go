package parser

import (
	"errors"
	"fmt"
)

// Load errors. Every one of them aborts the load; no partial font is returned.
var (
	// ErrSourceUnreadable is returned when the font source cannot be opened or read
	ErrSourceUnreadable = errors.New("font source unreadable")
	// ErrUnexpectedStartChar is returned for a STARTCHAR nested inside another glyph
	ErrUnexpectedStartChar = errors.New("unexpected STARTCHAR")
	// ErrMissingCharName is returned when STARTCHAR is not followed by exactly one name
	ErrMissingCharName = errors.New("missing char name")
	// ErrUnexpectedEndChar is returned for an ENDCHAR outside a glyph block
	ErrUnexpectedEndChar = errors.New("unexpected ENDCHAR")
	// ErrBadArgumentCount is returned when a directive has the wrong number of arguments
	ErrBadArgumentCount = errors.New("bad argument count")
	// ErrDuplicateBitmapBlock is returned for a second BITMAP before ENDCHAR
	ErrDuplicateBitmapBlock = errors.New("duplicate BITMAP block")
	// ErrOversizedBitmapToken is returned for bitmap rows wider than 8 bits
	ErrOversizedBitmapToken = errors.New("oversized bitmap token")
	// ErrInvalidHexDigit is returned for bitmap rows that are not hexadecimal
	ErrInvalidHexDigit = errors.New("invalid hex digit")
)

// ParseError reports where in the source a load failed.
// Err is one of the sentinel errors above and can be matched with errors.Is.
type ParseError struct {
	Line      int    // 1-based line number, 0 when the failure is not tied to a line
	Directive string // directive being processed, or "bitmap row"
	Detail    string // human readable context (expected vs. actual counts, offending token)
	Err       error
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Directive != "" {
		msg = e.Directive + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Unwrap returns the underlying sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
