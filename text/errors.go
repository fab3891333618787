package text

import "errors"

var (
	// ErrEmptyFontData is returned by ParseFont for empty input.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidFont is returned by ParseFont for data that is not a
	// TrueType or OpenType font.
	ErrInvalidFont = errors.New("text: invalid font data")
)
