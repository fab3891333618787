package text

import "image/color"

// Format describes how a piece of text is drawn.
type Format struct {
	// Font is the font to draw with; nil means DefaultFont.
	Font *Font

	// Size is the font size in points at scale factor 1.
	Size float64

	Color color.NRGBA
}

// DefaultFormat returns 12pt black Go Regular.
func DefaultFormat() Format {
	return Format{
		Font:  DefaultFont(),
		Size:  12,
		Color: color.NRGBA{A: 255},
	}
}

// Scaled returns f with its size multiplied by s.
func (f Format) Scaled(s float64) Format {
	f.Size *= s
	return f
}

// FontOrDefault returns f.Font, or DefaultFont when it is nil.
func (f Format) FontOrDefault() *Font {
	if f.Font == nil {
		return DefaultFont()
	}
	return f.Font
}
