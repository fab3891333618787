package text

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Font is a parsed font file. One Font serves faces at any size.
//
// Font is safe for concurrent use.
type Font struct {
	name string
	data []byte
	otf  *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// ParseFont parses TrueType or OpenType data. The data is copied.
func ParseFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	f := &Font{
		data:  append([]byte(nil), data...),
		otf:   otf,
		faces: make(map[float64]font.Face),
	}
	f.name = fontName(otf)
	return f, nil
}

// LoadFont reads and parses a font file.
func LoadFont(path string) (*Font, error) {
	// #nosec G304 -- font path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return ParseFont(data)
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
)

// DefaultFont returns the Go Regular font bundled with x/image.
func DefaultFont() *Font {
	defaultFontOnce.Do(func() {
		f, err := ParseFont(goregular.TTF)
		if err != nil {
			panic("text: bundled Go Regular font does not parse: " + err.Error())
		}
		defaultFont = f
	})
	return defaultFont
}

// Name returns the font family name.
func (f *Font) Name() string { return f.name }

// Data returns the raw font bytes. Callers must not modify them.
func (f *Font) Data() []byte { return f.data }

// Face returns an x/image face at size points and 72 DPI. Faces are cached
// per size.
func (f *Font) Face(size float64) (font.Face, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: failed to create face: %w", err)
	}
	f.faces[size] = face
	return face, nil
}

func fontName(otf *opentype.Font) string {
	if name, err := otf.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := otf.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}
