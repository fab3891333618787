package text

import (
	"bytes"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Extent is the size of a line of text.
type Extent struct {
	Width   float64 // advance width
	Ascent  float64 // distance above the baseline, positive
	Descent float64 // distance below the baseline, positive
}

// Height returns Ascent + Descent.
func (e Extent) Height() float64 {
	return e.Ascent + e.Descent
}

// Measurer reports the extent of a string drawn with a format.
type Measurer interface {
	Measure(s string, f Format) Extent
}

// ShapingMeasurer measures text by shaping it with go-text/typesetting, so
// kerning and ligatures are reflected in the width.
//
// ShapingMeasurer is safe for concurrent use. Parsed go-text fonts are cached
// per Font and extents per string; HarfbuzzShaper instances are pooled.
type ShapingMeasurer struct {
	shaperPool sync.Pool
	extents    *Cache[extentKey, Extent]

	mu        sync.RWMutex
	fontCache map[*Font]*gotext.Font
}

// NewShapingMeasurer creates a measurer with an empty font cache.
func NewShapingMeasurer() *ShapingMeasurer {
	return &ShapingMeasurer{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		extents:   NewCache[extentKey, Extent](measureCacheSize),
		fontCache: make(map[*Font]*gotext.Font),
	}
}

// measureCacheSize bounds the extent cache. A legend measures a few dozen
// strings.
const measureCacheSize = 1024

// Measure implements Measurer. The empty string measures as zero.
func (m *ShapingMeasurer) Measure(s string, f Format) Extent {
	if s == "" || f.Size <= 0 {
		return Extent{}
	}

	fnt := f.FontOrDefault()
	key := extentKey{text: s, font: fnt, size: f.Size}
	if ext, ok := m.extents.Get(key); ok {
		return ext
	}

	gf, err := m.goTextFont(fnt)
	if err != nil {
		return Extent{}
	}

	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(gf),
		Size:      fixed.Int26_6(f.Size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := m.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	m.shaperPool.Put(hb)

	ext := Extent{
		Width:   fixedToFloat(out.Advance),
		Ascent:  math.Abs(fixedToFloat(out.LineBounds.Ascent)),
		Descent: math.Abs(fixedToFloat(out.LineBounds.Descent)),
	}
	m.extents.Set(key, ext)
	return ext
}

func (m *ShapingMeasurer) goTextFont(f *Font) (*gotext.Font, error) {
	m.mu.RLock()
	if gf, ok := m.fontCache[f]; ok {
		m.mu.RUnlock()
		return gf, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if gf, ok := m.fontCache[f]; ok {
		return gf, nil
	}
	face, err := gotext.ParseTTF(bytes.NewReader(f.data))
	if err != nil {
		return nil, err
	}
	m.fontCache[f] = face.Font
	return face.Font, nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
