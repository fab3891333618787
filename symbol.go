package bivariate

// FillSymbol is the polygon fill assigned to a class pair.
type FillSymbol struct {
	Color        Color
	OutlineColor Color
	OutlineWidth float64
	Outline      bool
}

// DefaultFillSymbol returns a grey fill without outline.
func DefaultFillSymbol() FillSymbol {
	return FillSymbol{
		Color:        Grey,
		OutlineColor: Black,
	}
}

// WithColor returns s filled with c.
func (s FillSymbol) WithColor(c Color) FillSymbol {
	s.Color = c
	return s
}

// LegendPolygon is one legend cell: the class pair at grid position (X, Y),
// its symbol, and whether any feature in the data falls into the pair.
type LegendPolygon struct {
	X, Y        int
	Symbol      FillSymbol
	ExistsInMap bool
}

// LegendSymbolItem pairs an observed pair key with its symbol.
type LegendSymbolItem struct {
	Key    string
	Symbol FillSymbol
}
