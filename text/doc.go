// Package text provides the text services the legend needs: fonts, text
// formats, text extents and locale-aware number formatting.
//
//   - Font: parsed TrueType/OpenType data, shared across the application;
//     x/image faces are created from it per size.
//   - Format: font, size and colour of a piece of legend text.
//   - Measurer: reports the advance width and vertical extent of a string.
//     ShapingMeasurer shapes with go-text/typesetting so kerning is counted.
//   - NumberFormatter: formats tick and class-break values with a fixed
//     number of decimals and the grouping rules of a configured locale.
//
// # Example usage
//
//	f := text.DefaultFormat()
//	m := text.NewShapingMeasurer()
//	ext := m.Measure("Axis X", f)
//
//	nf := text.NewNumberFormatter(language.Czech)
//	nf.Format(0.5, 2) // "0,50"
package text
