// Package legend lays out and draws the legend of a bivariate renderer: an
// N×N grid of colour swatches with optional axis arrows, axis titles, tick
// labels, colour separators and hatched empty cells.
//
// Layout is a pure function of the canvas size, the polygon list and the
// Options. Everything is derived from the side of the largest square that
// fits the canvas:
//
//  1. size = min(width, height) × scale factor
//  2. title band: tallest axis title plus margin, if titles are enabled
//  3. tick band: height of the largest X tick plus margin; the width of the
//     largest Y tick is reserved separately
//  4. arrow band: ArrowWidth percent of size plus margin
//  5. inset = title band + tick band + arrow band, left of and below the grid
//  6. cell = (size - inset) / N
//  7. transform: identity, a 45 degree rotation scaled to fit, or a shift
//     right by the Y tick width
//
// Compute returns the geometry; Draw and Engine.Render send it to a Canvas.
//
//	polys := renderer.GenerateLegendPolygons()
//	eng := legend.NewEngine(legend.DefaultOptions())
//	layout, err := eng.Render(canvas, 500, 500, polys)
package legend
