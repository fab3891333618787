// Package bivariate colours polygon features by combining two numeric
// attributes into a single bivariate colour.
//
// # Overview
//
// Each of the two attribute fields is split into N contiguous classes. A
// feature falls into one class per field, giving a class pair (i, j). The pair
// is turned into a colour by sampling two single-variable gradients at
// i/(N-1) and j/(N-1) and mixing the two samples with a [MixingMethod].
//
//	r := bivariate.NewRenderer()
//	r.SetField1("AREA")
//	r.SetField2("PERIMETER")
//	if err := r.ClassifyField1(layer, "AREA"); err != nil { ... }
//	if err := r.ClassifyField2(layer, "PERIMETER"); err != nil { ... }
//
//	for f := range layer.Features() {
//		sym, err := r.SymbolForFeature(f)
//		...
//	}
//
//	polygons := r.GenerateLegendPolygons() // N×N cells for the legend
//
// # Pair keys
//
// A class pair is identified by the 1-based string "{i+1}-{j+1}". Pair keys
// index the symbol cache and the set of pairs observed in the data, and they
// are what the categorize tool writes into layers.
//
// # Registries
//
// Mixing methods, palettes and classification methods are looked up by name
// through a [Registry]. Build one with [NewRegistry] at start-up and pass it
// to the renderer and to [Load].
//
// # Legend
//
// The legend itself is laid out and drawn by package legend against a Canvas
// capability; packages recording and raster provide canvases.
//
// # Concurrency
//
// A Renderer is not safe for concurrent use. The symbol cache and the set of
// observed pair keys grow during a render pass without locking; use one
// Renderer per goroutine or guard it externally. Registries are read-only
// after construction.
package bivariate
