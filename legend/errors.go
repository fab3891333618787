package legend

import "errors"

var (
	// ErrInvalidPolygons is returned when the polygon list is empty, its
	// length is not a perfect square, or a polygon lies outside the grid.
	ErrInvalidPolygons = errors.New("legend: invalid legend polygons")

	// ErrInvalidSize is returned for a non-positive width, height or scale
	// factor.
	ErrInvalidSize = errors.New("legend: invalid canvas size")
)
