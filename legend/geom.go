package legend

import "math"

// Point is a 2D point in canvas units, y pointing down.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length of p as a vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Matrix is a 2D affine transform in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// mapping x' = a*x + b*y + c and y' = d*x + e*y + f.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale returns a scale by (x, y) about the origin.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate returns a rotation by angle radians about the origin. With y
// pointing down a positive angle turns clockwise on screen.
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// RotateAbout returns a rotation by angle radians about c.
func RotateAbout(angle float64, c Point) Matrix {
	return Translate(c.X, c.Y).Multiply(Rotate(angle)).Multiply(Translate(-c.X, -c.Y))
}

// Multiply returns m * other: other is applied first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies m to p.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformPoints applies m to every point and returns a new slice.
func (m Matrix) TransformPoints(pts ...Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = m.TransformPoint(p)
	}
	return out
}
