package legend

import (
	"math"
	"testing"
)

func TestMatrixMultiplyOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	if got := m.TransformPoint(Pt(1, 1)); !nearPt(got, Pt(12, 2)) {
		t.Errorf("Translate·Scale (1, 1) = %v, want (12, 2)", got)
	}
	m = Scale(2, 2).Multiply(Translate(10, 0))
	if got := m.TransformPoint(Pt(1, 1)); !nearPt(got, Pt(22, 2)) {
		t.Errorf("Scale·Translate (1, 1) = %v, want (22, 2)", got)
	}
}

func TestMatrixRotate(t *testing.T) {
	// Positive angles turn clockwise on screen: +x goes to +y.
	if got := Rotate(math.Pi / 2).TransformPoint(Pt(1, 0)); !nearPt(got, Pt(0, 1)) {
		t.Errorf("Rotate(π/2) (1, 0) = %v, want (0, 1)", got)
	}
	c := Pt(5, 5)
	if got := RotateAbout(math.Pi, c).TransformPoint(Pt(6, 5)); !nearPt(got, Pt(4, 5)) {
		t.Errorf("RotateAbout(π) (6, 5) = %v, want (4, 5)", got)
	}
	if got := RotateAbout(1.234, c).TransformPoint(c); !nearPt(got, c) {
		t.Errorf("centre moved to %v", got)
	}
}

func TestPointOps(t *testing.T) {
	p, q := Pt(1, 2), Pt(4, 6)
	if got := q.Sub(p).Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := p.Add(q).Mul(2); got != Pt(10, 16) {
		t.Errorf("Add.Mul = %v", got)
	}
}

func TestArrowHead(t *testing.T) {
	ls := LineStyle{Arrow: true, HeadLength: 9, HeadThickness: 6}
	head := ls.ArrowHead(Pt(0, 0), Pt(100, 0))
	if head[0] != Pt(100, 0) {
		t.Errorf("tip = %v", head[0])
	}
	if !nearPt(head[1], Pt(91, 3)) || !nearPt(head[2], Pt(91, -3)) {
		t.Errorf("base = %v, %v", head[1], head[2])
	}

	head = ls.ArrowHead(Pt(1, 1), Pt(1, 1))
	if head[0] != Pt(1, 1) || head[1] != Pt(1, 1) {
		t.Errorf("zero length head = %v", head)
	}

	scaled := ls.Scaled(2)
	if scaled.HeadLength != 18 || scaled.HeadThickness != 12 || !scaled.Arrow {
		t.Errorf("Scaled(2) = %+v", scaled)
	}
}
