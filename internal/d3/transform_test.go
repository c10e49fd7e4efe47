package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

func TestTransformIdentity(t *testing.T) {
	var id Transform
	p := r3.Vec{X: 1, Y: -2, Z: 3}
	if got := id.Transform(p); got != p {
		t.Errorf("identity moved point: got %v, want %v", got, p)
	}
	if id.Det() != 1 {
		t.Errorf("identity determinant %v", id.Det())
	}
	if NewTransform([12]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0}) != id {
		t.Error("NewTransform of identity matrix is not zero value")
	}
}

func TestTransformRotation(t *testing.T) {
	for _, test := range []struct {
		angle float64
		axis  r3.Vec
		in    r3.Vec
		want  r3.Vec
	}{
		{math.Pi / 2, r3.Vec{Z: 1}, r3.Vec{X: 1}, r3.Vec{Y: 1}},
		{math.Pi / 2, r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}},
		{math.Pi / 2, r3.Vec{Y: 1}, r3.Vec{Z: 1}, r3.Vec{X: 1}},
		{math.Pi, r3.Vec{X: 1}, r3.Vec{Y: 1, Z: 2}, r3.Vec{Y: -1, Z: -2}},
	} {
		got := Rotation(test.angle, test.axis).Transform(test.in)
		if !EqualWithin(got, test.want, 1e-9) {
			t.Errorf("rotate %v by %.3f about %v: got %v, want %v", test.in, test.angle, test.axis, got, test.want)
		}
	}
}

func TestTransformInverse(t *testing.T) {
	transforms := []Transform{
		Translation(r3.Vec{X: 3, Y: -1, Z: 7}),
		Rotation(0.7, r3.Vec{X: 1, Y: 2, Z: 3}),
		Reflection(r3.Vec{X: 1}),
		Rotation(1.1, r3.Vec{Z: 1}).Mul(Translation(r3.Vec{Y: 4})).Mul(Reflection(r3.Vec{Y: 1, Z: 1})),
	}
	p := r3.Vec{X: 0.3, Y: 5, Z: -2}
	for i, tf := range transforms {
		inv := tf.Inv()
		if !inv.Mul(tf).EqualWithin(Transform{}, 1e-9) {
			t.Errorf("transform %d: inverse product is not identity: %v", i, inv.Mul(tf).Array())
		}
		got := inv.Transform(tf.Transform(p))
		if !EqualWithin(got, p, 1e-9) {
			t.Errorf("transform %d: round trip got %v, want %v", i, got, p)
		}
	}
}

func TestTransformMulOrder(t *testing.T) {
	// Rotate first, then translate.
	m := Translation(r3.Vec{X: 10}).Mul(Rotation(math.Pi/2, r3.Vec{Z: 1}))
	got := m.Transform(r3.Vec{X: 1})
	want := r3.Vec{X: 10, Y: 1}
	if !EqualWithin(got, want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReflection(t *testing.T) {
	m := Reflection(r3.Vec{Z: 2})
	got := m.Transform(r3.Vec{X: 1, Y: 2, Z: 3})
	if !EqualWithin(got, r3.Vec{X: 1, Y: 2, Z: -3}, tol) {
		t.Errorf("got %v", got)
	}
	if math.Abs(m.Det()+1) > tol {
		t.Errorf("reflection determinant %v, want -1", m.Det())
	}
}

func TestBoxIntersect(t *testing.T) {
	a := Box{Min: r3.Vec{}, Max: r3.Vec{X: 2, Y: 2, Z: 2}}
	b := Box{Min: r3.Vec{X: 1, Y: 1, Z: 1}, Max: r3.Vec{X: 3, Y: 3, Z: 3}}
	got := a.Intersect(b)
	want := Box{Min: r3.Vec{X: 1, Y: 1, Z: 1}, Max: r3.Vec{X: 2, Y: 2, Z: 2}}
	if !got.Equals(want, tol) {
		t.Errorf("got %v, want %v", got, want)
	}
	c := b.Translate(r3.Vec{X: 5})
	if !a.Intersect(c).Empty() {
		t.Error("disjoint boxes should intersect to empty")
	}
	if d := a.Dist(r3.Vec{X: 5, Y: 1, Z: 1}); math.Abs(d-3) > tol {
		t.Errorf("box distance got %v, want 3", d)
	}
	if d := a.Dist(r3.Vec{X: 1, Y: 1, Z: 1}); d != 0 {
		t.Errorf("distance inside box got %v, want 0", d)
	}
}
