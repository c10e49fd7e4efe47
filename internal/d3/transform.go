package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform represents a 3D affine transformation, a 3x3 linear part
// followed by a translation. The zero value of Transform is the
// identity transform.
type Transform struct {
	// in order to make the zero value of Transform represent the identity
	// transform the diagonal is stored with the identity subtracted.
	//  d00 = x00-1, d11 = x11-1, d22 = x22-1
	d00, x01, x02, x03 float64
	x10, d11, x12, x13 float64
	x20, x21, d22, x23 float64
}

// NewTransform returns a Transform populated with the 12 row-major
// elements of a 3x4 affine matrix.
func NewTransform(a [12]float64) Transform {
	return Transform{
		d00: a[0] - 1, x01: a[1], x02: a[2], x03: a[3],
		x10: a[4], d11: a[5] - 1, x12: a[6], x13: a[7],
		x20: a[8], x21: a[9], d22: a[10] - 1, x23: a[11],
	}
}

// Translation returns a pure translation Transform.
func Translation(v r3.Vec) Transform {
	return Transform{x03: v.X, x13: v.Y, x23: v.Z}
}

// Rotation returns the Transform that rotates by angle radians
// about axis following the right hand rule.
func Rotation(angle float64, axis r3.Vec) Transform {
	q := r3.NewRotation(angle, axis)
	x2 := q.Imag + q.Imag
	y2 := q.Jmag + q.Jmag
	z2 := q.Kmag + q.Kmag
	xx := q.Imag * x2
	yy := q.Jmag * y2
	zz := q.Kmag * z2
	xy := q.Imag * y2
	xz := q.Imag * z2
	yz := q.Jmag * z2
	wx := q.Real * x2
	wy := q.Real * y2
	wz := q.Real * z2
	return Transform{
		d00: -(yy + zz), x01: xy - wz, x02: xz + wy,
		x10: xy + wz, d11: -(xx + zz), x12: yz - wx,
		x20: xz - wy, x21: yz + wx, d22: -(xx + yy),
	}
}

// Reflection returns the Transform that mirrors space about
// the plane through the origin with normal n.
func Reflection(n r3.Vec) Transform {
	n = r3.Unit(n)
	// Householder matrix I - 2nn'.
	return Transform{
		d00: -2 * n.X * n.X, x01: -2 * n.X * n.Y, x02: -2 * n.X * n.Z,
		x10: -2 * n.Y * n.X, d11: -2 * n.Y * n.Y, x12: -2 * n.Y * n.Z,
		x20: -2 * n.Z * n.X, x21: -2 * n.Z * n.Y, d22: -2 * n.Z * n.Z,
	}
}

// Transform applies the Transform to the argument position.
func (t Transform) Transform(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: (t.d00+1)*v.X + t.x01*v.Y + t.x02*v.Z + t.x03,
		Y: t.x10*v.X + (t.d11+1)*v.Y + t.x12*v.Z + t.x13,
		Z: t.x20*v.X + t.x21*v.Y + (t.d22+1)*v.Z + t.x23,
	}
}

// Direction applies only the linear part of the Transform to v.
func (t Transform) Direction(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: (t.d00+1)*v.X + t.x01*v.Y + t.x02*v.Z,
		Y: t.x10*v.X + (t.d11+1)*v.Y + t.x12*v.Z,
		Z: t.x20*v.X + t.x21*v.Y + (t.d22+1)*v.Z,
	}
}

// Origin returns the image of the origin, the translation part.
func (t Transform) Origin() r3.Vec {
	return r3.Vec{X: t.x03, Y: t.x13, Z: t.x23}
}

// Translate returns the Transform followed by a translation by v.
func (t Transform) Translate(v r3.Vec) Transform {
	t.x03 += v.X
	t.x13 += v.Y
	t.x23 += v.Z
	return t
}

// Mul returns the composition t*b which applies b first, then t.
func (t Transform) Mul(b Transform) Transform {
	if t == (Transform{}) {
		return b
	}
	if b == (Transform{}) {
		return t
	}
	x00, x11, x22 := t.d00+1, t.d11+1, t.d22+1
	y00, y11, y22 := b.d00+1, b.d11+1, b.d22+1
	var m Transform
	m.d00 = x00*y00 + t.x01*b.x10 + t.x02*b.x20 - 1
	m.x01 = x00*b.x01 + t.x01*y11 + t.x02*b.x21
	m.x02 = x00*b.x02 + t.x01*b.x12 + t.x02*y22
	m.x03 = x00*b.x03 + t.x01*b.x13 + t.x02*b.x23 + t.x03

	m.x10 = t.x10*y00 + x11*b.x10 + t.x12*b.x20
	m.d11 = t.x10*b.x01 + x11*y11 + t.x12*b.x21 - 1
	m.x12 = t.x10*b.x02 + x11*b.x12 + t.x12*y22
	m.x13 = t.x10*b.x03 + x11*b.x13 + t.x12*b.x23 + t.x13

	m.x20 = t.x20*y00 + t.x21*b.x10 + x22*b.x20
	m.x21 = t.x20*b.x01 + t.x21*y11 + x22*b.x21
	m.d22 = t.x20*b.x02 + t.x21*b.x12 + x22*y22 - 1
	m.x23 = t.x20*b.x03 + t.x21*b.x13 + x22*b.x23 + t.x23
	return m
}

// Det returns the determinant of the linear part of the Transform.
func (t Transform) Det() float64 {
	x00, x11, x22 := t.d00+1, t.d11+1, t.d22+1
	return x00*(x11*x22-t.x12*t.x21) -
		t.x01*(t.x10*x22-t.x12*t.x20) +
		t.x02*(t.x10*t.x21-x11*t.x20)
}

// Inv returns the inverse of the transform such that
// t.Inv().Mul(t) is the identity Transform.
// Inv panics if the Transform is singular.
func (t Transform) Inv() Transform {
	if t == (Transform{}) {
		return t
	}
	det := t.Det()
	if math.Abs(det) < 1e-16 {
		panic("singular transform")
	}
	d := 1 / det
	x00, x11, x22 := t.d00+1, t.d11+1, t.d22+1
	var m Transform
	// Inverse of the linear part by cofactors.
	m.d00 = (x11*x22-t.x12*t.x21)*d - 1
	m.x01 = (t.x02*t.x21 - t.x01*x22) * d
	m.x02 = (t.x01*t.x12 - t.x02*x11) * d
	m.x10 = (t.x12*t.x20 - t.x10*x22) * d
	m.d11 = (x00*x22-t.x02*t.x20)*d - 1
	m.x12 = (t.x02*t.x10 - x00*t.x12) * d
	m.x20 = (t.x10*t.x21 - x11*t.x20) * d
	m.x21 = (t.x01*t.x20 - x00*t.x21) * d
	m.d22 = (x00*x11-t.x01*t.x10)*d - 1
	// Translation part is -inv(A)*b.
	o := m.Direction(t.Origin())
	m.x03, m.x13, m.x23 = -o.X, -o.Y, -o.Z
	return m
}

// Box returns the axis aligned box enclosing the transformed
// vertices of b.
func (t Transform) Box(b Box) Box {
	v := b.Vertices()
	for i := range v {
		v[i] = t.Transform(v[i])
	}
	return Box{Min: v.Min(), Max: v.Max()}
}

// EqualWithin tests the equality of the Transforms to within a tolerance.
func (t Transform) EqualWithin(b Transform, tol float64) bool {
	ta, tb := t.Array(), b.Array()
	for i := range ta {
		if math.Abs(ta[i]-tb[i]) > tol {
			return false
		}
	}
	return true
}

// Array returns the Transform's 3x4 matrix in row major order.
func (t Transform) Array() [12]float64 {
	return [12]float64{
		t.d00 + 1, t.x01, t.x02, t.x03,
		t.x10, t.d11 + 1, t.x12, t.x13,
		t.x20, t.x21, t.d22 + 1, t.x23,
	}
}
