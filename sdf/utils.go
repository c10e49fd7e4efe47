package sdf

import (
	"math"

	"github.com/soypat/candycane/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	pi        = math.Pi
	tau       = 2 * pi
	tolerance = 1e-9
)

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// RtoD converts radians to degrees
func RtoD(radians float64) float64 {
	return (180 / pi) * radians
}

// Clamp x between a and b, assume a <= b
func Clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// Translate3D returns a transform that translates by v.
func Translate3D(v r3.Vec) d3.Transform {
	return d3.Translation(v)
}

// RotateX returns a transform that rotates around the x-axis
// by a radians following the right hand rule.
func RotateX(a float64) d3.Transform {
	return d3.Rotation(a, r3.Vec{X: 1})
}

// RotateY returns a transform that rotates around the y-axis.
func RotateY(a float64) d3.Transform {
	return d3.Rotation(a, r3.Vec{Y: 1})
}

// RotateZ returns a transform that rotates around the z-axis.
func RotateZ(a float64) d3.Transform {
	return d3.Rotation(a, r3.Vec{Z: 1})
}

// Mirror3D returns a transform that mirrors space about the plane
// through the origin with normal n. Mirroring about the x-axis
// is Mirror3D(r3.Vec{X: 1}).
func Mirror3D(n r3.Vec) d3.Transform {
	if r3.Norm(n) < tolerance {
		panic("zero mirror normal")
	}
	return d3.Reflection(n)
}

// sdfBox3d is the distance to a box centered at the origin with half size s.
func sdfBox3d(p, s r3.Vec) float64 {
	d := r3.Sub(d3.AbsElem(p), s)
	if d.X > 0 && d.Y > 0 && d.Z > 0 {
		return r3.Norm(d)
	}
	if d.X > 0 && d.Y > 0 {
		return math.Hypot(d.X, d.Y)
	}
	if d.X > 0 && d.Z > 0 {
		return math.Hypot(d.X, d.Z)
	}
	if d.Y > 0 && d.Z > 0 {
		return math.Hypot(d.Y, d.Z)
	}
	if d.X > 0 {
		return d.X
	}
	if d.Y > 0 {
		return d.Y
	}
	if d.Z > 0 {
		return d.Z
	}
	return d3.Max(d)
}
