package sdf

import (
	"math"

	"github.com/soypat/candycane/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Bend3 is an SDF3 lying in a box that has been wrapped around a
// cylindrical arc. It is built with Bend3D.
//
// The straight object occupies the box [0,size.X]x[0,size.Y]x[0,size.Z].
// The box is bent along +Y curling towards +Z around an axis parallel to X
// through (y=0, z=radius). Arc length is preserved on the z=0 face of the
// box, so the total swept angle is size.Y/radius.
//
// The arc is approximated by straight rigid pieces, one per facet,
// joined on mitre planes through the bend axis. Every point in space
// belongs to exactly one facet sector so pieces never leave gaps. The
// start and end faces of the bend are cut on the planes through the axis
// at angles 0 and Sweep.
type Bend3 struct {
	sdf    SDF3
	size   r3.Vec
	radius float64
	sweep  float64 // total swept angle in radians
	alpha  float64 // angle per facet
	frames []d3.Transform
	inv    []d3.Transform
	end    d3.Transform
	endInv d3.Transform
	bb     r3.Box
}

// Bend3D bends sdf around a cylindrical arc of given radius using facets
// straight pieces. sdf is intersected with the box of the given size before
// bending. Bend3D panics if the bend sweeps a full turn or more, or if the
// box is deeper than the bend radius.
func Bend3D(sdf SDF3, size r3.Vec, radius float64, facets int) *Bend3 {
	switch {
	case sdf == nil:
		panic("nil SDF3 argument")
	case d3.LTEZero(size):
		panic("bend size <= 0")
	case radius <= 0:
		panic("bend radius <= 0")
	case facets < 1:
		panic("bend facets < 1")
	case size.Z >= radius:
		panic("bend box deeper than bend radius")
	}
	sweep := size.Y / radius
	if sweep >= tau {
		panic("bend sweeps a full turn")
	}
	half := r3.Scale(0.5, size)
	clipped := Intersect3D(sdf, &box3{center: half, half: half})
	s := Bend3{
		sdf:    clipped,
		size:   size,
		radius: radius,
		sweep:  sweep,
		alpha:  sweep / float64(facets),
		frames: make([]d3.Transform, facets),
		inv:    make([]d3.Transform, facets),
	}
	for k := range s.frames {
		s.frames[k] = ArcFrame(radius, (float64(k)+0.5)*s.alpha)
		s.inv[k] = s.frames[k].Inv()
	}
	s.end = ArcFrame(radius, sweep)
	s.endInv = s.end.Inv()
	s.bb = s.bounds()
	return &s
}

// ArcFrame returns the rigid transform used by Bend3D to take straight
// coordinates onto a piece tangent to a bend of the given radius at angle
// phi. The point of the z=0 face at y=radius*phi is mapped onto the arc.
func ArcFrame(radius, phi float64) d3.Transform {
	sin, cos := math.Sincos(phi)
	r := radius
	return d3.NewTransform([12]float64{
		1, 0, 0, 0,
		0, cos, -sin, r*sin - r*phi*cos,
		0, sin, cos, r - r*cos - r*phi*sin,
	})
}

// Facets returns the amount of straight pieces that approximate the arc.
func (s *Bend3) Facets() int { return len(s.frames) }

// Sweep returns the total angle swept by the bend in radians.
func (s *Bend3) Sweep() float64 { return s.sweep }

// Frame returns the rigid transform that maps straight coordinates to
// bent coordinates within facet k.
func (s *Bend3) Frame(k int) d3.Transform {
	return s.frames[k]
}

// EndFrame returns the rigid transform tangent to the arc at the end of
// the bend. It maps the far end face of the straight box (y=size.Y) onto
// the end face of the bend.
func (s *Bend3) EndFrame() d3.Transform {
	return s.end
}

// Evaluate returns the minimum distance to the bent SDF3.
func (s *Bend3) Evaluate(p r3.Vec) float64 {
	// angle around the bend axis, zero at the start of the bend.
	phi := math.Atan2(p.Y, s.radius-p.Z)
	if phi < 0 {
		phi += tau
	}
	// Angles outside the bend belong to the closest end. Before the start
	// the straight object is untransformed so it is clipped by the start plane.
	if phi > s.sweep+0.5*(tau-s.sweep) {
		return s.sdf.Evaluate(p)
	}
	if phi >= s.sweep {
		return s.sdf.Evaluate(s.endInv.Transform(p))
	}
	k := int(phi / s.alpha)
	if k >= len(s.inv) {
		k = len(s.inv) - 1
	}
	return s.sdf.Evaluate(s.inv[k].Transform(p))
}

// Bounds returns the bounding box of the bent SDF3.
func (s *Bend3) Bounds() r3.Box {
	return s.bb
}

// bounds transforms the slab of the straight bounds handled by
// each facet and joins the results.
func (s *Bend3) bounds() r3.Box {
	child := d3.Box(s.sdf.Bounds())
	// Within its sector a piece reaches at most r*tan(alpha/2) past its
	// mid point on the z=0 face.
	reach := s.radius * math.Tan(0.5*s.alpha)
	var bb d3.Box
	first := true
	for k, m := range s.frames {
		mid := (float64(k) + 0.5) * s.alpha * s.radius
		slab := child.Intersect(d3.Box{
			Min: r3.Vec{X: child.Min.X, Y: mid - reach, Z: child.Min.Z},
			Max: r3.Vec{X: child.Max.X, Y: mid + reach, Z: child.Max.Z},
		})
		if slab.Empty() {
			continue
		}
		tb := m.Box(slab)
		if first {
			bb = tb
			first = false
		} else {
			bb = bb.Extend(tb)
		}
	}
	return r3.Box(bb)
}

// box3 is an axis aligned box used to clip objects before bending.
type box3 struct {
	center r3.Vec
	half   r3.Vec
}

func (b *box3) Evaluate(p r3.Vec) float64 {
	return sdfBox3d(r3.Sub(p, b.center), b.half)
}

func (b *box3) Bounds() r3.Box {
	return r3.Box{Min: r3.Sub(b.center, b.half), Max: r3.Add(b.center, b.half)}
}
