package sdf

import (
	"math"
	"strconv"

	"github.com/soypat/candycane/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// 3D signed distance utility functions.

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate takes a point in 3D space as input and returns
	// the minimum distance of the SDF3 to the point. The distance
	// is negative if the point is contained within the SDF3.
	// Implementations may return a lower bound of the distance
	// for points outside the SDF3 but never an overestimate.
	Evaluate(p r3.Vec) float64
	// Bounds returns the bounding box that completely contains
	// the SDF3.
	Bounds() r3.Box
}

// Transform SDF3 (rotation, translation, reflection - distance preserving)

// transform3 is an SDF3 transformed with an affine transformation.
type transform3 struct {
	sdf     SDF3
	matrix  d3.Transform
	inverse d3.Transform
	bb      r3.Box
}

// Transform3D applies a transformation to an SDF3. Distances are only
// preserved by rigid transformations and reflections.
func Transform3D(sdf SDF3, matrix d3.Transform) SDF3 {
	if sdf == nil {
		panic("nil SDF3 argument")
	}
	if isEmpty(sdf) {
		return sdf
	}
	if t, ok := sdf.(*transform3); ok {
		// Collapse nested transforms into a single matrix.
		return Transform3D(t.sdf, matrix.Mul(t.matrix))
	}
	return &transform3{
		sdf:     sdf,
		matrix:  matrix,
		inverse: matrix.Inv(),
		bb:      r3.Box(matrix.Box(d3.Box(sdf.Bounds()))),
	}
}

// Evaluate returns the minimum distance to a transformed SDF3.
func (s *transform3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(s.inverse.Transform(p))
}

// Bounds returns the bounding box of a transformed SDF3.
func (s *transform3) Bounds() r3.Box {
	return s.bb
}

// scaleUniform3 is an SDF3 scaled by the same factor along every axis.
type scaleUniform3 struct {
	sdf  SDF3
	k    float64
	invK float64
	bb   r3.Box
}

// ScaleUniform3D scales an SDF3 by k about the origin. Distances are scaled
// along with the solid. ScaleUniform3D panics if k is not positive.
func ScaleUniform3D(sdf SDF3, k float64) SDF3 {
	if sdf == nil {
		panic("nil SDF3 argument")
	}
	if !(k > 0) || math.IsInf(k, 0) {
		panic("invalid scale factor " + strconv.FormatFloat(k, 'g', -1, 64))
	}
	if isEmpty(sdf) {
		return sdf
	}
	bb := sdf.Bounds()
	return &scaleUniform3{
		sdf:  sdf,
		k:    k,
		invK: 1 / k,
		bb:   r3.Box{Min: r3.Scale(k, bb.Min), Max: r3.Scale(k, bb.Max)},
	}
}

// Evaluate returns the minimum distance to a uniformly scaled SDF3.
func (s *scaleUniform3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(r3.Scale(s.invK, p)) * s.k
}

// Bounds returns the bounding box of a uniformly scaled SDF3.
func (s *scaleUniform3) Bounds() r3.Box {
	return s.bb
}

// unionFanout is the maximum amount of children of a single union node.
const unionFanout = 8

// union3 is a union of SDF3s.
type union3 struct {
	sdf []SDF3
	bbs []d3.Box
	bb  r3.Box
}

// Union3D returns the union of multiple SDF3 objects.
// Union3D will panic if an argument SDF3 is nil.
// Empty arguments are ignored.
//
// Children are grouped in argument order into a tree of unions so
// that spatially coherent arguments, such as the segments of a sweep,
// are evaluated without visiting every child.
func Union3D(sdf ...SDF3) SDF3 {
	objects := make([]SDF3, 0, len(sdf))
	for i, x := range sdf {
		if x == nil {
			panic("nil sdf argument (" + strconv.Itoa(i) + ") to Union3D")
		}
		if !isEmpty(x) {
			objects = append(objects, x)
		}
	}
	switch len(objects) {
	case 0:
		return Empty3D()
	case 1:
		return objects[0]
	}
	for len(objects) > unionFanout {
		var nodes []SDF3
		for i := 0; i < len(objects); i += unionFanout {
			end := i + unionFanout
			if end > len(objects) {
				end = len(objects)
			}
			if end-i == 1 {
				nodes = append(nodes, objects[i])
				continue
			}
			nodes = append(nodes, newUnion3(objects[i:end]))
		}
		objects = nodes
	}
	return newUnion3(objects)
}

func newUnion3(objects []SDF3) *union3 {
	s := union3{
		sdf: objects,
		bbs: make([]d3.Box, len(objects)),
	}
	bb := d3.Box(objects[0].Bounds())
	for i, x := range objects {
		s.bbs[i] = d3.Box(x.Bounds())
		bb = bb.Extend(s.bbs[i])
	}
	s.bb = r3.Box(bb)
	return &s
}

// Evaluate returns the minimum distance to an SDF3 union.
func (s *union3) Evaluate(p r3.Vec) float64 {
	d := math.MaxFloat64
	for i, x := range s.sdf {
		// A child can't be closer than its bounding box. Children whose
		// box contains p may still be deeper inside.
		if bd := s.bbs[i].Dist(p); bd > 0 && bd >= d {
			continue
		}
		d = math.Min(d, x.Evaluate(p))
	}
	return d
}

// Bounds returns the bounding box of an SDF3 union.
func (s *union3) Bounds() r3.Box {
	return s.bb
}

// diff3 is the difference of two SDF3s, s0 - s1.
type diff3 struct {
	s0 SDF3
	s1 SDF3
	bb r3.Box
}

// Difference3D returns the difference of two SDF3s, s0 - s1.
// Difference3D will panic if one any of the arguments is nil.
func Difference3D(s0, s1 SDF3) SDF3 {
	if s1 == nil || s0 == nil {
		panic("nil argument to Difference3D")
	}
	if isEmpty(s0) || isEmpty(s1) {
		return s0
	}
	return &diff3{
		s0: s0,
		s1: s1,
		bb: s0.Bounds(),
	}
}

// Evaluate returns the minimum distance to the SDF3 difference.
func (s *diff3) Evaluate(p r3.Vec) float64 {
	return math.Max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// Bounds returns the bounding box of the SDF3 difference.
func (s *diff3) Bounds() r3.Box {
	return s.bb
}

// intersection3 is the intersection of SDF3s.
type intersection3 struct {
	sdf []SDF3
	bb  r3.Box
}

// Intersect3D returns the intersection of SDF3s. The bounding box
// of the result is the intersection of the argument bounding boxes.
// Intersect3D will panic if any of the arguments are nil.
func Intersect3D(sdf ...SDF3) SDF3 {
	if len(sdf) == 0 {
		panic("no arguments to Intersect3D")
	}
	for i, x := range sdf {
		if x == nil {
			panic("nil sdf argument (" + strconv.Itoa(i) + ") to Intersect3D")
		}
		if isEmpty(x) {
			return Empty3D()
		}
	}
	if len(sdf) == 1 {
		return sdf[0]
	}
	bb := d3.Box(sdf[0].Bounds())
	for _, x := range sdf[1:] {
		bb = bb.Intersect(d3.Box(x.Bounds()))
	}
	if bb.Empty() {
		return Empty3D()
	}
	return &intersection3{
		sdf: sdf,
		bb:  r3.Box(bb),
	}
}

// Evaluate returns the minimum distance to the SDF3 intersection.
func (s *intersection3) Evaluate(p r3.Vec) float64 {
	d := -math.MaxFloat64
	for _, x := range s.sdf {
		d = math.Max(d, x.Evaluate(p))
	}
	return d
}

// Bounds returns the bounding box of an SDF3 intersection.
func (s *intersection3) Bounds() r3.Box {
	return s.bb
}

// Empty3D returns the SDF3 which contains no points.
func Empty3D() SDF3 {
	return empty3{}
}

// IsEmpty reports whether s is an empty SDF3, such as the result
// of intersecting two disjoint objects.
func IsEmpty(s SDF3) bool {
	return isEmpty(s)
}

func isEmpty(s SDF3) bool {
	_, ok := s.(empty3)
	return ok
}

type empty3 struct{}

var _ SDF3 = empty3{}

func (e empty3) Evaluate(r3.Vec) float64 {
	return math.MaxFloat64
}

func (e empty3) Bounds() r3.Box {
	return r3.Box{}
}
