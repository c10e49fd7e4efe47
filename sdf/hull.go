package sdf

import (
	"math"

	"github.com/soypat/candycane/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// plane is an oriented plane with unit normal n and offset c such
// that n·p - c is the signed distance of p to the plane.
type plane struct {
	n r3.Vec
	c float64
}

// hull3 is the convex hull of a set of points, represented as
// the intersection of the half-spaces of its faces.
type hull3 struct {
	faces []plane
	bb    r3.Box
}

// Hull3D returns the convex hull of a set of points. Hull3D panics
// if there are fewer than 4 points or all points are coplanar.
//
// Inside the hull the distance is exact. Outside it is the distance
// to the farthest face plane, a lower bound of the true distance.
func Hull3D(points ...r3.Vec) SDF3 {
	if len(points) < 4 {
		panic("hull requires at least 4 points")
	}
	set := d3.Set(points)
	bb := d3.Box{Min: set.Min(), Max: set.Max()}
	scale := d3.Max(bb.Size())
	if scale < tolerance {
		panic("hull points are coincident")
	}
	faces := hullFaces(points, 1e-9*scale)
	if len(faces) < 4 {
		panic("hull points are coplanar")
	}
	return &hull3{
		faces: faces,
		bb:    r3.Box(bb),
	}
}

// hullFaces finds the supporting planes of a point set by checking every
// triplet of points. Cost is cubic in the amount of points which is fine
// for the small point sets that make up sweep segments.
func hullFaces(points []r3.Vec, eps float64) []plane {
	var faces []plane
	n := len(points)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				normal := r3.Cross(r3.Sub(points[j], points[i]), r3.Sub(points[k], points[i]))
				norm := r3.Norm(normal)
				if norm < eps*eps {
					continue // collinear triplet
				}
				normal = r3.Scale(1/norm, normal)
				c := r3.Dot(normal, points[i])
				above, below := false, false
				for _, p := range points {
					d := r3.Dot(normal, p) - c
					if d > eps {
						above = true
					} else if d < -eps {
						below = true
					}
					if above && below {
						break
					}
				}
				switch {
				case above && below:
					continue // not a supporting plane
				case above:
					// points lie on the positive side, flip to point outward.
					normal = r3.Scale(-1, normal)
					c = -c
				case !below:
					continue // all points coplanar
				}
				faces = appendFace(faces, plane{n: normal, c: c}, eps)
			}
		}
	}
	return faces
}

// appendFace appends f to faces if no equivalent plane is already present.
func appendFace(faces []plane, f plane, eps float64) []plane {
	for _, g := range faces {
		if d3.EqualWithin(f.n, g.n, 1e-9) && math.Abs(f.c-g.c) <= eps {
			return faces
		}
	}
	return append(faces, f)
}

// Evaluate returns the minimum distance to the convex hull.
func (s *hull3) Evaluate(p r3.Vec) float64 {
	d := -math.MaxFloat64
	for _, f := range s.faces {
		d = math.Max(d, r3.Dot(f.n, p)-f.c)
	}
	return d
}

// Bounds returns the bounding box of the convex hull.
func (s *hull3) Bounds() r3.Box {
	return s.bb
}
