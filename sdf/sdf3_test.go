package sdf_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/soypat/candycane/form3/must3"
	"github.com/soypat/candycane/sdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func randomPoint(rng *rand.Rand, scale float64) r3.Vec {
	return r3.Vec{
		X: scale * (rng.Float64() - 0.5),
		Y: scale * (rng.Float64() - 0.5),
		Z: scale * (rng.Float64() - 0.5),
	}
}

func TestUnionMatchesMinimum(t *testing.T) {
	// More children than a single union node holds.
	var spheres []sdf.SDF3
	for i := 0; i < 50; i++ {
		s := must3.Sphere(0.6)
		spheres = append(spheres, sdf.Transform3D(s, sdf.Translate3D(r3.Vec{Z: float64(i)})))
	}
	union := sdf.Union3D(spheres...)
	bb := union.Bounds()
	assert.InDelta(t, -0.6, bb.Min.Z, 1e-12)
	assert.InDelta(t, 49.6, bb.Max.Z, 1e-12)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		p := randomPoint(rng, 4)
		p.Z += 60 * rng.Float64()
		want := math.MaxFloat64
		for _, s := range spheres {
			want = math.Min(want, s.Evaluate(p))
		}
		got := union.Evaluate(p)
		if math.Signbit(got) != math.Signbit(want) {
			t.Fatalf("union sign mismatch at %v: got %v, want %v", p, got, want)
		}
		assert.InDelta(t, want, got, 1e-9)
	}
}

func TestUnionEmptyArguments(t *testing.T) {
	s := must3.Sphere(1)
	assert.True(t, sdf.IsEmpty(sdf.Union3D()))
	assert.True(t, sdf.IsEmpty(sdf.Union3D(sdf.Empty3D(), sdf.Empty3D())))
	assert.Equal(t, sdf.SDF3(s), sdf.Union3D(sdf.Empty3D(), s))
	assert.Panics(t, func() { sdf.Union3D(s, nil) })
}

func TestUnionOverlapDepth(t *testing.T) {
	a := must3.Box(r3.Vec{X: 2, Y: 2, Z: 2}, 0)
	b := sdf.Transform3D(must3.Box(r3.Vec{X: 4, Y: 2, Z: 2}, 0), sdf.Translate3D(r3.Vec{X: 1}))
	union := sdf.Union3D(a, b)
	for _, p := range []r3.Vec{{X: 1}, {X: 0.9}, {X: 0.5, Y: 0.2}, {X: 1, Z: 0.99}} {
		want := math.Min(a.Evaluate(p), b.Evaluate(p))
		assert.InDelta(t, want, union.Evaluate(p), 1e-12, "at %v", p)
	}
	// On the surface of a but deep inside b.
	assert.Less(t, union.Evaluate(r3.Vec{X: 1}), -0.5)
}

func TestIntersectBounds(t *testing.T) {
	a := must3.Box(r3.Vec{X: 4, Y: 4, Z: 4}, 0)
	b := sdf.Transform3D(must3.Sphere(2), sdf.Translate3D(r3.Vec{X: 3}))
	s := sdf.Intersect3D(a, b)
	bb := s.Bounds()
	assert.InDelta(t, 1, bb.Min.X, 1e-12)
	assert.InDelta(t, 2, bb.Max.X, 1e-12)
	assert.Less(t, s.Evaluate(r3.Vec{X: 1.5}), 0.0)
	assert.Greater(t, s.Evaluate(r3.Vec{X: 0.5}), 0.0)
	assert.Greater(t, s.Evaluate(r3.Vec{X: 2.5}), 0.0)

	far := sdf.Transform3D(must3.Sphere(1), sdf.Translate3D(r3.Vec{X: 10}))
	assert.True(t, sdf.IsEmpty(sdf.Intersect3D(a, far)))
	assert.True(t, sdf.IsEmpty(sdf.Intersect3D(a, sdf.Empty3D())))
	assert.Panics(t, func() { sdf.Intersect3D() })
}

func TestDifference(t *testing.T) {
	outer := must3.Sphere(2)
	inner := must3.Sphere(1)
	s := sdf.Difference3D(outer, inner)
	assert.Equal(t, outer.Bounds(), s.Bounds())
	assert.InDelta(t, 1, s.Evaluate(r3.Vec{}), 1e-12)
	assert.InDelta(t, -0.5, s.Evaluate(r3.Vec{Y: 1.5}), 1e-12)
	assert.Equal(t, sdf.SDF3(outer), sdf.Difference3D(outer, sdf.Empty3D()))
}

func TestTransform(t *testing.T) {
	box := must3.Box(r3.Vec{X: 1, Y: 2, Z: 3}, 0)
	m := sdf.Translate3D(r3.Vec{X: 5}).Mul(sdf.RotateZ(math.Pi / 2))
	s := sdf.Transform3D(box, m)
	bb := s.Bounds()
	assert.InDelta(t, 4, bb.Min.X, 1e-9)
	assert.InDelta(t, 6, bb.Max.X, 1e-9)
	assert.InDelta(t, -0.5, bb.Min.Y, 1e-9)

	rng := rand.New(rand.NewSource(2))
	inv := m.Inv()
	for i := 0; i < 200; i++ {
		p := randomPoint(rng, 10)
		assert.InDelta(t, box.Evaluate(inv.Transform(p)), s.Evaluate(p), 1e-9)
	}

	// Nested transforms collapse into one and give the same field.
	nested := sdf.Transform3D(sdf.Transform3D(box, sdf.RotateZ(math.Pi/2)), sdf.Translate3D(r3.Vec{X: 5}))
	for i := 0; i < 200; i++ {
		p := randomPoint(rng, 10)
		assert.InDelta(t, s.Evaluate(p), nested.Evaluate(p), 1e-9)
	}
}

func TestMirror(t *testing.T) {
	cone := must3.Cone(2, 0, 1, 0) // apex at z=-1
	s := sdf.Transform3D(cone, sdf.Mirror3D(r3.Vec{Z: 1}))
	assert.Less(t, s.Evaluate(r3.Vec{Z: -0.9}), 0.0)
	assert.Greater(t, s.Evaluate(r3.Vec{X: 0.5, Z: 0.9}), 0.0)
	assert.Panics(t, func() { sdf.Mirror3D(r3.Vec{}) })
}

func TestEmpty(t *testing.T) {
	e := sdf.Empty3D()
	require.True(t, sdf.IsEmpty(e))
	assert.Equal(t, math.MaxFloat64, e.Evaluate(r3.Vec{}))
	assert.True(t, sdf.IsEmpty(sdf.Transform3D(e, sdf.RotateX(1))))
}

func TestScaleUniform(t *testing.T) {
	s := sdf.ScaleUniform3D(must3.Sphere(2), 1.5)
	assert.InDelta(t, -3, s.Evaluate(r3.Vec{}), 1e-12)
	assert.InDelta(t, 1, s.Evaluate(r3.Vec{Y: 4}), 1e-12)
	bb := s.Bounds()
	assert.InDelta(t, 3, bb.Max.X, 1e-12)
	assert.InDelta(t, -3, bb.Min.Z, 1e-12)
	assert.True(t, sdf.IsEmpty(sdf.ScaleUniform3D(sdf.Empty3D(), 2)))
	assert.Panics(t, func() { sdf.ScaleUniform3D(s, 0) })
	assert.Panics(t, func() { sdf.ScaleUniform3D(s, math.NaN()) })
}
