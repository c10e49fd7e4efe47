package voxel_test

import (
	"context"
	"math"
	"testing"

	"github.com/soypat/candycane/form3/must3"
	"github.com/soypat/candycane/sdf"
	"github.com/soypat/candycane/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSampleVolume(t *testing.T) {
	for _, test := range []struct {
		name string
		s    sdf.SDF3
		want float64
	}{
		{"sphere", must3.Sphere(5), 4. / 3 * math.Pi * 125},
		{"cylinder", must3.Cylinder(8, 3, 0), math.Pi * 9 * 8},
		{"rotated box", sdf.Transform3D(must3.Box(r3.Vec{X: 3, Y: 7, Z: 11}, 0), sdf.RotateX(0.4)), 3 * 7 * 11},
	} {
		t.Run(test.name, func(t *testing.T) {
			g, err := voxel.Sample(context.Background(), test.s, 0.1)
			require.NoError(t, err)
			assert.InEpsilon(t, test.want, g.Volume(), 0.01)
			assert.InEpsilon(t, test.want, g.SmoothVolume(), 0.01)
			assert.Equal(t, 1, g.Components())
		})
	}
}

func TestSmoothVolumeAligned(t *testing.T) {
	// Faces parallel to the grid land anywhere within a cell.
	g, err := voxel.Sample(context.Background(), must3.Box(r3.Vec{X: 3, Y: 7, Z: 11}, 0), 0.1)
	require.NoError(t, err)
	assert.InEpsilon(t, 3*7*11, g.SmoothVolume(), 0.005)
}

func TestComponents(t *testing.T) {
	a := must3.Sphere(1)
	b := sdf.Transform3D(must3.Sphere(1), sdf.Translate3D(r3.Vec{X: 3}))
	c := sdf.Transform3D(must3.Sphere(1), sdf.Translate3D(r3.Vec{X: 1.5}))

	g, err := voxel.Sample(context.Background(), sdf.Union3D(a, b), 0.1)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Components())

	g, err = voxel.Sample(context.Background(), sdf.Union3D(a, b, c), 0.1)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Components())

	small := sdf.Transform3D(must3.Sphere(0.5), sdf.Translate3D(r3.Vec{X: 3}))
	g, err = voxel.Sample(context.Background(), sdf.Union3D(a, small), 0.1)
	require.NoError(t, err)
	sizes := g.ComponentSizes()
	require.Len(t, sizes, 2)
	assert.Greater(t, sizes[0], 7*sizes[1])
}

func TestOccupiedBounds(t *testing.T) {
	s := sdf.Transform3D(must3.Box(r3.Vec{X: 2, Y: 4, Z: 6}, 0), sdf.Translate3D(r3.Vec{Z: 10}))
	g, err := voxel.Sample(context.Background(), s, 0.25)
	require.NoError(t, err)
	bb, ok := g.OccupiedBounds()
	require.True(t, ok)
	assert.InDelta(t, -1, bb.Min.X, 0.25)
	assert.InDelta(t, 2, bb.Max.Y, 0.25)
	assert.InDelta(t, 7, bb.Min.Z, 0.25)
	assert.InDelta(t, 13, bb.Max.Z, 0.25)
	nx, ny, nz := g.Size()
	assert.False(t, g.Inside(0, 0, 0))
	assert.False(t, g.Inside(nx, ny, nz))
	assert.True(t, g.Inside(nx/2, ny/2, nz/2))
	assert.Equal(t, 0.25, g.Cell())
}

func TestSampleEmpty(t *testing.T) {
	g, err := voxel.Sample(context.Background(), sdf.Empty3D(), 1)
	require.NoError(t, err)
	assert.Zero(t, g.Volume())
	assert.Zero(t, g.SmoothVolume())
	assert.Zero(t, g.Components())
	_, ok := g.OccupiedBounds()
	assert.False(t, ok)
}

func TestSampleErrors(t *testing.T) {
	_, err := voxel.Sample(context.Background(), must3.Sphere(1000), 0.01)
	assert.ErrorIs(t, err, voxel.ErrTooManyCells)

	_, err = voxel.Sample(context.Background(), must3.Sphere(1), 0)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = voxel.Sample(ctx, must3.Sphere(1), 0.1)
	assert.ErrorIs(t, err, context.Canceled)
}
