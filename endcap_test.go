package candycane_test

import (
	"math/rand"
	"testing"

	"github.com/soypat/candycane"
	"github.com/soypat/candycane/sdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestEndCapShape(t *testing.T) {
	cfg := fastConfig()
	const outer, ch = 15., 18.
	hollow, err := candycane.EndCap(cfg, 0, outer, 7.5, ch)
	require.NoError(t, err)
	filled, err := candycane.EndCap(cfg, 0, outer, 0, ch)
	require.NoError(t, err)

	for _, s := range []sdf.SDF3{hollow, filled} {
		bb := s.Bounds()
		assert.LessOrEqual(t, bb.Max.Z, 1e-9)
		assert.GreaterOrEqual(t, bb.Min.Z, -outer-1e-9)
		assert.GreaterOrEqual(t, bb.Min.X, -outer-1e-9)
		assert.LessOrEqual(t, bb.Max.Y, outer+1e-9)
	}

	// The axis belongs to both colors so only the void decides.
	mid := r3.Vec{Z: -3.75}
	assert.Greater(t, hollow.Evaluate(mid), 0.0)
	assert.Less(t, filled.Evaluate(mid), 0.0)
	deep := r3.Vec{Z: -11}
	assert.Less(t, hollow.Evaluate(deep), 0.0)
	assert.Less(t, filled.Evaluate(deep), 0.0)

	rng := rand.New(rand.NewSource(20))
	for i := 0; i < 300; i++ {
		// Outside the dome.
		pt := cylindrical(10*rng.Float64(), 360*rng.Float64(), -outer-0.2-rng.Float64())
		assert.Greater(t, filled.Evaluate(pt), 0.0, "below dome %v", pt)
		// Above the flat face.
		pt = cylindrical(outer*rng.Float64(), 360*rng.Float64(), 0.2+rng.Float64())
		assert.Greater(t, filled.Evaluate(pt), 0.0, "above face %v", pt)
	}
}

func TestEndCapStripesContinueShaft(t *testing.T) {
	cfg := fastConfig()
	for _, phase := range []float64{0, 90, 180, 311} {
		p := candycane.DefaultCaneParams()
		p.Phase = phase
		parts, err := candycane.HalfParts(cfg, p)
		require.NoError(t, err)
		require.Equal(t, "bottom cap", parts[1].Name)
		bottom := parts[1].Solid

		rng := rand.New(rand.NewSource(21))
		for i := 0; i < 500; i++ {
			rho := 8.5 + 3.5*rng.Float64()
			angle := 360 * rng.Float64()
			z := -0.5 - 5.5*rng.Float64()
			u := stripeCoord(phase, p.ColorHeight, angle, z)
			d := bottom.Evaluate(cylindrical(rho, angle, z))
			switch {
			case u > 0.05 && u < 0.95:
				assert.Less(t, d, 0.0, "phase %v: cap misses stripe u=%.3f angle=%.1f z=%.2f", phase, u, angle, z)
			case u > 1.05 && u < 1.95:
				assert.Greater(t, d, 0.0, "phase %v: cap fills gap u=%.3f angle=%.1f z=%.2f", phase, u, angle, z)
			}
		}
	}
}

func TestCapSpin(t *testing.T) {
	assert.Equal(t, 0., candycane.BottomCapSpin(0))
	assert.Equal(t, 0., candycane.BottomCapSpin(180))
	assert.Equal(t, 180., candycane.BottomCapSpin(90))
	assert.Equal(t, 300., candycane.BottomCapSpin(-30))
	assert.InDelta(t, 180, candycane.TopCapSpin(252, 18), 1e-9)
	assert.InDelta(t, 90, candycane.TopCapSpin(9, 18), 1e-9)
}

func TestEndCapInvalid(t *testing.T) {
	cfg := candycane.DefaultConfig()
	for _, test := range []struct {
		field                     string
		outer, inner, colorHeight float64
	}{
		{"outer_radius", 0, 0, 18},
		{"inner_radius", 15, 15, 18},
		{"color_height", 15, 7.5, -1},
	} {
		_, err := candycane.EndCap(cfg, 0, test.outer, test.inner, test.colorHeight)
		var perr *candycane.ParamError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, test.field, perr.Field)
	}
}
