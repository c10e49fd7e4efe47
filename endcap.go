package candycane

import (
	"math"

	"github.com/soypat/candycane/form3"
	"github.com/soypat/candycane/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// capKey identifies an end cap for memoization.
type capKey struct {
	phase, outer, inner, colorHeight float64
}

// EndCap returns a hemispherical cap below the z=0 plane that closes a spiral
// built with the same phase and radii. The cap is the lower half of a sphere
// of outerRadius intersected with a spiral grown downwards, so its stripes
// continue the helix of a shaft standing on it. A cone shaped void with its
// base on the z=0 face and its apex innerRadius deep hollows the cap so it
// prints dome down without supports. innerRadius of zero omits the void.
//
// For a shaft with phase 0 or 180 the cap matches as is. Other phases need
// the cap rotated about Z by BottomCapSpin.
func EndCap(cfg Config, phase, outerRadius, innerRadius, colorHeight float64) (sdf.SDF3, error) {
	return construct{cfg: cfg}.endCap(phase, outerRadius, innerRadius, colorHeight)
}

func (c construct) endCap(phase, outerRadius, innerRadius, colorHeight float64) (sdf.SDF3, error) {
	key := capKey{phase: phase, outer: outerRadius, inner: innerRadius, colorHeight: colorHeight}
	if s, ok := c.cache.lookup(key); ok {
		return s, nil
	}
	// Validate the caller's inner radius, the cap spiral itself is filled.
	err := SpiralParams{
		Phase:       phase,
		Length:      outerRadius,
		OuterRadius: outerRadius,
		InnerRadius: innerRadius,
		ColorHeight: colorHeight,
	}.Validate()
	if err != nil {
		return nil, err
	}
	spiral, err := c.spiral(SpiralParams{
		Phase:       phase,
		Length:      outerRadius,
		OuterRadius: outerRadius,
		ColorHeight: colorHeight,
	})
	if err != nil {
		return nil, err
	}
	// Mirroring about both X and Z flips the spiral to grow downwards and
	// keeps its handedness.
	flip := sdf.Mirror3D(r3.Vec{X: 1}).Mul(sdf.Mirror3D(r3.Vec{Z: 1}))
	ball, err := form3.Sphere(outerRadius)
	if err != nil {
		return nil, err
	}
	s := sdf.Intersect3D(ball, sdf.Transform3D(spiral, flip))
	if innerRadius > 0 {
		// Centered cone twice as tall as the void so the apex lands at
		// z=-innerRadius and the base radius innerRadius at z=0.
		void, err := form3.Cone(2*innerRadius, 0, 2*innerRadius, 0)
		if err != nil {
			return nil, err
		}
		s = sdf.Difference3D(s, void)
	}
	c.cfg.logger().Debug("end cap built", "phase", phase, "outer_radius", outerRadius, "inner_radius", innerRadius)
	c.cache.store(key, s)
	return s, nil
}

// BottomCapSpin returns the rotation about Z in degrees that matches an
// EndCap built with phase to the z=0 face of a spiral with the same phase.
func BottomCapSpin(phase float64) float64 {
	return normDegrees(2 * phase)
}

// TopCapSpin returns the rotation about Z in degrees that matches an EndCap,
// flipped dome up and placed on the z=length face of a spiral of the same
// phase, to that spiral's stripes. The result does not depend on phase.
func TopCapSpin(length, colorHeight float64) float64 {
	return normDegrees(180 - 180*length/colorHeight)
}

// normDegrees returns a in [0, 360).
func normDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
