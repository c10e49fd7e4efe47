package candycane

import (
	"math"

	"github.com/soypat/candycane/form3"
	"github.com/soypat/candycane/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// sectionDepth is the depth of the swept cross-section. Consecutive hull
// segments share a section so they overlap by this much.
const sectionDepth = 0.01

// MaxSegments is the largest amount of hull segments a single spiral or bend
// may be built from.
const MaxSegments = 1 << 20

// SpiralParams defines a single color spiral around the Z axis.
type SpiralParams struct {
	Phase       float64 // starting angle of the stripe in degrees
	Length      float64 // height of the spiral, it spans z in [0, Length]
	OuterRadius float64
	InnerRadius float64 // radius of the hollow core, 0 for a filled spiral
	ColorHeight float64 // height of a stripe, the stripe turns 180 degrees over it
}

// Validate checks the spiral parameters. The returned error wraps
// ErrInvalidParameter.
func (p SpiralParams) Validate() error {
	err := checkFinite([]string{"phase", "length", "outer_radius", "inner_radius", "color_height"},
		p.Phase, p.Length, p.OuterRadius, p.InnerRadius, p.ColorHeight)
	if err != nil {
		return err
	}
	switch {
	case p.Length < 0:
		return paramErr("length", p.Length, "must not be negative")
	case p.OuterRadius <= 0:
		return paramErr("outer_radius", p.OuterRadius, "must be positive")
	case p.InnerRadius < 0:
		return paramErr("inner_radius", p.InnerRadius, "must not be negative")
	case p.InnerRadius >= p.OuterRadius:
		return paramErr("inner_radius", p.InnerRadius, "must be less than outer_radius")
	case p.ColorHeight <= 0:
		return paramErr("color_height", p.ColorHeight, "must be positive")
	}
	return nil
}

// HalfTurns returns the amount of half turns swept before trimming. One half
// turn more than the length requires is swept so both trimmed ends are fully
// colored.
func (p SpiralParams) HalfTurns() float64 {
	return p.Length/p.ColorHeight + 1
}

// SpiralSegments returns the amount of hull segments Spiral produces.
func SpiralSegments(cfg Config, p SpiralParams) int {
	if p.Length <= 0 || p.ColorHeight <= 0 || cfg.StepInc <= 0 {
		return 0
	}
	// Guard against 1.0000000001 half turns rounding up to an extra step.
	return int(math.Ceil(p.HalfTurns()/cfg.StepInc - 1e-9))
}

// Spiral returns a single color stripe swept along a helix around the Z axis.
// The stripe is a ribbon one ColorHeight tall that turns 180 degrees for every
// ColorHeight climbed, so a second spiral with Phase+180 fills its gaps.
//
// The helix is approximated by sweeping a thin radial cross-section in StepInc
// increments and joining consecutive sections with their convex hull. The
// result is trimmed flat to span z in [0, Length]. A Length of zero yields
// the empty solid.
func Spiral(cfg Config, p SpiralParams) (sdf.SDF3, error) {
	return construct{cfg: cfg}.spiral(p)
}

func (c construct) spiral(p SpiralParams) (sdf.SDF3, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Length == 0 {
		return sdf.Empty3D(), nil
	}
	if p.HalfTurns()/c.cfg.StepInc > MaxSegments {
		return nil, paramErr("length", p.Length, "needs more than MaxSegments sweep steps at this step_inc")
	}
	if s, ok := c.cache.lookup(p); ok {
		return s, nil
	}
	n := SpiralSegments(c.cfg, p)
	segments := make([]sdf.SDF3, n)
	prev := spiralSection(p, 0)
	for i := 1; i <= n; i++ {
		next := spiralSection(p, float64(i)*c.cfg.StepInc)
		segments[i-1] = sdf.Hull3D(append(prev[:], next[:]...)...)
		prev = next
	}
	// Lead in half a turn below the trimmed solid.
	ribbon := sdf.Transform3D(sdf.Union3D(segments...), sdf.Translate3D(r3.Vec{Z: -p.ColorHeight}))

	// The trim also shaves the section corners poking past OuterRadius.
	trim, err := form3.Cylinder(p.Length, p.OuterRadius, 0)
	if err != nil {
		return nil, err
	}
	trim = sdf.Transform3D(trim, sdf.Translate3D(r3.Vec{Z: p.Length / 2}))
	s := sdf.Intersect3D(ribbon, trim)
	c.cfg.logger().Debug("spiral built", "phase", p.Phase, "length", p.Length,
		"half_turns", p.HalfTurns(), "segments", n)
	c.cache.store(p, s)
	return s, nil
}

// spiralSection returns the corners of the cross-section at sweep parameter t
// measured in half turns. The section spans radially from the inner to the
// outer radius, is sectionDepth deep and ColorHeight tall.
func spiralSection(p SpiralParams, t float64) [8]r3.Vec {
	x0 := p.InnerRadius
	if x0 == 0 {
		// Cross the axis so it is interior to the filled spiral.
		x0 = -sectionDepth / 2
	}
	z0 := p.ColorHeight * t
	rot := sdf.RotateZ(sdf.DtoR(p.Phase + 180*t))
	var pts [8]r3.Vec
	i := 0
	for _, x := range [2]float64{x0, p.OuterRadius} {
		for _, y := range [2]float64{-sectionDepth / 2, sectionDepth / 2} {
			for _, z := range [2]float64{z0, z0 + p.ColorHeight} {
				pts[i] = rot.Transform(r3.Vec{X: x, Y: y, Z: z})
				i++
			}
		}
	}
	return pts
}
