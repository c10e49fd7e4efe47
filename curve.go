package candycane

import (
	"math"

	"github.com/soypat/candycane/internal/d3"
	"github.com/soypat/candycane/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// RadAngle is the angle in radians swept by the hook of the cane. It was
// picked by eye to match the classic candy cane silhouette.
const RadAngle = 4.2

// EmpiricalCapSpin is the hand tuned rotation about the cap axis in degrees
// used by CapEmpirical. It is 2 degrees past the exact spin of the default
// cane dimensions.
const EmpiricalCapSpin = 182.

// CurveParams defines the hook of a cane half.
type CurveParams struct {
	Phase       float64 // stripe phase at the start of the hook in degrees
	CurveRadius float64 // radius of the outer side of the hook
	OuterRadius float64
	InnerRadius float64
	ColorHeight float64
}

// Validate checks the curve parameters. The returned error wraps
// ErrInvalidParameter.
func (p CurveParams) Validate() error {
	err := checkFinite([]string{"curve_radius"}, p.CurveRadius)
	if err != nil {
		return err
	}
	err = SpiralParams{
		Phase:       p.Phase,
		OuterRadius: p.OuterRadius,
		InnerRadius: p.InnerRadius,
		ColorHeight: p.ColorHeight,
	}.Validate()
	if err != nil {
		return err
	}
	// The inner side of the hook would fold through the bend axis.
	if p.CurveRadius <= 2*p.OuterRadius {
		return paramErr("curve_radius", p.CurveRadius, "must be greater than twice outer_radius")
	}
	return nil
}

func (p CurveParams) spiralParams() SpiralParams {
	return SpiralParams{
		Phase:       p.Phase,
		Length:      p.Geometry().ArcLength,
		OuterRadius: p.OuterRadius,
		InnerRadius: p.InnerRadius,
		ColorHeight: p.ColorHeight,
	}
}

// Geometry returns the derived dimensions of the hook.
func (p CurveParams) Geometry() CurveGeometry {
	return CurveGeometry{
		CurveRadius:    p.CurveRadius,
		OuterRadius:    p.OuterRadius,
		ColorHeight:    p.ColorHeight,
		RadAngle:       RadAngle,
		ArcLength:      RadAngle * p.CurveRadius,
		AdjustedRadius: p.CurveRadius - p.OuterRadius,
	}
}

// CurveGeometry holds the dimensions derived from CurveParams. The hook
// starts at the origin heading +Z and curls towards -Y around an axis
// parallel to X through (y=-AdjustedRadius, z=0).
type CurveGeometry struct {
	CurveRadius float64
	OuterRadius float64
	ColorHeight float64
	RadAngle    float64 // swept angle in radians
	// ArcLength is the length of straight spiral wrapped around the bend,
	// measured on the outer side of the hook.
	ArcLength float64
	// AdjustedRadius is the radius of the hook's center line.
	AdjustedRadius float64
}

// EmpiricalAngleCovered returns the cap angle in degrees of the hand tuned
// placement. It includes a +2 degree correction found by trial that closed
// the seam between the last bend facet and the cap at 50 facets.
func (g CurveGeometry) EmpiricalAngleCovered() float64 {
	return 360 + 90 - sdf.RtoD(g.RadAngle) + 2
}

// EmpiricalCapOffset returns the y and z position of the hand tuned cap.
func (g CurveGeometry) EmpiricalCapOffset() (y, z float64) {
	sin, cos := math.Sincos(sdf.DtoR(g.EmpiricalAngleCovered()))
	// The formula was written for a bend centered at (y=-R, z=r), the hook
	// here is centered at (y=r-R, z=0).
	y = g.AdjustedRadius*sin - g.CurveRadius + g.OuterRadius
	z = g.AdjustedRadius * cos
	return y, z
}

// EmpiricalCapFrame returns the placement of the end cap used by CapEmpirical.
func (g CurveGeometry) EmpiricalCapFrame() d3.Transform {
	y, z := g.EmpiricalCapOffset()
	tilt := sdf.RotateX(sdf.DtoR(270 - g.EmpiricalAngleCovered()))
	spin := sdf.RotateZ(sdf.DtoR(EmpiricalCapSpin))
	return sdf.Translate3D(r3.Vec{Y: y, Z: z}).Mul(tilt).Mul(spin)
}

// AnalyticCapFrame returns the placement of the end cap used by CapAnalytic.
// The cap is flipped dome first onto the end face of the bent spiral and spun
// so its stripes continue those of the hook.
func (g CurveGeometry) AnalyticCapFrame() d3.Transform {
	return g.capFrame(sdf.ArcFrame(g.CurveRadius, g.RadAngle))
}

// capFrame composes the end frame of a bend with the cap flip and spin.
func (g CurveGeometry) capFrame(end d3.Transform) d3.Transform {
	spin := sdf.RotateZ(sdf.DtoR(TopCapSpin(g.ArcLength, g.ColorHeight)))
	onEnd := sdf.Translate3D(r3.Vec{Z: g.ArcLength}).Mul(sdf.RotateX(math.Pi)).Mul(spin)
	return g.unbend().Mul(end).Mul(g.toBend()).Mul(onEnd)
}

// toBend maps spiral coordinates into the bend box: the spiral axis runs
// along +Y at x=z=OuterRadius.
func (g CurveGeometry) toBend() d3.Transform {
	r := g.OuterRadius
	return sdf.Translate3D(r3.Vec{X: r, Z: r}).Mul(sdf.RotateX(-math.Pi / 2))
}

// unbend maps bend coordinates back so the hook starts on the Z axis.
func (g CurveGeometry) unbend() d3.Transform {
	r := g.OuterRadius
	return sdf.Translate3D(r3.Vec{X: -r, Y: r}).Mul(sdf.RotateX(math.Pi / 2))
}

// CurvedPart returns the hook of a cane half. A straight spiral ArcLength
// long is wrapped around a bend of CurveRadius approximated by
// cfg.CurvedFacets pieces. The hook starts at the origin heading +Z, tangent
// to a shaft standing on the z=0 plane, curls towards -Y and ends in a cap
// placed according to cfg.CapPlacement.
func CurvedPart(cfg Config, p CurveParams) (sdf.SDF3, error) {
	return construct{cfg: cfg}.curvedPart(p)
}

func (c construct) curvedPart(p CurveParams) (sdf.SDF3, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	key := struct {
		CurveParams
		facets    int
		placement CapPlacement
	}{p, c.cfg.CurvedFacets, c.cfg.CapPlacement}
	if s, ok := c.cache.lookup(key); ok {
		return s, nil
	}
	g := p.Geometry()
	straight, err := c.spiral(p.spiralParams())
	if err != nil {
		return nil, err
	}
	r := p.OuterRadius
	bend := sdf.Bend3D(sdf.Transform3D(straight, g.toBend()), r3.Vec{X: 2 * r, Y: g.ArcLength, Z: 2 * r},
		p.CurveRadius, c.cfg.CurvedFacets)
	hook := sdf.Transform3D(bend, g.unbend())

	var frame d3.Transform
	switch c.cfg.CapPlacement {
	case CapAnalytic:
		frame = g.capFrame(bend.EndFrame())
	case CapEmpirical:
		frame = g.EmpiricalCapFrame()
	}
	endCap, err := c.endCap(p.Phase, p.OuterRadius, p.InnerRadius, p.ColorHeight)
	if err != nil {
		return nil, err
	}
	c.cfg.logger().Debug("curved part built", "phase", p.Phase, "arc_length", g.ArcLength,
		"facets", bend.Facets(), "cap_placement", c.cfg.CapPlacement.String(), "cap_position", frame.Origin())
	s := sdf.Union3D(hook, sdf.Transform3D(endCap, frame))
	c.cache.store(key, s)
	return s, nil
}
