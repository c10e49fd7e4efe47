package candycane

import (
	"strconv"

	"github.com/soypat/candycane/helpers/matter"
	"github.com/soypat/candycane/sdf"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// CaneParams defines a candy cane.
type CaneParams struct {
	Phase          float64 // stripe phase of the first half in degrees
	OuterRadius    float64
	InnerRadius    float64
	ColorHeight    float64
	StraightLength float64 // length of the straight shaft
	CurveRadius    float64 // outer radius of the hook
}

// DefaultCaneParams returns the dimensions of the classic cane in millimetres.
func DefaultCaneParams() CaneParams {
	return CaneParams{
		Phase:          0,
		OuterRadius:    15,
		InnerRadius:    7.5,
		ColorHeight:    18,
		StraightLength: 210,
		CurveRadius:    60,
	}
}

// Validate checks the cane parameters. The returned error wraps
// ErrInvalidParameter.
func (p CaneParams) Validate() error {
	err := checkFinite([]string{"straight_part_length"}, p.StraightLength)
	if err != nil {
		return err
	}
	if p.StraightLength < 0 {
		return paramErr("straight_part_length", p.StraightLength, "must not be negative")
	}
	if err := p.shaftParams().Validate(); err != nil {
		return err
	}
	return p.curveParams().Validate()
}

func (p CaneParams) shaftParams() SpiralParams {
	return SpiralParams{
		Phase:       p.Phase,
		Length:      p.StraightLength,
		OuterRadius: p.OuterRadius,
		InnerRadius: p.InnerRadius,
		ColorHeight: p.ColorHeight,
	}
}

// curveParams returns the hook continuing the shaft helix at its top.
func (p CaneParams) curveParams() CurveParams {
	return CurveParams{
		Phase:       normDegrees(p.Phase + 180*p.StraightLength/p.ColorHeight),
		CurveRadius: p.CurveRadius,
		OuterRadius: p.OuterRadius,
		InnerRadius: p.InnerRadius,
		ColorHeight: p.ColorHeight,
	}
}

// Part is a solid of a single color.
type Part struct {
	Name  string
	Color string
	Solid sdf.SDF3
}

// Model is the set of parts making up a cane.
type Model struct {
	Parts []Part
}

// Union merges all parts into a single solid.
func (m Model) Union() sdf.SDF3 {
	solids := make([]sdf.SDF3, len(m.Parts))
	for i, part := range m.Parts {
		solids[i] = part.Solid
	}
	return sdf.Union3D(solids...)
}

// Compensate returns the model with every part enlarged about the origin to
// make up for the shrinkage of the material it is printed in.
func (m Model) Compensate(mat matter.ViscousMaterial) Model {
	parts := make([]Part, len(m.Parts))
	for i, part := range m.Parts {
		part.Solid = mat.Scale(part.Solid)
		parts[i] = part
	}
	return Model{Parts: parts}
}

// HalfParts returns the positioned pieces of a cane half: the straight shaft
// spanning z in [0, StraightLength], the end cap below it and the hook
// starting at z=StraightLength. Parts carry no color.
func HalfParts(cfg Config, p CaneParams) ([]Part, error) {
	return construct{cfg: cfg}.halfParts(p)
}

func (c construct) halfParts(p CaneParams) ([]Part, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	shaft, err := c.spiral(p.shaftParams())
	if err != nil {
		return nil, err
	}
	bottom, err := c.endCap(p.Phase, p.OuterRadius, p.InnerRadius, p.ColorHeight)
	if err != nil {
		return nil, err
	}
	bottom = sdf.Transform3D(bottom, sdf.RotateZ(sdf.DtoR(BottomCapSpin(p.Phase))))
	hook, err := c.curvedPart(p.curveParams())
	if err != nil {
		return nil, err
	}
	hook = sdf.Transform3D(hook, sdf.Translate3D(r3.Vec{Z: p.StraightLength}))
	return []Part{
		{Name: "shaft", Solid: shaft},
		{Name: "bottom cap", Solid: bottom},
		{Name: "hook", Solid: hook},
	}, nil
}

// Half returns one color of the cane: the union of HalfParts.
func Half(cfg Config, p CaneParams) (sdf.SDF3, error) {
	return construct{cfg: cfg}.half(p)
}

func (c construct) half(p CaneParams) (sdf.SDF3, error) {
	if s, ok := c.cache.lookup(p); ok {
		return s, nil
	}
	parts, err := c.halfParts(p)
	if err != nil {
		return nil, err
	}
	s := Model{Parts: parts}.Union()
	c.cache.store(p, s)
	return s, nil
}

// Assemble returns the full cane: a half at p.Phase tagged cfg.Colors[0] and
// a half at p.Phase+180 tagged cfg.Colors[1] whose stripe fills the gaps of
// the first. Both halves share the same axis. The halves are built
// concurrently.
func Assemble(cfg Config, p CaneParams) (Model, error) {
	return construct{cfg: cfg}.assemble(p)
}

func (c construct) assemble(p CaneParams) (Model, error) {
	if err := c.cfg.Validate(); err != nil {
		return Model{}, err
	}
	if err := p.Validate(); err != nil {
		return Model{}, err
	}
	phases := [2]float64{p.Phase, normDegrees(p.Phase + 180)}
	parts := make([]Part, len(phases))
	var g errgroup.Group
	for i, phase := range phases {
		g.Go(func() error {
			hp := p
			hp.Phase = phase
			s, err := c.half(hp)
			if err != nil {
				return err
			}
			parts[i] = Part{
				Name:  "half " + strconv.FormatFloat(phase, 'g', -1, 64),
				Color: c.cfg.Colors[i],
				Solid: s,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Model{}, err
	}
	c.cfg.logger().Debug("cane assembled", "colors", c.cfg.Colors[:], "straight_length", p.StraightLength)
	return Model{Parts: parts}, nil
}
