package candycane

import (
	"context"
	"log/slog"

	"github.com/soypat/candycane/internal/d3"
	"github.com/soypat/candycane/sdf"
	"github.com/soypat/candycane/voxel"
)

// CapPlacement selects how the end cap of the curved part is positioned.
type CapPlacement int

const (
	// CapAnalytic places the cap on the exact end face of the bend with a
	// spin derived from the stripe pitch.
	CapAnalytic CapPlacement = iota
	// CapEmpirical places the cap with the hand tuned angle formula of the
	// first printed canes, including its +2 degree and 182 degree corrections.
	CapEmpirical
)

func (c CapPlacement) String() (str string) {
	switch c {
	case CapAnalytic:
		str = "analytic"
	case CapEmpirical:
		str = "empirical"
	default:
		str = "unknown"
	}
	return str
}

// Config holds the resolution knobs shared by every builder. The zero value
// is not valid, start from DefaultConfig.
type Config struct {
	// StepInc is the spiral sweep increment in half turns. Each increment
	// produces one hull segment so halving it doubles the segment count.
	StepInc float64
	// CurvedFacets is the amount of straight pieces approximating the bend.
	CurvedFacets int
	// Resolution is the amount of cells along the longest side of a solid
	// when it is probed or meshed.
	Resolution int
	// CapPlacement selects the end cap placement of the curved part.
	CapPlacement CapPlacement
	// Colors are the symbolic color tags of the first and second cane half.
	Colors [2]string
	// Logger receives debug output of the builders. nil discards it.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration of the classic red and white cane.
func DefaultConfig() Config {
	return Config{
		StepInc:      0.01,
		CurvedFacets: 50,
		Resolution:   200,
		CapPlacement: CapAnalytic,
		Colors:       [2]string{"red", "white"},
	}
}

// Validate checks the configuration. The returned error wraps
// ErrInvalidParameter.
func (c Config) Validate() error {
	if err := checkFinite([]string{"step_inc"}, c.StepInc); err != nil {
		return err
	}
	switch {
	case c.StepInc <= 0 || c.StepInc > 1:
		return paramErr("step_inc", c.StepInc, "must be in (0, 1]")
	case c.CurvedFacets < 1:
		return paramErr("curved_facets", float64(c.CurvedFacets), "must be at least 1")
	case c.CurvedFacets > MaxSegments:
		return paramErr("curved_facets", float64(c.CurvedFacets), "must not exceed MaxSegments")
	case c.Resolution < 2:
		return paramErr("resolution", float64(c.Resolution), "must be at least 2")
	case c.CapPlacement != CapAnalytic && c.CapPlacement != CapEmpirical:
		return paramErr("cap_placement", float64(c.CapPlacement), "unknown placement")
	case c.Colors[0] == "" || c.Colors[1] == "":
		return paramErr("colors", 0, "color tags must not be empty")
	case c.Colors[0] == c.Colors[1]:
		return paramErr("colors", 0, "halves must have distinct colors")
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// ProbeCell returns the cell size that splits the longest side of the
// bounds of s into Resolution cells.
func (c Config) ProbeCell(s sdf.SDF3) float64 {
	return d3.Max(d3.Box(s.Bounds()).Size()) / float64(c.Resolution)
}

// Probe samples s on a grid with ProbeCell sized cells.
func (c Config) Probe(ctx context.Context, s sdf.SDF3) (*voxel.Grid, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cell := c.ProbeCell(s)
	if cell <= 0 {
		// Empty or flat solid, any positive cell will do.
		cell = 1
	}
	c.logger().Debug("probing solid", "cell", cell, "resolution", c.Resolution)
	return voxel.Sample(ctx, s, cell)
}
