// Package matter compensates solids for the dimensional change of the
// material they are 3D printed in.
package matter

import (
	"fmt"

	"github.com/soypat/candycane/sdf"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
)

// ViscousMaterial is a material deposited molten that contracts as it cools.
type ViscousMaterial struct {
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage of internal
	// dimensions, in millimetres.
	pullShrink float64
}

// NewViscousMaterial returns a material with the given fractional thermal
// shrinkage and viscoelastic pull of internal dimensions in millimetres.
func NewViscousMaterial(shrink, pullShrink float64) (ViscousMaterial, error) {
	if !(shrink >= 0 && shrink < 1) {
		return ViscousMaterial{}, fmt.Errorf("shrink must be in [0, 1), got %v", shrink)
	}
	if !(pullShrink >= 0) {
		return ViscousMaterial{}, fmt.Errorf("pull shrink must not be negative, got %v", pullShrink)
	}
	return ViscousMaterial{shrink: shrink, pullShrink: pullShrink}, nil
}

// Shrink returns the fractional thermal shrinkage of the material.
func (m ViscousMaterial) Shrink() float64 { return m.shrink }

// Scale enlarges s about the origin so it cools down to its modelled size.
func (m ViscousMaterial) Scale(s sdf.SDF3) sdf.SDF3 {
	return sdf.ScaleUniform3D(s, 1/(1-m.shrink))
}

// InternalDimScale returns the dimension to model so an internal feature
// such as a bore prints at real.
func (m ViscousMaterial) InternalDimScale(real float64) float64 {
	if real <= 0 {
		panic("InternalDimScale only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + m.pullShrink
}
