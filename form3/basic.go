package form3

import (
	"fmt"
	"runtime/debug"

	"github.com/soypat/candycane/form3/must3"
	"github.com/soypat/candycane/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// Box return an SDF3 for a 3d box centered at the origin
// (rounded corners with round > 0).
func Box(size r3.Vec, round float64) (s sdf.SDF3, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Box(size, round), err
}

// Sphere return an SDF3 for a sphere centered at the origin.
func Sphere(radius float64) (s sdf.SDF3, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Sphere(radius), err
}

// Cylinder return an SDF3 for a cylinder along the Z axis centered at
// the origin (rounded edges with round > 0).
func Cylinder(height, radius, round float64) (s sdf.SDF3, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Cylinder(height, radius, round), err
}

// Cone returns the SDF3 for a truncated cone along the Z axis centered at
// the origin (round > 0 gives rounded edges). r0 is the bottom radius and
// r1 the top radius.
func Cone(height, r0, r1, round float64) (s sdf.SDF3, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Cone(height, r0, r1, round), err
}
