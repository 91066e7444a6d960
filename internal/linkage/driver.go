package linkage

import "github.com/kinemech/linksim/internal/geom"

// Driver is a motorized element that forces one joint's position as a
// function of simulated time. Concrete drivers (crank, rocker, slider) live
// in the driver package.
//
// The attachment joint must be a free joint in the owning linkage's joint
// set; the solver treats it as known from the start of every time step.
type Driver interface {
	Label() string

	// Joint returns the attachment joint this driver moves.
	Joint() *Joint

	// Speed rescales the driver's local time: the linkage evaluates
	// PointForTime at mod(t*speed, 1).
	Speed() float64

	// PointForTime returns the attachment joint's position for a
	// speed-adjusted time in [0, 1).
	PointForTime(t float64) geom.Point

	// Shift translates the driver's geometry (center, endpoints) by delta.
	Shift(delta geom.Point)

	// Clone returns an independent copy attached to the given joint.
	Clone(attach *Joint) Driver
}
