package linkage

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for linkage construction and simulation.
var (
	// ErrConstruction indicates a bar was built with too few joints or a
	// mismatched segment-length count.
	ErrConstruction = errors.New("linkage: invalid bar construction")

	// ErrReference indicates a bar or driver references a joint that is not
	// in the linkage's joint set.
	ErrReference = errors.New("linkage: reference to joint outside linkage")

	// ErrImmutableJoint indicates an attempt to move a fixed joint through
	// the normal mutation path.
	ErrImmutableJoint = errors.New("linkage: location of a fixed joint cannot be changed")

	// ErrNotFixed indicates ResetFixedLocation was called on a free joint.
	ErrNotFixed = errors.New("linkage: joint is not fixed")

	// ErrMissingChooser indicates a two-candidate location assignment on a
	// joint with no chooser configured.
	ErrMissingChooser = errors.New("linkage: joint has no chooser to disambiguate locations")

	// ErrNotOnBar indicates a joint query against a bar that does not
	// contain the joint.
	ErrNotOnBar = errors.New("linkage: joint is not on this bar")

	// ErrTimeRange indicates a simulation time outside [0, 1].
	ErrTimeRange = errors.New("linkage: simulation time must be between 0 and 1")
)

// UnsolvableError reports joints whose positions cannot be determined, either
// because pipeline compilation stalled with them unsolved, or because a
// geometric step found no real solution at run time.
type UnsolvableError struct {
	Joints []string
	Bars   []string // the bars involved, when a geometric step failed
	Err    error    // underlying cause, if any
}

func (e *UnsolvableError) Error() string {
	if len(e.Bars) > 0 {
		return fmt.Sprintf("linkage: no physically possible position for joint %s from bars %s: %v",
			strings.Join(e.Joints, ", "), strings.Join(e.Bars, " and "), e.Err)
	}
	return fmt.Sprintf("linkage: joints cannot be solved (ambiguous or unconnected): %s",
		strings.Join(e.Joints, ", "))
}

func (e *UnsolvableError) Unwrap() error {
	return e.Err
}

// InfeasibleError reports a rigid-distance constraint that the solved joint
// positions fail to satisfy within the validity margin.
type InfeasibleError struct {
	Bar    string
	JointA string
	JointB string
	Want   float64
	Got    float64
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("linkage: distance constraint of %g units on bar %s between joints %s and %s cannot be satisfied (got %g)",
		e.Want, e.Bar, e.JointA, e.JointB, e.Got)
}
