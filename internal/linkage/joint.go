package linkage

import (
	"fmt"

	"github.com/kinemech/linksim/internal/geom"
)

// Chooser picks one of two candidate locations for a joint. Circle-circle
// intersection yields two solutions; the chooser resolves which branch the
// mechanism actually occupies.
type Chooser func(a, b geom.Point) geom.Point

// Stock choosers.
func GreaterX(a, b geom.Point) geom.Point {
	if a.X() > b.X() {
		return a
	}
	return b
}

func GreaterY(a, b geom.Point) geom.Point {
	if a.Y() > b.Y() {
		return a
	}
	return b
}

func LesserX(a, b geom.Point) geom.Point {
	if a.X() < b.X() {
		return a
	}
	return b
}

func LesserY(a, b geom.Point) geom.Point {
	if a.Y() < b.Y() {
		return a
	}
	return b
}

// Joint is one fixed or moving point where bars meet in the mechanism.
// Joints are shared by identity: bars and drivers hold pointers to the same
// Joint values that the owning Linkage does.
type Joint struct {
	label   string
	loc     geom.Point
	known   bool
	fixed   bool
	chooser Chooser
}

// NewJoint returns a free joint with an unknown location.
func NewJoint(label string) *Joint {
	return &Joint{label: label}
}

// NewFixedJoint returns a joint pinned at the given location. Its location
// can only be changed through ResetFixedLocation.
func NewFixedJoint(label string, at geom.Point) *Joint {
	return &Joint{label: label, loc: at, known: true, fixed: true}
}

func (j *Joint) Label() string    { return j.label }
func (j *Joint) Fixed() bool      { return j.fixed }
func (j *Joint) Chooser() Chooser { return j.chooser }

// SetChooser configures the disambiguation function used by ChooseLocation.
func (j *Joint) SetChooser(c Chooser) { j.chooser = c }

// Known reports whether the joint's location has been determined.
func (j *Joint) Known() bool { return j.known }

// Location returns the joint's current location. It is only meaningful when
// Known reports true.
func (j *Joint) Location() geom.Point { return j.loc }

// SetLocation assigns the joint's location unconditionally. Fixed joints
// reject the assignment with ErrImmutableJoint.
func (j *Joint) SetLocation(p geom.Point) error {
	if j.fixed {
		return fmt.Errorf("%w: %s", ErrImmutableJoint, j.label)
	}
	j.loc = p
	j.known = true
	return nil
}

// ChooseLocation assigns whichever of the two candidates the joint's chooser
// selects. Without a chooser the assignment is ambiguous and fails with
// ErrMissingChooser.
func (j *Joint) ChooseLocation(a, b geom.Point) error {
	if j.chooser == nil {
		return fmt.Errorf("%w: %s", ErrMissingChooser, j.label)
	}
	return j.SetLocation(j.chooser(a, b))
}

// ResetFixedLocation bypasses the fixed-joint guard. It exists solely so a
// whole linkage can be rigidly translated; calling it on a free joint fails.
func (j *Joint) ResetFixedLocation(p geom.Point) error {
	if !j.fixed {
		return fmt.Errorf("%w: %s", ErrNotFixed, j.label)
	}
	j.loc = p
	j.known = true
	return nil
}

func (j *Joint) String() string {
	if !j.known {
		return fmt.Sprintf("(%s: ?)", j.label)
	}
	return fmt.Sprintf("(%s: %f, %f)", j.label, j.loc.X(), j.loc.Y())
}

// clone returns an independent copy of the joint with suffix appended to its
// label. Used by Linkage.Copy.
func (j *Joint) clone(suffix string) *Joint {
	return &Joint{
		label:   j.label + suffix,
		loc:     j.loc,
		known:   j.known,
		fixed:   j.fixed,
		chooser: j.chooser,
	}
}
