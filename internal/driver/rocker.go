package driver

import (
	"math"

	"github.com/kinemech/linksim/internal/geom"
	"github.com/kinemech/linksim/internal/linkage"
)

// Rocker oscillates its attachment joint along an arc: the angle sweeps
// linearly from startingAngle to endingAngle over the first half of a time
// unit, then back over the second half. Angles are in degrees.
type Rocker struct {
	label         string
	center        geom.Point
	joint         *linkage.Joint
	length        float64
	speed         float64
	startingAngle float64 // degrees
	endingAngle   float64 // degrees
}

func NewRocker(label string, center geom.Point, attach *linkage.Joint, length, startingAngle, endingAngle, speed float64) *Rocker {
	return &Rocker{
		label:         label,
		center:        center,
		joint:         attach,
		length:        length,
		speed:         speed,
		startingAngle: startingAngle,
		endingAngle:   endingAngle,
	}
}

func (r *Rocker) Label() string          { return r.label }
func (r *Rocker) Joint() *linkage.Joint  { return r.joint }
func (r *Rocker) Speed() float64         { return r.speed }
func (r *Rocker) Center() geom.Point     { return r.center }
func (r *Rocker) Length() float64        { return r.length }
func (r *Rocker) StartingAngle() float64 { return r.startingAngle }
func (r *Rocker) EndingAngle() float64   { return r.endingAngle }

func (r *Rocker) PointForTime(t float64) geom.Point {
	sweep := r.endingAngle - r.startingAngle
	var angle float64
	if t < 0.5 {
		angle = r.startingAngle + t*2*sweep
	} else {
		angle = r.endingAngle - (t-0.5)*2*sweep
	}
	rad := angle * math.Pi / 180
	return geom.Pt(r.center.X()+r.length*math.Cos(rad), r.center.Y()+r.length*math.Sin(rad))
}

func (r *Rocker) Shift(delta geom.Point) {
	r.center = r.center.Add(delta)
}

func (r *Rocker) Clone(attach *linkage.Joint) linkage.Driver {
	cp := *r
	cp.joint = attach
	return &cp
}
