package driver

import (
	"math"

	"github.com/kinemech/linksim/internal/geom"
	"github.com/kinemech/linksim/internal/linkage"
)

// Crank rotates its attachment joint around a fixed center at a constant
// angular rate, completing speed full revolutions per unit of time.
type Crank struct {
	label         string
	center        geom.Point
	joint         *linkage.Joint
	length        float64
	speed         float64
	startingAngle float64 // radians
}

// NewCrank returns a crank of the given radius centered at center. The
// starting angle is in radians.
func NewCrank(label string, center geom.Point, attach *linkage.Joint, length, speed, startingAngle float64) *Crank {
	return &Crank{
		label:         label,
		center:        center,
		joint:         attach,
		length:        length,
		speed:         speed,
		startingAngle: startingAngle,
	}
}

func (c *Crank) Label() string          { return c.label }
func (c *Crank) Joint() *linkage.Joint  { return c.joint }
func (c *Crank) Speed() float64         { return c.speed }
func (c *Crank) Center() geom.Point     { return c.center }
func (c *Crank) Length() float64        { return c.length }
func (c *Crank) StartingAngle() float64 { return c.startingAngle }

func (c *Crank) PointForTime(t float64) geom.Point {
	a := c.startingAngle + t*2*math.Pi
	return geom.Pt(c.center.X()+c.length*math.Cos(a), c.center.Y()+c.length*math.Sin(a))
}

func (c *Crank) Shift(delta geom.Point) {
	c.center = c.center.Add(delta)
}

func (c *Crank) Clone(attach *linkage.Joint) linkage.Driver {
	cp := *c
	cp.joint = attach
	return &cp
}
