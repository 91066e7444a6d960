package driver

import (
	"math"

	"github.com/kinemech/linksim/internal/geom"
	"github.com/kinemech/linksim/internal/linkage"
)

// Slider moves its attachment joint back and forth along the straight line
// from location to endpoint: out over the first half of a time unit, back
// over the second half.
type Slider struct {
	label    string
	location geom.Point
	endpoint geom.Point
	joint    *linkage.Joint
	speed    float64
}

func NewSlider(label string, location, endpoint geom.Point, attach *linkage.Joint, speed float64) *Slider {
	return &Slider{
		label:    label,
		location: location,
		endpoint: endpoint,
		joint:    attach,
		speed:    speed,
	}
}

func (s *Slider) Label() string         { return s.label }
func (s *Slider) Joint() *linkage.Joint { return s.joint }
func (s *Slider) Speed() float64        { return s.speed }
func (s *Slider) Location() geom.Point  { return s.location }
func (s *Slider) Endpoint() geom.Point  { return s.endpoint }

func (s *Slider) PointForTime(t float64) geom.Point {
	length := geom.Distance(s.location, s.endpoint)
	angle := geom.LineAngle(s.location, s.endpoint)
	var d float64
	if t < 0.5 {
		d = t * 2 * length
	} else {
		d = length - (t-0.5)*2*length
	}
	return geom.Pt(s.location.X()+d*math.Cos(angle), s.location.Y()+d*math.Sin(angle))
}

func (s *Slider) Shift(delta geom.Point) {
	s.location = s.location.Add(delta)
	s.endpoint = s.endpoint.Add(delta)
}

func (s *Slider) Clone(attach *linkage.Joint) linkage.Driver {
	cp := *s
	cp.joint = attach
	return &cp
}
