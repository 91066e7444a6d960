package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kinemech/linksim/internal/driver"
	"github.com/kinemech/linksim/internal/geom"
	"github.com/kinemech/linksim/internal/linkage"
)

const (
	DefaultSamples    = 200
	DefaultResolution = linkage.DefaultResolution
)

// Definition is a declarative linkage topology. Joints are declared once and
// referenced by label from bars and drivers; Build resolves the labels into
// shared joint identities.
type Definition struct {
	Name       string      `yaml:"name"`
	Resolution int         `yaml:"resolution,omitempty"`
	Joints     []JointDef  `yaml:"joints"`
	Bars       []BarDef    `yaml:"bars"`
	Drivers    []DriverDef `yaml:"drivers"`
}

type JointDef struct {
	Label  string      `yaml:"label"`
	At     *[2]float64 `yaml:"at,omitempty"`
	Fixed  bool        `yaml:"fixed,omitempty"`
	Choose string      `yaml:"choose,omitempty"`
}

type BarDef struct {
	Label   string    `yaml:"label"`
	Joints  []string  `yaml:"joints"`
	Lengths []float64 `yaml:"lengths"`
}

// DriverDef covers all three driver types; which fields apply depends on
// Type. Crank start_angle is in radians, rocker angles in degrees, matching
// the driver package.
type DriverDef struct {
	Type       string      `yaml:"type"` // crank, rocker, slider
	Label      string      `yaml:"label"`
	Joint      string      `yaml:"joint"`
	Center     [2]float64  `yaml:"center,omitempty"`
	Length     float64     `yaml:"length,omitempty"`
	Speed      float64     `yaml:"speed,omitempty"` // 0 means 1.0
	StartAngle float64     `yaml:"start_angle,omitempty"`
	EndAngle   float64     `yaml:"end_angle,omitempty"`
	Endpoint   *[2]float64 `yaml:"endpoint,omitempty"`
}

// Choosers maps definition names to joint chooser functions.
var Choosers = map[string]linkage.Chooser{
	"greater_x": linkage.GreaterX,
	"greater_y": linkage.GreaterY,
	"lesser_x":  linkage.LesserX,
	"lesser_y":  linkage.LesserY,
}

// Load reads a linkage definition from a YAML file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def := &Definition{}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, err
	}
	return def, nil
}

// Save writes a linkage definition as YAML.
func Save(path string, def *Definition) error {
	data, err := yaml.Marshal(def)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build assembles the definition into a validated Linkage.
func (d *Definition) Build() (*linkage.Linkage, error) {
	joints := make([]*linkage.Joint, 0, len(d.Joints))
	byLabel := make(map[string]*linkage.Joint, len(d.Joints))
	for _, jd := range d.Joints {
		if _, dup := byLabel[jd.Label]; dup {
			return nil, fmt.Errorf("config: duplicate joint label %q", jd.Label)
		}
		var j *linkage.Joint
		switch {
		case jd.Fixed:
			if jd.At == nil {
				return nil, fmt.Errorf("config: fixed joint %q needs a location", jd.Label)
			}
			j = linkage.NewFixedJoint(jd.Label, geom.Pt(jd.At[0], jd.At[1]))
		default:
			j = linkage.NewJoint(jd.Label)
			if jd.At != nil {
				if err := j.SetLocation(geom.Pt(jd.At[0], jd.At[1])); err != nil {
					return nil, err
				}
			}
		}
		if jd.Choose != "" {
			chooser, ok := Choosers[jd.Choose]
			if !ok {
				return nil, fmt.Errorf("config: joint %q has unknown chooser %q", jd.Label, jd.Choose)
			}
			j.SetChooser(chooser)
		}
		joints = append(joints, j)
		byLabel[jd.Label] = j
	}

	bars := make([]*linkage.Bar, 0, len(d.Bars))
	for _, bd := range d.Bars {
		chain := make([]*linkage.Joint, 0, len(bd.Joints))
		for _, label := range bd.Joints {
			j, ok := byLabel[label]
			if !ok {
				return nil, fmt.Errorf("config: bar %q references undeclared joint %q", bd.Label, label)
			}
			chain = append(chain, j)
		}
		b, err := linkage.NewBar(bd.Label, chain, bd.Lengths)
		if err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}

	drivers := make([]linkage.Driver, 0, len(d.Drivers))
	for _, dd := range d.Drivers {
		attach, ok := byLabel[dd.Joint]
		if !ok {
			return nil, fmt.Errorf("config: driver %q references undeclared joint %q", dd.Label, dd.Joint)
		}
		speed := dd.Speed
		if speed == 0 {
			speed = 1.0
		}
		center := geom.Pt(dd.Center[0], dd.Center[1])
		switch dd.Type {
		case "crank":
			drivers = append(drivers, driver.NewCrank(dd.Label, center, attach, dd.Length, speed, dd.StartAngle))
		case "rocker":
			drivers = append(drivers, driver.NewRocker(dd.Label, center, attach, dd.Length, dd.StartAngle, dd.EndAngle, speed))
		case "slider":
			if dd.Endpoint == nil {
				return nil, fmt.Errorf("config: slider %q needs an endpoint", dd.Label)
			}
			end := geom.Pt(dd.Endpoint[0], dd.Endpoint[1])
			drivers = append(drivers, driver.NewSlider(dd.Label, center, end, attach, speed))
		default:
			return nil, fmt.Errorf("config: driver %q has unknown type %q", dd.Label, dd.Type)
		}
	}

	l, err := linkage.New(bars, joints, drivers)
	if err != nil {
		return nil, err
	}
	if d.Resolution > 0 {
		l.SetResolution(d.Resolution)
	}
	return l, nil
}
