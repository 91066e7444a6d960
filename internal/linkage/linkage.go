package linkage

import (
	"fmt"
	"math"
	"regexp"

	"github.com/kinemech/linksim/internal/geom"
)

const (
	// DefaultResolution quantizes simulation time into cache buckets:
	// bucket = floor(t * resolution).
	DefaultResolution = 10000

	// DefaultValidityMargin is the tolerance for the post-solve
	// rigid-distance consistency check.
	DefaultValidityMargin = 0.001
)

// Linkage owns a full mechanism topology: bars, joints, and drivers. The
// joints referenced by bars and drivers must be the same objects as those in
// the linkage's joint set, not merely joints with matching labels.
//
// A Linkage is stateful for simulation: SimulateToTime updates every joint's
// location for a given time, and the results are read back through the
// joints. The compiled evaluation pipeline and the position cache are
// derived state, discarded whenever the topology changes.
//
// Linkage is not safe for concurrent use; callers own serialization.
type Linkage struct {
	bars    []*Bar
	joints  []*Joint
	drivers []Driver

	pipeline   []step
	cache      map[int]map[*Joint]geom.Point
	resolution int
	margin     float64
}

// step is one time-parameterized computation in the compiled pipeline.
type step func(t float64) error

// New builds a linkage over the given topology. It fails with ErrReference
// when any bar or driver references a joint outside the joint set, or when a
// driver is attached to a fixed joint.
func New(bars []*Bar, joints []*Joint, drivers []Driver) (*Linkage, error) {
	l := &Linkage{
		resolution: DefaultResolution,
		margin:     DefaultValidityMargin,
	}
	if err := validate(bars, joints, drivers); err != nil {
		return nil, err
	}
	l.bars = bars
	l.joints = joints
	l.drivers = drivers
	return l, nil
}

func validate(bars []*Bar, joints []*Joint, drivers []Driver) error {
	set := make(map[*Joint]bool, len(joints))
	for _, j := range joints {
		set[j] = true
	}
	for _, b := range bars {
		for _, j := range b.Joints() {
			if !set[j] {
				return fmt.Errorf("%w: bar %s references joint %q", ErrReference, b.Label(), j.Label())
			}
		}
	}
	for _, d := range drivers {
		j := d.Joint()
		if !set[j] {
			return fmt.Errorf("%w: driver %s references joint %q", ErrReference, d.Label(), j.Label())
		}
		if j.Fixed() {
			return fmt.Errorf("%w: driver %s is attached to fixed joint %q", ErrReference, d.Label(), j.Label())
		}
	}
	return nil
}

func (l *Linkage) Bars() []*Bar      { return l.bars }
func (l *Linkage) Joints() []*Joint  { return l.joints }
func (l *Linkage) Drivers() []Driver { return l.drivers }
func (l *Linkage) Resolution() int   { return l.resolution }

// SetResolution changes the cache time quantization and drops the cache.
func (l *Linkage) SetResolution(r int) {
	l.resolution = r
	l.cache = nil
}

// SetBars replaces the bar set after re-validating the topology.
func (l *Linkage) SetBars(bars []*Bar) error {
	if err := validate(bars, l.joints, l.drivers); err != nil {
		return err
	}
	l.bars = bars
	l.InvalidateCaches()
	return nil
}

// SetJoints replaces the joint set after re-validating the topology.
func (l *Linkage) SetJoints(joints []*Joint) error {
	if err := validate(l.bars, joints, l.drivers); err != nil {
		return err
	}
	l.joints = joints
	l.InvalidateCaches()
	return nil
}

// SetDrivers replaces the driver set after re-validating the topology.
func (l *Linkage) SetDrivers(drivers []Driver) error {
	if err := validate(l.bars, l.joints, drivers); err != nil {
		return err
	}
	l.drivers = drivers
	l.InvalidateCaches()
	return nil
}

// InvalidateCaches discards the compiled pipeline and the position cache.
// Invalidation is topology-wide, not incremental: the next SimulateToTime
// recompiles from scratch.
func (l *Linkage) InvalidateCaches() {
	l.pipeline = nil
	l.cache = nil
}

// SimulateToTime updates every joint's location for simulator time t in
// [0, 1]. Times quantizing to a previously simulated bucket are served from
// the position cache without running the pipeline; fixed joints are never
// part of the cached or mutated state.
//
// On failure, joints computed by steps before the failing one keep their new
// locations. A subsequent call re-attempts from scratch; with an unchanged
// topology the outcome is deterministic.
func (l *Linkage) SimulateToTime(t float64) error {
	if t < 0 || t > 1 {
		return fmt.Errorf("%w: got %g", ErrTimeRange, t)
	}
	bucket := int(math.Floor(t * float64(l.resolution)))

	if snap, ok := l.cache[bucket]; ok {
		for j, p := range snap {
			if err := j.SetLocation(p); err != nil {
				return err
			}
		}
		return nil
	}

	if err := l.Compile(); err != nil {
		return err
	}
	for _, s := range l.pipeline {
		if err := s(t); err != nil {
			return err
		}
	}

	snap := make(map[*Joint]geom.Point)
	for _, j := range l.joints {
		if !j.Fixed() {
			snap[j] = j.Location()
		}
	}
	if l.cache == nil {
		l.cache = make(map[int]map[*Joint]geom.Point)
	}
	l.cache[bucket] = snap
	return nil
}

// Translate rigidly moves the whole linkage: driver geometry shifts and
// fixed joints move through the privileged setter. Free joint positions are
// recomputed on the next simulation step, so the position cache is dropped.
func (l *Linkage) Translate(dx, dy float64) error {
	delta := geom.Pt(dx, dy)
	for _, d := range l.drivers {
		d.Shift(delta)
	}
	for _, j := range l.joints {
		if !j.Fixed() {
			continue
		}
		if err := j.ResetFixedLocation(j.Location().Add(delta)); err != nil {
			return err
		}
	}
	l.cache = nil
	return nil
}

// Copy builds an independent linkage. Joints and drivers listed as shared
// (plus the shared drivers' attachment joints) keep their identity; every
// other joint and driver is deep-cloned, cloned joint labels get suffix
// appended, and bar references are remapped so the new linkage's reference
// integrity holds.
func (l *Linkage) Copy(sharedJoints []*Joint, sharedDrivers []Driver, suffix string) (*Linkage, error) {
	sharedD := make(map[Driver]bool, len(sharedDrivers))
	mapping := make(map[*Joint]*Joint, len(l.joints))
	for _, j := range sharedJoints {
		mapping[j] = j
	}
	for _, d := range sharedDrivers {
		sharedD[d] = true
		mapping[d.Joint()] = d.Joint()
	}

	joints := make([]*Joint, 0, len(l.joints))
	for _, j := range l.joints {
		if _, ok := mapping[j]; !ok {
			mapping[j] = j.clone(suffix)
		}
		joints = append(joints, mapping[j])
	}

	bars := make([]*Bar, 0, len(l.bars))
	for _, b := range l.bars {
		remapped := make([]*Joint, len(b.Joints()))
		for i, j := range b.Joints() {
			remapped[i] = mapping[j]
		}
		nb, err := NewBar(b.Label(), remapped, b.SegmentLengths())
		if err != nil {
			return nil, err
		}
		bars = append(bars, nb)
	}

	drivers := make([]Driver, 0, len(l.drivers))
	for _, d := range l.drivers {
		if sharedD[d] {
			drivers = append(drivers, d)
			continue
		}
		drivers = append(drivers, d.Clone(mapping[d.Joint()]))
	}

	return New(bars, joints, drivers)
}

// BarsConnectedToJoint returns every bar that contains the joint.
func (l *Linkage) BarsConnectedToJoint(j *Joint) []*Bar {
	var bars []*Bar
	for _, b := range l.bars {
		if b.Contains(j) {
			bars = append(bars, b)
		}
	}
	return bars
}

// JointsConnectedToJoint returns every other joint that shares a bar with
// the given joint, in first-encounter order.
func (l *Linkage) JointsConnectedToJoint(j *Joint) []*Joint {
	seen := map[*Joint]bool{j: true}
	var joints []*Joint
	for _, b := range l.BarsConnectedToJoint(j) {
		for _, bj := range b.Joints() {
			if !seen[bj] {
				seen[bj] = true
				joints = append(joints, bj)
			}
		}
	}
	return joints
}

// J returns the joint with the given label, or nil if none exists. With
// duplicate labels, which joint is returned is undefined.
func (l *Linkage) J(label string) *Joint {
	for _, j := range l.joints {
		if j.Label() == label {
			return j
		}
	}
	return nil
}

// Js returns all joints whose labels match the regexp pattern.
func (l *Linkage) Js(pattern string) ([]*Joint, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	var joints []*Joint
	for _, j := range l.joints {
		if re.MatchString(j.Label()) {
			joints = append(joints, j)
		}
	}
	return joints, nil
}

// B returns the bar with the given label, or nil if none exists.
func (l *Linkage) B(label string) *Bar {
	for _, b := range l.bars {
		if b.Label() == label {
			return b
		}
	}
	return nil
}

// Bs returns all bars whose labels match the regexp pattern.
func (l *Linkage) Bs(pattern string) ([]*Bar, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	var bars []*Bar
	for _, b := range l.bars {
		if re.MatchString(b.Label()) {
			bars = append(bars, b)
		}
	}
	return bars, nil
}
