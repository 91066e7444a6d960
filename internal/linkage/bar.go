package linkage

import (
	"fmt"
	"strings"
)

// Bar is a rigid chain of two or more joints. Segment i is the stretch
// between joints[i] and joints[i+1], so a bar carries exactly len(joints)-1
// segment lengths. Because the chain is rigid, the distance between any two
// of its joints is the difference of their offsets from the first joint.
type Bar struct {
	label   string
	joints  []*Joint
	lengths []float64
}

// NewBar builds a bar over the given joint chain. It fails with
// ErrConstruction when the chain has fewer than two joints, the segment
// count does not match, or a segment length is negative.
func NewBar(label string, joints []*Joint, segmentLengths []float64) (*Bar, error) {
	if len(joints) < 2 {
		return nil, fmt.Errorf("%w: bar %s must have at least two joints", ErrConstruction, label)
	}
	if len(segmentLengths) != len(joints)-1 {
		return nil, fmt.Errorf("%w: bar %s has %d segment lengths, expected %d",
			ErrConstruction, label, len(segmentLengths), len(joints)-1)
	}
	for _, l := range segmentLengths {
		if l < 0 {
			return nil, fmt.Errorf("%w: bar %s has a negative segment length %g", ErrConstruction, label, l)
		}
	}
	return &Bar{
		label:   label,
		joints:  append([]*Joint(nil), joints...),
		lengths: append([]float64(nil), segmentLengths...),
	}, nil
}

func (b *Bar) Label() string { return b.label }

// Joints returns the bar's joint chain in order. The slice is shared with
// the bar; callers must not modify it.
func (b *Bar) Joints() []*Joint { return b.joints }

// SegmentLengths returns the per-segment lengths. Shared, do not modify.
func (b *Bar) SegmentLengths() []float64 { return b.lengths }

// Contains reports whether the joint is part of this bar, by identity.
func (b *Bar) Contains(j *Joint) bool {
	return b.index(j) >= 0
}

func (b *Bar) index(j *Joint) int {
	for i, bj := range b.joints {
		if bj == j {
			return i
		}
	}
	return -1
}

// KnownJoints returns how many of the bar's joints have known locations.
func (b *Bar) KnownJoints() int {
	n := 0
	for _, j := range b.joints {
		if j.Known() {
			n++
		}
	}
	return n
}

// OriginDistance returns the chain offset of the joint from the bar's first
// joint: the sum of segment lengths up to (not including) the joint.
func (b *Bar) OriginDistance(j *Joint) (float64, error) {
	i := b.index(j)
	if i < 0 {
		return 0, fmt.Errorf("%w: joint %s, bar %s", ErrNotOnBar, j.Label(), b.label)
	}
	d := 0.0
	for k := 0; k < i; k++ {
		d += b.lengths[k]
	}
	return d, nil
}

// JointDistance returns the rigid distance between two joints on the bar.
func (b *Bar) JointDistance(j1, j2 *Joint) (float64, error) {
	d1, err := b.OriginDistance(j1)
	if err != nil {
		return 0, err
	}
	d2, err := b.OriginDistance(j2)
	if err != nil {
		return 0, err
	}
	if d1 > d2 {
		return d1 - d2, nil
	}
	return d2 - d1, nil
}

// NeighborJoints returns the one or two joints chain-adjacent to the given
// joint on this bar.
func (b *Bar) NeighborJoints(j *Joint) ([]*Joint, error) {
	i := b.index(j)
	if i < 0 {
		return nil, fmt.Errorf("%w: joint %s, bar %s", ErrNotOnBar, j.Label(), b.label)
	}
	switch {
	case i == 0:
		return []*Joint{b.joints[1]}, nil
	case i == len(b.joints)-1:
		return []*Joint{b.joints[i-1]}, nil
	default:
		return []*Joint{b.joints[i-1], b.joints[i+1]}, nil
	}
}

func (b *Bar) String() string {
	var sb strings.Builder
	sb.WriteString(b.label)
	sb.WriteString(": ")
	for i, j := range b.joints {
		if i > 0 {
			fmt.Fprintf(&sb, " -- %g -- ", b.lengths[i-1])
		}
		sb.WriteString(j.String())
	}
	return sb.String()
}
