package linkage

import (
	"math"

	"github.com/kinemech/linksim/internal/geom"
)

// candidate is one way an unsolved joint could be computed: once every joint
// in requires is known, run determines target's location.
type candidate struct {
	requires []*Joint
	target   *Joint
	run      step
}

func (c *candidate) ready(solved map[*Joint]bool) bool {
	for _, j := range c.requires {
		if !solved[j] {
			return false
		}
	}
	return true
}

// Compile builds the evaluation pipeline for the current topology. It is
// memoized: repeated calls are no-ops until InvalidateCaches or a topology
// mutation discards the result. SimulateToTime compiles lazily, so calling
// Compile directly is only needed to check solvability up front.
//
// The pipeline is: one update step per driver, then one step per solved
// joint in the order the fixpoint iteration activated them, then the
// rigid-distance consistency check over every bar.
func (l *Linkage) Compile() error {
	if l.pipeline != nil {
		return nil
	}

	// Joints known before any rule runs: fixed joints and driven joints.
	solved := make(map[*Joint]bool)
	for _, j := range l.joints {
		if j.Fixed() {
			solved[j] = true
		}
	}
	for _, d := range l.drivers {
		solved[d.Joint()] = true
	}

	// Every way any unsolved joint could be computed, enumerated in
	// declaration order. The enumeration order also breaks ties when several
	// candidates become eligible in the same fixpoint pass; it is
	// deterministic but carries no physical meaning.
	var candidates []*candidate
	for _, j := range l.joints {
		if solved[j] {
			continue
		}
		bars := l.BarsConnectedToJoint(j)

		// Extension rule: a joint on a bar with three or more joints lies on
		// the bar's line, so any two known chain-mates place it by extending
		// the line through them to the joint's chain offset.
		for _, b := range bars {
			if len(b.Joints()) <= 2 {
				continue
			}
			others := make([]*Joint, 0, len(b.Joints())-1)
			for _, bj := range b.Joints() {
				if bj != j {
					others = append(others, bj)
				}
			}
			for ai := 0; ai < len(others); ai++ {
				for bi := ai + 1; bi < len(others); bi++ {
					candidates = append(candidates, l.extensionCandidate(j, b, others[ai], others[bi]))
				}
			}
		}

		// Intersection rule: a joint on two distinct bars sits at a known
		// rigid distance from a joint on each, so two known joints pin it to
		// the intersection of two circles.
		if len(bars) < 2 {
			continue
		}
		for ai := 0; ai < len(bars); ai++ {
			for bi := ai + 1; bi < len(bars); bi++ {
				candidates = append(candidates, l.intersectionCandidates(j, bars[ai], bars[bi])...)
			}
		}
	}

	// Drivers run first every time step.
	steps := make([]step, 0, len(l.drivers)+len(l.joints)+1)
	for _, d := range l.drivers {
		d := d
		steps = append(steps, func(t float64) error {
			return d.Joint().SetLocation(d.PointForTime(math.Mod(t*d.Speed(), 1.0)))
		})
	}

	// Fixpoint: activate every candidate whose requirements are met, in
	// encounter order, until all joints are solved or a pass stalls.
	for len(solved) < len(l.joints) {
		progressed := false
		remaining := candidates[:0]
		for _, c := range candidates {
			if solved[c.target] {
				continue
			}
			if c.ready(solved) {
				steps = append(steps, c.run)
				solved[c.target] = true
				progressed = true
				continue
			}
			remaining = append(remaining, c)
		}
		candidates = remaining
		if !progressed && len(solved) < len(l.joints) {
			var unsolved []string
			for _, j := range l.joints {
				if !solved[j] {
					unsolved = append(unsolved, j.Label())
				}
			}
			return &UnsolvableError{Joints: unsolved}
		}
	}

	steps = append(steps, l.consistencyCheck)
	l.pipeline = steps
	return nil
}

// extensionCandidate places target by extending the line from a through b.
// a and b are given in chain order, so the directed line a->b points toward
// increasing chain offset and the extension length is the offset difference.
func (l *Linkage) extensionCandidate(target *Joint, bar *Bar, a, b *Joint) *candidate {
	targetOff, _ := bar.OriginDistance(target)
	bOff, _ := bar.OriginDistance(b)
	ext := targetOff - bOff
	return &candidate{
		requires: []*Joint{a, b},
		target:   target,
		run: func(t float64) error {
			return target.SetLocation(geom.LineExtension(a.Location(), b.Location(), ext))
		},
	}
}

// intersectionCandidates yields one candidate per choice of one other joint
// from each bar: target lies on the circle around each chosen joint with the
// corresponding bar's rigid distance as radius.
func (l *Linkage) intersectionCandidates(target *Joint, barA, barB *Bar) []*candidate {
	var cands []*candidate
	for _, a := range barA.Joints() {
		if a == target {
			continue
		}
		for _, b := range barB.Joints() {
			if b == target {
				continue
			}
			a, b := a, b
			ra, _ := barA.JointDistance(target, a)
			rb, _ := barB.JointDistance(target, b)
			requires := []*Joint{a}
			if b != a {
				requires = append(requires, b)
			}
			cands = append(cands, &candidate{
				requires: requires,
				target:   target,
				run: func(t float64) error {
					p1, p2, err := geom.CircularIntersection(a.Location(), ra, b.Location(), rb)
					if err != nil {
						return &UnsolvableError{
							Joints: []string{target.Label()},
							Bars:   []string{barA.Label(), barB.Label()},
							Err:    err,
						}
					}
					return target.ChooseLocation(p1, p2)
				},
			})
		}
	}
	return cands
}

// consistencyCheck verifies that every adjacent joint pair on every bar ends
// up at its declared segment length, within the validity margin. Existence
// of a solution order does not rule out a stretched or compressed member;
// this does.
func (l *Linkage) consistencyCheck(t float64) error {
	for _, b := range l.bars {
		joints := b.Joints()
		lengths := b.SegmentLengths()
		for i := 0; i+1 < len(joints); i++ {
			got := geom.Distance(joints[i].Location(), joints[i+1].Location())
			if math.Abs(lengths[i]-got) >= l.margin {
				return &InfeasibleError{
					Bar:    b.Label(),
					JointA: joints[i].Label(),
					JointB: joints[i+1].Label(),
					Want:   lengths[i],
					Got:    got,
				}
			}
		}
	}
	return nil
}
