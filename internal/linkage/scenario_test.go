package linkage_test

import (
	"math"
	"testing"

	"github.com/kinemech/linksim/internal/driver"
	"github.com/kinemech/linksim/internal/geom"
	"github.com/kinemech/linksim/internal/linkage"
)

// fourBar assembles the reference mechanism: a crank at (10, 10) drives j3,
// j2 follows on a circle around the fixed pivot j1, the rigid coupler
// j2-j3-j4 extends to j4, and j5 closes the loop.
func fourBar(t *testing.T) *linkage.Linkage {
	t.Helper()
	j1 := linkage.NewFixedJoint("j1", geom.Pt(10, 16))
	j2 := linkage.NewJoint("j2")
	j2.SetChooser(linkage.GreaterX)
	j3 := linkage.NewJoint("j3")
	j4 := linkage.NewJoint("j4")
	j5 := linkage.NewJoint("j5")
	j5.SetChooser(linkage.LesserX)

	mk := func(label string, joints []*linkage.Joint, lengths []float64) *linkage.Bar {
		b, err := linkage.NewBar(label, joints, lengths)
		if err != nil {
			t.Fatalf("bar %s: %v", label, err)
		}
		return b
	}
	bars := []*linkage.Bar{
		mk("top", []*linkage.Joint{j1, j2}, []float64{2}),
		mk("main", []*linkage.Joint{j2, j3, j4}, []float64{6, 5}),
		mk("hypot", []*linkage.Joint{j3, j5}, []float64{6}),
		mk("base", []*linkage.Joint{j4, j5}, []float64{2}),
	}
	crank := driver.NewCrank("crank", geom.Pt(10, 10), j3, 1, 1, 0)

	l, err := linkage.New(bars, []*linkage.Joint{j1, j2, j3, j4, j5}, []linkage.Driver{crank})
	if err != nil {
		t.Fatalf("new linkage: %v", err)
	}
	return l
}

func TestFourBarAtTimeZero(t *testing.T) {
	l := fourBar(t)
	if err := l.SimulateToTime(0); err != nil {
		t.Fatalf("simulate: %v", err)
	}

	j1, j2, j3, j4, j5 := l.J("j1"), l.J("j2"), l.J("j3"), l.J("j4"), l.J("j5")

	// Crank at angle 0 puts j3 one unit right of its center.
	if d := geom.Distance(j3.Location(), geom.Pt(11, 10)); d > 1e-12 {
		t.Errorf("j3 = %v, want (11, 10)", j3.Location())
	}

	// j2 is the greater-x intersection of the circles around j1 (r=2) and
	// j3 (r=6).
	wantJ2 := geom.Pt(11.9982566, 15.9163761)
	if geom.Distance(j2.Location(), wantJ2) > 1e-4 {
		t.Errorf("j2 = %v, want about %v", j2.Location(), wantJ2)
	}
	if j2.Location().X() <= j1.Location().X() {
		t.Error("chooser should have picked the greater-x branch")
	}

	// j4 lies on the coupler's line, five units past j3.
	wantJ4 := geom.Pt(10.1681200, 5.0696876)
	if geom.Distance(j4.Location(), wantJ4) > 1e-4 {
		t.Errorf("j4 = %v, want about %v", j4.Location(), wantJ4)
	}

	// Every rigid constraint holds.
	checks := []struct {
		a, b *linkage.Joint
		want float64
	}{
		{j1, j2, 2},
		{j2, j3, 6},
		{j3, j4, 5},
		{j3, j5, 6},
		{j4, j5, 2},
	}
	for _, c := range checks {
		got := geom.Distance(c.a.Location(), c.b.Location())
		if math.Abs(got-c.want) > 1e-3 {
			t.Errorf("distance %s-%s = %f, want %f", c.a.Label(), c.b.Label(), got, c.want)
		}
	}
}

func TestFourBarFullCycle(t *testing.T) {
	l := fourBar(t)
	main := l.B("main")
	joints := main.Joints()

	for i := 0; i <= 100; i++ {
		tm := float64(i) / 100
		if err := l.SimulateToTime(tm); err != nil {
			t.Fatalf("t=%f: %v", tm, err)
		}
		// Adjacent pairs on the coupler keep their declared lengths through
		// the whole cycle.
		for k := 0; k+1 < len(joints); k++ {
			want := main.SegmentLengths()[k]
			got := geom.Distance(joints[k].Location(), joints[k+1].Location())
			if math.Abs(got-want) > 1e-3 {
				t.Fatalf("t=%f: segment %s-%s = %f, want %f",
					tm, joints[k].Label(), joints[k+1].Label(), got, want)
			}
		}
	}
}

func TestFourBarCopyStructure(t *testing.T) {
	l := fourBar(t)
	cp, err := l.Copy(nil, nil, "'")
	if err != nil {
		t.Fatalf("copy: %v", err)
	}

	if err := l.SimulateToTime(0.125); err != nil {
		t.Fatal(err)
	}
	if err := cp.SimulateToTime(0.125); err != nil {
		t.Fatal(err)
	}
	for i, j := range cp.Joints() {
		oj := l.Joints()[i]
		if j == oj {
			t.Fatalf("joint %s shared with original", j.Label())
		}
		if j.Label() != oj.Label()+"'" {
			t.Errorf("label = %q, want %q", j.Label(), oj.Label()+"'")
		}
		if geom.Distance(j.Location(), oj.Location()) > 1e-12 {
			t.Errorf("copy diverged at %s: %v vs %v", j.Label(), j.Location(), oj.Location())
		}
	}
}
