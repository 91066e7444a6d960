package linkage

import (
	"errors"
	"testing"

	"github.com/kinemech/linksim/internal/geom"
)

func TestJointSetLocation(t *testing.T) {
	j := NewJoint("a")
	if j.Known() {
		t.Error("new free joint should not be known")
	}
	if err := j.SetLocation(geom.Pt(1, 2)); err != nil {
		t.Fatalf("set location failed: %v", err)
	}
	if !j.Known() || j.Location() != geom.Pt(1, 2) {
		t.Errorf("location = %v, known = %v", j.Location(), j.Known())
	}
}

func TestJointFixedGuard(t *testing.T) {
	j := NewFixedJoint("pivot", geom.Pt(3, 4))
	if !j.Known() || !j.Fixed() {
		t.Fatal("fixed joint should be known and fixed")
	}
	err := j.SetLocation(geom.Pt(0, 0))
	if !errors.Is(err, ErrImmutableJoint) {
		t.Errorf("expected ErrImmutableJoint, got %v", err)
	}
	if j.Location() != geom.Pt(3, 4) {
		t.Errorf("location changed to %v", j.Location())
	}
}

func TestJointResetFixedLocation(t *testing.T) {
	j := NewFixedJoint("pivot", geom.Pt(3, 4))
	if err := j.ResetFixedLocation(geom.Pt(5, 5)); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if j.Location() != geom.Pt(5, 5) {
		t.Errorf("location = %v, want (5, 5)", j.Location())
	}

	free := NewJoint("free")
	if err := free.ResetFixedLocation(geom.Pt(0, 0)); !errors.Is(err, ErrNotFixed) {
		t.Errorf("expected ErrNotFixed on free joint, got %v", err)
	}
}

func TestJointChooseLocation(t *testing.T) {
	j := NewJoint("a")
	err := j.ChooseLocation(geom.Pt(1, 0), geom.Pt(2, 0))
	if !errors.Is(err, ErrMissingChooser) {
		t.Fatalf("expected ErrMissingChooser, got %v", err)
	}

	j.SetChooser(GreaterX)
	if err := j.ChooseLocation(geom.Pt(1, 0), geom.Pt(2, 0)); err != nil {
		t.Fatalf("choose failed: %v", err)
	}
	if j.Location() != geom.Pt(2, 0) {
		t.Errorf("location = %v, want (2, 0)", j.Location())
	}
}

func TestChoosers(t *testing.T) {
	a, b := geom.Pt(1, 4), geom.Pt(2, 3)
	tests := []struct {
		name    string
		chooser Chooser
		want    geom.Point
	}{
		{"greater_x", GreaterX, b},
		{"greater_y", GreaterY, a},
		{"lesser_x", LesserX, a},
		{"lesser_y", LesserY, b},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.chooser(a, b); got != tt.want {
				t.Errorf("chose %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJointString(t *testing.T) {
	j := NewJoint("a")
	if j.String() != "(a: ?)" {
		t.Errorf("unknown joint string = %q", j.String())
	}
	j.SetLocation(geom.Pt(1, 2))
	if j.String() != "(a: 1.000000, 2.000000)" {
		t.Errorf("known joint string = %q", j.String())
	}
}
