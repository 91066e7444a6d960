package config

import (
	"path/filepath"
	"testing"

	"github.com/kinemech/linksim/internal/geom"
)

func TestPresetsBuildAndSolve(t *testing.T) {
	for name, def := range Presets {
		t.Run(name, func(t *testing.T) {
			l, err := def.Build()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			for i := 0; i <= 20; i++ {
				tm := float64(i) / 20
				if err := l.SimulateToTime(tm); err != nil {
					t.Fatalf("t=%f: %v", tm, err)
				}
			}
		})
	}
}

func TestFourbarSolution(t *testing.T) {
	l, err := Presets["fourbar"].Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := l.SimulateToTime(0); err != nil {
		t.Fatal(err)
	}
	if d := geom.Distance(l.J("j3").Location(), geom.Pt(11, 10)); d > 1e-12 {
		t.Errorf("j3 = %v, want (11, 10)", l.J("j3").Location())
	}
	if geom.Distance(l.J("j2").Location(), geom.Pt(11.9982566, 15.9163761)) > 1e-4 {
		t.Errorf("j2 = %v", l.J("j2").Location())
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fourbar.yaml")
	if err := Save(path, Presets["fourbar"]); err != nil {
		t.Fatalf("save: %v", err)
	}
	def, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if def.Name != "fourbar" {
		t.Errorf("name = %q", def.Name)
	}
	if len(def.Joints) != 5 || len(def.Bars) != 4 || len(def.Drivers) != 1 {
		t.Errorf("shape = %d joints, %d bars, %d drivers",
			len(def.Joints), len(def.Bars), len(def.Drivers))
	}
	if def.Joints[1].Choose != "greater_x" {
		t.Errorf("j2 chooser = %q", def.Joints[1].Choose)
	}
	if _, err := def.Build(); err != nil {
		t.Errorf("rebuild: %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{
			name: "duplicate joint label",
			def: Definition{
				Joints: []JointDef{{Label: "a"}, {Label: "a"}},
			},
		},
		{
			name: "fixed joint without location",
			def: Definition{
				Joints: []JointDef{{Label: "a", Fixed: true}},
			},
		},
		{
			name: "unknown chooser",
			def: Definition{
				Joints: []JointDef{{Label: "a", Choose: "leftmost"}},
			},
		},
		{
			name: "bar references undeclared joint",
			def: Definition{
				Joints: []JointDef{{Label: "a"}},
				Bars:   []BarDef{{Label: "b", Joints: []string{"a", "ghost"}, Lengths: []float64{1}}},
			},
		},
		{
			name: "driver references undeclared joint",
			def: Definition{
				Joints:  []JointDef{{Label: "a"}},
				Drivers: []DriverDef{{Type: "crank", Label: "d", Joint: "ghost", Length: 1}},
			},
		},
		{
			name: "unknown driver type",
			def: Definition{
				Joints:  []JointDef{{Label: "a"}},
				Drivers: []DriverDef{{Type: "cam", Label: "d", Joint: "a"}},
			},
		},
		{
			name: "slider without endpoint",
			def: Definition{
				Joints:  []JointDef{{Label: "a"}},
				Drivers: []DriverDef{{Type: "slider", Label: "d", Joint: "a"}},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.def.Build(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDefaultSpeed(t *testing.T) {
	def := Definition{
		Joints:  []JointDef{{Label: "a"}},
		Drivers: []DriverDef{{Type: "crank", Label: "d", Joint: "a", Length: 1}},
	}
	l, err := def.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Drivers()[0].Speed(); got != 1.0 {
		t.Errorf("speed = %f, want 1.0", got)
	}
}
