package config

// Presets are built-in linkage definitions, usable by name from the CLI.
var Presets = map[string]*Definition{
	// Four-bar mechanism with a three-joint rigid coupler: a crank drives j3,
	// j2 follows on the circle around the fixed pivot j1, and the coupler's
	// far end j4 closes through j5 back to the crank joint.
	"fourbar": {
		Name: "fourbar",
		Joints: []JointDef{
			{Label: "j1", At: &[2]float64{10, 16}, Fixed: true},
			{Label: "j2", Choose: "greater_x"},
			{Label: "j3"},
			{Label: "j4"},
			{Label: "j5", Choose: "lesser_x"},
		},
		Bars: []BarDef{
			{Label: "top", Joints: []string{"j1", "j2"}, Lengths: []float64{2}},
			{Label: "main", Joints: []string{"j2", "j3", "j4"}, Lengths: []float64{6, 5}},
			{Label: "hypot", Joints: []string{"j3", "j5"}, Lengths: []float64{6}},
			{Label: "base", Joints: []string{"j4", "j5"}, Lengths: []float64{2}},
		},
		Drivers: []DriverDef{
			{Type: "crank", Label: "crank", Joint: "j3", Center: [2]float64{10, 10}, Length: 1},
		},
	},

	// Rocker arm sweeping 60..120 degrees, with a follower pinned between the
	// arm tip and a fixed anchor.
	"rocker": {
		Name: "rocker",
		Joints: []JointDef{
			{Label: "anchor", At: &[2]float64{3, 0}, Fixed: true},
			{Label: "arm"},
			{Label: "tip", Choose: "greater_y"},
		},
		Bars: []BarDef{
			{Label: "link", Joints: []string{"arm", "tip"}, Lengths: []float64{3}},
			{Label: "ground", Joints: []string{"anchor", "tip"}, Lengths: []float64{3}},
		},
		Drivers: []DriverDef{
			{Type: "rocker", Label: "drive", Joint: "arm", Center: [2]float64{0, 0}, Length: 2, StartAngle: 60, EndAngle: 120},
		},
	},

	// Reciprocating slider with a knee joint held between the slide and a
	// fixed pivot overhead.
	"slider": {
		Name: "slider",
		Joints: []JointDef{
			{Label: "pivot", At: &[2]float64{2, 3}, Fixed: true},
			{Label: "slide"},
			{Label: "knee", Choose: "greater_y"},
		},
		Bars: []BarDef{
			{Label: "rod", Joints: []string{"slide", "knee"}, Lengths: []float64{2}},
			{Label: "strut", Joints: []string{"pivot", "knee"}, Lengths: []float64{2}},
		},
		Drivers: []DriverDef{
			{Type: "slider", Label: "ram", Joint: "slide", Center: [2]float64{0, 0}, Endpoint: &[2]float64{4, 0}},
		},
	},
}
