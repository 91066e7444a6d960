// Package linkage models planar mechanical linkages and solves their joint
// positions over time.
//
// A mechanism is three things:
//
//   - [Joint]: a fixed or moving point, shared by identity across the
//     mechanism
//   - [Bar]: a rigid chain of joints with fixed inter-joint distances
//   - [Driver]: an actuator (crank, rocker, slider) forcing one joint's
//     position as a function of time
//
// [Linkage] owns a validated topology and compiles it into an evaluation
// pipeline: starting from fixed and driven joints, every remaining joint is
// resolved from already-known ones by extending a rigid chain's line or by
// intersecting two circles of rigid radius. [Linkage.SimulateToTime] runs
// the pipeline for a normalized time in [0, 1] and leaves joint locations
// updated; repeated times are served from a quantized position cache.
//
// # Example
//
//	j1 := linkage.NewFixedJoint("j1", geom.Pt(10, 16))
//	j2 := linkage.NewJoint("j2")
//	j2.SetChooser(linkage.GreaterX)
//	top, _ := linkage.NewBar("top", []*linkage.Joint{j1, j2}, []float64{2})
//	l, _ := linkage.New([]*linkage.Bar{top, ...}, []*linkage.Joint{j1, j2, ...}, drivers)
//	err := l.SimulateToTime(0.25)
//
// # Thread Safety
//
// Linkage instances are NOT thread-safe. Simulation mutates shared joint
// state; callers own serialization.
package linkage
