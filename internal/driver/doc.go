// Package driver provides the concrete actuators that move a linkage.
//
// Each driver implements [linkage.Driver], forcing its attachment joint's
// position for a speed-adjusted time in [0, 1):
//
//   - [Crank]: constant-rate rotation around a fixed center
//   - [Rocker]: triangle-wave angular oscillation between two angles
//   - [Slider]: triangle-wave linear travel between two endpoints
package driver
