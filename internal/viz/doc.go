// Package viz renders linkages and joint traces in the terminal.
//
// A [Canvas] of braille cells gives 2x4 sub-pixels per character;
// [DrawLinkage] and [DrawTrace] project world coordinates through a
// [Viewport] onto it. [RunLive] animates a linkage with bubbletea.
package viz
