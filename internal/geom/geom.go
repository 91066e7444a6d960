package geom

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point is a position in the linkage plane.
type Point = mgl64.Vec2

// ErrNoIntersection indicates the two circles have no real intersection
// (coincident centers, centers too far apart, or one circle inside the other).
var ErrNoIntersection = errors.New("geom: circles do not intersect")

// Pt builds a Point from its coordinates.
func Pt(x, y float64) Point {
	return Point{x, y}
}

// CircularIntersection returns the two intersection points of the circles
// centered at aCenter and bCenter with radii aRadius and bRadius.
//
// The points are found by projecting onto the center line and offsetting
// perpendicular by the half-chord height. Which point comes first is a fixed
// property of the formula and carries no physical meaning; callers pick
// between the two.
func CircularIntersection(aCenter Point, aRadius float64, bCenter Point, bRadius float64) (Point, Point, error) {
	span := aCenter.Sub(bCenter)
	lc := span.Len()
	if lc == 0 {
		return Point{}, Point{}, ErrNoIntersection
	}

	// Signed distance from bCenter to the chord midpoint, along the center line.
	b := (bRadius*bRadius - aRadius*aRadius + lc*lc) / (2 * lc)
	h2 := bRadius*bRadius - b*b
	if h2 < 0 {
		return Point{}, Point{}, ErrNoIntersection
	}
	h := math.Sqrt(h2)

	mid := bCenter.Add(span.Mul(b / lc))
	perp := Point{bCenter.Y() - aCenter.Y(), aCenter.X() - bCenter.X()}.Mul(h / lc)

	return mid.Add(perp), mid.Sub(perp), nil
}

// LineExtension extends the directed line from p1 through p2 by an additional
// length l past p2 and returns the resulting point.
func LineExtension(p1, p2 Point, l float64) Point {
	angle := LineAngle(p1, p2)
	return Point{p2.X() + l*math.Cos(angle), p2.Y() + l*math.Sin(angle)}
}

// Distance returns the Euclidean distance between two points.
func Distance(p1, p2 Point) float64 {
	return p1.Sub(p2).Len()
}

// LineAngle returns the angle of the directed vector from p1 to p2, in radians.
func LineAngle(p1, p2 Point) float64 {
	return math.Atan2(p2.Y()-p1.Y(), p2.X()-p1.X())
}

// LawOfCosines returns the third side of a triangle with sides a and b and
// opposite angle gamma (radians).
func LawOfCosines(a, b, gamma float64) float64 {
	return math.Sqrt(a*a + b*b - 2*a*b*math.Cos(gamma))
}
