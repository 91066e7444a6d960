package viz

import (
	"math"

	"github.com/kinemech/linksim/internal/geom"
	"github.com/kinemech/linksim/internal/linkage"
)

// Viewport maps a world-coordinate window onto a canvas. Y grows upward in
// the world and downward on the canvas; the projection flips it.
type Viewport struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// FitViewport returns a viewport covering every given point, padded by pad
// on all sides.
func FitViewport(points []geom.Point, pad float64) Viewport {
	v := Viewport{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range points {
		v.MinX = math.Min(v.MinX, p.X())
		v.MinY = math.Min(v.MinY, p.Y())
		v.MaxX = math.Max(v.MaxX, p.X())
		v.MaxY = math.Max(v.MaxY, p.Y())
	}
	if len(points) == 0 {
		return Viewport{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
	}
	v.MinX -= pad
	v.MinY -= pad
	v.MaxX += pad
	v.MaxY += pad
	return v
}

// Include grows the viewport to cover p.
func (v Viewport) Include(p geom.Point) Viewport {
	v.MinX = math.Min(v.MinX, p.X())
	v.MinY = math.Min(v.MinY, p.Y())
	v.MaxX = math.Max(v.MaxX, p.X())
	v.MaxY = math.Max(v.MaxY, p.Y())
	return v
}

func (v Viewport) project(c *Canvas, p geom.Point) (int, int) {
	w := float64(c.Width * 2)
	h := float64(c.Height * 4)
	spanX := v.MaxX - v.MinX
	spanY := v.MaxY - v.MinY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}
	x := (p.X() - v.MinX) / spanX * (w - 1)
	y := (1 - (p.Y()-v.MinY)/spanY) * (h - 1)
	return int(math.Round(x)), int(math.Round(y))
}

// DrawLinkage renders the linkage's current pose: every bar segment as a
// line, every joint as a marker. Joints with unknown locations are skipped.
func DrawLinkage(c *Canvas, l *linkage.Linkage, v Viewport) {
	for _, b := range l.Bars() {
		joints := b.Joints()
		for i := 0; i+1 < len(joints); i++ {
			if !joints[i].Known() || !joints[i+1].Known() {
				continue
			}
			x0, y0 := v.project(c, joints[i].Location())
			x1, y1 := v.project(c, joints[i+1].Location())
			c.Line(x0, y0, x1, y1)
		}
	}
	for _, j := range l.Joints() {
		if !j.Known() {
			continue
		}
		x, y := v.project(c, j.Location())
		c.Marker(x, y)
	}
}

// DrawTrace renders a joint's path over time as connected line segments.
func DrawTrace(c *Canvas, path []geom.Point, v Viewport) {
	for i := 0; i+1 < len(path); i++ {
		x0, y0 := v.project(c, path[i])
		x1, y1 := v.project(c, path[i+1])
		c.Line(x0, y0, x1, y1)
	}
}
