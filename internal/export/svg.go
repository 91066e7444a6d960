package export

import (
	"fmt"
	"strings"

	"github.com/kinemech/linksim/internal/geom"
	"github.com/kinemech/linksim/internal/linkage"
	"github.com/kinemech/linksim/internal/viz"
)

// Trace palette, cycled per joint.
var traceColors = []string{
	"#00ff88", "#00ccff", "#ff00ff", "#ffaa00", "#ff4444", "#88ff00",
}

// TraceSVG renders the traced paths of joints as SVG polylines, one color
// per joint, with a legend. order fixes the legend and color assignment;
// paths not named in order are skipped.
func TraceSVG(order []string, paths map[string][]geom.Point, width, height float64) string {
	var all []geom.Point
	for _, label := range order {
		all = append(all, paths[label]...)
	}
	v := viz.FitViewport(all, 1)

	var sb strings.Builder
	header(&sb, width, height)

	for i, label := range order {
		path := paths[label]
		if len(path) == 0 {
			continue
		}
		color := traceColors[i%len(traceColors)]
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, color))
		for _, p := range path {
			x, y := project(v, p, width, height)
			sb.WriteString(fmt.Sprintf("%.2f,%.2f ", x, y))
		}
		sb.WriteString("\"/>\n")
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>`+"\n",
			16+14*i, color, label))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// FrameSVG renders the linkage's current pose: bar segments as lines,
// joints as labeled circles.
func FrameSVG(l *linkage.Linkage, width, height float64) string {
	var all []geom.Point
	for _, j := range l.Joints() {
		if j.Known() {
			all = append(all, j.Location())
		}
	}
	v := viz.FitViewport(all, 1)

	var sb strings.Builder
	header(&sb, width, height)

	for _, b := range l.Bars() {
		joints := b.Joints()
		for i := 0; i+1 < len(joints); i++ {
			if !joints[i].Known() || !joints[i+1].Known() {
				continue
			}
			x0, y0 := project(v, joints[i].Location(), width, height)
			x1, y1 := project(v, joints[i+1].Location(), width, height)
			sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#00ccff" stroke-width="2"/>`+"\n",
				x0, y0, x1, y1))
		}
	}
	for _, j := range l.Joints() {
		if !j.Known() {
			continue
		}
		x, y := project(v, j.Location(), width, height)
		fill := "#00ff88"
		if j.Fixed() {
			fill = "#ff4444"
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="3" fill="%s"/>`+"\n", x, y, fill))
		sb.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" fill="#aaaabb" font-family="monospace" font-size="11">%s</text>`+"\n",
			x+5, y-5, j.Label()))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func header(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

// project maps a world point into SVG pixel coordinates, flipping Y.
func project(v viz.Viewport, p geom.Point, width, height float64) (float64, float64) {
	spanX := v.MaxX - v.MinX
	spanY := v.MaxY - v.MinY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}
	x := (p.X() - v.MinX) / spanX * width
	y := (1 - (p.Y()-v.MinY)/spanY) * height
	return x, y
}
