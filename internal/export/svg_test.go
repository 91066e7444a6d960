package export

import (
	"strings"
	"testing"

	"github.com/kinemech/linksim/internal/config"
	"github.com/kinemech/linksim/internal/geom"
)

func TestTraceSVG(t *testing.T) {
	paths := map[string][]geom.Point{
		"a": {geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 0)},
		"b": {geom.Pt(0, 2), geom.Pt(2, 2)},
	}
	svg := TraceSVG([]string{"a", "b"}, paths, 640, 480)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML declaration")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}
	if strings.Count(svg, "<polyline") != 2 {
		t.Errorf("polylines = %d, want 2", strings.Count(svg, "<polyline"))
	}
	// Legend entries, one per traced joint.
	if !strings.Contains(svg, ">a</text>") || !strings.Contains(svg, ">b</text>") {
		t.Error("missing legend entries")
	}
}

func TestTraceSVGSkipsUnknownLabels(t *testing.T) {
	svg := TraceSVG([]string{"ghost"}, map[string][]geom.Point{}, 100, 100)
	if strings.Contains(svg, "<polyline") {
		t.Error("empty path should not produce a polyline")
	}
}

func TestFrameSVG(t *testing.T) {
	l, err := config.Presets["fourbar"].Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := l.SimulateToTime(0); err != nil {
		t.Fatal(err)
	}
	svg := FrameSVG(l, 640, 480)

	// Four bars with a three-joint coupler give five segments.
	if got := strings.Count(svg, "<line"); got != 5 {
		t.Errorf("segments = %d, want 5", got)
	}
	if got := strings.Count(svg, "<circle"); got != 5 {
		t.Errorf("joint circles = %d, want 5", got)
	}
	// The fixed pivot renders in the fixed color.
	if !strings.Contains(svg, `fill="#ff4444"`) {
		t.Error("fixed joint color missing")
	}
	for _, label := range []string{"j1", "j2", "j3", "j4", "j5"} {
		if !strings.Contains(svg, ">"+label+"</text>") {
			t.Errorf("missing label %s", label)
		}
	}
}
