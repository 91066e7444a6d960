package viz

import (
	"strings"
	"testing"

	"github.com/kinemech/linksim/internal/geom"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	if c.Grid[0][0] != 0x2800|0x1 {
		t.Errorf("top-left dot = %U", c.Grid[0][0])
	}
	c.Set(3, 3)
	if c.Grid[0][1] != 0x2800|0x80 {
		t.Errorf("bottom-right dot = %U", c.Grid[0][1])
	}
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 100)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("out-of-bounds set touched the grid: %U", r)
			}
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Line(0, 0, 5, 11)
	c.Clear()
	if strings.ContainsFunc(c.String(), func(r rune) bool {
		return r != 0x2800 && r != '\n'
	}) {
		t.Error("clear left dots behind")
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Line(0, 0, 7, 7)
	// A diagonal visits one sub-pixel per column.
	for i := 0; i <= 7; i++ {
		col, row := i/2, i/4
		if c.Grid[row][col] == 0x2800 {
			t.Errorf("cell (%d, %d) empty after diagonal line", row, col)
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	s := c.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("rows = %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 3 {
			t.Errorf("row width = %d", len([]rune(line)))
		}
	}
}

func TestFitViewport(t *testing.T) {
	v := FitViewport([]geom.Point{geom.Pt(1, 2), geom.Pt(5, -3)}, 1)
	if v.MinX != 0 || v.MaxX != 6 || v.MinY != -4 || v.MaxY != 3 {
		t.Errorf("viewport = %+v", v)
	}

	v = FitViewport(nil, 1)
	if v.MinX != -1 || v.MaxX != 1 {
		t.Errorf("empty viewport = %+v", v)
	}
}

func TestViewportInclude(t *testing.T) {
	v := FitViewport([]geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}, 0)
	v = v.Include(geom.Pt(5, -2))
	if v.MaxX != 5 || v.MinY != -2 {
		t.Errorf("viewport = %+v", v)
	}
}

func TestProjectCorners(t *testing.T) {
	c := NewCanvas(10, 5)
	v := Viewport{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}

	// World bottom-left maps to canvas bottom-left (y flipped).
	x, y := v.project(c, geom.Pt(0, 0))
	if x != 0 || y != c.Height*4-1 {
		t.Errorf("bottom-left = (%d, %d)", x, y)
	}
	x, y = v.project(c, geom.Pt(10, 10))
	if x != c.Width*2-1 || y != 0 {
		t.Errorf("top-right = (%d, %d)", x, y)
	}
}

func TestDrawTrace(t *testing.T) {
	c := NewCanvas(8, 4)
	v := Viewport{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	DrawTrace(c, []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}, v)
	if !strings.ContainsFunc(c.String(), func(r rune) bool {
		return r != 0x2800 && r != '\n'
	}) {
		t.Error("trace drew nothing")
	}
}
