package viz

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kinemech/linksim/internal/linkage"
)

const (
	liveWidth  = 70
	liveHeight = 22
	frameTime  = time.Second / 30
)

type tickMsg time.Time

// LiveModel animates a linkage in the terminal, advancing normalized time
// each frame and redrawing the mechanism on a braille canvas.
type LiveModel struct {
	name    string
	link    *linkage.Linkage
	canvas  *Canvas
	view    Viewport
	t       float64
	step    float64
	paused  bool
	lastErr error
}

// NewLiveModel prepares a live view. viewport should already cover the full
// motion cycle so the drawing does not jump between frames.
func NewLiveModel(name string, l *linkage.Linkage, viewport Viewport) *LiveModel {
	return &LiveModel{
		name:   name,
		link:   l,
		canvas: NewCanvas(liveWidth, liveHeight),
		view:   viewport,
		step:   0.005,
	}
}

func (m *LiveModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameTime, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+", "=":
			m.step = math.Min(m.step*1.5, 0.05)
		case "-":
			m.step = math.Max(m.step/1.5, 0.0005)
		case "r":
			m.t = 0
		}
		return m, nil
	case tickMsg:
		if !m.paused {
			m.t += m.step
			if m.t > 1 {
				m.t -= 1
			}
			m.lastErr = m.link.SimulateToTime(m.t)
		}
		return m, tick()
	}
	return m, nil
}

func (m *LiveModel) View() string {
	m.canvas.Clear()
	DrawLinkage(m.canvas, m.link, m.view)

	status := fmt.Sprintf("%s  %s  %s",
		Label.Render("t=")+Value.Render(fmt.Sprintf("%.3f", m.t)),
		Label.Render("step=")+Value.Render(fmt.Sprintf("%.4f", m.step)),
		Subtle.Render("space pause  +/- speed  r rewind  q quit"))
	if m.paused {
		status += "  " + Subtle.Render("[paused]")
	}
	if m.lastErr != nil {
		status += "\n" + ErrStyle.Render(m.lastErr.Error())
	}

	return Title.Render(m.name) + "\n" + Panel.Render(m.canvas.String()) + "\n" + status + "\n"
}

// RunLive blocks running the animation until the user quits.
func RunLive(name string, l *linkage.Linkage, viewport Viewport) error {
	_, err := tea.NewProgram(NewLiveModel(name, l, viewport)).Run()
	return err
}
