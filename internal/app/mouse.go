package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vidctl/internal/gesture"
	"github.com/llehouerou/vidctl/internal/ui"
	"github.com/llehouerou/vidctl/internal/ui/playerbar"
	"github.com/llehouerou/vidctl/internal/ui/videoview"
)

// handleMouseMsg feeds left-button presses on the video area to the
// gesture interpreter. Presses on the controls bar only show the controls.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := cellPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if !m.inVideoArea(msg.Y) {
			m.Service.ShowControls()
			return m, nil
		}
		m.pointerDown = true
		m.Service.PointerDown(p)

	case tea.MouseActionMotion:
		if m.pointerDown {
			m.Service.PointerMove(p)
		}

	case tea.MouseActionRelease:
		if !m.pointerDown {
			return m, nil
		}
		m.pointerDown = false
		if !m.inVideoArea(msg.Y) {
			m.Service.PointerCancel()
			return m, nil
		}
		m.Service.PointerUp(p)
	}
	return m, nil
}

// inVideoArea reports whether row y is above the controls bar.
func (m Model) inVideoArea(y int) bool {
	bottom := m.Height
	if videoview.BarVisible(m.Service.State()) {
		bottom -= playerbar.Height()
	}
	return y >= 0 && y < bottom
}

// cellPoint converts a terminal cell to logical units at the cell center.
func cellPoint(x, y int) gesture.Point {
	return gesture.Point{
		X: (float64(x) + 0.5) * ui.CellWidthUnits,
		Y: (float64(y) + 0.5) * ui.CellHeightUnits,
	}
}
