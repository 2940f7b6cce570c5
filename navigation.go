package main

import tea "github.com/charmbracelet/bubbletea"

// handlePan pans by whole screen cells from the keyboard. Moving the view
// left shows content further left, the same as dragging the canvas right.
func (m *model) handlePan(key string, speed int) (tea.Model, tea.Cmd) {
	canvas := m.getCanvas()
	if canvas == nil {
		return m, nil
	}
	step := float64(speed)
	switch key {
	case "h", "left", "H", "shift+left":
		canvas.PanBy(step, 0)
	case "l", "right", "L", "shift+right":
		canvas.PanBy(-step, 0)
	case "k", "up", "K", "shift+up":
		canvas.PanBy(0, step)
	case "j", "down", "J", "shift+down":
		canvas.PanBy(0, -step)
	}
	return m, nil
}

// handleKeyZoom zooms around the last pointer position.
func (m *model) handleKeyZoom(dir ZoomDirection) (tea.Model, tea.Cmd) {
	if canvas := m.getCanvas(); canvas != nil {
		canvas.ZoomAt(m.pointerCell(), dir)
	}
	return m, nil
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 8
	default:
		return 2
	}
}

// pointerCell is the centre of the cell the pointer was last seen in.
func (m *model) pointerCell() Point {
	return Point{X: float64(m.pointerX) + 0.5, Y: float64(m.pointerY) + 0.5}
}

func cellCenter(x, y int) Point {
	return Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}
