package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var strokePalette = []string{"#000000", "#8B4513", "#228B22", "#1E90FF", "#FFD700", "#FF69B4", "#808080"}

var fillPalette = append([]string{"none"}, strokePalette...)

var opacitySteps = []float64{1, 0.75, 0.5, 0.25}

var gridSpacings = []float64{25, 50, 100}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeCanvases()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case ModeHelp:
			return m.handleHelpKey(msg.String())
		case ModeTextInput:
			return m.handleTextInputKey(msg)
		case ModeFileInput:
			return m.handleFileInputKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg.String())
		default:
			m.errorMessage = ""
			return m.handleNormalKey(msg.String())
		}
	}
	return m, nil
}

// handleMouse feeds pointer events through the buffer's gesture so a drag
// never also counts as a click.
func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	buf := m.getCurrentBuffer()
	if buf == nil || m.mode != ModeNormal {
		return m, nil
	}
	canvas, g := buf.canvas, buf.gesture

	if msg.Y >= m.canvasHeight() {
		if msg.Action == tea.MouseActionRelease {
			g.Cancel()
		}
		return m, nil
	}
	m.pointerX, m.pointerY = msg.X, msg.Y
	p := cellCenter(msg.X, msg.Y)

	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			canvas.ZoomAt(p, ZoomIn)
			return m, nil
		case tea.MouseButtonWheelDown:
			canvas.ZoomAt(p, ZoomOut)
			return m, nil
		}
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch {
		case msg.Button == tea.MouseButtonMiddle, msg.Button == tea.MouseButtonLeft && msg.Ctrl:
			g.Down(p, GestureDedicatedPan, "")
		case msg.Button == tea.MouseButtonLeft:
			if el := canvas.ElementAtScreen(p); el != nil {
				g.Down(p, GestureMoveElement, el.ID)
			} else {
				g.Down(p, GesturePan, "")
			}
		}
	case tea.MouseActionMotion:
		dx, dy, ok := g.Move(p)
		if !ok {
			return m, nil
		}
		if g.Kind() == GestureMoveElement {
			if err := canvas.MoveElementByScreen(g.Target(), dx, dy); err != nil {
				m.errorMessage = err.Error()
			}
		} else {
			canvas.PanBy(dx, dy)
		}
	case tea.MouseActionRelease:
		g.Up(p)
		if at, ok := g.Click(); ok {
			placed := canvas.Click(at, m.tool)
			if len(placed) > 0 {
				m.successMessage = fmt.Sprintf("Placed %s", m.tool)
			}
		}
	}
	return m, nil
}

func (m *model) handleNormalKey(key string) (tea.Model, tea.Cmd) {
	canvas := m.getCanvas()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.config.Confirmations {
			m.startConfirm(ConfirmQuit, "")
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.mode = ModeHelp
		m.helpScroll = 0
	case "esc":
		m.tool = ToolNone
		canvas.ClearSelection()
		m.successMessage = ""
	case "0":
		m.tool = ToolNone
	case "1":
		m.tool = ToolWall
	case "2":
		m.tool = ToolZoneEllipse
	case "3":
		m.tool = ToolZonePolygon
	case "4":
		m.tool = ToolText
	case "5":
		m.tool = ToolIcon
	case "6":
		m.tool = ToolBackground
	case "<", ">":
		delta := 1
		if key == "<" {
			delta = -1
		}
		d := canvas.Defaults()
		d.SetPolygonSides(d.PolygonSides + delta)
		if el := canvas.Element(canvas.Selected()); el != nil {
			if g, ok := el.Geometry.(PolygonGeometry); ok {
				sides := clampSides(g.Sides + delta)
				m.applyPatch(el.ID, ElementPatch{PolygonSides: &sides})
			}
		}
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		return m.handlePan(key, m.getMoveSpeed(key))
	case "+", "=":
		return m.handleKeyZoom(ZoomIn)
	case "-", "_":
		return m.handleKeyZoom(ZoomOut)
	case "r":
		canvas.Viewport().Reset()
		canvas.changed()
	case "g":
		s := canvas.Grid()
		s.Enabled = !s.Enabled
		canvas.SetGrid(s)
	case "G":
		s := canvas.Grid()
		s.Spacing = nextFloat(gridSpacings, s.Spacing)
		canvas.SetGrid(s)
	case "d", "delete", "backspace":
		if id := canvas.Selected(); id != "" {
			if m.config.Confirmations {
				m.startConfirm(ConfirmDeleteElement, id)
			} else {
				m.deleteElement(id)
			}
		}
	case "[", "]":
		if el := canvas.Element(canvas.Selected()); el != nil {
			w := baseStyle(el).StrokeWidth + 0.5
			if key == "[" {
				w = baseStyle(el).StrokeWidth - 0.5
			}
			if w < 0.5 {
				w = 0.5
			}
			m.applyPatch(el.ID, ElementPatch{StrokeWidth: &w})
		}
	case "c":
		if el := canvas.Element(canvas.Selected()); el != nil {
			col := nextString(strokePalette, baseStyle(el).StrokeColor)
			if el.isTextual() {
				col = nextString(strokePalette, baseStyle(el).FillColor)
				m.applyPatch(el.ID, ElementPatch{FillColor: &col})
			} else {
				m.applyPatch(el.ID, ElementPatch{StrokeColor: &col})
			}
		} else {
			d := canvas.Defaults()
			d.ZoneBorderColor = nextString(strokePalette, d.ZoneBorderColor)
		}
	case "f":
		if el := canvas.Element(canvas.Selected()); el != nil {
			col := nextString(fillPalette, baseStyle(el).FillColor)
			m.applyPatch(el.ID, ElementPatch{FillColor: &col})
		} else {
			d := canvas.Defaults()
			d.ZoneFillColor = nextString(fillPalette, d.ZoneFillColor)
		}
	case "v":
		if el := canvas.Element(canvas.Selected()); el != nil {
			o := nextFloat(opacitySteps, baseStyle(el).Opacity)
			m.applyPatch(el.ID, ElementPatch{Opacity: &o})
		}
	case ",", ".":
		if el := canvas.Element(canvas.Selected()); el != nil && el.isTextual() {
			size := baseStyle(el).FontSize + 2
			if key == "," {
				size = baseStyle(el).FontSize - 2
			}
			if size < 6 {
				size = 6
			}
			m.applyPatch(el.ID, ElementPatch{FontSize: &size})
		}
	case "e":
		if el := canvas.Element(canvas.Selected()); el != nil {
			if g, ok := el.Geometry.(TextGeometry); ok {
				m.mode = ModeTextInput
				m.editText = g.Content
				m.editCursorPos = len([]rune(g.Content))
			}
		}
	case "y":
		if err := m.copySelected(); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Copied"
		}
	case "p":
		if err := m.pasteAt(m.pointerCell()); err != nil {
			m.errorMessage = err.Error()
		}
	case "s":
		m.startFileInput(FileOpSave, false)
	case "S":
		m.startFileInput(FileOpSavePNG, false)
	case "T":
		m.startFileInput(FileOpSaveVisualTXT, false)
	case "o":
		m.startFileInput(FileOpOpen, false)
	case "O":
		m.startFileInput(FileOpOpen, true)
	case "n":
		if m.config.Confirmations {
			m.startConfirm(ConfirmNewCanvas, "")
		} else {
			canvas.Reset()
		}
	case "N":
		m.addNewBuffer("")
		m.resizeCanvases()
	case "x":
		if len(m.buffers) > 1 {
			if m.config.Confirmations {
				m.startConfirm(ConfirmCloseBuffer, "")
			} else {
				m.closeBuffer()
			}
		}
	case "{":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex - 1 + len(m.buffers)) % len(m.buffers)
		}
	case "}":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex + 1) % len(m.buffers)
		}
	}
	return m, nil
}

// baseStyle is the element style without any selection highlight.
func baseStyle(el *Element) Style {
	if el.Original != nil {
		return *el.Original
	}
	return el.Style
}

func (m *model) applyPatch(id string, patch ElementPatch) {
	if err := m.getCanvas().UpdateElementProperties(id, patch); err != nil {
		m.errorMessage = err.Error()
	}
}

func (m *model) deleteElement(id string) {
	if err := m.getCanvas().DeleteElement(id); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = "Deleted"
}

func (m *model) closeBuffer() {
	m.buffers = append(m.buffers[:m.currentBufferIndex], m.buffers[m.currentBufferIndex+1:]...)
	if m.currentBufferIndex >= len(m.buffers) {
		m.currentBufferIndex = len(m.buffers) - 1
	}
	m.resizeCanvases()
}

func nextString(values []string, current string) string {
	for i, v := range values {
		if strings.EqualFold(v, current) {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func nextFloat(values []float64, current float64) float64 {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func (m *model) handleHelpKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		maxScroll := len(helpLines) - (m.height - 1)
		if maxScroll < 0 {
			maxScroll = 0
		}
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.mode = ModeNormal
		m.helpScroll = 0
	}
	return m, nil
}

func (m *model) handleTextInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	runes := []rune(m.editText)
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.editText = ""
		return m, nil
	case tea.KeyEnter:
		content := m.editText
		if id := m.getCanvas().Selected(); id != "" {
			m.applyPatch(id, ElementPatch{Content: &content})
		}
		m.mode = ModeNormal
		m.editText = ""
		return m, nil
	case tea.KeyBackspace:
		if m.editCursorPos > 0 {
			runes = append(runes[:m.editCursorPos-1], runes[m.editCursorPos:]...)
			m.editCursorPos--
		}
	case tea.KeyLeft:
		if m.editCursorPos > 0 {
			m.editCursorPos--
		}
	case tea.KeyRight:
		if m.editCursorPos < len(runes) {
			m.editCursorPos++
		}
	case tea.KeySpace:
		runes = insertRunes(runes, m.editCursorPos, []rune{' '})
		m.editCursorPos++
	case tea.KeyRunes:
		runes = insertRunes(runes, m.editCursorPos, msg.Runes)
		m.editCursorPos += len(msg.Runes)
	}
	m.editText = string(runes)
	return m, nil
}

func insertRunes(runes []rune, at int, add []rune) []rune {
	out := make([]rune, 0, len(runes)+len(add))
	out = append(out, runes[:at]...)
	out = append(out, add...)
	return append(out, runes[at:]...)
}

func (m *model) startFileInput(op FileOperation, newBuffer bool) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.openInNewBuffer = newBuffer
	m.errorMessage = ""
	m.filename = ""
	if buf := m.getCurrentBuffer(); buf != nil && buf.filename != "" {
		m.filename = strings.TrimSuffix(filepath.Base(buf.filename), ".json")
	}
}

func (m *model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.errorMessage = ""
	case tea.KeyEnter:
		if m.filename == "" {
			m.errorMessage = "filename required"
			return m, nil
		}
		path := m.filePath()
		if m.fileOp != FileOpOpen && m.config.Confirmations {
			if _, err := os.Stat(path); err == nil {
				m.startConfirm(ConfirmOverwriteFile, "")
				return m, nil
			}
		}
		m.runFileOp(path)
	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
	}
	return m, nil
}

func (m *model) filePath() string {
	name := m.filename
	ext := ".json"
	switch m.fileOp {
	case FileOpSavePNG:
		ext = ".png"
	case FileOpSaveVisualTXT:
		ext = ".txt"
	}
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	return m.config.GetSavePath(name)
}

func (m *model) runFileOp(path string) {
	var err error
	switch m.fileOp {
	case FileOpSave:
		err = m.getCanvas().SaveToFile(path)
		if err == nil {
			m.getCurrentBuffer().filename = path
			m.successMessage = "Saved " + filepath.Base(path)
		}
	case FileOpSavePNG:
		err = m.getCanvas().ExportToPNG(path)
		if err == nil {
			m.successMessage = "Exported " + filepath.Base(path)
		}
	case FileOpSaveVisualTXT:
		err = m.getCanvas().ExportVisualTXT(path, m.width, m.canvasHeight())
		if err == nil {
			m.successMessage = "Exported " + filepath.Base(path)
		}
	case FileOpOpen:
		err = m.openFile(path, m.openInNewBuffer)
		if err == nil {
			m.successMessage = "Opened " + filepath.Base(path)
		}
	}
	if err != nil {
		m.mode = ModeFileInput
		m.errorMessage = err.Error()
		return
	}
	m.mode = ModeNormal
	m.errorMessage = ""
}

// openFile loads path into the current buffer, or a new one when asked.
// A failed load into a new buffer leaves the buffer list untouched.
func (m *model) openFile(path string, newBuffer bool) error {
	buf := m.newBuffer(path)
	if err := buf.canvas.LoadFromFile(path); err != nil {
		return err
	}
	if newBuffer {
		m.buffers = append(m.buffers, buf)
		m.currentBufferIndex = len(m.buffers) - 1
		m.resizeCanvases()
		return nil
	}
	m.buffers[m.currentBufferIndex] = buf
	m.resizeCanvases()
	return nil
}

func (m *model) startConfirm(action ConfirmAction, elementID string) {
	m.mode = ModeConfirm
	m.confirmAction = action
	m.confirmElementID = elementID
}

func (m *model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmDeleteElement:
			m.deleteElement(m.confirmElementID)
		case ConfirmNewCanvas:
			m.getCanvas().Reset()
			m.getCurrentBuffer().filename = ""
		case ConfirmCloseBuffer:
			m.closeBuffer()
		case ConfirmOverwriteFile:
			m.runFileOp(m.filePath())
		}
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
		} else {
			m.mode = ModeNormal
		}
	}
	m.confirmElementID = ""
	return m, nil
}
