package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle   = lipgloss.NewStyle().Reverse(true)
	propertyStyle = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	bufferStyle   = lipgloss.NewStyle().Padding(0, 1)
	activeBuffer  = bufferStyle.Copy().Reverse(true)
)

var helpLines = []string{
	"plotterm help",
	"=============",
	"",
	"Mouse:",
	"  click            Select element / place current tool on empty canvas",
	"  drag background  Pan (also middle button or ctrl+drag anywhere)",
	"  drag element     Move element",
	"  wheel            Zoom around the pointer",
	"",
	"Tools:",
	"  1 wall  2 ellipse zone  3 polygon zone  4 text  5 icon  6 background",
	"  0                No tool",
	"  < / >            Polygon sides (3-100)",
	"  c / f            Zone border / fill colour (no selection)",
	"",
	"View:",
	"  h/j/k/l/arrows   Pan (shift for faster)",
	"  + / -            Zoom in / out at pointer",
	"  r                Reset view",
	"  g / G            Toggle grid / cycle spacing",
	"",
	"Selected element:",
	"  c                Cycle stroke colour (text: text colour)",
	"  f                Cycle fill colour",
	"  [ / ]            Stroke width",
	"  , / .            Font size (text)",
	"  v                Cycle opacity",
	"  e                Edit text",
	"  d                Delete",
	"  y / p            Copy / paste at pointer",
	"",
	"Files and buffers:",
	"  s                Save canvas (.json)",
	"  S                Export PNG",
	"  T                Export the current view as text",
	"  o / O            Open in this / a new buffer",
	"  n                New canvas",
	"  N                New buffer",
	"  { / }            Previous / next buffer",
	"  x                Close buffer",
	"",
	"  esc              Clear selection and tool",
	"  ?                Toggle this help",
	"  q / ctrl+c       Quit",
}

func (m *model) View() string {
	if m.mode == ModeHelp {
		return m.helpView()
	}
	canvas := m.getCanvas()
	if canvas == nil || m.width < 1 {
		return ""
	}

	var b strings.Builder
	for _, line := range canvas.Render(m.width, m.canvasHeight()) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.buffers) > 1 {
		b.WriteString(m.renderBufferBar())
		b.WriteString("\n")
	}
	b.WriteString(propertyStyle.Render(truncate(m.propertyLine(), m.width)))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m *model) renderBufferBar() string {
	parts := make([]string, len(m.buffers))
	for i, buf := range m.buffers {
		name := "untitled"
		if buf.filename != "" {
			name = filepath.Base(buf.filename)
		}
		label := fmt.Sprintf("%d:%s", i+1, name)
		if i == m.currentBufferIndex {
			parts[i] = activeBuffer.Render(label)
		} else {
			parts[i] = bufferStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// propertyLine shows the selected element's editable properties.
func (m *model) propertyLine() string {
	canvas := m.getCanvas()
	el := canvas.Element(canvas.Selected())
	if el == nil {
		d := canvas.Defaults()
		return fmt.Sprintf("Tool: %s | Zone border %s fill %s | Sides %d",
			m.tool, d.ZoneBorderColor, d.ZoneFillColor, d.PolygonSides)
	}
	s := baseStyle(el)
	line := fmt.Sprintf("%s %s | stroke %s w%.1f | fill %s | opacity %.2f",
		el.Kind, shortID(el.ID), s.StrokeColor, s.StrokeWidth, s.FillColor, s.Opacity)
	switch g := el.Geometry.(type) {
	case TextGeometry:
		line += fmt.Sprintf(" | %q %s %.0f", g.Content, s.FontFamily, s.FontSize)
	case PolygonGeometry:
		line += fmt.Sprintf(" | sides %d", g.Sides)
	}
	return line
}

func shortID(id string) string {
	if len(id) > 20 {
		return id[:20] + "…"
	}
	return id
}

func (m *model) statusLine() string {
	var status string
	switch m.mode {
	case ModeTextInput:
		runes := []rune(m.editText)
		pos := m.editCursorPos
		if pos > len(runes) {
			pos = len(runes)
		}
		display := string(runes[:pos]) + "│" + string(runes[pos:])
		status = fmt.Sprintf("Mode: TEXT | %s | Enter=apply, Esc=cancel", display)
	case ModeFileInput:
		var op string
		switch m.fileOp {
		case FileOpSave:
			op = "Save"
		case FileOpSavePNG:
			op = "Export PNG"
		case FileOpSaveVisualTXT:
			op = "Export text"
		case FileOpOpen:
			op = "Open"
		}
		status = fmt.Sprintf("Mode: FILE | %s filename: %s | Enter=confirm, Esc=cancel", op, m.filename)
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmDeleteElement:
			message = "Delete this element? (y/n)"
		case ConfirmQuit:
			message = "Quit plotterm? (y/n)"
		case ConfirmNewCanvas:
			message = "Clear canvas? Unsaved changes will be lost. (y/n)"
		case ConfirmCloseBuffer:
			message = "Close current buffer? Unsaved changes will be lost. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
		}
		status = "Mode: CONFIRM | " + message
	default:
		canvas := m.getCanvas()
		vp := canvas.Viewport().Viewport()
		status = fmt.Sprintf("Mode: NORMAL | Zoom %.0f%%", 100*canvas.Viewport().initialWidth/vp.Width)
		if p, ok := canvas.Viewport().ScreenToLogical(m.pointerCell()); ok {
			status += fmt.Sprintf(" | (%.0f, %.0f)", p.X, p.Y)
		}
		if m.successMessage != "" {
			status += " | " + m.successMessage
		} else if m.errorMessage == "" {
			status += " | ? for help | q to quit"
		}
	}
	status = statusStyle.Render(truncate(status, m.width))
	if m.errorMessage != "" {
		status += " " + errorStyle.Render("ERROR: "+m.errorMessage)
	}
	return status
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width > 0 && len(r) > width {
		return string(r[:width])
	}
	return s
}

func (m *model) helpView() string {
	visible := m.height - 1
	if visible < 1 {
		visible = 1
	}
	start := m.helpScroll
	if start > len(helpLines) {
		start = len(helpLines)
	}
	end := start + visible
	if end > len(helpLines) {
		end = len(helpLines)
	}
	return strings.Join(helpLines[start:end], "\n") + "\n" + statusStyle.Render("j/k scroll, any other key closes help")
}
