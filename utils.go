package main

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func (m *model) getCurrentBuffer() *Buffer {
	if len(m.buffers) == 0 {
		return nil
	}
	return &m.buffers[m.currentBufferIndex]
}

func (m *model) getCanvas() *Canvas {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.canvas
	}
	return nil
}

func (m *model) newBuffer(filename string) Buffer {
	canvas := NewCanvas(m.config)
	m.wireCanvas(canvas)
	if m.width > 0 {
		canvas.Viewport().Resize(float64(m.width), float64(m.canvasHeight()))
	}
	return Buffer{
		canvas:   canvas,
		gesture:  NewGesture(m.config.DragThreshold),
		filename: filename,
	}
}

func (m *model) addNewBuffer(filename string) {
	m.buffers = append(m.buffers, m.newBuffer(filename))
	m.currentBufferIndex = len(m.buffers) - 1
}

// wireCanvas connects the canvas notifications to the status line.
func (m *model) wireCanvas(c *Canvas) {
	c.OnSelectionChange(func(id string) {
		if id == "" {
			m.successMessage = ""
			return
		}
		if el := c.Element(id); el != nil {
			m.successMessage = fmt.Sprintf("Selected %s", el.Kind)
		}
	})
	c.OnChange(func(s Snapshot) {
		m.lastSnapshot = s
	})
}

// canvasHeight leaves room for the status and property lines and, with more
// than one buffer, the buffer bar.
func (m *model) canvasHeight() int {
	reserved := 2
	if len(m.buffers) > 1 {
		reserved = 3
	}
	h := m.height - reserved
	if h < 1 {
		h = 1
	}
	return h
}

func (m *model) resizeCanvases() {
	for i := range m.buffers {
		m.buffers[i].canvas.Viewport().Resize(float64(m.width), float64(m.canvasHeight()))
	}
}

// copySelected puts the selected element, highlight removed, on the clipboard.
func (m *model) copySelected() error {
	canvas := m.getCanvas()
	el := canvas.Element(canvas.Selected())
	if el == nil {
		return fmt.Errorf("nothing selected")
	}
	cp := el.Clone()
	unhighlight(cp)
	data, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	return clipboard.WriteAll(string(data))
}

// pasteAt places a copy of the clipboard element with its anchor at the
// given screen cell.
func (m *model) pasteAt(screen Point) error {
	canvas := m.getCanvas()
	at, ok := canvas.Viewport().ScreenToLogical(screen)
	if !ok {
		return nil
	}
	text, err := readClipboardText()
	if err != nil {
		return err
	}
	var el Element
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &el); err != nil {
		return fmt.Errorf("clipboard does not hold an element")
	}
	el.ID = newElementID(el.Kind)
	el.PairID = ""
	el.Selected = false
	el.Original = nil
	el.Translate(at.X-el.Anchor.X, at.Y-el.Anchor.Y)
	canvas.Add(&el)
	return nil
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
		if output, err := exec.Command("pbpaste").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}
