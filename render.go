package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

type cell struct {
	ch    rune
	color string
}

type surface struct {
	width, height int
	cells         [][]cell
}

func newSurface(width, height int) *surface {
	cells := make([][]cell, height)
	for y := range cells {
		cells[y] = make([]cell, width)
		for x := range cells[y] {
			cells[y][x] = cell{ch: ' '}
		}
	}
	return &surface{width: width, height: height, cells: cells}
}

func (s *surface) set(x, y int, ch rune, color string) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.cells[y][x] = cell{ch: ch, color: color}
}

func (s *surface) line(x0, y0, x1, y1 int, ch rune, color string) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		s.set(x0, y0, ch, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Render rasterises the canvas into width x height terminal lines. One
// terminal cell is one screen pixel of the viewport.
func (c *Canvas) Render(width, height int) []string {
	if width < 1 || height < 1 {
		return nil
	}
	return c.rasterize(width, height).lines()
}

func (c *Canvas) rasterize(width, height int) *surface {
	surf := newSurface(width, height)
	if !c.viewport.Ready() {
		return surf
	}
	vp := c.viewport.Viewport()
	sw, sh := c.viewport.ScreenSize()
	toScreen := func(p Point) (int, int) {
		s := logicalToScreen(vp, p, sw, sh)
		return int(math.Floor(s.X)), int(math.Floor(s.Y))
	}

	c.renderGrid(surf, vp, toScreen)
	for _, el := range c.elements {
		renderElement(surf, el, toScreen)
	}
	return surf
}

func (c *Canvas) renderGrid(surf *surface, vp Viewport, toScreen func(Point) (int, int)) {
	segments := RenderGrid(vp, c.grid)
	if len(segments) == 0 {
		return
	}
	color := gridTerminalColor(c.grid)
	for _, seg := range segments {
		x0, y0 := toScreen(Point{seg.X1, seg.Y1})
		x1, y1 := toScreen(Point{seg.X2, seg.Y2})
		if seg.X1 == seg.X2 {
			if x0 < 0 || x0 >= surf.width {
				continue
			}
			for y := max(0, min(y0, y1)); y < min(surf.height, max(y0, y1)+1); y++ {
				surf.set(x0, y, '┊', color)
			}
			continue
		}
		if y0 < 0 || y0 >= surf.height {
			continue
		}
		for x := max(0, min(x0, x1)); x < min(surf.width, max(x0, x1)+1); x++ {
			if surf.cells[y0][x].ch == '┊' {
				surf.set(x, y0, '┼', color)
			} else {
				surf.set(x, y0, '┈', color)
			}
		}
	}
}

// gridTerminalColor fades the grid colour towards the terminal background by
// the configured opacity.
func gridTerminalColor(s GridSettings) string {
	col, err := colorful.Hex(expandHex(s.Color))
	if err != nil {
		return ""
	}
	black := colorful.Color{R: 0, G: 0, B: 0}
	return black.BlendRgb(col, s.Opacity).Clamped().Hex()
}

func strokeRune(kind ElementKind) rune {
	switch kind {
	case KindWall:
		return '█'
	case KindZone:
		return '*'
	case KindIcon:
		return 'o'
	case KindBackground:
		return '+'
	default:
		return '•'
	}
}

func renderElement(surf *surface, el *Element, toScreen func(Point) (int, int)) {
	stroke := el.Style.StrokeColor
	if !validColor(stroke) || strings.EqualFold(stroke, "none") {
		stroke = ""
	}
	ch := strokeRune(el.Kind)

	switch g := el.Geometry.(type) {
	case RectGeometry:
		x0, y0 := toScreen(Point{g.X, g.Y})
		x1, y1 := toScreen(Point{g.X + g.Width, g.Y + g.Height})
		if el.Kind == KindBackground {
			fill := el.Style.FillColor
			if !validColor(fill) || strings.EqualFold(fill, "none") {
				fill = ""
			}
			for y := max(0, y0); y <= min(surf.height-1, y1); y++ {
				for x := max(0, x0); x <= min(surf.width-1, x1); x++ {
					surf.set(x, y, '░', fill)
				}
			}
		}
		if el.Kind == KindWall {
			for y := max(0, y0); y <= min(surf.height-1, y1); y++ {
				surf.line(x0, y, x1, y, ch, stroke)
			}
			return
		}
		polyline(surf, []Point{{g.X, g.Y}, {g.X + g.Width, g.Y}, {g.X + g.Width, g.Y + g.Height}, {g.X, g.Y + g.Height}}, toScreen, ch, stroke)
	case PolygonGeometry:
		polyline(surf, g.Points, toScreen, ch, stroke)
	case EllipseGeometry:
		ellipse(surf, g.CX, g.CY, g.RX, g.RY, toScreen, ch, stroke)
	case CircleGeometry:
		ellipse(surf, g.CX, g.CY, g.R, g.R, toScreen, ch, stroke)
	case TextGeometry:
		fill := el.Style.FillColor
		if !validColor(fill) || strings.EqualFold(fill, "none") {
			fill = ""
		}
		x, y := toScreen(Point{g.X, g.Y})
		for i, r := range []rune(g.Content) {
			surf.set(x+i, y, r, fill)
		}
	}
}

// polyline draws a closed outline through points.
func polyline(surf *surface, points []Point, toScreen func(Point) (int, int), ch rune, color string) {
	for i := range points {
		next := points[(i+1)%len(points)]
		x0, y0 := toScreen(points[i])
		x1, y1 := toScreen(next)
		surf.line(x0, y0, x1, y1, ch, color)
	}
}

func ellipse(surf *surface, cx, cy, rx, ry float64, toScreen func(Point) (int, int), ch rune, color string) {
	x0, y0 := toScreen(Point{cx - rx, cy - ry})
	x1, y1 := toScreen(Point{cx + rx, cy + ry})
	steps := 2 * (abs(x1-x0) + abs(y1-y0))
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		x, y := toScreen(Point{cx + rx*math.Cos(a), cy + ry*math.Sin(a)})
		surf.set(x, y, ch, color)
	}
}

// lines joins runs of equally coloured cells into lipgloss-styled strings.
func (s *surface) lines() []string {
	out := make([]string, s.height)
	for y, row := range s.cells {
		var b strings.Builder
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.color != runColor {
				flush()
				runColor = c.color
			}
			run.WriteRune(c.ch)
		}
		flush()
		out[y] = b.String()
	}
	return out
}

// plain returns the surface text without colour.
func (s *surface) plain() []string {
	out := make([]string, s.height)
	for y, row := range s.cells {
		runes := make([]rune, len(row))
		for x, c := range row {
			runes[x] = c.ch
		}
		out[y] = string(runes)
	}
	return out
}
