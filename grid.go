package main

import "math"

type GridSettings struct {
	Enabled bool    `json:"enabled"`
	Spacing float64 `json:"spacing"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

func defaultGridSettings() GridSettings {
	return GridSettings{
		Enabled: true,
		Spacing: 50,
		Color:   "#cccccc",
		Opacity: 0.5,
	}
}

// Segment is a grid line in logical coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// maxGridLines bounds the segments RenderGrid returns. Denser grids are
// coarsened by doubling the spacing, so lines stay on multiples of it.
const maxGridLines = 2000

// minGridSpacing is the smallest spacing accepted from configuration.
const minGridSpacing = 1.0

// RenderGrid returns the grid lines covering vp plus max(width, height) on
// every side, snapped outward to the spacing.
func RenderGrid(vp Viewport, s GridSettings) []Segment {
	if !s.Enabled || s.Spacing <= 0 || vp.Width <= 0 || vp.Height <= 0 {
		return nil
	}
	extra := math.Max(vp.Width, vp.Height)
	spacing := s.Spacing
	var startX, endX, startY, endY float64
	var cols, rows int
	for {
		startX = math.Floor((vp.OriginX-extra)/spacing) * spacing
		endX = math.Ceil((vp.OriginX+vp.Width+extra)/spacing) * spacing
		startY = math.Floor((vp.OriginY-extra)/spacing) * spacing
		endY = math.Ceil((vp.OriginY+vp.Height+extra)/spacing) * spacing
		// Compare as floats first so a tiny spacing cannot overflow int.
		fc := (endX-startX)/spacing + 1
		fr := (endY-startY)/spacing + 1
		if math.IsNaN(fc+fr) || math.IsInf(spacing, 0) {
			return nil
		}
		if fc+fr <= maxGridLines {
			cols = int(math.Round(fc))
			rows = int(math.Round(fr))
			break
		}
		spacing *= 2
	}

	segments := make([]Segment, 0, cols+rows)
	// Step by index so float error cannot drop the last line.
	for i := 0; i < cols; i++ {
		x := startX + float64(i)*spacing
		segments = append(segments, Segment{x, startY, x, endY})
	}
	for i := 0; i < rows; i++ {
		y := startY + float64(i)*spacing
		segments = append(segments, Segment{startX, y, endX, y})
	}
	return segments
}

func (s GridSettings) normalized() GridSettings {
	if s.Opacity < 0 {
		s.Opacity = 0
	}
	if s.Opacity > 1 {
		s.Opacity = 1
	}
	if s.Color == "" {
		s.Color = defaultGridSettings().Color
	}
	return s
}
