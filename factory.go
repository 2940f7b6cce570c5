package main

import (
	"time"

	"github.com/google/uuid"
)

// ToolDefaults are the live style settings read at placement time.
type ToolDefaults struct {
	ZoneBorderColor string
	ZoneFillColor   string
	PolygonSides    int
	TextContent     string
	FontFamily      string
	FontSize        float64
}

func defaultToolDefaults() ToolDefaults {
	return ToolDefaults{
		ZoneBorderColor: "#228B22",
		ZoneFillColor:   "none",
		PolygonSides:    defaultPolygonSides,
		TextContent:     "Sample Text",
		FontFamily:      "Arial",
		FontSize:        16,
	}
}

// SetPolygonSides clamps n to the supported range.
func (d *ToolDefaults) SetPolygonSides(n int) {
	d.PolygonSides = clampSides(n)
}

func clampSides(n int) int {
	if n < minPolygonSides {
		return minPolygonSides
	}
	if n > maxPolygonSides {
		return maxPolygonSides
	}
	return n
}

type PrimitiveFactory struct {
	newID func(kind ElementKind) string
	now   func() time.Time
}

func NewPrimitiveFactory() *PrimitiveFactory {
	return &PrimitiveFactory{
		newID: newElementID,
		now:   time.Now,
	}
}

// newElementID uses UUIDv7 so ids sort by creation time and stay distinct
// within the same millisecond.
func newElementID(kind ElementKind) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return kind.idPrefix() + "-" + id.String()
}

// Place builds the elements a tool creates at p. p must already be in
// logical coordinates. Unknown tools create nothing.
func (f *PrimitiveFactory) Place(tool Tool, p Point, d ToolDefaults) []*Element {
	created := f.now()
	switch tool {
	case ToolWall:
		return []*Element{{
			ID:     f.newID(KindWall),
			Kind:   KindWall,
			Anchor: p,
			Geometry: RectGeometry{
				X:      p.X - wallLength/2,
				Y:      p.Y - wallThickness/2,
				Width:  wallLength,
				Height: wallThickness,
			},
			Style:   Style{StrokeColor: "#8B4513", StrokeWidth: 2, FillColor: "none", Opacity: 1},
			Created: created,
		}}
	case ToolZoneEllipse:
		return []*Element{{
			ID:       f.newID(KindZone),
			Kind:     KindZone,
			Anchor:   p,
			Geometry: EllipseGeometry{CX: p.X, CY: p.Y, RX: zoneRadiusX, RY: zoneRadiusY},
			Style:    zoneStyle(d),
			Created:  created,
		}}
	case ToolZonePolygon:
		return []*Element{{
			ID:     f.newID(KindZone),
			Kind:   KindZone,
			Anchor: p,
			Geometry: PolygonGeometry{
				Sides:  d.PolygonSides,
				Radius: polygonRadius,
				Points: regularPolygon(p, d.PolygonSides, polygonRadius),
			},
			Style:   zoneStyle(d),
			Created: created,
		}}
	case ToolText:
		return []*Element{{
			ID:       f.newID(KindText),
			Kind:     KindText,
			Anchor:   p,
			Geometry: TextGeometry{X: p.X, Y: p.Y, Content: d.TextContent},
			Style:    textStyle(d),
			Created:  created,
		}}
	case ToolIcon:
		icon := &Element{
			ID:       f.newID(KindIcon),
			Kind:     KindIcon,
			Anchor:   p,
			Geometry: CircleGeometry{CX: p.X, CY: p.Y, R: iconRadius},
			Style:    Style{StrokeColor: "#000000", StrokeWidth: 2, FillColor: "#FFD700", Opacity: 1},
			Created:  created,
		}
		at := Point{p.X + iconLabelOffsetX, p.Y + iconLabelOffsetY}
		label := &Element{
			ID:       f.newID(KindIconLabel),
			Kind:     KindIconLabel,
			Anchor:   at,
			Geometry: TextGeometry{X: at.X, Y: at.Y, Content: "i"},
			Style:    textStyle(d),
			PairID:   icon.ID,
			Created:  created,
		}
		icon.PairID = label.ID
		return []*Element{icon, label}
	case ToolBackground:
		return []*Element{{
			ID:     f.newID(KindBackground),
			Kind:   KindBackground,
			Anchor: p,
			Geometry: RectGeometry{
				X:      p.X - backgroundWidth/2,
				Y:      p.Y - backgroundHeight/2,
				Width:  backgroundWidth,
				Height: backgroundHeight,
			},
			Style:   Style{StrokeColor: "#cccccc", StrokeWidth: 1, FillColor: "#f0f0f0", Opacity: 0.5},
			Created: created,
		}}
	}
	return nil
}

func zoneStyle(d ToolDefaults) Style {
	fill := d.ZoneFillColor
	if fill == "" {
		fill = "none"
	}
	return Style{StrokeColor: d.ZoneBorderColor, StrokeWidth: 2, FillColor: fill, Opacity: 1}
}

func textStyle(d ToolDefaults) Style {
	return Style{
		StrokeColor: "none",
		FillColor:   "#000000",
		FontFamily:  d.FontFamily,
		FontSize:    d.FontSize,
		Opacity:     1,
	}
}
