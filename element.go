package main

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned box in logical coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

type Style struct {
	StrokeColor string  `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
	FillColor   string  `json:"fillColor"`
	FontFamily  string  `json:"fontFamily,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
	Opacity     float64 `json:"opacity"`
}

// Geometry is one of RectGeometry, EllipseGeometry, PolygonGeometry,
// CircleGeometry or TextGeometry.
type Geometry interface {
	isGeometry()
}

type RectGeometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type EllipseGeometry struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
}

type PolygonGeometry struct {
	Sides  int     `json:"sides"`
	Radius float64 `json:"radius"`
	Points []Point `json:"points"`
}

type CircleGeometry struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
}

// TextGeometry positions text by its top-left corner.
type TextGeometry struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Content string  `json:"content"`
}

func (RectGeometry) isGeometry()    {}
func (EllipseGeometry) isGeometry() {}
func (PolygonGeometry) isGeometry() {}
func (CircleGeometry) isGeometry()  {}
func (TextGeometry) isGeometry()    {}

type Element struct {
	ID       string
	Kind     ElementKind
	Anchor   Point
	Geometry Geometry
	Style    Style
	// Original holds the pre-highlight style while the element is selected.
	Original *Style
	Selected bool
	// PairID links an icon with its label.
	PairID  string
	Created time.Time
}

// regularPolygon returns sides vertices at radius from center, first vertex
// straight up.
func regularPolygon(center Point, sides int, radius float64) []Point {
	if sides <= 0 {
		return nil
	}
	points := make([]Point, sides)
	for i := 0; i < sides; i++ {
		angle := float64(i)*2*math.Pi/float64(sides) - math.Pi/2
		points[i] = Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return points
}

// textExtent estimates the rendered size of a text run.
func textExtent(content string, fontSize float64) (float64, float64) {
	if fontSize <= 0 {
		fontSize = 16
	}
	n := len([]rune(content))
	if n == 0 {
		n = 1
	}
	return float64(n) * fontSize * 0.6, fontSize
}

func (e *Element) Bounds() Rect {
	switch g := e.Geometry.(type) {
	case RectGeometry:
		return Rect{g.X, g.Y, g.X + g.Width, g.Y + g.Height}
	case EllipseGeometry:
		return Rect{g.CX - g.RX, g.CY - g.RY, g.CX + g.RX, g.CY + g.RY}
	case PolygonGeometry:
		if len(g.Points) == 0 {
			return Rect{e.Anchor.X, e.Anchor.Y, e.Anchor.X, e.Anchor.Y}
		}
		r := Rect{g.Points[0].X, g.Points[0].Y, g.Points[0].X, g.Points[0].Y}
		for _, p := range g.Points[1:] {
			r = r.Union(Rect{p.X, p.Y, p.X, p.Y})
		}
		return r
	case CircleGeometry:
		return Rect{g.CX - g.R, g.CY - g.R, g.CX + g.R, g.CY + g.R}
	case TextGeometry:
		w, h := textExtent(g.Content, e.Style.FontSize)
		return Rect{g.X, g.Y, g.X + w, g.Y + h}
	}
	return Rect{e.Anchor.X, e.Anchor.Y, e.Anchor.X, e.Anchor.Y}
}

func (e *Element) Contains(p Point) bool {
	return e.Bounds().Contains(p)
}

func (e *Element) Translate(dx, dy float64) {
	e.Anchor.X += dx
	e.Anchor.Y += dy
	switch g := e.Geometry.(type) {
	case RectGeometry:
		g.X += dx
		g.Y += dy
		e.Geometry = g
	case EllipseGeometry:
		g.CX += dx
		g.CY += dy
		e.Geometry = g
	case PolygonGeometry:
		moved := make([]Point, len(g.Points))
		for i, p := range g.Points {
			moved[i] = Point{p.X + dx, p.Y + dy}
		}
		g.Points = moved
		e.Geometry = g
	case CircleGeometry:
		g.CX += dx
		g.CY += dy
		e.Geometry = g
	case TextGeometry:
		g.X += dx
		g.Y += dy
		e.Geometry = g
	}
}

// isTextual reports whether highlighting applies to the fill instead of the
// stroke.
func (e *Element) isTextual() bool {
	_, ok := e.Geometry.(TextGeometry)
	return ok
}

func (e *Element) Clone() *Element {
	c := *e
	if e.Original != nil {
		orig := *e.Original
		c.Original = &orig
	}
	if g, ok := e.Geometry.(PolygonGeometry); ok {
		g.Points = append([]Point(nil), g.Points...)
		c.Geometry = g
	}
	return &c
}

type elementRecord struct {
	ID       string           `json:"id"`
	Kind     string           `json:"kind"`
	Anchor   Point            `json:"anchor"`
	Style    Style            `json:"style"`
	Original *Style           `json:"originalStyle,omitempty"`
	Selected bool             `json:"selected"`
	PairID   string           `json:"pairId,omitempty"`
	Created  time.Time        `json:"created"`
	Rect     *RectGeometry    `json:"rect,omitempty"`
	Ellipse  *EllipseGeometry `json:"ellipse,omitempty"`
	Polygon  *PolygonGeometry `json:"polygon,omitempty"`
	Circle   *CircleGeometry  `json:"circle,omitempty"`
	Text     *TextGeometry    `json:"text,omitempty"`
}

func (e Element) MarshalJSON() ([]byte, error) {
	rec := elementRecord{
		ID:       e.ID,
		Kind:     e.Kind.String(),
		Anchor:   e.Anchor,
		Style:    e.Style,
		Original: e.Original,
		Selected: e.Selected,
		PairID:   e.PairID,
		Created:  e.Created,
	}
	switch g := e.Geometry.(type) {
	case RectGeometry:
		rec.Rect = &g
	case EllipseGeometry:
		rec.Ellipse = &g
	case PolygonGeometry:
		rec.Polygon = &g
	case CircleGeometry:
		rec.Circle = &g
	case TextGeometry:
		rec.Text = &g
	default:
		return nil, fmt.Errorf("element %s: unsupported geometry %T", e.ID, e.Geometry)
	}
	return json.Marshal(rec)
}

func (e *Element) UnmarshalJSON(data []byte) error {
	var rec elementRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	kind, ok := parseElementKind(rec.Kind)
	if !ok {
		return fmt.Errorf("element %s: unknown kind %q", rec.ID, rec.Kind)
	}
	var geom Geometry
	switch {
	case rec.Rect != nil:
		geom = *rec.Rect
	case rec.Ellipse != nil:
		geom = *rec.Ellipse
	case rec.Polygon != nil:
		geom = *rec.Polygon
	case rec.Circle != nil:
		geom = *rec.Circle
	case rec.Text != nil:
		geom = *rec.Text
	default:
		return fmt.Errorf("element %s: missing geometry", rec.ID)
	}
	*e = Element{
		ID:       rec.ID,
		Kind:     kind,
		Anchor:   rec.Anchor,
		Geometry: geom,
		Style:    rec.Style,
		Original: rec.Original,
		Selected: rec.Selected,
		PairID:   rec.PairID,
		Created:  rec.Created,
	}
	return nil
}
