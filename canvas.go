package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	ErrElementNotFound = errors.New("element not found")
	ErrNothingToExport = errors.New("nothing to export")
	ErrInvalidSnapshot = errors.New("invalid canvas snapshot")
)

// Snapshot is the state handed to observers after every change.
type Snapshot struct {
	Elements  []Element `json:"elements"`
	Selection string    `json:"selection"`
	Viewport  Viewport  `json:"viewport"`
}

// Canvas is one editing session. It owns the element list and the viewport;
// nothing is shared between canvases.
type Canvas struct {
	elements  []*Element
	viewport  *ViewportController
	grid      GridSettings
	selection SelectionManager
	factory   *PrimitiveFactory
	defaults  ToolDefaults
	onChange  func(Snapshot)
}

func NewCanvas(cfg *Config) *Canvas {
	if cfg == nil {
		cfg = defaultConfig()
	}
	c := &Canvas{
		viewport: NewViewportController(cfg.CanvasWidth, cfg.CanvasHeight, cfg.ZoomStep),
		grid:     cfg.Grid.normalized(),
		factory:  NewPrimitiveFactory(),
		defaults: defaultToolDefaults(),
	}
	c.defaults.SetPolygonSides(cfg.PolygonSides)
	return c
}

func (c *Canvas) Viewport() *ViewportController { return c.viewport }
func (c *Canvas) Grid() GridSettings            { return c.grid }
func (c *Canvas) Defaults() *ToolDefaults       { return &c.defaults }
func (c *Canvas) Selected() string              { return c.selection.Selected() }

func (c *Canvas) OnChange(fn func(Snapshot)) {
	c.onChange = fn
}

func (c *Canvas) OnSelectionChange(fn func(id string)) {
	c.selection.OnChange(fn)
}

func (c *Canvas) changed() {
	if c.onChange != nil {
		c.onChange(c.Snapshot())
	}
}

func (c *Canvas) SetGrid(s GridSettings) {
	c.grid = s.normalized()
	c.changed()
}

func (c *Canvas) Elements() []*Element {
	return c.elements
}

func (c *Canvas) Element(id string) *Element {
	if id == "" {
		return nil
	}
	for _, el := range c.elements {
		if el.ID == id {
			return el
		}
	}
	return nil
}

// ElementAt returns the top-most element whose bounds contain p.
func (c *Canvas) ElementAt(p Point) *Element {
	for i := len(c.elements) - 1; i >= 0; i-- {
		if c.elements[i].Contains(p) {
			return c.elements[i]
		}
	}
	return nil
}

// ElementAtScreen hit-tests a screen point.
func (c *Canvas) ElementAtScreen(screen Point) *Element {
	p, ok := c.viewport.ScreenToLogical(screen)
	if !ok {
		return nil
	}
	return c.ElementAt(p)
}

// Click handles a pointer click: it selects what is under the pointer, or
// clears the selection and places the current tool on empty canvas.
func (c *Canvas) Click(screen Point, tool Tool) []*Element {
	p, ok := c.viewport.ScreenToLogical(screen)
	if !ok {
		return nil
	}
	if c.selection.SelectAt(c, p) != "" {
		c.changed()
		return nil
	}
	placed := c.Place(tool, p)
	if len(placed) == 0 {
		c.changed()
	}
	return placed
}

// Place adds the elements for tool at logical point p.
func (c *Canvas) Place(tool Tool, p Point) []*Element {
	placed := c.factory.Place(tool, p, c.defaults)
	if len(placed) == 0 {
		return nil
	}
	c.Add(placed...)
	log.Printf("%s element created at (%.1f, %.1f)", tool, p.X, p.Y)
	return placed
}

// Add appends elements on top of the existing ones as one change.
func (c *Canvas) Add(els ...*Element) {
	if len(els) == 0 {
		return
	}
	c.elements = append(c.elements, els...)
	c.changed()
}

func (c *Canvas) Select(id string) {
	c.selection.Select(c, id)
	c.changed()
}

func (c *Canvas) ClearSelection() {
	c.selection.Clear(c)
	c.changed()
}

func (c *Canvas) DeleteElement(id string) error {
	idx := -1
	for i, el := range c.elements {
		if el.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("delete %q: %w", id, ErrElementNotFound)
	}
	removed := c.elements[idx]
	c.elements = append(c.elements[:idx], c.elements[idx+1:]...)
	if pair := c.Element(removed.PairID); pair != nil {
		pair.PairID = ""
	}
	if c.selection.Selected() == id {
		c.selection.forget()
	}
	c.changed()
	return nil
}

// MoveElement translates an element by a logical delta. An icon and its
// label move together.
func (c *Canvas) MoveElement(id string, dx, dy float64) error {
	el := c.Element(id)
	if el == nil {
		return fmt.Errorf("move %q: %w", id, ErrElementNotFound)
	}
	el.Translate(dx, dy)
	if pair := c.Element(el.PairID); pair != nil {
		pair.Translate(dx, dy)
	}
	c.changed()
	return nil
}

// ElementPatch carries a partial property update. Nil fields are left
// alone.
type ElementPatch struct {
	StrokeColor  *string
	StrokeWidth  *float64
	FillColor    *string
	FontFamily   *string
	FontSize     *float64
	Opacity      *float64
	Content      *string
	PolygonSides *int
}

// UpdateElementProperties merges patch into the element with the given id.
// For a highlighted element the patch lands in the stored original style
// and the highlight is reapplied, so deselecting keeps the edit.
func (c *Canvas) UpdateElementProperties(id string, patch ElementPatch) error {
	el := c.Element(id)
	if el == nil {
		return fmt.Errorf("update %q: %w", id, ErrElementNotFound)
	}
	for _, col := range []*string{patch.StrokeColor, patch.FillColor} {
		if col != nil && !validColor(*col) {
			return fmt.Errorf("update %q: invalid color %q", id, *col)
		}
	}
	if patch.StrokeWidth != nil && *patch.StrokeWidth < 0 {
		return fmt.Errorf("update %q: negative stroke width", id)
	}
	if patch.FontSize != nil && *patch.FontSize <= 0 {
		return fmt.Errorf("update %q: font size must be positive", id)
	}

	target := &el.Style
	if el.Original != nil {
		target = el.Original
	}
	applyStylePatch(target, patch)
	if el.Original != nil {
		el.Style = *el.Original
		applyHighlight(el)
	}

	switch g := el.Geometry.(type) {
	case TextGeometry:
		if patch.Content != nil {
			g.Content = *patch.Content
			el.Geometry = g
		}
	case PolygonGeometry:
		if patch.PolygonSides != nil {
			g.Sides = clampSides(*patch.PolygonSides)
			g.Points = regularPolygon(el.Anchor, g.Sides, g.Radius)
			el.Geometry = g
		}
	}
	c.changed()
	return nil
}

func applyStylePatch(s *Style, patch ElementPatch) {
	if patch.StrokeColor != nil {
		s.StrokeColor = *patch.StrokeColor
	}
	if patch.StrokeWidth != nil {
		s.StrokeWidth = *patch.StrokeWidth
	}
	if patch.FillColor != nil {
		s.FillColor = *patch.FillColor
	}
	if patch.FontFamily != nil {
		s.FontFamily = *patch.FontFamily
	}
	if patch.FontSize != nil {
		s.FontSize = *patch.FontSize
	}
	if patch.Opacity != nil {
		o := *patch.Opacity
		if o < 0 {
			o = 0
		}
		if o > 1 {
			o = 1
		}
		s.Opacity = o
	}
}

// validColor accepts "none" or a #rgb/#rrggbb hex colour.
func validColor(s string) bool {
	if strings.EqualFold(s, "none") {
		return true
	}
	_, err := colorful.Hex(expandHex(s))
	return err == nil
}

func expandHex(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

// Import replaces the element list wholesale. Stored highlight snapshots
// are restored so the imported canvas starts unselected. A list with an
// empty or repeated id is rejected and the canvas is left unchanged.
func (c *Canvas) Import(elements []Element) error {
	seen := make(map[string]bool, len(elements))
	for _, el := range elements {
		if el.ID == "" {
			return fmt.Errorf("%w: element without id", ErrInvalidSnapshot)
		}
		if seen[el.ID] {
			return fmt.Errorf("%w: duplicate element id %q", ErrInvalidSnapshot, el.ID)
		}
		seen[el.ID] = true
	}

	c.selection.forget()
	c.elements = make([]*Element, 0, len(elements))
	for i := range elements {
		el := elements[i].Clone()
		unhighlight(el)
		c.elements = append(c.elements, el)
	}
	c.changed()
	return nil
}

// Export returns copies of all elements with highlights removed.
func (c *Canvas) Export() []Element {
	out := make([]Element, 0, len(c.elements))
	for _, el := range c.elements {
		cp := el.Clone()
		unhighlight(cp)
		out = append(out, *cp)
	}
	return out
}

func (c *Canvas) Snapshot() Snapshot {
	els := make([]Element, 0, len(c.elements))
	for _, el := range c.elements {
		els = append(els, *el.Clone())
	}
	return Snapshot{
		Elements:  els,
		Selection: c.selection.Selected(),
		Viewport:  c.viewport.Viewport(),
	}
}

// Reset empties the canvas and returns the viewport to its initial state.
func (c *Canvas) Reset() {
	c.selection.forget()
	c.elements = nil
	c.viewport.Reset()
	c.changed()
}

func (c *Canvas) PanBy(dx, dy float64) {
	if !c.viewport.Ready() {
		return
	}
	c.viewport.PanBy(dx, dy)
	c.changed()
}

func (c *Canvas) ZoomAt(screen Point, dir ZoomDirection) {
	if !c.viewport.Ready() {
		return
	}
	c.viewport.ZoomAt(screen, dir)
	c.changed()
}

// MoveElementByScreen converts a screen delta to logical units and moves id.
func (c *Canvas) MoveElementByScreen(id string, dx, dy float64) error {
	if !c.viewport.Ready() {
		return nil
	}
	w, h := c.viewport.ScreenSize()
	vp := c.viewport.Viewport()
	return c.MoveElement(id, dx*vp.Width/w, dy*vp.Height/h)
}

// Bounds covers every element; ok is false on an empty canvas.
func (c *Canvas) Bounds() (Rect, bool) {
	if len(c.elements) == 0 {
		return Rect{}, false
	}
	r := c.elements[0].Bounds()
	for _, el := range c.elements[1:] {
		r = r.Union(el.Bounds())
	}
	return r, true
}
