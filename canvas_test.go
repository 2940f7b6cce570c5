package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCanvas returns a ready canvas whose screen and logical coordinates
// coincide.
func newTestCanvas(t *testing.T) *Canvas {
	t.Helper()
	c := NewCanvas(defaultConfig())
	c.factory = sequentialFactory()
	c.Viewport().Resize(800, 600)
	return c
}

func TestCanvasClickPlacesOnEmptyCanvas(t *testing.T) {
	c := newTestCanvas(t)
	placed := c.Click(Point{100, 100}, ToolWall)
	require.Len(t, placed, 1)
	assert.Len(t, c.Elements(), 1)
	assert.Equal(t, Point{100, 100}, placed[0].Anchor)
	assert.Empty(t, c.Selected())
}

func TestCanvasClickOnElementSelects(t *testing.T) {
	c := newTestCanvas(t)
	wall := c.Click(Point{100, 100}, ToolWall)[0]

	placed := c.Click(Point{100, 100}, ToolWall)
	assert.Nil(t, placed)
	assert.Len(t, c.Elements(), 1)
	assert.Equal(t, wall.ID, c.Selected())

	// Clicking empty canvas with no tool just clears.
	assert.Nil(t, c.Click(Point{500, 500}, ToolNone))
	assert.Empty(t, c.Selected())
	assert.Len(t, c.Elements(), 1)
}

func TestCanvasClickRespectsViewport(t *testing.T) {
	c := newTestCanvas(t)
	c.PanBy(-100, -50)
	placed := c.Click(Point{10, 10}, ToolZoneEllipse)
	require.Len(t, placed, 1)
	assert.Equal(t, Point{110, 60}, placed[0].Anchor)
}

func TestCanvasClickBeforeResizeIsIgnored(t *testing.T) {
	c := NewCanvas(defaultConfig())
	assert.Nil(t, c.Click(Point{10, 10}, ToolWall))
	assert.Empty(t, c.Elements())
}

func TestCanvasElementAtPrefersTopMost(t *testing.T) {
	c := newTestCanvas(t)
	bg := c.Place(ToolBackground, Point{100, 100})[0]
	wall := c.Place(ToolWall, Point{100, 100})[0]

	assert.Equal(t, wall.ID, c.ElementAt(Point{100, 100}).ID)
	assert.Equal(t, bg.ID, c.ElementAt(Point{100, 160}).ID)
	assert.Nil(t, c.ElementAt(Point{700, 500}))
}

func TestCanvasUpdatePropertiesWhileSelected(t *testing.T) {
	c := newTestCanvas(t)
	wall := c.Place(ToolWall, Point{100, 100})[0]
	c.Select(wall.ID)

	color := "#1E90FF"
	width := 3.0
	require.NoError(t, c.UpdateElementProperties(wall.ID, ElementPatch{StrokeColor: &color, StrokeWidth: &width}))

	assert.Equal(t, "#ff0000", wall.Style.StrokeColor, "highlight stays while selected")
	require.NotNil(t, wall.Original)
	assert.Equal(t, color, wall.Original.StrokeColor)

	c.ClearSelection()
	assert.Equal(t, color, wall.Style.StrokeColor)
	assert.Equal(t, width, wall.Style.StrokeWidth)
	assert.Nil(t, wall.Original)
}

func TestCanvasUpdateTextAndPolygon(t *testing.T) {
	c := newTestCanvas(t)
	text := c.Place(ToolText, Point{10, 10})[0]
	poly := c.Place(ToolZonePolygon, Point{300, 300})[0]

	content := "Kitchen"
	require.NoError(t, c.UpdateElementProperties(text.ID, ElementPatch{Content: &content}))
	assert.Equal(t, "Kitchen", text.Geometry.(TextGeometry).Content)

	sides := 6
	require.NoError(t, c.UpdateElementProperties(poly.ID, ElementPatch{PolygonSides: &sides}))
	g := poly.Geometry.(PolygonGeometry)
	assert.Equal(t, 6, g.Sides)
	assert.Len(t, g.Points, 6)
}

func TestCanvasUpdateRejectsBadValues(t *testing.T) {
	c := newTestCanvas(t)
	wall := c.Place(ToolWall, Point{100, 100})[0]
	before := wall.Style

	bad := "chartreuse-ish"
	assert.Error(t, c.UpdateElementProperties(wall.ID, ElementPatch{StrokeColor: &bad}))
	neg := -1.0
	assert.Error(t, c.UpdateElementProperties(wall.ID, ElementPatch{StrokeWidth: &neg}))
	assert.Equal(t, before, wall.Style)

	short := "#abc"
	assert.NoError(t, c.UpdateElementProperties(wall.ID, ElementPatch{FillColor: &short}))

	err := c.UpdateElementProperties("nope", ElementPatch{})
	assert.True(t, errors.Is(err, ErrElementNotFound))
}

func TestCanvasOpacityIsClamped(t *testing.T) {
	c := newTestCanvas(t)
	wall := c.Place(ToolWall, Point{100, 100})[0]
	o := 2.5
	require.NoError(t, c.UpdateElementProperties(wall.ID, ElementPatch{Opacity: &o}))
	assert.Equal(t, 1.0, wall.Style.Opacity)
}

func TestCanvasDeleteSelectedIconUnlinksLabel(t *testing.T) {
	c := newTestCanvas(t)
	els := c.Place(ToolIcon, Point{200, 200})
	icon, label := els[0], els[1]
	c.Select(icon.ID)

	var selections []string
	c.OnSelectionChange(func(id string) { selections = append(selections, id) })

	require.NoError(t, c.DeleteElement(icon.ID))
	assert.Len(t, c.Elements(), 1)
	assert.Empty(t, c.Selected())
	assert.Empty(t, label.PairID)
	assert.Equal(t, []string{""}, selections)

	assert.ErrorIs(t, c.DeleteElement(icon.ID), ErrElementNotFound)
}

func TestCanvasMoveElementMovesIconPair(t *testing.T) {
	c := newTestCanvas(t)
	els := c.Place(ToolIcon, Point{200, 200})
	icon, label := els[0], els[1]

	require.NoError(t, c.MoveElement(icon.ID, 10, -5))
	assert.Equal(t, CircleGeometry{CX: 210, CY: 195, R: 15}, icon.Geometry)
	assert.Equal(t, TextGeometry{X: 205, Y: 186, Content: "i"}, label.Geometry)
	assert.Equal(t, Point{210, 195}, icon.Anchor)
}

func TestCanvasMoveElementByScreenScales(t *testing.T) {
	c := newTestCanvas(t)
	wall := c.Place(ToolWall, Point{100, 100})[0]
	c.Viewport().Resize(400, 300)

	require.NoError(t, c.MoveElementByScreen(wall.ID, 10, 10))
	assert.Equal(t, Point{120, 120}, wall.Anchor)
}

func TestCanvasImportExport(t *testing.T) {
	c := newTestCanvas(t)
	c.Place(ToolWall, Point{100, 100})
	text := c.Place(ToolText, Point{300, 300})[0]
	c.Select(text.ID)

	exported := c.Export()
	require.Len(t, exported, 2)
	assert.Nil(t, exported[1].Original)
	assert.False(t, exported[1].Selected)
	assert.Equal(t, "#000000", exported[1].Style.FillColor)
	// Exporting does not disturb the live selection.
	assert.Equal(t, "#ff0000", text.Style.FillColor)

	other := newTestCanvas(t)
	require.NoError(t, other.Import(c.Snapshot().Elements))
	require.Len(t, other.Elements(), 2)
	assert.Empty(t, other.Selected())
	assert.Equal(t, "#000000", other.Element(text.ID).Style.FillColor)

	other.Elements()[0].Translate(5, 5)
	assert.NotEqual(t, other.Elements()[0].Anchor, c.Elements()[0].Anchor)
}

func TestCanvasChangeNotifications(t *testing.T) {
	c := newTestCanvas(t)
	var snaps []Snapshot
	c.OnChange(func(s Snapshot) { snaps = append(snaps, s) })

	c.Click(Point{100, 100}, ToolWall)
	require.Len(t, snaps, 1)
	assert.Len(t, snaps[0].Elements, 1)

	c.Click(Point{100, 100}, ToolWall)
	require.Len(t, snaps, 2)
	assert.Equal(t, c.Elements()[0].ID, snaps[1].Selection)

	c.PanBy(10, 0)
	require.Len(t, snaps, 3)
	assert.Equal(t, -10.0, snaps[2].Viewport.OriginX)

	c.ZoomAt(Point{400, 300}, ZoomIn)
	assert.Len(t, snaps, 4)
}

func TestCanvasResetClearsEverything(t *testing.T) {
	c := newTestCanvas(t)
	wall := c.Place(ToolWall, Point{100, 100})[0]
	c.Select(wall.ID)
	c.PanBy(30, 30)

	c.Reset()
	assert.Empty(t, c.Elements())
	assert.Empty(t, c.Selected())
	assert.Equal(t, 0.0, c.Viewport().Viewport().OriginX)
}

func TestCanvasesAreIndependent(t *testing.T) {
	a := newTestCanvas(t)
	b := newTestCanvas(t)
	a.Place(ToolWall, Point{1, 1})
	a.PanBy(5, 5)
	assert.Empty(t, b.Elements())
	assert.Equal(t, 0.0, b.Viewport().Viewport().OriginX)
}

func TestCanvasRenderDrawsElements(t *testing.T) {
	c := NewCanvas(defaultConfig())
	c.SetGrid(GridSettings{Enabled: false})
	c.Viewport().Resize(80, 60)
	c.Place(ToolWall, Point{400, 300})

	lines := c.rasterize(80, 60).plain()
	require.Len(t, lines, 60)
	assert.Contains(t, lines[30], "█")
	assert.NotContains(t, lines[0], "█")
}

func TestCanvasImportRejectsDuplicateIDs(t *testing.T) {
	c := newTestCanvas(t)
	wall := c.Place(ToolWall, Point{100, 100})[0]
	dup := *wall.Clone()

	target := newTestCanvas(t)
	target.Place(ToolText, Point{10, 10})
	err := target.Import([]Element{dup, dup})
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Contains(t, err.Error(), wall.ID)
	require.Len(t, target.Elements(), 1)
	assert.Equal(t, KindText, target.Elements()[0].Kind)

	dup.ID = ""
	assert.ErrorIs(t, target.Import([]Element{dup}), ErrInvalidSnapshot)
}
