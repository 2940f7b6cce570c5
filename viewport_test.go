package main

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadyViewport(t *testing.T) *ViewportController {
	t.Helper()
	vc := NewViewportController(800, 600, 0.1)
	vc.Resize(800, 600)
	require.True(t, vc.Ready())
	return vc
}

func TestViewportInitialState(t *testing.T) {
	vc := NewViewportController(800, 600, 0.1)
	vp := vc.Viewport()
	assert.Equal(t, 0.0, vp.OriginX)
	assert.Equal(t, 0.0, vp.OriginY)
	assert.Equal(t, 800.0, vp.Width)
	assert.Equal(t, 600.0, vp.Height)
	assert.False(t, vc.Ready())
}

func TestViewportNotReadyIsNoOp(t *testing.T) {
	vc := NewViewportController(800, 600, 0.1)
	before := vc.Viewport()

	vc.PanBy(10, 10)
	vc.ZoomAt(Point{400, 300}, ZoomIn)
	assert.Equal(t, before, vc.Viewport())

	_, ok := vc.ScreenToLogical(Point{1, 1})
	assert.False(t, ok)
	_, ok = vc.LogicalToScreen(Point{1, 1})
	assert.False(t, ok)
}

func TestViewportPanMovesContentWithPointer(t *testing.T) {
	vc := newReadyViewport(t)
	vc.PanBy(10, -20)

	vp := vc.Viewport()
	assert.InDelta(t, -10.0, vp.OriginX, 1e-9)
	assert.InDelta(t, 20.0, vp.OriginY, 1e-9)
	assert.Equal(t, 800.0, vp.Width)
	assert.Equal(t, 600.0, vp.Height)
}

func TestViewportPanUsesPerAxisRatio(t *testing.T) {
	vc := NewViewportController(800, 600, 0.1)
	vc.Resize(400, 100)
	vc.PanBy(4, 1)

	vp := vc.Viewport()
	assert.InDelta(t, -8.0, vp.OriginX, 1e-9)
	assert.InDelta(t, -6.0, vp.OriginY, 1e-9)
}

func TestViewportZoomInAtCenter(t *testing.T) {
	vc := newReadyViewport(t)
	vc.ZoomAt(Point{400, 300}, ZoomIn)

	vp := vc.Viewport()
	assert.InDelta(t, 800/1.1, vp.Width, 1e-9)
	assert.InDelta(t, 600/1.1, vp.Height, 1e-9)

	center, ok := vc.ScreenToLogical(Point{400, 300})
	require.True(t, ok)
	assert.InDelta(t, 400.0, center.X, 1e-9)
	assert.InDelta(t, 300.0, center.Y, 1e-9)
}

func TestViewportZoomOutAtOrigin(t *testing.T) {
	vc := newReadyViewport(t)
	vc.ZoomAt(Point{0, 0}, ZoomOut)

	vp := vc.Viewport()
	assert.InDelta(t, 0.0, vp.OriginX, 1e-9)
	assert.InDelta(t, 0.0, vp.OriginY, 1e-9)
	assert.InDelta(t, 800/0.9, vp.Width, 1e-9)
}

func TestViewportZoomIsClamped(t *testing.T) {
	vc := newReadyViewport(t)
	for i := 0; i < 200; i++ {
		vc.ZoomAt(Point{200, 150}, ZoomIn)
	}
	vp := vc.Viewport()
	assert.InDelta(t, 800*minZoomRatio, vp.Width, 1e-9)
	assert.InDelta(t, 600*minZoomRatio, vp.Height, 1e-6)

	for i := 0; i < 400; i++ {
		vc.ZoomAt(Point{200, 150}, ZoomOut)
	}
	vp = vc.Viewport()
	assert.InDelta(t, 800*maxZoomRatio, vp.Width, 1e-6)
	assert.InDelta(t, 600*maxZoomRatio, vp.Height, 1e-3)
}

func TestViewportResetAndRestore(t *testing.T) {
	vc := newReadyViewport(t)
	vc.PanBy(50, 50)
	vc.ZoomAt(Point{100, 100}, ZoomIn)
	vc.Reset()
	assert.Equal(t, Viewport{Width: 800, Height: 600, Scale: 1}, vc.Viewport())

	vc.Restore(Viewport{OriginX: 5, OriginY: 6, Width: 400, Height: 300})
	vp := vc.Viewport()
	assert.Equal(t, 5.0, vp.OriginX)
	assert.Equal(t, 400.0, vp.Width)
	assert.Equal(t, 2.0, vp.Scale)

	vc.Restore(Viewport{Width: -1, Height: 10})
	assert.Equal(t, 800.0, vc.Viewport().Width)
}

func TestViewportScreenLogicalRoundTrip(t *testing.T) {
	vc := newReadyViewport(t)
	vc.PanBy(-123, 45)
	vc.ZoomAt(Point{10, 590}, ZoomIn)

	screen := Point{321, 123}
	logical, ok := vc.ScreenToLogical(screen)
	require.True(t, ok)
	back, ok := vc.LogicalToScreen(logical)
	require.True(t, ok)
	assert.InDelta(t, screen.X, back.X, 1e-9)
	assert.InDelta(t, screen.Y, back.Y, 1e-9)
}

func TestViewportZoomKeepsAnchorFixed(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("logical point under the pointer stays under it", prop.ForAll(
		func(sx, sy float64, steps int) bool {
			vc := NewViewportController(800, 600, 0.1)
			vc.Resize(800, 600)
			screen := Point{sx, sy}
			before, _ := vc.ScreenToLogical(screen)
			for i := 0; i < steps; i++ {
				dir := ZoomIn
				if i%3 == 2 {
					dir = ZoomOut
				}
				vc.ZoomAt(screen, dir)
			}
			after, _ := vc.LogicalToScreen(before)
			return math.Abs(after.X-screen.X) < 1e-6 && math.Abs(after.Y-screen.Y) < 1e-6
		},
		gen.Float64Range(0, 800),
		gen.Float64Range(0, 600),
		gen.IntRange(1, 40),
	))

	properties.Property("pan then opposite pan restores origin", prop.ForAll(
		func(dx, dy float64) bool {
			vc := NewViewportController(800, 600, 0.1)
			vc.Resize(640, 480)
			start := vc.Viewport()
			vc.PanBy(dx, dy)
			vc.PanBy(-dx, -dy)
			end := vc.Viewport()
			return math.Abs(end.OriginX-start.OriginX) < 1e-6 && math.Abs(end.OriginY-start.OriginY) < 1e-6
		},
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}

func TestViewportRestoreKeepsAspect(t *testing.T) {
	vc := newReadyViewport(t)
	vc.Restore(Viewport{OriginX: 1, OriginY: 2, Width: 32000, Height: 24000})
	vp := vc.Viewport()
	assert.InDelta(t, 16000.0, vp.Width, 1e-9)
	assert.InDelta(t, 12000.0, vp.Height, 1e-9)
	assert.Equal(t, 1.0, vp.OriginX)

	// No uniform scale fits both axes into range.
	vc.Restore(Viewport{Width: 100, Height: 60000})
	assert.Equal(t, Viewport{Width: 800, Height: 600, Scale: 1}, vc.Viewport())
}

func TestViewportZoomAfterRestoreStaysClamped(t *testing.T) {
	vc := newReadyViewport(t)
	vc.Restore(Viewport{Width: 800, Height: 12000})
	for i := 0; i < 200; i++ {
		vc.ZoomAt(Point{400, 300}, ZoomOut)
	}
	vp := vc.Viewport()
	assert.LessOrEqual(t, vp.Width, 800*maxZoomRatio+1e-6)
	assert.LessOrEqual(t, vp.Height, 600*maxZoomRatio+1e-6)
	assert.InDelta(t, 800.0/12000.0, vp.Width/vp.Height, 1e-9)

	for i := 0; i < 400; i++ {
		vc.ZoomAt(Point{400, 300}, ZoomIn)
	}
	vp = vc.Viewport()
	assert.GreaterOrEqual(t, vp.Width, 800*minZoomRatio-1e-6)
	assert.GreaterOrEqual(t, vp.Height, 600*minZoomRatio-1e-6)
}

func TestViewportAnchorHoldsAtZoomLimits(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("anchor stays put after hitting the zoom limit", prop.ForAll(
		func(sx, sy float64, steps int, out bool) bool {
			vc := NewViewportController(800, 600, 0.1)
			vc.Resize(800, 600)
			dir := ZoomIn
			if out {
				dir = ZoomOut
			}
			screen := Point{sx, sy}
			before, _ := vc.ScreenToLogical(screen)
			for i := 0; i < steps; i++ {
				vc.ZoomAt(screen, dir)
			}
			vp := vc.Viewport()
			atLimit := math.Abs(vp.Width-800*minZoomRatio) < 1e-6 || math.Abs(vp.Width-800*maxZoomRatio) < 1e-6
			after, _ := vc.LogicalToScreen(before)
			return atLimit && math.Abs(after.X-screen.X) < 1e-6 && math.Abs(after.Y-screen.Y) < 1e-6
		},
		gen.Float64Range(0, 800),
		gen.Float64Range(0, 600),
		gen.IntRange(45, 120),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
