package main

import "math"

// Viewport is the window into logical space currently mapped onto the
// screen. Scale is screen cells per logical unit along x and is kept for
// display only.
type Viewport struct {
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Scale   float64 `json:"scale"`
}

type ViewportController struct {
	vp            Viewport
	initialWidth  float64
	initialHeight float64
	screenWidth   float64
	screenHeight  float64
	zoomStep      float64
}

func NewViewportController(width, height, zoomStep float64) *ViewportController {
	if width <= 0 {
		width = defaultCanvasWidth
	}
	if height <= 0 {
		height = defaultCanvasHeight
	}
	if zoomStep <= 0 || zoomStep >= 1 {
		zoomStep = defaultZoomStep
	}
	vc := &ViewportController{
		initialWidth:  width,
		initialHeight: height,
		zoomStep:      zoomStep,
	}
	vc.Reset()
	return vc
}

func (vc *ViewportController) Viewport() Viewport {
	return vc.vp
}

// Ready reports whether the screen size is known. Geometry operations are
// no-ops until then.
func (vc *ViewportController) Ready() bool {
	return vc.screenWidth > 0 && vc.screenHeight > 0
}

func (vc *ViewportController) Resize(screenWidth, screenHeight float64) {
	vc.screenWidth = screenWidth
	vc.screenHeight = screenHeight
	vc.updateScale()
}

func (vc *ViewportController) Reset() {
	vc.vp = Viewport{Width: vc.initialWidth, Height: vc.initialHeight}
	vc.updateScale()
}

// Restore replaces the viewport, e.g. after loading a saved canvas.
func (vc *ViewportController) Restore(vp Viewport) {
	if vp.Width <= 0 || vp.Height <= 0 {
		vc.Reset()
		return
	}
	r, ok := vc.clampRatio(1, vp.Width, vp.Height)
	if !ok {
		vc.Reset()
		return
	}
	vc.vp = vp
	vc.vp.Width = vp.Width * r
	vc.vp.Height = vp.Height * r
	vc.updateScale()
}

func (vc *ViewportController) updateScale() {
	if vc.vp.Width > 0 && vc.screenWidth > 0 {
		vc.vp.Scale = vc.screenWidth / vc.vp.Width
	}
}

// PanBy moves the content with the pointer: the origin shifts by the
// negative of the screen delta converted to logical units per axis.
func (vc *ViewportController) PanBy(dxScreen, dyScreen float64) {
	if !vc.Ready() {
		return
	}
	vc.vp.OriginX -= dxScreen * (vc.vp.Width / vc.screenWidth)
	vc.vp.OriginY -= dyScreen * (vc.vp.Height / vc.screenHeight)
}

// ZoomAt scales the viewport keeping the logical point under the screen
// point fixed.
func (vc *ViewportController) ZoomAt(screen Point, dir ZoomDirection) {
	if !vc.Ready() {
		return
	}
	factor := 1 + vc.zoomStep
	if dir == ZoomOut {
		factor = 1 - vc.zoomStep
	}

	// Both axes scale by the same ratio so the aspect survives clamping.
	r, ok := vc.clampRatio(1/factor, vc.vp.Width, vc.vp.Height)
	if !ok {
		return
	}
	newWidth := vc.vp.Width * r
	newHeight := vc.vp.Height * r

	fx := screen.X / vc.screenWidth
	fy := screen.Y / vc.screenHeight
	vc.vp.OriginX += fx * (vc.vp.Width - newWidth)
	vc.vp.OriginY += fy * (vc.vp.Height - newHeight)
	vc.vp.Width = newWidth
	vc.vp.Height = newHeight
	vc.updateScale()
}

// clampRatio limits the scale ratio r so that w*r and h*r both stay within
// [minZoomRatio, maxZoomRatio] of the initial size. ok is false when no
// ratio satisfies both axes.
func (vc *ViewportController) clampRatio(r, w, h float64) (float64, bool) {
	lo := math.Max(vc.initialWidth*minZoomRatio/w, vc.initialHeight*minZoomRatio/h)
	hi := math.Min(vc.initialWidth*maxZoomRatio/w, vc.initialHeight*maxZoomRatio/h)
	if lo > hi || math.IsNaN(lo) || math.IsNaN(hi) {
		return 0, false
	}
	return math.Max(lo, math.Min(hi, r)), true
}

// ScreenToLogical maps a screen point into logical coordinates. The second
// return is false while the viewport is not ready.
func (vc *ViewportController) ScreenToLogical(screen Point) (Point, bool) {
	if !vc.Ready() {
		return Point{}, false
	}
	return screenToLogical(vc.vp, screen, vc.screenWidth, vc.screenHeight), true
}

func (vc *ViewportController) LogicalToScreen(logical Point) (Point, bool) {
	if !vc.Ready() {
		return Point{}, false
	}
	return logicalToScreen(vc.vp, logical, vc.screenWidth, vc.screenHeight), true
}

func (vc *ViewportController) ScreenSize() (float64, float64) {
	return vc.screenWidth, vc.screenHeight
}

func screenToLogical(vp Viewport, screen Point, screenWidth, screenHeight float64) Point {
	return Point{
		X: vp.OriginX + screen.X/screenWidth*vp.Width,
		Y: vp.OriginY + screen.Y/screenHeight*vp.Height,
	}
}

func logicalToScreen(vp Viewport, logical Point, screenWidth, screenHeight float64) Point {
	return Point{
		X: (logical.X - vp.OriginX) / vp.Width * screenWidth,
		Y: (logical.Y - vp.OriginY) / vp.Height * screenHeight,
	}
}
