package main

import "math"

type GestureState int

const (
	GestureIdle GestureState = iota
	GesturePointerDown
	GestureDragging
	GestureClickPending
)

// GestureKind says what a drag does once the threshold is crossed.
type GestureKind int

const (
	// GesturePan is a left drag on empty canvas; a short one is a click.
	GesturePan GestureKind = iota
	// GestureDedicatedPan comes from the middle button or ctrl+left and
	// never produces a click.
	GestureDedicatedPan
	GestureMoveElement
)

// Gesture separates clicks from drags. A pointer that travels further than
// threshold from where it went down becomes a drag and never yields a click.
type Gesture struct {
	state     GestureState
	kind      GestureKind
	threshold float64
	target    string
	down      Point
	last      Point
}

func NewGesture(threshold float64) *Gesture {
	if threshold < 0 {
		threshold = defaultDragThreshold
	}
	return &Gesture{threshold: threshold}
}

func (g *Gesture) State() GestureState { return g.state }
func (g *Gesture) Kind() GestureKind   { return g.kind }
func (g *Gesture) Target() string      { return g.target }

// Down starts a gesture. target is the element under the pointer for
// element drags.
func (g *Gesture) Down(p Point, kind GestureKind, target string) {
	g.state = GesturePointerDown
	g.kind = kind
	g.target = target
	g.down = p
	g.last = p
}

// Move returns the screen delta to apply while dragging. Movement inside the
// threshold returns ok=false. The first delta after crossing the threshold
// is measured from the down position.
func (g *Gesture) Move(p Point) (dx, dy float64, ok bool) {
	switch g.state {
	case GesturePointerDown:
		if math.Hypot(p.X-g.down.X, p.Y-g.down.Y) <= g.threshold {
			return 0, 0, false
		}
		g.state = GestureDragging
		fallthrough
	case GestureDragging:
		dx, dy = p.X-g.last.X, p.Y-g.last.Y
		g.last = p
		return dx, dy, true
	}
	return 0, 0, false
}

// Up ends the pointer sequence. A gesture that never dragged becomes
// ClickPending; the caller consumes it with Click.
func (g *Gesture) Up(p Point) {
	switch g.state {
	case GesturePointerDown:
		if math.Hypot(p.X-g.down.X, p.Y-g.down.Y) > g.threshold {
			g.reset()
			return
		}
		g.state = GestureClickPending
	default:
		g.reset()
	}
}

// Click consumes a pending click and returns the down position.
func (g *Gesture) Click() (Point, bool) {
	if g.state != GestureClickPending {
		return Point{}, false
	}
	if g.kind == GestureDedicatedPan {
		g.reset()
		return Point{}, false
	}
	p := g.down
	g.reset()
	return p, true
}

func (g *Gesture) Cancel() {
	g.reset()
}

func (g *Gesture) reset() {
	g.state = GestureIdle
	g.target = ""
}
