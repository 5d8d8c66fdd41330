package window

// Point is a pixel coordinate, origin top-left.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a pixel extent.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is a positioned rectangle.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Frame is the geometry of one window. It belongs to the window, not to the
// instance record, and is discarded when the window closes.
type Frame struct {
	Position  Point `json:"position"`
	Maximized bool  `json:"maximized"`
}

// Bounds is the soft drag area that keeps windows reachable.
type Bounds struct {
	Width  int
	Height int
}

// Clamp pulls p inside [0,Width]x[0,Height].
func (b Bounds) Clamp(p Point) Point {
	return Point{X: clamp(p.X, 0, b.Width), Y: clamp(p.Y, 0, b.Height)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DragSession accumulates pointer deltas for one window without touching
// shared state until Commit.
type DragSession struct {
	m     *Manager
	frame *Frame
	start Point
	delta Point
	done  bool
}

// Drag adds a pointer delta.
func (d *DragSession) Drag(dx, dy int) {
	if d.done {
		return
	}
	d.delta.X += dx
	d.delta.Y += dy
}

// Preview returns where the window would land if committed now.
func (d *DragSession) Preview() Point {
	return d.m.bounds.Clamp(Point{X: d.start.X + d.delta.X, Y: d.start.Y + d.delta.Y})
}

// Commit writes the final position. It reports false when the session was
// already finished, or the window was closed, reopened or maximized since
// the drag began.
func (d *DragSession) Commit() bool {
	if d.done {
		return false
	}
	d.done = true
	if !d.m.owns(d.frame) || d.frame.Maximized {
		return false
	}
	d.frame.Position = d.Preview()
	return true
}

// Cancel abandons the drag.
func (d *DragSession) Cancel() {
	d.done = true
}
