// Package physics provides hit-box and bounds tests.
package physics

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectAt returns the rectangle with top-left corner (x, y) and the given size.
func RectAt(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Contains reports whether the point lies in the half-open rectangle [Min, Max).
// Two rectangles sharing an edge never both contain a point on it.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.MinX && px < r.MaxX && py >= r.MinY && py < r.MaxY
}

// InBounds reports whether the point lies within the closed canvas [0, w] x [0, h].
func InBounds(px, py, w, h float64) bool {
	return px >= 0 && px <= w && py >= 0 && py <= h
}
