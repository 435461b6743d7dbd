// Package core provides fundamental types and utilities shared by the
// simulation and the platform layers. It has no external dependencies so the
// simulation stays pure and testable.
package core

// Rect represents an axis-aligned bounding box used for collision detection.
// Coordinates are screen space: Y grows downward.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Both rectangles are treated as half-open intervals [X, Right) x [Y, Bottom),
// so rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Clamp01 restricts a float64 value to be within [0, 1].
func Clamp01(val float64) float64 {
	return ClampF(val, 0, 1)
}
