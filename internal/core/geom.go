// Package core provides fundamental types and utilities shared by the battle
// simulation and its presentation adapters. It contains no UI dependencies
// (no Bubble Tea, no Ebiten) to keep game logic pure and testable.
package core

// Rect is an integer, cell-aligned rectangle used for drawing into a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Vec is a point or direction in world units.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v scaled by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Box is an axis-aligned bounding box in world units.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// BoxAround returns a box of the given half-size centered on c.
func BoxAround(c Vec, half float64) Box {
	return Box{X: c.X - half, Y: c.Y - half, W: half * 2, H: half * 2}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point of the box.
func (b Box) Center() Vec {
	return Vec{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Overlaps reports whether two boxes share interior area.
// All four comparisons are strict, so touching edges do not count.
func (b Box) Overlaps(o Box) bool {
	return b.Right() > o.X && b.X < o.Right() &&
		b.Bottom() > o.Y && b.Y < o.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
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
