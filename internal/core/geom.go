// Package core provides fundamental types and utilities for the gates game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clip returns the part of r inside a cols×rows grid. A rectangle entirely
// off the grid clips to zero size.
func (r Rect) Clip(cols, rows int) Rect {
	x0, x1 := Clamp(r.X, 0, cols), Clamp(r.Right(), 0, cols)
	y0, y1 := Clamp(r.Y, 0, rows), Clamp(r.Bottom(), 0, rows)
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// TextX returns the column at which text starts when centered in r.
func (r Rect) TextX(text string) int {
	return r.X + (r.W-len([]rune(text)))/2
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	return max(lo, min(val, hi))
}

// Lerp returns the fraction of value between min and max.
// It is an unclamped inverse interpolation: values outside [min, max]
// yield fractions outside [0, 1]. Panics when min == max.
func Lerp(min, max, value float64) float64 {
	diff := max - min
	if diff == 0 {
		panic("core: Lerp called with min == max")
	}
	return (value - min) / diff
}
