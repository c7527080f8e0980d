// Package core provides the screen buffer, input and runtime types shared by
// games and the platform. It has no external dependencies (especially no Bubble
// Tea) so game logic stays pure and testable.
package core

// Rect is an area on the screen; X, Y is the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side. The result never has
// a negative size.
func (r Rect) Inset(n int) Rect {
	return Rect{
		X: r.X + n,
		Y: r.Y + n,
		W: max(r.W-2*n, 0),
		H: max(r.H-2*n, 0),
	}
}

// CenterX moves the rectangle so it is horizontally centered in a screen of
// the given width, but never left of column 0.
func (r Rect) CenterX(screenW int) Rect {
	r.X = max((screenW-r.W)/2, 0)
	return r
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	return min(max(val, lo), hi)
}
