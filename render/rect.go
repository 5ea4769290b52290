package render

import (
	"fmt"
	"math"
)

// Rect is an inclusive cell rectangle
type Rect struct {
	Left, Top, Right, Bottom int
}

// emptyRect is inverted so that the first grow seeds min/max from scratch
var emptyRect = Rect{Left: math.MaxInt, Top: math.MaxInt, Right: -1, Bottom: -1}

// Empty reports whether the rectangle holds no cells
func (r Rect) Empty() bool {
	return r.Left > r.Right || r.Top > r.Bottom
}

// Width returns the column count, 0 when empty
func (r Rect) Width() int {
	if r.Empty() {
		return 0
	}
	return r.Right - r.Left + 1
}

// Height returns the row count, 0 when empty
func (r Rect) Height() int {
	if r.Empty() {
		return 0
	}
	return r.Bottom - r.Top + 1
}

// Contains reports whether (x, y) lies inside
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Union returns the bounding rectangle of both
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// grow extends the rectangle to include (x, y)
func (r *Rect) grow(x, y int) {
	r.Left = min(r.Left, x)
	r.Top = min(r.Top, y)
	r.Right = max(r.Right, x)
	r.Bottom = max(r.Bottom, y)
}

// String implements fmt.Stringer
func (r Rect) String() string {
	if r.Empty() {
		return "{empty}"
	}
	return fmt.Sprintf("{%d,%d,%d,%d}", r.Left, r.Top, r.Right, r.Bottom)
}
