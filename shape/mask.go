package shape

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned for shapes with zero or negative width or height
var ErrInvalidSize = errors.New("shape: width and height must be positive")

// Mask is an offscreen monochrome raster at a shape's bounding size
type Mask struct {
	width  int
	height int
	bits   []bool
}

// NewMask allocates a cleared mask
func NewMask(w, h int) (*Mask, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return &Mask{width: w, height: h, bits: make([]bool, w*h)}, nil
}

// Width returns the mask width
func (m *Mask) Width() int { return m.width }

// Height returns the mask height
func (m *Mask) Height() int { return m.height }

// Set marks (x, y); out-of-range coordinates are ignored
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.bits[y*m.width+x] = v
}

// Get reads (x, y); out-of-range reads as false
func (m *Mask) Get(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Count returns the number of set bits
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// RectMasks rasterizes a w×h rectangle into its border and interior
func RectMasks(w, h int) (outline, interior *Mask, err error) {
	if outline, err = NewMask(w, h); err != nil {
		return nil, nil, err
	}
	interior, _ = NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				outline.Set(x, y, true)
			} else {
				interior.Set(x, y, true)
			}
		}
	}
	return outline, interior, nil
}

// EllipseMasks rasterizes the ellipse inscribed in a w×h box
// A cell is inside when its center satisfies ((px-cx)/rx)² + ((py-cy)/ry)² <= 1
// Outline cells are inside cells with a 4-neighbour outside the ellipse or the box
func EllipseMasks(w, h int) (outline, interior *Mask, err error) {
	inside, err := NewMask(w, h)
	if err != nil {
		return nil, nil, err
	}
	rx := float64(w) / 2
	ry := float64(h) / 2
	invRxSq := 1 / (rx * rx)
	invRySq := 1 / (ry * ry)

	// Scanline pass
	for y := 0; y < h; y++ {
		dy := float64(y) + 0.5 - ry
		for x := 0; x < w; x++ {
			dx := float64(x) + 0.5 - rx
			if dx*dx*invRxSq+dy*dy*invRySq <= 1.0 {
				inside.Set(x, y, true)
			}
		}
	}

	outline, _ = NewMask(w, h)
	interior, _ = NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !inside.Get(x, y) {
				continue
			}
			if !inside.Get(x-1, y) || !inside.Get(x+1, y) || !inside.Get(x, y-1) || !inside.Get(x, y+1) {
				outline.Set(x, y, true)
			} else {
				interior.Set(x, y, true)
			}
		}
	}
	return outline, interior, nil
}
