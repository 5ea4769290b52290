package sprite

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/glyphgrid/parameter"
)

// Map is an immutable rectangular grid of cells, row-major
// Safe to share between layers, frames and goroutines
type Map struct {
	width  int
	height int
	cells  []Cell
}

func checkDimensions(w, h int) error {
	if w <= 0 || h <= 0 || w*h > parameter.MaxGridCells {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, w, h)
	}
	return nil
}

// NewMap copies cells into an immutable map; len(cells) must equal w*h
func NewMap(w, h int, cells []Cell) (*Map, error) {
	if err := checkDimensions(w, h); err != nil {
		return nil, err
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrDimensions, len(cells), w, h)
	}
	m := &Map{width: w, height: h, cells: make([]Cell, len(cells))}
	copy(m.cells, cells)
	return m, nil
}

// Filled returns a map where every cell is c
func Filled(w, h int, c Cell) (*Map, error) {
	if err := checkDimensions(w, h); err != nil {
		return nil, err
	}
	cells := make([]Cell, w*h)
	fillCells(cells, c)
	return &Map{width: w, height: h, cells: cells}, nil
}

// fillCells uses exponential copy
func fillCells(cells []Cell, c Cell) {
	if len(cells) == 0 {
		return
	}
	cells[0] = c
	for filled := 1; filled < len(cells); filled *= 2 {
		copy(cells[filled:], cells[:filled])
	}
}

// Width returns the column count
func (m *Map) Width() int { return m.width }

// Height returns the row count
func (m *Map) Height() int { return m.height }

// Size returns width and height
func (m *Map) Size() (int, int) { return m.width, m.height }

func (m *Map) inBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns the cell at (x, y)
func (m *Map) At(x, y int) (Cell, error) {
	if !m.inBounds(x, y) {
		return Cell{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, m.width, m.height)
	}
	return m.cells[y*m.width+x], nil
}

// CopyRow copies row y into dst, returning the number of cells copied
func (m *Map) CopyRow(dst []Cell, y int) int {
	if y < 0 || y >= m.height {
		return 0
	}
	start := y * m.width
	return copy(dst, m.cells[start:start+m.width])
}

// Cells returns a copy of all cells
func (m *Map) Cells() []Cell {
	out := make([]Cell, len(m.cells))
	copy(out, m.cells)
	return out
}

// Crop returns the w×h region starting at (x, y)
func (m *Map) Crop(x, y, w, h int) (*Map, error) {
	if err := checkDimensions(w, h); err != nil {
		return nil, err
	}
	if !m.inBounds(x, y) || !m.inBounds(x+w-1, y+h-1) {
		return nil, fmt.Errorf("%w: crop (%d,%d %dx%d) of %dx%d", ErrOutOfBounds, x, y, w, h, m.width, m.height)
	}
	cells := make([]Cell, w*h)
	for row := 0; row < h; row++ {
		src := (y+row)*m.width + x
		copy(cells[row*w:(row+1)*w], m.cells[src:src+w])
	}
	return &Map{width: w, height: h, cells: cells}, nil
}

// Equal compares dimensions and every cell
func (m *Map) Equal(other *Map) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil || m.width != other.width || m.height != other.height {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders runes row by row, NUL as space
func (m *Map) String() string {
	var sb strings.Builder
	sb.Grow((m.width + 1) * m.height)
	for y := 0; y < m.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range m.cells[y*m.width : (y+1)*m.width] {
			if c.Rune == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteRune(c.Rune)
			}
		}
	}
	return sb.String()
}
