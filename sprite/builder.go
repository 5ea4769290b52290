package sprite

import "fmt"

// Builder is the mutable view used to assemble a Map
type Builder struct {
	width  int
	height int
	cells  []Cell
}

// NewBuilder starts from empty cells
func NewBuilder(w, h int) (*Builder, error) {
	if err := checkDimensions(w, h); err != nil {
		return nil, err
	}
	return &Builder{width: w, height: h, cells: make([]Cell, w*h)}, nil
}

// BuilderFrom starts from a copy of m
func BuilderFrom(m *Map) *Builder {
	return &Builder{width: m.width, height: m.height, cells: m.Cells()}
}

// Width returns the column count
func (b *Builder) Width() int { return b.width }

// Height returns the row count
func (b *Builder) Height() int { return b.height }

// Set writes one cell
func (b *Builder) Set(x, y int, c Cell) error {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	b.cells[y*b.width+x] = c
	return nil
}

// Get reads one cell
func (b *Builder) Get(x, y int) (Cell, error) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	return b.cells[y*b.width+x], nil
}

// Fill overwrites every cell
func (b *Builder) Fill(c Cell) {
	fillCells(b.cells, c)
}

// Blit copies m at (x, y), skipping cells whose rune is in skip
// The whole footprint must fit; nothing is written otherwise
func (b *Builder) Blit(x, y int, m *Map, skip RuneSet) error {
	if m == nil {
		return ErrNilMap
	}
	if x < 0 || y < 0 || x+m.width > b.width || y+m.height > b.height {
		return fmt.Errorf("%w: blit %dx%d at (%d,%d) into %dx%d", ErrOutOfBounds, m.width, m.height, x, y, b.width, b.height)
	}
	blitCells(b.cells, b.width, x, y, m, skip)
	return nil
}

// blitCells copies m into a row-major grid, honoring the skip set
func blitCells(dst []Cell, dstWidth, x, y int, m *Map, skip RuneSet) {
	if skip.Len() == 0 {
		for row := 0; row < m.height; row++ {
			d := (y+row)*dstWidth + x
			copy(dst[d:d+m.width], m.cells[row*m.width:(row+1)*m.width])
		}
		return
	}
	for row := 0; row < m.height; row++ {
		d := (y+row)*dstWidth + x
		s := row * m.width
		for col := 0; col < m.width; col++ {
			c := m.cells[s+col]
			if skip.Contains(c.Rune) {
				continue
			}
			dst[d+col] = c
		}
	}
}

// Map snapshots the builder; the builder remains usable
func (b *Builder) Map() *Map {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Map{width: b.width, height: b.height, cells: cells}
}
