package render

import (
	"fmt"

	"github.com/lixenwraith/glyphgrid/palette"
	"github.com/lixenwraith/glyphgrid/shape"
	"github.com/lixenwraith/glyphgrid/sprite"
)

// Drawing helpers validate the whole footprint before writing, so a rejected call leaves the grid unchanged

// checkArea validates a w x h footprint at (x, y)
func (b *FrameBuffer) checkArea(x, y, w, h int) error {
	if x < 0 || y < 0 || x+w > b.width || y+h > b.height {
		return fmt.Errorf("%w: %dx%d at (%d,%d) on %dx%d", ErrOutOfBounds, w, h, x, y, b.width, b.height)
	}
	return nil
}

func (b *FrameBuffer) rowBuffer(n int) []sprite.Cell {
	if cap(b.row) < n {
		b.row = make([]sprite.Cell, n)
	}
	return b.row[:n]
}

// DrawSprite copies every cell of m with its top-left at (x, y)
func DrawSprite(b *FrameBuffer, x, y int, m *sprite.Map) error {
	if m == nil {
		return sprite.ErrNilMap
	}
	w, h := m.Size()
	if err := b.checkArea(x, y, w, h); err != nil {
		return err
	}
	row := b.rowBuffer(w)
	for sy := 0; sy < h; sy++ {
		m.CopyRow(row, sy)
		if err := b.BlockSet((y+sy)*b.width+x, row); err != nil {
			return err
		}
	}
	return nil
}

// DrawSpriteMasked copies the cells of m whose rune is not in transparent
func DrawSpriteMasked(b *FrameBuffer, x, y int, m *sprite.Map, transparent sprite.RuneSet) error {
	if m == nil {
		return sprite.ErrNilMap
	}
	w, h := m.Size()
	if err := b.checkArea(x, y, w, h); err != nil {
		return err
	}
	row := b.rowBuffer(w)
	for sy := 0; sy < h; sy++ {
		m.CopyRow(row, sy)
		for sx, c := range row {
			if transparent.Contains(c.Rune) {
				continue
			}
			b.SetCell(x+sx, y+sy, c) // area checked above
		}
	}
	return nil
}

// DrawText writes a single line of narrow graphemes starting at (x, y)
func DrawText(b *FrameBuffer, x, y int, s string, fg, bg palette.Index) error {
	m, err := sprite.Text(s, fg, bg)
	if err != nil {
		return err
	}
	return DrawSprite(b, x, y, m)
}

// DrawLine writes c on every cell of the line from (x0, y0) to (x1, y1) inclusive
func DrawLine(b *FrameBuffer, x0, y0, x1, y1 int, c sprite.Cell) error {
	pts := shape.Line(x0, y0, x1, y1)
	for _, p := range pts {
		if !b.inBounds(p.X, p.Y) {
			return b.outOfBounds(p.X, p.Y)
		}
	}
	for _, p := range pts {
		b.SetCell(p.X, p.Y, c) // every point checked above
	}
	return nil
}

// FillRect writes c over a w x h area at (x, y)
func FillRect(b *FrameBuffer, x, y, w, h int, c sprite.Cell) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, w, h)
	}
	if err := b.checkArea(x, y, w, h); err != nil {
		return err
	}
	row := b.rowBuffer(w)
	for i := range row {
		row[i] = c
	}
	for ry := 0; ry < h; ry++ {
		if err := b.BlockSet((y+ry)*b.width+x, row); err != nil {
			return err
		}
	}
	return nil
}
