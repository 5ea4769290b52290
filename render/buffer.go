package render

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/glyphgrid/parameter"
	"github.com/lixenwraith/glyphgrid/sprite"
	"github.com/lixenwraith/glyphgrid/terminal"
)

var (
	ErrOutOfBounds = errors.New("render: out of bounds")
	ErrDimensions  = errors.New("render: invalid dimensions")
)

// Device is the character-grid output a FrameBuffer flushes to
type Device interface {
	WriteBlock(x, y, w, h int, cells []sprite.Cell) error
	Size() (int, int)
}

// Resizer is implemented by devices that report size changes
type Resizer interface {
	ResizeChan() <-chan terminal.ResizeEvent
}

// Configurer is implemented by devices that accept title and palette changes
type Configurer interface {
	Apply(terminal.Settings) error
}

// FrameBuffer is the mutable cell grid callers draw into, with damage tracking
// Only the bounding rectangle of cells changed since the last flush is written to the device
// Not safe for concurrent use; confine to the render loop
type FrameBuffer struct {
	cells  []sprite.Cell
	width  int
	height int

	damage      Rect
	lastFlushed Rect
	visible     Rect // union of rectangles flushed since the last Clear

	block []sprite.Cell // flush staging, reused
	row   []sprite.Cell // draw staging, reused
}

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 || w*h > parameter.MaxGridCells {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, w, h)
	}
	return nil
}

// NewFrameBuffer creates an empty w x h buffer with no damage
func NewFrameBuffer(w, h int) (*FrameBuffer, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	b := &FrameBuffer{
		cells:       make([]sprite.Cell, w*h),
		width:       w,
		height:      h,
		damage:      emptyRect,
		lastFlushed: emptyRect,
		visible:     emptyRect,
	}
	fillEmpty(b.cells)
	return b, nil
}

// fillEmpty resets cells using exponential copy
func fillEmpty(cells []sprite.Cell) {
	if len(cells) == 0 {
		return
	}
	cells[0] = sprite.EmptyCell
	for filled := 1; filled < len(cells); filled *= 2 {
		copy(cells[filled:], cells[:filled])
	}
}

// Width returns the column count
func (b *FrameBuffer) Width() int { return b.width }

// Height returns the row count
func (b *FrameBuffer) Height() int { return b.height }

// inBounds returns true if in buffer bounds
func (b *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *FrameBuffer) outOfBounds(x, y int) error {
	return fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
}

// ===== CELL ACCESS =====

// SetCell stores c at (x, y); writing an identical cell leaves damage untouched
func (b *FrameBuffer) SetCell(x, y int, c sprite.Cell) error {
	if !b.inBounds(x, y) {
		return b.outOfBounds(x, y)
	}
	idx := y*b.width + x
	if b.cells[idx] == c {
		return nil
	}
	b.cells[idx] = c
	b.damage.grow(x, y)
	return nil
}

// Cell returns the cell at (x, y)
func (b *FrameBuffer) Cell(x, y int) (sprite.Cell, error) {
	if !b.inBounds(x, y) {
		return sprite.Cell{}, b.outOfBounds(x, y)
	}
	return b.cells[y*b.width+x], nil
}

// BlockSet copies a contiguous row-major run starting at linear index
// The run may cross rows; damage covers the changed span, full width when it crosses rows
func (b *FrameBuffer) BlockSet(index int, cells []sprite.Cell) error {
	if len(cells) == 0 {
		return nil
	}
	if index < 0 || index+len(cells) > len(b.cells) {
		return fmt.Errorf("%w: run [%d,%d) of %d cells", ErrOutOfBounds, index, index+len(cells), len(b.cells))
	}

	dst := b.cells[index : index+len(cells)]
	first, last := -1, -1
	for i := range cells {
		if dst[i] != cells[i] {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil
	}
	copy(dst[first:last+1], cells[first:last+1])

	start, end := index+first, index+last
	y0, y1 := start/b.width, end/b.width
	if y0 == y1 {
		b.damage.grow(start%b.width, y0)
		b.damage.grow(end%b.width, y1)
	} else {
		b.damage.grow(0, y0)
		b.damage.grow(b.width-1, y1)
	}
	return nil
}

// Clear empties the grid; damage becomes what the device currently shows as non-empty
func (b *FrameBuffer) Clear() {
	fillEmpty(b.cells)
	b.damage = b.damage.Union(b.visible)
	b.visible = emptyRect
}

// Invalidate marks the whole grid damaged, used when device colors change underneath it
func (b *FrameBuffer) Invalidate() {
	b.damage = Rect{Left: 0, Top: 0, Right: b.width - 1, Bottom: b.height - 1}
}

// Damage returns the pending damage rectangle
func (b *FrameBuffer) Damage() (Rect, bool) {
	return b.damage, !b.damage.Empty()
}

// LastFlushed returns the rectangle written by the most recent successful flush
func (b *FrameBuffer) LastFlushed() (Rect, bool) {
	return b.lastFlushed, !b.lastFlushed.Empty()
}

// ===== OUTPUT =====

// Flush writes exactly the damaged rectangle to d and resets damage
// Returns false without writing when nothing changed; on device error damage is kept for retry
func (b *FrameBuffer) Flush(d Device) (Rect, bool, error) {
	if b.damage.Empty() {
		return emptyRect, false, nil
	}
	r := b.damage
	w, h := r.Width(), r.Height()

	n := w * h
	if cap(b.block) < n {
		b.block = make([]sprite.Cell, n)
	}
	block := b.block[:n]
	for row := 0; row < h; row++ {
		src := (r.Top+row)*b.width + r.Left
		copy(block[row*w:row*w+w], b.cells[src:src+w])
	}

	if err := d.WriteBlock(r.Left, r.Top, w, h, block); err != nil {
		metricFlushErrors.Inc()
		return r, false, fmt.Errorf("render: flush %v: %w", r, err)
	}

	metricFlushes.Inc()
	metricCellsEmitted.Add(float64(n))
	b.lastFlushed = r
	b.visible = b.visible.Union(r)
	b.damage = emptyRect
	return r, true, nil
}

// Resize reallocates the grid, keeps the overlapping top-left region and damages everything
func (b *FrameBuffer) Resize(w, h int) error {
	if err := checkSize(w, h); err != nil {
		return err
	}
	cells := make([]sprite.Cell, w*h)
	fillEmpty(cells)
	cw := min(w, b.width)
	for y := 0; y < min(h, b.height); y++ {
		copy(cells[y*w:y*w+cw], b.cells[y*b.width:y*b.width+cw])
	}

	b.cells = cells
	b.width = w
	b.height = h
	b.visible = emptyRect
	b.Invalidate()
	metricResizes.Inc()
	return nil
}
