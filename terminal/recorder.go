package terminal

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lixenwraith/glyphgrid/palette"
	"github.com/lixenwraith/glyphgrid/sprite"
)

// ErrBlockBounds is returned when a block write falls outside the device grid
var ErrBlockBounds = errors.New("terminal: block outside device bounds")

// BlockWrite is one captured WriteBlock call
type BlockWrite struct {
	X, Y          int
	Width, Height int
	Cells         []sprite.Cell
}

// Recorder is an in-memory device that keeps its grid and every block written to it
type Recorder struct {
	mu       sync.Mutex
	width    int
	height   int
	grid     []sprite.Cell
	writes   []BlockWrite
	applied  []Settings
	failNext error
	resizeCh chan ResizeEvent
}

// NewRecorder creates a w x h recorder with an empty grid
func NewRecorder(w, h int) *Recorder {
	return &Recorder{
		width:    w,
		height:   h,
		grid:     emptyGrid(w * h),
		resizeCh: make(chan ResizeEvent, 1),
	}
}

func emptyGrid(n int) []sprite.Cell {
	grid := make([]sprite.Cell, max(n, 0))
	for i := range grid {
		grid[i] = sprite.EmptyCell
	}
	return grid
}

// WriteBlock copies the block into the grid and records it
func (r *Recorder) WriteBlock(x, y, w, h int, cells []sprite.Cell) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.failNext; err != nil {
		r.failNext = nil
		return err
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	if len(cells) < w*h {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrShortBlock, len(cells), w, h)
	}
	if x < 0 || y < 0 || x+w > r.width || y+h > r.height {
		return fmt.Errorf("%w: %dx%d at (%d,%d) on %dx%d", ErrBlockBounds, w, h, x, y, r.width, r.height)
	}

	block := make([]sprite.Cell, w*h)
	copy(block, cells)
	for row := 0; row < h; row++ {
		copy(r.grid[(y+row)*r.width+x:], block[row*w:row*w+w])
	}
	r.writes = append(r.writes, BlockWrite{X: x, Y: y, Width: w, Height: h, Cells: block})
	return nil
}

// FailNext makes the next WriteBlock return err without writing
func (r *Recorder) FailNext(err error) {
	r.mu.Lock()
	r.failNext = err
	r.mu.Unlock()
}

// Size returns the grid dimensions
func (r *Recorder) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// SetSize resizes the grid, keeping the overlapping region, and emits a resize event
func (r *Recorder) SetSize(w, h int) {
	r.mu.Lock()
	grid := emptyGrid(w * h)
	for y := 0; y < min(h, r.height); y++ {
		copy(grid[y*w:y*w+min(w, r.width)], r.grid[y*r.width:])
	}
	r.width, r.height, r.grid = w, h, grid
	r.mu.Unlock()

	sendResize(r.resizeCh, ResizeEvent{Width: w, Height: h})
}

// ResizeChan delivers sizes set through SetSize
func (r *Recorder) ResizeChan() <-chan ResizeEvent { return r.resizeCh }

// Apply records the settings
func (r *Recorder) Apply(s Settings) error {
	r.mu.Lock()
	r.applied = append(r.applied, s)
	r.mu.Unlock()
	return nil
}

// Applied returns every settings diff received
func (r *Recorder) Applied() []Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Settings(nil), r.applied...)
}

// Palette returns the most recently applied palette, or nil
func (r *Recorder) Palette() *palette.Palette {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.applied) - 1; i >= 0; i-- {
		if r.applied[i].Palette != nil {
			return r.applied[i].Palette
		}
	}
	return nil
}

// Writes returns the captured block writes in order
func (r *Recorder) Writes() []BlockWrite {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]BlockWrite(nil), r.writes...)
}

// Reset forgets captured writes, keeping the grid
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.writes = nil
	r.mu.Unlock()
}

// Cell returns the grid cell at (x, y)
func (r *Recorder) Cell(x, y int) (sprite.Cell, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return sprite.Cell{}, false
	}
	return r.grid[y*r.width+x], true
}

// String renders the grid runes, NUL as space, rows separated by newlines
func (r *Recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sb strings.Builder
	for y := 0; y < r.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range r.grid[y*r.width : (y+1)*r.width] {
			if c.Rune == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteRune(c.Rune)
			}
		}
	}
	return sb.String()
}
