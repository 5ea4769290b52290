package sprite

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNoLayers     = errors.New("sprite: compositor has no layers")
	ErrInvalidLayer = errors.New("sprite: invalid layer")
)

// Layer is one entry of the compositor stack
type Layer struct {
	Z   int
	X   int
	Y   int
	Map *Map
}

func (l Layer) right() int  { return l.X + l.Map.width }
func (l Layer) bottom() int { return l.Y + l.Map.height }

// Compositor merges an ordered stack of maps into one flattened map
// Runes in the transparent set never override lower layers
type Compositor struct {
	transparent RuneSet
	layers      []Layer // ascending Z
	width       int
	height      int
}

// NewCompositor fixes the transparent set for the compositor's lifetime
func NewCompositor(transparent RuneSet) *Compositor {
	return &Compositor{transparent: transparent}
}

// Transparent returns the non-override rune set
func (c *Compositor) Transparent() RuneSet {
	return c.transparent
}

// AddLayer inserts m at z, replacing any layer already at z
func (c *Compositor) AddLayer(x, y int, m *Map, z int) error {
	if m == nil {
		return fmt.Errorf("%w: nil map at z=%d", ErrInvalidLayer, z)
	}
	if x < 0 || y < 0 {
		return fmt.Errorf("%w: negative offset (%d,%d) at z=%d", ErrInvalidLayer, x, y, z)
	}

	layer := Layer{Z: z, X: x, Y: y, Map: m}
	i, found := c.search(z)
	if found {
		old := c.layers[i]
		c.layers[i] = layer
		if old.right() == c.width || old.bottom() == c.height {
			c.recomputeSize()
			return nil
		}
	} else {
		c.layers = append(c.layers, Layer{})
		copy(c.layers[i+1:], c.layers[i:])
		c.layers[i] = layer
	}
	c.width = max(c.width, layer.right())
	c.height = max(c.height, layer.bottom())
	return nil
}

// AppendLayer places m above every existing layer and returns its z
func (c *Compositor) AppendLayer(x, y int, m *Map) (int, error) {
	z := 0
	if n := len(c.layers); n > 0 {
		z = c.layers[n-1].Z + 1
	}
	if err := c.AddLayer(x, y, m, z); err != nil {
		return 0, err
	}
	return z, nil
}

// RemoveLayer deletes the layer at z, reporting whether one existed
func (c *Compositor) RemoveLayer(z int) bool {
	i, found := c.search(z)
	if !found {
		return false
	}
	old := c.layers[i]
	c.layers = append(c.layers[:i], c.layers[i+1:]...)
	if old.right() == c.width || old.bottom() == c.height {
		c.recomputeSize()
	}
	return true
}

// Layers returns the stack in ascending z order
func (c *Compositor) Layers() []Layer {
	out := make([]Layer, len(c.layers))
	copy(out, c.layers)
	return out
}

// Len returns the layer count
func (c *Compositor) Len() int {
	return len(c.layers)
}

// Size returns the canvas size: max extent per axis across all layers
func (c *Compositor) Size() (int, int) {
	return c.width, c.height
}

// Build flattens the stack
// A single layer at the origin is returned as-is without copying
func (c *Compositor) Build() (*Map, error) {
	switch len(c.layers) {
	case 0:
		return nil, ErrNoLayers
	case 1:
		if l := c.layers[0]; l.X == 0 && l.Y == 0 {
			return l.Map, nil
		}
	}

	cells := make([]Cell, c.width*c.height)
	for _, l := range c.layers {
		blitCells(cells, c.width, l.X, l.Y, l.Map, c.transparent)
	}
	return &Map{width: c.width, height: c.height, cells: cells}, nil
}

// search returns the position of z in the sorted stack
func (c *Compositor) search(z int) (int, bool) {
	i := sort.Search(len(c.layers), func(i int) bool { return c.layers[i].Z >= z })
	return i, i < len(c.layers) && c.layers[i].Z == z
}

// recomputeSize takes max width and max height independently
func (c *Compositor) recomputeSize() {
	c.width, c.height = 0, 0
	for _, l := range c.layers {
		c.width = max(c.width, l.right())
		c.height = max(c.height, l.bottom())
	}
}
