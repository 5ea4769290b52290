// Package palette implements the 16-color model shared by every cell of the grid:
// colors, palette indices, preset palettes and nearest-color quantization.
package palette

import (
	"errors"
	"fmt"
)

var (
	ErrPaletteSize    = errors.New("palette: exactly 16 colors required")
	ErrDuplicateColor = errors.New("palette: duplicate color")
	ErrUnknownPreset  = errors.New("palette: unknown preset")
)

// Palette is an ordered, immutable set of 16 unique colors
// Index 0 is the background color
type Palette struct {
	name   string
	colors [Size]Color
}

// New validates and builds a palette
func New(colors ...Color) (*Palette, error) {
	return newNamed("", colors)
}

// MustNew is New for static tables, panics on invalid input
func MustNew(colors ...Color) *Palette {
	p, err := New(colors...)
	if err != nil {
		panic(err)
	}
	return p
}

func newNamed(name string, colors []Color) (*Palette, error) {
	if len(colors) != Size {
		return nil, fmt.Errorf("%w: got %d", ErrPaletteSize, len(colors))
	}
	p := &Palette{name: name}
	for i, c := range colors {
		for j := 0; j < i; j++ {
			if p.colors[j] == c {
				return nil, fmt.Errorf("%w: %s at %d and %d", ErrDuplicateColor, c, j, i)
			}
		}
		p.colors[i] = c
	}
	return p, nil
}

// Name returns the preset name, empty for custom palettes
func (p *Palette) Name() string {
	return p.name
}

// IndexOf returns the first entry equal to c
func (p *Palette) IndexOf(c Color) (Index, bool) {
	for i := range p.colors {
		if p.colors[i] == c {
			return Index(i), true
		}
	}
	return InvalidIndex, false
}

// ColorAt returns the color for an index, clamped to [0,15]
func (p *Palette) ColorAt(i Index) Color {
	if i < 0 {
		i = 0
	} else if i > MaxIndex {
		i = MaxIndex
	}
	return p.colors[i]
}

// Background returns the color at BackgroundIndex
func (p *Palette) Background() Color {
	return p.colors[BackgroundIndex]
}

// Colors returns a copy of all entries
func (p *Palette) Colors() [Size]Color {
	return p.colors
}

// Equal reports whether both palettes hold the same colors in the same order
func (p *Palette) Equal(other *Palette) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.colors == other.colors
}
