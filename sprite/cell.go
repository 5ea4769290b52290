// Package sprite holds the renderable cell model: Cell, the immutable Map grid,
// its mutable Builder, and the layered Compositor.
package sprite

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/glyphgrid/palette"
)

var (
	ErrInvalidRune  = errors.New("sprite: invalid rune")
	ErrWideRune     = errors.New("sprite: rune wider than one cell")
	ErrInvalidIndex = errors.New("sprite: invalid palette index")
	ErrDimensions   = errors.New("sprite: invalid dimensions")
	ErrOutOfBounds  = errors.New("sprite: coordinate out of bounds")
	ErrNilMap       = errors.New("sprite: nil map")
)

// Cell is one grid position: a rune and two palette indices
// Comparable: == is the identity test used by damage tracking
type Cell struct {
	Rune rune
	Fg   palette.Index
	Bg   palette.Index
}

// widthCond measures ambiguous-width runes (box drawing, shades) as narrow regardless of locale
var widthCond = &runewidth.Condition{EastAsianWidth: false}

// EmptyCell is the zero value: NUL rune on the background index
var EmptyCell = Cell{Rune: 0, Fg: palette.BackgroundIndex, Bg: palette.BackgroundIndex}

// NewCell validates a cell at the boundary
func NewCell(r rune, fg, bg palette.Index) (Cell, error) {
	if err := ValidateRune(r); err != nil {
		return Cell{}, err
	}
	if !fg.Valid() || !bg.Valid() {
		return Cell{}, fmt.Errorf("%w: fg=%s bg=%s", ErrInvalidIndex, fg, bg)
	}
	return Cell{Rune: r, Fg: fg, Bg: bg}, nil
}

// MustCell is NewCell for literals, panics on invalid input
func MustCell(r rune, fg, bg palette.Index) Cell {
	c, err := NewCell(r, fg, bg)
	if err != nil {
		panic(err)
	}
	return c
}

// RuneWidth returns the display width in columns
func RuneWidth(r rune) int {
	return widthCond.RuneWidth(r)
}

// ValidateRune accepts NUL and any printable rune occupying at most one column
func ValidateRune(r rune) error {
	if r == 0 {
		return nil
	}
	if !utf8.ValidRune(r) || unicode.IsControl(r) {
		return fmt.Errorf("%w: %U", ErrInvalidRune, r)
	}
	if widthCond.RuneWidth(r) > 1 {
		return fmt.Errorf("%w: %U", ErrWideRune, r)
	}
	return nil
}

// DisplayRune returns the rune to put on screen for r: NUL and runes rejected by ValidateRune become a space
func DisplayRune(r rune) rune {
	if r == 0 || ValidateRune(r) != nil {
		return ' '
	}
	return r
}

// IsEmpty reports whether the cell equals EmptyCell
func (c Cell) IsEmpty() bool {
	return c == EmptyCell
}

// WithRune returns a copy with a different rune
func (c Cell) WithRune(r rune) Cell {
	c.Rune = r
	return c
}

// Attribute packs the colors as fg | bg<<4
func (c Cell) Attribute() uint16 {
	return uint16(c.Fg&0x0F) | uint16(c.Bg&0x0F)<<4
}

// CellFromAttribute unpacks a packed attribute
func CellFromAttribute(r rune, attr uint16) Cell {
	return Cell{
		Rune: r,
		Fg:   palette.Index(attr & 0x0F),
		Bg:   palette.Index((attr >> 4) & 0x0F),
	}
}
