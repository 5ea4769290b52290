package shape

import (
	"fmt"
	"image"

	"github.com/lixenwraith/glyphgrid/parameter/visual"
	"github.com/lixenwraith/glyphgrid/sprite"
)

// Style selects the cells written by a shape
// Outline and Fill may use different runes and colors
type Style struct {
	Outline sprite.Cell
	Fill    sprite.Cell
	Filled  bool
}

// Solid returns a style whose outline and fill share one cell
func Solid(c sprite.Cell, filled bool) Style {
	return Style{Outline: c, Fill: c, Filled: filled}
}

// Rectangle renders a w×h rectangle; cells off the shape stay empty
func Rectangle(w, h int, s Style) (*sprite.Map, error) {
	outline, interior, err := RectMasks(w, h)
	if err != nil {
		return nil, err
	}
	return fromMasks(outline, interior, s)
}

// Ellipse renders the ellipse inscribed in a w×h box
func Ellipse(w, h int, s Style) (*sprite.Map, error) {
	outline, interior, err := EllipseMasks(w, h)
	if err != nil {
		return nil, err
	}
	return fromMasks(outline, interior, s)
}

// Box renders a framed rectangle using box-drawing runes for the outline
// Requires at least 2×2 so every corner exists; frame supplies the outline colors
func Box(w, h int, chars visual.BoxChars, frame, fill sprite.Cell, filled bool) (*sprite.Map, error) {
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("%w: box needs 2x2, got %dx%d", ErrInvalidSize, w, h)
	}
	b, err := sprite.NewBuilder(w, h)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r rune
			switch {
			case y == 0 && x == 0:
				r = chars.TopLeft
			case y == 0 && x == w-1:
				r = chars.TopRight
			case y == h-1 && x == 0:
				r = chars.BottomLeft
			case y == h-1 && x == w-1:
				r = chars.BottomRight
			case y == 0 || y == h-1:
				r = chars.Horizontal
			case x == 0 || x == w-1:
				r = chars.Vertical
			default:
				if filled {
					b.Set(x, y, fill) // in bounds by construction
				}
				continue
			}
			b.Set(x, y, frame.WithRune(r)) // in bounds by construction
		}
	}
	return b.Map(), nil
}

// LineMap renders the line from (0,0) to (dx,dy) into a map sized to its bounding box
// The returned point is the map position relative to the line start
func LineMap(dx, dy int, c sprite.Cell) (*sprite.Map, image.Point, error) {
	origin := image.Point{X: min(0, dx), Y: min(0, dy)}
	b, err := sprite.NewBuilder(abs(dx)+1, abs(dy)+1)
	if err != nil {
		return nil, image.Point{}, err
	}
	for _, p := range Line(0, 0, dx, dy) {
		b.Set(p.X-origin.X, p.Y-origin.Y, c) // builder spans the bounding box
	}
	return b.Map(), origin, nil
}

// fromMasks reads the masks back cell by cell
func fromMasks(outline, interior *Mask, s Style) (*sprite.Map, error) {
	b, err := sprite.NewBuilder(outline.width, outline.height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < outline.height; y++ {
		for x := 0; x < outline.width; x++ {
			switch {
			case outline.Get(x, y):
				b.Set(x, y, s.Outline) // builder matches mask size
			case s.Filled && interior.Get(x, y):
				b.Set(x, y, s.Fill) // builder matches mask size
			}
		}
	}
	return b.Map(), nil
}
