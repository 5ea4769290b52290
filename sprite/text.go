package sprite

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/lixenwraith/glyphgrid/palette"
)

// Text builds a single-row map from s, one cell per grapheme cluster
// The first rune of each cluster is kept; clusters wider than one column are rejected
func Text(s string, fg, bg palette.Index) (*Map, error) {
	if !fg.Valid() || !bg.Valid() {
		return nil, fmt.Errorf("%w: fg=%s bg=%s", ErrInvalidIndex, fg, bg)
	}
	runes, err := TextRunes(s)
	if err != nil {
		return nil, err
	}
	if len(runes) == 0 {
		return nil, fmt.Errorf("%w: empty text", ErrDimensions)
	}
	cells := make([]Cell, len(runes))
	for i, r := range runes {
		cells[i] = Cell{Rune: r, Fg: fg, Bg: bg}
	}
	return &Map{width: len(cells), height: 1, cells: cells}, nil
}

// TextRunes splits s into one displayable rune per grapheme cluster
func TextRunes(s string) ([]rune, error) {
	var out []rune
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if width > 1 {
			return nil, fmt.Errorf("%w: %q", ErrWideRune, cluster)
		}
		r := []rune(cluster)[0]
		if err := ValidateRune(r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
