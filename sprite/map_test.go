package sprite

import (
	"errors"
	"testing"
)

func TestNewMapLengthInvariant(t *testing.T) {
	if _, err := NewMap(2, 2, make([]Cell, 3)); !errors.Is(err, ErrDimensions) {
		t.Errorf("Expected ErrDimensions, got %v", err)
	}
	if _, err := NewMap(0, 2, nil); !errors.Is(err, ErrDimensions) {
		t.Errorf("Expected ErrDimensions for zero width, got %v", err)
	}
}

func TestNewMapCopiesInput(t *testing.T) {
	cells := []Cell{{Rune: 'a'}, {Rune: 'b'}}
	m, err := NewMap(2, 1, cells)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	cells[0].Rune = 'z'
	if c, _ := m.At(0, 0); c.Rune != 'a' {
		t.Error("Map must not alias caller slice")
	}
	out := m.Cells()
	out[1].Rune = 'z'
	if c, _ := m.At(1, 0); c.Rune != 'b' {
		t.Error("Cells must return a copy")
	}
}

func TestMapAtBounds(t *testing.T) {
	m, _ := Filled(3, 2, Cell{Rune: '#'})
	if _, err := m.At(3, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
	if _, err := m.At(-1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
	c, err := m.At(2, 1)
	if err != nil || c.Rune != '#' {
		t.Errorf("At(2,1) = %+v, %v", c, err)
	}
}

func TestCropAndString(t *testing.T) {
	b, _ := NewBuilder(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			b.Set(x, y, Cell{Rune: rune('a' + y*4 + x)})
		}
	}
	m := b.Map()
	if m.String() != "abcd\nefgh\nijkl" {
		t.Fatalf("String = %q", m.String())
	}
	sub, err := m.Crop(1, 1, 2, 2)
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if sub.String() != "fg\njk" {
		t.Errorf("Crop = %q", sub.String())
	}
	if _, err := m.Crop(3, 0, 2, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}

func TestCopyRow(t *testing.T) {
	m, _ := Filled(3, 2, Cell{Rune: 'x', Fg: 2})
	dst := make([]Cell, 3)
	if n := m.CopyRow(dst, 1); n != 3 || dst[2].Rune != 'x' {
		t.Errorf("CopyRow = %d, %+v", n, dst)
	}
	if n := m.CopyRow(dst, 2); n != 0 {
		t.Errorf("CopyRow out of range = %d", n)
	}
}

func TestBuilderBlitSkipsTransparent(t *testing.T) {
	b, _ := NewBuilder(3, 1)
	b.Fill(Cell{Rune: '.'})
	src, _ := NewMap(2, 1, []Cell{{Rune: 0}, {Rune: 'x'}})
	if err := b.Blit(1, 0, src, DefaultTransparent); err != nil {
		t.Fatalf("Blit: %v", err)
	}
	if got := b.Map().String(); got != "..x" {
		t.Errorf("Blit result %q", got)
	}
	if err := b.Blit(2, 0, src, DefaultTransparent); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
	if err := b.Blit(0, 0, nil, DefaultTransparent); !errors.Is(err, ErrNilMap) {
		t.Errorf("Expected ErrNilMap, got %v", err)
	}
	// Failed blit leaves content untouched
	if got := b.Map().String(); got != "..x" {
		t.Errorf("Failed blit modified builder: %q", got)
	}
}

func TestBuilderSnapshotIsIndependent(t *testing.T) {
	b, _ := NewBuilder(1, 1)
	b.Set(0, 0, Cell{Rune: 'a'})
	m := b.Map()
	b.Set(0, 0, Cell{Rune: 'b'})
	if c, _ := m.At(0, 0); c.Rune != 'a' {
		t.Error("Builder mutation leaked into snapshot")
	}
}

func TestText(t *testing.T) {
	m, err := Text("héllo", 15, 0)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if m.Width() != 5 || m.Height() != 1 {
		t.Fatalf("Size = %dx%d", m.Width(), m.Height())
	}
	// Decomposed e + combining acute is one cluster
	m2, err := Text("he\u0301llo", 15, 0)
	if err != nil {
		t.Fatalf("Text decomposed: %v", err)
	}
	if m2.Width() != 5 {
		t.Errorf("Decomposed width = %d", m2.Width())
	}
	if _, err := Text("日本", 1, 0); !errors.Is(err, ErrWideRune) {
		t.Errorf("Expected ErrWideRune, got %v", err)
	}
	if _, err := Text("", 1, 0); !errors.Is(err, ErrDimensions) {
		t.Errorf("Expected ErrDimensions, got %v", err)
	}
}
