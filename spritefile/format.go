// Package spritefile reads and writes the versioned binary sprite format.
//
// Layout, little endian:
//
//	int32 version
//	int32 width
//	int32 height
//	[version 2] 16 x (uint8 R, uint8 G, uint8 B) palette
//	width*height x (uint16 UTF-16 code unit, int16 attribute fg | bg<<4)
//
// Compression is a transparent wrapper chosen by file extension, never by content.
package spritefile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf16"

	"github.com/lixenwraith/glyphgrid/palette"
	"github.com/lixenwraith/glyphgrid/parameter"
	"github.com/lixenwraith/glyphgrid/sprite"
)

var (
	ErrUnsupportedVersion = errors.New("spritefile: unsupported version")
	ErrUnencodableRune    = errors.New("spritefile: rune not encodable as a single UTF-16 unit")
	ErrDimensions         = errors.New("spritefile: invalid dimensions")
	ErrCorrupt            = errors.New("spritefile: corrupt record")
	ErrNoSprite           = errors.New("spritefile: document has no sprite")
	ErrInvalidIndex       = errors.New("spritefile: palette index out of range")
	ErrPaletteLayout      = errors.New("spritefile: version has no palette block")
)

const (
	Version1 = 1 // header and records
	Version2 = 2 // header, palette block and records

	recordSize = 4
)

// layout describes what a version carries between header and records
type layout struct {
	palette bool
}

var layouts = map[int32]layout{
	Version1: {},
	Version2: {palette: true},
}

type header struct {
	Version int32
	Width   int32
	Height  int32
}

// Document is a decoded sprite file
type Document struct {
	Version int
	Sprite  *sprite.Map
	// Palette is set for version 2 files
	Palette *palette.Palette
}

// EncodeOptions selects the output version; Version 0 picks 2 when a palette is given, else 1
type EncodeOptions struct {
	Version int
	Palette *palette.Palette
}

func (o EncodeOptions) version() int32 {
	if o.Version != 0 {
		return int32(o.Version)
	}
	if o.Palette != nil {
		return Version2
	}
	return Version1
}

func checkDimensions(w, h int) error {
	if w <= 0 || h <= 0 ||
		w > parameter.SpriteFileMaxDimension || h > parameter.SpriteFileMaxDimension ||
		w*h > parameter.MaxGridCells {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, w, h)
	}
	return nil
}

// Encode writes m in the selected version
func Encode(w io.Writer, m *sprite.Map, opts EncodeOptions) error {
	if m == nil {
		return ErrNoSprite
	}
	v := opts.version()
	lay, ok := layouts[v]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	if opts.Palette != nil && !lay.palette {
		return fmt.Errorf("%w: %d", ErrPaletteLayout, v)
	}
	width, height := m.Size()
	if err := checkDimensions(width, height); err != nil {
		return err
	}

	// Validate every cell before writing anything
	cells := m.Cells()
	for i, c := range cells {
		if c.Rune > 0xFFFF || utf16.IsSurrogate(c.Rune) {
			return fmt.Errorf("%w: %U at (%d,%d)", ErrUnencodableRune, c.Rune, i%width, i/width)
		}
		if err := sprite.ValidateRune(c.Rune); err != nil {
			return fmt.Errorf("%w at (%d,%d)", err, i%width, i/width)
		}
		if !c.Fg.Valid() || !c.Bg.Valid() {
			return fmt.Errorf("%w: fg=%s bg=%s at (%d,%d)", ErrInvalidIndex, c.Fg, c.Bg, i%width, i/width)
		}
	}

	bw := bufio.NewWriter(w)
	hdr := header{Version: v, Width: int32(width), Height: int32(height)}
	if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
		return err
	}

	if lay.palette {
		p := opts.Palette
		if p == nil {
			p = palette.Default
		}
		for _, c := range p.Colors() {
			bw.Write([]byte{c.R, c.G, c.B})
		}
	}

	var rec [recordSize]byte
	for _, c := range cells {
		binary.LittleEndian.PutUint16(rec[0:2], uint16(c.Rune))
		binary.LittleEndian.PutUint16(rec[2:4], c.Attribute())
		bw.Write(rec[:])
	}
	return bw.Flush()
}

// Decode reads a sprite file, dispatching on its version field
func Decode(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)

	var hdr header
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("spritefile: header: %w", err)
	}
	lay, ok := layouts[hdr.Version]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, hdr.Version)
	}
	width, height := int(hdr.Width), int(hdr.Height)
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	doc := &Document{Version: int(hdr.Version)}
	if lay.palette {
		var raw [palette.Size * 3]byte
		if _, err := io.ReadFull(br, raw[:]); err != nil {
			return nil, fmt.Errorf("spritefile: palette: %w", err)
		}
		colors := make([]palette.Color, palette.Size)
		for i := range colors {
			colors[i] = palette.RGB(raw[i*3], raw[i*3+1], raw[i*3+2])
		}
		p, err := palette.New(colors...)
		if err != nil {
			return nil, fmt.Errorf("spritefile: palette: %w", err)
		}
		doc.Palette = p
	}

	raw := make([]byte, width*height*recordSize)
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, fmt.Errorf("spritefile: records: %w", err)
	}
	cells := make([]sprite.Cell, width*height)
	for i := range cells {
		rec := raw[i*recordSize : i*recordSize+recordSize]
		r := rune(binary.LittleEndian.Uint16(rec[0:2]))
		attr := binary.LittleEndian.Uint16(rec[2:4])
		if utf16.IsSurrogate(r) {
			return nil, fmt.Errorf("%w: surrogate %U at (%d,%d)", ErrCorrupt, r, i%width, i/width)
		}
		if attr > 0xFF {
			return nil, fmt.Errorf("%w: attribute %#x at (%d,%d)", ErrCorrupt, attr, i%width, i/width)
		}
		if err := sprite.ValidateRune(r); err != nil {
			return nil, fmt.Errorf("%w: %v at (%d,%d)", ErrCorrupt, err, i%width, i/width)
		}
		cells[i] = sprite.CellFromAttribute(r, attr)
	}

	m, err := sprite.NewMap(width, height, cells)
	if err != nil {
		return nil, err
	}
	doc.Sprite = m
	return doc, nil
}
