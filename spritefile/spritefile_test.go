package spritefile

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/glyphgrid/palette"
	"github.com/lixenwraith/glyphgrid/sprite"
)

func sampleMap(t *testing.T) *sprite.Map {
	t.Helper()
	cells := []sprite.Cell{
		{Rune: 'A', Fg: 3, Bg: 1}, sprite.EmptyCell, {Rune: '█', Fg: 15, Bg: 0},
		{Rune: '░', Fg: 8, Bg: 2}, {Rune: 'é', Fg: 12, Bg: 4}, {Rune: ' ', Fg: 0, Bg: 9},
	}
	m, err := sprite.NewMap(3, 2, cells)
	require.NoError(t, err)
	return m
}

func TestEncodeVersion1Layout(t *testing.T) {
	m, err := sprite.NewMap(1, 1, []sprite.Cell{{Rune: 'A', Fg: 3, Bg: 1}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, m, EncodeOptions{}))

	want := []byte{
		1, 0, 0, 0, // version
		1, 0, 0, 0, // width
		1, 0, 0, 0, // height
		'A', 0, // character
		0x13, 0, // fg 3 | bg 1 << 4
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestRoundTripVersion1(t *testing.T) {
	m := sampleMap(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, m, EncodeOptions{Version: Version1}))

	doc, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Version1, doc.Version)
	assert.Nil(t, doc.Palette)
	assert.True(t, m.Equal(doc.Sprite), "decoded sprite differs:\n%s", doc.Sprite)
}

func TestRoundTripVersion2CarriesPalette(t *testing.T) {
	m := sampleMap(t)
	pico, err := palette.Preset("pico8")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, m, EncodeOptions{Palette: pico}))
	assert.Equal(t, 12+48+6*4, buf.Len())

	doc, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Version2, doc.Version)
	require.NotNil(t, doc.Palette)
	assert.Equal(t, pico.Colors(), doc.Palette.Colors())
	assert.True(t, m.Equal(doc.Sprite))
}

func headerBytes(version, w, h int32) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, header{Version: version, Width: w, Height: h})
	return buf.Bytes()
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"unknown version", headerBytes(3, 1, 1), ErrUnsupportedVersion},
		{"zero version", headerBytes(0, 1, 1), ErrUnsupportedVersion},
		{"negative width", headerBytes(1, -1, 1), ErrDimensions},
		{"zero height", headerBytes(1, 4, 0), ErrDimensions},
		{"oversized", headerBytes(1, 1<<20, 1), ErrDimensions},
		{"truncated records", append(headerBytes(1, 2, 1), 'A', 0, 0x01, 0), io.ErrUnexpectedEOF},
		{"truncated header", []byte{1, 0, 0}, io.ErrUnexpectedEOF},
		{"surrogate", append(headerBytes(1, 1, 1), 0x00, 0xD8, 0x01, 0), ErrCorrupt},
		{"attribute high bits", append(headerBytes(1, 1, 1), 'A', 0, 0x01, 0x01), ErrCorrupt},
		{"escape", append(headerBytes(1, 1, 1), 0x1B, 0, 0x0F, 0), ErrCorrupt},
		{"control", append(headerBytes(1, 1, 1), 0x07, 0, 0x0F, 0), ErrCorrupt},
		{"wide rune", append(headerBytes(1, 1, 1), 0x2D, 0x4E, 0x0F, 0), ErrCorrupt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeRejectsDuplicatePalette(t *testing.T) {
	data := headerBytes(2, 1, 1)
	data = append(data, make([]byte, 48)...) // sixteen blacks
	data = append(data, 'A', 0, 0x01, 0)
	_, err := Decode(bytes.NewReader(data))
	assert.ErrorIs(t, err, palette.ErrDuplicateColor)
}

func TestEncodeRejects(t *testing.T) {
	wide, err := sprite.NewMap(1, 1, []sprite.Cell{{Rune: 0x1F600}})
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.ErrorIs(t, Encode(&buf, wide, EncodeOptions{}), ErrUnencodableRune)
	assert.Zero(t, buf.Len(), "nothing written on validation failure")

	assert.ErrorIs(t, Encode(&buf, sampleMap(t), EncodeOptions{Version: 9}), ErrUnsupportedVersion)
	assert.ErrorIs(t, Encode(&buf, nil, EncodeOptions{}), ErrNoSprite)
}

func TestEncodeRejectsCells(t *testing.T) {
	tests := []struct {
		name string
		cell sprite.Cell
		want error
	}{
		{"escape", sprite.Cell{Rune: 0x1B, Fg: 15}, sprite.ErrInvalidRune},
		{"wide rune", sprite.Cell{Rune: '中', Fg: 15}, sprite.ErrWideRune},
		{"invalid fg", sprite.Cell{Rune: 'A', Fg: palette.InvalidIndex}, ErrInvalidIndex},
		{"invalid bg", sprite.Cell{Rune: 'A', Fg: 1, Bg: palette.InvalidIndex}, ErrInvalidIndex},
		{"fg past range", sprite.Cell{Rune: 'A', Fg: 16}, ErrInvalidIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := sprite.NewMap(2, 1, []sprite.Cell{{Rune: 'A', Fg: 1}, tt.cell})
			require.NoError(t, err)

			var buf bytes.Buffer
			assert.ErrorIs(t, Encode(&buf, m, EncodeOptions{}), tt.want)
			assert.Zero(t, buf.Len(), "nothing written on validation failure")
		})
	}
}

func TestEncodePaletteNeedsLayout(t *testing.T) {
	pico, err := palette.Preset(palette.PresetPico8)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.ErrorIs(t, Encode(&buf, sampleMap(t), EncodeOptions{Version: Version1, Palette: pico}), ErrPaletteLayout)
	assert.Zero(t, buf.Len())

	require.NoError(t, Encode(&buf, sampleMap(t), EncodeOptions{Version: Version2, Palette: pico}))
	doc, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, pico.Colors(), doc.Palette.Colors())
}

func TestSaveLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	m := sampleMap(t)

	tests := []struct {
		name  string
		magic []byte
		comp  Compression
	}{
		{"art.spr", []byte{1, 0, 0, 0}, CompressionNone},
		{"art.spr.gz", []byte{0x1f, 0x8b}, CompressionGzip},
		{"art.spr.zst", []byte{0x28, 0xb5, 0x2f, 0xfd}, CompressionZstd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			assert.Equal(t, tt.comp, CompressionFor(path))

			require.NoError(t, Save(path, &Document{Sprite: m}))
			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.magic, raw[:len(tt.magic)])

			doc, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, Version1, doc.Version)
			assert.True(t, m.Equal(doc.Sprite))
		})
	}
}

func TestSaveFailureRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.spr")
	wide, err := sprite.NewMap(1, 1, []sprite.Cell{{Rune: 0x1F600}})
	require.NoError(t, err)

	assert.ErrorIs(t, Save(path, &Document{Sprite: wide}), ErrUnencodableRune)
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.spr"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsSpritePath(t *testing.T) {
	tests := map[string]bool{
		"logo.ggs":        true,
		"LOGO.GGS":        true,
		"dir/logo.ggs.gz": true,
		"logo.ggs.zst":    true,
		"logo.png":        false,
		"logo.gz":         false,
		"logo":            false,
	}
	for path, want := range tests {
		assert.Equal(t, want, IsSpritePath(path), path)
	}
}
