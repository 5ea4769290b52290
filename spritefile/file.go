package spritefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/lixenwraith/glyphgrid/parameter"
)

// Compression is the whole-stream wrapper around the binary layout
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

// String implements fmt.Stringer
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	default:
		return "none"
	}
}

// CompressionFor picks the wrapper from the path extension: .gz gzip, .zst zstd, anything else none
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst":
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// IsSpritePath reports whether path names a sprite file, compressed or not
func IsSpritePath(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	if CompressionFor(base) != CompressionNone {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Ext(base) == parameter.SpriteFileExt
}

// Save writes doc to path, compressed according to the extension
func Save(path string, doc *Document) error {
	if doc == nil || doc.Sprite == nil {
		return ErrNoSprite
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = writeCompressed(f, CompressionFor(path), func(w io.Writer) error {
		return Encode(w, doc.Sprite, EncodeOptions{Version: doc.Version, Palette: doc.Palette})
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func writeCompressed(w io.Writer, c Compression, encode func(io.Writer) error) error {
	switch c {
	case CompressionGzip:
		zw := gzip.NewWriter(w)
		if err := encode(zw); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()

	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if err := encode(zw); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()

	default:
		return encode(w)
	}
}

// Load reads a sprite file from path, decompressing according to the extension
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	switch CompressionFor(path) {
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer zr.Close()
		r = zr

	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	doc, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
