package bitmap

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "github.com/deepteams/webp"
)

// Decode reads a PNG, JPEG, GIF (first frame) or WebP image
func Decode(r io.Reader) (*RGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("bitmap: decode: %w", err)
	}
	return FromImage(img), format, nil
}

// Load opens and decodes an image file
func Load(path string) (*RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
