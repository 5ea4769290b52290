// Package bitmap decodes true-color images and animations and imports them into sprite maps.
package bitmap

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"

	"github.com/lixenwraith/glyphgrid/parameter"
)

var (
	ErrInvalidSize  = errors.New("bitmap: invalid size")
	ErrNoQuantizer  = errors.New("bitmap: importer has no quantizer")
	ErrNoFrames     = errors.New("bitmap: source has no frames")
	ErrFrameIndex   = errors.New("bitmap: frame index out of range")
	ErrUnknownScale = errors.New("bitmap: unknown resampler")
)

// Bitmap is decoded pixel access: row-major non-premultiplied RGBA, stride 4*Width
type Bitmap interface {
	Width() int
	Height() int
	Pix() []byte
	Resize(w, h int) (Bitmap, error)
}

// Resampler selects the interpolation used by Resize
type Resampler uint8

const (
	Nearest Resampler = iota
	Bilinear
	CatmullRom
)

var resamplerNames = [...]string{
	Nearest:    "nearest",
	Bilinear:   "bilinear",
	CatmullRom: "catmullrom",
}

// String implements fmt.Stringer
func (r Resampler) String() string {
	if int(r) < len(resamplerNames) {
		return resamplerNames[r]
	}
	return fmt.Sprintf("Resampler(%d)", uint8(r))
}

// ParseResampler accepts the names printed by String, case-insensitive
func ParseResampler(s string) (Resampler, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "")
	for i, name := range resamplerNames {
		if name == s {
			return Resampler(i), nil
		}
	}
	return Nearest, fmt.Errorf("%w: %q", ErrUnknownScale, s)
}

func (r Resampler) scaler() draw.Scaler {
	switch r {
	case Bilinear:
		return draw.BiLinear
	case CatmullRom:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// RGBA is the in-memory Bitmap backed by an origin-anchored NRGBA image
type RGBA struct {
	img       *image.NRGBA
	resampler Resampler
}

// NewRGBA allocates a fully transparent bitmap
func NewRGBA(w, h int) (*RGBA, error) {
	if w <= 0 || h <= 0 || w*h > parameter.MaxGridCells {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return &RGBA{img: image.NewNRGBA(image.Rect(0, 0, w, h))}, nil
}

// FromImage copies any image into a bitmap with its top-left corner at the origin
func FromImage(src image.Image) *RGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		copy(dst.Pix, n.Pix)
		return &RGBA{img: dst}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &RGBA{img: dst}
}

// WithResampler returns a bitmap sharing pixels that resizes with r
func (b *RGBA) WithResampler(r Resampler) *RGBA {
	return &RGBA{img: b.img, resampler: r}
}

// Width returns the pixel width
func (b *RGBA) Width() int { return b.img.Rect.Dx() }

// Height returns the pixel height
func (b *RGBA) Height() int { return b.img.Rect.Dy() }

// Pix returns the backing pixels; callers must not modify them
func (b *RGBA) Pix() []byte { return b.img.Pix }

// Image exposes the bitmap as an image.Image
func (b *RGBA) Image() image.Image { return b.img }

// At returns the non-premultiplied RGBA at (x, y)
func (b *RGBA) At(x, y int) (r, g, bl, a uint8) {
	i := b.img.PixOffset(x, y)
	p := b.img.Pix[i : i+4 : i+4]
	return p[0], p[1], p[2], p[3]
}

// Resize scales into a new bitmap; same size returns the receiver
func (b *RGBA) Resize(w, h int) (Bitmap, error) {
	if w == b.Width() && h == b.Height() {
		return b, nil
	}
	out, err := NewRGBA(w, h)
	if err != nil {
		return nil, err
	}
	out.resampler = b.resampler
	b.resampler.scaler().Scale(out.img, out.img.Rect, b.img, b.img.Rect, draw.Src, nil)
	return out, nil
}
