package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB value without alpha
// Comparable: == is structural equality
type Color struct {
	R, G, B uint8
}

// RGB constructs a Color from channel values
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex parses "#rrggbb" or "#rgb"
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("palette: invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the "#rrggbb" form
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer
func (c Color) String() string {
	return c.Hex()
}

// Luminance returns Rec. 601 luma
// Integer math: (R*299 + G*587 + B*114) / 1000
func (c Color) Luminance() uint8 {
	return uint8((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000)
}

// Inverse returns the per-channel complement
func (c Color) Inverse() Color {
	return Color{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

// Grayscale returns the luma as a gray color
func (c Color) Grayscale() Color {
	l := c.Luminance()
	return Color{R: l, G: l, B: l}
}

// Colorful converts to the go-colorful representation for perceptual math
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Lerp linearly interpolates between two colors
// t=0 returns a, t=1 returns b
func Lerp(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return Color{
		R: uint8(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: uint8(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: uint8(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}
