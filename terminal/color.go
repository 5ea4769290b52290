package terminal

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/glyphgrid/palette"
)

// ColorMode selects how palette indices reach the terminal
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // nearest xterm-256 entry per palette color
	ColorModeTrueColor                  // 24-bit RGB per palette color
	ColorModePalette                    // redefine the terminal's 16 ANSI colors via OSC 4, emit indices
)

var colorModeNames = [...]string{
	ColorMode256:       "256",
	ColorModeTrueColor: "truecolor",
	ColorModePalette:   "palette",
}

// String implements fmt.Stringer
func (m ColorMode) String() string {
	if int(m) < len(colorModeNames) {
		return colorModeNames[m]
	}
	return fmt.Sprintf("ColorMode(%d)", uint8(m))
}

// ParseColorMode accepts "auto", "256", "truecolor"/"true"/"24bit", "palette"/"16"
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectColorMode(), nil
	case "256":
		return ColorMode256, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	case "palette", "16":
		return ColorModePalette, nil
	}
	return ColorMode256, fmt.Errorf("terminal: unknown color mode %q", s)
}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube index 0-5
var cubeIndex [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := abs(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 finds the nearest xterm-256 palette index for a color
// Palettes only hold 16 colors, so devices resolve once per Apply instead of a full lookup table
func RGBTo256(c palette.Color) uint8 {
	r, g, b := c.R, c.G, c.B

	// Grayscale ramp: 232-255 maps to luminance 8, 18, 28, ..., 238
	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(abs(int(r)-gray), abs(int(g)-gray), abs(int(b)-gray))

	if maxDiff < 10 {
		if gray < 4 {
			return 16
		}
		if gray > 243 {
			return 231
		}
		grayIdx := min(232+(gray-8)/10, 255)

		grayLevel := 8 + (grayIdx-232)*10
		grayDist := abs(int(r)-grayLevel) + abs(int(g)-grayLevel) + abs(int(b)-grayLevel)

		cubeDist := abs(int(r)-int(cubeValues[cubeIndex[r]])) +
			abs(int(g)-int(cubeValues[cubeIndex[g]])) +
			abs(int(b)-int(cubeValues[cubeIndex[b]]))

		if grayDist < cubeDist {
			return uint8(grayIdx)
		}
	}

	return 16 + 36*cubeIndex[r] + 6*cubeIndex[g] + cubeIndex[b]
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("ALACRITTY_LOG") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}
