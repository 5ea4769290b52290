package palette

import (
	"fmt"
	"sort"
	"strings"
)

// Preset names
const (
	PresetDefault    = "default"
	PresetCampbell   = "campbell"
	PresetCGA        = "cga"
	PresetC64        = "c64"
	PresetPico8      = "pico8"
	PresetGrayscale  = "grayscale"
	PresetTokyoNight = "tokyonight"
)

// Entry order for console-style presets:
// black, dark blue, dark green, dark cyan, dark red, dark magenta, dark yellow, gray,
// dark gray, blue, green, cyan, red, magenta, yellow, white
var presetColors = map[string][]Color{
	PresetDefault: {
		{0, 0, 0}, {0, 0, 128}, {0, 128, 0}, {0, 128, 128},
		{128, 0, 0}, {128, 0, 128}, {128, 128, 0}, {192, 192, 192},
		{128, 128, 128}, {0, 0, 255}, {0, 255, 0}, {0, 255, 255},
		{255, 0, 0}, {255, 0, 255}, {255, 255, 0}, {255, 255, 255},
	},
	PresetCampbell: {
		{12, 12, 12}, {0, 55, 218}, {19, 161, 14}, {58, 150, 221},
		{197, 15, 31}, {136, 23, 152}, {193, 156, 0}, {204, 204, 204},
		{118, 118, 118}, {59, 120, 255}, {22, 198, 12}, {97, 214, 214},
		{231, 72, 86}, {180, 0, 158}, {249, 241, 165}, {242, 242, 242},
	},
	PresetCGA: {
		{0x00, 0x00, 0x00}, {0x00, 0x00, 0xAA}, {0x00, 0xAA, 0x00}, {0x00, 0xAA, 0xAA},
		{0xAA, 0x00, 0x00}, {0xAA, 0x00, 0xAA}, {0xAA, 0x55, 0x00}, {0xAA, 0xAA, 0xAA},
		{0x55, 0x55, 0x55}, {0x55, 0x55, 0xFF}, {0x55, 0xFF, 0x55}, {0x55, 0xFF, 0xFF},
		{0xFF, 0x55, 0x55}, {0xFF, 0x55, 0xFF}, {0xFF, 0xFF, 0x55}, {0xFF, 0xFF, 0xFF},
	},
	// VIC-II order (Pepto)
	PresetC64: {
		{0x00, 0x00, 0x00}, {0xFF, 0xFF, 0xFF}, {0x68, 0x37, 0x2B}, {0x70, 0xA4, 0xB2},
		{0x6F, 0x3D, 0x86}, {0x58, 0x8D, 0x43}, {0x35, 0x28, 0x79}, {0xB8, 0xC7, 0x6F},
		{0x6F, 0x4F, 0x25}, {0x43, 0x39, 0x00}, {0x9A, 0x67, 0x59}, {0x44, 0x44, 0x44},
		{0x6C, 0x6C, 0x6C}, {0x9A, 0xD2, 0x84}, {0x6C, 0x5E, 0xB5}, {0x95, 0x95, 0x95},
	},
	PresetPico8: {
		{0x00, 0x00, 0x00}, {0x1D, 0x2B, 0x53}, {0x7E, 0x25, 0x53}, {0x00, 0x87, 0x51},
		{0xAB, 0x52, 0x36}, {0x5F, 0x57, 0x4F}, {0xC2, 0xC3, 0xC7}, {0xFF, 0xF1, 0xE8},
		{0xFF, 0x00, 0x4D}, {0xFF, 0xA3, 0x00}, {0xFF, 0xEC, 0x27}, {0x00, 0xE4, 0x36},
		{0x29, 0xAD, 0xFF}, {0x83, 0x76, 0x9C}, {0xFF, 0x77, 0xA8}, {0xFF, 0xCC, 0xAA},
	},
	PresetGrayscale: grayRamp(),
	PresetTokyoNight: {
		{26, 27, 38}, {0x7a, 0xa2, 0xf7}, {0x9e, 0xce, 0x6a}, {0x7d, 0xcf, 0xff},
		{0xf7, 0x76, 0x8e}, {0xbb, 0x9a, 0xf7}, {0xe0, 0xaf, 0x68}, {0xa9, 0xb1, 0xd6},
		{0x41, 0x48, 0x68}, {0x8d, 0xb0, 0xff}, {0x9f, 0xe0, 0x44}, {0xa4, 0xda, 0xff},
		{0xff, 0x89, 0x9d}, {0xc7, 0xa9, 0xff}, {0xfa, 0xba, 0x4a}, {0xc0, 0xca, 0xf5},
	},
}

// presets is built once at init, every entry validated under the palette invariants
var presets = map[string]*Palette{}

// Default is the classic console palette
var Default *Palette

func init() {
	for name, colors := range presetColors {
		p, err := newNamed(name, colors)
		if err != nil {
			panic(fmt.Sprintf("palette: invalid preset %q: %v", name, err))
		}
		presets[name] = p
	}
	Default = presets[PresetDefault]
}

func grayRamp() []Color {
	ramp := make([]Color, Size)
	for i := range ramp {
		v := uint8(i * 17)
		ramp[i] = Color{v, v, v}
	}
	return ramp
}

// Preset returns a named preset, case-insensitive
func Preset(name string) (*Palette, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// PresetNames returns all preset names sorted
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
