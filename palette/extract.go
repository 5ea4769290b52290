package palette

import (
	"errors"
	"image"
	"image/color"
	"sort"

	"github.com/soniakeys/quant/median"

	"github.com/lixenwraith/glyphgrid/parameter"
)

// ErrEmptyImage is returned when an image has no opaque pixels to sample
var ErrEmptyImage = errors.New("palette: image has no opaque pixels")

type histEntry struct {
	color Color
	count int
}

// FromImage derives a palette from the image's pixel histogram
// Up to 16 distinct colors are used directly, most frequent first (index 0 becomes the background)
// Larger histograms are reduced by median cut; remaining slots are padded from Default
func FromImage(img image.Image) (*Palette, error) {
	hist := histogram(img)
	if len(hist) == 0 {
		return nil, ErrEmptyImage
	}

	var picked []Color
	if len(hist) <= Size {
		for _, e := range hist {
			picked = append(picked, e.color)
		}
	} else {
		picked = medianCut(img, hist)
	}

	return newNamed("", pad(picked))
}

// histogram counts opaque colors, ordered by descending frequency then by value for determinism
func histogram(img image.Image) []histEntry {
	b := img.Bounds()
	counts := make(map[Color]int)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if n.A < parameter.ExtractAlphaCutoff {
				continue
			}
			counts[Color{n.R, n.G, n.B}]++
		}
	}

	hist := make([]histEntry, 0, len(counts))
	for c, n := range counts {
		hist = append(hist, histEntry{color: c, count: n})
	}
	sort.Slice(hist, func(i, j int) bool {
		if hist[i].count != hist[j].count {
			return hist[i].count > hist[j].count
		}
		return colorKey(hist[i].color) < colorKey(hist[j].color)
	})
	return hist
}

// medianCut reduces to 16 colors and orders the result by histogram weight
func medianCut(img image.Image, hist []histEntry) []Color {
	cp := median.Quantizer(Size).Quantize(make(color.Palette, 0, Size), img)

	weights := make(map[Color]int, len(cp))
	var picked []Color
	for _, pc := range cp {
		n := color.NRGBAModel.Convert(pc).(color.NRGBA)
		c := Color{n.R, n.G, n.B}
		if _, dup := weights[c]; dup {
			continue
		}
		weights[c] = 0
		picked = append(picked, c)
	}

	// Weight each representative by the pixels that quantize to it
	for _, e := range hist {
		n := color.NRGBAModel.Convert(cp.Convert(color.NRGBA{e.color.R, e.color.G, e.color.B, 255})).(color.NRGBA)
		c := Color{n.R, n.G, n.B}
		if _, ok := weights[c]; ok {
			weights[c] += e.count
		}
	}

	sort.SliceStable(picked, func(i, j int) bool {
		wi, wj := weights[picked[i]], weights[picked[j]]
		if wi != wj {
			return wi > wj
		}
		return colorKey(picked[i]) < colorKey(picked[j])
	})
	if len(picked) > Size {
		picked = picked[:Size]
	}
	return picked
}

// pad fills remaining slots with unused Default entries
func pad(picked []Color) []Color {
	out := make([]Color, 0, Size)
	seen := make(map[Color]bool, Size)
	for _, c := range picked {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, c := range Default.colors {
		if len(out) == Size {
			break
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	// Default has 16 entries, so at most 16 picked colors collide; fill any remaining gap with a gray walk
	for v := 1; len(out) < Size && v < 256; v++ {
		c := Color{uint8(v), uint8(v), uint8(v)}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func colorKey(c Color) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
