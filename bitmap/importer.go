package bitmap

import (
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/glyphgrid/animation"
	"github.com/lixenwraith/glyphgrid/palette"
	"github.com/lixenwraith/glyphgrid/parameter"
	"github.com/lixenwraith/glyphgrid/parameter/visual"
	"github.com/lixenwraith/glyphgrid/sprite"
)

// TargetSize is an import size in cells, one pixel per cell
// Either Percent of the source, or Width/Height where a zero dimension keeps aspect ratio
// The zero value keeps the source size
type TargetSize struct {
	Width   int
	Height  int
	Percent float64
}

// Resolve computes the cell dimensions for a source of srcW x srcH pixels
func (t TargetSize) Resolve(srcW, srcH int) (int, int, error) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, fmt.Errorf("%w: source %dx%d", ErrInvalidSize, srcW, srcH)
	}
	if t.Width < 0 || t.Height < 0 || t.Percent < 0 {
		return 0, 0, fmt.Errorf("%w: target %dx%d %.1f%%", ErrInvalidSize, t.Width, t.Height, t.Percent)
	}
	if t.Percent > 0 && (t.Width > 0 || t.Height > 0) {
		return 0, 0, fmt.Errorf("%w: percent and absolute size are exclusive", ErrInvalidSize)
	}

	w, h := srcW, srcH
	switch {
	case t.Percent > 0:
		w = scaleDim(srcW, t.Percent/100)
		h = scaleDim(srcH, t.Percent/100)
	case t.Width > 0 && t.Height > 0:
		w, h = t.Width, t.Height
	case t.Width > 0:
		w = t.Width
		h = scaleDim(srcH, float64(t.Width)/float64(srcW))
	case t.Height > 0:
		h = t.Height
		w = scaleDim(srcW, float64(t.Height)/float64(srcH))
	}

	if w*h > parameter.MaxImportCells {
		return 0, 0, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidSize, w, h, parameter.MaxImportCells)
	}
	return w, h, nil
}

func scaleDim(n int, f float64) int {
	return max(1, int(math.Round(float64(n)*f)))
}

// Importer converts bitmaps into sprite maps through a palette quantizer
type Importer struct {
	Quantizer *palette.Quantizer
	Resampler Resampler
	// AlphaCutoff below which pixels become empty cells; 0 selects parameter.AlphaCutoff
	AlphaCutoff uint8
}

// Import resamples b to the target size and classifies every pixel into a cell
func (imp *Importer) Import(b Bitmap, t TargetSize) (*sprite.Map, error) {
	if imp.Quantizer == nil {
		return nil, ErrNoQuantizer
	}
	w, h, err := t.Resolve(b.Width(), b.Height())
	if err != nil {
		return nil, err
	}
	if rb, ok := b.(*RGBA); ok {
		b = rb.WithResampler(imp.Resampler)
	}
	if b, err = b.Resize(w, h); err != nil {
		return nil, fmt.Errorf("bitmap: resize: %w", err)
	}

	cutoff := imp.AlphaCutoff
	if cutoff == 0 {
		cutoff = parameter.AlphaCutoff
	}

	pix := b.Pix()
	cells := make([]sprite.Cell, w*h)
	for i := range cells {
		p := pix[i*4 : i*4+4 : i*4+4]
		a := p[3]
		if a < cutoff {
			cells[i] = sprite.EmptyCell
			continue
		}
		cells[i] = sprite.Cell{
			Rune: densityRune(a),
			Fg:   imp.Quantizer.Nearest(palette.RGB(p[0], p[1], p[2])),
			Bg:   palette.BackgroundIndex,
		}
	}
	return sprite.NewMap(w, h, cells)
}

// densityRune buckets alpha into four increasing-coverage block characters
func densityRune(a uint8) rune {
	switch {
	case a >= parameter.AlphaDense:
		return visual.DensityChars[3]
	case a >= parameter.AlphaMedium:
		return visual.DensityChars[2]
	case a >= parameter.AlphaLight:
		return visual.DensityChars[1]
	default:
		return visual.DensityChars[0]
	}
}

// ImportFrames imports every frame of src into an animation
// Frames without a delay use parameter.GIFDefaultDelay
func (imp *Importer) ImportFrames(src FrameSource, t TargetSize) (*animation.Animation, error) {
	n := src.FrameCount()
	if n == 0 {
		return nil, ErrNoFrames
	}
	frames := make([]animation.Frame, n)
	for i := range n {
		if err := src.SelectFrame(i); err != nil {
			return nil, err
		}
		m, err := imp.Import(src.Frame(), t)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		d := time.Duration(src.FrameDelay(i)) * parameter.GIFDelayUnit
		if d <= 0 {
			d = parameter.GIFDefaultDelay
		}
		frames[i] = animation.Frame{Sprite: m, Duration: d}
	}
	return animation.New(frames...)
}
