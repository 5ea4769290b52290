package bitmap

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"strings"

	webpanim "github.com/deepteams/webp/animation"
	"golang.org/x/image/draw"

	"github.com/lixenwraith/glyphgrid/parameter"
)

// FrameSource is a multi-frame bitmap with per-frame delays in hundredths of a second
type FrameSource interface {
	FrameCount() int
	SelectFrame(i int) error
	FrameDelay(i int) int
	Frame() Bitmap
}

// frameList is a fully composited, randomly addressable frame sequence
type frameList struct {
	frames  []*RGBA
	delays  []int
	current int
}

// FrameCount returns the number of frames
func (l *frameList) FrameCount() int { return len(l.frames) }

// SelectFrame makes frame i current
func (l *frameList) SelectFrame(i int) error {
	if i < 0 || i >= len(l.frames) {
		return fmt.Errorf("%w: %d of %d", ErrFrameIndex, i, len(l.frames))
	}
	l.current = i
	return nil
}

// FrameDelay returns the delay of frame i in hundredths of a second, 0 when out of range
func (l *frameList) FrameDelay(i int) int {
	if i < 0 || i >= len(l.delays) {
		return 0
	}
	return l.delays[i]
}

// Frame returns the current frame
func (l *frameList) Frame() Bitmap { return l.frames[l.current] }

// Still wraps a single bitmap as a one-frame source
func Still(b *RGBA) FrameSource {
	return &frameList{frames: []*RGBA{b}, delays: []int{0}}
}

// ===== GIF =====

// GIFSource holds every GIF frame composited onto the logical screen with disposal applied
type GIFSource struct {
	frameList
	// LoopCount follows image/gif: 0 loops forever, -1 plays once
	LoopCount int
}

// NewGIFSource decodes all frames of a GIF stream
func NewGIFSource(r io.Reader) (*GIFSource, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("bitmap: gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}

	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() {
		for _, pm := range g.Image {
			screen = screen.Union(pm.Bounds())
		}
		screen = image.Rect(0, 0, screen.Max.X, screen.Max.Y)
	}
	if screen.Dx()*screen.Dy() > parameter.MaxGridCells {
		return nil, fmt.Errorf("%w: gif screen %dx%d", ErrInvalidSize, screen.Dx(), screen.Dy())
	}

	canvas := image.NewNRGBA(screen)
	var saved *image.NRGBA
	src := &GIFSource{LoopCount: g.LoopCount}

	for i, pm := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			saved = cloneNRGBA(canvas)
		}

		draw.Draw(canvas, pm.Bounds(), pm, pm.Bounds().Min, draw.Over)
		src.frames = append(src.frames, &RGBA{img: cloneNRGBA(canvas)})

		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		src.delays = append(src.delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, pm.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if saved != nil {
				copy(canvas.Pix, saved.Pix)
			}
		}
	}
	return src, nil
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// ===== WEBP =====

// WebPSource holds the composited canvas snapshots of an animated WebP
type WebPSource struct {
	frameList
	// LoopCount is the container loop count, 0 loops forever
	LoopCount int
}

// NewWebPSource decodes every frame of an animated WebP stream
func NewWebPSource(r io.Reader) (*WebPSource, error) {
	anim, err := webpanim.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("bitmap: webp: %w", err)
	}
	if len(anim.Frames) == 0 {
		return nil, ErrNoFrames
	}
	if anim.CanvasWidth*anim.CanvasHeight > parameter.MaxGridCells {
		return nil, fmt.Errorf("%w: webp canvas %dx%d", ErrInvalidSize, anim.CanvasWidth, anim.CanvasHeight)
	}
	if err := anim.DecodeFrames(); err != nil {
		return nil, fmt.Errorf("bitmap: webp frames: %w", err)
	}

	src := &WebPSource{LoopCount: anim.LoopCount}
	dec := webpanim.NewAnimDecoder(anim)
	for dec.HasNext() {
		img, d, err := dec.NextFrame()
		if err != nil {
			return nil, fmt.Errorf("bitmap: webp frame %d: %w", len(src.frames), err)
		}
		src.frames = append(src.frames, FromImage(img))
		src.delays = append(src.delays, int(d/parameter.GIFDelayUnit))
	}
	return src, nil
}

// ===== DISPATCH =====

// LoadFrames opens path as a frame source chosen by extension
// .gif and .webp yield every frame, anything else a single still
func LoadFrames(path string) (FrameSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		src, err := NewGIFSource(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return src, nil

	case ".webp":
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		if src, err := NewWebPSource(bytes.NewReader(data)); err == nil {
			return src, nil
		}
		// Simple (non-animated) WebP
		b, _, err := Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return Still(b), nil

	default:
		b, _, err := Decode(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return Still(b), nil
	}
}
