// Package animation holds frame sequences and the timeline that plays them.
package animation

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/glyphgrid/parameter"
	"github.com/lixenwraith/glyphgrid/sprite"
)

var (
	ErrNoFrames   = errors.New("animation: no frames")
	ErrNilSprite  = errors.New("animation: frame has no sprite")
	ErrFrameIndex = errors.New("animation: frame index out of range")
)

// Frame pairs a sprite with its display duration
type Frame struct {
	Sprite   *sprite.Map
	Duration time.Duration
}

// EffectiveDuration substitutes MinFrameDuration for zero or negative durations
func (f Frame) EffectiveDuration() time.Duration {
	if f.Duration <= 0 {
		return parameter.MinFrameDuration
	}
	return f.Duration
}

// Animation is an immutable frame sequence; playback state lives in Timeline
type Animation struct {
	frames []Frame
	total  time.Duration
	width  int
	height int
}

// New validates and copies the frames
func New(frames ...Frame) (*Animation, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	a := &Animation{frames: make([]Frame, len(frames))}
	for i, f := range frames {
		if f.Sprite == nil {
			return nil, fmt.Errorf("%w: frame %d", ErrNilSprite, i)
		}
		a.frames[i] = f
		a.total += f.EffectiveDuration()
		a.width = max(a.width, f.Sprite.Width())
		a.height = max(a.height, f.Sprite.Height())
	}
	return a, nil
}

// Uniform builds an animation where every sprite shares one duration
func Uniform(d time.Duration, sprites ...*sprite.Map) (*Animation, error) {
	frames := make([]Frame, len(sprites))
	for i, s := range sprites {
		frames[i] = Frame{Sprite: s, Duration: d}
	}
	return New(frames...)
}

// Len returns the frame count
func (a *Animation) Len() int {
	return len(a.frames)
}

// Frame returns frame i
func (a *Animation) Frame(i int) (Frame, error) {
	if i < 0 || i >= len(a.frames) {
		return Frame{}, fmt.Errorf("%w: %d of %d", ErrFrameIndex, i, len(a.frames))
	}
	return a.frames[i], nil
}

// TotalDuration sums effective frame durations
func (a *Animation) TotalDuration() time.Duration {
	return a.total
}

// Size returns the max width and height across frames
func (a *Animation) Size() (int, int) {
	return a.width, a.height
}
