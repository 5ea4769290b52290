package animation

import (
	"fmt"
	"time"

	"github.com/lixenwraith/glyphgrid/parameter"
	"github.com/lixenwraith/glyphgrid/sprite"
)

// Hooks are called synchronously from Timeline methods
// Nil hooks are skipped
type Hooks struct {
	// OnFrameChanged fires on every actual frame index change
	OnFrameChanged func(index int)
	// OnLooped fires on every wrap or ping-pong flip with the new loop count
	OnLooped func(loops int)
	// OnFinished fires when playback ends because the loop budget is exhausted
	OnFinished func()
}

// Options configure a Timeline
type Options struct {
	Direction Direction
	Looping   bool
	// LoopLimit caps the number of loops while Looping; 0 is unlimited
	LoopLimit int
	// Speed multiplies elapsed time; 0 selects the default
	Speed float64
	Hooks Hooks
}

// Timeline plays an Animation under a stopped/playing/paused state machine
// Not safe for concurrent use; drive it from the render loop
type Timeline struct {
	anim  *Animation
	hooks Hooks

	direction Direction
	looping   bool
	loopLimit int
	speed     float64

	state     State
	index     int
	elapsed   time.Duration
	reversing bool // ping-pong: currently moving toward frame 0
	loops     int
}

// NewTimeline starts Stopped with the cursor at the direction's first frame
func NewTimeline(a *Animation, opts Options) (*Timeline, error) {
	if a == nil || len(a.frames) == 0 {
		return nil, ErrNoFrames
	}
	speed := opts.Speed
	if speed == 0 {
		speed = parameter.DefaultSpeed
	}
	t := &Timeline{
		anim:      a,
		hooks:     opts.Hooks,
		direction: opts.Direction,
		looping:   opts.Looping,
		loopLimit: opts.LoopLimit,
		speed:     speed,
	}
	t.index = t.startIndex()
	return t, nil
}

// ===== STATE MACHINE =====

// Play starts from the beginning when Stopped, resumes when Paused, no-op when Playing
func (t *Timeline) Play() {
	switch t.state {
	case Playing:
		return
	case Paused:
		t.state = Playing
	case Stopped:
		t.rewind()
		t.state = Playing
	}
}

// Pause freezes a playing timeline in place
func (t *Timeline) Pause() {
	if t.state == Playing {
		t.state = Paused
	}
}

// Stop halts playback and resets the cursor
func (t *Timeline) Stop() {
	t.state = Stopped
	t.rewind()
}

// Seek pauses at frame i
func (t *Timeline) Seek(i int) error {
	if i < 0 || i >= t.anim.Len() {
		return fmt.Errorf("%w: %d of %d", ErrFrameIndex, i, t.anim.Len())
	}
	t.state = Paused
	t.elapsed = 0
	t.setIndex(i)
	return nil
}

// ===== PER-TICK UPDATE =====

// Advance accumulates dt scaled by speed and steps through every frame whose duration elapsed
// No-op unless Playing with more than one frame and a positive speed
func (t *Timeline) Advance(dt time.Duration) {
	if t.state != Playing || t.anim.Len() <= 1 || t.speed <= 0 || dt <= 0 {
		return
	}
	t.elapsed += time.Duration(float64(dt) * t.speed)

	for t.state == Playing {
		d := t.anim.frames[t.index].EffectiveDuration()
		if t.elapsed < d {
			return
		}
		t.elapsed -= d
		t.step()
	}
}

// step moves one frame according to direction, wrapping, flipping or finishing at the ends
func (t *Timeline) step() {
	last := t.anim.Len() - 1

	switch t.direction {
	case Backward:
		if t.index > 0 {
			t.setIndex(t.index - 1)
			return
		}
		if !t.canLoop() {
			t.finish()
			return
		}
		t.setIndex(last)
		t.loop()

	case PingPong:
		if !t.reversing {
			if t.index < last {
				t.setIndex(t.index + 1)
				return
			}
			t.reversing = true
			t.setIndex(last - 1)
			t.loop()
			return
		}
		if t.index > 0 {
			t.setIndex(t.index - 1)
			return
		}
		if !t.canLoop() {
			t.finish()
			return
		}
		t.reversing = false
		t.setIndex(1)
		t.loop()

	default: // Forward
		if t.index < last {
			t.setIndex(t.index + 1)
			return
		}
		if !t.canLoop() {
			t.finish()
			return
		}
		t.setIndex(0)
		t.loop()
	}
}

func (t *Timeline) canLoop() bool {
	return t.looping && (t.loopLimit <= 0 || t.loops < t.loopLimit)
}

func (t *Timeline) loop() {
	t.loops++
	if t.hooks.OnLooped != nil {
		t.hooks.OnLooped(t.loops)
	}
}

// finish stops without resetting the cursor
func (t *Timeline) finish() {
	t.state = Stopped
	t.elapsed = 0
	if t.hooks.OnFinished != nil {
		t.hooks.OnFinished()
	}
}

func (t *Timeline) setIndex(i int) {
	if i == t.index {
		return
	}
	t.index = i
	if t.hooks.OnFrameChanged != nil {
		t.hooks.OnFrameChanged(i)
	}
}

func (t *Timeline) startIndex() int {
	if t.direction == Backward {
		return t.anim.Len() - 1
	}
	return 0
}

func (t *Timeline) rewind() {
	t.elapsed = 0
	t.loops = 0
	t.reversing = false
	t.setIndex(t.startIndex())
}

// ===== ACCESSORS =====

// CurrentFrame returns the active sprite without mutating state
func (t *Timeline) CurrentFrame() *sprite.Map {
	return t.anim.frames[t.index].Sprite
}

// CurrentIndex returns the active frame index
func (t *Timeline) CurrentIndex() int { return t.index }

// State returns the playback state
func (t *Timeline) State() State { return t.state }

// Loops returns the loop counter since the last rewind
func (t *Timeline) Loops() int { return t.loops }

// Elapsed returns time accumulated within the current frame
func (t *Timeline) Elapsed() time.Duration { return t.elapsed }

// Animation returns the frames being played
func (t *Timeline) Animation() *Animation { return t.anim }

// Speed returns the playback multiplier
func (t *Timeline) Speed() float64 { return t.speed }

// SetSpeed changes the multiplier; values <= 0 freeze Advance
func (t *Timeline) SetSpeed(s float64) { t.speed = s }

// Direction returns the configured direction
func (t *Timeline) Direction() Direction { return t.direction }

// SetDirection changes direction in place; ping-pong resumes moving forward
func (t *Timeline) SetDirection(d Direction) {
	t.direction = d
	t.reversing = false
}

// SetLooping toggles looping and sets the loop limit (0 = unlimited)
func (t *Timeline) SetLooping(looping bool, limit int) {
	t.looping = looping
	t.loopLimit = limit
}

// SetHooks replaces the notification callbacks
func (t *Timeline) SetHooks(h Hooks) { t.hooks = h }
