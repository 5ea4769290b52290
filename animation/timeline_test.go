package animation

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/glyphgrid/parameter"
	"github.com/lixenwraith/glyphgrid/sprite"
)

func frameSprite(t *testing.T, r rune) *sprite.Map {
	t.Helper()
	m, err := sprite.Filled(1, 1, sprite.MustCell(r, 15, 0))
	if err != nil {
		t.Fatalf("Filled: %v", err)
	}
	return m
}

func uniformAnim(t *testing.T, n int, d time.Duration) *Animation {
	t.Helper()
	sprites := make([]*sprite.Map, n)
	for i := range sprites {
		sprites[i] = frameSprite(t, rune('a'+i))
	}
	a, err := Uniform(d, sprites...)
	if err != nil {
		t.Fatalf("Uniform: %v", err)
	}
	return a
}

func mustTimeline(t *testing.T, a *Animation, opts Options) *Timeline {
	t.Helper()
	tl, err := NewTimeline(a, opts)
	if err != nil {
		t.Fatalf("NewTimeline: %v", err)
	}
	return tl
}

func TestNewTimelineRejectsMissingAnimation(t *testing.T) {
	if _, err := NewTimeline(nil, Options{}); !errors.Is(err, ErrNoFrames) {
		t.Errorf("Expected ErrNoFrames for nil animation, got %v", err)
	}
	if _, err := NewTimeline(&Animation{}, Options{Looping: true}); !errors.Is(err, ErrNoFrames) {
		t.Errorf("Expected ErrNoFrames for zero animation, got %v", err)
	}
}

func TestNewRejectsEmptyAndNil(t *testing.T) {
	if _, err := New(); !errors.Is(err, ErrNoFrames) {
		t.Errorf("Expected ErrNoFrames, got %v", err)
	}
	if _, err := New(Frame{Duration: time.Second}); !errors.Is(err, ErrNilSprite) {
		t.Errorf("Expected ErrNilSprite, got %v", err)
	}
}

func TestTotalDurationClampsZero(t *testing.T) {
	a, err := New(
		Frame{Sprite: frameSprite(t, 'a'), Duration: 0},
		Frame{Sprite: frameSprite(t, 'b'), Duration: 40 * time.Millisecond},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := parameter.MinFrameDuration + 40*time.Millisecond
	if a.TotalDuration() != want {
		t.Errorf("Expected total %v, got %v", want, a.TotalDuration())
	}
}

func TestAdvanceWrapsAndCountsLoops(t *testing.T) {
	a := uniformAnim(t, 3, time.Second)
	var looped []int
	tl := mustTimeline(t, a, Options{Looping: true, Hooks: Hooks{OnLooped: func(n int) { looped = append(looped, n) }}})
	tl.Play()
	tl.Advance(3500 * time.Millisecond)

	if tl.CurrentIndex() != 0 {
		t.Errorf("Expected index 0, got %d", tl.CurrentIndex())
	}
	if tl.Loops() != 1 || len(looped) != 1 || looped[0] != 1 {
		t.Errorf("Expected one loop notification, got loops=%d notes=%v", tl.Loops(), looped)
	}
	if tl.Elapsed() != 500*time.Millisecond {
		t.Errorf("Expected 500ms carried, got %v", tl.Elapsed())
	}
}

func TestPingPongSequence(t *testing.T) {
	a := uniformAnim(t, 4, time.Second)
	tl := mustTimeline(t, a, Options{Direction: PingPong, Looping: true})
	tl.Play()

	got := []int{tl.CurrentIndex()}
	for range 7 {
		tl.Advance(time.Second)
		got = append(got, tl.CurrentIndex())
	}
	want := []int{0, 1, 2, 3, 2, 1, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected sequence %v, got %v", want, got)
		}
	}
	if tl.Loops() != 2 {
		t.Errorf("Expected 2 flips counted, got %d", tl.Loops())
	}
}

func TestFinishPinsLastFrame(t *testing.T) {
	a := uniformAnim(t, 3, time.Second)
	finished := 0
	tl := mustTimeline(t, a, Options{Hooks: Hooks{OnFinished: func() { finished++ }}})
	tl.Play()
	tl.Advance(5 * time.Second)

	if tl.State() != Stopped {
		t.Errorf("Expected stopped, got %v", tl.State())
	}
	if tl.CurrentIndex() != 2 {
		t.Errorf("Expected pinned at 2, got %d", tl.CurrentIndex())
	}
	if finished != 1 {
		t.Errorf("Expected 1 finish notification, got %d", finished)
	}

	// Further ticks do nothing once stopped
	tl.Advance(5 * time.Second)
	if finished != 1 || tl.CurrentIndex() != 2 {
		t.Errorf("Expected no change after finish, got index=%d finished=%d", tl.CurrentIndex(), finished)
	}

	// Play from stopped restarts
	tl.Play()
	if tl.CurrentIndex() != 0 || tl.State() != Playing {
		t.Errorf("Expected restart at 0 playing, got %d %v", tl.CurrentIndex(), tl.State())
	}
}

func TestLoopLimit(t *testing.T) {
	a := uniformAnim(t, 2, time.Second)
	tl := mustTimeline(t, a, Options{Looping: true, LoopLimit: 2})
	tl.Play()
	tl.Advance(10 * time.Second)

	if tl.State() != Stopped {
		t.Errorf("Expected stopped, got %v", tl.State())
	}
	if tl.Loops() != 2 {
		t.Errorf("Expected 2 loops, got %d", tl.Loops())
	}
	if tl.CurrentIndex() != 1 {
		t.Errorf("Expected pinned at 1, got %d", tl.CurrentIndex())
	}
}

func TestPingPongWithoutLoopingFinishesAtStart(t *testing.T) {
	a := uniformAnim(t, 3, time.Second)
	tl := mustTimeline(t, a, Options{Direction: PingPong})
	tl.Play()
	tl.Advance(10 * time.Second)

	if tl.State() != Stopped || tl.CurrentIndex() != 0 {
		t.Errorf("Expected stopped at 0, got %v at %d", tl.State(), tl.CurrentIndex())
	}
	if tl.Loops() != 1 {
		t.Errorf("Expected 1 flip, got %d", tl.Loops())
	}
}

func TestBackward(t *testing.T) {
	a := uniformAnim(t, 3, time.Second)
	tl := mustTimeline(t, a, Options{Direction: Backward, Looping: true})
	if tl.CurrentIndex() != 2 {
		t.Fatalf("Expected start at 2, got %d", tl.CurrentIndex())
	}
	tl.Play()
	var seq []int
	for range 4 {
		tl.Advance(time.Second)
		seq = append(seq, tl.CurrentIndex())
	}
	want := []int{1, 0, 2, 1}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, seq)
		}
	}
}

func TestAdvanceNoOps(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		speed float64
		play  bool
	}{
		{"not playing", 3, 1, false},
		{"single frame", 1, 1, true},
		{"zero speed", 3, 0, true},
		{"negative speed", 3, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := uniformAnim(t, tt.n, time.Second)
			changes := 0
			tl := mustTimeline(t, a, Options{Looping: true, Hooks: Hooks{OnFrameChanged: func(int) { changes++ }}})
			tl.SetSpeed(tt.speed)
			if tt.play {
				tl.Play()
			}
			tl.Advance(10 * time.Second)
			if tl.CurrentIndex() != 0 || changes != 0 || tl.Elapsed() != 0 {
				t.Errorf("Expected no-op, got index=%d changes=%d elapsed=%v", tl.CurrentIndex(), changes, tl.Elapsed())
			}
		})
	}
}

func TestSpeedScalesTime(t *testing.T) {
	a := uniformAnim(t, 3, time.Second)
	tl := mustTimeline(t, a, Options{Speed: 2})
	tl.Play()
	tl.Advance(500 * time.Millisecond)
	if tl.CurrentIndex() != 1 {
		t.Errorf("Expected index 1 at double speed, got %d", tl.CurrentIndex())
	}
}

func TestZeroDurationFrameUsesMinimum(t *testing.T) {
	a := uniformAnim(t, 3, 0)
	tl := mustTimeline(t, a, Options{Looping: true})
	tl.Play()
	tl.Advance(parameter.MinFrameDuration)
	if tl.CurrentIndex() != 1 {
		t.Errorf("Expected one step per MinFrameDuration, got %d", tl.CurrentIndex())
	}
}

func TestPauseAndSeek(t *testing.T) {
	a := uniformAnim(t, 4, time.Second)
	var changes []int
	tl := mustTimeline(t, a, Options{Hooks: Hooks{OnFrameChanged: func(i int) { changes = append(changes, i) }}})

	if err := tl.Seek(4); !errors.Is(err, ErrFrameIndex) {
		t.Errorf("Expected ErrFrameIndex, got %v", err)
	}
	if err := tl.Seek(2); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if tl.State() != Paused || tl.CurrentIndex() != 2 {
		t.Errorf("Expected paused at 2, got %v at %d", tl.State(), tl.CurrentIndex())
	}
	if tl.CurrentFrame() != a.frames[2].Sprite {
		t.Errorf("Expected frame 2 sprite")
	}

	tl.Advance(time.Second)
	if tl.CurrentIndex() != 2 {
		t.Errorf("Expected paused timeline to hold, got %d", tl.CurrentIndex())
	}

	// Resume from paused keeps position
	tl.Play()
	tl.Advance(time.Second)
	if tl.CurrentIndex() != 3 {
		t.Errorf("Expected resume to 3, got %d", tl.CurrentIndex())
	}

	tl.Pause()
	if tl.State() != Paused {
		t.Errorf("Expected paused, got %v", tl.State())
	}

	tl.Stop()
	if tl.State() != Stopped || tl.CurrentIndex() != 0 {
		t.Errorf("Expected stopped at 0, got %v at %d", tl.State(), tl.CurrentIndex())
	}
	want := []int{2, 3, 0}
	if len(changes) != len(want) {
		t.Fatalf("Expected changes %v, got %v", want, changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("Expected changes %v, got %v", want, changes)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := map[string]Direction{
		"forward":   Forward,
		"Backward":  Backward,
		"ping-pong": PingPong,
		"pingpong":  PingPong,
	}
	for in, want := range tests {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q): expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Errorf("Expected error for unknown direction")
	}
}
