package parameter

import "time"

// Animation Playback
const (
	// MinFrameDuration replaces zero or negative frame durations so a playing timeline always progresses
	MinFrameDuration = 10 * time.Millisecond

	// DefaultSpeed is the playback multiplier applied when options leave speed unset
	DefaultSpeed = 1.0

	// MinSpeed and MaxSpeed bound interactive speed changes in the viewer
	MinSpeed = 0.125
	MaxSpeed = 8.0

	// GIFDefaultDelay is used for GIF/WebP frames that declare no delay, matching browser behavior
	GIFDefaultDelay = 100 * time.Millisecond

	// GIFDelayUnit is the resolution of GIF frame delays (hundredths of a second)
	GIFDelayUnit = 10 * time.Millisecond
)
