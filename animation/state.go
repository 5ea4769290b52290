package animation

import (
	"fmt"
	"strings"
)

// State is the playback state of a Timeline
type State uint8

const (
	Stopped State = iota
	Playing
	Paused
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Direction selects how the frame index advances
type Direction uint8

const (
	Forward Direction = iota
	Backward
	PingPong
)

var directionNames = [...]string{
	Forward:  "forward",
	Backward: "backward",
	PingPong: "pingpong",
}

// String implements fmt.Stringer
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// ParseDirection accepts "forward", "backward", "pingpong" / "ping-pong"
func ParseDirection(s string) (Direction, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "")
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return Forward, fmt.Errorf("animation: unknown direction %q", s)
}
