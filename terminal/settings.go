// Package terminal provides the character-grid output devices a frame buffer presents to.
//
// Devices:
//   - ANSI: direct escape sequences to a writer, 16-color OSC 4, 256-color or true color
//   - Tcell: a tcell.Screen, for hosts that already run a tcell event loop
//   - Recorder: an in-memory grid that captures every block write, for tests and tooling
//
// Settings changes (title, palette) are passed explicitly through Apply; devices hold no subscriber lists.
package terminal

import (
	"github.com/lixenwraith/glyphgrid/palette"
)

// ResizeEvent represents a terminal resize
type ResizeEvent struct {
	Width  int
	Height int
}

// Settings is a diff of device properties; zero fields are left unchanged
type Settings struct {
	Title   string
	Palette *palette.Palette
}

// IsZero reports whether the settings change nothing
func (s Settings) IsZero() bool {
	return s.Title == "" && s.Palette == nil
}

// sendResize delivers ev without blocking, replacing an unconsumed older event
func sendResize(ch chan ResizeEvent, ev ResizeEvent) {
	select {
	case ch <- ev:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
