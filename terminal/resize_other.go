//go:build !unix

package terminal

import (
	"golang.org/x/term"

	"github.com/lixenwraith/glyphgrid/parameter"
)

// resizeHandler is inert where SIGWINCH does not exist
type resizeHandler struct {
	eventCh chan ResizeEvent
}

func newResizeHandler(int) *resizeHandler {
	return &resizeHandler{eventCh: make(chan ResizeEvent, 1)}
}

func (r *resizeHandler) start() {}

func (r *resizeHandler) stop() {}

func (r *resizeHandler) events() <-chan ResizeEvent {
	return r.eventCh
}

// getTerminalSize returns the terminal size for a given fd
func getTerminalSize(fd int) (int, int) {
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return parameter.FallbackWidth, parameter.FallbackHeight
	}
	return w, h
}
