//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/lixenwraith/glyphgrid/parameter"
)

// resizeHandler manages SIGWINCH signals
type resizeHandler struct {
	fd      int
	sigCh   chan os.Signal
	eventCh chan ResizeEvent
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// newResizeHandler creates a resize handler for the given fd
func newResizeHandler(fd int) *resizeHandler {
	return &resizeHandler{
		fd:      fd,
		sigCh:   make(chan os.Signal, 1),
		eventCh: make(chan ResizeEvent, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// start begins listening for SIGWINCH
func (r *resizeHandler) start() {
	signal.Notify(r.sigCh, syscall.SIGWINCH)
	go r.watchLoop()
}

// stop stops the resize handler
func (r *resizeHandler) stop() {
	signal.Stop(r.sigCh)
	close(r.stopCh)
	<-r.doneCh
}

// events returns the resize event channel
func (r *resizeHandler) events() <-chan ResizeEvent {
	return r.eventCh
}

// watchLoop monitors for resize signals, keeping only the newest size
func (r *resizeHandler) watchLoop() {
	defer close(r.doneCh)

	for {
		select {
		case <-r.stopCh:
			return
		case <-r.sigCh:
			ws, err := unix.IoctlGetWinsize(r.fd, unix.TIOCGWINSZ)
			if err != nil || ws.Col == 0 || ws.Row == 0 {
				continue
			}
			sendResize(r.eventCh, ResizeEvent{Width: int(ws.Col), Height: int(ws.Row)})
		}
	}
}

// getTerminalSize returns the terminal size for a given fd
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return parameter.FallbackWidth, parameter.FallbackHeight
	}
	return int(ws.Col), int(ws.Row)
}
