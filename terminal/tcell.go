package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/glyphgrid/palette"
	"github.com/lixenwraith/glyphgrid/sprite"
)

// eventBuffer bounds queued non-resize events; older events are dropped when the caller does not drain
const eventBuffer = 64

// Tcell presents cell blocks through a tcell.Screen
// Resize events are split from the remaining raw events, which are left to the caller to decode
type Tcell struct {
	screen tcell.Screen
	pal    *palette.Palette
	colors [palette.Size]tcell.Color

	resizeCh chan ResizeEvent
	eventCh  chan tcell.Event
	doneCh   chan struct{}
}

// NewTcell initializes screen (a new terminal screen when nil) and starts its event pump
func NewTcell(screen tcell.Screen, p *palette.Palette) (*Tcell, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("terminal: tcell screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: tcell init: %w", err)
	}
	screen.HideCursor()

	if p == nil {
		p = palette.Default
	}
	t := &Tcell{
		screen:   screen,
		resizeCh: make(chan ResizeEvent, 1),
		eventCh:  make(chan tcell.Event, eventBuffer),
		doneCh:   make(chan struct{}),
	}
	t.setPalette(p)
	go t.pump()
	return t, nil
}

// pump forwards screen events until the screen is finalized
func (t *Tcell) pump() {
	defer close(t.doneCh)
	defer close(t.eventCh)
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			w, h := ev.Size()
			sendResize(t.resizeCh, ResizeEvent{Width: w, Height: h})
		default:
			select {
			case t.eventCh <- ev:
			default:
			}
		}
	}
}

// Screen exposes the wrapped screen
func (t *Tcell) Screen() tcell.Screen { return t.screen }

// Events delivers every non-resize event
func (t *Tcell) Events() <-chan tcell.Event { return t.eventCh }

// ResizeChan delivers the newest size after each resize
func (t *Tcell) ResizeChan() <-chan ResizeEvent { return t.resizeCh }

// Size returns the screen dimensions
func (t *Tcell) Size() (int, int) { return t.screen.Size() }

// Fini releases the screen and waits for the event pump to exit
func (t *Tcell) Fini() {
	t.screen.Fini()
	<-t.doneCh
}

// Apply changes title and palette
func (t *Tcell) Apply(s Settings) error {
	if s.Palette != nil {
		t.setPalette(s.Palette)
	}
	if s.Title != "" {
		t.screen.SetTitle(s.Title)
	}
	return nil
}

func (t *Tcell) setPalette(p *palette.Palette) {
	t.pal = p
	for i, c := range p.Colors() {
		t.colors[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
}

// WriteBlock stores a w x h block of row-major cells at (x, y) and shows the screen
func (t *Tcell) WriteBlock(x, y, w, h int, cells []sprite.Cell) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	if len(cells) < w*h {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrShortBlock, len(cells), w, h)
	}
	for row := 0; row < h; row++ {
		for col, c := range cells[row*w : row*w+w] {
			style := tcell.StyleDefault.
				Foreground(t.colors[palette.NewIndex(int(c.Fg))]).
				Background(t.colors[palette.NewIndex(int(c.Bg))])
			t.screen.SetContent(x+col, y+row, sprite.DisplayRune(c.Rune), nil, style)
		}
	}
	t.screen.Show()
	return nil
}
