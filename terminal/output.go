package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/lixenwraith/glyphgrid/palette"
	"github.com/lixenwraith/glyphgrid/parameter"
	"github.com/lixenwraith/glyphgrid/sprite"
)

// ErrShortBlock is returned when a block write carries fewer cells than its rectangle
var ErrShortBlock = errors.New("terminal: block shorter than rectangle")

// ANSI writes cell blocks as escape sequences with coalesced SGR state
// Not safe for concurrent use
type ANSI struct {
	out    io.Writer
	writer *bufio.Writer
	fd     int // -1 when out is not a terminal

	colorMode ColorMode
	pal       *palette.Palette
	xterm     [palette.Size]uint8 // palette resolved for ColorMode256

	fixedW, fixedH int

	// Style state for coalescing
	lastFg    palette.Index
	lastBg    palette.Index
	lastValid bool

	inFd     int
	oldState *term.State
	resize   *resizeHandler
	started  bool
}

// ANSIOption configures an ANSI device
type ANSIOption func(*ANSI)

// WithColorMode selects the color encoding; the default is ColorMode256
func WithColorMode(m ColorMode) ANSIOption {
	return func(a *ANSI) { a.colorMode = m }
}

// WithSize pins the reported size, for writers that are not terminals
func WithSize(w, h int) ANSIOption {
	return func(a *ANSI) { a.fixedW, a.fixedH = w, h }
}

// WithPalette sets the initial palette; the default is palette.Default
func WithPalette(p *palette.Palette) ANSIOption {
	return func(a *ANSI) {
		if p != nil {
			a.pal = p
		}
	}
}

// NewANSI creates a device writing to out
func NewANSI(out io.Writer, opts ...ANSIOption) *ANSI {
	a := &ANSI{
		out:       out,
		writer:    bufio.NewWriterSize(out, parameter.OutputBufferSize),
		fd:        -1,
		inFd:      -1,
		colorMode: ColorMode256,
		pal:       palette.Default,
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.fd = int(f.Fd())
	}
	for _, opt := range opts {
		opt(a)
	}
	a.resolvePalette()
	return a
}

// Init enters the alternate screen, hides the cursor and starts resize tracking
// When stdin is a terminal it is switched to raw mode so keystrokes do not echo over the grid
func (a *ANSI) Init() error {
	if a.started {
		return nil
	}
	if fd := int(os.Stdin.Fd()); a.fd >= 0 && term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("terminal: raw mode: %w", err)
		}
		a.inFd, a.oldState = fd, old
	}
	if a.fd >= 0 {
		a.resize = newResizeHandler(a.fd)
		a.resize.start()
	}

	w := a.writer
	w.Write(csiAltScreenEnter)
	w.Write(csiCursorHide)
	w.Write(csiAutoWrapOff)
	w.Write(csiSGR0)
	w.Write(csiClear)
	if a.colorMode == ColorModePalette {
		a.writePalette()
	}
	a.started = true
	a.lastValid = false
	return w.Flush()
}

// Fini restores the terminal state changed by Init
func (a *ANSI) Fini() {
	if !a.started {
		return
	}
	a.started = false
	if a.resize != nil {
		a.resize.stop()
		a.resize = nil
	}

	w := a.writer
	w.Write(csiSGR0)
	if a.colorMode == ColorModePalette {
		w.Write(oscPaletteReset)
	}
	w.Write(csiAutoWrapOn)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Flush()

	if a.oldState != nil {
		term.Restore(a.inFd, a.oldState)
		a.oldState = nil
	}
}

// Size returns the pinned size, the terminal size, or the fallback
func (a *ANSI) Size() (int, int) {
	if a.fixedW > 0 && a.fixedH > 0 {
		return a.fixedW, a.fixedH
	}
	if a.fd >= 0 {
		return getTerminalSize(a.fd)
	}
	return parameter.FallbackWidth, parameter.FallbackHeight
}

// ResizeChan delivers SIGWINCH-driven size changes after Init; nil when not tracking
func (a *ANSI) ResizeChan() <-chan ResizeEvent {
	if a.resize == nil {
		return nil
	}
	return a.resize.events()
}

// ColorMode returns the active color encoding
func (a *ANSI) ColorMode() ColorMode { return a.colorMode }

// Apply changes title and palette
func (a *ANSI) Apply(s Settings) error {
	if s.Palette != nil {
		a.pal = s.Palette
		a.resolvePalette()
		a.lastValid = false
		if a.colorMode == ColorModePalette {
			a.writePalette()
		}
	}
	if s.Title != "" {
		writeTitle(a.writer, s.Title)
	}
	return a.writer.Flush()
}

// WriteBlock writes a w x h block of row-major cells with its top-left at (x, y)
func (a *ANSI) WriteBlock(x, y, w, h int, cells []sprite.Cell) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	if len(cells) < w*h {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrShortBlock, len(cells), w, h)
	}

	bw := a.writer
	for row := 0; row < h; row++ {
		writeCursorPos(bw, x, y+row)
		a.writeRow(bw, cells[row*w:row*w+w])
	}

	bw.Write(csiSGR0)
	a.lastValid = false
	return bw.Flush()
}

// WriteText emits a w x h grid as flowing lines without cursor addressing, for files and pipes
func (a *ANSI) WriteText(w, h int, cells []sprite.Cell) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	if len(cells) < w*h {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrShortBlock, len(cells), w, h)
	}

	bw := a.writer
	for row := 0; row < h; row++ {
		a.writeRow(bw, cells[row*w:row*w+w])
		bw.Write(csiSGR0)
		bw.WriteByte('\n')
		a.lastValid = false
	}
	return bw.Flush()
}

func (a *ANSI) writeRow(bw *bufio.Writer, cells []sprite.Cell) {
	for _, c := range cells {
		a.writeStyleCoalesced(bw, c.Fg, c.Bg)

		r := sprite.DisplayRune(c.Rune)
		if r < 0x80 {
			bw.WriteByte(byte(r))
		} else {
			bw.WriteRune(r)
		}
	}
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(oscPaletteReset)
	w.Write(csiRIS)
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}

func (a *ANSI) resolvePalette() {
	for i := range a.xterm {
		a.xterm[i] = RGBTo256(a.pal.ColorAt(palette.Index(i)))
	}
}

// writePalette redefines the terminal's 16 ANSI colors
func (a *ANSI) writePalette() {
	w := a.writer
	for i, c := range a.pal.Colors() {
		w.Write(oscPalette)
		writeInt(w, i)
		w.WriteString(";rgb:")
		writeHexByte(w, c.R)
		w.WriteByte('/')
		writeHexByte(w, c.G)
		w.WriteByte('/')
		writeHexByte(w, c.B)
		w.Write(st)
	}
}

// writeStyleCoalesced emits a single combined SGR sequence when colors change
func (a *ANSI) writeStyleCoalesced(w *bufio.Writer, fg, bg palette.Index) {
	fgChanged := !a.lastValid || fg != a.lastFg
	bgChanged := !a.lastValid || bg != a.lastBg
	if !fgChanged && !bgChanged {
		return
	}

	w.Write(csi)
	if fgChanged {
		a.writeColorParams(w, fg, false)
	}
	if bgChanged {
		if fgChanged {
			w.WriteByte(';')
		}
		a.writeColorParams(w, bg, true)
	}
	w.WriteByte('m')

	a.lastFg = fg
	a.lastBg = bg
	a.lastValid = true
}

// writeColorParams writes color parameters (no CSI prefix, no 'm' suffix)
func (a *ANSI) writeColorParams(w *bufio.Writer, idx palette.Index, background bool) {
	i := palette.NewIndex(int(idx))

	switch a.colorMode {
	case ColorModePalette:
		// 30-37 / 90-97 foreground, 40-47 / 100-107 background
		base := 30
		if i >= 8 {
			base = 90 - 8
		}
		if background {
			base += 10
		}
		writeInt(w, base+int(i))

	case ColorModeTrueColor:
		c := a.pal.ColorAt(i)
		if background {
			w.WriteString("48;2;")
		} else {
			w.WriteString("38;2;")
		}
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))

	default:
		if background {
			w.WriteString("48;5;")
		} else {
			w.WriteString("38;5;")
		}
		writeInt(w, int(a.xterm[i]))
	}
}
