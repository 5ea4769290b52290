package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during writes)
var (
	csi     = []byte("\x1b[")
	csiSGR0 = []byte("\x1b[0m")
	csiHome = []byte("\x1b[H")
	csiRIS  = []byte("\x1bc") // Reset to Initial State (emergency)

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")
	csiClear      = []byte("\x1b[2J\x1b[H")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// DECAWM: ?7l keeps the cursor at the right edge so writing the bottom-right cell does not scroll
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	// Operating system commands
	oscTitle        = []byte("\x1b]2;")
	oscPalette      = []byte("\x1b]4;") // followed by N;rgb:RR/GG/BB ST
	oscPaletteReset = []byte("\x1b]104\x1b\\")
	st              = []byte("\x1b\\")
)

const hexDigits = "0123456789abcdef"

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeHexByte writes two lowercase hex digits
func writeHexByte(w *bufio.Writer, b uint8) {
	w.WriteByte(hexDigits[b>>4])
	w.WriteByte(hexDigits[b&0x0f])
}

// writeCursorPos writes cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeTitle writes the window title, dropping control bytes that would end the sequence early
func writeTitle(w *bufio.Writer, title string) {
	w.Write(oscTitle)
	for _, r := range title {
		if r < 0x20 || r == 0x7f {
			continue
		}
		w.WriteRune(r)
	}
	w.Write(st)
}
