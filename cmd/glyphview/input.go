package main

import (
	"bufio"
	"io"

	"github.com/gdamore/tcell/v2"
)

// action is a viewer control decoded from either input path
type action uint8

const (
	actionNone action = iota
	actionQuit
	actionToggle
	actionRestart
	actionNext
	actionPrev
	actionFaster
	actionSlower
	actionDirection
)

var actionNames = [...]string{
	actionNone:      "none",
	actionQuit:      "quit",
	actionToggle:    "toggle",
	actionRestart:   "restart",
	actionNext:      "next",
	actionPrev:      "prev",
	actionFaster:    "faster",
	actionSlower:    "slower",
	actionDirection: "direction",
}

func (a action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Control bytes seen on a raw-mode stdin
const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// runeAction maps printable keys shared by both devices
func runeAction(r rune) action {
	switch r {
	case 'q', 'Q', keyCtrlC, keyEscape:
		return actionQuit
	case ' ', 'p':
		return actionToggle
	case 'r':
		return actionRestart
	case 'l', '.':
		return actionNext
	case 'h', ',':
		return actionPrev
	case '+', '=':
		return actionFaster
	case '-', '_':
		return actionSlower
	case 'd':
		return actionDirection
	}
	return actionNone
}

// tcellAction decodes a tcell key event
func tcellAction(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRight:
		return actionNext
	case tcell.KeyLeft:
		return actionPrev
	case tcell.KeyUp:
		return actionFaster
	case tcell.KeyDown:
		return actionSlower
	case tcell.KeyRune:
		return runeAction(ev.Rune())
	}
	return actionNone
}

// readActions decodes raw-mode bytes from r until EOF
// Arrow keys arrive as ESC [ A..D and are folded into their actions; a lone ESC quits
func readActions(r io.Reader, out chan<- action) {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return
		}
		a := runeAction(rune(b))
		if b == keyEscape && br.Buffered() >= 2 {
			if next, _ := br.Peek(1); next[0] == '[' {
				br.ReadByte()
				code, _ := br.ReadByte()
				a = arrowAction(code)
			}
		}
		if a != actionNone {
			out <- a
		}
	}
}

func arrowAction(code byte) action {
	switch code {
	case 'A':
		return actionFaster
	case 'B':
		return actionSlower
	case 'C':
		return actionNext
	case 'D':
		return actionPrev
	}
	return actionNone
}
