package renderer

import (
	"fmt"

	"github.com/muesli/termenv"
)

// ANSI control sequences emitted by the cursor positioner.
const (
	saveCursorSeq    = termenv.CSI + termenv.SaveCursorPositionSeq
	restoreCursorSeq = termenv.CSI + termenv.RestoreCursorPositionSeq
	moveCursorSeq    = termenv.CSI + termenv.CursorPositionSeq
)

type cursorMode int

const (
	cursorNone cursorMode = iota
	cursorExplicit
	cursorRestore
)

// cursorPositioner emits cursor control sequences around content lines.
// Save/restore mode takes precedence over an explicit position.
type cursorPositioner struct {
	mode   cursorMode
	line   int
	column int
}

func newCursorPositioner(pos *Position, restore bool) cursorPositioner {
	switch {
	case restore:
		return cursorPositioner{mode: cursorRestore}
	case pos != nil:
		return cursorPositioner{mode: cursorExplicit, line: pos.Line, column: pos.Column}
	default:
		return cursorPositioner{mode: cursorNone}
	}
}

// begin is called once before anything else is written.
func (c cursorPositioner) begin(o *output) {
	if c.mode == cursorRestore {
		o.writeString(saveCursorSeq)
	}
}

// moveTo positions the cursor for the given output line (0-based).
func (c cursorPositioner) moveTo(o *output, line int) {
	if c.mode == cursorExplicit {
		o.writeString(fmt.Sprintf(moveCursorSeq, c.line+line, c.column))
	}
}

// end is called once after the last line.
func (c cursorPositioner) end(o *output) {
	if c.mode == cursorRestore {
		o.writeString(restoreCursorSeq)
	}
}

// String names the mode for debug output.
func (m cursorMode) String() string {
	switch m {
	case cursorExplicit:
		return "explicit"
	case cursorRestore:
		return "save-restore"
	default:
		return "none"
	}
}
