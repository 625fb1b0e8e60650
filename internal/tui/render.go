package tui

import (
	"strings"

	"github.com/codedrill/codedrill/internal/session"
)

const tabWidth = 4

// renderTarget renders the whole target with typed, cursor, and pending
// styles. Only correctly typed characters are ever shown as typed; a
// wrong keystroke leaves the caret in place and turns it red.
func renderTarget(target *session.TargetBuffer, position int, lastWrong bool) string {
	runes := target.Runes()
	var b strings.Builder
	for i, r := range runes {
		style := pendingStyle
		atCursor := i == position
		switch {
		case i < position:
			style = typedStyle
		case atCursor && lastWrong:
			style = wrongStyle
		case atCursor:
			style = cursorStyle
		}
		switch r {
		case '\n':
			// The caret needs a visible glyph on a newline slot.
			if atCursor {
				b.WriteString(style.Render("⏎"))
			}
			b.WriteByte('\n')
		case '\t':
			if atCursor {
				b.WriteString(style.Render("⇥"))
				b.WriteString(strings.Repeat(" ", tabWidth-1))
			} else {
				b.WriteString(style.Render(strings.Repeat(" ", tabWidth)))
			}
		default:
			b.WriteString(style.Render(string(r)))
		}
	}
	return b.String()
}

// cursorLine returns the zero-based display line holding the caret.
func cursorLine(target *session.TargetBuffer, position int) int {
	runes := target.Runes()
	if position > len(runes) {
		position = len(runes)
	}
	line := 0
	for i := 0; i < position; i++ {
		if runes[i] == '\n' {
			line++
		}
	}
	return line
}
