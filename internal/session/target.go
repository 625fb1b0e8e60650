// Package session implements the typing-match engine: the target buffer,
// the keystroke matcher, and the session countdown.
package session

import (
	"fmt"
	"strings"
)

// TargetBuffer holds the fixed text to be typed for one session.
type TargetBuffer struct {
	runes []rune
}

// Set replaces the target text. Empty text is legal and yields a
// trivially complete session.
func (b *TargetBuffer) Set(text string) {
	b.runes = []rune(text)
}

// Len returns the number of runes in the target.
func (b *TargetBuffer) Len() int {
	return len(b.runes)
}

// ExpectedAt returns the rune expected at pos. It is defined only for
// 0 <= pos < Len(); anything else is a programming error. Tolerating it
// would corrupt scoring, so it panics.
func (b *TargetBuffer) ExpectedAt(pos int) rune {
	if pos < 0 || pos >= len(b.runes) {
		panic(fmt.Sprintf("session: expected char at position %d, target length %d", pos, len(b.runes)))
	}
	return b.runes[pos]
}

// Runes returns the target runes. The caller must not mutate the slice.
func (b *TargetBuffer) Runes() []rune {
	return b.runes
}

// Lines splits the target into display lines.
func (b *TargetBuffer) Lines() []string {
	return strings.Split(string(b.runes), "\n")
}
