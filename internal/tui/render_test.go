package tui

import (
	"strings"
	"testing"

	"github.com/codedrill/codedrill/internal/session"
)

func TestRenderTargetStyles(t *testing.T) {
	var target session.TargetBuffer
	target.Set("ab")

	out := renderTarget(&target, 1, false)
	if !strings.HasPrefix(out, typedStyle.Render("a")) {
		t.Fatalf("expected typed style for first rune: %q", out)
	}
	if !strings.HasSuffix(out, cursorStyle.Render("b")) {
		t.Fatalf("expected cursor style for caret rune: %q", out)
	}
}

func TestRenderTargetWrongCursor(t *testing.T) {
	var target session.TargetBuffer
	target.Set("ab")

	out := renderTarget(&target, 1, true)
	if !strings.HasSuffix(out, wrongStyle.Render("b")) {
		t.Fatalf("expected wrong style for caret after a miss: %q", out)
	}
}

func TestRenderTargetNewlineCursorGlyph(t *testing.T) {
	var target session.TargetBuffer
	target.Set("a\nb")

	out := renderTarget(&target, 1, false)
	if !strings.Contains(out, cursorStyle.Render("⏎")) {
		t.Fatalf("expected visible caret glyph on newline slot: %q", out)
	}
	if !strings.Contains(out, "\n") {
		t.Fatalf("newline must still break the line: %q", out)
	}
}

func TestRenderTargetTypedOnlyOnMatch(t *testing.T) {
	var target session.TargetBuffer
	target.Set("abc")

	// Position 0: nothing typed yet, everything pending or cursor.
	out := renderTarget(&target, 0, false)
	if strings.Contains(out, typedStyle.Render("a")) && typedStyle.Render("a") != cursorStyle.Render("a") {
		t.Fatalf("no rune may render as typed before the caret passes it: %q", out)
	}
}

func TestCursorLine(t *testing.T) {
	var target session.TargetBuffer
	target.Set("one\ntwo\nthree")

	tests := []struct {
		position int
		want     int
	}{
		{0, 0},
		{3, 0},
		{4, 1},
		{8, 2},
		{13, 2},
		{99, 2},
	}
	for _, tt := range tests {
		if got := cursorLine(&target, tt.position); got != tt.want {
			t.Fatalf("position %d: expected line %d, got %d", tt.position, tt.want, got)
		}
	}
}
