package session

import "testing"

func TestTargetBufferExpectedAt(t *testing.T) {
	var b TargetBuffer
	b.Set("ab\nc")
	if b.Len() != 4 {
		t.Fatalf("expected length 4, got %d", b.Len())
	}
	if b.ExpectedAt(0) != 'a' || b.ExpectedAt(2) != '\n' || b.ExpectedAt(3) != 'c' {
		t.Fatalf("unexpected runes: %q", string(b.Runes()))
	}
}

func TestTargetBufferExpectedAtOutOfRangePanics(t *testing.T) {
	var b TargetBuffer
	b.Set("ab")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out-of-range position")
		}
	}()
	b.ExpectedAt(2)
}

func TestTargetBufferLines(t *testing.T) {
	var b TargetBuffer
	b.Set("one\ntwo\n")
	lines := b.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "one" || lines[1] != "two" || lines[2] != "" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}
