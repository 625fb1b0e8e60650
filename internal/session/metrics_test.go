package session

import (
	"math"
	"testing"
)

func TestProgressPercent(t *testing.T) {
	if got := ProgressPercent(0, 0); got != 0 {
		t.Fatalf("empty target progress must be 0, got %f", got)
	}
	if got := ProgressPercent(1, 4); got != 25 {
		t.Fatalf("expected 25, got %f", got)
	}
	if got := ProgressPercent(4, 4); got != 100 {
		t.Fatalf("expected 100, got %f", got)
	}
}

func TestAccuracyPercent(t *testing.T) {
	if got := AccuracyPercent(0, 0); got != 100 {
		t.Fatalf("zero keystrokes must yield exactly 100, got %f", got)
	}
	if got := AccuracyPercent(1, 4); got != 75 {
		t.Fatalf("expected 75, got %f", got)
	}
	if got := AccuracyPercent(4, 4); got != 0 {
		t.Fatalf("expected 0, got %f", got)
	}
}

func TestWordsPerMinute(t *testing.T) {
	if got := WordsPerMinute(50, 0); got != 0 {
		t.Fatalf("zero elapsed must yield exactly 0, got %f", got)
	}
	// 50 chars in 60s: 10 words per minute.
	if got := WordsPerMinute(50, 60); math.Abs(got-10) > 1e-9 {
		t.Fatalf("expected 10 WPM, got %f", got)
	}
	// 25 chars in 30s: still 10 words per minute.
	if got := WordsPerMinute(25, 30); math.Abs(got-10) > 1e-9 {
		t.Fatalf("expected 10 WPM, got %f", got)
	}
}
