package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/codedrill/codedrill/internal/model"
)

func TestSessionMetrics(t *testing.T) {
	agg := model.SessionAggregate{
		ElapsedSec:      60,
		TargetLen:       200,
		Position:        100,
		ErrorCount:      10,
		TotalKeystrokes: 110,
	}
	wpm, acc, progress := SessionMetrics(agg)
	if math.Abs(wpm-20) > 1e-9 {
		t.Fatalf("expected 20 WPM, got %f", wpm)
	}
	if math.Abs(acc-(100-100*10.0/110.0)) > 1e-9 {
		t.Fatalf("unexpected accuracy: %f", acc)
	}
	if math.Abs(progress-50) > 1e-9 {
		t.Fatalf("expected 50%% progress, got %f", progress)
	}
}

func TestSessionMetricsZeroes(t *testing.T) {
	wpm, acc, progress := SessionMetrics(model.SessionAggregate{})
	if wpm != 0 {
		t.Fatalf("zero elapsed must yield 0 WPM, got %f", wpm)
	}
	if acc != 100 {
		t.Fatalf("zero keystrokes must yield 100%% accuracy, got %f", acc)
	}
	if progress != 0 {
		t.Fatalf("empty target must yield 0%% progress, got %f", progress)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	out := MovingAverage(values, 2)
	expected := []float64{1, 1.5, 2.5, 3.5}
	for i := range expected {
		if math.Abs(out[i]-expected[i]) > 1e-9 {
			t.Fatalf("index %d: expected %f, got %f", i, expected[i], out[i])
		}
	}
}

func TestSparklineFlat(t *testing.T) {
	out := Sparkline([]float64{5, 5, 5})
	if len(out) != 3 {
		t.Fatalf("expected 3 chars, got %q", out)
	}
	if out != strings.Repeat(string(out[0]), 3) {
		t.Fatalf("flat series must render a flat sparkline: %q", out)
	}
}

func TestResample(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	out := Resample(values, 5)
	if len(out) != 5 {
		t.Fatalf("expected 5 points, got %d", len(out))
	}
	if out[0] != 0 || out[4] != 9 {
		t.Fatalf("resampling must keep the endpoints: %v", out)
	}
	short := Resample(values, 20)
	if len(short) != len(values) {
		t.Fatalf("short series must pass through unchanged")
	}
}

func TestRenderSummary(t *testing.T) {
	sessions := []model.SessionAggregate{
		{EndedAt: time.Unix(60, 0), Language: "py", ElapsedSec: 60, TargetLen: 100, Position: 100, ErrorCount: 0, TotalKeystrokes: 100, Completed: true},
		{EndedAt: time.Unix(120, 0), Language: "py", ElapsedSec: 60, TargetLen: 100, Position: 50, ErrorCount: 5, TotalKeystrokes: 55},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sessions); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"Sessions: 2 (1 completed, 1 timed out)", "Avg WPM", "Best WPM", "Avg Accuracy", "Avg Progress"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("summary missing %q:\n%s", needle, out)
		}
	}
}

func TestRenderCharTableWorstFirst(t *testing.T) {
	aggs := []model.CharAggregate{
		{Char: "a", Correct: 9, Incorrect: 1},
		{Char: "\n", Correct: 1, Incorrect: 9},
	}
	var buf bytes.Buffer
	if err := RenderCharTable(&buf, aggs); err != nil {
		t.Fatalf("render char table: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<newline>") {
		t.Fatalf("newline char must be labeled:\n%s", out)
	}
	if strings.Index(out, "<newline>") > strings.Index(out, "\na ") {
		t.Fatalf("worst character must come first:\n%s", out)
	}
}

func TestRenderCurves(t *testing.T) {
	sessions := []model.SessionAggregate{
		{ElapsedSec: 60, TargetLen: 100, Position: 50, TotalKeystrokes: 50},
		{ElapsedSec: 60, TargetLen: 100, Position: 75, TotalKeystrokes: 80},
		{ElapsedSec: 60, TargetLen: 100, Position: 100, TotalKeystrokes: 100},
	}
	var buf bytes.Buffer
	if err := RenderCurves(&buf, sessions, 2, 40); err != nil {
		t.Fatalf("render curves: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "WPM") || !strings.Contains(out, "Accuracy") {
		t.Fatalf("curves missing series:\n%s", out)
	}
}

func TestCurveWidthFor(t *testing.T) {
	if got := CurveWidthFor(100); got != 80 {
		t.Fatalf("expected 80, got %d", got)
	}
	if got := CurveWidthFor(10); got != minCurveWidth {
		t.Fatalf("expected min width %d, got %d", minCurveWidth, got)
	}
}

func TestFormatTableAlignment(t *testing.T) {
	lines := formatTable(
		[]string{"Name", "Value"},
		[][]string{{"a", "1"}, {"long", "20"}},
		map[int]bool{1: true},
	)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "a        1" {
		t.Fatalf("unexpected row formatting: %q", lines[1])
	}
	if lines[2] != "long    20" {
		t.Fatalf("unexpected row formatting: %q", lines[2])
	}
}
