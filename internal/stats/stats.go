// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/codedrill/codedrill/internal/model"
	"github.com/codedrill/codedrill/internal/session"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes WPM, accuracy, and progress for a stored session.
// The math is the core engine's: WPM over correctly typed characters,
// accuracy over all keystrokes.
func SessionMetrics(agg model.SessionAggregate) (wpm, accuracy, progress float64) {
	wpm = session.WordsPerMinute(agg.Position, agg.ElapsedSec)
	accuracy = session.AccuracyPercent(agg.ErrorCount, agg.TotalKeystrokes)
	progress = session.ProgressPercent(agg.Position, agg.TargetLen)
	return wpm, accuracy, progress
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Resample reduces a series to at most width points by even sampling.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		idx := i * (len(values) - 1) / (width - 1)
		out[i] = values[idx]
	}
	return out
}

// RenderSummary prints a summary for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalWPM, totalAcc, totalProgress float64
	bestWPM := 0.0
	completed := 0
	for _, s := range sessions {
		wpm, acc, progress := SessionMetrics(s)
		totalWPM += wpm
		totalAcc += acc
		totalProgress += progress
		if wpm > bestWPM {
			bestWPM = wpm
		}
		if s.Completed {
			completed++
		}
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d (%d completed, %d timed out)", len(sessions), completed, len(sessions)-completed),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.2f", bestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", totalAcc/count),
		fmt.Sprintf("Avg Progress: %.2f%%", totalProgress/count),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSessionTable prints one row per stored session.
func RenderSessionTable(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		return nil
	}
	headers := []string{"Date", "Lang", "WPM", "Accuracy", "Progress", "Errors", "Result"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		wpm, acc, progress := SessionMetrics(s)
		result := "timed out"
		if s.Completed {
			result = "completed"
		}
		rows = append(rows, []string{
			s.EndedAt.Local().Format(time.DateTime),
			string(s.Language),
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%.1f%%", acc),
			fmt.Sprintf("%.1f%%", progress),
			fmt.Sprintf("%d", s.ErrorCount),
			result,
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCharTable prints per-expected-character accuracy, worst first.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	type row struct {
		char      string
		acc       float64
		correct   int
		incorrect int
	}
	rows := make([]row, 0, len(aggs))
	for _, agg := range aggs {
		total := agg.Correct + agg.Incorrect
		acc := 0.0
		if total > 0 {
			acc = float64(agg.Correct) / float64(total)
		}
		rows = append(rows, row{
			char:      charLabel(agg.Char),
			acc:       acc,
			correct:   agg.Correct,
			incorrect: agg.Incorrect,
		})
	}
	// Sort by lowest accuracy.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].acc == rows[j].acc {
			return rows[i].char < rows[j].char
		}
		return rows[i].acc < rows[j].acc
	})

	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}
	headers := []string{"Char", "Accuracy", "Correct", "Incorrect"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.char,
			fmt.Sprintf("%.2f%%", r.acc*100),
			fmt.Sprintf("%d", r.correct),
			fmt.Sprintf("%d", r.incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints WPM and accuracy sparkline curves over sessions.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window, width int) error {
	if len(sessions) < 2 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpm, acc, _ := SessionMetrics(s)
		wpms[i] = wpm
		accs[i] = acc
	}
	wpms = Resample(MovingAverage(wpms, window), width)
	accs = Resample(MovingAverage(accs, window), width)

	if _, err := fmt.Fprintln(w, "Learning Curves"); err != nil {
		return err
	}
	if err := renderCurve(w, "WPM", wpms, "%.1f"); err != nil {
		return err
	}
	if err := renderCurve(w, "Accuracy", accs, "%.1f%%"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderCurve(w io.Writer, name string, values []float64, format string) error {
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	_, err := fmt.Fprintf(w, "%-8s [%s] %s..%s\n",
		name,
		Sparkline(values),
		fmt.Sprintf(format, minVal),
		fmt.Sprintf(format, maxVal),
	)
	return err
}

func charLabel(ch string) string {
	switch ch {
	case " ":
		return "<space>"
	case "\n":
		return "<newline>"
	case "\t":
		return "<tab>"
	default:
		return ch
	}
}
