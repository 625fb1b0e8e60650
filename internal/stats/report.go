package stats

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/codedrill/codedrill/internal/model"
	"github.com/codedrill/codedrill/internal/store"
)

const (
	minCurveWidth     = 20
	defaultCurveWidth = 80
	curveMargin       = 20
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions    []model.SessionAggregate
	CharAggs    []model.CharAggregate
	CurveWindow int
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	charAggs, err := st.ListCharAggregatesForSessions(ctx, sessionIDs(sessions))
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:    sessions,
		CharAggs:    charAggs,
		CurveWindow: cfg.CurveWindow,
	}, nil
}

// Render writes the full report: summary, curves, session table, char table.
func (r Report) Render(w io.Writer) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if err := RenderCurves(w, r.Sessions, r.CurveWindow, CurveWidthFor(terminalWidth())); err != nil {
		return err
	}
	if err := RenderSessionTable(w, r.Sessions); err != nil {
		return err
	}
	return RenderCharTable(w, r.CharAggs)
}

// CurveWidthFor fits a sparkline into the given terminal width, leaving
// room for the label and the min..max legend.
func CurveWidthFor(totalWidth int) int {
	width := totalWidth - curveMargin
	if width < minCurveWidth {
		return minCurveWidth
	}
	return width
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultCurveWidth
	}
	return width
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}
