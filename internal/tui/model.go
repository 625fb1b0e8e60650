// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codedrill/codedrill/internal/model"
	"github.com/codedrill/codedrill/internal/provider"
	"github.com/codedrill/codedrill/internal/session"
	"github.com/codedrill/codedrill/internal/store"
)

type tickMsg time.Time

type snippetMsg provider.Target

type charTally struct {
	correct   int
	incorrect int
}

// Model implements the Bubble Tea practice UI. It subscribes to the
// matcher as its progress observer; the matcher itself never sees a
// Bubble Tea type.
type Model struct {
	config  model.Config
	provCfg model.ProviderConfig
	store   *store.Store
	source  provider.CodeSource

	width  int
	height int

	matcher   *session.Matcher
	countdown *session.Countdown
	startedAt time.Time
	notice    string
	lastWrong bool
	charStats map[rune]*charTally

	viewport viewport.Model
	progress progress.Model
	ready    bool

	loading   bool
	finished  bool
	completed bool

	resultWPM      float64
	resultAccuracy float64
	resultProgress float64
}

var (
	typedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Underline(true)
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Underline(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	resultStyle  = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	resultTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// NewModel constructs a practice model from an already resolved target.
// The source is used again only when the user starts another round; a nil
// source keeps every round on the built-in samples.
func NewModel(cfg model.Config, provCfg model.ProviderConfig, st *store.Store, src provider.CodeSource, target provider.Target) *Model {
	m := &Model{
		config:   cfg,
		provCfg:  provCfg,
		store:    st,
		source:   src,
		matcher:  session.NewMatcher(),
		progress: progress.New(progress.WithDefaultGradient()),
	}
	m.matcher.Subscribe(m)
	m.startSession(target)
	return m
}

// KeystrokeEvaluated implements session.Observer.
func (m *Model) KeystrokeEvaluated(out session.Outcome) {
	m.lastWrong = !out.Correct
	expected := m.matcher.Target().ExpectedAt(out.Position)
	tally, ok := m.charStats[expected]
	if !ok {
		tally = &charTally{}
		m.charStats[expected] = tally
	}
	if out.Correct {
		tally.correct++
	} else {
		tally.incorrect++
	}
}

// TypingComplete implements session.Observer.
func (m *Model) TypingComplete() {
	m.finishSession(true)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case tickMsg:
		if m.finished || m.loading {
			return m, nil
		}
		if expired := m.countdown.Tick(); expired {
			m.finishSession(false)
			return m, nil
		}
		return m, tickCmd()
	case snippetMsg:
		m.startSession(provider.Target(msg))
		return m, tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}
	if m.finished {
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.fetchCmd()
		case "q", "esc", "enter":
			return m, tea.Quit
		default:
			return m, nil
		}
	}
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		// Enter is one logical character: a newline.
		m.typeRune('\n')
	case tea.KeyTab:
		m.typeRune('\t')
	case tea.KeySpace:
		m.typeRune(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.typeRune(r)
		}
	default:
		// Modifier and control events are not evaluated.
	}
	return m, nil
}

func (m *Model) typeRune(r rune) {
	if _, ok := m.matcher.Type(r); !ok {
		return
	}
	if !m.finished {
		m.refreshViewport()
	}
}

func (m *Model) startSession(target provider.Target) {
	m.matcher.SetTarget(target.Text)
	m.countdown = session.NewCountdown(int(m.config.Duration.Seconds()))
	m.startedAt = time.Now()
	m.notice = target.Notice
	m.lastWrong = false
	m.charStats = map[rune]*charTally{}
	m.loading = false
	m.finished = false
	m.completed = false
	m.refreshViewport()
	// A degenerate empty target is complete before any keystroke.
	if m.matcher.State() == session.StateComplete {
		m.finishSession(true)
	}
}

func (m *Model) finishSession(completed bool) {
	if m.finished {
		return
	}
	m.finished = true
	m.completed = completed
	m.resultWPM = m.matcher.WPM(m.countdown.Elapsed())
	m.resultAccuracy = m.matcher.Accuracy()
	m.resultProgress = m.matcher.Progress()
	m.saveSession()
}

func (m *Model) saveSession() {
	if m.store == nil {
		return
	}
	endedAt := time.Now()
	stats := model.SessionStats{
		StartedAt:       m.startedAt,
		EndedAt:         endedAt,
		Language:        m.config.Language,
		DurationSec:     int(m.config.Duration.Seconds()),
		ElapsedSec:      m.countdown.Elapsed(),
		TargetLen:       m.matcher.Target().Len(),
		Position:        m.matcher.Position(),
		ErrorCount:      m.matcher.ErrorCount(),
		TotalKeystrokes: m.matcher.TotalKeystrokes(),
		Completed:       m.completed,
	}
	charStats := make([]model.CharStats, 0, len(m.charStats))
	for ch, tally := range m.charStats {
		charStats = append(charStats, model.CharStats{
			Char:      string(ch),
			Correct:   tally.correct,
			Incorrect: tally.incorrect,
		})
	}
	if _, err := m.store.InsertSession(context.Background(), stats, charStats); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
}

func (m *Model) fetchCmd() tea.Cmd {
	src := m.source
	lang := m.config.Language
	minLines := m.provCfg.MinLines
	maxLines := m.provCfg.MaxLines
	return func() tea.Msg {
		return snippetMsg(provider.Resolve(context.Background(), src, lang, minLines, maxLines))
	}
}

func (m *Model) layout() {
	headerHeight := 1
	if m.notice != "" {
		headerHeight = 2
	}
	footerHeight := 2
	vpHeight := m.height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.progress.Width = m.width - 20
	if m.progress.Width < 10 {
		m.progress.Width = 10
	}
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderTarget(m.matcher.Target(), m.matcher.Position(), m.lastWrong))
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	line := cursorLine(m.matcher.Target(), m.matcher.Position())
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	switch {
	case line < top:
		m.viewport.SetYOffset(line)
	case line > bottom:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			pendingStyle.Render("Generating code..."))
	}
	if m.finished {
		return m.resultsView()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderHeader() string {
	header := footerStyle.Render(fmt.Sprintf("%s · Time %s",
		m.config.Language.DisplayName(), formatClock(m.countdown.Remaining())))
	if m.notice != "" {
		header += "\n" + noticeStyle.Render(m.notice)
	}
	return header
}

func (m *Model) renderFooter() string {
	bar := m.progress.ViewAs(m.matcher.Progress() / 100)
	stats := footerStyle.Render(fmt.Sprintf("Accuracy %.1f%%  WPM %.1f  Errors %d",
		m.matcher.Accuracy(), m.matcher.WPM(m.countdown.Elapsed()), m.matcher.ErrorCount()))
	return bar + "\n" + stats
}

func (m *Model) resultsView() string {
	title := "Time's Up!"
	if m.completed {
		title = "Completed!"
	}
	lines := []string{
		resultTitleStyle.Render(title),
		"",
		fmt.Sprintf("Accuracy: %.1f%%", m.resultAccuracy),
		fmt.Sprintf("Speed: %.1f WPM", m.resultWPM),
		fmt.Sprintf("Progress: %.1f%%", m.resultProgress),
		"",
		footerStyle.Render("r new snippet · q quit"),
	}
	box := resultStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
