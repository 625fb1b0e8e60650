package session

// State describes the matcher's lifecycle.
type State int

// Matcher states.
const (
	StateIdle State = iota
	StateInProgress
	StateComplete
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in-progress"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome reports one evaluated keystroke.
type Outcome struct {
	Position int
	Correct  bool
}

// Observer receives progress notifications from the matcher.
type Observer interface {
	// KeystrokeEvaluated fires on every evaluated keystroke, correct or not.
	KeystrokeEvaluated(Outcome)
	// TypingComplete fires once, when the final character is matched.
	TypingComplete()
}

// Matcher compares keystrokes against a target buffer one logical
// character at a time. The Enter key must be normalized to '\n' by the
// input layer before reaching Type; the matcher has a single transition
// path for all runes.
type Matcher struct {
	target    TargetBuffer
	hasTarget bool

	position        int
	errorCount      int
	totalKeystrokes int

	observers []Observer
}

// NewMatcher returns a matcher in the idle state.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Subscribe registers an observer for progress and completion events.
func (m *Matcher) Subscribe(obs Observer) {
	m.observers = append(m.observers, obs)
}

// SetTarget replaces the target text and resets all counters, regardless
// of prior state. An empty target makes the session complete immediately.
func (m *Matcher) SetTarget(text string) {
	m.target.Set(text)
	m.hasTarget = true
	m.position = 0
	m.errorCount = 0
	m.totalKeystrokes = 0
}

// State derives the current lifecycle state.
func (m *Matcher) State() State {
	switch {
	case !m.hasTarget:
		return StateIdle
	case m.position >= m.target.Len():
		return StateComplete
	default:
		return StateInProgress
	}
}

// Type evaluates one logical character. It returns the outcome and true
// when the keystroke was evaluated; in the idle and complete states the
// event is ignored and ok is false. The cursor advances only on an exact
// match: a wrong keystroke is counted as an error but the same slot must
// still be filled by the correct character.
func (m *Matcher) Type(c rune) (Outcome, bool) {
	if m.State() != StateInProgress {
		return Outcome{}, false
	}
	expected := m.target.ExpectedAt(m.position)
	m.totalKeystrokes++
	out := Outcome{Position: m.position, Correct: c == expected}
	if !out.Correct {
		m.errorCount++
	}
	for _, obs := range m.observers {
		obs.KeystrokeEvaluated(out)
	}
	if out.Correct {
		m.position++
		if m.position == m.target.Len() {
			for _, obs := range m.observers {
				obs.TypingComplete()
			}
		}
	}
	return out, true
}

// Target exposes the target buffer for rendering.
func (m *Matcher) Target() *TargetBuffer {
	return &m.target
}

// Position returns the caret position: the count of correctly typed characters.
func (m *Matcher) Position() int {
	return m.position
}

// ErrorCount returns the number of incorrect keystrokes.
func (m *Matcher) ErrorCount() int {
	return m.errorCount
}

// TotalKeystrokes returns the number of evaluated keystrokes.
func (m *Matcher) TotalKeystrokes() int {
	return m.totalKeystrokes
}

// Progress returns completion as a percentage of the target length.
func (m *Matcher) Progress() float64 {
	return ProgressPercent(m.position, m.target.Len())
}

// Accuracy returns the share of correct keystrokes as a percentage.
func (m *Matcher) Accuracy() float64 {
	return AccuracyPercent(m.errorCount, m.totalKeystrokes)
}

// WPM returns the typing speed over the elapsed session time.
func (m *Matcher) WPM(elapsedSeconds int) float64 {
	return WordsPerMinute(m.position, elapsedSeconds)
}
