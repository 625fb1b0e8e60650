// Package model defines shared data structures.
package model

import (
	"fmt"
	"sort"
	"time"
)

// Language identifies a supported programming language.
type Language string

// Supported languages.
const (
	LangPython     Language = "py"
	LangCpp        Language = "cpp"
	LangJava       Language = "java"
	LangRust       Language = "rust"
	LangJavaScript Language = "javascript"
)

// languageNames maps language ids to the names used in generation prompts.
var languageNames = map[Language]string{
	LangPython:     "Python",
	LangCpp:        "C++",
	LangJava:       "Java",
	LangRust:       "Rust",
	LangJavaScript: "JavaScript",
}

// ParseLanguage validates a language id.
func ParseLanguage(id string) (Language, error) {
	lang := Language(id)
	if _, ok := languageNames[lang]; !ok {
		return "", fmt.Errorf("unknown language %q (available: %v)", id, Languages())
	}
	return lang, nil
}

// Languages lists the supported language ids in sorted order.
func Languages() []Language {
	out := make([]Language, 0, len(languageNames))
	for lang := range languageNames {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DisplayName returns the human-readable language name.
func (l Language) DisplayName() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return string(l)
}

// Config defines practice settings.
type Config struct {
	Language Language
	Duration time.Duration
	Offline  bool
}

// ProviderConfig configures the remote code generator. The API key is
// passed explicitly; nothing is written into the process environment.
type ProviderConfig struct {
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
	MinLines int
	MaxLines int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Language    string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionStats captures a finished typing session.
type SessionStats struct {
	StartedAt       time.Time
	EndedAt         time.Time
	Language        Language
	DurationSec     int
	ElapsedSec      int
	TargetLen       int
	Position        int
	ErrorCount      int
	TotalKeystrokes int
	Completed       bool
}

// CharStats stores per-expected-character tallies for a session.
type CharStats struct {
	Char      string
	Correct   int
	Incorrect int
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char      string
	Correct   int
	Incorrect int
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID       int64
	EndedAt         time.Time
	Language        Language
	ElapsedSec      int
	TargetLen       int
	Position        int
	ErrorCount      int
	TotalKeystrokes int
	Completed       bool
}
