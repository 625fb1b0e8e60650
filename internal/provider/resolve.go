package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/codedrill/codedrill/internal/model"
)

// Default length band for generated snippets, in lines.
const (
	DefaultMinLines = 175
	DefaultMaxLines = 200
)

// Target is the resolved snippet for one session.
type Target struct {
	Text string
	// UsedFallback is set when the built-in sample replaced the remote result.
	UsedFallback bool
	// Notice carries a non-fatal warning for the user, or "".
	Notice string
}

// Resolve produces the session target, applying the fallback policy
// exactly once: a fetch failure substitutes the sample with a warning; a
// too-short result substitutes the sample silently; a too-long result is
// truncated silently. A nil source always resolves to the sample.
func Resolve(ctx context.Context, src CodeSource, lang model.Language, minLines, maxLines int) Target {
	if minLines <= 0 {
		minLines = DefaultMinLines
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	if src == nil {
		return Target{Text: SampleCode(lang), UsedFallback: true}
	}

	text, err := src.FetchCode(ctx, lang)
	if err != nil {
		return Target{
			Text:         SampleCode(lang),
			UsedFallback: true,
			Notice:       fmt.Sprintf("could not generate code, using sample: %v", err),
		}
	}

	lines := strings.Split(text, "\n")
	switch {
	case len(lines) > maxLines:
		return Target{Text: strings.Join(lines[:maxLines], "\n")}
	case len(lines) < minLines:
		return Target{Text: SampleCode(lang), UsedFallback: true}
	default:
		return Target{Text: text}
	}
}
