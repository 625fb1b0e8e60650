// Package provider supplies target code snippets: a remote generation
// service with an embedded per-language sample fallback.
package provider

import (
	"context"

	"github.com/codedrill/codedrill/internal/model"
)

// CodeSource produces a code snippet for a language. Implementations may
// fail or return text outside the expected length band; Resolve applies
// the fallback policy.
type CodeSource interface {
	FetchCode(ctx context.Context, lang model.Language) (string, error)
}
