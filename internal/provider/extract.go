package provider

import (
	"strings"

	"github.com/codedrill/codedrill/internal/model"
)

// ExtractCodeBlock pulls the code out of a model response that may wrap it
// in markdown fences. Preference order: a fenced block mentioning the
// language, then the first fenced block, then the raw content. The
// matching is a heuristic; model output has no guaranteed shape.
func ExtractCodeBlock(content string, lang model.Language) string {
	if !strings.Contains(content, "```") {
		return content
	}
	blocks := strings.Split(content, "```")
	// Odd indices are inside fences.
	for i := 1; i < len(blocks); i += 2 {
		block := blocks[i]
		lower := strings.ToLower(block)
		if strings.Contains(lower, string(lang)) || strings.Contains(lower, strings.ToLower(lang.DisplayName())) {
			return stripFenceTag(block)
		}
	}
	if len(blocks) > 1 {
		return stripFenceTag(blocks[1])
	}
	return content
}

// stripFenceTag drops the language-tag line that opens a fenced block.
func stripFenceTag(block string) string {
	if idx := strings.IndexByte(block, '\n'); idx >= 0 {
		return block[idx+1:]
	}
	return block
}
