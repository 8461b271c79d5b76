package utils

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

// CleanMarkdown strips an outer markdown code fence if the model wrapped
// its whole answer in one.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "```markdown") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// RenderMarkdown converts a markdown answer to HTML for the dashboard.
// On conversion failure the raw markdown comes back unchanged; a readable
// answer beats a blank panel.
func RenderMarkdown(input string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(input), &buf); err != nil {
		return input
	}
	return buf.String()
}
