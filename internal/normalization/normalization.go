package normalization

import (
	"regexp"
	"strings"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>?`)

// ParseInputString trims surrounding whitespace from user-provided fields.
func ParseInputString(s string) string {
	return strings.TrimSpace(s)
}

// StripHTML reduces stored rich-text markup to plain text for prompting.
// Only the literal &nbsp; entity is substituted; other entities pass through
// untouched.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}
	text := htmlTagPattern.ReplaceAllString(html, "")
	return strings.ReplaceAll(text, "&nbsp;", " ")
}

// ChunkText splits text into fixed-width segments of at most maxLen characters.
// Lengths count runes, not bytes, so multi-byte scripts are never cut mid-rune.
// The final chunk may be shorter. Empty input yields no chunks.
func ChunkText(text string, maxLen int) []string {
	if text == "" || maxLen <= 0 {
		return nil
	}
	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+maxLen-1)/maxLen)
	for start := 0; start < len(runes); start += maxLen {
		end := start + maxLen
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// TruncateText caps text at maxLen characters without chunking. Long inputs
// are cut, not summarized. Like ChunkText, maxLen counts runes.
func TruncateText(text string, maxLen int) string {
	if maxLen <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen])
}
