package domain

import "strings"

// ShapeReply prepares model-generated text for posting: strips wrapping
// quote characters, converts literal escaped newlines to real ones, and
// truncates to maxLen at a sentence or word boundary.
func ShapeReply(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	s = stripWrappingQuotes(s)
	// Models sometimes emit the two-character sequence \n instead of a
	// newline; normalize before length checks.
	s = strings.ReplaceAll(s, `\n\n`, "\n\n")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.TrimSpace(s)
	return TruncateAtBoundary(s, maxLen)
}

// stripWrappingQuotes removes matching quote characters wrapping the whole
// string, repeatedly in case the model nested them.
func stripWrappingQuotes(s string) string {
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}

// TruncateAtBoundary cuts s to at most maxLen runes. It prefers the last
// sentence end inside the limit; failing that it cuts at the last word
// boundary and appends an ellipsis. It never cuts mid-word.
func TruncateAtBoundary(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	window := string(runes[:maxLen])
	if i := strings.LastIndexAny(window, ".!?"); i >= 0 {
		return strings.TrimSpace(window[:i+1])
	}

	// No sentence boundary fits; hard-truncate at a word boundary, leaving
	// room for the ellipsis.
	window = string(runes[:maxLen-3])
	if i := strings.LastIndex(window, " "); i > 0 {
		window = window[:i]
	}
	return strings.TrimSpace(window) + "..."
}
