package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// matchRange finds the first case-insensitive occurrence of term in s and
// returns its rune bounds, or (-1, -1). Matching is done rune-by-rune so the
// term is treated literally (no pattern metacharacters) and indices stay
// valid for multi-byte text.
func matchRange(s, term string) (int, int) {
	if term == "" {
		return -1, -1
	}
	haystack := foldRunes(s)
	needle := foldRunes(term)
	if len(needle) > len(haystack) {
		return -1, -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		matched := true
		for j, r := range needle {
			if haystack[i+j] != r {
				matched = false
				break
			}
		}
		if matched {
			return i, i + len(needle)
		}
	}
	return -1, -1
}

func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// highlightMatch renders s with the first case-insensitive occurrence of term
// emphasized. Without a match the whole string renders in the base style.
func highlightMatch(s, term string, base, match lipgloss.Style) string {
	start, end := matchRange(s, term)
	if start < 0 {
		return base.Render(s)
	}
	runes := []rune(s)
	var b strings.Builder
	if start > 0 {
		b.WriteString(base.Render(string(runes[:start])))
	}
	b.WriteString(match.Render(string(runes[start:end])))
	if end < len(runes) {
		b.WriteString(base.Render(string(runes[end:])))
	}
	return b.String()
}

// containsFold reports a case-insensitive substring match.
func containsFold(s, term string) bool {
	start, _ := matchRange(s, term)
	return start >= 0
}

// equalFold is strings.EqualFold with trimmed whitespace, used for
// create-new duplicate detection.
func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
