package translate

import (
	"strings"
	"unicode/utf8"
)

var sentenceEnders = []string{". ", "! ", "? ", "\n"}

// splitSentences cuts text into chunks of at most maxRunes, preferring
// sentence boundaries and falling back to word boundaries. Providers with a
// request-size ceiling get each chunk separately; the chain rejoins them in
// order.
func splitSentences(text string, maxRunes int) []string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return []string{text}
	}

	var chunks []string

	remaining := text
	for utf8.RuneCountInString(remaining) > maxRunes {
		window := string([]rune(remaining)[:maxRunes])

		cut := -1

		for _, sep := range sentenceEnders {
			idx := strings.LastIndex(window, sep)
			if idx >= 0 && idx+len(sep) > cut {
				cut = idx + len(sep)
			}
		}

		if cut <= 0 {
			// No sentence end in the window; break at the last word instead.
			if idx := strings.LastIndex(window, " "); idx > 0 {
				cut = idx + 1
			} else {
				cut = len(window)
			}
		}

		chunks = append(chunks, strings.TrimSpace(remaining[:cut]))
		remaining = strings.TrimSpace(remaining[cut:])
	}

	if remaining != "" {
		chunks = append(chunks, remaining)
	}

	return chunks
}
