package htmlutils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// StripTags returns the visible text of an HTML fragment. Feed descriptions
// routinely carry markup, tracking pixels and embedded links; only the text
// survives. On unparsable input the raw string is returned collapsed.
func StripTags(fragment string) string {
	if fragment == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return CollapseWhitespace(fragment)
	}

	doc.Find("script, style").Remove()

	return CollapseWhitespace(doc.Text())
}

// CollapseWhitespace squeezes runs of whitespace into single spaces and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// Truncate cuts s to at most limit runes, never splitting a multi-byte
// character. The limit is in runes to match Telegram's length accounting.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)

	return string(runes[:limit])
}

// TruncateEllipsis behaves like Truncate but marks the cut with a "…" so a
// clipped summary reads as intentionally shortened.
func TruncateEllipsis(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	if limit <= 1 {
		return Truncate(s, limit)
	}

	cut := Truncate(s, limit-1)

	// Prefer to break after a complete word when one is close enough.
	if idx := strings.LastIndex(cut, " "); idx > len(cut)*3/4 {
		cut = cut[:idx]
	}

	return strings.TrimRight(cut, " ,;:") + "…"
}
