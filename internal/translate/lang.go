package translate

import (
	"regexp"
	"strings"
)

var diacriticsRegex = regexp.MustCompile(`[áéíóúñü]`)

var spanishStopWords = []string{
	" el ", " la ", " los ", " las ", " de ", " del ", " una ", " un ", " y ",
	" que ", " como ", " en ", " por ", " más ", " aún ", " también ", " según ",
}

var englishStopWords = []string{
	" the ", " and ", " for ", " with ", " on ", " at ", " from ", " by ",
	" about ", " into ", " over ", " after ", " before ", " between ", " as ",
}

// LooksSpanish is a cheap stop-word and diacritic heuristic used to skip
// translation of text that is already close to the target language. It is an
// approximation: both false positives and false negatives are tolerable
// because translation failure falls through to the original text anyway.
func LooksSpanish(text string) bool {
	if text == "" {
		return false
	}

	padded := " " + strings.ToLower(text) + " "

	esHits := 0

	for _, w := range spanishStopWords {
		if strings.Contains(padded, w) {
			esHits++
		}
	}

	if diacriticsRegex.MatchString(padded) {
		esHits += 2
	}

	enHits := 0

	for _, w := range englishStopWords {
		if strings.Contains(padded, w) {
			enHits++
		}
	}

	return esHits >= enHits && esHits > 0
}

// DetectLang returns "es" or "en" for use in langpair-addressed providers.
func DetectLang(text string) string {
	if LooksSpanish(text) {
		return "es"
	}

	return "en"
}
