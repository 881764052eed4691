package translate

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentencesShortInput(t *testing.T) {
	chunks := splitSentences("short text", 100)

	assert.Equal(t, []string{"short text"}, chunks)
}

func TestSplitSentencesPrefersSentenceBoundaries(t *testing.T) {
	text := "Primera frase completa. Segunda frase completa. Tercera frase completa."

	chunks := splitSentences(text, 30)

	require.Greater(t, len(chunks), 1)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 30)
		assert.False(t, strings.HasPrefix(chunk, " "))
	}

	assert.Equal(t, "Primera frase completa.", chunks[0])
}

func TestSplitSentencesRejoinsLossless(t *testing.T) {
	text := "Una frase. Otra frase. Y una más para el final."

	chunks := splitSentences(text, 15)

	assert.Equal(t, text, strings.Join(chunks, " "))
}

func TestSplitSentencesWordFallback(t *testing.T) {
	text := "palabras sin puntuacion que siguen y siguen sin parar nunca"

	chunks := splitSentences(text, 20)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 20)
	}

	assert.Equal(t, text, strings.Join(chunks, " "))
}

func TestSplitSentencesUnlimited(t *testing.T) {
	text := strings.Repeat("a", 10000)

	assert.Equal(t, []string{text}, splitSentences(text, 0))
}
