package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksSpanish(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "spanish with diacritics",
			input:    "El presidente anunció una reforma según fuentes del gobierno",
			expected: true,
		},
		{
			name:     "spanish without diacritics",
			input:    "la economia de los paises en la region",
			expected: true,
		},
		{
			name:     "english",
			input:    "The government announced a reform for the economy",
			expected: false,
		},
		{
			name:     "empty",
			input:    "",
			expected: false,
		},
		{
			name:     "neutral text",
			input:    "OpenAI GPT-5",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LooksSpanish(tt.input))
		})
	}
}

func TestDetectLang(t *testing.T) {
	assert.Equal(t, "es", DetectLang("la casa de las flores está en el barrio"))
	assert.Equal(t, "en", DetectLang("the house with the flowers is on the corner"))
}
