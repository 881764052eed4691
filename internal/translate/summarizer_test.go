package translate

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/elboletin/newsbot/internal/config"
	"github.com/elboletin/newsbot/internal/llm"
)

type stubLLM struct {
	summary string
	err     error
}

func (s stubLLM) ScoreBatch(context.Context, []llm.ScoreInput) (map[int]float64, error) {
	return nil, llm.ErrNotConfigured
}

func (s stubLLM) Translate(context.Context, string) (string, error) {
	return "", llm.ErrNotConfigured
}

func (s stubLLM) Summarize(context.Context, string, string, config.Category) (string, error) {
	return s.summary, s.err
}

func TestSummarizeUsesGenerativeProvider(t *testing.T) {
	logger := zerolog.Nop()
	s := NewSummarizer(stubLLM{summary: "Pasó algo. Importa porque sí. Contexto breve."}, 500, &logger)

	result := s.Summarize(context.Background(), "Título", "Cuerpo", config.CategoryTechnology)

	assert.Equal(t, "llm", result.Provider)
	assert.Equal(t, "Pasó algo. Importa porque sí. Contexto breve.", result.Text)
}

func TestSummarizeTruncatesProviderOutput(t *testing.T) {
	logger := zerolog.Nop()
	long := strings.Repeat("palabra ", 200)
	s := NewSummarizer(stubLLM{summary: long}, 100, &logger)

	result := s.Summarize(context.Background(), "Título", "Cuerpo", config.CategoryWorld)

	assert.LessOrEqual(t, utf8.RuneCountInString(result.Text), 100)
}

func TestSummarizeFallsBackToTruncatedBody(t *testing.T) {
	logger := zerolog.Nop()
	body := strings.Repeat("ñandú corre rápido. ", 100)
	s := NewSummarizer(stubLLM{err: llm.ErrNotConfigured}, 80, &logger)

	result := s.Summarize(context.Background(), "Título", body, config.CategoryColombia)

	assert.Equal(t, ProvenanceOriginal, result.Provider)
	assert.LessOrEqual(t, utf8.RuneCountInString(result.Text), 80)
	assert.True(t, utf8.ValidString(result.Text))
}

func TestSummarizeFallsBackToTitleWhenBodyEmpty(t *testing.T) {
	logger := zerolog.Nop()
	s := NewSummarizer(stubLLM{err: llm.ErrNotConfigured}, 80, &logger)

	result := s.Summarize(context.Background(), "Solo el título", "  ", config.CategoryColombia)

	assert.Equal(t, "Solo el título", result.Text)
	assert.Equal(t, ProvenanceOriginal, result.Provider)
}
