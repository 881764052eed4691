package llm

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/elboletin/newsbot/internal/config"
)

// ErrNotConfigured marks the generative provider as absent. Callers treat it
// like any other provider failure and fall back.
var ErrNotConfigured = errors.New("llm provider not configured")

// ScoreInput is one candidate offered to the batch scorer, addressed by its
// in-run collection index.
type ScoreInput struct {
	Index    int
	Title    string
	Category config.Category
}

// Client is the single generative surface the pipeline uses: importance
// scoring, translation and bounded summaries.
type Client interface {
	// ScoreBatch returns a 0-10 importance score per input index.
	ScoreBatch(ctx context.Context, inputs []ScoreInput) (map[int]float64, error)
	// Translate rewrites text entirely in the target language.
	Translate(ctx context.Context, text string) (string, error)
	// Summarize produces a short structured summary (what happened, why it
	// matters, context) in the target language.
	Summarize(ctx context.Context, title, description string, category config.Category) (string, error)
}

// New returns the OpenAI-backed client, or a disabled stub when no API key is
// set so the pipeline stays fully functional without one.
func New(cfg *config.Config, logger *zerolog.Logger) Client {
	if cfg.LLMAPIKey == "" {
		logger.Warn().Msg("LLM_API_KEY not set, generative provider disabled")

		return disabledClient{}
	}

	return newOpenAI(cfg, logger)
}

type disabledClient struct{}

func (disabledClient) ScoreBatch(context.Context, []ScoreInput) (map[int]float64, error) {
	return nil, ErrNotConfigured
}

func (disabledClient) Translate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

func (disabledClient) Summarize(context.Context, string, string, config.Category) (string, error) {
	return "", ErrNotConfigured
}
