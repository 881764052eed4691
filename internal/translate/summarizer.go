package translate

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/elboletin/newsbot/internal/config"
	"github.com/elboletin/newsbot/internal/htmlutils"
	"github.com/elboletin/newsbot/internal/llm"
)

// Summarizer produces the bounded summary shown under each headline: a short
// what-happened / why-it-matters / context rewrite from the generative
// provider, or a plain truncation of the translated body when that provider
// is down. Output never exceeds maxLen runes.
type Summarizer struct {
	client llm.Client
	maxLen int
	logger *zerolog.Logger
}

func NewSummarizer(client llm.Client, maxLen int, logger *zerolog.Logger) *Summarizer {
	return &Summarizer{
		client: client,
		maxLen: maxLen,
		logger: logger,
	}
}

// Summarize expects title and body already in the target language.
func (s *Summarizer) Summarize(ctx context.Context, title, body string, category config.Category) Result {
	out, err := s.client.Summarize(ctx, title, body, category)
	if err == nil && strings.TrimSpace(out) != "" {
		return Result{
			Text:     htmlutils.TruncateEllipsis(strings.TrimSpace(out), s.maxLen),
			Provider: "llm",
		}
	}

	if err != nil {
		s.logger.Debug().Err(err).Msg("generative summary unavailable, truncating body")
	}

	base := body
	if strings.TrimSpace(base) == "" {
		base = title
	}

	return Result{
		Text:     htmlutils.TruncateEllipsis(strings.TrimSpace(base), s.maxLen),
		Provider: ProvenanceOriginal,
	}
}
