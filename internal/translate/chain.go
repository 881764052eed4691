package translate

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/elboletin/newsbot/internal/observability"
)

// Chain tries providers in priority order and returns the first non-empty
// translation. It never fails: when every provider is down the original text
// comes back tagged "original", so translation trouble cannot stall delivery.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	logger    *zerolog.Logger
}

func NewChain(providers []Provider, timeout time.Duration, logger *zerolog.Logger) *Chain {
	return &Chain{
		providers: providers,
		timeout:   timeout,
		logger:    logger,
	}
}

// Translate converts text to the target language.
func (c *Chain) Translate(ctx context.Context, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Text: text, Provider: ProvenanceOriginal}
	}

	if LooksSpanish(text) {
		return Result{Text: text, Provider: ProvenanceOriginal}
	}

	for _, provider := range c.providers {
		out, err := c.translateWith(ctx, provider, text)
		if err != nil {
			c.logger.Debug().Err(err).Str("provider", provider.Name()).Msg("translation provider failed, trying next")

			continue
		}

		if out == "" {
			continue
		}

		observability.TranslationsByProvider.WithLabelValues(provider.Name()).Inc()

		return Result{Text: out, Provider: provider.Name()}
	}

	c.logger.Info().Msg("all translation providers failed, keeping original text")
	observability.TranslationsByProvider.WithLabelValues(ProvenanceOriginal).Inc()

	return Result{Text: text, Provider: ProvenanceOriginal}
}

// translateWith feeds the text to a single provider, chunking at sentence
// boundaries when it exceeds the provider's request ceiling. A failed chunk
// fails the whole provider so partial translations never leak out.
func (c *Chain) translateWith(ctx context.Context, provider Provider, text string) (string, error) {
	chunks := splitSentences(text, provider.MaxInput())

	outputs := make([]string, 0, len(chunks))

	for _, chunk := range chunks {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		out, err := provider.Translate(callCtx, chunk)

		cancel()

		if err != nil {
			return "", err
		}

		if strings.TrimSpace(out) == "" {
			return "", nil
		}

		outputs = append(outputs, strings.TrimSpace(out))
	}

	return strings.Join(outputs, " "), nil
}
