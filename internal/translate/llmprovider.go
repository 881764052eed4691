package translate

import (
	"context"

	"github.com/elboletin/newsbot/internal/llm"
)

// llmProvider adapts the generative client to the provider chain. It is the
// highest-quality tier and therefore goes first when configured.
type llmProvider struct {
	client llm.Client
}

func NewLLMProvider(client llm.Client) Provider {
	return &llmProvider{client: client}
}

func (p *llmProvider) Name() string { return "llm" }

func (p *llmProvider) MaxInput() int { return 0 }

func (p *llmProvider) Translate(ctx context.Context, text string) (string, error) {
	return p.client.Translate(ctx, text)
}
