package translate

import "context"

// ProvenanceOriginal tags text that no provider managed to translate.
const ProvenanceOriginal = "original"

// Provider is one translation strategy. Implementations return an error or an
// empty string to signal failure; the chain decides what happens next.
type Provider interface {
	Name() string
	// MaxInput is the request-size ceiling in runes; 0 means unlimited.
	// Longer inputs are chunked at sentence boundaries before each call.
	MaxInput() int
	Translate(ctx context.Context, text string) (string, error)
}

// Result carries translated text together with its provenance: the provider
// that produced it, or "original" when every provider failed.
type Result struct {
	Text     string
	Provider string
}
