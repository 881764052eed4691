package selector

import (
	"context"
	"strings"

	"github.com/elboletin/newsbot/internal/config"
	"github.com/elboletin/newsbot/internal/feed"
	"github.com/elboletin/newsbot/internal/llm"
)

// Scorer assigns a 0-10 importance score per candidate, keyed by the
// candidate's in-run collection index.
type Scorer interface {
	Score(ctx context.Context, candidates []feed.Candidate) (map[int]float64, error)
}

// categoryBias nudges ranking toward the bulletin's focus. Added on top of
// whichever scorer produced the base score.
var categoryBias = map[config.Category]float64{
	config.CategoryTechnology: 1.0,
	config.CategoryColombia:   0.5,
	config.CategoryWorld:      0.25,
}

// llmScorer asks the generative provider for a batch of importance scores.
type llmScorer struct {
	client llm.Client
}

func NewLLMScorer(client llm.Client) Scorer {
	return &llmScorer{client: client}
}

func (s *llmScorer) Score(ctx context.Context, candidates []feed.Candidate) (map[int]float64, error) {
	inputs := make([]llm.ScoreInput, 0, len(candidates))

	for _, c := range candidates {
		inputs = append(inputs, llm.ScoreInput{
			Index:    c.Index,
			Title:    c.Title,
			Category: c.Category,
		})
	}

	return s.client.ScoreBatch(ctx, inputs)
}

// keywordWeights is the deterministic fallback signal: terms that usually
// mark newsworthy stories, in both source languages.
var keywordWeights = map[string]float64{
	"inteligencia artificial": 3.0,
	"artificial intelligence": 3.0,
	" ai ":                    2.5,
	" ia ":                    2.5,
	"breaking":                2.5,
	"última hora":             2.5,
	"exclusive":               2.0,
	"security":                2.0,
	"seguridad":               2.0,
	"ciberataque":             2.0,
	"launches":                1.5,
	"lanzamiento":             1.5,
	"announces":               1.5,
	"anuncia":                 1.5,
	"acquisition":             1.5,
	"elecciones":              1.5,
	"election":                1.5,
	"economía":                1.0,
	"economy":                 1.0,
	"chip":                    1.0,
	"startup":                 1.0,
	"gobierno":                1.0,
	"government":              1.0,
}

// heuristicScorer is total and side-effect free, keeping the pipeline fully
// functional with no AI provider configured.
type heuristicScorer struct{}

func NewHeuristicScorer() Scorer {
	return heuristicScorer{}
}

func (heuristicScorer) Score(_ context.Context, candidates []feed.Candidate) (map[int]float64, error) {
	scores := make(map[int]float64, len(candidates))

	for _, c := range candidates {
		scores[c.Index] = keywordScore(c.Title + " " + c.Description)
	}

	return scores, nil
}

func keywordScore(text string) float64 {
	padded := " " + strings.ToLower(text) + " "

	score := 0.0

	for keyword, weight := range keywordWeights {
		if strings.Contains(padded, keyword) {
			score += weight
		}
	}

	if score > 10 {
		score = 10
	}

	return score
}
