package selector

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/elboletin/newsbot/internal/config"
	"github.com/elboletin/newsbot/internal/feed"
	"github.com/elboletin/newsbot/internal/observability"
)

// RankedCandidate pairs a candidate with the score that decided its fate.
type RankedCandidate struct {
	feed.Candidate
	Score float64
}

// Selector turns the deduplicated candidate pool into the bounded, ordered
// list that will actually be delivered.
type Selector struct {
	primary  Scorer
	fallback Scorer
	logger   *zerolog.Logger
}

func New(primary Scorer, logger *zerolog.Logger) *Selector {
	return &Selector{
		primary:  primary,
		fallback: NewHeuristicScorer(),
		logger:   logger,
	}
}

// Select applies ranking, the per-category quota ceiling and the one-item
// minimum backfill, then re-sorts the result into presentation order.
//
// The backfill intentionally relaxes the ceiling: a category with candidates
// but zero selected items gets one promoted even when other categories have
// already consumed the quota sum. The floor wins over the ceiling.
func (s *Selector) Select(ctx context.Context, candidates []feed.Candidate, quotas QuotaTable) []RankedCandidate {
	if len(candidates) == 0 {
		return nil
	}

	ranked := s.rank(ctx, candidates)

	counts := make(map[config.Category]int)
	selectedIdx := make(map[int]struct{})

	var selected []RankedCandidate

	for _, rc := range ranked {
		if counts[rc.Category] >= quotas.For(rc.Category) {
			continue
		}

		selected = append(selected, rc)
		selectedIdx[rc.Index] = struct{}{}
		counts[rc.Category]++
	}

	// Minimum backfill: one item for every quota-bearing category that has
	// candidates available but ended up empty.
	for category, quota := range quotas {
		if quota <= 0 || counts[category] > 0 {
			continue
		}

		for _, rc := range ranked {
			if rc.Category != category {
				continue
			}

			if _, ok := selectedIdx[rc.Index]; ok {
				continue
			}

			s.logger.Info().Str("category", string(category)).Str("title", rc.Title).Msg("promoting candidate to satisfy category floor")
			selected = append(selected, rc)
			selectedIdx[rc.Index] = struct{}{}
			counts[category]++

			break
		}
	}

	// Presentation order is a display concern, decoupled from score order.
	presentationRank := make(map[config.Category]int, len(config.PresentationOrder))
	for i, category := range config.PresentationOrder {
		presentationRank[category] = i
	}

	sort.SliceStable(selected, func(i, j int) bool {
		pi, pj := presentationRank[selected[i].Category], presentationRank[selected[j].Category]
		if pi != pj {
			return pi < pj
		}

		return selected[i].Index < selected[j].Index
	})

	for _, rc := range selected {
		observability.ItemsSelected.WithLabelValues(string(rc.Category)).Inc()
	}

	return selected
}

// rank scores every candidate and sorts descending by score plus category
// bias, ties broken by collection order. Scorer failure of any kind flips the
// whole run to the deterministic heuristic.
func (s *Selector) rank(ctx context.Context, candidates []feed.Candidate) []RankedCandidate {
	scores, err := s.primary.Score(ctx, candidates)
	if err != nil {
		s.logger.Warn().Err(err).Msg("primary scorer failed, falling back to keyword heuristic")
		observability.ScorerFallbacks.Inc()

		scores, _ = s.fallback.Score(ctx, candidates)
	}

	ranked := make([]RankedCandidate, 0, len(candidates))

	for _, c := range candidates {
		ranked = append(ranked, RankedCandidate{
			Candidate: c,
			Score:     scores[c.Index] + categoryBias[c.Category],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}

		return ranked[i].Index < ranked[j].Index
	})

	return ranked
}
