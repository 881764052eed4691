package selector

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elboletin/newsbot/internal/config"
	"github.com/elboletin/newsbot/internal/feed"
)

type stubScorer struct {
	scores map[int]float64
	err    error
}

func (s stubScorer) Score(_ context.Context, _ []feed.Candidate) (map[int]float64, error) {
	return s.scores, s.err
}

func makePool(counts map[config.Category]int) []feed.Candidate {
	var pool []feed.Candidate

	index := 0

	for _, category := range config.PresentationOrder {
		for i := 0; i < counts[category]; i++ {
			pool = append(pool, feed.Candidate{
				Title:       fmt.Sprintf("%s story %d", category, i),
				SourceURL:   fmt.Sprintf("http://example.com/%s/%d", category, i),
				Category:    category,
				Fingerprint: fmt.Sprintf("fp-%s-%d", category, i),
				Index:       index,
			})
			index++
		}
	}

	return pool
}

func newTestSelector(scorer Scorer) *Selector {
	logger := zerolog.Nop()

	return New(scorer, &logger)
}

func TestSelectRespectsQuotaCeiling(t *testing.T) {
	pool := makePool(map[config.Category]int{
		config.CategoryTechnology: 10,
		config.CategoryColombia:   5,
		config.CategoryWorld:      5,
	})

	quotas := QuotaTable{
		config.CategoryTechnology: 3,
		config.CategoryColombia:   2,
		config.CategoryWorld:      2,
	}

	sel := newTestSelector(stubScorer{scores: map[int]float64{}})
	selected := sel.Select(context.Background(), pool, quotas)

	counts := make(map[config.Category]int)
	for _, rc := range selected {
		counts[rc.Category]++
	}

	for category, quota := range quotas {
		assert.LessOrEqual(t, counts[category], quota, "category %s over quota", category)
	}

	assert.LessOrEqual(t, len(selected), quotas.Total())
}

func TestSelectFloorGuarantee(t *testing.T) {
	// 10 technology candidates, 1 world candidate, quotas {tech: 2, world: 2}:
	// the single world item must be selected even though every technology
	// item outscores it.
	pool := makePool(map[config.Category]int{
		config.CategoryTechnology: 10,
		config.CategoryWorld:      1,
	})

	scores := make(map[int]float64)
	for _, c := range pool {
		if c.Category == config.CategoryTechnology {
			scores[c.Index] = 9
		} else {
			scores[c.Index] = 0
		}
	}

	quotas := QuotaTable{
		config.CategoryTechnology: 2,
		config.CategoryWorld:      2,
	}

	sel := newTestSelector(stubScorer{scores: scores})
	selected := sel.Select(context.Background(), pool, quotas)

	require.Len(t, selected, 3)

	counts := make(map[config.Category]int)
	for _, rc := range selected {
		counts[rc.Category]++
	}

	assert.Equal(t, 2, counts[config.CategoryTechnology])
	assert.Equal(t, 1, counts[config.CategoryWorld])
}

func TestSelectPresentationOrder(t *testing.T) {
	pool := makePool(map[config.Category]int{
		config.CategoryTechnology: 2,
		config.CategoryColombia:   2,
		config.CategoryWorld:      2,
	})

	// World items score highest; presentation order must still win.
	scores := make(map[int]float64)
	for _, c := range pool {
		if c.Category == config.CategoryWorld {
			scores[c.Index] = 10
		}
	}

	quotas := QuotaTable{
		config.CategoryTechnology: 2,
		config.CategoryColombia:   2,
		config.CategoryWorld:      2,
	}

	sel := newTestSelector(stubScorer{scores: scores})
	selected := sel.Select(context.Background(), pool, quotas)

	require.Len(t, selected, 6)

	var categories []config.Category
	for _, rc := range selected {
		categories = append(categories, rc.Category)
	}

	assert.Equal(t, []config.Category{
		config.CategoryTechnology, config.CategoryTechnology,
		config.CategoryColombia, config.CategoryColombia,
		config.CategoryWorld, config.CategoryWorld,
	}, categories)
}

func TestSelectFallsBackOnScorerError(t *testing.T) {
	pool := makePool(map[config.Category]int{
		config.CategoryTechnology: 3,
	})
	pool[1].Title = "Gobierno anuncia inteligencia artificial"

	quotas := QuotaTable{config.CategoryTechnology: 1}

	sel := newTestSelector(stubScorer{err: errors.New("malformed response")})
	selected := sel.Select(context.Background(), pool, quotas)

	require.Len(t, selected, 1)
	// The heuristic must have ranked the keyword-heavy title first.
	assert.Equal(t, 1, selected[0].Index)
}

func TestSelectTieBreakByCollectionOrder(t *testing.T) {
	pool := makePool(map[config.Category]int{config.CategoryTechnology: 4})

	quotas := QuotaTable{config.CategoryTechnology: 2}

	sel := newTestSelector(stubScorer{scores: map[int]float64{}})
	selected := sel.Select(context.Background(), pool, quotas)

	require.Len(t, selected, 2)
	assert.Equal(t, 0, selected[0].Index)
	assert.Equal(t, 1, selected[1].Index)
}

func TestSelectEmptyPool(t *testing.T) {
	sel := newTestSelector(stubScorer{scores: map[int]float64{}})

	assert.Nil(t, sel.Select(context.Background(), nil, QuotaTable{}))
}

func TestHeuristicScorerIsDeterministic(t *testing.T) {
	pool := makePool(map[config.Category]int{config.CategoryTechnology: 5})
	pool[2].Description = "breaking: ciberataque a gran escala"

	scorer := NewHeuristicScorer()

	first, err := scorer.Score(context.Background(), pool)
	require.NoError(t, err)

	second, err := scorer.Score(context.Background(), pool)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Greater(t, first[2], first[0])
}

func TestQuotasForDay(t *testing.T) {
	cfg := &config.Config{QuotaTech: 7, QuotaTechWeekend: 5, QuotaColombia: 2, QuotaWorld: 2}

	weekday := QuotasForDay(cfg, time.Wednesday, false)
	assert.Equal(t, 7, weekday.For(config.CategoryTechnology))
	assert.Equal(t, 2, weekday.For(config.CategoryColombia))

	weekend := QuotasForDay(cfg, time.Saturday, false)
	assert.Equal(t, 5, weekend.For(config.CategoryTechnology))

	onlyTech := QuotasForDay(cfg, time.Wednesday, true)
	assert.Equal(t, 7, onlyTech.For(config.CategoryTechnology))
	assert.Equal(t, 0, onlyTech.For(config.CategoryColombia))
	assert.Equal(t, 0, onlyTech.For(config.CategoryWorld))
}
