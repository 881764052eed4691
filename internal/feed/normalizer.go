package feed

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"github.com/elboletin/newsbot/internal/config"
	"github.com/elboletin/newsbot/internal/htmlutils"
	"github.com/elboletin/newsbot/internal/observability"
	"github.com/elboletin/newsbot/internal/state"
)

// SentState is the cross-run dedup filter consulted at normalization time.
// It is only mutated after confirmed delivery, never here.
type SentState interface {
	Contains(fingerprint string) bool
}

// Collector fetches raw entries per category and normalizes them into
// deduplicated Candidates.
type Collector struct {
	sources   map[config.Category][]string
	fetcher   *Fetcher
	sentState SentState
	logger    *zerolog.Logger

	mu   sync.Mutex
	seen map[string]struct{}
	next int
}

func NewCollector(sources map[config.Category][]string, fetcher *Fetcher, sentState SentState, logger *zerolog.Logger) *Collector {
	return &Collector{
		sources:   sources,
		fetcher:   fetcher,
		sentState: sentState,
		logger:    logger,
		seen:      make(map[string]struct{}),
	}
}

// Collect walks every feed of the given categories in order and returns the
// normalized candidate pool. Feed failures are logged and skipped so one dead
// source never empties the bulletin.
func (c *Collector) Collect(ctx context.Context, categories []config.Category) []Candidate {
	var candidates []Candidate

	for _, category := range categories {
		for _, feedURL := range c.sources[category] {
			items, err := c.fetcher.Fetch(ctx, feedURL)
			if err != nil {
				c.logger.Error().Err(err).Str("feed", feedURL).Str("category", string(category)).Msg("feed fetch failed, skipping")
				observability.FeedErrors.WithLabelValues(string(category)).Inc()

				continue
			}

			for _, item := range items {
				candidate, ok := c.normalize(item, category)
				if !ok {
					continue
				}

				candidates = append(candidates, candidate)
			}
		}

		observability.CandidatesCollected.WithLabelValues(string(category)).Add(float64(countCategory(candidates, category)))
	}

	return candidates
}

// normalize validates one raw entry and applies both dedup filters: the
// durable sent state and the in-run seen set (multiple sources carrying the
// same story within a single run).
func (c *Collector) normalize(item *gofeed.Item, category config.Category) (Candidate, bool) {
	title := htmlutils.CollapseWhitespace(item.Title)
	link := strings.TrimSpace(item.Link)

	if title == "" || link == "" {
		return Candidate{}, false
	}

	fingerprint := state.Fingerprint(title, link)

	c.mu.Lock()
	if _, dup := c.seen[fingerprint]; dup {
		c.mu.Unlock()

		return Candidate{}, false
	}

	if c.sentState.Contains(fingerprint) {
		c.seen[fingerprint] = struct{}{}
		c.mu.Unlock()

		return Candidate{}, false
	}

	c.seen[fingerprint] = struct{}{}
	index := c.next
	c.next++
	c.mu.Unlock()

	description := item.Description
	if description == "" {
		description = item.Content
	}

	return Candidate{
		Title:       title,
		Description: htmlutils.StripTags(description),
		SourceURL:   link,
		Category:    category,
		ImageURL:    extractImageURL(item),
		PublishedAt: publishedAt(item),
		Fingerprint: fingerprint,
		Index:       index,
	}, true
}

// extractImageURL pulls an illustrative image from the raw provider payload:
// feed-level image, image enclosures, then media RSS extensions.
func extractImageURL(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, key := range []string{"content", "thumbnail"} {
			for _, ext := range media[key] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}

	return ""
}

func publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}

	if item.Published != "" {
		if t, err := dateparse.ParseAny(item.Published); err == nil {
			return t
		}
	}

	return time.Time{}
}

func countCategory(candidates []Candidate, category config.Category) int {
	n := 0

	for _, c := range candidates {
		if c.Category == category {
			n++
		}
	}

	return n
}
