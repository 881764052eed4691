package digest

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/elboletin/newsbot/internal/config"
	"github.com/elboletin/newsbot/internal/feed"
	"github.com/elboletin/newsbot/internal/observability"
	"github.com/elboletin/newsbot/internal/selector"
	"github.com/elboletin/newsbot/internal/telegram"
	"github.com/elboletin/newsbot/internal/translate"
)

// Collaborator boundaries, narrowed to what the pipeline calls. Concrete
// implementations live in their own packages; tests substitute fakes.
type (
	Collector interface {
		Collect(ctx context.Context, categories []config.Category) []feed.Candidate
	}

	Selector interface {
		Select(ctx context.Context, candidates []feed.Candidate, quotas selector.QuotaTable) []selector.RankedCandidate
	}

	Translator interface {
		Translate(ctx context.Context, text string) translate.Result
	}

	Summarizer interface {
		Summarize(ctx context.Context, title, body string, category config.Category) translate.Result
	}

	Enricher interface {
		Extract(ctx context.Context, url string) (string, error)
	}

	Deliverer interface {
		SendHeader(ctx context.Context, text string) error
		Deliver(ctx context.Context, blocks []telegram.Block) (delivered []string, complete bool)
	}

	SentState interface {
		MarkSent(fingerprints ...string)
		Save()
	}
)

// Pipeline is the one linear curation-and-delivery sequence executed per run.
type Pipeline struct {
	cfg        *config.Config
	collector  Collector
	selector   Selector
	translator Translator
	summarizer Summarizer
	enricher   Enricher
	formatter  *telegram.Formatter
	driver     Deliverer
	sentState  SentState
	logger     *zerolog.Logger
}

func New(
	cfg *config.Config,
	collector Collector,
	sel Selector,
	translator Translator,
	summarizer Summarizer,
	enricher Enricher,
	driver Deliverer,
	sentState SentState,
	logger *zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		collector:  collector,
		selector:   sel,
		translator: translator,
		summarizer: summarizer,
		enricher:   enricher,
		formatter:  telegram.NewFormatter(),
		driver:     driver,
		sentState:  sentState,
		logger:     logger,
	}
}

// Run executes one full bulletin: collect, dedup, select, translate,
// summarize, format, deliver, commit state. Provider flakiness degrades the
// output but never fails the run.
func (p *Pipeline) Run(ctx context.Context, onlyTech bool) error {
	start := time.Now()
	runLogger := p.logger.With().Str("run_id", uuid.New().String()).Logger()

	defer func() {
		observability.RunDuration.Observe(time.Since(start).Seconds())
	}()

	categories := p.cfg.Categories(onlyTech)
	quotas := selector.QuotasForDay(p.cfg, start.Weekday(), onlyTech)

	pool := p.collector.Collect(ctx, categories)
	runLogger.Info().Int("candidates", len(pool)).Msg("candidate pool collected")

	if len(pool) == 0 {
		runLogger.Info().Msg("nothing new to deliver")

		return nil
	}

	selected := p.selector.Select(ctx, pool, quotas)
	runLogger.Info().Int("selected", len(selected)).Int("quota_total", quotas.Total()).Msg("selection complete")

	if len(selected) == 0 {
		return nil
	}

	items := make([]telegram.Item, 0, len(selected))

	for _, rc := range selected {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		items = append(items, p.prepareItem(ctx, rc, &runLogger))
	}

	header := p.formatter.Header(start)

	var blocks []telegram.Block

	if p.cfg.BatchedDigest {
		blocks = p.formatter.BatchBlocks(header, items)
	} else {
		if err := p.driver.SendHeader(ctx, header); err != nil {
			runLogger.Error().Err(err).Msg("failed to send bulletin header")
		}

		blocks = p.formatter.ItemBlocks(items)
	}

	delivered, complete := p.driver.Deliver(ctx, blocks)

	// Batched fingerprints ride the final block of the sequence, so a partial
	// sequence proves nothing about individual items: commit only on a clean
	// run and let the next one retry the whole bulletin.
	if p.cfg.BatchedDigest && !complete {
		runLogger.Warn().Msg("batched delivery incomplete, deferring state commit")

		delivered = nil
	}

	p.sentState.MarkSent(delivered...)
	p.sentState.Save()

	runLogger.Info().
		Int("blocks", len(blocks)).
		Int("confirmed", len(delivered)).
		Dur("elapsed", time.Since(start)).
		Msg("run finished")

	return nil
}

// prepareItem translates and summarizes one selected candidate, enriching the
// body from the article page when the feed description is too thin.
func (p *Pipeline) prepareItem(ctx context.Context, rc selector.RankedCandidate, logger *zerolog.Logger) telegram.Item {
	title := p.translator.Translate(ctx, rc.Title)

	body := rc.Description
	if p.enricher != nil && utf8.RuneCountInString(strings.TrimSpace(body)) < p.cfg.EnrichMinDescLen {
		if content, err := p.enricher.Extract(ctx, rc.SourceURL); err == nil {
			body = content
		} else {
			logger.Debug().Err(err).Str("url", rc.SourceURL).Msg("article enrichment failed, keeping feed description")
		}
	}

	if strings.TrimSpace(body) == "" {
		body = rc.Title
	}

	translated := p.translator.Translate(ctx, body)
	summary := p.summarizer.Summarize(ctx, title.Text, translated.Text, rc.Category)

	logger.Debug().
		Str("title", rc.Title).
		Str("category", string(rc.Category)).
		Str("translation_provider", translated.Provider).
		Str("summary_provider", summary.Provider).
		Msg("item prepared")

	return telegram.Item{
		Title:       title.Text,
		Summary:     summary.Text,
		SourceURL:   rc.SourceURL,
		ImageURL:    rc.ImageURL,
		Category:    rc.Category,
		Fingerprint: rc.Fingerprint,
	}
}
