package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/elboletin/newsbot/internal/config"
	"github.com/elboletin/newsbot/internal/digest"
	"github.com/elboletin/newsbot/internal/enrich"
	"github.com/elboletin/newsbot/internal/feed"
	"github.com/elboletin/newsbot/internal/llm"
	"github.com/elboletin/newsbot/internal/observability"
	"github.com/elboletin/newsbot/internal/selector"
	"github.com/elboletin/newsbot/internal/state"
	"github.com/elboletin/newsbot/internal/telegram"
	"github.com/elboletin/newsbot/internal/translate"
)

func main() {
	onlyTech := flag.Bool("only-tech", false, "Collect and deliver only technology news")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}

	if cfg.MetricsPort > 0 {
		go func() {
			if err := observability.ServeMetrics(ctx, cfg.MetricsPort, &logger); err != nil {
				logger.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	store := state.NewStore(cfg.StatePath, &logger)
	store.Load()

	fetcher := feed.NewFetcher(cfg.UserAgent, cfg.FeedTimeout, cfg.MaxEntriesPerFeed)
	collector := feed.NewCollector(cfg.Sources(), fetcher, store, &logger)

	llmClient := llm.New(cfg, &logger)
	sel := selector.New(selector.NewLLMScorer(llmClient), &logger)

	chain := translate.NewChain([]translate.Provider{
		translate.NewLLMProvider(llmClient),
		translate.NewLibreTranslate(cfg.LibreTranslateURL, cfg.ProviderTimeout),
		translate.NewMyMemory(cfg.ProviderTimeout),
	}, cfg.ProviderTimeout, &logger)

	summarizer := translate.NewSummarizer(llmClient, telegram.MaxCaptionSize, &logger)

	var enricher digest.Enricher
	if cfg.EnrichmentEnabled {
		enricher = enrich.NewExtractor(cfg.UserAgent, cfg.EnrichTimeout, cfg.MaxContentLength, &logger)
	}

	driver := telegram.NewDriver(api, cfg.TargetChatID, &logger)

	pipeline := digest.New(cfg, collector, sel, chain, summarizer, enricher, driver, store, &logger)

	if err := pipeline.Run(ctx, *onlyTech); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("run cancelled")

			return
		}

		logger.Fatal().Err(err).Msg("pipeline error")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
