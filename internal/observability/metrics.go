package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CandidatesCollected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsbot_candidates_collected_total",
		Help: "Normalized candidates that passed validation and dedup",
	}, []string{"category"})

	FeedErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsbot_feed_errors_total",
		Help: "Feeds skipped because fetch or parse failed",
	}, []string{"category"})

	ItemsSelected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsbot_items_selected_total",
		Help: "Candidates admitted by the quota selector",
	}, []string{"category"})

	ItemsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsbot_items_delivered_total",
		Help: "Delivery outcomes per item",
	}, []string{"status"})

	TranslationsByProvider = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsbot_translations_total",
		Help: "Translations attributed to the provider that produced them",
	}, []string{"provider"})

	ScorerFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsbot_scorer_fallbacks_total",
		Help: "Runs where the AI scorer failed and the heuristic took over",
	})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "newsbot_run_duration_seconds",
		Help:    "Wall time of one full pipeline run",
		Buckets: []float64{5, 15, 30, 60, 120, 300, 600},
	})
)
