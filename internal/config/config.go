package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Category is the closed set of bulletin sections. Everything downstream
// (quotas, presentation order, section headers) is keyed by it.
type Category string

const (
	CategoryTechnology Category = "tecnologia"
	CategoryColombia   Category = "colombia"
	CategoryWorld      Category = "mundial"
)

// PresentationOrder fixes the order sections appear in the bulletin,
// independent of selection score.
var PresentationOrder = []Category{CategoryTechnology, CategoryColombia, CategoryWorld}

type Config struct {
	AppEnv       string `env:"APP_ENV" envDefault:"local"`
	BotToken     string `env:"TELEGRAM_BOT_TOKEN,required"`
	TargetChatID int64  `env:"TELEGRAM_CHAT_ID,required"`

	LLMAPIKey    string  `env:"LLM_API_KEY"`
	LLMModel     string  `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	RateLimitRPS float64 `env:"RATE_LIMIT_RPS" envDefault:"1"`

	LibreTranslateURL string `env:"LIBRETRANSLATE_URL"`

	StatePath string `env:"STATE_PATH" envDefault:"state_sent.json"`

	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
	DeliveryTimeout time.Duration `env:"DELIVERY_TIMEOUT" envDefault:"20s"`
	FeedTimeout     time.Duration `env:"FEED_TIMEOUT" envDefault:"10s"`

	MaxEntriesPerFeed int    `env:"MAX_ENTRIES_PER_FEED" envDefault:"8"`
	UserAgent         string `env:"USER_AGENT" envDefault:"newsbot/1.0 (+https://github.com/elboletin/newsbot)"`

	// BatchedDigest sends the whole bulletin as one message sequence instead
	// of one message per item.
	BatchedDigest bool `env:"BATCHED_DIGEST" envDefault:"false"`

	EnrichmentEnabled bool          `env:"ENRICHMENT_ENABLED" envDefault:"true"`
	EnrichMinDescLen  int           `env:"ENRICH_MIN_DESC_LEN" envDefault:"120"`
	MaxContentLength  int           `env:"MAX_CONTENT_LENGTH" envDefault:"5000"`
	EnrichTimeout     time.Duration `env:"ENRICH_TIMEOUT" envDefault:"15s"`

	MetricsPort int `env:"METRICS_PORT" envDefault:"0"`

	QuotaTech        int `env:"QUOTA_TECH" envDefault:"7"`
	QuotaTechWeekend int `env:"QUOTA_TECH_WEEKEND" envDefault:"5"`
	QuotaColombia    int `env:"QUOTA_COLOMBIA" envDefault:"2"`
	QuotaWorld       int `env:"QUOTA_WORLD" envDefault:"2"`

	TechFeeds     []string `env:"FEEDS_TECH" envSeparator:"," envDefault:"https://techcrunch.com/feed/,https://www.theverge.com/rss/index.xml,https://arstechnica.com/feed/,https://www.wired.com/feed,https://feeds.feedburner.com/Techmeme,https://spectrum.ieee.org/rss/fulltext,https://www.technologyreview.com/feed/,https://www.engadget.com/rss.xml,https://ai.googleblog.com/feeds/posts/default,https://openai.com/blog/rss.xml,https://blogs.nvidia.com/feed/"`
	ColombiaFeeds []string `env:"FEEDS_COLOMBIA" envSeparator:"," envDefault:"https://www.eltiempo.com/rss.xml,https://www.semana.com/rss.xml,https://www.elespectador.com/rss.xml,https://www.portafolio.co/rss/portada.xml,https://www.bluradio.com/rss/colombia.xml,https://caracol.com.co/rss/colombia.xml,https://www.wradio.com.co/rss/colombia.xml,https://www.elcolombiano.com/rss/colombia"`
	WorldFeeds    []string `env:"FEEDS_WORLD" envSeparator:"," envDefault:"https://feeds.bbci.co.uk/news/world/rss.xml,https://rss.cnn.com/rss/edition.rss,https://www.reuters.com/rssFeed/worldNews"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Sources maps each category to its feed URLs.
func (c *Config) Sources() map[Category][]string {
	return map[Category][]string{
		CategoryTechnology: c.TechFeeds,
		CategoryColombia:   c.ColombiaFeeds,
		CategoryWorld:      c.WorldFeeds,
	}
}

// Categories returns the categories collected this run. The only-tech mode
// gates collection and selection inputs; the pipeline itself is unchanged.
func (c *Config) Categories(onlyTech bool) []Category {
	if onlyTech {
		return []Category{CategoryTechnology}
	}

	return append([]Category(nil), PresentationOrder...)
}
