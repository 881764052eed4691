package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/rs/zerolog"

	"github.com/elboletin/newsbot/internal/htmlutils"
)

const maxBodySize = 10 * 1024 * 1024 // 10MB

var (
	errHTTPError       = errors.New("HTTP error")
	errContentTooShort = errors.New("content too short")
)

// Extractor fetches an article page and pulls its readable text, used to give
// the summarizer something to work with when a feed ships a one-line
// description. Every failure here is non-fatal; callers keep the description.
type Extractor struct {
	client     *http.Client
	userAgent  string
	maxContent int
	logger     *zerolog.Logger
}

func NewExtractor(userAgent string, timeout time.Duration, maxContent int, logger *zerolog.Logger) *Extractor {
	return &Extractor{
		client:     &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		maxContent: maxContent,
		logger:     logger,
	}
}

// Extract returns up to maxContent runes of the article body at rawURL.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", errHTTPError, resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, maxBodySize)

	article, err := readability.FromReader(body, parsed)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}

	text := htmlutils.CollapseWhitespace(article.TextContent)
	if len(text) < 80 {
		return "", errContentTooShort
	}

	return htmlutils.Truncate(text, e.maxContent), nil
}
