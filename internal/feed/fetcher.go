package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

const errFmtFetchFeed = "fetch feed %s: %w"

// Fetcher retrieves and parses RSS/Atom feeds. An unreachable or malformed
// feed is that feed's problem alone; callers get an error to log and skip.
type Fetcher struct {
	parser     *gofeed.Parser
	maxEntries int
}

func NewFetcher(userAgent string, timeout time.Duration, maxEntries int) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: timeout}

	return &Fetcher{
		parser:     parser,
		maxEntries: maxEntries,
	}
}

// Fetch returns up to maxEntries items from the feed at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]*gofeed.Item, error) {
	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf(errFmtFetchFeed, url, err)
	}

	items := parsed.Items
	if len(items) > f.maxEntries {
		items = items[:f.maxEntries]
	}

	return items, nil
}
