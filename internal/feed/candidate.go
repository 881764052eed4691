package feed

import (
	"time"

	"github.com/elboletin/newsbot/internal/config"
)

// Candidate is a normalized, not-yet-delivered content item. It is owned by
// the pipeline run that created it; only its fingerprint outlives the run.
type Candidate struct {
	Title       string
	Description string
	SourceURL   string
	Category    config.Category
	ImageURL    string
	PublishedAt time.Time

	// Fingerprint is the dedup key derived from (title, url).
	Fingerprint string

	// Index is the in-run collection order. It ties scores returned by the
	// batch scorer back to candidates and breaks ranking ties.
	Index int
}
