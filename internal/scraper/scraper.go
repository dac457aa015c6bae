// Package scraper drives cursor-based pagination over the web timeline:
// retrying page retrieval, single-stream paginators for search and user
// timelines, and a partitioned parallel mode for large date ranges.
package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/FranksOps/chirp/internal/parser"
)

// DefaultBaseURL is the upstream site root.
const DefaultBaseURL = "https://twitter.com"

// DefaultRetries is the per-page retry budget.
const DefaultRetries = 10

// DefaultPoolSize is the worker count for parallel searches.
const DefaultPoolSize = 20

// EarliestDate is the first day with any content upstream; parallel
// searches with no explicit begin date start here.
var EarliestDate = time.Date(2006, 3, 21, 0, 0, 0, 0, time.UTC)

// PageFetcher retrieves one raw page body. *Fetcher implements it; tests
// substitute fakes.
type PageFetcher interface {
	Fetch(ctx context.Context, targetURL string) (string, error)
}

// PageParser turns raw page markup into structured records. It must be
// tolerant: malformed tweet markup yields an empty slice, and only the
// profile path may report an error.
type PageParser interface {
	Tweets(html string) []parser.Tweet
	Profile(html string) (*parser.Profile, error)
}

// Config tunes a Scraper.
type Config struct {
	// BaseURL overrides the upstream root, mainly for tests.
	BaseURL string
	// Retries is the per-page retry budget.
	Retries int
	// PoolSize is the default worker count for SearchParallel.
	PoolSize int
}

// Scraper is the façade over all caller-facing operations. It never
// propagates upstream unreliability as an error: every operation returns
// whatever it managed to collect.
type Scraper struct {
	cfg     Config
	fetcher PageFetcher
	parser  PageParser
	logger  *slog.Logger
}

// New creates a Scraper. fetcher and pageParser are required; logger
// defaults to slog.Default().
func New(cfg Config, fetcher PageFetcher, pageParser PageParser, logger *slog.Logger) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Retries <= 0 {
		cfg.Retries = DefaultRetries
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultPoolSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scraper{
		cfg:     cfg,
		fetcher: fetcher,
		parser:  pageParser,
		logger:  logger,
	}
}

// recoverFailure is deferred at the outermost boundary of every public
// operation so an unexpected panic surfaces as a logged partial result
// instead of crashing the caller.
func (s *Scraper) recoverFailure(op string) {
	if r := recover(); r != nil {
		s.logger.Error("unexpected failure", "op", op, "panic", r)
	}
}
