package scraper

import (
	"context"
	"encoding/json"

	"github.com/FranksOps/chirp/internal/metrics"
	"github.com/FranksOps/chirp/internal/parser"
)

// envelope is the JSON wrapper around continuation pages. items_html holds
// the same markup a first page serves inline; min_position is the
// upstream's idea of where this page ends.
type envelope struct {
	ItemsHTML   string `json:"items_html"`
	MinPosition string `json:"min_position"`
}

// requestPage retrieves one page of tweets, retrying up to the configured
// budget. The returned cursor is the ID of the last tweet on the page, not
// the envelope's min_position: progress is keyed off the last record
// actually seen.
//
// An empty parse is not treated as end-of-stream within the budget. The
// cursor is advanced to whatever min_position the envelope reported and
// the page is requested again, so a transiently empty response cannot
// truncate a stream. Only an exhausted budget produces (nil, ""), which
// the paginators treat as a normal end.
func (s *Scraper) requestPage(ctx context.Context, query, lang, pos string, fromUser bool) ([]parser.Tweet, string) {
	mode := "search"
	if fromUser {
		mode = "user"
	}

	retries := s.cfg.Retries
	for i := 0; i < retries; i++ {
		if ctx.Err() != nil {
			return nil, ""
		}

		targetURL := pageURL(s.cfg.BaseURL, query, lang, pos, fromUser)

		body, err := s.fetcher.Fetch(ctx, targetURL)
		if err != nil {
			s.logger.Warn("page fetch failed", "url", targetURL, "err", err)
			metrics.FetchRetries.WithLabelValues(metrics.ReasonTransport).Inc()
			s.logger.Info("retrying", "attempts_left", retries-(i+1))
			continue
		}

		var html string
		var env *envelope
		if pos == "" {
			// First page: the body is the full HTML document.
			html = body
		} else {
			var e envelope
			if err := json.Unmarshal([]byte(body), &e); err != nil {
				s.logger.Warn("malformed timeline envelope", "url", targetURL, "err", err)
				metrics.FetchRetries.WithLabelValues(metrics.ReasonParse).Inc()
			} else {
				env = &e
				html = e.ItemsHTML
			}
		}

		tweets := s.parser.Tweets(html)
		metrics.RecordPage(mode, len(tweets))
		if len(tweets) == 0 {
			// Stall: advance to the reported position before retrying.
			if env != nil {
				pos = env.MinPosition
			} else {
				pos = ""
			}
			metrics.FetchRetries.WithLabelValues(metrics.ReasonStall).Inc()
			s.logger.Info("retrying", "attempts_left", retries-(i+1))
			continue
		}

		return tweets, tweets[len(tweets)-1].ID
	}

	s.logger.Error("no success fetching page", "query", query, "attempts", retries)
	metrics.RetriesExhausted.WithLabelValues(mode).Inc()
	return nil, ""
}

// requestProfile retrieves and parses a user page, retrying both transport
// and parse failures up to the budget. Returns nil once the budget is
// exhausted.
func (s *Scraper) requestProfile(ctx context.Context, targetURL string) *parser.Profile {
	retries := s.cfg.Retries
	for i := 0; i < retries; i++ {
		if ctx.Err() != nil {
			return nil
		}

		body, err := s.fetcher.Fetch(ctx, targetURL)
		if err != nil {
			s.logger.Warn("profile fetch failed", "url", targetURL, "err", err)
			metrics.FetchRetries.WithLabelValues(metrics.ReasonTransport).Inc()
		} else {
			profile, perr := s.parser.Profile(body)
			if perr == nil {
				return profile
			}
			s.logger.Warn("profile parse failed", "url", targetURL, "err", perr)
			metrics.FetchRetries.WithLabelValues(metrics.ReasonParse).Inc()
		}
		s.logger.Info("retrying", "attempts_left", retries-(i+1))
	}

	s.logger.Error("no success fetching profile", "url", targetURL, "attempts", retries)
	return nil
}
