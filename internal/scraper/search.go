package scraper

import (
	"context"

	"github.com/FranksOps/chirp/internal/parser"
)

// Emission pairs a tweet with the cursor that requested its page, so a
// caller can resume a stream later from where it left off.
type Emission struct {
	Tweet  parser.Tweet
	Cursor string
}

// Search walks the search results for query as a lazy stream. The channel
// is closed on end-of-stream, when the accumulated count reaches limit, or
// when ctx is canceled; in every case whatever was emitted so far stands.
//
// limit is a floor, not a cap: the page that crosses it is emitted in
// full, so callers may receive more than limit tweets. limit <= 0 means
// unlimited. pos resumes from a previously emitted cursor; "" starts at
// the first page.
func (s *Scraper) Search(ctx context.Context, query, lang, pos string, limit int) <-chan Emission {
	out := make(chan Emission)

	go func() {
		defer close(out)
		defer s.recoverFailure("search")

		s.logger.Info("querying search", "query", query)

		count := 0
		for {
			tweets, next := s.requestPage(ctx, query, lang, pos, false)
			if len(tweets) == 0 {
				s.logger.Info("search finished", "query", query, "tweets", count)
				return
			}

			for _, t := range tweets {
				select {
				case out <- Emission{Tweet: t, Cursor: pos}:
				case <-ctx.Done():
					s.logger.Info("search interrupted", "query", query, "tweets", count)
					return
				}
			}

			pos = next
			count += len(tweets)

			if limit > 0 && count >= limit {
				s.logger.Info("search finished", "query", query, "tweets", count)
				return
			}
		}
	}()

	return out
}

// SearchTweets drains Search into a slice. Used by the parallel workers
// and by callers that do not care about resumption cursors.
func (s *Scraper) SearchTweets(ctx context.Context, query, lang string, limit int) []parser.Tweet {
	var tweets []parser.Tweet
	for em := range s.Search(ctx, query, lang, "", limit) {
		tweets = append(tweets, em.Tweet)
	}
	return tweets
}
