package scraper

import (
	"context"
	"time"

	"github.com/FranksOps/chirp/internal/metrics"
	"github.com/FranksOps/chirp/internal/parser"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SearchParallel partitions [begin, end] into date sub-ranges and drains
// one search stream per partition across a pool of poolsize workers. The
// merged result is unordered: partitions are concatenated as they
// complete, not in date order.
//
// A zero begin defaults to EarliestDate, a zero end to today, and
// poolsize <= 0 to the configured default. A partition that yields
// nothing contributes an empty list; it never aborts the run. On
// cancellation the pool stops dispatching, in-flight workers unwind
// naturally, and the partial merge is returned.
func (s *Scraper) SearchParallel(ctx context.Context, query, lang string, limit, poolsize int, begin, end time.Time) []parser.Tweet {
	defer s.recoverFailure("parallel_search")

	if begin.IsZero() {
		begin = EarliestDate
	}
	if end.IsZero() {
		end = time.Now().UTC()
	}
	if poolsize <= 0 {
		poolsize = s.cfg.PoolSize
	}

	parts := splitRange(query, begin, end, poolsize)
	poolsize = len(parts)
	perLimit := partitionLimit(limit, poolsize)

	runID := uuid.New().String()
	s.logger.Info("starting parallel search",
		"run_id", runID, "query", query, "partitions", len(parts),
		"workers", poolsize, "limit_per_partition", perLimit)

	// Bounded dispatch: all partitions are queued up front and the fixed
	// worker set drains the queue.
	jobs := make(chan Partition, len(parts))
	for _, p := range parts {
		jobs <- p
	}
	close(jobs)

	// Buffered to the partition count so workers never block on delivery,
	// even when the collector has stopped on cancellation.
	results := make(chan []parser.Tweet, len(parts))

	var g errgroup.Group
	for i := 0; i < poolsize; i++ {
		g.Go(func() error {
			for p := range jobs {
				if ctx.Err() != nil {
					return nil
				}
				start := time.Now()
				batch := s.SearchTweets(ctx, p.Query, lang, perLimit)
				metrics.PartitionDuration.Observe(time.Since(start).Seconds())
				results <- batch
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	var tweets []parser.Tweet
collect:
	for {
		select {
		case batch, ok := <-results:
			if !ok {
				break collect
			}
			tweets = append(tweets, batch...)
			s.logger.Info("partition complete",
				"run_id", runID, "total", len(tweets), "new", len(batch))
		case <-ctx.Done():
			s.logger.Info("parallel search interrupted",
				"run_id", runID, "total", len(tweets))
			break collect
		}
	}

	// Join the pool on every exit path. After cancellation the workers
	// finish their in-flight partition and drain the closed queue quickly.
	_ = g.Wait()

	s.logger.Info("parallel search finished", "run_id", runID, "tweets", len(tweets))
	return tweets
}
