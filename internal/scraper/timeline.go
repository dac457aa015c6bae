package scraper

import (
	"context"
	"strconv"

	"github.com/FranksOps/chirp/internal/parser"
)

// UserTweets collects a user's timeline, newest first, up to limit (the
// final page may overshoot it). Cancellation or retry exhaustion returns
// whatever accumulated so far.
//
// Near the oldest available history the upstream starts reporting
// positions that grow instead of shrink. When the new cursor compares
// numerically greater than the previous one the walk switches to a
// tail-merge: only tweets strictly older than the last accumulated one
// are appended, then the walk stops. A single reversal is assumed to be
// immediately followed by end-of-stream; repeated reversal cycles are not
// handled.
func (s *Scraper) UserTweets(ctx context.Context, user string, limit int) []parser.Tweet {
	defer s.recoverFailure("user_tweets")

	s.logger.Info("querying user tweets", "user", user)

	var tweets []parser.Tweet
	pos := ""
	for {
		newTweets, next := s.requestPage(ctx, user, "", pos, true)
		if len(newTweets) == 0 {
			break
		}

		if pos != "" && cursorValue(next) > cursorValue(pos) {
			for _, t := range newTweets {
				if len(tweets) > 0 && tweets[len(tweets)-1].Timestamp.After(t.Timestamp) {
					tweets = append(tweets, t)
				}
			}
			break
		}

		pos = next
		tweets = append(tweets, newTweets...)

		if limit > 0 && len(tweets) >= limit {
			break
		}
	}

	s.logger.Info("got user tweets", "user", user, "tweets", len(tweets))
	return tweets
}

// Profile fetches one user's profile metadata. Returns nil after the
// retry budget is exhausted.
func (s *Scraper) Profile(ctx context.Context, user string) *parser.Profile {
	defer s.recoverFailure("profile")

	s.logger.Info("querying profile", "user", user)

	profile := s.requestProfile(ctx, userPageURL(s.cfg.BaseURL, user, ""))
	if profile == nil {
		s.logger.Info("profile lookup failed", "user", user)
	} else {
		s.logger.Info("profile found", "user", user, "username", profile.Username)
	}
	return profile
}

// cursorValue reads a timeline position as a number for the reversal
// check. Positions that do not parse compare as zero, which never
// triggers a reversal.
func cursorValue(pos string) int64 {
	v, err := strconv.ParseInt(pos, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
