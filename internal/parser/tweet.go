// Package parser extracts structured records from the raw HTML fragments
// served by the web timeline. The markup is semi-structured and changes
// without notice, so every extraction path degrades to "no records" rather
// than failing.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Tweet is one scraped timeline entry. ID doubles as the continuation
// cursor when paginating, Timestamp drives ordering decisions.
type Tweet struct {
	ID        string    `json:"id"`
	Permalink string    `json:"permalink"`
	Username  string    `json:"username"`
	Fullname  string    `json:"fullname"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Replies   int       `json:"replies"`
	Retweets  int       `json:"retweets"`
	Likes     int       `json:"likes"`
}

// HTML implements the page-parsing contract over the legacy stream markup.
// The zero value is ready to use.
type HTML struct{}

// New returns a parser for the web timeline markup.
func New() *HTML {
	return &HTML{}
}

// Tweets extracts all tweets from a page or fragment. Malformed or empty
// input yields an empty slice, never an error: an unreadable page is
// indistinguishable from an empty one as far as pagination is concerned.
func (p *HTML) Tweets(html string) []Tweet {
	if strings.TrimSpace(html) == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var tweets []Tweet
	doc.Find("div.tweet").Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr("data-tweet-id")
		if !ok || id == "" {
			return
		}

		t := Tweet{ID: id}
		t.Permalink, _ = s.Attr("data-permalink-path")
		t.Username, _ = s.Attr("data-screen-name")
		t.Fullname, _ = s.Attr("data-name")
		t.Text = strings.TrimSpace(s.Find("p.tweet-text").Text())

		if raw, ok := s.Find("span._timestamp").Attr("data-time"); ok {
			if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
				t.Timestamp = time.Unix(secs, 0).UTC()
			}
		}

		t.Replies = actionCount(s, "ProfileTweet-action--reply")
		t.Retweets = actionCount(s, "ProfileTweet-action--retweet")
		t.Likes = actionCount(s, "ProfileTweet-action--favorite")

		tweets = append(tweets, t)
	})

	return tweets
}

// actionCount reads one engagement counter from a tweet's action bar.
// Missing or non-numeric counters count as zero.
func actionCount(s *goquery.Selection, action string) int {
	raw, ok := s.Find("span." + action + " span.ProfileTweet-actionCount").Attr("data-tweet-stat-count")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
