package parser

import (
	"fmt"
	"testing"
	"time"
)

func tweetMarkup(id, screenName, text string, unix int64) string {
	return fmt.Sprintf(`
<li class="js-stream-item stream-item">
  <div class="tweet js-stream-tweet" data-tweet-id="%s" data-permalink-path="/%s/status/%s" data-screen-name="%s" data-name="Some Name">
    <div class="stream-item-header">
      <small class="time">
        <span class="_timestamp js-short-timestamp" data-time="%d">1h</span>
      </small>
    </div>
    <p class="TweetTextSize tweet-text">%s</p>
    <div class="stream-item-footer">
      <span class="ProfileTweet-action--reply"><span class="ProfileTweet-actionCount" data-tweet-stat-count="3"></span></span>
      <span class="ProfileTweet-action--retweet"><span class="ProfileTweet-actionCount" data-tweet-stat-count="14"></span></span>
      <span class="ProfileTweet-action--favorite"><span class="ProfileTweet-actionCount" data-tweet-stat-count="159"></span></span>
    </div>
  </div>
</li>`, id, screenName, id, screenName, unix, text)
}

func TestTweets_Extraction(t *testing.T) {
	html := `<ol class="stream-items">` +
		tweetMarkup("1001", "alice", "first post", 1577836800) +
		tweetMarkup("1002", "bob", "second post", 1577923200) +
		`</ol>`

	p := New()
	tweets := p.Tweets(html)

	if len(tweets) != 2 {
		t.Fatalf("expected 2 tweets, got %d", len(tweets))
	}

	first := tweets[0]
	if first.ID != "1001" {
		t.Errorf("expected ID 1001, got %q", first.ID)
	}
	if first.Username != "alice" {
		t.Errorf("expected username alice, got %q", first.Username)
	}
	if first.Permalink != "/alice/status/1001" {
		t.Errorf("unexpected permalink %q", first.Permalink)
	}
	if first.Text != "first post" {
		t.Errorf("unexpected text %q", first.Text)
	}

	want := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if !first.Timestamp.Equal(want) {
		t.Errorf("expected timestamp %v, got %v", want, first.Timestamp)
	}

	if first.Replies != 3 || first.Retweets != 14 || first.Likes != 159 {
		t.Errorf("unexpected counters: replies=%d retweets=%d likes=%d",
			first.Replies, first.Retweets, first.Likes)
	}
}

func TestTweets_SkipsEntriesWithoutID(t *testing.T) {
	html := `<div class="tweet"><p class="tweet-text">promoted junk</p></div>` +
		tweetMarkup("42", "carol", "real one", 1600000000)

	tweets := New().Tweets(html)
	if len(tweets) != 1 {
		t.Fatalf("expected 1 tweet, got %d", len(tweets))
	}
	if tweets[0].ID != "42" {
		t.Errorf("expected ID 42, got %q", tweets[0].ID)
	}
}

func TestTweets_TolerantOfGarbage(t *testing.T) {
	cases := []struct {
		name string
		html string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t  "},
		{"not html", `{"json": "payload"}`},
		{"truncated tag soup", `<div class="tweet" data-tweet-id="9`},
		{"no tweets", `<html><body><p>nothing here</p></body></html>`},
	}

	p := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Tweets(tc.html); len(got) != 0 {
				t.Errorf("expected no tweets, got %d", len(got))
			}
		})
	}
}

func TestTweets_MissingCountersAreZero(t *testing.T) {
	html := `<div class="tweet" data-tweet-id="7" data-screen-name="dave">
		<p class="tweet-text">bare tweet</p>
		<span class="_timestamp" data-time="not-a-number">?</span>
	</div>`

	tweets := New().Tweets(html)
	if len(tweets) != 1 {
		t.Fatalf("expected 1 tweet, got %d", len(tweets))
	}
	tw := tweets[0]
	if tw.Replies != 0 || tw.Retweets != 0 || tw.Likes != 0 {
		t.Errorf("expected zero counters, got %+v", tw)
	}
	if !tw.Timestamp.IsZero() {
		t.Errorf("expected zero timestamp for unparseable data-time, got %v", tw.Timestamp)
	}
}
