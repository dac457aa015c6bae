package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/FranksOps/chirp/internal/parser"
)

// fakeFetcher scripts page bodies per request. The handler sees the full
// URL, so tests can assert on endpoint selection and cursor propagation.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []string
	handler func(call int, url string) (string, error)
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	call := len(f.calls)
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	return f.handler(call, url)
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFetcher) call(i int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

// tweetMarkup renders the minimal stream markup the parser accepts.
func tweetMarkup(id string, unix int64) string {
	return fmt.Sprintf(`<div class="tweet" data-tweet-id="%s" data-screen-name="someone">`+
		`<span class="_timestamp" data-time="%d"></span>`+
		`<p class="tweet-text">tweet %s</p></div>`, id, unix, id)
}

// envelopeBody renders a continuation response wrapping the given markup.
func envelopeBody(t *testing.T, minPos string, markup ...string) string {
	t.Helper()
	items := ""
	for _, m := range markup {
		items += m
	}
	raw, err := json.Marshal(envelope{ItemsHTML: items, MinPosition: minPos})
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}
	return string(raw)
}

func newTestScraper(t *testing.T, retries int, fetcher PageFetcher) *Scraper {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Config{
		BaseURL: "http://upstream.test",
		Retries: retries,
	}, fetcher, parser.New(), logger)
}

func tweetIDs(tweets []parser.Tweet) []string {
	ids := make([]string, len(tweets))
	for i, tw := range tweets {
		ids[i] = tw.ID
	}
	return ids
}

func sameIDs(got []parser.Tweet, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, tw := range got {
		if tw.ID != want[i] {
			return false
		}
	}
	return true
}
