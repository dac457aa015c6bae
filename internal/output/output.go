// Package output writes finished scrape results to a file, as NDJSON or
// CSV. Writers append, so interrupted runs keep what was already flushed.
package output

import (
	"fmt"

	"github.com/FranksOps/chirp/internal/parser"
)

// Writer persists batches of scraped tweets.
type Writer interface {
	Write(tweets []parser.Tweet) error
	Close() error
}

// New creates a Writer for the given format ("json" or "csv").
func New(format, filePath string) (Writer, error) {
	switch format {
	case "json":
		return NewJSON(filePath)
	case "csv":
		return NewCSV(filePath)
	default:
		return nil, fmt.Errorf("output: unknown format %q", format)
	}
}
