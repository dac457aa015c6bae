package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/FranksOps/chirp/internal/parser"
)

// ensure csvWriter implements Writer
var _ Writer = (*csvWriter)(nil)

type csvWriter struct {
	mu   sync.Mutex
	file *os.File
}

// headers defines the CSV column order
var headers = []string{
	"id",
	"permalink",
	"username",
	"fullname",
	"text",
	"timestamp",
	"replies",
	"retweets",
	"likes",
}

// NewCSV creates a CSV-backed Writer. The header row is only written when
// the file starts out empty, so appending to an earlier run is safe.
func NewCSV(filePath string) (Writer, error) {
	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("output: %w", err)
	}

	if info.Size() == 0 {
		w := csv.NewWriter(f)
		if err := w.Write(headers); err != nil {
			f.Close()
			return nil, fmt.Errorf("output: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("output: %w", err)
		}
	}

	return &csvWriter{file: f}, nil
}

func (w *csvWriter) Write(tweets []parser.Tweet) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	cw := csv.NewWriter(w.file)
	for _, t := range tweets {
		record := []string{
			t.ID,
			t.Permalink,
			t.Username,
			t.Fullname,
			t.Text,
			t.Timestamp.Format(time.RFC3339),
			strconv.Itoa(t.Replies),
			strconv.Itoa(t.Retweets),
			strconv.Itoa(t.Likes),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

func (w *csvWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
