package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/FranksOps/chirp/internal/parser"
)

// ensure jsonWriter implements Writer
var _ Writer = (*jsonWriter)(nil)

type jsonWriter struct {
	mu   sync.Mutex
	file *os.File
}

// NewJSON creates an NDJSON-backed Writer, one tweet per line.
func NewJSON(filePath string) (Writer, error) {
	// Open file for appending, create if it doesn't exist
	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	return &jsonWriter{file: f}, nil
}

func (w *jsonWriter) Write(tweets []parser.Tweet) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, t := range tweets {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("output: %w", err)
		}
		if _, err := w.file.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}
	return nil
}

func (w *jsonWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
