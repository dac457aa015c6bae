package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PagesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chirp_pages_fetched_total",
			Help: "Total number of result pages fetched, by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	FetchRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chirp_fetch_retries_total",
			Help: "Total number of page fetch retries, by reason",
		},
		[]string{"reason"},
	)

	RetriesExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chirp_retries_exhausted_total",
			Help: "Total number of pages abandoned after the retry budget ran out",
		},
		[]string{"mode"},
	)

	TweetsScraped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chirp_tweets_scraped_total",
			Help: "Total number of tweets produced by all paginator runs",
		},
	)

	PartitionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chirp_partition_duration_seconds",
			Help:    "Time taken to drain one date partition in a parallel run",
			Buckets: []float64{0.5, 1, 5, 15, 60, 300, 900},
		},
	)
)

// Retry reasons recorded by FetchRetries.
const (
	ReasonTransport = "transport"
	ReasonParse     = "parse"
	ReasonStall     = "stall"
)

// RecordPage updates the page counters for one completed fetch-and-parse
// attempt cycle.
func RecordPage(mode string, tweets int) {
	outcome := "ok"
	if tweets == 0 {
		outcome = "empty"
	}
	PagesFetched.WithLabelValues(mode, outcome).Inc()
	if tweets > 0 {
		TweetsScraped.Add(float64(tweets))
	}
}

// Server encapsulates an HTTP server for Prometheus metrics.
type Server struct {
	srv *http.Server
}

// Start begins listening on the specified port and exposes /metrics.
func Start(port int) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		// Suppress the error from intentional shutdown
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("metrics server failed: %v\n", err)
		}
	}()

	return &Server{srv: srv}
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
