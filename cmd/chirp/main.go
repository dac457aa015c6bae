package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FranksOps/chirp/internal/config"
	"github.com/FranksOps/chirp/internal/fingerprint"
	"github.com/FranksOps/chirp/internal/metrics"
	"github.com/FranksOps/chirp/internal/output"
	"github.com/FranksOps/chirp/internal/parser"
	"github.com/FranksOps/chirp/internal/scraper"
	"github.com/FranksOps/chirp/pkg/ratelimit"
	"github.com/FranksOps/chirp/pkg/useragent"
)

const dateLayout = "2006-01-02"

type options struct {
	query    string
	user     string
	profile  bool
	lang     string
	limit    int
	cursor   string
	pool     int
	begin    time.Time
	end      time.Time
	parallel bool
	outPath  string
	format   string
}

func main() {
	var (
		configPath = flag.String("config", "", "path to config file (overrides CONFIG_PATH env)")
		query      = flag.String("query", "", "search query (advanced operators supported)")
		user       = flag.String("user", "", "scrape this user's timeline instead of searching")
		profile    = flag.Bool("profile", false, "fetch the user's profile metadata only")
		lang       = flag.String("lang", "", "language filter for searches")
		limit      = flag.Int("limit", 0, "stop once at least this many tweets are collected (0 = no limit)")
		cursor     = flag.String("cursor", "", "resume a search from this cursor")
		pool       = flag.Int("pool", 0, "worker count for parallel searches (0 = config default)")
		begin      = flag.String("begin", "", "parallel mode: start date, YYYY-MM-DD")
		end        = flag.String("end", "", "parallel mode: end date, YYYY-MM-DD")
		parallel   = flag.Bool("parallel", false, "partition the date range and search in parallel")
		outPath    = flag.String("output", "", "write results to this file instead of stdout")
		format     = flag.String("format", "json", "output format: json or csv")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *query == "" && *user == "" {
		fmt.Fprintln(os.Stderr, "either -query or -user is required")
		flag.Usage()
		os.Exit(2)
	}

	opts := options{
		query:    *query,
		user:     *user,
		profile:  *profile,
		lang:     *lang,
		limit:    *limit,
		cursor:   *cursor,
		pool:     *pool,
		parallel: *parallel || *begin != "" || *end != "",
		outPath:  *outPath,
		format:   *format,
	}

	var err error
	if opts.begin, err = parseDate(*begin); err != nil {
		logger.Error("invalid -begin date", "err", err)
		os.Exit(2)
	}
	if opts.end, err = parseDate(*end); err != nil {
		logger.Error("invalid -end date", "err", err)
		os.Exit(2)
	}

	cfg := config.MustLoad(*configPath)

	// SIGINT/SIGTERM cancel the context; every operation below returns
	// its partial results on cancellation, so an interrupted run still
	// writes what it collected.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func run(ctx context.Context, cfg *config.Config, opts options, logger *slog.Logger) error {
	if cfg.Metrics.Enabled {
		srv := metrics.Start(cfg.Metrics.Port)
		defer srv.Stop(context.Background())
		logger.Info("metrics exposed", "port", cfg.Metrics.Port)
	}

	fetcher, err := scraper.NewFetcher(scraper.FetchConfig{
		Timeout:      cfg.HTTP.Timeout,
		MaxRedirects: cfg.HTTP.MaxRedirects,
		UseCookieJar: cfg.HTTP.UseCookieJar,
		UAPool:       useragent.NewPool(cfg.HTTP.UserAgents),
		Fingerprint:  fingerprint.Profile(cfg.HTTP.Fingerprint),
		Limiter:      ratelimit.NewLimiter(cfg.HTTP.RequestsPerSecond, cfg.HTTP.Jitter),
	})
	if err != nil {
		return fmt.Errorf("setup fetcher: %w", err)
	}

	s := scraper.New(scraper.Config{
		BaseURL:  cfg.Scraper.BaseURL,
		Retries:  cfg.Scraper.Retries,
		PoolSize: cfg.Scraper.PoolSize,
	}, fetcher, parser.New(), logger)

	if opts.profile {
		profile := s.Profile(ctx, opts.user)
		if profile == nil {
			return fmt.Errorf("no profile found for %s", opts.user)
		}
		return json.NewEncoder(os.Stdout).Encode(profile)
	}

	var tweets []parser.Tweet
	switch {
	case opts.user != "":
		tweets = s.UserTweets(ctx, opts.user, opts.limit)
	case opts.parallel:
		tweets = s.SearchParallel(ctx, opts.query, opts.lang, opts.limit, opts.pool, opts.begin, opts.end)
	default:
		for em := range s.Search(ctx, opts.query, opts.lang, opts.cursor, opts.limit) {
			tweets = append(tweets, em.Tweet)
		}
	}

	return write(tweets, opts, logger)
}

func write(tweets []parser.Tweet, opts options, logger *slog.Logger) error {
	if opts.outPath == "" {
		enc := json.NewEncoder(os.Stdout)
		for _, t := range tweets {
			if err := enc.Encode(t); err != nil {
				return fmt.Errorf("encode tweet: %w", err)
			}
		}
		return nil
	}

	w, err := output.New(opts.format, opts.outPath)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Write(tweets); err != nil {
		return err
	}
	logger.Info("results written", "path", opts.outPath, "format", opts.format, "tweets", len(tweets))
	return nil
}
