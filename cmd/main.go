package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yossi/zmanim-scraper/internal/adapters/csvio"
	"github.com/Yossi/zmanim-scraper/internal/adapters/feed"
	"github.com/Yossi/zmanim-scraper/internal/adapters/http/api"
	"github.com/Yossi/zmanim-scraper/internal/adapters/store"
	"github.com/Yossi/zmanim-scraper/internal/app"
	"github.com/Yossi/zmanim-scraper/internal/config"
	"github.com/Yossi/zmanim-scraper/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	rawCSV := flag.String("csv", "", "generate from a raw-day CSV dump instead of the feed")
	serve := flag.Bool("serve", false, "keep running and serve the schedule over HTTP")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Error(ctx, "invalid timezone", logger.String("timezone", cfg.Timezone), logger.Error(err))
		return
	}

	start, end, err := scheduleRange(cfg, loc)
	if err != nil {
		log.Error(ctx, "invalid date range", logger.Error(err))
		return
	}

	source, cleanup, err := buildSource(cfg, loc, *rawCSV)
	if err != nil {
		log.Error(ctx, "building raw source failed", logger.Error(err))
		return
	}
	defer cleanup()

	svc := app.NewService(
		app.WithLogger(log),
		app.WithSource(source),
		app.WithLocation(loc),
	)

	days, err := svc.Generate(ctx, start, end)
	if err != nil {
		log.Error(ctx, "schedule generation failed", logger.Error(err))
		return
	}

	output := cfg.Output
	if output == "" {
		output = fmt.Sprintf("%s_davening_times_%s_to_%s.csv",
			cfg.Zipcode, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if err := csvio.WriteReportFile(output, days); err != nil {
		log.Error(ctx, "writing report failed", logger.Error(err))
		return
	}
	log.Info(ctx, "report written", logger.String("path", output), logger.Int("rows", len(days)))

	if !*serve {
		return
	}

	mux := http.NewServeMux()
	api.NewServer(svc).Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// scheduleRange resolves the report's date span: explicit start/end when
// configured, otherwise the whole schedule year: the current year through
// June, the next one after.
func scheduleRange(cfg *config.Config, loc *time.Location) (time.Time, time.Time, error) {
	if cfg.StartDate != "" || cfg.EndDate != "" {
		start, err := time.ParseInLocation("2006-01-02", cfg.StartDate, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("start_date: %w", err)
		}
		end, err := time.ParseInLocation("2006-01-02", cfg.EndDate, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end_date: %w", err)
		}
		return start, end, nil
	}

	year := cfg.Year
	if year == 0 {
		now := time.Now().In(loc)
		year = now.Year()
		if now.Month() > time.June {
			year++
		}
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		time.Date(year, time.December, 31, 0, 0, 0, 0, loc), nil
}

// buildSource composes the raw-day source: a CSV dump for offline runs, or
// the live feed behind the sqlite cache.
func buildSource(cfg *config.Config, loc *time.Location, rawCSV string) (app.RawSource, func(), error) {
	if rawCSV != "" {
		src, err := csvio.OpenRawDays(rawCSV, loc)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	}

	opts := []feed.Option{
		feed.WithMaxAttempts(cfg.FetchMaxAttempts),
		feed.WithBackoff(cfg.FetchBackoff()),
	}
	if cfg.FeedURL != "" {
		opts = append(opts, feed.WithFeedURL(cfg.FeedURL))
	}
	client := feed.NewClient(cfg.Zipcode, opts...)

	cache, err := store.Open(cfg.CachePath)
	if err != nil {
		return nil, nil, err
	}
	return store.NewCachedSource(cache, client, cfg.Zipcode), func() { cache.Close() }, nil
}
