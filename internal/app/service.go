// Package app wires the schedule pipeline together: it walks the requested
// date range with a bracket of padding days, pulls raw zmanim from a source,
// derives each day through the rule engine, feeds the result through the
// week stitcher, and trims the padding off the finished report.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Yossi/zmanim-scraper/internal/domain/civil"
	"github.com/Yossi/zmanim-scraper/internal/domain/hebrew"
	"github.com/Yossi/zmanim-scraper/internal/domain/model"
	"github.com/Yossi/zmanim-scraper/internal/domain/rules"
	"github.com/Yossi/zmanim-scraper/internal/domain/stitch"
	"github.com/Yossi/zmanim-scraper/pkg/logger"
	"github.com/Yossi/zmanim-scraper/pkg/metrics"
)

// bracketDays pads the requested range on both sides so every day in it is
// bracketed by two Fridays, which the stitcher needs to fill a week in.
const bracketDays = 6

// RawSource supplies one day's raw zmanim for a localized civil date.
type RawSource interface {
	RawDay(ctx context.Context, date time.Time) (model.RawDay, error)
}

// Service generates davening schedules.
type Service struct {
	log      logger.Logger
	source   RawSource
	location *time.Location

	engine *rules.Engine
	civil  *civil.Calendar

	mu       sync.RWMutex
	schedule []*model.Day
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithSource sets the raw zmanim source.
func WithSource(src RawSource) Option {
	return func(s *Service) { s.source = src }
}

// WithLocation sets the timezone the schedule's dates live in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

// NewService builds the schedule service. A source must be provided via
// WithSource before Generate is called.
func NewService(opts ...Option) *Service {
	heb := hebrew.NewCalendar()
	civ := civil.NewCalendar()
	s := &Service{
		log:      logger.Named("app"),
		location: time.Local,
		engine:   rules.NewEngine(heb, civ),
		civil:    civ,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds the schedule for [start, end] inclusive and returns the
// finished days, padding removed. The result is also retained for Schedule.
func (s *Service) Generate(ctx context.Context, start, end time.Time) ([]*model.Day, error) {
	if s.source == nil {
		return nil, fmt.Errorf("no raw source configured")
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end %s before start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	runID := uuid.NewString()
	began := time.Now()
	s.log.Info(ctx, "generating schedule",
		logger.String("run_id", runID),
		logger.String("start", start.Format("2006-01-02")),
		logger.String("end", end.Format("2006-01-02")))

	stitcher := stitch.NewStitcher(s.engine, s.civil, stitch.WithLogger(s.log))

	total := spanDays(start, end) + 2*bracketDays
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date := s.localize(start.AddDate(0, 0, i-bracketDays))
		raw, err := s.source.RawDay(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", date.Format("2006-01-02"), err)
		}

		day, err := s.engine.Derive(raw)
		if err != nil {
			metrics.RecordDeriveFailure()
			return nil, err
		}
		metrics.RecordDayDerived()

		if err := stitcher.Ingest(ctx, day); err != nil {
			return nil, err
		}
	}

	days := stitcher.Days()
	if len(days) <= 2*bracketDays {
		return nil, fmt.Errorf("range produced no reportable days")
	}
	report := days[bracketDays : len(days)-bracketDays]

	s.mu.Lock()
	s.schedule = report
	s.mu.Unlock()

	metrics.ObserveBuildDuration(time.Since(began))
	metrics.UpdateScheduleRows(len(report))
	s.log.Info(ctx, "schedule generated",
		logger.String("run_id", runID),
		logger.Int("rows", len(report)),
		logger.Any("elapsed", time.Since(began).Round(time.Millisecond)))

	return report, nil
}

// Schedule returns the most recently generated report, or nil before the
// first Generate completes.
func (s *Service) Schedule() []*model.Day {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule
}

// localize pins a civil date at 03:00 in the schedule's timezone. The offset
// from midnight keeps the calendar date stable across DST transitions, which
// shift the clock at 02:00.
func (s *Service) localize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 3, 0, 0, 0, s.location)
}

// spanDays counts the calendar days in [start, end] inclusive. Dates are
// compared in UTC so a DST transition inside the range cannot shorten it.
func spanDays(start, end time.Time) int {
	su := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	eu := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(eu.Sub(su).Hours()/24) + 1
}
