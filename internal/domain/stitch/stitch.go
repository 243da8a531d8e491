// Package stitch applies the cross-day adjustments that only make sense once
// a whole week is visible: the Friday-to-Friday mincha fill-in for the middle
// of the week, the Saturday mincha derived from Friday's candle lighting, the
// early-Friday summer adjustment, and the Yom Kippur overrides.
package stitch

import (
	"context"
	"fmt"
	"time"

	"github.com/Yossi/zmanim-scraper/internal/domain/civil"
	"github.com/Yossi/zmanim-scraper/internal/domain/model"
	"github.com/Yossi/zmanim-scraper/internal/domain/rules"
	"github.com/Yossi/zmanim-scraper/internal/domain/timeutil"
	"github.com/Yossi/zmanim-scraper/pkg/logger"
	"github.com/Yossi/zmanim-scraper/pkg/metrics"
)

// fillInSpan is how many trailing days a Friday reaches back over: Sunday
// through Thursday. Saturday is handled separately and Friday is the day
// being ingested.
const fillInSpan = 5

// Stitcher accumulates derived days in date order and revises the published
// mincha and maariv as each week closes.
type Stitcher struct {
	engine *rules.Engine
	civil  *civil.Calendar
	log    logger.Logger

	days       []*model.Day
	haveFriday bool
}

// Option configures a Stitcher.
type Option func(*Stitcher)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Stitcher) { s.log = l }
}

// NewStitcher builds a stitcher over the given rule engine and civil
// calendar.
func NewStitcher(engine *rules.Engine, civ *civil.Calendar, opts ...Option) *Stitcher {
	s := &Stitcher{
		engine: engine,
		civil:  civ,
		log:    logger.Named("stitch"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Days returns the accumulated days in ingest order, padding included.
func (s *Stitcher) Days() []*model.Day {
	return s.days
}

// Ingest appends one derived day and runs whatever adjustments its weekday
// unlocks. Days must arrive in consecutive date order.
func (s *Stitcher) Ingest(ctx context.Context, d *model.Day) error {
	if d.IsFriday() {
		s.haveFriday = true
		if err := s.closeWeek(ctx, d); err != nil {
			return err
		}

		observed, err := s.engine.EarlyFridayMincha(d)
		if err != nil {
			return fmt.Errorf("early friday mincha on %s: %w", d.Date.Format("2006-01-02"), err)
		}
		d.MinchaObserved = observed
		d.MinchaObserved = s.engine.YomKippurOverride(d)
	}

	if d.IsSaturday() && s.haveFriday {
		if err := s.saturdayMincha(d); err != nil {
			return err
		}
		d.MinchaObserved = s.engine.YomKippurOverride(d)
	}

	s.days = append(s.days, d)
	return nil
}

// closeWeek fills in Sunday through Thursday of the week this Friday ends.
// Each fill-in-eligible day (under DST, a Sunday, or a civil holiday) gets
// the week's reference mincha, shifted earlier on fast days, and its maariv
// folded into the mincha service.
func (s *Stitcher) closeWeek(ctx context.Context, friday *model.Day) error {
	if len(s.days) < 7 {
		return nil
	}

	ref, err := s.referenceMincha(s.days[len(s.days)-7], friday)
	if err != nil {
		return err
	}

	for _, day := range s.days[len(s.days)-fillInSpan:] {
		if day.DST || day.Date.Weekday() == time.Sunday || s.civil.Holiday(day.Date) != "" {
			filled := timeutil.Format(ref.Add(-rules.FastOffset(day.Fast)))
			day.Mincha = filled
			day.MinchaObserved = filled
			day.Maariv = model.AfterMincha
			metrics.RecordWeeklyFillIn()
			s.log.Debug(ctx, "filled in weekday mincha",
				logger.String("date", day.Date.Format("2006-01-02")),
				logger.String("mincha", filled))
		}
		day.MinchaObserved = s.engine.YomKippurOverride(day)
	}
	return nil
}

// referenceMincha is the earlier of last Friday's and this Friday's initial
// mincha, compared as times of day. Last Friday's value is pushed forward an
// hour when that week was on standard time, so the comparison happens on a
// single clock.
func (s *Stitcher) referenceMincha(prev, cur *model.Day) (time.Time, error) {
	prevMincha, err := timeutil.Parse(prev.Mincha)
	if err != nil {
		return time.Time{}, fmt.Errorf("mincha on %s: %w", prev.Date.Format("2006-01-02"), err)
	}
	if !prev.DST {
		prevMincha = prevMincha.Add(time.Hour)
	}

	curMincha, err := timeutil.Parse(cur.Mincha)
	if err != nil {
		return time.Time{}, fmt.Errorf("mincha on %s: %w", cur.Date.Format("2006-01-02"), err)
	}

	if timeutil.MinutesOfDay(prevMincha) < timeutil.MinutesOfDay(curMincha) {
		return prevMincha, nil
	}
	return curMincha, nil
}

// saturdayMincha is fifteen minutes before Friday's candle lighting, rounded
// to the nearest five minutes.
func (s *Stitcher) saturdayMincha(sat *model.Day) error {
	friday := s.days[len(s.days)-1]
	candles, err := timeutil.Parse(friday.Candles)
	if err != nil {
		return fmt.Errorf("friday candles before %s: %w", sat.Date.Format("2006-01-02"), err)
	}
	mincha := timeutil.RoundNearest5(candles.Add(-15 * time.Minute))
	sat.MinchaObserved = timeutil.Format(mincha)
	return nil
}
