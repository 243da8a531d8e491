// Package synth generates deterministic synthetic raw days: a smooth
// seasonal sunset curve with the handful of feed fields the rule engine
// reads. It stands in for the live feed in tests and offline demos.
package synth

import (
	"context"
	"math"
	"time"

	"github.com/Yossi/zmanim-scraper/internal/domain/model"
)

// Generator produces raw days from a fixed seasonal model. It implements
// the pipeline's raw source interface.
type Generator struct{}

// NewGenerator creates a synthetic raw-day source.
func NewGenerator() *Generator {
	return &Generator{}
}

// RawDay returns the synthetic zmanim for one localized civil date.
func (g *Generator) RawDay(_ context.Context, date time.Time) (model.RawDay, error) {
	sunset := sunsetMinutes(date)

	times := map[string]string{
		model.FieldLatestShema:  clock(date, 9*60+30),
		model.FieldPlagHamincha: clock(date, sunset-75),
		model.FieldSunset:       clock(date, sunset),
	}
	switch date.Weekday() {
	case time.Friday:
		times[model.FieldCandleLighting] = clock(date, sunset-18)
	case time.Saturday:
		times[model.FieldShabbatEnds] = clock(date, sunset+42)
	}

	return model.RawDay{Date: date, Times: times}, nil
}

// sunsetMinutes models sunset as minutes after midnight: a sinusoid centered
// on 6:00 PM standard time with an 80-minute seasonal swing, peaking near
// the June solstice, plus the DST hour when the date observes it.
func sunsetMinutes(date time.Time) int {
	doy := float64(date.YearDay())
	minutes := 1080 + 80*math.Sin(2*math.Pi*(doy-81)/365)
	if date.IsDST() {
		minutes += 60
	}
	return int(minutes)
}

// clock renders minutes-after-midnight in the feed's display format.
func clock(date time.Time, minutes int) string {
	t := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return t.Add(time.Duration(minutes) * time.Minute).Format("3:04 PM")
}
