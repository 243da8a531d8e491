// Package rules derives a single schedule day from its raw zmanim: the
// shachris slot, the note, the Friday mincha arithmetic, maariv, candle
// lighting, and the end-of-day value. Everything here looks at one day in
// isolation; cross-day adjustments live in the stitch package.
package rules

import (
	"fmt"
	"time"

	"github.com/Yossi/zmanim-scraper/internal/domain/civil"
	"github.com/Yossi/zmanim-scraper/internal/domain/hebrew"
	"github.com/Yossi/zmanim-scraper/internal/domain/model"
	"github.com/Yossi/zmanim-scraper/internal/domain/timeutil"
)

// majorHolidays are the Yom Tov days with a 10:00 AM shachris. Rosh Hashana
// and Yom Kippur are intentionally absent; they get their own earlier slot.
var majorHolidays = map[string]bool{
	"Pesach":         true,
	"Shavuos":        true,
	"Succos":         true,
	"Shmini Atzeres": true,
	"Simchas Torah":  true,
}

// Engine turns a RawDay into a derived Day.
type Engine struct {
	hebrew *hebrew.Calendar
	civil  *civil.Calendar

	weekdayShachris   string
	sundayShachris    string
	shabbosShachris   string
	daysOfAweShachris string
	defaultMaariv     string
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeekdayShachris overrides the default weekday shachris time.
func WithWeekdayShachris(t string) Option {
	return func(e *Engine) { e.weekdayShachris = t }
}

// WithSundayShachris overrides the Sunday and civil-holiday shachris time.
func WithSundayShachris(t string) Option {
	return func(e *Engine) { e.sundayShachris = t }
}

// WithShabbosShachris overrides the Shabbos and Yom Tov shachris time.
func WithShabbosShachris(t string) Option {
	return func(e *Engine) { e.shabbosShachris = t }
}

// WithDaysOfAweShachris overrides the Rosh Hashana / Yom Kippur shachris time.
func WithDaysOfAweShachris(t string) Option {
	return func(e *Engine) { e.daysOfAweShachris = t }
}

// WithDefaultMaariv overrides the standalone winter maariv time.
func WithDefaultMaariv(t string) Option {
	return func(e *Engine) { e.defaultMaariv = t }
}

// NewEngine builds a rule engine over the given calendars.
func NewEngine(heb *hebrew.Calendar, civ *civil.Calendar, opts ...Option) *Engine {
	e := &Engine{
		hebrew:            heb,
		civil:             civ,
		weekdayShachris:   "7:45 AM",
		sundayShachris:    "7:45 AM",
		shabbosShachris:   "10:00 AM",
		daysOfAweShachris: "9:00 AM",
		defaultMaariv:     "8:00 PM",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Derive computes the full day record from one raw day. It fails when a
// required time field is missing or unparseable; a partial day never enters
// the report.
func (e *Engine) Derive(raw model.RawDay) (*model.Day, error) {
	hd := e.hebrew.Convert(raw.Date)

	d := &model.Day{
		Date:     raw.Date,
		Weekday:  model.WeekdayName(raw.Date.Weekday()),
		DST:      raw.Date.IsDST(),
		HebYear:  hd.Year,
		HebMonth: hd.Month,
		HebDay:   hd.Day,
		HebDate:  e.hebrew.Display(hd),
		Plag:     raw.Get(model.FieldPlagHamincha),
	}

	festival := e.hebrew.Festival(hd)
	d.Fast = e.hebrew.FastDay(hd, raw.Date.Weekday())
	d.Reason = e.reason(raw.Date, hd, festival)
	d.Shachris = e.shachris(raw.Date, festival)
	d.Candles = candleLighting(raw)
	d.Ending = ending(raw)

	shema, err := timeutil.Parse(raw.Get(model.FieldLatestShema))
	if err != nil {
		return nil, fmt.Errorf("latest shema on %s: %w", raw.Date.Format("2006-01-02"), err)
	}
	d.Shema = timeutil.Format(shema)

	if d.IsFriday() {
		mincha, err := fridayMincha(d.Candles)
		if err != nil {
			return nil, fmt.Errorf("friday mincha on %s: %w", raw.Date.Format("2006-01-02"), err)
		}
		d.Mincha = mincha
	}

	maariv, err := e.maariv(d, hd)
	if err != nil {
		return nil, fmt.Errorf("maariv on %s: %w", raw.Date.Format("2006-01-02"), err)
	}
	d.Maariv = maariv

	return d, nil
}

// reason picks the day's note: Yom Tov, then chol hamoed, then civil holiday,
// then fast day.
func (e *Engine) reason(date time.Time, hd hebrew.Date, festival string) string {
	if festival != "" {
		return festival
	}
	if chol := e.hebrew.CholHamoed(hd); chol != "" {
		return chol
	}
	if holiday := e.civil.Holiday(date); holiday != "" {
		return holiday
	}
	return e.hebrew.FastDay(hd, date.Weekday())
}

// shachris resolves the morning slot. Later rules override earlier ones, so
// a Shabbos that is also a civil holiday still davens at the Shabbos time.
func (e *Engine) shachris(date time.Time, festival string) string {
	s := e.weekdayShachris
	if date.Weekday() == time.Sunday || e.civil.Holiday(date) != "" {
		s = e.sundayShachris
	}
	if date.Weekday() == time.Saturday || majorHolidays[festival] {
		s = e.shabbosShachris
	}
	if festival == "Rosh Hashana" || festival == "Yom Kippur" {
		s = e.daysOfAweShachris
	}
	return s
}

// candleLighting resolves the candle-lighting column: the plain field, then
// the fast-day combined field, then the "after" variant for the second day of
// Yom Tov, which is prefixed so the report reads "after 8:13 PM".
func candleLighting(raw model.RawDay) string {
	if v := raw.Get(model.FieldCandleLighting); v != "" {
		return v
	}
	if v := raw.Get(model.FieldCandleLightingFast); v != "" {
		return v
	}
	if v := raw.Get(model.FieldCandleAfter); v != "" {
		return "after " + v
	}
	return ""
}

// ending returns the first populated end-of-day field in the fixed scan
// order.
func ending(raw model.RawDay) string {
	for _, field := range model.EndingFields {
		if v := raw.Get(field); v != "" {
			return v
		}
	}
	return ""
}

// fridayMincha is candle lighting plus ten minutes rounded to the nearest
// five, pulled back five when that rounds to more than eleven minutes after
// candle lighting. The result always lands seven to eleven minutes after
// candles.
func fridayMincha(candles string) (string, error) {
	candleTime, err := timeutil.Parse(candles)
	if err != nil {
		return "", err
	}
	mincha := timeutil.RoundNearest5(candleTime.Add(10 * time.Minute))
	if mincha.Sub(candleTime) > 11*time.Minute {
		mincha = mincha.Add(-5 * time.Minute)
	}
	return timeutil.Format(mincha), nil
}

// maariv resolves the evening slot. Yom Kippur outranks everything, then the
// Friday and Saturday forms, then the weekday default. The default becomes
// "after Mincha" whenever an afternoon mincha exists or will be filled in
// (any DST day).
func (e *Engine) maariv(d *model.Day, hd hebrew.Date) (string, error) {
	if hd.Month == hebrew.MonthTishrei {
		switch hd.Day {
		case 9:
			return model.AfterKolNidrei, nil
		case 10:
			return model.AfterNeilah, nil
		}
	}

	if d.IsFriday() {
		return model.AfterKabbalasShabbos, nil
	}

	if d.IsSaturday() && d.Ending != "" {
		end, err := timeutil.Parse(d.Ending)
		if err != nil {
			return "", err
		}
		return timeutil.Format(timeutil.RoundNearest5(end)), nil
	}

	if d.DST {
		return model.AfterMincha, nil
	}
	return e.defaultMaariv, nil
}

// FastOffset is how much earlier mincha starts on a fast day: the minor
// fasts move it up fifteen minutes, Tisha B'Av forty-five.
func FastOffset(fast string) time.Duration {
	switch fast {
	case "Tzom Gedalia", "10 of Teves", "Taanis Esther", "17 of Tamuz":
		return 15 * time.Minute
	case "9 of Av":
		return 45 * time.Minute
	}
	return 0
}

// YomKippurOverride replaces the published mincha on the two days the
// regular afternoon service does not happen: 3:00 PM before Kol Nidrei on
// erev Yom Kippur, and after the break on Yom Kippur itself. Other days pass
// through unchanged.
func (e *Engine) YomKippurOverride(d *model.Day) string {
	if d.HebMonth == hebrew.MonthTishrei {
		switch d.HebDay {
		case 9:
			return "3:00 PM"
		case 10:
			return model.AfterTheBreak
		}
	}
	return d.MinchaObserved
}

// EarlyFridayMincha handles long summer Fridays: from late Nissan through
// Elul, when the derived mincha would land after 7:30 PM, the shul davens
// early instead, at plag hamincha minus fifteen minutes rounded up to the
// next five-minute mark.
func (e *Engine) EarlyFridayMincha(d *model.Day) (string, error) {
	if !d.IsFriday() {
		return d.Mincha, nil
	}
	summer := (d.HebMonth == hebrew.MonthNisan && d.HebDay > 22) ||
		(d.HebMonth > hebrew.MonthNisan && d.HebMonth < hebrew.MonthTishrei)
	if !summer {
		return d.Mincha, nil
	}

	mincha, err := timeutil.Parse(d.Mincha)
	if err != nil {
		return "", err
	}
	if timeutil.MinutesOfDay(mincha) <= 19*60+30 {
		return d.Mincha, nil
	}

	plag, err := timeutil.Parse(d.Plag)
	if err != nil {
		return "", err
	}
	early := timeutil.RoundUpNext5(plag.Add(-15 * time.Minute))
	return timeutil.Format(early), nil
}
