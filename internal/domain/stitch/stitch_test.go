package stitch_test

import (
	"context"
	"testing"
	"time"

	"github.com/Yossi/zmanim-scraper/internal/domain/civil"
	"github.com/Yossi/zmanim-scraper/internal/domain/hebrew"
	"github.com/Yossi/zmanim-scraper/internal/domain/model"
	"github.com/Yossi/zmanim-scraper/internal/domain/rules"
	"github.com/Yossi/zmanim-scraper/internal/domain/stitch"
	. "github.com/smartystreets/goconvey/convey"
)

type fixture struct {
	engine   *rules.Engine
	stitcher *stitch.Stitcher
	loc      *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatal(err)
	}
	civ := civil.NewCalendar()
	engine := rules.NewEngine(hebrew.NewCalendar(), civ)
	return &fixture{
		engine:   engine,
		stitcher: stitch.NewStitcher(engine, civ),
		loc:      loc,
	}
}

// ingest derives and ingests one day. Fridays need candles (and plag for the
// summer adjustment); every day needs a shema.
func (f *fixture) ingest(y int, m time.Month, d int, extra map[string]string) *model.Day {
	times := map[string]string{
		model.FieldLatestShema: "9:32 AM",
	}
	for k, v := range extra {
		times[k] = v
	}
	raw := model.RawDay{
		Date:  time.Date(y, m, d, 3, 0, 0, 0, f.loc),
		Times: times,
	}
	day, err := f.engine.Derive(raw)
	So(err, ShouldBeNil)
	So(f.stitcher.Ingest(context.Background(), day), ShouldBeNil)
	return day
}

func candles(v string) map[string]string {
	return map[string]string{model.FieldCandleLighting: v, model.FieldPlagHamincha: "7:00 PM"}
}

func TestWeeklyFillIn(t *testing.T) {
	Convey("Given the week around the March 2024 DST transition", t, func() {
		f := newFixture(t)

		f.ingest(2024, time.March, 8, candles("6:55 PM")) // Friday, standard time
		sat := f.ingest(2024, time.March, 9, nil)
		week := []*model.Day{
			f.ingest(2024, time.March, 10, nil), // Sunday, DST starts
			f.ingest(2024, time.March, 11, nil),
			f.ingest(2024, time.March, 12, nil),
			f.ingest(2024, time.March, 13, nil),
			f.ingest(2024, time.March, 14, nil),
		}
		friday := f.ingest(2024, time.March, 15, candles("7:30 PM"))

		Convey("Then the first Friday derives from its candles", func() {
			So(f.stitcher.Days()[0].Mincha, ShouldEqual, "7:05 PM")
		})

		Convey("Then the second Friday derives and publishes its own mincha", func() {
			So(friday.Mincha, ShouldEqual, "7:40 PM")
			So(friday.MinchaObserved, ShouldEqual, "7:40 PM")
		})

		Convey("Then Saturday gets fifteen minutes before Friday's candles", func() {
			So(sat.MinchaObserved, ShouldEqual, "6:40 PM")
		})

		Convey("Then the DST week fills in with the earlier Friday mincha", func() {
			// Last Friday on standard time shifts forward an hour for the
			// comparison: min(8:05, 7:40) = 7:40.
			for _, day := range week {
				So(day.MinchaObserved, ShouldEqual, "7:40 PM")
				So(day.Maariv, ShouldEqual, model.AfterMincha)
			}
		})
	})
}

func TestWinterWeekStaysEmpty(t *testing.T) {
	Convey("Given a standard-time January week", t, func() {
		f := newFixture(t)

		f.ingest(2024, time.January, 5, candles("4:45 PM")) // Friday
		f.ingest(2024, time.January, 6, nil)
		sunday := f.ingest(2024, time.January, 7, nil)
		weekdays := []*model.Day{
			f.ingest(2024, time.January, 8, nil),
			f.ingest(2024, time.January, 9, nil),
			f.ingest(2024, time.January, 10, nil),
			f.ingest(2024, time.January, 11, nil),
		}
		f.ingest(2024, time.January, 12, candles("4:52 PM"))

		Convey("Then Sunday still gets a filled-in mincha", func() {
			// min(4:55 + 1h, 5:00) = 5:00 PM.
			So(sunday.MinchaObserved, ShouldEqual, "5:00 PM")
			So(sunday.Maariv, ShouldEqual, model.AfterMincha)
		})

		Convey("Then Monday through Thursday keep no published mincha", func() {
			for _, day := range weekdays {
				So(day.MinchaObserved, ShouldEqual, "")
				So(day.Maariv, ShouldEqual, "8:00 PM")
			}
		})
	})
}

func TestCivilHolidayFillIn(t *testing.T) {
	Convey("Given the standard-time week containing MLK Day 2024", t, func() {
		f := newFixture(t)

		f.ingest(2024, time.January, 12, candles("4:52 PM")) // Friday
		f.ingest(2024, time.January, 13, nil)
		f.ingest(2024, time.January, 14, nil)
		mlk := f.ingest(2024, time.January, 15, nil) // Monday, MLK Day
		tue := f.ingest(2024, time.January, 16, nil)
		f.ingest(2024, time.January, 17, nil)
		f.ingest(2024, time.January, 18, nil)
		f.ingest(2024, time.January, 19, candles("5:00 PM"))

		Convey("Then the holiday Monday is filled in like a Sunday", func() {
			// min(5:00 + 1h, 5:10) = 5:10 PM.
			So(mlk.MinchaObserved, ShouldEqual, "5:10 PM")
			So(mlk.Maariv, ShouldEqual, model.AfterMincha)
		})

		Convey("Then the plain Tuesday stays empty", func() {
			So(tue.MinchaObserved, ShouldEqual, "")
		})
	})
}

func TestFastDayFillIn(t *testing.T) {
	Convey("Given the week of Tzom Gedalia 5785", t, func() {
		f := newFixture(t)

		f.ingest(2024, time.October, 4, candles("6:20 PM")) // Friday
		f.ingest(2024, time.October, 5, nil)
		fast := f.ingest(2024, time.October, 6, nil) // Sunday, postponed Tzom Gedalia
		mon := f.ingest(2024, time.October, 7, nil)
		f.ingest(2024, time.October, 8, nil)
		f.ingest(2024, time.October, 9, nil)
		f.ingest(2024, time.October, 10, nil)
		f.ingest(2024, time.October, 11, map[string]string{
			model.FieldCandleLightingFast: "6:11 PM",
			model.FieldPlagHamincha:       "6:00 PM",
		})

		Convey("Then the fast day starts mincha fifteen minutes early", func() {
			// Reference is min(6:30, 6:20) = 6:20 PM; the fast pulls it to 6:05.
			So(fast.Fast, ShouldEqual, "Tzom Gedalia")
			So(fast.MinchaObserved, ShouldEqual, "6:05 PM")
		})

		Convey("Then the other filled-in days keep the plain reference", func() {
			So(mon.MinchaObserved, ShouldEqual, "6:20 PM")
		})
	})
}

func TestYomKippurWeek(t *testing.T) {
	Convey("Given the week of Yom Kippur 5785", t, func() {
		f := newFixture(t)

		f.ingest(2024, time.October, 4, candles("6:20 PM"))
		f.ingest(2024, time.October, 5, nil)
		f.ingest(2024, time.October, 6, nil)
		f.ingest(2024, time.October, 7, nil)
		f.ingest(2024, time.October, 8, nil)
		f.ingest(2024, time.October, 9, nil)
		f.ingest(2024, time.October, 10, nil)
		erev := f.ingest(2024, time.October, 11, map[string]string{
			model.FieldCandleLightingFast: "6:11 PM",
			model.FieldPlagHamincha:       "6:00 PM",
		})
		kippur := f.ingest(2024, time.October, 12, map[string]string{
			model.FieldShabbatHolidayFast: "7:05 PM",
		})

		Convey("Then erev Yom Kippur publishes the early mincha", func() {
			So(erev.MinchaObserved, ShouldEqual, "3:00 PM")
			So(erev.Maariv, ShouldEqual, model.AfterKolNidrei)
		})

		Convey("Then Yom Kippur itself defers mincha past the break", func() {
			So(kippur.MinchaObserved, ShouldEqual, model.AfterTheBreak)
			So(kippur.Maariv, ShouldEqual, model.AfterNeilah)
		})
	})
}

func TestEarlyFridayAdjustment(t *testing.T) {
	Convey("Given a long June Friday", t, func() {
		f := newFixture(t)

		f.ingest(2024, time.June, 7, map[string]string{
			model.FieldCandleLighting: "8:07 PM",
			model.FieldPlagHamincha:   "7:00 PM",
		})
		f.ingest(2024, time.June, 8, nil)
		for d := 9; d <= 13; d++ {
			f.ingest(2024, time.June, d, nil)
		}
		friday := f.ingest(2024, time.June, 14, map[string]string{
			model.FieldCandleLighting: "8:10 PM",
			model.FieldPlagHamincha:   "7:05 PM",
		})

		Convey("Then the published mincha moves up to plag minus fifteen", func() {
			So(friday.Mincha, ShouldEqual, "8:20 PM")
			So(friday.MinchaObserved, ShouldEqual, "6:50 PM")
		})

		Convey("Then the week still fills in from the unadjusted values", func() {
			// min(8:15, 8:20) = 8:15 PM.
			days := f.stitcher.Days()
			monday := days[3]
			So(monday.MinchaObserved, ShouldEqual, "8:15 PM")
		})
	})
}
