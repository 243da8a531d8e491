package civil_test

import (
	"testing"
	"time"

	"github.com/Yossi/zmanim-scraper/internal/domain/civil"
	. "github.com/smartystreets/goconvey/convey"
)

func on(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 3, 0, 0, 0, time.UTC)
}

func TestHoliday(t *testing.T) {
	Convey("Given the civil holiday calendar", t, func() {
		cal := civil.NewCalendar()

		Convey("Then the 2024 fixed holidays resolve", func() {
			So(cal.Holiday(on(2024, time.January, 1)), ShouldEqual, "New Year's Day")
			So(cal.Holiday(on(2024, time.July, 4)), ShouldEqual, "Independence Day")
			So(cal.Holiday(on(2024, time.December, 25)), ShouldEqual, "Nittel")
		})

		Convey("Then the 2024 floating holidays resolve", func() {
			So(cal.Holiday(on(2024, time.January, 15)), ShouldNotBeEmpty)  // MLK, third Monday
			So(cal.Holiday(on(2024, time.February, 19)), ShouldEqual, "Presidents' Day")
			So(cal.Holiday(on(2024, time.May, 27)), ShouldNotBeEmpty)      // Memorial Day
			So(cal.Holiday(on(2024, time.September, 2)), ShouldNotBeEmpty) // Labor Day
			So(cal.Holiday(on(2024, time.November, 28)), ShouldNotBeEmpty) // Thanksgiving
			So(cal.Holiday(on(2024, time.November, 29)), ShouldEqual, "Black Friday")
		})

		Convey("When New Year's Day falls on a Saturday", func() {
			// January 1, 2022 was a Saturday.
			So(cal.Holiday(on(2022, time.January, 3)), ShouldEqual, "New Year's Day")
		})

		Convey("When Independence Day falls on a Saturday", func() {
			// July 4, 2026 is a Saturday.
			So(cal.Holiday(on(2026, time.July, 6)), ShouldEqual, "Independence Day")
		})

		Convey("Then holidays outside the set resolve to empty", func() {
			So(cal.Holiday(on(2024, time.October, 14)), ShouldEqual, "")  // Columbus Day
			So(cal.Holiday(on(2024, time.November, 11)), ShouldEqual, "") // Veterans Day
			So(cal.Holiday(on(2024, time.June, 19)), ShouldEqual, "")     // Juneteenth
		})

		Convey("Then ordinary days resolve to empty", func() {
			So(cal.Holiday(on(2024, time.March, 12)), ShouldEqual, "")
		})
	})
}
