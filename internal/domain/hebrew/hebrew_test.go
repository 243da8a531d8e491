package hebrew_test

import (
	"testing"
	"time"

	"github.com/Yossi/zmanim-scraper/internal/domain/hebrew"
	. "github.com/smartystreets/goconvey/convey"
)

func civ(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 3, 0, 0, 0, time.UTC)
}

func TestConvert(t *testing.T) {
	Convey("Given a Hebrew calendar", t, func() {
		cal := hebrew.NewCalendar()

		Convey("When converting the first day of Pesach 5784", func() {
			hd := cal.Convert(civ(2024, time.April, 23))
			So(hd.Year, ShouldEqual, 5784)
			So(hd.Month, ShouldEqual, hebrew.MonthNisan)
			So(hd.Day, ShouldEqual, 15)
		})

		Convey("When converting Rosh Hashana 5785", func() {
			hd := cal.Convert(civ(2024, time.October, 3))
			So(hd.Year, ShouldEqual, 5785)
			So(hd.Month, ShouldEqual, hebrew.MonthTishrei)
			So(hd.Day, ShouldEqual, 1)
		})
	})
}

func TestDisplay(t *testing.T) {
	Convey("Given Hebrew dates", t, func() {
		cal := hebrew.NewCalendar()

		Convey("Then the display form is day then month", func() {
			hd := cal.Convert(civ(2024, time.April, 23))
			So(cal.Display(hd), ShouldEqual, "15 Nissan")
		})

		Convey("Then Adar splits in leap years", func() {
			// 5784 is a leap year: Purim 2024 fell in Adar 2.
			So(cal.MonthName(hebrew.Date{Year: 5784, Month: hebrew.MonthAdar, Day: 1}), ShouldEqual, "Adar 1")
			So(cal.MonthName(hebrew.Date{Year: 5784, Month: hebrew.MonthAdar2, Day: 1}), ShouldEqual, "Adar 2")
			So(cal.MonthName(hebrew.Date{Year: 5785, Month: hebrew.MonthAdar, Day: 1}), ShouldEqual, "Adar")
		})
	})
}

func TestFestival(t *testing.T) {
	Convey("Given the festival table", t, func() {
		cal := hebrew.NewCalendar()

		Convey("Then Yom Tov days resolve to their names", func() {
			So(cal.Festival(cal.Convert(civ(2024, time.April, 23))), ShouldEqual, "Pesach")
			So(cal.Festival(cal.Convert(civ(2024, time.October, 3))), ShouldEqual, "Rosh Hashana")
			So(cal.Festival(cal.Convert(civ(2024, time.October, 12))), ShouldEqual, "Yom Kippur")
		})

		Convey("Then working days resolve to empty", func() {
			So(cal.Festival(cal.Convert(civ(2024, time.April, 25))), ShouldEqual, "")
		})

		Convey("Then chol hamoed has its own lookup", func() {
			So(cal.CholHamoed(cal.Convert(civ(2024, time.April, 25))), ShouldEqual, "Chol Hamoed Pesach")
			So(cal.CholHamoed(cal.Convert(civ(2024, time.October, 20))), ShouldEqual, "Chol Hamoed Succos")
			So(cal.CholHamoed(cal.Convert(civ(2024, time.April, 23))), ShouldEqual, "")
		})
	})
}

func TestFastDay(t *testing.T) {
	Convey("Given the fast-day rules", t, func() {
		cal := hebrew.NewCalendar()

		check := func(date time.Time) string {
			return cal.FastDay(cal.Convert(date), date.Weekday())
		}

		Convey("When 3 Tishrei falls on Shabbos the fast moves to Sunday", func() {
			// 5785: 3 Tishrei is Saturday October 5.
			So(check(civ(2024, time.October, 5)), ShouldEqual, "")
			So(check(civ(2024, time.October, 6)), ShouldEqual, "Tzom Gedalia")
		})

		Convey("When 10 Teves falls on a weekday it stays put", func() {
			// 10 Teves 5785 is Friday January 10, 2025.
			So(check(civ(2025, time.January, 10)), ShouldEqual, "10 of Teves")
		})

		Convey("When 13 Adar 2 falls on Shabbos Taanis Esther moves back to Thursday", func() {
			// 5784 is a leap year; 13 Adar 2 is Saturday March 23, 2024.
			So(check(civ(2024, time.March, 23)), ShouldEqual, "")
			So(check(civ(2024, time.March, 21)), ShouldEqual, "Taanis Esther")
		})

		Convey("When 13 Adar falls on a weekday in a plain year it stays put", func() {
			// 13 Adar 5785 is Thursday March 13, 2025.
			So(check(civ(2025, time.March, 13)), ShouldEqual, "Taanis Esther")
		})

		Convey("When 9 Av falls on a weekday it stays put", func() {
			// 9 Av 5784 is Tuesday August 13, 2024.
			So(check(civ(2024, time.August, 13)), ShouldEqual, "9 of Av")
		})
	})
}
