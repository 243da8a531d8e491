package model_test

import (
	"testing"
	"time"

	"github.com/Yossi/zmanim-scraper/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeField(t *testing.T) {
	Convey("Given raw field names from the feed", t, func() {
		Convey("Then trailing spaces trim away", func() {
			So(model.NormalizeField("Latest Shema "), ShouldEqual, model.FieldLatestShema)
		})

		Convey("Then double-spaced variants fold onto the canonical form", func() {
			So(model.NormalizeField("Sunset (Shkiah)  | Earliest time to kindle Chanukah Menorah "),
				ShouldEqual, model.FieldSunsetChanukah)
			So(model.NormalizeField("Shabbat Ends  | Earliest time to kindle Chanukah Menorah"),
				ShouldEqual, model.FieldShabbatChanukah)
		})

		Convey("Then the dropped-separator glitch maps to the fast field", func() {
			So(model.NormalizeField("Sunset (Shkiah)Fast Begins"), ShouldEqual, model.FieldSunsetFast)
		})

		Convey("Then canonical names pass through", func() {
			So(model.NormalizeField(model.FieldCandleLighting), ShouldEqual, model.FieldCandleLighting)
		})
	})
}

func TestRawDayGet(t *testing.T) {
	Convey("Given a raw day", t, func() {
		raw := model.RawDay{Times: map[string]string{
			model.FieldLatestShema: " 9:32 AM ",
		}}

		Convey("Then values come back trimmed", func() {
			So(raw.Get(model.FieldLatestShema), ShouldEqual, "9:32 AM")
		})

		Convey("Then absent fields come back empty", func() {
			So(raw.Get(model.FieldCandleLighting), ShouldEqual, "")
		})
	})
}

func TestWeekdayName(t *testing.T) {
	Convey("Given the report weekday abbreviations", t, func() {
		So(model.WeekdayName(time.Sunday), ShouldEqual, "Sun")
		So(model.WeekdayName(time.Friday), ShouldEqual, "Fri")
		So(model.WeekdayName(time.Saturday), ShouldEqual, "Sat")
	})
}
