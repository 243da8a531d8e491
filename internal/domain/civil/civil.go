// Package civil provides the civil-holiday calendar the schedule observes:
// the federal holidays the shul closes early for, plus Black Friday and
// Nittel, with Saturday/Sunday occurrences pushed to the following Monday.
package civil

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// nextMonday moves weekend occurrences to the following Monday.
var nextMonday = []cal.AltDay{
	{Day: time.Saturday, Offset: 2},
	{Day: time.Sunday, Offset: 1},
}

// Calendar answers "is this civil date a holiday, and which one".
type Calendar struct {
	cal *cal.BusinessCalendar
}

// NewCalendar builds the fixed holiday set. Construct once at startup and
// pass it in explicitly.
func NewCalendar() *Calendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(
		&cal.Holiday{
			Name:     "New Year's Day",
			Month:    time.January,
			Day:      1,
			Observed: nextMonday,
			Func:     cal.CalcDayOfMonth,
		},
		us.MlkDay,
		&cal.Holiday{
			Name:    "Presidents' Day",
			Month:   time.February,
			Weekday: time.Monday,
			Offset:  3,
			Func:    cal.CalcWeekdayOffset,
		},
		us.MemorialDay,
		&cal.Holiday{
			Name:     "Independence Day",
			Month:    time.July,
			Day:      4,
			Observed: nextMonday,
			Func:     cal.CalcDayOfMonth,
		},
		us.LaborDay,
		us.ThanksgivingDay,
		&cal.Holiday{
			Name:    "Black Friday",
			Month:   time.November,
			Weekday: time.Thursday,
			Offset:  4,
			Func:    blackFriday,
		},
		&cal.Holiday{
			Name:  "Nittel",
			Month: time.December,
			Day:   25,
			Func:  cal.CalcDayOfMonth,
		},
	)
	return &Calendar{cal: c}
}

// blackFriday lands on the day after the fourth Thursday of November.
func blackFriday(h *cal.Holiday, year int) time.Time {
	return cal.CalcWeekdayOffset(h, year).AddDate(0, 0, 1)
}

// Holiday returns the holiday name when t falls on an actual or observed
// occurrence, or "" when it does not.
func (c *Calendar) Holiday(t time.Time) string {
	actual, observed, h := c.cal.IsHoliday(t)
	if (actual || observed) && h != nil {
		return h.Name
	}
	return ""
}
