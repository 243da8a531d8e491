// Package hebrew adapts the Hebrew calendar for the schedule rules: civil
// date conversion plus the fixed festival, chol-hamoed, and fast-day tables
// the one supported liturgical tradition uses. Conversion arithmetic comes
// from hebcal; the tables are deliberately small and explicit.
package hebrew

import (
	"fmt"
	"time"

	"github.com/hebcal/hdate"
)

// Hebrew month numbers (Nisan = 1, Tishrei = 7). In leap years the fasts of
// Adar fall in Adar 2.
const (
	MonthNisan   = 1
	MonthSivan   = 3
	MonthTammuz  = 4
	MonthAv      = 5
	MonthTishrei = 7
	MonthTeves   = 10
	MonthAdar    = 12
	MonthAdar2   = 13
)

// Date is a Hebrew calendar date.
type Date struct {
	Year  int
	Month int // Nisan = 1 .. Adar 2 = 13
	Day   int
}

// Calendar converts civil dates and answers the fixed festival/fast lookups.
type Calendar struct{}

// NewCalendar returns the process-wide Hebrew calendar adapter. It is
// stateless; construct once at startup and pass it in explicitly.
func NewCalendar() *Calendar {
	return &Calendar{}
}

// Convert maps a civil date to its Hebrew date.
func (c *Calendar) Convert(t time.Time) Date {
	hd := hdate.FromGregorian(t.Year(), t.Month(), t.Day())
	return Date{Year: hd.Year(), Month: int(hd.Month()), Day: hd.Day()}
}

// Display renders the report form, e.g. "15 Nissan".
func (c *Calendar) Display(d Date) string {
	return fmt.Sprintf("%d %s", d.Day, c.MonthName(d))
}

// MonthName returns the display name of the date's month, distinguishing
// Adar 1/Adar 2 in leap years.
func (c *Calendar) MonthName(d Date) string {
	if d.Month == MonthAdar && hdate.IsLeapYear(d.Year) {
		return "Adar 1"
	}
	return monthNames[d.Month]
}

// Festival returns the Yom Tov name for d, or "" on working days (chol
// hamoed and minor holidays are not festivals here).
func (c *Calendar) Festival(d Date) string {
	return festivals[monthDay{d.Month, d.Day}]
}

// CholHamoed returns the intermediate-festival label for d, or "".
func (c *Calendar) CholHamoed(d Date) string {
	return cholHamoed[monthDay{d.Month, d.Day}]
}

// FastDay returns the fast observed on d, or "". wd is the civil weekday of
// the same date: fasts that land on Shabbos are postponed to Sunday, except
// Taanis Esther which moves back to the preceding Thursday.
func (c *Calendar) FastDay(d Date, wd time.Weekday) string {
	adar := MonthAdar
	if hdate.IsLeapYear(d.Year) {
		adar = MonthAdar2
	}

	switch {
	case d.Month == MonthTishrei && d.Day == 3 && wd != time.Saturday:
		return "Tzom Gedalia"
	case d.Month == MonthTishrei && d.Day == 4 && wd == time.Sunday:
		return "Tzom Gedalia"
	case d.Month == MonthTeves && d.Day == 10:
		return "10 of Teves"
	case d.Month == adar && d.Day == 13 && wd != time.Saturday:
		return "Taanis Esther"
	case d.Month == adar && d.Day == 11 && wd == time.Thursday:
		return "Taanis Esther"
	case d.Month == MonthTammuz && d.Day == 17 && wd != time.Saturday:
		return "17 of Tamuz"
	case d.Month == MonthTammuz && d.Day == 18 && wd == time.Sunday:
		return "17 of Tamuz"
	case d.Month == MonthAv && d.Day == 9 && wd != time.Saturday:
		return "9 of Av"
	case d.Month == MonthAv && d.Day == 10 && wd == time.Sunday:
		return "9 of Av"
	}
	return ""
}
