// Package model defines the raw and derived day records shared across the
// schedule pipeline.
package model

import (
	"strings"
	"time"
)

// Symbolic mincha/maariv values. These appear verbatim in the report where a
// service has no fixed clock time.
const (
	AfterMincha          = "after Mincha"
	AfterKabbalasShabbos = "after Kabbalas Shabbos"
	AfterKolNidrei       = "after Kol Nidrei"
	AfterNeilah          = "after Neilah"
	AfterTheBreak        = "after the break"
)

// weekdayNames is indexed by time.Weekday (Sunday = 0).
var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekdayName returns the three-letter report abbreviation for wd.
func WeekdayName(wd time.Weekday) string {
	return weekdayNames[wd]
}

// RawDay is one day's worth of raw zmanim as published by the feed: a
// localized civil date plus a mapping from normalized field name to display
// time string. Immutable once constructed.
type RawDay struct {
	Date  time.Time
	Times map[string]string
}

// Get returns the trimmed value of a raw field, or "" when absent.
func (r RawDay) Get(field string) string {
	return strings.TrimSpace(r.Times[field])
}

// Day is one fully derived schedule day. The rule engine fills every field
// from a single RawDay; the week stitcher may then revise MinchaObserved and
// Maariv while the day is inside the sliding window.
type Day struct {
	Date    time.Time
	Weekday string
	DST     bool

	HebYear  int
	HebMonth int
	HebDay   int
	HebDate  string // display form, e.g. "15 Nissan"

	Reason   string
	Shachris string
	Shema    string

	// Mincha is the initial Friday derivation (candle lighting + 10m,
	// rounded). It stays untouched after derivation so the next week's
	// Friday-to-Friday comparison sees the unadjusted value.
	Mincha string

	// MinchaObserved is the published value: set by the stitcher from
	// Mincha, the weekly fill-in, the early-Friday adjustment, or the
	// Yom Kippur override.
	MinchaObserved string

	Maariv  string
	Candles string
	Ending  string

	// Plag carries the raw plag-hamincha value forward for the
	// early-Friday adjustment, which runs after derivation.
	Plag string

	// Fast is the fast-day name, if any; the stitcher subtracts its
	// offset from filled-in mincha times.
	Fast string
}

// IsFriday reports whether the day is a Friday.
func (d *Day) IsFriday() bool { return d.Date.Weekday() == time.Friday }

// IsSaturday reports whether the day is a Saturday.
func (d *Day) IsSaturday() bool { return d.Date.Weekday() == time.Saturday }
