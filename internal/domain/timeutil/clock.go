// Package timeutil parses, formats, and rounds the display clock times used
// throughout the schedule. All values are times of day; parsed results are
// anchored to a fixed reference date so they can be compared and shifted with
// plain time arithmetic.
package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnparseable marks a raw time field that is empty or not recognizable.
// A rule that needs the value treats this as fatal for the day: a wrong
// prayer time is worse than a visible failure.
var ErrUnparseable = errors.New("unparseable time")

// layouts covers the clock formats the feed has been observed to publish.
var layouts = [...]string{
	"3:04 PM",
	"3:04PM",
	"3:04 pm",
	"15:04",
}

// Parse converts a loosely formatted clock string ("7:45 PM") into a
// time-of-day anchored to the reference date.
func Parse(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrUnparseable)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return anchor(t.Hour(), t.Minute()), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, text)
}

// Format renders a time-of-day as "H:MM AM/PM" with no leading zero on the
// hour.
func Format(t time.Time) string {
	return t.Format("3:04 PM")
}

// RoundNearest5 rounds down to the preceding 5-minute mark, then advances by
// 5 minutes when the offset from that mark is at least 2m30s. Idempotent;
// the result is never more than 5 minutes away from the input.
func RoundNearest5(t time.Time) time.Time {
	rem := time.Duration(t.Minute()%5)*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
	down := t.Add(-rem)
	if rem >= 2*time.Minute+30*time.Second {
		return down.Add(5 * time.Minute)
	}
	return down
}

// RoundUpNext5 advances to the next 5-minute mark, staying put when the
// minute is already aligned. Seconds are dropped first.
func RoundUpNext5(t time.Time) time.Time {
	t = t.Add(-time.Duration(t.Second())*time.Second - time.Duration(t.Nanosecond()))
	m := t.Minute() % 5
	if m == 0 {
		return t
	}
	return t.Add(time.Duration(5-m) * time.Minute)
}

// MinutesOfDay returns the time-of-day as minutes since midnight, for
// clock-only comparisons between days.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func anchor(hour, minute int) time.Time {
	return time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC)
}
