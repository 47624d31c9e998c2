/*
time.go - Calendar dates, clock times, and midnight-aware normalization

PURPOSE:
  The pipeline works with two different time shapes:
  - Date: a pure calendar day (no clock component)
  - ClockTime: a pure "HH:mm" wall-clock value (no date component)
  Normalization combines the two into absolute time.Time instants, which
  is where overnight shifts get corrected: a punch-out whose hour is
  numerically before the punch-in hour belongs to the next calendar day.

MIDNIGHT CROSSING:
  The hour-comparison rule (out-hour < in-hour => next day) is applied
  independently and identically to the actual punch pair and to the
  scheduled pair, so a 22:00-06:00 shift lines up with its 22:00-06:00
  schedule. It is a heuristic: it cannot express a 24h shift or an
  out-time in the same clock hour as the in-time. Schedules that need
  those shapes set DailySchedule.CrossesMidnight explicitly, which is
  authoritative when present.

ALL INSTANTS ARE UTC:
  The engine has no timezone concept; punches and schedules are local
  wall-clock strings and are anchored to UTC purely so instants can be
  subtracted. The surrounding application owns timezone handling.
*/
package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// DATE - A pure calendar day
// =============================================================================

type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// At returns the absolute instant of a clock time on this date.
func (d Date) At(c ClockTime) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, 0, 0, time.UTC)
}

func (d Date) Before(other Date) bool { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool  { return d.Time().After(other.Time()) }
func (d Date) Equal(other Date) bool  { return d == other }

// Key returns the canonical "YYYY-MM-DD" form used by month overrides.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// YearMonthKey returns the "YYYY-MM" form keying the override tier.
func (d Date) YearMonthKey() string {
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
}

// ISOWeekday maps the date's weekday to ISO numbering: Monday=1 through
// Sunday=7 (never 0).
func (d Date) ISOWeekday() int {
	wd := int(d.Time().Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (d Date) String() string { return d.Key() }

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// =============================================================================
// CLOCK TIME - A pure "HH:mm" wall-clock value
// =============================================================================

type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:mm" (also tolerating "H:mm"). The
// MarkerPresent sentinel and the empty string are not clock times and
// return ErrInvalidClockTime.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ClockTime{}, &InvalidClockTimeError{Value: s}
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return ClockTime{}, &InvalidClockTimeError{Value: s}
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return ClockTime{}, &InvalidClockTimeError{Value: s}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, &InvalidClockTimeError{Value: s}
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// =============================================================================
// NORMALIZATION - Punch strings to absolute instants
// =============================================================================

// Instants is a matched in/out pair of absolute times. TimeOut is
// always >= TimeIn once normalized.
type Instants struct {
	TimeIn  time.Time
	TimeOut time.Time
}

// Minutes returns the span of the pair in whole minutes.
func (i Instants) Minutes() int {
	m := int(i.TimeOut.Sub(i.TimeIn).Minutes())
	if m < 0 {
		return -m
	}
	return m
}

// NormalizedTimes is the output of Normalize: the actual punch pair and,
// when a working schedule exists for the day, the scheduled pair.
type NormalizedTimes struct {
	Actual    Instants
	Scheduled *Instants
}

// Normalize builds absolute instants for a day's punches and schedule.
//
// The actual pair is built from the punch strings; the scheduled pair
// from the resolved schedule, or nil when the schedule is nil or an off
// day. Midnight crossing is corrected identically on both pairs.
//
// Error cases:
//   - an actual punch that is not a clock time: InvalidClockTimeError
//   - a schedule missing exactly one time field: IncompleteScheduleTimesError
func Normalize(date Date, actualIn, actualOut string, schedule *DailySchedule) (NormalizedTimes, error) {
	inClock, err := ParseClockTime(actualIn)
	if err != nil {
		return NormalizedTimes{}, err
	}
	outClock, err := ParseClockTime(actualOut)
	if err != nil {
		return NormalizedTimes{}, err
	}

	out := NormalizedTimes{
		Actual: pairInstants(date, inClock, outClock, outClock.Hour < inClock.Hour),
	}

	if schedule == nil || schedule.IsOffDay() {
		if schedule != nil && schedule.Incomplete() {
			return NormalizedTimes{}, &IncompleteScheduleTimesError{
				Date:    date,
				TimeIn:  schedule.TimeIn,
				TimeOut: schedule.TimeOut,
			}
		}
		return out, nil
	}

	schedIn, err := ParseClockTime(schedule.TimeIn)
	if err != nil {
		return NormalizedTimes{}, &IncompleteScheduleTimesError{Date: date, TimeIn: schedule.TimeIn, TimeOut: schedule.TimeOut}
	}
	schedOut, err := ParseClockTime(schedule.TimeOut)
	if err != nil {
		return NormalizedTimes{}, &IncompleteScheduleTimesError{Date: date, TimeIn: schedule.TimeIn, TimeOut: schedule.TimeOut}
	}

	crosses := schedOut.Hour < schedIn.Hour
	if schedule.CrossesMidnight {
		crosses = true
	}
	scheduled := pairInstants(date, schedIn, schedOut, crosses)
	out.Scheduled = &scheduled
	return out, nil
}

func pairInstants(date Date, in, out ClockTime, crossesMidnight bool) Instants {
	inAt := date.At(in)
	outAt := date.At(out)
	if crossesMidnight {
		outAt = outAt.AddDate(0, 0, 1)
	}
	return Instants{TimeIn: inAt, TimeOut: outAt}
}
