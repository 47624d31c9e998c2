/*
Package attendance provides the schedule and time-clock domain model.

PURPOSE:
  This package contains the raw inputs of the compensation pipeline:
  employment types with their schedule shapes, daily time-clock records,
  holiday calendars, and the pay rules that govern how punches turn into
  money. It also owns the two lowest layers of the pipeline: resolving
  the effective schedule for a date (schedule.go) and normalizing punch
  strings into absolute instants (time.go).

KEY CONCEPTS IN THIS FILE (types.go):
  - EmploymentType: A named employee category with its schedule shape
  - DailySchedule: The expected in/out times for one calendar date
  - Attendance: One employee's punches for one day
  - Holiday: A dated pay-premium window (Regular or Special)
  - Employee: Identity plus daily rate

SCHEDULE RESOLUTION (two tiers):
  1. MonthSchedules: per-date overrides, keyed "YYYY-MM" then "YYYY-MM-DD"
  2. WeeklySchedules: a recurring Mon-Sun pattern (ISO weekday, Sunday=7)
  A month override always wins over the weekly pattern for the same date,
  even when the override marks the day off.

PRESENCE SENTINEL:
  Employment types that do not punch a clock (RequiresTimeTracking=false)
  record the literal string "present" in TimeIn/TimeOut. The sentinel
  counts as a time entry for presence purposes but never parses as a
  clock time.

SEE ALSO:
  - schedule.go: Effective-schedule resolution
  - time.go: Clock parsing and midnight-aware normalization
  - settings.go: Configurable pay rules
  - compensation package: The derived metrics built on these types
*/
package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarkerPresent is the sentinel punch value used by non-time-tracking
// employment types: the employee was there, but no clock time exists.
const MarkerPresent = "present"

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string

// =============================================================================
// EMPLOYEE
// =============================================================================

// Employee carries the identity and pay-rate data the engine needs.
// Everything else about an employee (contact details, documents, ...)
// belongs to the surrounding application.
type Employee struct {
	ID             EmployeeID
	Name           string
	EmploymentType string
	DailyRate      decimal.Decimal
}

// =============================================================================
// EMPLOYMENT TYPE - Schedule shape and tracking rules per category
// =============================================================================

// EmploymentType is a named category of employee ("regular", "sales", ...)
// carrying its own schedule shape and pay-tracking rules.
type EmploymentType struct {
	// Type is the unique key referenced by Employee.EmploymentType.
	Type string

	// HoursOfWork is the standard working day in hours. Zero means the
	// default of 8.
	HoursOfWork int

	// RequiresTimeTracking controls which payment path applies. When
	// false the employee is paid on presence alone and never resolves
	// to a schedule for calculation purposes.
	RequiresTimeTracking bool

	// WeeklySchedules is the recurring pattern, at most one entry per
	// ISO weekday (Monday=1 .. Sunday=7).
	WeeklySchedules []WeeklySchedule

	// MonthSchedules holds per-date overrides: "YYYY-MM" -> "YYYY-MM-DD"
	// -> schedule. An override always wins over the weekly pattern.
	MonthSchedules map[string]map[string]DailySchedule
}

// StandardHours returns the standard working day, defaulting to 8.
func (et *EmploymentType) StandardHours() int {
	if et == nil || et.HoursOfWork <= 0 {
		return 8
	}
	return et.HoursOfWork
}

// HasScheduleData reports whether the employment type defines any
// schedule shape at all (weekly pattern or month overrides).
func (et *EmploymentType) HasScheduleData() bool {
	if et == nil {
		return false
	}
	return len(et.WeeklySchedules) > 0 || len(et.MonthSchedules) > 0
}

// WeeklySchedule is one entry of the recurring pattern.
type WeeklySchedule struct {
	DayOfWeek int // ISO: Monday=1 .. Sunday=7
	TimeIn    string
	TimeOut   string
}

// =============================================================================
// DAILY SCHEDULE - The expected shape of a single day
// =============================================================================

// DailySchedule is the resolved expectation for one calendar date.
// Empty TimeIn/TimeOut or IsOff=true both mean "no work expected".
type DailySchedule struct {
	TimeIn  string
	TimeOut string
	IsOff   bool

	// CrossesMidnight, when set, is authoritative: the shift ends on the
	// following calendar day. When unset the normalizer falls back to
	// comparing hour components (out-hour < in-hour implies crossing),
	// which cannot express a 24h shift or an out-time in the same hour.
	CrossesMidnight bool
}

// IsOffDay reports whether the schedule expresses "no work expected".
func (ds DailySchedule) IsOffDay() bool {
	return ds.IsOff || ds.TimeIn == "" || ds.TimeOut == ""
}

// Incomplete reports whether exactly one of the time fields is missing.
// Such a schedule can neither be worked against nor treated as off
// outright; callers fall back to the presence-based path.
func (ds DailySchedule) Incomplete() bool {
	return (ds.TimeIn == "") != (ds.TimeOut == "")
}

// =============================================================================
// ATTENDANCE - One employee's punches for one day
// =============================================================================

// Attendance is the raw time-clock record, one per employee per day.
// TimeIn/TimeOut are "HH:mm" strings, the MarkerPresent sentinel, or
// empty when no punch exists.
type Attendance struct {
	EmployeeID EmployeeID
	Year       int
	Month      time.Month
	Day        int
	TimeIn     string
	TimeOut    string
}

// HasTimeEntries reports whether both punches are recorded. The
// MarkerPresent sentinel counts as an entry.
func (a Attendance) HasTimeEntries() bool {
	return a.TimeIn != "" && a.TimeOut != ""
}

// IsPresent reports whether the record marks the employee as present
// without clock times (non-time-tracking path).
func (a Attendance) IsPresent() bool {
	return a.TimeIn == MarkerPresent || a.TimeOut == MarkerPresent
}

// Date returns the calendar date of the record.
func (a Attendance) Date() Date {
	return Date{Year: a.Year, Month: a.Month, Day: a.Day}
}

// =============================================================================
// HOLIDAY - Dated pay-premium window
// =============================================================================

type HolidayType string

const (
	HolidayRegular HolidayType = "Regular"
	HolidaySpecial HolidayType = "Special"
)

// Holiday is a date range carrying a pay multiplier. A date is "on
// holiday" iff it falls within [StartDate, EndDate] inclusive; the end
// date extends through 23:59:59.
type Holiday struct {
	ID         string
	Name       string
	StartDate  Date
	EndDate    Date
	Type       HolidayType
	Multiplier decimal.Decimal
}

// Contains reports whether the date falls inside the holiday range.
func (h Holiday) Contains(d Date) bool {
	return !d.Before(h.StartDate) && !d.After(h.EndDate)
}

// FindHoliday returns the first holiday covering the date, or nil.
func FindHoliday(holidays []Holiday, d Date) *Holiday {
	for i := range holidays {
		if holidays[i].Contains(d) {
			return &holidays[i]
		}
	}
	return nil
}
