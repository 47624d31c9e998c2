/*
errors.go - Centralized error types for the attendance domain

PURPOSE:
  All error types in one place for consistency and discoverability.
  The compensation package and the batch processor classify days by
  these errors to decide between skipping a day, excluding it, or
  falling back to the presence-based payment path.

ERROR CATEGORIES:
  1. Schedule errors - A required schedule is missing or malformed
  2. Record errors   - An attendance record is out of range
  3. Parse errors    - A punch string is not a clock time

USAGE:
  Callers branch on sentinel errors:

    if errors.Is(err, attendance.ErrIncompleteScheduleTimes) {
        // fall back to the presence-based path
    }
*/
package attendance

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingSchedule is returned when a time-tracking employment
	// type defines no schedule shape at all, so no day can be resolved.
	ErrMissingSchedule = errors.New("no resolvable schedule")

	// ErrInvalidDate is returned when an attendance record's day falls
	// outside its month. Such records are excluded from computation.
	ErrInvalidDate = errors.New("day outside month range")

	// ErrIncompleteScheduleTimes is returned when a resolved schedule
	// carries only one of its time fields.
	ErrIncompleteScheduleTimes = errors.New("schedule missing time field")

	// ErrInvalidClockTime is returned when a punch string is neither a
	// clock time nor the presence sentinel.
	ErrInvalidClockTime = errors.New("invalid clock time")

	// ErrUnknownEmploymentType is returned when an employee references
	// an employment type that does not exist.
	ErrUnknownEmploymentType = errors.New("unknown employment type")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MissingScheduleError identifies the employment type and date that
// could not be scheduled.
type MissingScheduleError struct {
	EmploymentType string
	Date           Date
}

func (e *MissingScheduleError) Error() string {
	return fmt.Sprintf("no resolvable schedule for employment type %q on %s", e.EmploymentType, e.Date)
}

func (e *MissingScheduleError) Unwrap() error { return ErrMissingSchedule }

// InvalidDateError identifies an attendance record outside its month.
type InvalidDateError struct {
	EmployeeID EmployeeID
	Year       int
	Month      time.Month
	Day        int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("attendance day %d outside %04d-%02d for employee %s", e.Day, e.Year, e.Month, e.EmployeeID)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// IncompleteScheduleTimesError identifies a schedule lacking one of its
// time fields or carrying an unparseable one.
type IncompleteScheduleTimesError struct {
	Date    Date
	TimeIn  string
	TimeOut string
}

func (e *IncompleteScheduleTimesError) Error() string {
	return fmt.Sprintf("incomplete schedule times on %s: in=%q out=%q", e.Date, e.TimeIn, e.TimeOut)
}

func (e *IncompleteScheduleTimesError) Unwrap() error { return ErrIncompleteScheduleTimes }

// InvalidClockTimeError reports the offending punch value.
type InvalidClockTimeError struct {
	Value string
}

func (e *InvalidClockTimeError) Error() string {
	return fmt.Sprintf("invalid clock time %q", e.Value)
}

func (e *InvalidClockTimeError) Unwrap() error { return ErrInvalidClockTime }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// FallsBackToSimplified reports whether the error means the day should
// be paid on presence alone rather than dropped.
func FallsBackToSimplified(err error) bool {
	return errors.Is(err, ErrIncompleteScheduleTimes) ||
		errors.Is(err, ErrInvalidClockTime)
}

// ExcludesDay reports whether the error means the day must not produce
// a compensation record at all.
func ExcludesDay(err error) bool {
	return errors.Is(err, ErrInvalidDate)
}
