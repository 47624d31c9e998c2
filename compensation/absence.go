/*
absence.go - Presence classification and the presence-based path

PURPOSE:
  One place decides whether a day was worked, absent, a holiday, or
  simply off - every caller goes through DayContext so no two code
  paths can drift apart on "was this employee absent?".

CLASSIFICATION:
  isWorkday     schedule resolves to an actual working day
  isHoliday     a holiday covers the date
  hasEntries    both punches recorded (the "present" sentinel counts)
  isAbsent      isWorkday && !isHoliday && !hasEntries

  An absent day always nets zero pay regardless of any stale metrics.

SIMPLIFIED (PRESENCE-BASED) PATH:
  Non-time-tracking employment types, and any day without complete
  punches, are paid on presence alone:

    grossPay = holiday?   dailyRate * multiplier
               present?   dailyRate
               otherwise  0

  All time-based fields stay zero. Records built this way are created
  Synthesized: they deserve a human look, but the engine keeps
  ownership - a punch arriving later recomputes them without force.
  Only a direct human edit produces ManuallyOverridden.
*/
package compensation

import (
	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/attendance"
)

// DayContext is the per-day input of presence classification.
type DayContext struct {
	// Schedule is the centrally resolved schedule for the date; nil or
	// an off day means no work was expected.
	Schedule *attendance.DailySchedule
	Holiday  *attendance.Holiday
	TimeIn   string
	TimeOut  string
}

// IsWorkday reports whether work was expected on the day.
func (dc DayContext) IsWorkday() bool {
	return dc.Schedule != nil && !dc.Schedule.IsOffDay()
}

// HasTimeEntries reports whether both punches are recorded. The
// presence sentinel counts as an entry.
func (dc DayContext) HasTimeEntries() bool {
	return dc.TimeIn != "" && dc.TimeOut != ""
}

// IsAbsent reports whether the day counts as an absence: a scheduled
// workday, not a holiday, and no punches at all.
func (dc DayContext) IsAbsent() bool {
	return dc.IsWorkday() && dc.Holiday == nil && !dc.HasTimeEntries()
}

// SimplifiedCompensation builds the presence-based record for a day.
// Used for non-time-tracking employment types and as the fallback when
// the detailed path cannot run (incomplete punches or schedule times).
func SimplifiedCompensation(att attendance.Attendance, emp attendance.Employee, holiday *attendance.Holiday, schedule *attendance.DailySchedule) Compensation {
	dc := DayContext{Schedule: schedule, Holiday: holiday, TimeIn: att.TimeIn, TimeOut: att.TimeOut}

	// Holidays are paid on the presence-based path whether or not the
	// employee showed up; ordinary days require presence.
	gross := decimal.Zero
	switch {
	case holiday != nil:
		gross = emp.DailyRate.Mul(holiday.Multiplier)
	case dc.HasTimeEntries():
		gross = emp.DailyRate
	}

	return Compensation{
		EmployeeID: att.EmployeeID,
		Year:       att.Year,
		Month:      att.Month,
		Day:        att.Day,
		DayType:    DayTypeFor(holiday),
		Override:   StateSynthesized,
		Absent:     dc.IsAbsent(),
		PayMetrics: PayMetrics{
			Deductions:           decimal.Zero,
			OvertimePay:          decimal.Zero,
			HolidayBonus:         decimal.Zero,
			NightDifferentialPay: decimal.Zero,
			GrossPay:             gross,
			NetPay:               gross,
			BaseGrossPay:         emp.DailyRate,
		},
		TimeMetrics: TimeMetrics{HoursWorked: decimal.Zero},
	}
}
