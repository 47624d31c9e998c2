/*
timemetrics.go - Minute arithmetic from normalized instants

PURPOSE:
  Derives late, undertime, and overtime minutes plus hours worked from
  the normalized actual/scheduled instants. All instants are already
  midnight-corrected (time.go), so plain subtraction is safe here.

OVERTIME RULES:
  Overtime is only ever credited in whole-hour increments: the raw
  excess is floored to a multiple of 60, so a 59-minute over-stay earns
  nothing. Two candidate sources are compared and the larger wins:

    overtimeFromTotal:    minutes worked beyond the expected span -
                          the scheduled window when one exists, the
                          standard day otherwise
    overtimeFromSchedule: minutes outside the scheduled window
                          (late-out always; early-in only when
                          CountEarlyTimeInAsOvertime is set)

  Without a schedule only the total-based source applies, and lateness
  and undertime are zero by definition.

GRACE PERIODS:
  Deduction-eligible minutes subtract the configured grace period:
  being late by grace+k minutes deducts exactly k minutes.
*/
package compensation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/attendance"
)

// ComputeTimeMetrics derives the day's time metrics from normalized
// instants and the employment type's standard hours.
func ComputeTimeMetrics(times attendance.NormalizedTimes, settings attendance.AttendanceSettings, et *attendance.EmploymentType) TimeMetrics {
	totalMinutes := times.Actual.Minutes()
	standardMinutes := et.StandardHours() * 60

	tm := TimeMetrics{
		HoursWorked: decimal.NewFromInt(int64(totalMinutes)).Div(decimal.NewFromInt(60)),
	}

	if times.Scheduled == nil {
		tm.OvertimeMinutes = wholeHours(totalMinutes-standardMinutes, settings.OvertimeThresholdMinutes)
		tm.OvertimeDeductionMinutes = tm.OvertimeMinutes
		return tm
	}

	sched := *times.Scheduled
	actual := times.Actual

	tm.LateMinutes = positiveMinutes(actual.TimeIn.Sub(sched.TimeIn))
	tm.UndertimeMinutes = positiveMinutes(sched.TimeOut.Sub(actual.TimeOut))

	earlyMinutes := positiveMinutes(sched.TimeIn.Sub(actual.TimeIn))
	lateOutMinutes := positiveMinutes(actual.TimeOut.Sub(sched.TimeOut))

	overtimeFromSchedule := lateOutMinutes
	if settings.CountEarlyTimeInAsOvertime {
		overtimeFromSchedule += earlyMinutes
	}
	// With a schedule the expected span is the scheduled window itself;
	// a 9h window with a built-in break must not read as 60min excess
	// over an 8h standard day.
	overtimeFromTotal := totalMinutes - sched.Minutes()
	if overtimeFromTotal < 0 {
		overtimeFromTotal = 0
	}

	raw := overtimeFromTotal
	if overtimeFromSchedule > raw {
		raw = overtimeFromSchedule
	}
	tm.OvertimeMinutes = wholeHours(raw, settings.OvertimeThresholdMinutes)
	tm.OvertimeDeductionMinutes = tm.OvertimeMinutes

	tm.LateDeductionMinutes = afterGrace(tm.LateMinutes, settings.LateGraceMinutes)
	tm.UndertimeDeductionMinutes = afterGrace(tm.UndertimeMinutes, settings.UndertimeGraceMinutes)

	return tm
}

// wholeHours floors a raw excess to whole-hour minutes, never negative.
// The threshold is the minimum raw excess before any credit, effectively
// never below one hour.
func wholeHours(rawMinutes, thresholdMinutes int) int {
	if thresholdMinutes < 60 {
		thresholdMinutes = 60
	}
	if rawMinutes < thresholdMinutes {
		return 0
	}
	return (rawMinutes / 60) * 60
}

// afterGrace returns the deduction-eligible portion of a violation.
func afterGrace(minutes, grace int) int {
	if minutes <= grace {
		return 0
	}
	return minutes - grace
}

func positiveMinutes(d time.Duration) int {
	m := int(d.Minutes())
	if m < 0 {
		return 0
	}
	return m
}
