/*
nightdiff.go - Night-differential hour walk

PURPOSE:
  Counts how many of a shift's hours fall inside the configured night
  window and prices them. The walk starts at the actual punch-in and
  steps one hour at a time for the ceiling of the shift's duration in
  hours; each step counts when its clock hour lies in
  [NightStartHour, 24) union [0, NightEndHour).

MINIMUM THRESHOLD:
  Below one counted night hour the whole result is zeroed - there is no
  partial credit. At or above the threshold:

    pay = nightHours * hourlyRate * NightDifferentialMultiplier

  Night pay is computed purely from clock time: whether the shift
  matches the assigned schedule is irrelevant here.
*/
package compensation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/attendance"
)

// minNightHours is the minimum counted night hours before any credit.
const minNightHours = 1

// NightDifferential is the derived night-shift credit for one day.
type NightDifferential struct {
	Hours int
	Pay   decimal.Decimal
}

// ComputeNightDifferential walks the shift hour by hour and prices the
// night hours at hourlyRate scaled by the configured multiplier.
func ComputeNightDifferential(timeIn, timeOut time.Time, settings attendance.AttendanceSettings, hourlyRate decimal.Decimal) NightDifferential {
	minutes := timeOut.Sub(timeIn).Minutes()
	if minutes < 0 {
		minutes = -minutes
	}
	steps := int(minutes) / 60
	if int(minutes)%60 != 0 {
		steps++
	}

	nightHours := 0
	for i := 0; i < steps; i++ {
		hour := timeIn.Add(time.Duration(i) * time.Hour).Hour()
		if settings.IsNightHour(hour) {
			nightHours++
		}
	}

	if nightHours < minNightHours {
		return NightDifferential{Pay: decimal.Zero}
	}

	pay := decimal.NewFromInt(int64(nightHours)).
		Mul(hourlyRate).
		Mul(settings.NightDifferentialMultiplier)
	return NightDifferential{Hours: nightHours, Pay: pay}
}
