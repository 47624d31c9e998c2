/*
settings.go - Configurable pay rules

PURPOSE:
  AttendanceSettings is the single knob panel for the monetary side of
  the pipeline: grace periods, per-minute deduction rates, the overtime
  premium, holiday multipliers, and the night-differential window.
  Settings are loaded once per month batch and passed down; no
  calculator fetches them itself.

NIGHT WINDOW:
  The night-differential window is expressed as clock hours and wraps
  midnight: an hour H is a night hour iff H >= NightStartHour or
  H < NightEndHour. The default window is 22:00-06:00.
*/
package attendance

import "github.com/shopspring/decimal"

// AttendanceSettings holds every configurable pay rule.
type AttendanceSettings struct {
	// Grace periods: minutes of lateness/undertime tolerated before any
	// deduction applies.
	LateGraceMinutes      int
	UndertimeGraceMinutes int

	// Deduction rates in currency per minute, applied to the
	// after-grace portion only.
	LateDeductionPerMinute      decimal.Decimal
	UndertimeDeductionPerMinute decimal.Decimal

	// OvertimeThresholdMinutes is the minimum raw excess before any
	// overtime is credited. Overtime is paid in whole-hour increments,
	// so the effective threshold is never below 60.
	OvertimeThresholdMinutes int

	// OvertimeHourlyMultiplier scales the hourly rate for overtime
	// hours (default 1.25).
	OvertimeHourlyMultiplier decimal.Decimal

	// Default multipliers applied when creating holidays of each type.
	// Each Holiday record carries its own effective multiplier.
	RegularHolidayMultiplier decimal.Decimal
	SpecialHolidayMultiplier decimal.Decimal

	// Night differential: multiplier on the hourly rate for hours
	// worked inside [NightStartHour, 24) union [0, NightEndHour).
	NightDifferentialMultiplier decimal.Decimal
	NightStartHour              int
	NightEndHour                int

	// CountEarlyTimeInAsOvertime credits minutes worked before the
	// scheduled in-time toward overtime.
	CountEarlyTimeInAsOvertime bool
}

// DefaultSettings returns the stock rule set used to seed a fresh
// installation.
func DefaultSettings() AttendanceSettings {
	return AttendanceSettings{
		LateGraceMinutes:            5,
		UndertimeGraceMinutes:       5,
		LateDeductionPerMinute:      decimal.NewFromFloat(1.0),
		UndertimeDeductionPerMinute: decimal.NewFromFloat(1.0),
		OvertimeThresholdMinutes:    60,
		OvertimeHourlyMultiplier:    decimal.NewFromFloat(1.25),
		RegularHolidayMultiplier:    decimal.NewFromFloat(2.0),
		SpecialHolidayMultiplier:    decimal.NewFromFloat(1.3),
		NightDifferentialMultiplier: decimal.NewFromFloat(0.1),
		NightStartHour:              22,
		NightEndHour:                6,
		CountEarlyTimeInAsOvertime:  false,
	}
}

// NightWindow returns the effective window, substituting the stock
// 22:00-06:00 window when both bounds are zero.
func (s AttendanceSettings) NightWindow() (startHour, endHour int) {
	if s.NightStartHour == 0 && s.NightEndHour == 0 {
		return 22, 6
	}
	return s.NightStartHour, s.NightEndHour
}

// IsNightHour reports whether a clock hour falls inside the night
// window. The window wraps midnight.
func (s AttendanceSettings) IsNightHour(hour int) bool {
	start, end := s.NightWindow()
	return hour >= start || hour < end
}

// HolidayDefaultMultiplier returns the configured default multiplier
// for a holiday type.
func (s AttendanceSettings) HolidayDefaultMultiplier(t HolidayType) decimal.Decimal {
	if t == HolidaySpecial {
		return s.SpecialHolidayMultiplier
	}
	return s.RegularHolidayMultiplier
}
