/*
paymetrics.go - Money derivation from time metrics

PURPOSE:
  Turns a day's TimeMetrics into currency. Rates derive from the daily
  rate and the employment type's standard day:

    hourlyRate         = dailyRate / standardHours
    overtimeHourlyRate = hourlyRate * OvertimeHourlyMultiplier

HOLIDAY PAY (one formula, applied uniformly):
  Holiday pay totals dailyRate * multiplier. On this detailed path it is
  expressed as the additive premium dailyRate * (multiplier - 1) on top
  of the base day, which is the same total. A multiplier below 1
  therefore reduces total pay (the premium goes negative) - reduced-pay
  holidays behave identically on both payment paths.

COMPOSITION:
  grossPay = dailyRate + overtimePay + nightDifferentialPay + holidayBonus
  netPay   = grossPay - (lateDeduction + undertimeDeduction)
*/
package compensation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/attendance"
)

// PayInput bundles the inputs of ComputePayMetrics.
type PayInput struct {
	Metrics        TimeMetrics
	Settings       attendance.AttendanceSettings
	DailyRate      decimal.Decimal
	Holiday        *attendance.Holiday
	ActualTimeIn   time.Time
	ActualTimeOut  time.Time
	EmploymentType *attendance.EmploymentType
}

// ComputePayMetrics prices a day's time metrics.
func ComputePayMetrics(in PayInput) PayMetrics {
	standardHours := in.EmploymentType.StandardHours()
	hourlyRate := in.DailyRate.Div(decimal.NewFromInt(int64(standardHours)))
	overtimeHourlyRate := hourlyRate.Mul(in.Settings.OvertimeHourlyMultiplier)

	lateDeduction := decimal.NewFromInt(int64(in.Metrics.LateDeductionMinutes)).
		Mul(in.Settings.LateDeductionPerMinute)
	undertimeDeduction := decimal.NewFromInt(int64(in.Metrics.UndertimeDeductionMinutes)).
		Mul(in.Settings.UndertimeDeductionPerMinute)

	overtimePay := decimal.NewFromInt(int64(in.Metrics.OvertimeMinutes)).
		Div(decimal.NewFromInt(60)).
		Mul(overtimeHourlyRate)

	night := ComputeNightDifferential(in.ActualTimeIn, in.ActualTimeOut, in.Settings, hourlyRate)

	holidayBonus := decimal.Zero
	if in.Holiday != nil {
		holidayBonus = in.DailyRate.Mul(in.Holiday.Multiplier.Sub(decimal.NewFromInt(1)))
	}

	gross := in.DailyRate.Add(overtimePay).Add(night.Pay).Add(holidayBonus)
	deductions := lateDeduction.Add(undertimeDeduction)

	return PayMetrics{
		Deductions:             deductions,
		OvertimePay:            overtimePay,
		HolidayBonus:           holidayBonus,
		NightDifferentialHours: night.Hours,
		NightDifferentialPay:   night.Pay,
		GrossPay:               gross,
		NetPay:                 gross.Sub(deductions),
		BaseGrossPay:           in.DailyRate,
	}
}
