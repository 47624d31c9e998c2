/*
Package compensation derives per-day pay records from attendance data.

PURPOSE:
  This package is the calculation core: it turns a day's punches, the
  resolved schedule, the holiday calendar, and the configured pay rules
  into one Compensation record. The pipeline is a chain of pure
  functions:

    ResolveSchedule -> Normalize -> ComputeTimeMetrics
      (+ ComputeNightDifferential) -> ComputePayMetrics
      -> classify absence -> Assemble

  and the Processor (processor.go) runs it over a whole month, one day
  at a time, persisting through the collaborator stores (store.go).

KEY CONCEPTS IN THIS FILE (types.go):
  - TimeMetrics: late/undertime/overtime minutes and hours worked
  - PayMetrics: deductions, premiums, gross and net pay
  - Compensation: the persisted per-day record
  - OverrideState: Computed / Synthesized / ManuallyOverridden
    ownership tag

OVERRIDE SEMANTICS:
  Once a record is ManuallyOverridden a human owns its monetary fields.
  Recomputation must not silently clobber them; the Processor skips
  overridden records unless explicitly forced. Records synthesized by
  the presence-based path (no clock arithmetic behind them) carry the
  Synthesized state instead: they are flagged for human review, but the
  engine still owns them - a later punch recomputes them without force.

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for every monetary value
  2. Purity: every calculator is a pure function of explicit inputs
  3. One schedule truth: all consumers use attendance.ResolveSchedule

SEE ALSO:
  - timemetrics.go: Minute arithmetic from normalized instants
  - nightdiff.go:   Night-window hour walk
  - paymetrics.go:  Money derivation
  - assemble.go:    Merging into the persisted record
  - processor.go:   Month batch orchestration
*/
package compensation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/attendance"
)

// =============================================================================
// DAY TYPE
// =============================================================================

type DayType string

const (
	DayRegular DayType = "Regular"
	DayHoliday DayType = "Holiday"
	DaySpecial DayType = "Special"
)

// DayTypeFor maps an optional holiday to the record's day type.
func DayTypeFor(h *attendance.Holiday) DayType {
	switch {
	case h == nil:
		return DayRegular
	case h.Type == attendance.HolidaySpecial:
		return DaySpecial
	default:
		return DayHoliday
	}
}

// =============================================================================
// OVERRIDE STATE - Who owns the monetary fields
// =============================================================================

type OverrideState string

const (
	// StateComputed: the engine owns the record and may recompute it
	// freely whenever the underlying attendance changes.
	StateComputed OverrideState = "computed"

	// StateSynthesized: the engine made the record up from presence
	// alone, with no clock arithmetic behind it. It is flagged for
	// human review but remains engine-owned: a recompute replaces it
	// without force.
	StateSynthesized OverrideState = "synthesized"

	// StateManuallyOverridden: a human owns the monetary fields; only
	// an explicit forced recompute may replace them.
	StateManuallyOverridden OverrideState = "manual"
)

// =============================================================================
// TIME METRICS - Derived minute arithmetic, not persisted on its own
// =============================================================================

type TimeMetrics struct {
	LateMinutes      int
	UndertimeMinutes int
	OvertimeMinutes  int

	// Deduction-eligible portions after the configured grace periods.
	LateDeductionMinutes      int
	UndertimeDeductionMinutes int

	// OvertimeDeductionMinutes mirrors OvertimeMinutes: overtime is
	// already floored to whole hours, so no further grace applies.
	OvertimeDeductionMinutes int

	HoursWorked decimal.Decimal
}

// =============================================================================
// PAY METRICS - Derived money, not persisted on its own
// =============================================================================

type PayMetrics struct {
	Deductions             decimal.Decimal
	OvertimePay            decimal.Decimal
	HolidayBonus           decimal.Decimal
	NightDifferentialHours int
	NightDifferentialPay   decimal.Decimal
	GrossPay               decimal.Decimal
	NetPay                 decimal.Decimal

	// BaseGrossPay is the plain daily rate before premiums and
	// deductions, kept for display and audit.
	BaseGrossPay decimal.Decimal
}

// =============================================================================
// COMPENSATION - The persisted per-day record
// =============================================================================

// Compensation is keyed by (EmployeeID, Year, Month, Day) and carries
// every derived metric plus classification flags.
type Compensation struct {
	EmployeeID attendance.EmployeeID
	Year       int
	Month      time.Month
	Day        int

	DayType  DayType
	Override OverrideState
	Absent   bool
	Notes    string

	TimeMetrics
	PayMetrics
}

// Date returns the calendar date of the record.
func (c Compensation) Date() attendance.Date {
	return attendance.Date{Year: c.Year, Month: c.Month, Day: c.Day}
}

// IsManuallyOverridden reports whether a human owns the record.
func (c Compensation) IsManuallyOverridden() bool {
	return c.Override == StateManuallyOverridden
}

// IsSynthesized reports whether the record came from the presence-based
// path rather than clock arithmetic.
func (c Compensation) IsSynthesized() bool {
	return c.Override == StateSynthesized
}
