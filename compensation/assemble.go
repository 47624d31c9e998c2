/*
assemble.go - Merging computed metrics into the persisted record

PURPOSE:
  The assembler is where a freshly computed day meets whatever record
  already exists. It preserves the human-owned parts of the existing
  record (Notes and the Override state) and overlays everything the
  engine derived: day type, metrics, and the absence flag.

INVARIANTS:
  - The assembler never promotes a record to ManuallyOverridden itself;
    that only happens through direct human edit. Brand-new records
    start Computed, and only an existing ManuallyOverridden state
    survives the merge - a Synthesized record that gains real punches
    comes out Computed.
  - An absent day carries zero gross, net, and hours worked no matter
    what the calculators produced.
*/
package compensation

import (
	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/attendance"
)

// AssembleInput bundles the inputs of Assemble.
type AssembleInput struct {
	Attendance attendance.Attendance
	Employee   attendance.Employee
	Metrics    TimeMetrics
	Pay        PayMetrics
	Holiday    *attendance.Holiday
	Absent     bool

	// Existing is the record currently persisted for the day, if any.
	Existing *Compensation
}

// Assemble merges a computed day into its final Compensation record.
func Assemble(in AssembleInput) Compensation {
	c := Compensation{
		EmployeeID:  in.Attendance.EmployeeID,
		Year:        in.Attendance.Year,
		Month:       in.Attendance.Month,
		Day:         in.Attendance.Day,
		DayType:     DayTypeFor(in.Holiday),
		Override:    StateComputed,
		Absent:      in.Absent,
		TimeMetrics: in.Metrics,
		PayMetrics:  in.Pay,
	}

	if in.Existing != nil {
		c.Notes = in.Existing.Notes
		if in.Existing.IsManuallyOverridden() {
			c.Override = StateManuallyOverridden
		}
	}

	if in.Absent {
		c.GrossPay = decimal.Zero
		c.NetPay = decimal.Zero
		c.HoursWorked = decimal.Zero
	}

	return c
}
