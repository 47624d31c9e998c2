/*
dto.go - Request/response data structures for the REST API

PURPOSE:
  JSON shapes exchanged with clients, kept separate from the domain
  types so the wire format can evolve independently. Monetary values
  travel as strings to preserve decimal precision.
*/
package api

import (
	"time"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/compensation"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	EmploymentType string `json:"employment_type"`
	DailyRate      string `json:"daily_rate"`
}

type CreateEmployeeRequest struct {
	Name           string `json:"name"`
	EmploymentType string `json:"employment_type"`
	DailyRate      string `json:"daily_rate"`
}

func toEmployeeDTO(emp attendance.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:             string(emp.ID),
		Name:           emp.Name,
		EmploymentType: emp.EmploymentType,
		DailyRate:      emp.DailyRate.String(),
	}
}

// =============================================================================
// ATTENDANCE
// =============================================================================

type PunchRequest struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Day     int    `json:"day"`
	TimeIn  string `json:"time_in"`
	TimeOut string `json:"time_out"`
}

type AttendanceDTO struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Day        int    `json:"day"`
	TimeIn     string `json:"time_in"`
	TimeOut    string `json:"time_out"`
}

func toAttendanceDTO(rec attendance.Attendance) AttendanceDTO {
	return AttendanceDTO{
		EmployeeID: string(rec.EmployeeID),
		Year:       rec.Year,
		Month:      int(rec.Month),
		Day:        rec.Day,
		TimeIn:     rec.TimeIn,
		TimeOut:    rec.TimeOut,
	}
}

// =============================================================================
// COMPENSATION
// =============================================================================

type CompensationDTO struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Day        int    `json:"day"`
	DayType    string `json:"day_type"`
	Override   string `json:"override_state"`
	Absent     bool   `json:"absent"`
	Notes      string `json:"notes,omitempty"`

	LateMinutes               int    `json:"late_minutes"`
	UndertimeMinutes          int    `json:"undertime_minutes"`
	OvertimeMinutes           int    `json:"overtime_minutes"`
	LateDeductionMinutes      int    `json:"late_deduction_minutes"`
	UndertimeDeductionMinutes int    `json:"undertime_deduction_minutes"`
	OvertimeDeductionMinutes  int    `json:"overtime_deduction_minutes"`
	HoursWorked               string `json:"hours_worked"`

	Deductions             string `json:"deductions"`
	OvertimePay            string `json:"overtime_pay"`
	HolidayBonus           string `json:"holiday_bonus"`
	NightDifferentialHours int    `json:"night_differential_hours"`
	NightDifferentialPay   string `json:"night_differential_pay"`
	GrossPay               string `json:"gross_pay"`
	NetPay                 string `json:"net_pay"`
	BaseGrossPay           string `json:"base_gross_pay"`
}

func toCompensationDTO(rec compensation.Compensation) CompensationDTO {
	return CompensationDTO{
		EmployeeID:                string(rec.EmployeeID),
		Year:                      rec.Year,
		Month:                     int(rec.Month),
		Day:                       rec.Day,
		DayType:                   string(rec.DayType),
		Override:                  string(rec.Override),
		Absent:                    rec.Absent,
		Notes:                     rec.Notes,
		LateMinutes:               rec.LateMinutes,
		UndertimeMinutes:          rec.UndertimeMinutes,
		OvertimeMinutes:           rec.OvertimeMinutes,
		LateDeductionMinutes:      rec.LateDeductionMinutes,
		UndertimeDeductionMinutes: rec.UndertimeDeductionMinutes,
		OvertimeDeductionMinutes:  rec.OvertimeDeductionMinutes,
		HoursWorked:               rec.HoursWorked.String(),
		Deductions:                rec.Deductions.String(),
		OvertimePay:               rec.OvertimePay.String(),
		HolidayBonus:              rec.HolidayBonus.String(),
		NightDifferentialHours:    rec.NightDifferentialHours,
		NightDifferentialPay:      rec.NightDifferentialPay.String(),
		GrossPay:                  rec.GrossPay.String(),
		NetPay:                    rec.NetPay.String(),
		BaseGrossPay:              rec.BaseGrossPay.String(),
	}
}

type OverrideRequest struct {
	GrossPay string `json:"gross_pay"`
	NetPay   string `json:"net_pay"`
	Notes    string `json:"notes"`
}

type RecomputeRequest struct {
	Year  int  `json:"year"`
	Month int  `json:"month"`
	Force bool `json:"force,omitempty"`
}

type RecomputeResponse struct {
	Computed int      `json:"computed"`
	Skipped  int      `json:"skipped"`
	Excluded int      `json:"excluded"`
	Failures []string `json:"failures,omitempty"`
}

// =============================================================================
// HOLIDAYS
// =============================================================================

type HolidayDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	StartDate  string `json:"start_date"` // "YYYY-MM-DD"
	EndDate    string `json:"end_date"`
	Type       string `json:"type"` // Regular | Special
	Multiplier string `json:"multiplier,omitempty"`
}

func toHolidayDTO(h attendance.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:         h.ID,
		Name:       h.Name,
		StartDate:  h.StartDate.Key(),
		EndDate:    h.EndDate.Key(),
		Type:       string(h.Type),
		Multiplier: h.Multiplier.String(),
	}
}

// =============================================================================
// ERRORS
// =============================================================================

type ErrorResponse struct {
	Error string `json:"error"`
}

func monthOf(v int) (time.Month, bool) {
	if v < 1 || v > 12 {
		return 0, false
	}
	return time.Month(v), true
}
