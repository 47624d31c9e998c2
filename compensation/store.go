/*
store.go - Collaborator contracts consumed by the engine

PURPOSE:
  The engine computes; it never persists. These interfaces are the
  seams to the surrounding application. The engine defines no wire or
  file format - those are concerns of the implementations.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store (all four interfaces)
  - compensation/store: in-memory store for tests and dev
*/
package compensation

import (
	"context"
	"errors"
	"time"

	"github.com/warp/attendance-engine/attendance"
)

// ErrEmployeeNotFound is returned by directories when the employee
// does not exist.
var ErrEmployeeNotFound = errors.New("employee not found")

// AttendanceStore persists raw time-clock records.
type AttendanceStore interface {
	// LoadAttendanceForMonth returns the employee's punch records for
	// one month, in no guaranteed order.
	LoadAttendanceForMonth(ctx context.Context, employeeID attendance.EmployeeID, year int, month time.Month) ([]attendance.Attendance, error)

	// SaveAttendance upserts punch records keyed by employee and date.
	SaveAttendance(ctx context.Context, records []attendance.Attendance) error
}

// CompensationStore persists derived per-day pay records.
type CompensationStore interface {
	// LoadCompensationForMonth returns the employee's records for one
	// month, in no guaranteed order.
	LoadCompensationForMonth(ctx context.Context, employeeID attendance.EmployeeID, year int, month time.Month) ([]Compensation, error)

	// SaveOrUpdate upserts records keyed by (employee, year, month, day).
	SaveOrUpdate(ctx context.Context, records []Compensation) error
}

// SettingsProvider supplies the configured pay rules and employment
// type catalog.
type SettingsProvider interface {
	LoadAttendanceSettings(ctx context.Context) (attendance.AttendanceSettings, error)
	LoadEmploymentTypes(ctx context.Context) ([]attendance.EmploymentType, error)
}

// HolidayProvider supplies the holiday calendar.
type HolidayProvider interface {
	// LoadHolidays returns every holiday overlapping the given month.
	LoadHolidays(ctx context.Context, year int, month time.Month) ([]attendance.Holiday, error)
}

// EmployeeDirectory supplies employee identity and daily rates. The
// engine itself only reads it; the API writes through it.
type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, id attendance.EmployeeID) (attendance.Employee, error)
	ListEmployees(ctx context.Context) ([]attendance.Employee, error)
	SaveEmployee(ctx context.Context, emp attendance.Employee) error
}

// FindEmploymentType returns the catalog entry matching the key, or an
// UnknownEmploymentType error.
func FindEmploymentType(types []attendance.EmploymentType, key string) (*attendance.EmploymentType, error) {
	for i := range types {
		if types[i].Type == key {
			return &types[i], nil
		}
	}
	return nil, attendance.ErrUnknownEmploymentType
}
