// Package store provides in-memory implementations of the collaborator
// contracts, for tests and development.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/compensation"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements AttendanceStore, CompensationStore,
// SettingsProvider, and HolidayProvider.
type Memory struct {
	mu              sync.RWMutex
	attendance      map[dayKey]attendance.Attendance
	compensation    map[dayKey]compensation.Compensation
	settings        attendance.AttendanceSettings
	employmentTypes []attendance.EmploymentType
	holidays        []attendance.Holiday
	employees       map[attendance.EmployeeID]attendance.Employee
}

type dayKey struct {
	EmployeeID attendance.EmployeeID
	Year       int
	Month      time.Month
	Day        int
}

func keyFor(id attendance.EmployeeID, year int, month time.Month, day int) dayKey {
	return dayKey{EmployeeID: id, Year: year, Month: month, Day: day}
}

func NewMemory() *Memory {
	return &Memory{
		attendance:   make(map[dayKey]attendance.Attendance),
		compensation: make(map[dayKey]compensation.Compensation),
		employees:    make(map[attendance.EmployeeID]attendance.Employee),
		settings:     attendance.DefaultSettings(),
	}
}

// =============================================================================
// ATTENDANCE STORE
// =============================================================================

func (m *Memory) LoadAttendanceForMonth(_ context.Context, id attendance.EmployeeID, year int, month time.Month) ([]attendance.Attendance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []attendance.Attendance
	for k, rec := range m.attendance {
		if k.EmployeeID == id && k.Year == year && k.Month == month {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (m *Memory) SaveAttendance(_ context.Context, records []attendance.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range records {
		m.attendance[keyFor(rec.EmployeeID, rec.Year, rec.Month, rec.Day)] = rec
	}
	return nil
}

func (m *Memory) DeleteAttendance(_ context.Context, id attendance.EmployeeID, year int, month time.Month, day int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.attendance, keyFor(id, year, month, day))
	return nil
}

// =============================================================================
// COMPENSATION STORE
// =============================================================================

func (m *Memory) LoadCompensationForMonth(_ context.Context, id attendance.EmployeeID, year int, month time.Month) ([]compensation.Compensation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []compensation.Compensation
	for k, rec := range m.compensation {
		if k.EmployeeID == id && k.Year == year && k.Month == month {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (m *Memory) SaveOrUpdate(_ context.Context, records []compensation.Compensation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range records {
		m.compensation[keyFor(rec.EmployeeID, rec.Year, rec.Month, rec.Day)] = rec
	}
	return nil
}

// =============================================================================
// SETTINGS PROVIDER
// =============================================================================

func (m *Memory) LoadAttendanceSettings(_ context.Context) (attendance.AttendanceSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings, nil
}

func (m *Memory) SaveAttendanceSettings(_ context.Context, s attendance.AttendanceSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	return nil
}

func (m *Memory) LoadEmploymentTypes(_ context.Context) ([]attendance.EmploymentType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]attendance.EmploymentType, len(m.employmentTypes))
	copy(out, m.employmentTypes)
	return out, nil
}

func (m *Memory) SaveEmploymentType(_ context.Context, et attendance.EmploymentType) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.employmentTypes {
		if m.employmentTypes[i].Type == et.Type {
			m.employmentTypes[i] = et
			return nil
		}
	}
	m.employmentTypes = append(m.employmentTypes, et)
	return nil
}

// =============================================================================
// HOLIDAY PROVIDER
// =============================================================================

func (m *Memory) LoadHolidays(_ context.Context, year int, month time.Month) ([]attendance.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	first := attendance.NewDate(year, month, 1)
	last := attendance.NewDate(year, month, attendance.DaysInMonth(year, month))

	var out []attendance.Holiday
	for _, h := range m.holidays {
		if !h.StartDate.After(last) && !h.EndDate.Before(first) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *Memory) SaveHoliday(_ context.Context, h attendance.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.holidays {
		if m.holidays[i].ID == h.ID {
			m.holidays[i] = h
			return nil
		}
	}
	m.holidays = append(m.holidays, h)
	return nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (m *Memory) SaveEmployee(_ context.Context, emp attendance.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[emp.ID] = emp
	return nil
}

func (m *Memory) GetEmployee(_ context.Context, id attendance.EmployeeID) (attendance.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emp, ok := m.employees[id]
	if !ok {
		return attendance.Employee{}, compensation.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]attendance.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]attendance.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
