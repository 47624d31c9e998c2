/*
Package sqlite provides a SQLite-backed implementation of the
collaborator contracts.

PURPOSE:
  Implements every persistence seam the engine consumes - attendance
  records, compensation records, settings, employment types, holidays,
  and the employee directory. In production the same patterns apply to
  PostgreSQL; only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  compensation.AttendanceStore
  compensation.CompensationStore
  compensation.SettingsProvider
  compensation.HolidayProvider
  compensation.EmployeeDirectory

KEY TABLES:
  employees:          Identity and daily rate
  employment_types:   Schedule shapes (weekly/month schedules as JSON)
  attendance:         Punches, keyed (employee, year, month, day)
  compensation:       Derived records, same key, upserted on recompute
  settings:           Single-row pay rule configuration (JSON)
  holidays:           Date ranges with pay multipliers

DECIMALS:
  Monetary values are stored as TEXT and parsed with shopspring/decimal
  to avoid float drift in the database round-trip.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers
  don't block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/attendance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - compensation/store.go: Interface definitions
  - compensation/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/compensation"
)

// Store implements all collaborator interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		employment_type TEXT NOT NULL,
		daily_rate TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employment_types (
		type TEXT PRIMARY KEY,
		hours_of_work INTEGER NOT NULL,
		requires_time_tracking INTEGER NOT NULL,
		weekly_schedules_json TEXT,
		month_schedules_json TEXT
	);

	CREATE TABLE IF NOT EXISTS attendance (
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		day INTEGER NOT NULL,
		time_in TEXT NOT NULL DEFAULT '',
		time_out TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (employee_id, year, month, day)
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_month
		ON attendance(employee_id, year, month);

	CREATE TABLE IF NOT EXISTS compensation (
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		day INTEGER NOT NULL,
		day_type TEXT NOT NULL,
		override_state TEXT NOT NULL,
		absent INTEGER NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		late_minutes INTEGER NOT NULL,
		undertime_minutes INTEGER NOT NULL,
		overtime_minutes INTEGER NOT NULL,
		late_deduction_minutes INTEGER NOT NULL,
		undertime_deduction_minutes INTEGER NOT NULL,
		overtime_deduction_minutes INTEGER NOT NULL,
		hours_worked TEXT NOT NULL,
		deductions TEXT NOT NULL,
		overtime_pay TEXT NOT NULL,
		holiday_bonus TEXT NOT NULL,
		night_diff_hours INTEGER NOT NULL,
		night_diff_pay TEXT NOT NULL,
		gross_pay TEXT NOT NULL,
		net_pay TEXT NOT NULL,
		base_gross_pay TEXT NOT NULL,
		PRIMARY KEY (employee_id, year, month, day)
	);

	CREATE INDEX IF NOT EXISTS idx_compensation_month
		ON compensation(employee_id, year, month);

	-- Single-row configuration
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		settings_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		holiday_type TEXT NOT NULL,
		multiplier TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_range
		ON holidays(start_date, end_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ATTENDANCE STORE
// =============================================================================

func (s *Store) LoadAttendanceForMonth(ctx context.Context, id attendance.EmployeeID, year int, month time.Month) ([]attendance.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, year, month, day, time_in, time_out
		FROM attendance
		WHERE employee_id = ? AND year = ? AND month = ?
		ORDER BY day`,
		string(id), year, int(month))
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	defer rows.Close()

	var out []attendance.Attendance
	for rows.Next() {
		var rec attendance.Attendance
		var empID string
		var monthInt int
		if err := rows.Scan(&empID, &rec.Year, &monthInt, &rec.Day, &rec.TimeIn, &rec.TimeOut); err != nil {
			return nil, err
		}
		rec.EmployeeID = attendance.EmployeeID(empID)
		rec.Month = time.Month(monthInt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) SaveAttendance(ctx context.Context, records []attendance.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, rec := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO attendance (employee_id, year, month, day, time_in, time_out)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (employee_id, year, month, day)
			DO UPDATE SET time_in = excluded.time_in, time_out = excluded.time_out`,
			string(rec.EmployeeID), rec.Year, int(rec.Month), rec.Day, rec.TimeIn, rec.TimeOut)
		if err != nil {
			return fmt.Errorf("save attendance: %w", err)
		}
	}
	return tx.Commit()
}

func (s *Store) DeleteAttendance(ctx context.Context, id attendance.EmployeeID, year int, month time.Month, day int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM attendance
		WHERE employee_id = ? AND year = ? AND month = ? AND day = ?`,
		string(id), year, int(month), day)
	return err
}

// =============================================================================
// COMPENSATION STORE
// =============================================================================

func (s *Store) LoadCompensationForMonth(ctx context.Context, id attendance.EmployeeID, year int, month time.Month) ([]compensation.Compensation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, year, month, day, day_type, override_state, absent, notes,
		       late_minutes, undertime_minutes, overtime_minutes,
		       late_deduction_minutes, undertime_deduction_minutes, overtime_deduction_minutes,
		       hours_worked, deductions, overtime_pay, holiday_bonus,
		       night_diff_hours, night_diff_pay, gross_pay, net_pay, base_gross_pay
		FROM compensation
		WHERE employee_id = ? AND year = ? AND month = ?
		ORDER BY day`,
		string(id), year, int(month))
	if err != nil {
		return nil, fmt.Errorf("load compensation: %w", err)
	}
	defer rows.Close()

	var out []compensation.Compensation
	for rows.Next() {
		rec, err := scanCompensation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) SaveOrUpdate(ctx context.Context, records []compensation.Compensation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, rec := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO compensation (
				employee_id, year, month, day, day_type, override_state, absent, notes,
				late_minutes, undertime_minutes, overtime_minutes,
				late_deduction_minutes, undertime_deduction_minutes, overtime_deduction_minutes,
				hours_worked, deductions, overtime_pay, holiday_bonus,
				night_diff_hours, night_diff_pay, gross_pay, net_pay, base_gross_pay
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (employee_id, year, month, day) DO UPDATE SET
				day_type = excluded.day_type,
				override_state = excluded.override_state,
				absent = excluded.absent,
				notes = excluded.notes,
				late_minutes = excluded.late_minutes,
				undertime_minutes = excluded.undertime_minutes,
				overtime_minutes = excluded.overtime_minutes,
				late_deduction_minutes = excluded.late_deduction_minutes,
				undertime_deduction_minutes = excluded.undertime_deduction_minutes,
				overtime_deduction_minutes = excluded.overtime_deduction_minutes,
				hours_worked = excluded.hours_worked,
				deductions = excluded.deductions,
				overtime_pay = excluded.overtime_pay,
				holiday_bonus = excluded.holiday_bonus,
				night_diff_hours = excluded.night_diff_hours,
				night_diff_pay = excluded.night_diff_pay,
				gross_pay = excluded.gross_pay,
				net_pay = excluded.net_pay,
				base_gross_pay = excluded.base_gross_pay`,
			string(rec.EmployeeID), rec.Year, int(rec.Month), rec.Day,
			string(rec.DayType), string(rec.Override), boolToInt(rec.Absent), rec.Notes,
			rec.LateMinutes, rec.UndertimeMinutes, rec.OvertimeMinutes,
			rec.LateDeductionMinutes, rec.UndertimeDeductionMinutes, rec.OvertimeDeductionMinutes,
			rec.HoursWorked.String(), rec.Deductions.String(), rec.OvertimePay.String(), rec.HolidayBonus.String(),
			rec.NightDifferentialHours, rec.NightDifferentialPay.String(),
			rec.GrossPay.String(), rec.NetPay.String(), rec.BaseGrossPay.String())
		if err != nil {
			return fmt.Errorf("save compensation: %w", err)
		}
	}
	return tx.Commit()
}

func scanCompensation(rows *sql.Rows) (compensation.Compensation, error) {
	var (
		rec                                                compensation.Compensation
		empID, dayType, override                           string
		monthInt, absent                                   int
		hoursWorked, deductions, overtimePay, holidayBonus string
		nightPay, grossPay, netPay, baseGrossPay           string
	)
	err := rows.Scan(&empID, &rec.Year, &monthInt, &rec.Day, &dayType, &override, &absent, &rec.Notes,
		&rec.LateMinutes, &rec.UndertimeMinutes, &rec.OvertimeMinutes,
		&rec.LateDeductionMinutes, &rec.UndertimeDeductionMinutes, &rec.OvertimeDeductionMinutes,
		&hoursWorked, &deductions, &overtimePay, &holidayBonus,
		&rec.NightDifferentialHours, &nightPay, &grossPay, &netPay, &baseGrossPay)
	if err != nil {
		return compensation.Compensation{}, err
	}

	rec.EmployeeID = attendance.EmployeeID(empID)
	rec.Month = time.Month(monthInt)
	rec.DayType = compensation.DayType(dayType)
	rec.Override = compensation.OverrideState(override)
	rec.Absent = absent != 0

	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&rec.HoursWorked, hoursWorked},
		{&rec.Deductions, deductions},
		{&rec.OvertimePay, overtimePay},
		{&rec.HolidayBonus, holidayBonus},
		{&rec.NightDifferentialPay, nightPay},
		{&rec.GrossPay, grossPay},
		{&rec.NetPay, netPay},
		{&rec.BaseGrossPay, baseGrossPay},
	} {
		d, err := decimal.NewFromString(f.src)
		if err != nil {
			return compensation.Compensation{}, fmt.Errorf("corrupt decimal %q: %w", f.src, err)
		}
		*f.dst = d
	}
	return rec, nil
}

// =============================================================================
// SETTINGS PROVIDER
// =============================================================================

func (s *Store) LoadAttendanceSettings(ctx context.Context) (attendance.AttendanceSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT settings_json FROM settings WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		// A fresh installation runs on stock rules until configured.
		return attendance.DefaultSettings(), nil
	}
	if err != nil {
		return attendance.AttendanceSettings{}, fmt.Errorf("load settings: %w", err)
	}

	var settings attendance.AttendanceSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return attendance.AttendanceSettings{}, fmt.Errorf("corrupt settings: %w", err)
	}
	return settings, nil
}

func (s *Store) SaveAttendanceSettings(ctx context.Context, settings attendance.AttendanceSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (id, settings_json) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET settings_json = excluded.settings_json`,
		string(raw))
	return err
}

func (s *Store) LoadEmploymentTypes(ctx context.Context) ([]attendance.EmploymentType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT type, hours_of_work, requires_time_tracking,
		       COALESCE(weekly_schedules_json, ''), COALESCE(month_schedules_json, '')
		FROM employment_types ORDER BY type`)
	if err != nil {
		return nil, fmt.Errorf("load employment types: %w", err)
	}
	defer rows.Close()

	var out []attendance.EmploymentType
	for rows.Next() {
		var (
			et                    attendance.EmploymentType
			tracking              int
			weeklyJSON, monthJSON string
		)
		if err := rows.Scan(&et.Type, &et.HoursOfWork, &tracking, &weeklyJSON, &monthJSON); err != nil {
			return nil, err
		}
		et.RequiresTimeTracking = tracking != 0
		if weeklyJSON != "" && weeklyJSON != "null" {
			if err := json.Unmarshal([]byte(weeklyJSON), &et.WeeklySchedules); err != nil {
				return nil, fmt.Errorf("corrupt weekly schedules for %q: %w", et.Type, err)
			}
		}
		if monthJSON != "" && monthJSON != "null" {
			if err := json.Unmarshal([]byte(monthJSON), &et.MonthSchedules); err != nil {
				return nil, fmt.Errorf("corrupt month schedules for %q: %w", et.Type, err)
			}
		}
		out = append(out, et)
	}
	return out, rows.Err()
}

func (s *Store) SaveEmploymentType(ctx context.Context, et attendance.EmploymentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	weeklyJSON, err := json.Marshal(et.WeeklySchedules)
	if err != nil {
		return err
	}
	monthJSON, err := json.Marshal(et.MonthSchedules)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO employment_types (type, hours_of_work, requires_time_tracking, weekly_schedules_json, month_schedules_json)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (type) DO UPDATE SET
			hours_of_work = excluded.hours_of_work,
			requires_time_tracking = excluded.requires_time_tracking,
			weekly_schedules_json = excluded.weekly_schedules_json,
			month_schedules_json = excluded.month_schedules_json`,
		et.Type, et.HoursOfWork, boolToInt(et.RequiresTimeTracking), string(weeklyJSON), string(monthJSON))
	return err
}

// =============================================================================
// HOLIDAY PROVIDER
// =============================================================================

func (s *Store) LoadHolidays(ctx context.Context, year int, month time.Month) ([]attendance.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	first := attendance.NewDate(year, month, 1).Key()
	last := attendance.NewDate(year, month, attendance.DaysInMonth(year, month)).Key()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, start_date, end_date, holiday_type, multiplier
		FROM holidays
		WHERE start_date <= ? AND end_date >= ?
		ORDER BY start_date`,
		last, first)
	if err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}
	defer rows.Close()

	var out []attendance.Holiday
	for rows.Next() {
		var (
			h                             attendance.Holiday
			start, end, hType, multiplier string
		)
		if err := rows.Scan(&h.ID, &h.Name, &start, &end, &hType, &multiplier); err != nil {
			return nil, err
		}
		if h.StartDate, err = parseDate(start); err != nil {
			return nil, err
		}
		if h.EndDate, err = parseDate(end); err != nil {
			return nil, err
		}
		h.Type = attendance.HolidayType(hType)
		if h.Multiplier, err = decimal.NewFromString(multiplier); err != nil {
			return nil, fmt.Errorf("corrupt multiplier %q: %w", multiplier, err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) SaveHoliday(ctx context.Context, h attendance.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO holidays (id, name, start_date, end_date, holiday_type, multiplier)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			holiday_type = excluded.holiday_type,
			multiplier = excluded.multiplier`,
		h.ID, h.Name, h.StartDate.Key(), h.EndDate.Key(), string(h.Type), h.Multiplier.String())
	return err
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	return err
}

// =============================================================================
// EMPLOYEE DIRECTORY
// =============================================================================

func (s *Store) GetEmployee(ctx context.Context, id attendance.EmployeeID) (attendance.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		emp         attendance.Employee
		empID, rate string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, employment_type, daily_rate FROM employees WHERE id = ?`,
		string(id)).Scan(&empID, &emp.Name, &emp.EmploymentType, &rate)
	if errors.Is(err, sql.ErrNoRows) {
		return attendance.Employee{}, compensation.ErrEmployeeNotFound
	}
	if err != nil {
		return attendance.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	emp.ID = attendance.EmployeeID(empID)
	if emp.DailyRate, err = decimal.NewFromString(rate); err != nil {
		return attendance.Employee{}, fmt.Errorf("corrupt daily rate %q: %w", rate, err)
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]attendance.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, employment_type, daily_rate FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []attendance.Employee
	for rows.Next() {
		var (
			emp         attendance.Employee
			empID, rate string
		)
		if err := rows.Scan(&empID, &emp.Name, &emp.EmploymentType, &rate); err != nil {
			return nil, err
		}
		emp.ID = attendance.EmployeeID(empID)
		if emp.DailyRate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("corrupt daily rate %q: %w", rate, err)
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) SaveEmployee(ctx context.Context, emp attendance.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, employment_type, daily_rate)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			employment_type = excluded.employment_type,
			daily_rate = excluded.daily_rate`,
		string(emp.ID), emp.Name, emp.EmploymentType, emp.DailyRate.String())
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseDate(s string) (attendance.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return attendance.Date{}, fmt.Errorf("corrupt date %q: %w", s, err)
	}
	return attendance.NewDate(t.Year(), t.Month(), t.Day()), nil
}
