/*
processor.go - Month batch orchestration

PURPOSE:
  Runs the full pipeline over one employee-month: resolve schedule,
  normalize punches, derive metrics, price them, classify absence, and
  assemble the persisted record - one day fully computed and persisted
  before the next begins.

BATCH SHAPE:
  Settings, the employment type catalog, and the month's holidays are
  loaded ONCE per batch and passed down; no per-day collaborator
  fetches. Every per-day computation is a pure function of its inputs,
  so days could be parallelized if the stores allowed it; sequential
  execution keeps the merge-by-day logic trivial.

  Unpunched days that have not occurred yet are left alone: no record
  is synthesized for the future, so a sweep over the current month
  never pre-populates days that punches will later fill in.

PER-DAY FAILURE POLICY (the batch never aborts):
  - record day outside the month: excluded, never persisted
  - time-tracking type with no schedule data at all: the day is logged
    and skipped - attendance stays saved, no record is produced
  - incomplete schedule times or unparseable punches: fall back to the
    presence-based path
  - save failure: terminal for that day only; other days' computed
    state is unaffected

OVERRIDE GUARD:
  Recomputing a ManuallyOverridden record is the single guarded
  transition: it only happens when the caller passes force=true.
  Synthesized records are engine-owned and carry no guard.
*/
package compensation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/warp/attendance-engine/attendance"
)

// Processor wires the pipeline to its collaborator stores.
type Processor struct {
	Attendance   AttendanceStore
	Compensation CompensationStore
	Settings     SettingsProvider
	Holidays     HolidayProvider
	Logger       *slog.Logger

	// Now supplies the current time; it bounds how far into a month
	// unpunched days are materialized. Defaults to time.Now.
	Now func() time.Time
}

// NewProcessor builds a Processor. A nil logger disables batch logging.
func NewProcessor(att AttendanceStore, comp CompensationStore, settings SettingsProvider, holidays HolidayProvider, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Processor{
		Attendance:   att,
		Compensation: comp,
		Settings:     settings,
		Holidays:     holidays,
		Logger:       logger,
		Now:          time.Now,
	}
}

// MonthResult summarizes a batch run.
type MonthResult struct {
	Computed int
	Skipped  int
	Excluded int
	Failures []DayFailure
}

// DayFailure records a single day's terminal error.
type DayFailure struct {
	Day int
	Err error
}

// monthInputs is the per-batch context loaded once up front.
type monthInputs struct {
	settings       attendance.AttendanceSettings
	employmentType *attendance.EmploymentType
	holidays       []attendance.Holiday
	existing       map[int]Compensation
}

// ProcessMonth recomputes one employee's compensation for a month.
// Manually overridden records are preserved unless force is set.
func (p *Processor) ProcessMonth(ctx context.Context, emp attendance.Employee, year int, month time.Month, force bool) (MonthResult, error) {
	inputs, err := p.loadMonth(ctx, emp, year, month)
	if err != nil {
		return MonthResult{}, err
	}

	records, err := p.Attendance.LoadAttendanceForMonth(ctx, emp.ID, year, month)
	if err != nil {
		return MonthResult{}, fmt.Errorf("load attendance: %w", err)
	}

	var result MonthResult
	days := attendance.DaysInMonth(year, month)

	// Index punch records by day, excluding out-of-range entries.
	byDay := make(map[int]attendance.Attendance, len(records))
	for _, rec := range records {
		if rec.Day < 1 || rec.Day > days {
			result.Excluded++
			p.Logger.Warn("attendance day outside month, excluded",
				"employee", rec.EmployeeID, "year", rec.Year, "month", int(rec.Month), "day", rec.Day)
			continue
		}
		byDay[rec.Day] = rec
	}

	today := p.today()
	for day := 1; day <= days; day++ {
		att, ok := byDay[day]
		if !ok {
			// Days that have not occurred yet get no synthesized
			// record; punches will arrive for them later.
			if attendance.NewDate(year, month, day).After(today) {
				continue
			}
			// No punches: a scheduled workday still yields a record
			// so the absence shows up.
			att = attendance.Attendance{EmployeeID: emp.ID, Year: year, Month: month, Day: day}
		}

		if existing, ok := inputs.existing[day]; ok && existing.IsManuallyOverridden() && !force {
			result.Skipped++
			continue
		}

		record, err := p.computeDay(att, emp, inputs, force)
		if err != nil {
			result.Skipped++
			p.Logger.Warn("day skipped", "employee", emp.ID, "day", day, "error", err)
			continue
		}

		if err := p.Compensation.SaveOrUpdate(ctx, []Compensation{*record}); err != nil {
			result.Failures = append(result.Failures, DayFailure{Day: day, Err: err})
			p.Logger.Error("day save failed", "employee", emp.ID, "day", day, "error", err)
			continue
		}
		result.Computed++
	}

	return result, nil
}

// RecomputeDay recomputes a single day, typically after a punch edit.
// A manually overridden record is preserved unless force is set.
func (p *Processor) RecomputeDay(ctx context.Context, emp attendance.Employee, att attendance.Attendance, force bool) (*Compensation, error) {
	if att.Day < 1 || att.Day > attendance.DaysInMonth(att.Year, att.Month) {
		return nil, &attendance.InvalidDateError{EmployeeID: att.EmployeeID, Year: att.Year, Month: att.Month, Day: att.Day}
	}

	inputs, err := p.loadMonth(ctx, emp, att.Year, att.Month)
	if err != nil {
		return nil, err
	}

	if existing, ok := inputs.existing[att.Day]; ok && existing.IsManuallyOverridden() && !force {
		return &existing, nil
	}

	record, err := p.computeDay(att, emp, inputs, force)
	if err != nil || record == nil {
		return nil, err
	}
	if err := p.Compensation.SaveOrUpdate(ctx, []Compensation{*record}); err != nil {
		return nil, fmt.Errorf("save compensation: %w", err)
	}
	return record, nil
}

func (p *Processor) loadMonth(ctx context.Context, emp attendance.Employee, year int, month time.Month) (monthInputs, error) {
	settings, err := p.Settings.LoadAttendanceSettings(ctx)
	if err != nil {
		return monthInputs{}, fmt.Errorf("load settings: %w", err)
	}
	types, err := p.Settings.LoadEmploymentTypes(ctx)
	if err != nil {
		return monthInputs{}, fmt.Errorf("load employment types: %w", err)
	}
	et, err := FindEmploymentType(types, emp.EmploymentType)
	if err != nil {
		return monthInputs{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}
	holidays, err := p.Holidays.LoadHolidays(ctx, year, month)
	if err != nil {
		return monthInputs{}, fmt.Errorf("load holidays: %w", err)
	}

	existing := make(map[int]Compensation)
	current, err := p.Compensation.LoadCompensationForMonth(ctx, emp.ID, year, month)
	if err != nil {
		return monthInputs{}, fmt.Errorf("load compensation: %w", err)
	}
	for _, c := range current {
		existing[c.Day] = c
	}

	return monthInputs{
		settings:       settings,
		employmentType: et,
		holidays:       holidays,
		existing:       existing,
	}, nil
}

// computeDay runs the pipeline for one day. A forced run returns the
// record to engine ownership: the existing override state is dropped
// while notes are kept.
func (p *Processor) computeDay(att attendance.Attendance, emp attendance.Employee, in monthInputs, force bool) (*Compensation, error) {
	date := att.Date()
	holiday := attendance.FindHoliday(in.holidays, date)
	schedule := attendance.ResolveSchedule(in.employmentType, date)

	existing := existingFor(in.existing, att.Day)
	if force && existing != nil {
		cleared := *existing
		cleared.Override = ""
		existing = &cleared
	}

	// Presence-based path: non-time-tracking types and days without
	// complete punches.
	if !in.employmentType.RequiresTimeTracking || !att.HasTimeEntries() || att.IsPresent() {
		record := SimplifiedCompensation(att, emp, holiday, schedule)
		return withExisting(record, existing), nil
	}

	// A time-tracking type with no schedule shape at all cannot run the
	// detailed pipeline for any day.
	if !in.employmentType.HasScheduleData() {
		return nil, &attendance.MissingScheduleError{EmploymentType: in.employmentType.Type, Date: date}
	}

	times, err := attendance.Normalize(date, att.TimeIn, att.TimeOut, schedule)
	if err != nil {
		if attendance.FallsBackToSimplified(err) {
			record := SimplifiedCompensation(att, emp, holiday, schedule)
			return withExisting(record, existing), nil
		}
		return nil, err
	}

	metrics := ComputeTimeMetrics(times, in.settings, in.employmentType)
	pay := ComputePayMetrics(PayInput{
		Metrics:        metrics,
		Settings:       in.settings,
		DailyRate:      emp.DailyRate,
		Holiday:        holiday,
		ActualTimeIn:   times.Actual.TimeIn,
		ActualTimeOut:  times.Actual.TimeOut,
		EmploymentType: in.employmentType,
	})

	dc := DayContext{Schedule: schedule, Holiday: holiday, TimeIn: att.TimeIn, TimeOut: att.TimeOut}
	record := Assemble(AssembleInput{
		Attendance: att,
		Employee:   emp,
		Metrics:    metrics,
		Pay:        pay,
		Holiday:    holiday,
		Absent:     dc.IsAbsent(),
		Existing:   existing,
	})
	return &record, nil
}

func (p *Processor) today() attendance.Date {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	t := now()
	return attendance.NewDate(t.Year(), t.Month(), t.Day())
}

func existingFor(m map[int]Compensation, day int) *Compensation {
	if c, ok := m[day]; ok {
		return &c
	}
	return nil
}

// withExisting carries Notes (and a human override) from the existing
// record onto a presence-based one.
func withExisting(record Compensation, existing *Compensation) *Compensation {
	if existing != nil {
		record.Notes = existing.Notes
		if existing.IsManuallyOverridden() {
			record.Override = StateManuallyOverridden
		}
	}
	return &record
}
