package compensation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/compensation"
	"github.com/warp/attendance-engine/compensation/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

const (
	testYear  = 2026
	testMonth = time.March // 31 days; March 1 is a Sunday
)

func newTestProcessor(t *testing.T) (*compensation.Processor, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	ctx := context.Background()

	weekly := make([]attendance.WeeklySchedule, 0, 7)
	for day := 1; day <= 6; day++ {
		weekly = append(weekly, attendance.WeeklySchedule{DayOfWeek: day, TimeIn: "08:00", TimeOut: "17:00"})
	}
	weekly = append(weekly, attendance.WeeklySchedule{DayOfWeek: 7})

	require.NoError(t, mem.SaveEmploymentType(ctx, attendance.EmploymentType{
		Type:                 "regular",
		HoursOfWork:          8,
		RequiresTimeTracking: true,
		WeeklySchedules:      weekly,
	}))
	require.NoError(t, mem.SaveEmploymentType(ctx, attendance.EmploymentType{
		Type:                 "sales",
		HoursOfWork:          8,
		RequiresTimeTracking: false,
	}))

	proc := compensation.NewProcessor(mem, mem, mem, mem, nil)
	// Pin the clock past March so every day of the test month has
	// already occurred.
	proc.Now = func() time.Time {
		return time.Date(2026, time.April, 15, 12, 0, 0, 0, time.UTC)
	}
	return proc, mem
}

func testEmployee(empType string) attendance.Employee {
	return attendance.Employee{
		ID:             "emp-1",
		Name:           "Ana",
		EmploymentType: empType,
		DailyRate:      decimalFromInt(800),
	}
}

func punch(day int, in, out string) attendance.Attendance {
	return attendance.Attendance{
		EmployeeID: "emp-1",
		Year:       testYear,
		Month:      testMonth,
		Day:        day,
		TimeIn:     in,
		TimeOut:    out,
	}
}

func recordFor(t *testing.T, mem *store.Memory, day int) compensation.Compensation {
	t.Helper()
	records, err := mem.LoadCompensationForMonth(context.Background(), "emp-1", testYear, testMonth)
	require.NoError(t, err)
	for _, rec := range records {
		if rec.Day == day {
			return rec
		}
	}
	t.Fatalf("no compensation record for day %d", day)
	return compensation.Compensation{}
}

// =============================================================================
// MONTH BATCH
// =============================================================================

func TestProcessMonth_FullMonthProducesRecordForEveryDay(t *testing.T) {
	// GIVEN: Two punched days in an otherwise empty March
	// WHEN: Processing the month
	// THEN: Every day of the month gets a record - punched days via the
	//       detailed path, the rest via the presence-based path

	proc, mem := newTestProcessor(t)
	ctx := context.Background()
	emp := testEmployee("regular")

	require.NoError(t, mem.SaveAttendance(ctx, []attendance.Attendance{
		punch(2, "08:00", "17:00"),
		punch(3, "08:10", "19:30"),
	}))

	result, err := proc.ProcessMonth(ctx, emp, testYear, testMonth, false)
	require.NoError(t, err)
	assert.Equal(t, 31, result.Computed)
	assert.Zero(t, result.Skipped)
	assert.Zero(t, result.Excluded)
	assert.Empty(t, result.Failures)

	records, err := mem.LoadCompensationForMonth(ctx, emp.ID, testYear, testMonth)
	require.NoError(t, err)
	assert.Len(t, records, 31)
}

func TestProcessMonth_PunchAfterSweepStillRecomputes(t *testing.T) {
	// GIVEN: A non-forced sweep that synthesized absent records for the
	//        unpunched days
	// WHEN: A punch arrives for one of those days
	// THEN: The day recomputes without force, and a second non-forced
	//       sweep recomputes the month instead of skipping it

	proc, mem := newTestProcessor(t)
	ctx := context.Background()
	emp := testEmployee("regular")

	_, err := proc.ProcessMonth(ctx, emp, testYear, testMonth, false)
	require.NoError(t, err)
	require.True(t, recordFor(t, mem, 2).Absent, "unpunched Monday starts absent")

	late := punch(2, "08:00", "17:00")
	require.NoError(t, mem.SaveAttendance(ctx, []attendance.Attendance{late}))
	rec, err := proc.RecomputeDay(ctx, emp, late, false)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, rec.Absent)
	assert.True(t, rec.GrossPay.Equal(decimalFromInt(800)), "gross = %s", rec.GrossPay)
	assert.Equal(t, compensation.StateComputed, rec.Override)

	result, err := proc.ProcessMonth(ctx, emp, testYear, testMonth, false)
	require.NoError(t, err)
	assert.Zero(t, result.Skipped, "synthesized records must not freeze the month")
	assert.Equal(t, 31, result.Computed)
}

func TestProcessMonth_FutureDaysNotMaterialized(t *testing.T) {
	// GIVEN: A sweep running mid-month
	// WHEN: Processing the current month
	// THEN: Only days up to today get records; a punched future day is
	//       still honored

	proc, mem := newTestProcessor(t)
	ctx := context.Background()
	emp := testEmployee("regular")
	proc.Now = func() time.Time {
		return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	}

	require.NoError(t, mem.SaveAttendance(ctx, []attendance.Attendance{
		punch(20, "08:00", "17:00"),
	}))

	result, err := proc.ProcessMonth(ctx, emp, testYear, testMonth, false)
	require.NoError(t, err)
	assert.Equal(t, 11, result.Computed, "days 1-10 plus the punched day 20")

	records, err := mem.LoadCompensationForMonth(ctx, emp.ID, testYear, testMonth)
	require.NoError(t, err)
	require.Len(t, records, 11)
	assert.Equal(t, 20, records[len(records)-1].Day)
	for _, rec := range records {
		if rec.Day > 10 {
			assert.Equal(t, 20, rec.Day, "no synthesized record past today")
		}
	}
}

func TestProcessMonth_DetailedDayMetrics(t *testing.T) {
	// The 08:10-19:30 day carries its computed metrics through the
	// whole pipeline into the persisted record.
	proc, mem := newTestProcessor(t)
	ctx := context.Background()
	emp := testEmployee("regular")

	require.NoError(t, mem.SaveAttendance(ctx, []attendance.Attendance{punch(3, "08:10", "19:30")}))
	_, err := proc.ProcessMonth(ctx, emp, testYear, testMonth, false)
	require.NoError(t, err)

	rec := recordFor(t, mem, 3)
	assert.Equal(t, compensation.StateComputed, rec.Override)
	assert.Equal(t, 10, rec.LateMinutes)
	assert.Equal(t, 5, rec.LateDeductionMinutes)
	assert.Equal(t, 120, rec.OvertimeMinutes)
	assert.True(t, rec.OvertimePay.Equal(decimalFromInt(250)), "overtime pay = %s", rec.OvertimePay)
	assert.False(t, rec.Absent)
}

func TestProcessMonth_AbsentScheduledDay(t *testing.T) {
	// GIVEN: No punches at all
	// WHEN: Processing the month
	// THEN: A scheduled Monday is absent with zero pay; the Sunday off
	//       day is unpaid but not absent

	proc, mem := newTestProcessor(t)
	ctx := context.Background()

	_, err := proc.ProcessMonth(ctx, testEmployee("regular"), testYear, testMonth, false)
	require.NoError(t, err)

	monday := recordFor(t, mem, 2)
	assert.True(t, monday.Absent)
	assert.True(t, monday.GrossPay.IsZero())
	assert.True(t, monday.NetPay.IsZero())

	sunday := recordFor(t, mem, 1)
	assert.False(t, sunday.Absent, "an off day is not an absence")
	assert.True(t, sunday.GrossPay.IsZero())
}

func TestProcessMonth_HolidayWithoutPunchesStillPays(t *testing.T) {
	// GIVEN: A regular holiday on a day with no punches
	// THEN: The presence-based path pays dailyRate * multiplier

	proc, mem := newTestProcessor(t)
	ctx := context.Background()

	require.NoError(t, mem.SaveHoliday(ctx, attendance.Holiday{
		ID:         "h1",
		Name:       "Anniversary",
		StartDate:  attendance.NewDate(testYear, testMonth, 4),
		EndDate:    attendance.NewDate(testYear, testMonth, 4),
		Type:       attendance.HolidayRegular,
		Multiplier: decimalFromInt(2),
	}))

	_, err := proc.ProcessMonth(ctx, testEmployee("regular"), testYear, testMonth, false)
	require.NoError(t, err)

	rec := recordFor(t, mem, 4)
	assert.Equal(t, compensation.DayHoliday, rec.DayType)
	assert.False(t, rec.Absent)
	assert.True(t, rec.GrossPay.Equal(decimalFromInt(1600)), "gross = %s", rec.GrossPay)
}

func TestProcessMonth_NonTrackingType(t *testing.T) {
	// GIVEN: A presence-based employee marked present on two days
	// THEN: Those days pay the daily rate; unmarked days pay nothing
	//       and are never absent (no schedule resolves)

	proc, mem := newTestProcessor(t)
	ctx := context.Background()
	emp := testEmployee("sales")

	require.NoError(t, mem.SaveAttendance(ctx, []attendance.Attendance{
		punch(2, attendance.MarkerPresent, attendance.MarkerPresent),
		punch(3, attendance.MarkerPresent, attendance.MarkerPresent),
	}))

	_, err := proc.ProcessMonth(ctx, emp, testYear, testMonth, false)
	require.NoError(t, err)

	present := recordFor(t, mem, 2)
	assert.True(t, present.GrossPay.Equal(decimalFromInt(800)))
	assert.False(t, present.Absent)

	unmarked := recordFor(t, mem, 5)
	assert.True(t, unmarked.GrossPay.IsZero())
	assert.False(t, unmarked.Absent)
}

// =============================================================================
// ERROR POLICY
// =============================================================================

func TestProcessMonth_OutOfRangeDayExcluded(t *testing.T) {
	// GIVEN: An attendance record for day 32
	// WHEN: Processing the month
	// THEN: The record is excluded and produces no compensation

	proc, mem := newTestProcessor(t)
	ctx := context.Background()

	require.NoError(t, mem.SaveAttendance(ctx, []attendance.Attendance{punch(32, "08:00", "17:00")}))

	result, err := proc.ProcessMonth(ctx, testEmployee("regular"), testYear, testMonth, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Excluded)

	records, err := mem.LoadCompensationForMonth(ctx, "emp-1", testYear, testMonth)
	require.NoError(t, err)
	for _, rec := range records {
		assert.LessOrEqual(t, rec.Day, 31)
	}
}

func TestProcessMonth_MissingScheduleSkipsPunchedDays(t *testing.T) {
	// GIVEN: A time-tracking type with no schedule data at all
	// WHEN: A punched day is processed
	// THEN: The day is skipped, not failed; the batch continues

	proc, mem := newTestProcessor(t)
	ctx := context.Background()

	require.NoError(t, mem.SaveEmploymentType(ctx, attendance.EmploymentType{
		Type:                 "regular",
		HoursOfWork:          8,
		RequiresTimeTracking: true,
	}))
	require.NoError(t, mem.SaveAttendance(ctx, []attendance.Attendance{punch(2, "08:00", "17:00")}))

	result, err := proc.ProcessMonth(ctx, testEmployee("regular"), testYear, testMonth, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 30, result.Computed)
}

func TestProcessMonth_IncompleteScheduleFallsBackToSimplified(t *testing.T) {
	// GIVEN: A month override whose schedule has only a time-in
	// WHEN: Processing a punched day under it
	// THEN: The day falls back to the presence-based path and pays the
	//       daily rate

	proc, mem := newTestProcessor(t)
	ctx := context.Background()

	require.NoError(t, mem.SaveEmploymentType(ctx, attendance.EmploymentType{
		Type:                 "regular",
		HoursOfWork:          8,
		RequiresTimeTracking: true,
		MonthSchedules: map[string]map[string]attendance.DailySchedule{
			"2026-03": {
				"2026-03-02": {TimeIn: "08:00"},
			},
		},
	}))
	require.NoError(t, mem.SaveAttendance(ctx, []attendance.Attendance{punch(2, "08:00", "17:00")}))

	result, err := proc.ProcessMonth(ctx, testEmployee("regular"), testYear, testMonth, false)
	require.NoError(t, err)
	assert.Empty(t, result.Failures)

	rec := recordFor(t, mem, 2)
	assert.Equal(t, compensation.StateSynthesized, rec.Override, "presence-path records start synthesized")
	assert.True(t, rec.GrossPay.Equal(decimalFromInt(800)), "gross = %s", rec.GrossPay)
	assert.Zero(t, rec.OvertimeMinutes)
}

func TestProcessMonth_UnknownEmploymentType(t *testing.T) {
	proc, _ := newTestProcessor(t)

	_, err := proc.ProcessMonth(context.Background(), testEmployee("ghost"), testYear, testMonth, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrUnknownEmploymentType))
}

// =============================================================================
// OVERRIDE GUARD
// =============================================================================

func TestProcessMonth_OverriddenRecordsSkippedUnlessForced(t *testing.T) {
	// GIVEN: A processed month where a human then overrides one day
	// WHEN: Reprocessing without and with force
	// THEN: Only the forced run replaces the overridden record

	proc, mem := newTestProcessor(t)
	ctx := context.Background()
	emp := testEmployee("regular")

	require.NoError(t, mem.SaveAttendance(ctx, []attendance.Attendance{punch(2, "08:00", "17:00")}))
	_, err := proc.ProcessMonth(ctx, emp, testYear, testMonth, false)
	require.NoError(t, err)

	edited := recordFor(t, mem, 2)
	edited.GrossPay = decimalFromInt(999)
	edited.NetPay = decimalFromInt(999)
	edited.Override = compensation.StateManuallyOverridden
	require.NoError(t, mem.SaveOrUpdate(ctx, []compensation.Compensation{edited}))

	_, err = proc.ProcessMonth(ctx, emp, testYear, testMonth, false)
	require.NoError(t, err)
	assert.True(t, recordFor(t, mem, 2).GrossPay.Equal(decimalFromInt(999)), "non-forced run must preserve the edit")

	_, err = proc.ProcessMonth(ctx, emp, testYear, testMonth, true)
	require.NoError(t, err)
	forced := recordFor(t, mem, 2)
	assert.True(t, forced.GrossPay.Equal(decimalFromInt(800)), "forced run recomputes, gross = %s", forced.GrossPay)
	assert.Equal(t, compensation.StateComputed, forced.Override)
}

// =============================================================================
// SINGLE-DAY RECOMPUTE
// =============================================================================

func TestRecomputeDay_InvalidDate(t *testing.T) {
	proc, _ := newTestProcessor(t)

	_, err := proc.RecomputeDay(context.Background(), testEmployee("regular"), punch(32, "08:00", "17:00"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrInvalidDate))
	assert.True(t, attendance.ExcludesDay(err))
}

func TestRecomputeDay_ComputesAndPersists(t *testing.T) {
	proc, mem := newTestProcessor(t)
	ctx := context.Background()
	att := punch(3, "08:10", "19:30")
	require.NoError(t, mem.SaveAttendance(ctx, []attendance.Attendance{att}))

	rec, err := proc.RecomputeDay(ctx, testEmployee("regular"), att, false)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 120, rec.OvertimeMinutes)

	persisted := recordFor(t, mem, 3)
	assert.Equal(t, 120, persisted.OvertimeMinutes)
}

func TestRecomputeDay_PreservesOverrideUnlessForced(t *testing.T) {
	proc, mem := newTestProcessor(t)
	ctx := context.Background()
	emp := testEmployee("regular")
	att := punch(2, "08:00", "17:00")
	require.NoError(t, mem.SaveAttendance(ctx, []attendance.Attendance{att}))

	_, err := proc.RecomputeDay(ctx, emp, att, false)
	require.NoError(t, err)

	edited := recordFor(t, mem, 2)
	edited.NetPay = decimalFromInt(1234)
	edited.Override = compensation.StateManuallyOverridden
	require.NoError(t, mem.SaveOrUpdate(ctx, []compensation.Compensation{edited}))

	kept, err := proc.RecomputeDay(ctx, emp, att, false)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.True(t, kept.NetPay.Equal(decimalFromInt(1234)), "existing override returned untouched")

	fresh, err := proc.RecomputeDay(ctx, emp, att, true)
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.True(t, fresh.NetPay.Equal(decimalFromInt(800)), "forced recompute, net = %s", fresh.NetPay)
}
