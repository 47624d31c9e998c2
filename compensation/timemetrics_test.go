package compensation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/compensation"
)

// =============================================================================
// TEST SETUP
// =============================================================================

var testDate = attendance.NewDate(2026, time.March, 2) // a Monday

func regularType() *attendance.EmploymentType {
	return &attendance.EmploymentType{
		Type:                 "regular",
		HoursOfWork:          8,
		RequiresTimeTracking: true,
		WeeklySchedules: []attendance.WeeklySchedule{
			{DayOfWeek: 1, TimeIn: "08:00", TimeOut: "17:00"},
		},
	}
}

func normalized(t *testing.T, actualIn, actualOut string, sched *attendance.DailySchedule) attendance.NormalizedTimes {
	t.Helper()
	times, err := attendance.Normalize(testDate, actualIn, actualOut, sched)
	require.NoError(t, err)
	return times
}

func dayShift() *attendance.DailySchedule {
	return &attendance.DailySchedule{TimeIn: "08:00", TimeOut: "17:00"}
}

// =============================================================================
// ON-TIME AND LATE ARRIVALS
// =============================================================================

func TestTimeMetrics_WithinGrace_NoDeductionNoOvertime(t *testing.T) {
	// GIVEN: Schedule 08:00-17:00, grace 5min, actual 08:03-17:00
	// WHEN: Computing time metrics
	// THEN: 3 late minutes but zero deduction, zero overtime

	settings := attendance.DefaultSettings()
	times := normalized(t, "08:03", "17:00", dayShift())

	tm := compensation.ComputeTimeMetrics(times, settings, regularType())

	assert.Equal(t, 3, tm.LateMinutes)
	assert.Equal(t, 0, tm.LateDeductionMinutes)
	assert.Equal(t, 0, tm.OvertimeMinutes)
	assert.Equal(t, 0, tm.UndertimeMinutes)
}

func TestTimeMetrics_LateAndOverstay(t *testing.T) {
	// GIVEN: Schedule 08:00-17:00, grace 5min, actual 08:10-19:30
	// WHEN: Computing time metrics
	// THEN: 10 late minutes deducting 5; 150 raw overtime minutes
	//       floored to two whole hours

	settings := attendance.DefaultSettings()
	times := normalized(t, "08:10", "19:30", dayShift())

	tm := compensation.ComputeTimeMetrics(times, settings, regularType())

	assert.Equal(t, 10, tm.LateMinutes)
	assert.Equal(t, 5, tm.LateDeductionMinutes)
	assert.Equal(t, 120, tm.OvertimeMinutes)
	assert.Equal(t, 120, tm.OvertimeDeductionMinutes)
}

func TestTimeMetrics_GraceBoundary(t *testing.T) {
	// For lateness of grace+k the deduction is exactly k.
	settings := attendance.DefaultSettings()
	settings.LateGraceMinutes = 5

	cases := []struct {
		in        string
		deduction int
	}{
		{"08:05", 0},  // exactly at grace
		{"08:06", 1},  // grace + 1
		{"08:20", 15}, // grace + 15
	}
	for _, tc := range cases {
		times := normalized(t, tc.in, "17:00", dayShift())
		tm := compensation.ComputeTimeMetrics(times, settings, regularType())
		assert.Equal(t, tc.deduction, tm.LateDeductionMinutes, "in=%s", tc.in)
	}
}

func TestTimeMetrics_Undertime(t *testing.T) {
	settings := attendance.DefaultSettings()
	times := normalized(t, "08:00", "16:30", dayShift())

	tm := compensation.ComputeTimeMetrics(times, settings, regularType())

	assert.Equal(t, 30, tm.UndertimeMinutes)
	assert.Equal(t, 25, tm.UndertimeDeductionMinutes)
	assert.Equal(t, 0, tm.OvertimeMinutes)
}

// =============================================================================
// OVERTIME RULES
// =============================================================================

func TestTimeMetrics_OvertimeWholeHoursOnly(t *testing.T) {
	// A 59-minute over-stay earns nothing; 60 earns exactly one hour.
	settings := attendance.DefaultSettings()

	short := compensation.ComputeTimeMetrics(normalized(t, "08:00", "17:59", dayShift()), settings, regularType())
	assert.Equal(t, 0, short.OvertimeMinutes)

	exact := compensation.ComputeTimeMetrics(normalized(t, "08:00", "18:00", dayShift()), settings, regularType())
	assert.Equal(t, 60, exact.OvertimeMinutes)

	almostTwo := compensation.ComputeTimeMetrics(normalized(t, "08:00", "18:59", dayShift()), settings, regularType())
	assert.Equal(t, 60, almostTwo.OvertimeMinutes)
}

func TestTimeMetrics_OvertimeAlwaysMultipleOfSixty(t *testing.T) {
	settings := attendance.DefaultSettings()
	outs := []string{"17:00", "17:13", "17:59", "18:00", "18:30", "19:30", "21:07", "23:59"}
	for _, out := range outs {
		tm := compensation.ComputeTimeMetrics(normalized(t, "08:00", out, dayShift()), settings, regularType())
		assert.Zero(t, tm.OvertimeMinutes%60, "out=%s overtime=%d", out, tm.OvertimeMinutes)
	}
}

func TestTimeMetrics_NoSchedule_OvertimeFromStandardDay(t *testing.T) {
	// GIVEN: No schedule for the day
	// WHEN: Working 10 hours against an 8h standard day
	// THEN: Overtime comes from the total; lateness and undertime are
	//       zero by definition

	settings := attendance.DefaultSettings()
	times := normalized(t, "09:00", "19:00", nil)

	tm := compensation.ComputeTimeMetrics(times, settings, regularType())

	assert.Equal(t, 0, tm.LateMinutes)
	assert.Equal(t, 0, tm.UndertimeMinutes)
	assert.Equal(t, 120, tm.OvertimeMinutes)
	assert.True(t, tm.HoursWorked.Equal(decimalFromInt(10)), "hours worked = %s", tm.HoursWorked)
}

func TestTimeMetrics_EarlyInCountsOnlyWhenConfigured(t *testing.T) {
	// GIVEN: Arrival 90min early but leaving 60min before schedule end,
	//        so the total span alone shows only 30min excess
	// WHEN: CountEarlyTimeInAsOvertime toggles
	// THEN: Only the enabled run credits the early hour

	times := normalized(t, "06:30", "16:00", dayShift())

	off := attendance.DefaultSettings()
	tm := compensation.ComputeTimeMetrics(times, off, regularType())
	assert.Equal(t, 0, tm.OvertimeMinutes)

	on := attendance.DefaultSettings()
	on.CountEarlyTimeInAsOvertime = true
	tm = compensation.ComputeTimeMetrics(times, on, regularType())
	assert.Equal(t, 60, tm.OvertimeMinutes)
}

func TestTimeMetrics_MidnightShiftArithmetic(t *testing.T) {
	// GIVEN: A 22:00-06:00 shift against a matching schedule
	// WHEN: Computing metrics
	// THEN: The normalized instants make subtraction safe: no phantom
	//       lateness or undertime across the midnight boundary

	settings := attendance.DefaultSettings()
	sched := &attendance.DailySchedule{TimeIn: "22:00", TimeOut: "06:00"}
	times := normalized(t, "22:00", "06:00", sched)

	tm := compensation.ComputeTimeMetrics(times, settings, regularType())

	assert.Equal(t, 0, tm.LateMinutes)
	assert.Equal(t, 0, tm.UndertimeMinutes)
	assert.True(t, tm.HoursWorked.Equal(decimalFromInt(8)))
}
