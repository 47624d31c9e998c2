package attendance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/attendance"
)

func trackedType(weekly []attendance.WeeklySchedule, months map[string]map[string]attendance.DailySchedule) *attendance.EmploymentType {
	return &attendance.EmploymentType{
		Type:                 "regular",
		HoursOfWork:          8,
		RequiresTimeTracking: true,
		WeeklySchedules:      weekly,
		MonthSchedules:       months,
	}
}

// =============================================================================
// RESOLUTION ORDER
// =============================================================================

func TestResolveSchedule_WeeklyPattern(t *testing.T) {
	// GIVEN: A Monday-only weekly pattern
	// WHEN: Resolving a Monday and a Tuesday
	// THEN: Monday resolves, Tuesday does not

	et := trackedType([]attendance.WeeklySchedule{
		{DayOfWeek: 1, TimeIn: "08:00", TimeOut: "17:00"},
	}, nil)

	monday := attendance.NewDate(2026, time.March, 2)
	tuesday := attendance.NewDate(2026, time.March, 3)

	ds := attendance.ResolveSchedule(et, monday)
	require.NotNil(t, ds)
	assert.Equal(t, "08:00", ds.TimeIn)
	assert.Equal(t, "17:00", ds.TimeOut)
	assert.False(t, ds.IsOffDay())

	assert.Nil(t, attendance.ResolveSchedule(et, tuesday))
}

func TestResolveSchedule_MonthOverrideWins(t *testing.T) {
	// GIVEN: A weekly Monday schedule and a month override for one
	//        specific Monday with different hours
	// WHEN: Resolving that Monday and the following one
	// THEN: The override applies only to its own date

	et := trackedType(
		[]attendance.WeeklySchedule{{DayOfWeek: 1, TimeIn: "08:00", TimeOut: "17:00"}},
		map[string]map[string]attendance.DailySchedule{
			"2026-03": {
				"2026-03-02": {TimeIn: "10:00", TimeOut: "19:00"},
			},
		},
	)

	overridden := attendance.ResolveSchedule(et, attendance.NewDate(2026, time.March, 2))
	require.NotNil(t, overridden)
	assert.Equal(t, "10:00", overridden.TimeIn)

	nextMonday := attendance.ResolveSchedule(et, attendance.NewDate(2026, time.March, 9))
	require.NotNil(t, nextMonday)
	assert.Equal(t, "08:00", nextMonday.TimeIn)
}

func TestResolveSchedule_OffOverrideBeatsWeekly(t *testing.T) {
	// GIVEN: A weekly Monday schedule and an override marking one
	//        Monday off
	// WHEN: Resolving that Monday
	// THEN: The override is returned verbatim, expressing a day off

	et := trackedType(
		[]attendance.WeeklySchedule{{DayOfWeek: 1, TimeIn: "08:00", TimeOut: "17:00"}},
		map[string]map[string]attendance.DailySchedule{
			"2026-03": {
				"2026-03-02": {IsOff: true},
			},
		},
	)

	ds := attendance.ResolveSchedule(et, attendance.NewDate(2026, time.March, 2))
	require.NotNil(t, ds)
	assert.True(t, ds.IsOffDay())

	assert.Nil(t, attendance.ResolveWorkingSchedule(et, attendance.NewDate(2026, time.March, 2)))
}

func TestResolveSchedule_WeeklyOffDay(t *testing.T) {
	// A weekly entry with empty times synthesizes an off day rather
	// than an incomplete schedule.
	et := trackedType([]attendance.WeeklySchedule{{DayOfWeek: 7}}, nil)

	sunday := attendance.NewDate(2026, time.March, 1)
	ds := attendance.ResolveSchedule(et, sunday)
	require.NotNil(t, ds)
	assert.True(t, ds.IsOff)
	assert.True(t, ds.IsOffDay())
}

func TestResolveSchedule_SundayIsSeven(t *testing.T) {
	// GIVEN: A pattern with only an ISO day 7 entry
	// WHEN: Resolving a Sunday
	// THEN: The entry matches (Sunday never maps to 0)

	et := trackedType([]attendance.WeeklySchedule{
		{DayOfWeek: 7, TimeIn: "09:00", TimeOut: "13:00"},
	}, nil)

	ds := attendance.ResolveSchedule(et, attendance.NewDate(2026, time.March, 1))
	require.NotNil(t, ds)
	assert.Equal(t, "09:00", ds.TimeIn)
}

// =============================================================================
// NON-TIME-TRACKING TYPES
// =============================================================================

func TestResolveSchedule_NonTrackingAlwaysNil(t *testing.T) {
	// Schedule data on a presence-based type is ignored: its pay never
	// comes from clock arithmetic.
	et := &attendance.EmploymentType{
		Type:                 "sales",
		RequiresTimeTracking: false,
		WeeklySchedules: []attendance.WeeklySchedule{
			{DayOfWeek: 1, TimeIn: "08:00", TimeOut: "17:00"},
		},
	}

	assert.Nil(t, attendance.ResolveSchedule(et, attendance.NewDate(2026, time.March, 2)))
	assert.Nil(t, attendance.ResolveSchedule(nil, attendance.NewDate(2026, time.March, 2)))
}

// =============================================================================
// EMPLOYMENT TYPE HELPERS
// =============================================================================

func TestStandardHours_Default(t *testing.T) {
	var nilType *attendance.EmploymentType
	assert.Equal(t, 8, nilType.StandardHours())
	assert.Equal(t, 8, (&attendance.EmploymentType{}).StandardHours())
	assert.Equal(t, 10, (&attendance.EmploymentType{HoursOfWork: 10}).StandardHours())
}

func TestHasScheduleData(t *testing.T) {
	assert.False(t, (&attendance.EmploymentType{}).HasScheduleData())
	assert.True(t, trackedType([]attendance.WeeklySchedule{{DayOfWeek: 1}}, nil).HasScheduleData())
	assert.True(t, trackedType(nil, map[string]map[string]attendance.DailySchedule{
		"2026-03": {"2026-03-02": {IsOff: true}},
	}).HasScheduleData())
}

func TestDailySchedule_Incomplete(t *testing.T) {
	assert.True(t, attendance.DailySchedule{TimeIn: "08:00"}.Incomplete())
	assert.True(t, attendance.DailySchedule{TimeOut: "17:00"}.Incomplete())
	assert.False(t, attendance.DailySchedule{TimeIn: "08:00", TimeOut: "17:00"}.Incomplete())
	assert.False(t, attendance.DailySchedule{}.Incomplete())
}
