package factory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/factory"
)

func TestParseEmploymentType_FullDefinition(t *testing.T) {
	jsonStr := `{
		"type": "regular",
		"hours_of_work": 8,
		"requires_time_tracking": true,
		"weekly_schedules": [
			{"day_of_week": 1, "time_in": "08:00", "time_out": "17:00"},
			{"day_of_week": 7, "time_in": "", "time_out": ""}
		],
		"month_schedules": {
			"2026-03": {
				"2026-03-16": {"is_off": true},
				"2026-03-17": {"time_in": "22:00", "time_out": "06:00", "crosses_midnight": true}
			}
		}
	}`

	et, err := factory.ParseEmploymentType(jsonStr)
	require.NoError(t, err)

	assert.Equal(t, "regular", et.Type)
	assert.True(t, et.RequiresTimeTracking)
	require.Len(t, et.WeeklySchedules, 2)

	// Resolution works directly on the parsed type.
	monday := attendance.ResolveSchedule(&et, attendance.NewDate(2026, time.March, 2))
	require.NotNil(t, monday)
	assert.Equal(t, "08:00", monday.TimeIn)

	overridden := attendance.ResolveSchedule(&et, attendance.NewDate(2026, time.March, 16))
	require.NotNil(t, overridden)
	assert.True(t, overridden.IsOffDay())

	night := attendance.ResolveSchedule(&et, attendance.NewDate(2026, time.March, 17))
	require.NotNil(t, night)
	assert.True(t, night.CrossesMidnight)
}

func TestFromJSON_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   factory.EmploymentTypeJSON
	}{
		{"missing key", factory.EmploymentTypeJSON{}},
		{"weekday zero", factory.EmploymentTypeJSON{
			Type:            "x",
			WeeklySchedules: []factory.WeeklyScheduleJSON{{DayOfWeek: 0}},
		}},
		{"weekday eight", factory.EmploymentTypeJSON{
			Type:            "x",
			WeeklySchedules: []factory.WeeklyScheduleJSON{{DayOfWeek: 8}},
		}},
		{"duplicate weekday", factory.EmploymentTypeJSON{
			Type: "x",
			WeeklySchedules: []factory.WeeklyScheduleJSON{
				{DayOfWeek: 1, TimeIn: "08:00", TimeOut: "17:00"},
				{DayOfWeek: 1, TimeIn: "09:00", TimeOut: "18:00"},
			},
		}},
	}
	for _, tc := range cases {
		_, err := factory.FromJSON(tc.in)
		assert.Error(t, err, tc.name)
	}
}

func TestToJSON_RoundTrip(t *testing.T) {
	for _, et := range factory.DefaultEmploymentTypes() {
		back, err := factory.FromJSON(factory.ToJSON(et))
		require.NoError(t, err)
		assert.Equal(t, et.Type, back.Type)
		assert.Equal(t, et.RequiresTimeTracking, back.RequiresTimeTracking)
		assert.Len(t, back.WeeklySchedules, len(et.WeeklySchedules))
	}
}

func TestDefaultEmploymentTypes(t *testing.T) {
	types := factory.DefaultEmploymentTypes()
	require.Len(t, types, 2)

	regular := types[0]
	assert.Equal(t, "regular", regular.Type)
	assert.True(t, regular.RequiresTimeTracking)
	require.Len(t, regular.WeeklySchedules, 7, "every ISO weekday has an entry")

	sunday := attendance.ResolveSchedule(&regular, attendance.NewDate(2026, time.March, 1))
	require.NotNil(t, sunday)
	assert.True(t, sunday.IsOffDay())

	sales := types[1]
	assert.False(t, sales.RequiresTimeTracking)
	assert.Nil(t, attendance.ResolveSchedule(&sales, attendance.NewDate(2026, time.March, 2)))
}
