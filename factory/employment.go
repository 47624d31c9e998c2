/*
Package factory provides JSON to Go employment-type conversion and the
seed presets for a fresh installation.

PURPOSE:
  Converts JSON employment-type definitions into attendance types. This
  enables schedule configuration without code changes - HR can define an
  employment type in JSON, and the factory creates the proper Go structs.

JSON SCHEMA:
  {
    "type": "regular",
    "hours_of_work": 8,
    "requires_time_tracking": true,
    "weekly_schedules": [
      {"day_of_week": 1, "time_in": "08:00", "time_out": "17:00"}
    ],
    "month_schedules": {
      "2026-01": {
        "2026-01-15": {"time_in": "", "time_out": "", "is_off": true}
      }
    }
  }

PRESETS:
  DefaultEmploymentTypes returns the two canonical categories:
  - "regular": 8h, time-tracked, Monday-Saturday 08:00-17:00
  - "sales":   8h, presence-based (no clock punches)

SEE ALSO:
  - attendance/types.go: EmploymentType definition
  - cmd/server/main.go: Seeding on first start
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/attendance-engine/attendance"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// EmploymentTypeJSON is the JSON representation of an employment type.
type EmploymentTypeJSON struct {
	Type                 string                             `json:"type"`
	HoursOfWork          int                                `json:"hours_of_work,omitempty"`
	RequiresTimeTracking bool                               `json:"requires_time_tracking"`
	WeeklySchedules      []WeeklyScheduleJSON               `json:"weekly_schedules,omitempty"`
	MonthSchedules       map[string]map[string]ScheduleJSON `json:"month_schedules,omitempty"`
}

type WeeklyScheduleJSON struct {
	DayOfWeek int    `json:"day_of_week"` // ISO: Monday=1 .. Sunday=7
	TimeIn    string `json:"time_in"`
	TimeOut   string `json:"time_out"`
}

type ScheduleJSON struct {
	TimeIn          string `json:"time_in"`
	TimeOut         string `json:"time_out"`
	IsOff           bool   `json:"is_off,omitempty"`
	CrossesMidnight bool   `json:"crosses_midnight,omitempty"`
}

// =============================================================================
// FACTORY
// =============================================================================

// ParseEmploymentType converts a JSON definition into the domain type.
func ParseEmploymentType(jsonStr string) (attendance.EmploymentType, error) {
	var ej EmploymentTypeJSON
	if err := json.Unmarshal([]byte(jsonStr), &ej); err != nil {
		return attendance.EmploymentType{}, fmt.Errorf("invalid employment type JSON: %w", err)
	}
	return FromJSON(ej)
}

// FromJSON builds the domain type, validating the schedule shape.
func FromJSON(ej EmploymentTypeJSON) (attendance.EmploymentType, error) {
	if ej.Type == "" {
		return attendance.EmploymentType{}, fmt.Errorf("employment type key is required")
	}

	et := attendance.EmploymentType{
		Type:                 ej.Type,
		HoursOfWork:          ej.HoursOfWork,
		RequiresTimeTracking: ej.RequiresTimeTracking,
	}

	seen := make(map[int]bool)
	for _, ws := range ej.WeeklySchedules {
		if ws.DayOfWeek < 1 || ws.DayOfWeek > 7 {
			return attendance.EmploymentType{}, fmt.Errorf("day_of_week %d out of range 1..7", ws.DayOfWeek)
		}
		if seen[ws.DayOfWeek] {
			return attendance.EmploymentType{}, fmt.Errorf("duplicate weekly schedule for day %d", ws.DayOfWeek)
		}
		seen[ws.DayOfWeek] = true
		et.WeeklySchedules = append(et.WeeklySchedules, attendance.WeeklySchedule{
			DayOfWeek: ws.DayOfWeek,
			TimeIn:    ws.TimeIn,
			TimeOut:   ws.TimeOut,
		})
	}

	if len(ej.MonthSchedules) > 0 {
		et.MonthSchedules = make(map[string]map[string]attendance.DailySchedule, len(ej.MonthSchedules))
		for ym, days := range ej.MonthSchedules {
			et.MonthSchedules[ym] = make(map[string]attendance.DailySchedule, len(days))
			for date, ds := range days {
				et.MonthSchedules[ym][date] = attendance.DailySchedule{
					TimeIn:          ds.TimeIn,
					TimeOut:         ds.TimeOut,
					IsOff:           ds.IsOff,
					CrossesMidnight: ds.CrossesMidnight,
				}
			}
		}
	}

	return et, nil
}

// ToJSON converts a domain type back to its JSON representation.
func ToJSON(et attendance.EmploymentType) EmploymentTypeJSON {
	ej := EmploymentTypeJSON{
		Type:                 et.Type,
		HoursOfWork:          et.HoursOfWork,
		RequiresTimeTracking: et.RequiresTimeTracking,
	}
	for _, ws := range et.WeeklySchedules {
		ej.WeeklySchedules = append(ej.WeeklySchedules, WeeklyScheduleJSON{
			DayOfWeek: ws.DayOfWeek,
			TimeIn:    ws.TimeIn,
			TimeOut:   ws.TimeOut,
		})
	}
	if len(et.MonthSchedules) > 0 {
		ej.MonthSchedules = make(map[string]map[string]ScheduleJSON, len(et.MonthSchedules))
		for ym, days := range et.MonthSchedules {
			ej.MonthSchedules[ym] = make(map[string]ScheduleJSON, len(days))
			for date, ds := range days {
				ej.MonthSchedules[ym][date] = ScheduleJSON{
					TimeIn:          ds.TimeIn,
					TimeOut:         ds.TimeOut,
					IsOff:           ds.IsOff,
					CrossesMidnight: ds.CrossesMidnight,
				}
			}
		}
	}
	return ej
}

// =============================================================================
// PRESETS
// =============================================================================

// DefaultEmploymentTypes returns the canonical categories used to seed
// a fresh installation.
func DefaultEmploymentTypes() []attendance.EmploymentType {
	weekly := make([]attendance.WeeklySchedule, 0, 7)
	for day := 1; day <= 6; day++ {
		weekly = append(weekly, attendance.WeeklySchedule{
			DayOfWeek: day,
			TimeIn:    "08:00",
			TimeOut:   "17:00",
		})
	}
	// Sunday off
	weekly = append(weekly, attendance.WeeklySchedule{DayOfWeek: 7})

	return []attendance.EmploymentType{
		{
			Type:                 "regular",
			HoursOfWork:          8,
			RequiresTimeTracking: true,
			WeeklySchedules:      weekly,
		},
		{
			Type:                 "sales",
			HoursOfWork:          8,
			RequiresTimeTracking: false,
		},
	}
}
