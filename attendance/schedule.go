/*
schedule.go - Effective-schedule resolution

PURPOSE:
  One function answers "what is this employee expected to work on this
  date?" for every caller in the system. Absence inference, punch
  normalization, and the batch processor all go through ResolveSchedule
  so that no two code paths can disagree about whether a day is off.

RESOLUTION ORDER:
  1. Month-specific override (MonthSchedules["YYYY-MM"]["YYYY-MM-DD"]),
     returned verbatim - even when it expresses a day off.
  2. Weekly pattern entry for the date's ISO weekday (Sunday=7),
     synthesizing IsOff when either time field is empty.
  3. Neither exists: nil, meaning no expectation of work.

NON-TIME-TRACKING TYPES:
  Employment types with RequiresTimeTracking=false always resolve to
  nil, even when schedule data exists on the record: their pay is
  presence-based and never driven by clock arithmetic.
*/
package attendance

// ResolveSchedule returns the effective daily schedule for an
// employment type on a date, or nil when no work is expected.
func ResolveSchedule(et *EmploymentType, date Date) *DailySchedule {
	if et == nil || !et.RequiresTimeTracking {
		return nil
	}

	if months := et.MonthSchedules; months != nil {
		if days, ok := months[date.YearMonthKey()]; ok {
			if ds, ok := days[date.Key()]; ok {
				return &ds
			}
		}
	}

	weekday := date.ISOWeekday()
	for i := range et.WeeklySchedules {
		ws := et.WeeklySchedules[i]
		if ws.DayOfWeek != weekday {
			continue
		}
		ds := DailySchedule{TimeIn: ws.TimeIn, TimeOut: ws.TimeOut}
		if ws.TimeIn == "" || ws.TimeOut == "" {
			ds.IsOff = true
		}
		return &ds
	}

	return nil
}

// ResolveWorkingSchedule is ResolveSchedule restricted to days where
// work is actually expected: off days resolve to nil as well.
func ResolveWorkingSchedule(et *EmploymentType, date Date) *DailySchedule {
	ds := ResolveSchedule(et, date)
	if ds == nil || ds.IsOffDay() {
		return nil
	}
	return ds
}
