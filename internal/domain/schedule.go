package domain

import (
	"fmt"
	"time"
)

// WorkSchedule is a recurring weekly work window.
// Hours are 0-23 and days are 0 (Sunday) to 6 (Saturday). An end value lower
// than its start means the window wraps past midnight or past Sunday.
type WorkSchedule struct {
	StartHour int
	EndHour   int
	StartDay  int
	EndDay    int
}

// AltTime reports whether the daily shift crosses midnight (e.g. 22 -> 3).
func (s WorkSchedule) AltTime() bool {
	return s.EndHour < s.StartHour
}

// AltDays reports whether the work week crosses Sunday (e.g. Fri -> Mon).
func (s WorkSchedule) AltDays() bool {
	return s.EndDay < s.StartDay
}

// HoursPerDay returns the length of one shift in hours.
func (s WorkSchedule) HoursPerDay() int {
	if s.AltTime() {
		return 24 - s.StartHour + s.EndHour
	}
	return s.EndHour - s.StartHour
}

// DaysPerWeek returns the number of work days in one week.
func (s WorkSchedule) DaysPerWeek() int {
	if s.AltDays() {
		return 1 + 7 - s.StartDay + s.EndDay
	}
	return 1 + s.EndDay - s.StartDay
}

// ShiftLength returns HoursPerDay as a duration.
func (s WorkSchedule) ShiftLength() time.Duration {
	return time.Duration(s.HoursPerDay()) * time.Hour
}

// IsWorkWeekday reports whether the weekday falls inside the work days window.
func (s WorkSchedule) IsWorkWeekday(day time.Weekday) bool {
	d := int(day)
	if s.AltDays() {
		return d >= s.StartDay || d <= s.EndDay
	}
	return d >= s.StartDay && d <= s.EndDay
}

// Validate checks hour and day bounds.
func (s WorkSchedule) Validate() error {
	if s.StartHour < 0 || s.StartHour > 23 || s.EndHour < 0 || s.EndHour > 23 {
		return fmt.Errorf("%w: work hours must be within [0,23], got [%d,%d]", ErrInvalidSchedule, s.StartHour, s.EndHour)
	}
	if s.StartHour == s.EndHour {
		return fmt.Errorf("%w: work hours start and end must differ, got %d", ErrInvalidSchedule, s.StartHour)
	}
	if s.StartDay < 0 || s.StartDay > 6 || s.EndDay < 0 || s.EndDay > 6 {
		return fmt.Errorf("%w: work days must be within [0,6], got [%d,%d]", ErrInvalidSchedule, s.StartDay, s.EndDay)
	}
	return nil
}

// String renders the schedule as "hours 10-15, days 1-5".
func (s WorkSchedule) String() string {
	return fmt.Sprintf("hours %d-%d, days %d-%d", s.StartHour, s.EndHour, s.StartDay, s.EndDay)
}
