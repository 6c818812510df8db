package service

import (
	"time"

	"github.com/mtlprog/transquote/internal/domain"
)

// workCalendar walks a clock through a recurring weekly schedule.
// All wall-clock reads and calendar steps happen in loc; the value is built per
// call and never shared.
type workCalendar struct {
	schedule domain.WorkSchedule
	loc      *time.Location
}

func newWorkCalendar(schedule domain.WorkSchedule, loc *time.Location) workCalendar {
	return workCalendar{schedule: schedule, loc: loc}
}

// sinceMidnight returns the wall-clock time of day.
func sinceMidnight(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}

// atHour returns the instant at hour:00 on t's calendar date shifted by dayOffset days.
func (c workCalendar) atHour(t time.Time, dayOffset, hour int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+dayOffset, hour, 0, 0, 0, c.loc)
}

// shiftDay is the weekday on which the shift containing t began. For shifts
// crossing midnight the hours before EndHour belong to the previous day.
func (c workCalendar) shiftDay(t time.Time) time.Weekday {
	if c.schedule.AltTime() && sinceMidnight(t) < time.Duration(c.schedule.EndHour)*time.Hour {
		return t.AddDate(0, 0, -1).Weekday()
	}
	return t.Weekday()
}

func (c workCalendar) isWorkDay(t time.Time) bool {
	return c.schedule.IsWorkWeekday(c.shiftDay(t))
}

func (c workCalendar) isWorkTime(t time.Time) bool {
	tod := sinceMidnight(t)
	start := time.Duration(c.schedule.StartHour) * time.Hour
	end := time.Duration(c.schedule.EndHour) * time.Hour
	if c.schedule.AltTime() {
		return tod >= start || tod < end
	}
	return tod >= start && tod < end
}

// moveToWorkDay advances t by whole calendar days to the first day of the work
// week, keeping its position within the shift.
func (c workCalendar) moveToWorkDay(t time.Time) time.Time {
	day := int(c.shiftDay(t))
	n := c.schedule.StartDay - day
	if day >= c.schedule.StartDay {
		n += 7
	}
	return t.AddDate(0, 0, n)
}

// moveToWorkTime moves t to the shift start of its own day, or of the next day
// once the start hour has passed.
func (c workCalendar) moveToWorkTime(t time.Time) time.Time {
	offset := 0
	if c.schedule.StartHour < t.Hour() {
		offset = 1
	}
	return c.atHour(t, offset, c.schedule.StartHour)
}

// nextShiftStart moves t to the start of the next shift that belongs to a work day.
func (c workCalendar) nextShiftStart(t time.Time) time.Time {
	t = c.moveToWorkTime(t)
	if !c.isWorkDay(t) {
		t = c.moveToWorkDay(t)
	}
	return t
}

// shiftEnd returns the end of the shift containing t. t must be within work time.
func (c workCalendar) shiftEnd(t time.Time) time.Time {
	if c.schedule.AltTime() && sinceMidnight(t) >= time.Duration(c.schedule.EndHour)*time.Hour {
		return c.atHour(t, 1, c.schedule.EndHour)
	}
	return c.atHour(t, 0, c.schedule.EndHour)
}

// fillWorkDays advances t by n whole work days (n is less than one work week).
func (c workCalendar) fillWorkDays(t time.Time, n int) time.Time {
	if !c.isWorkDay(t) {
		t = c.nextShiftStart(t)
	}

	day := int(c.shiftDay(t))
	left := 1 + c.schedule.EndDay - day
	if c.schedule.AltDays() && day >= c.schedule.StartDay {
		left += 7
	}

	if left < n {
		n -= left
		t = t.AddDate(0, 0, left)
		// A seven-day week is already back on its first work day.
		if !c.isWorkDay(t) {
			t = c.moveToWorkDay(t)
		}
	}
	return t.AddDate(0, 0, n)
}

// fillWorkTime advances t by d of working time (d is less than one shift).
func (c workCalendar) fillWorkTime(t time.Time, d time.Duration) time.Time {
	if !c.isWorkDay(t) {
		t = c.moveToWorkDay(t)
	}
	if !c.isWorkTime(t) {
		t = c.nextShiftStart(t)
	}

	left := c.shiftEnd(t).Sub(t)
	if left < d {
		d -= left
		t = c.nextShiftStart(t.Add(left))
	}
	return t.Add(d)
}

// toPeriodEnd reports an instant sitting exactly on a shift start as the end of
// the previous work period instead.
func (c workCalendar) toPeriodEnd(t time.Time) time.Time {
	if sinceMidnight(t) != time.Duration(c.schedule.StartHour)*time.Hour {
		return t
	}

	endOffset := -1
	if c.schedule.AltTime() {
		endOffset = 0
	}
	last := c.atHour(t, endOffset, c.schedule.EndHour).Add(-time.Millisecond)

	if !c.isWorkDay(last) {
		day := int(c.shiftDay(last))
		if !c.schedule.AltDays() && day < c.schedule.StartDay {
			day += 7
		}
		last = last.AddDate(0, 0, -(day - c.schedule.EndDay))
	}
	return last.Add(time.Millisecond)
}
