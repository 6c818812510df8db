package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mtlprog/transquote/internal/domain"
)

func TestWorkSchedule_Shape(t *testing.T) {
	tests := []struct {
		name        string
		schedule    domain.WorkSchedule
		altTime     bool
		altDays     bool
		hoursPerDay int
		daysPerWeek int
	}{
		{"office week", domain.WorkSchedule{StartHour: 10, EndHour: 15, StartDay: 1, EndDay: 5}, false, false, 5, 5},
		{"night shift", domain.WorkSchedule{StartHour: 22, EndHour: 3, StartDay: 1, EndDay: 5}, true, false, 5, 5},
		{"weekend crew", domain.WorkSchedule{StartHour: 10, EndHour: 15, StartDay: 5, EndDay: 2}, false, true, 5, 5},
		{"night weekend crew", domain.WorkSchedule{StartHour: 23, EndHour: 4, StartDay: 6, EndDay: 2}, true, true, 5, 4},
		{"single day", domain.WorkSchedule{StartHour: 0, EndHour: 23, StartDay: 3, EndDay: 3}, false, false, 23, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.altTime, tt.schedule.AltTime())
			assert.Equal(t, tt.altDays, tt.schedule.AltDays())
			assert.Equal(t, tt.hoursPerDay, tt.schedule.HoursPerDay())
			assert.Equal(t, tt.daysPerWeek, tt.schedule.DaysPerWeek())
			assert.Equal(t, time.Duration(tt.hoursPerDay)*time.Hour, tt.schedule.ShiftLength())
		})
	}
}

func TestWorkSchedule_IsWorkWeekday(t *testing.T) {
	office := domain.WorkSchedule{StartHour: 10, EndHour: 15, StartDay: 1, EndDay: 5}
	assert.False(t, office.IsWorkWeekday(time.Sunday))
	assert.True(t, office.IsWorkWeekday(time.Monday))
	assert.True(t, office.IsWorkWeekday(time.Friday))
	assert.False(t, office.IsWorkWeekday(time.Saturday))

	wrapped := domain.WorkSchedule{StartHour: 10, EndHour: 15, StartDay: 5, EndDay: 2}
	assert.True(t, wrapped.IsWorkWeekday(time.Friday))
	assert.True(t, wrapped.IsWorkWeekday(time.Sunday))
	assert.True(t, wrapped.IsWorkWeekday(time.Tuesday))
	assert.False(t, wrapped.IsWorkWeekday(time.Wednesday))
	assert.False(t, wrapped.IsWorkWeekday(time.Thursday))
}

func TestWorkSchedule_Validate(t *testing.T) {
	valid := []domain.WorkSchedule{
		{StartHour: 10, EndHour: 15, StartDay: 1, EndDay: 5},
		{StartHour: 22, EndHour: 3, StartDay: 5, EndDay: 2},
		{StartHour: 0, EndHour: 23, StartDay: 0, EndDay: 6},
		{StartHour: 9, EndHour: 17, StartDay: 3, EndDay: 3},
	}
	for _, s := range valid {
		assert.NoError(t, s.Validate(), s.String())
	}

	invalid := []domain.WorkSchedule{
		{StartHour: 10, EndHour: 10, StartDay: 1, EndDay: 5},
		{StartHour: -1, EndHour: 15, StartDay: 1, EndDay: 5},
		{StartHour: 10, EndHour: 24, StartDay: 1, EndDay: 5},
		{StartHour: 10, EndHour: 15, StartDay: 1, EndDay: 7},
		{StartHour: 10, EndHour: 15, StartDay: -1, EndDay: 5},
	}
	for _, s := range invalid {
		assert.ErrorIs(t, s.Validate(), domain.ErrInvalidSchedule, s.String())
	}
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00.000", domain.FormatElapsed(0))
	assert.Equal(t, "01:30:00.000", domain.FormatElapsed(90*time.Minute))
	assert.Equal(t, "03:30:10.810", domain.FormatElapsed(12610810*time.Millisecond))
	assert.Equal(t, "110:30:00.000", domain.FormatElapsed(110*time.Hour+30*time.Minute))
	assert.Equal(t, "00:00:01.999", domain.FormatElapsed(1999999*time.Microsecond))
}
