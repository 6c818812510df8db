package service

import (
	"fmt"
	"math"
	"time"

	"github.com/mtlprog/transquote/internal/domain"
)

// setupTime is added to every job estimate before the surcharge applies.
const setupTime = 30 * time.Minute

// DeadlineEngine projects job durations onto the business work calendar.
// It holds only immutable configuration and is safe for concurrent use.
type DeadlineEngine struct {
	rates       *domain.RateTable
	surcharge   Surcharge
	minDuration time.Duration
	location    *time.Location
}

// NewDeadlineEngine creates a new DeadlineEngine evaluating calendars in loc.
func NewDeadlineEngine(rates *domain.RateTable, surcharge Surcharge, minDuration time.Duration, loc *time.Location) *DeadlineEngine {
	return &DeadlineEngine{
		rates:       rates,
		surcharge:   surcharge,
		minDuration: minDuration,
		location:    loc,
	}
}

// Location returns the business timezone.
func (e *DeadlineEngine) Location() *time.Location {
	return e.location
}

// Estimate returns the raw processing duration for a job, truncated to whole milliseconds.
func (e *DeadlineEngine) Estimate(language, documentType string, characterCount int) (time.Duration, error) {
	profile, err := lookupProfile(e.rates, language, characterCount)
	if err != nil {
		return 0, err
	}
	return e.estimate(profile, documentType, characterCount)
}

// estimate rejects jobs whose duration does not fit in a time.Duration.
func (e *DeadlineEngine) estimate(profile domain.LanguageProfile, documentType string, characterCount int) (time.Duration, error) {
	hours := float64(characterCount) / profile.CharsPerHour
	ns := (hours*float64(time.Hour) + float64(setupTime)) * e.surcharge.Multiplier(documentType)
	if ns >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d characters of %s exceed the maximum job duration",
			domain.ErrInvalidCharacterCount, characterCount, profile.Code)
	}

	// Round away float noise first so exact values do not lose a millisecond.
	d := time.Duration(math.Round(ns)).Truncate(time.Millisecond)
	if d < e.minDuration {
		d = e.minDuration
	}
	return d, nil
}

// Compute calculates the deadline for a job started at reference under schedule.
func (e *DeadlineEngine) Compute(
	language string,
	documentType string,
	characterCount int,
	schedule domain.WorkSchedule,
	reference time.Time,
) (domain.DeadlineResult, error) {
	profile, err := lookupProfile(e.rates, language, characterCount)
	if err != nil {
		return domain.DeadlineResult{}, err
	}
	if err := schedule.Validate(); err != nil {
		return domain.DeadlineResult{}, err
	}

	total, err := e.estimate(profile, documentType, characterCount)
	if err != nil {
		return domain.DeadlineResult{}, err
	}
	deadline := Project(schedule, e.location, reference, total)

	return domain.DeadlineResult{
		ElapsedLabel:         domain.FormatElapsed(total),
		Duration:             total,
		DeadlineEpochSeconds: deadline.Unix(),
		DeadlineInstant:      deadline,
	}, nil
}

// Project walks d of working time forward from reference through schedule,
// evaluated in loc. The schedule must be valid.
func Project(schedule domain.WorkSchedule, loc *time.Location, reference time.Time, d time.Duration) time.Time {
	cal := newWorkCalendar(schedule, loc)

	shift := schedule.ShiftLength()
	fullDays := int(d / shift)
	remaining := d - time.Duration(fullDays)*shift
	fullWeeks := fullDays / schedule.DaysPerWeek()
	fullDays -= fullWeeks * schedule.DaysPerWeek()

	t := reference.In(loc)
	t = t.AddDate(0, 0, 7*fullWeeks)
	t = cal.fillWorkDays(t, fullDays)
	t = cal.fillWorkTime(t, remaining)
	return cal.toPeriodEnd(t)
}
