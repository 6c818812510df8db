package domain

import (
	"fmt"
	"time"
)

// QuoteRequest describes a translation job to be priced and scheduled.
// Schedule and ReferenceTime are optional overrides.
type QuoteRequest struct {
	Language       string
	DocumentType   string
	CharacterCount int
	Schedule       *WorkSchedule
	ReferenceTime  *time.Time
}

// DeadlineResult is the outcome of projecting a job duration onto the work calendar.
type DeadlineResult struct {
	// ElapsedLabel is the raw duration as HH:MM:SS.mmm, not calendar-adjusted.
	ElapsedLabel         string
	Duration             time.Duration
	DeadlineEpochSeconds int64
	DeadlineInstant      time.Time
}

// Quote combines price and deadline for a single request.
type Quote struct {
	Price    int64
	Deadline DeadlineResult
}

// FormatElapsed renders a duration as zero-padded HH:MM:SS.mmm.
// Hours are not wrapped at 24.
func FormatElapsed(d time.Duration) string {
	ms := d.Milliseconds()
	hours := ms / int64(time.Hour/time.Millisecond)
	minutes := ms % int64(time.Hour/time.Millisecond) / int64(time.Minute/time.Millisecond)
	seconds := ms % int64(time.Minute/time.Millisecond) / int64(time.Second/time.Millisecond)
	millis := ms % int64(time.Second/time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
