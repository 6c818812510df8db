package dto

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mtlprog/transquote/internal/domain"
)

// ErrMalformedRequest marks bodies that decode as JSON but have the wrong shape.
var ErrMalformedRequest = errors.New("malformed request")

// maxCharacterCount bounds the count accepted over the API. Counts below it can
// still be rejected by the engine when the job duration overflows.
const maxCharacterCount = 1_000_000_000

// CalculateRequest represents the request body for POST /calculator/calculate.
type CalculateRequest struct {
	Language      string     `json:"language"`
	Mimetype      string     `json:"mimetype"`
	Count         float64    `json:"count"`
	WorkHours     []int      `json:"workHours,omitempty"`
	WorkDays      []int      `json:"workDays,omitempty"`
	ReferenceTime *time.Time `json:"referenceTime,omitempty"`
}

// ToDomain converts the body into a QuoteRequest. A partial schedule override
// is completed from defaultSchedule.
func (r CalculateRequest) ToDomain(defaultSchedule domain.WorkSchedule) (domain.QuoteRequest, error) {
	if r.Count != math.Trunc(r.Count) || r.Count > maxCharacterCount {
		return domain.QuoteRequest{}, fmt.Errorf("%w: got %v", domain.ErrInvalidCharacterCount, r.Count)
	}

	req := domain.QuoteRequest{
		Language:       r.Language,
		DocumentType:   r.Mimetype,
		CharacterCount: int(r.Count),
		ReferenceTime:  r.ReferenceTime,
	}

	if r.WorkHours == nil && r.WorkDays == nil {
		return req, nil
	}

	schedule := defaultSchedule
	if r.WorkHours != nil {
		if len(r.WorkHours) != 2 {
			return domain.QuoteRequest{}, fmt.Errorf("%w: workHours must be [start, end]", ErrMalformedRequest)
		}
		schedule.StartHour, schedule.EndHour = r.WorkHours[0], r.WorkHours[1]
	}
	if r.WorkDays != nil {
		if len(r.WorkDays) != 2 {
			return domain.QuoteRequest{}, fmt.Errorf("%w: workDays must be [start, end]", ErrMalformedRequest)
		}
		schedule.StartDay, schedule.EndDay = r.WorkDays[0], r.WorkDays[1]
	}
	req.Schedule = &schedule
	return req, nil
}
