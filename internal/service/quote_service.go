package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtlprog/transquote/internal/domain"
)

// QuoteService coordinates price and deadline computation for a request.
type QuoteService struct {
	prices          *PriceQuoter
	deadlines       *DeadlineEngine
	defaultSchedule domain.WorkSchedule
	now             func() time.Time
}

// QuoteServiceOption configures a QuoteService.
type QuoteServiceOption func(*QuoteService)

// WithClock overrides the clock used when a request has no reference time.
func WithClock(now func() time.Time) QuoteServiceOption {
	return func(s *QuoteService) { s.now = now }
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(
	prices *PriceQuoter,
	deadlines *DeadlineEngine,
	defaultSchedule domain.WorkSchedule,
	opts ...QuoteServiceOption,
) *QuoteService {
	s := &QuoteService{
		prices:          prices,
		deadlines:       deadlines,
		defaultSchedule: defaultSchedule,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote prices and schedules a job. Either both parts succeed or an error is returned.
func (s *QuoteService) Quote(ctx context.Context, req domain.QuoteRequest) (quote *domain.Quote, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "quote computation panicked",
				"panic", r,
				"language", req.Language,
				"count", req.CharacterCount,
			)
			quote = nil
			err = fmt.Errorf("%w: %v", domain.ErrInternal, r)
		}
	}()

	schedule := s.defaultSchedule
	if req.Schedule != nil {
		schedule = *req.Schedule
	}
	reference := s.now()
	if req.ReferenceTime != nil {
		reference = *req.ReferenceTime
	}

	price, err := s.prices.Quote(req.Language, req.DocumentType, req.CharacterCount)
	if err != nil {
		return nil, err
	}

	deadline, err := s.deadlines.Compute(req.Language, req.DocumentType, req.CharacterCount, schedule, reference)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "quote computed",
		"language", req.Language,
		"mimetype", req.DocumentType,
		"count", req.CharacterCount,
		"schedule", schedule.String(),
		"price", price,
		"elapsed", deadline.ElapsedLabel,
		"deadline", deadline.DeadlineInstant,
	)

	return &domain.Quote{
		Price:    price,
		Deadline: deadline,
	}, nil
}

// DefaultSchedule returns the schedule used when a request has none.
func (s *QuoteService) DefaultSchedule() domain.WorkSchedule {
	return s.defaultSchedule
}
