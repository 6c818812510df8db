package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/transquote/internal/domain"
	"github.com/mtlprog/transquote/internal/service"
)

// QuoteServiceTestSuite is the test suite for QuoteService.
type QuoteServiceTestSuite struct {
	suite.Suite
	kiev    *time.Location
	now     time.Time
	service *service.QuoteService
}

func (s *QuoteServiceTestSuite) SetupTest() {
	s.kiev = mustLocation(s.T(), "Europe/Kiev")
	s.now = time.Date(2021, 7, 1, 5, 15, 32, 0, s.kiev)

	rates := testRates(s.T())
	surcharge := service.NewSurcharge([]string{"none", "doc", "docx", "rtf"}, 2)
	s.service = service.NewQuoteService(
		service.NewPriceQuoter(rates, surcharge),
		service.NewDeadlineEngine(rates, surcharge, minDuration, s.kiev),
		domain.WorkSchedule{StartHour: 10, EndHour: 15, StartDay: 1, EndDay: 5},
		service.WithClock(func() time.Time { return s.now }),
	)
}

func TestQuoteServiceSuite(t *testing.T) {
	suite.Run(t, new(QuoteServiceTestSuite))
}

func (s *QuoteServiceTestSuite) TestQuote_Defaults() {
	quote, err := s.service.Quote(context.Background(), domain.QuoteRequest{
		Language:       "en",
		DocumentType:   "doc",
		CharacterCount: 333,
	})
	s.Require().NoError(err)

	s.Equal(int64(12000), quote.Price)
	s.Equal("01:30:00.000", quote.Deadline.ElapsedLabel)
	s.Equal(int64(1625128200), quote.Deadline.DeadlineEpochSeconds)
	s.True(time.Date(2021, 7, 1, 11, 30, 0, 0, s.kiev).Equal(quote.Deadline.DeadlineInstant))
}

func (s *QuoteServiceTestSuite) TestQuote_Overrides() {
	ref := time.Date(2021, 7, 3, 5, 15, 32, 0, s.kiev)
	quote, err := s.service.Quote(context.Background(), domain.QuoteRequest{
		Language:       "en",
		DocumentType:   "doc",
		CharacterCount: 333,
		Schedule:       &domain.WorkSchedule{StartHour: 23, EndHour: 4, StartDay: 2, EndDay: 5},
		ReferenceTime:  &ref,
	})
	s.Require().NoError(err)
	s.True(time.Date(2021, 7, 7, 0, 30, 0, 0, s.kiev).Equal(quote.Deadline.DeadlineInstant))
}

func (s *QuoteServiceTestSuite) TestQuote_TaxedDocument() {
	quote, err := s.service.Quote(context.Background(), domain.QuoteRequest{
		Language:       "en",
		DocumentType:   "html",
		CharacterCount: 2000,
	})
	s.Require().NoError(err)
	s.Equal(int64(48000), quote.Price)
}

func (s *QuoteServiceTestSuite) TestQuote_Errors() {
	tests := []struct {
		name string
		req  domain.QuoteRequest
		want error
	}{
		{
			name: "unsupported language",
			req:  domain.QuoteRequest{Language: "fr", DocumentType: "doc", CharacterCount: 1333},
			want: domain.ErrUnsupportedLanguage,
		},
		{
			name: "zero count",
			req:  domain.QuoteRequest{Language: "en", DocumentType: "doc", CharacterCount: 0},
			want: domain.ErrInvalidCharacterCount,
		},
		{
			name: "negative count",
			req:  domain.QuoteRequest{Language: "en", DocumentType: "doc", CharacterCount: -5},
			want: domain.ErrInvalidCharacterCount,
		},
		{
			name: "duration out of range",
			req:  domain.QuoteRequest{Language: "en", DocumentType: "doc", CharacterCount: 900_000_000},
			want: domain.ErrInvalidCharacterCount,
		},
		{
			name: "empty shift",
			req: domain.QuoteRequest{
				Language: "en", DocumentType: "doc", CharacterCount: 333,
				Schedule: &domain.WorkSchedule{StartHour: 9, EndHour: 9, StartDay: 1, EndDay: 5},
			},
			want: domain.ErrInvalidSchedule,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			quote, err := s.service.Quote(context.Background(), tt.req)
			s.ErrorIs(err, tt.want)
			s.Nil(quote)
		})
	}
}

func (s *QuoteServiceTestSuite) TestQuote_RecoversFromPanic() {
	broken := service.NewQuoteService(nil, nil, domain.WorkSchedule{StartHour: 10, EndHour: 15, StartDay: 1, EndDay: 5})

	quote, err := broken.Quote(context.Background(), domain.QuoteRequest{
		Language:       "en",
		DocumentType:   "doc",
		CharacterCount: 333,
	})
	s.ErrorIs(err, domain.ErrInternal)
	s.Nil(quote)
}

func (s *QuoteServiceTestSuite) TestQuote_Concurrent() {
	req := domain.QuoteRequest{Language: "ru", DocumentType: "docx", CharacterCount: 13330}
	want, err := s.service.Quote(context.Background(), req)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	results := make([]*domain.Quote, 64)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = s.service.Quote(context.Background(), req)
		}()
	}
	wg.Wait()

	for _, got := range results {
		s.Equal(want, got)
	}
}
