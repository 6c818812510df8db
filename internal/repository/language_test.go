package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/transquote/internal/database"
	"github.com/mtlprog/transquote/internal/domain"
	"github.com/mtlprog/transquote/internal/repository"
)

// LanguageRepositoryTestSuite is the test suite for LanguageRepository.
type LanguageRepositoryTestSuite struct {
	suite.Suite
	db   *database.DB
	pool *pgxpool.Pool
	repo *repository.LanguageRepository
}

func (s *LanguageRepositoryTestSuite) SetupSuite() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		s.T().Skip("DATABASE_URL is not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, databaseURL)
	s.Require().NoError(err, "failed to connect to database")
	s.db = db
	s.pool = db.Pool()

	_, err = db.Migrate(ctx)
	s.Require().NoError(err, "failed to run migrations")

	s.repo = repository.NewLanguageRepository(s.pool)
}

func (s *LanguageRepositoryTestSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE language_profiles")
	s.Require().NoError(err, "failed to truncate language_profiles")
}

func (s *LanguageRepositoryTestSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
}

func TestLanguageRepositorySuite(t *testing.T) {
	suite.Run(t, new(LanguageRepositoryTestSuite))
}

func (s *LanguageRepositoryTestSuite) TestUpsertAndList() {
	ctx := context.Background()

	err := s.repo.Upsert(ctx, []domain.LanguageProfile{
		{Code: "uk", RatePerChar: 5, MinimumPrice: 5000, CharsPerHour: 1333},
		{Code: "en", RatePerChar: 12, MinimumPrice: 12000, CharsPerHour: 333},
	})
	s.Require().NoError(err)

	profiles, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Equal([]domain.LanguageProfile{
		{Code: "en", RatePerChar: 12, MinimumPrice: 12000, CharsPerHour: 333},
		{Code: "uk", RatePerChar: 5, MinimumPrice: 5000, CharsPerHour: 1333},
	}, profiles)
}

func (s *LanguageRepositoryTestSuite) TestUpsert_UpdatesExisting() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Upsert(ctx, []domain.LanguageProfile{
		{Code: "en", RatePerChar: 12, MinimumPrice: 12000, CharsPerHour: 333},
	}))
	s.Require().NoError(s.repo.Upsert(ctx, []domain.LanguageProfile{
		{Code: "en", RatePerChar: 12.5, MinimumPrice: 13000, CharsPerHour: 400},
	}))

	table, err := s.repo.RateTable(ctx)
	s.Require().NoError(err)
	s.Equal(1, table.Len())

	en, ok := table.Profile("en")
	s.Require().True(ok)
	s.Equal(12.5, en.RatePerChar)
	s.Equal(13000.0, en.MinimumPrice)
	s.Equal(400.0, en.CharsPerHour)
}

func (s *LanguageRepositoryTestSuite) TestUpsert_RejectsInvalidProfile() {
	err := s.repo.Upsert(context.Background(), []domain.LanguageProfile{
		{Code: "en", RatePerChar: 12, MinimumPrice: 12000, CharsPerHour: 0},
	})
	s.Error(err)

	profiles, err := s.repo.List(context.Background())
	s.Require().NoError(err)
	s.Empty(profiles)
}

func (s *LanguageRepositoryTestSuite) TestRateTable_EmptyTable() {
	_, err := s.repo.RateTable(context.Background())
	s.Error(err)
}

func (s *LanguageRepositoryTestSuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Upsert(ctx, []domain.LanguageProfile{
		{Code: "en", RatePerChar: 12, MinimumPrice: 12000, CharsPerHour: 333},
		{Code: "ru", RatePerChar: 5, MinimumPrice: 5000, CharsPerHour: 1333},
	}))

	s.Require().NoError(s.repo.Delete(ctx, "ru"))
	s.Require().NoError(s.repo.Delete(ctx, "missing"))

	profiles, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Len(profiles, 1)
	s.Equal("en", profiles[0].Code)
}
