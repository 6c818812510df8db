package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/transquote/internal/domain"
)

// LanguageRepository reads and writes language profiles.
type LanguageRepository struct {
	pool *pgxpool.Pool
}

// NewLanguageRepository creates a new LanguageRepository.
func NewLanguageRepository(pool *pgxpool.Pool) *LanguageRepository {
	return &LanguageRepository{pool: pool}
}

// List returns every language profile ordered by code.
func (r *LanguageRepository) List(ctx context.Context) ([]domain.LanguageProfile, error) {
	query, args, err := psql.
		Select("code", "rate_per_char", "minimum_price", "chars_per_hour").
		From("language_profiles").
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query language profiles: %w", err)
	}

	profiles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LanguageProfile, error) {
		var p domain.LanguageProfile
		err := row.Scan(&p.Code, &p.RatePerChar, &p.MinimumPrice, &p.CharsPerHour)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan language profiles: %w", err)
	}

	return profiles, nil
}

// RateTable loads all profiles into a validated rate table.
func (r *LanguageRepository) RateTable(ctx context.Context) (*domain.RateTable, error) {
	profiles, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("language_profiles table is empty")
	}

	table, err := domain.NewRateTable(profiles)
	if err != nil {
		return nil, fmt.Errorf("invalid language profile in database: %w", err)
	}
	return table, nil
}

// Upsert inserts the profiles or updates existing rows with the same code.
func (r *LanguageRepository) Upsert(ctx context.Context, profiles []domain.LanguageProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	builder := psql.
		Insert("language_profiles").
		Columns("code", "rate_per_char", "minimum_price", "chars_per_hour")
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return err
		}
		builder = builder.Values(p.Code, p.RatePerChar, p.MinimumPrice, p.CharsPerHour)
	}

	query, args, err := builder.
		Suffix(`ON CONFLICT (code) DO UPDATE SET
			rate_per_char = EXCLUDED.rate_per_char,
			minimum_price = EXCLUDED.minimum_price,
			chars_per_hour = EXCLUDED.chars_per_hour,
			updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert language profiles: %w", err)
	}
	return nil
}

// Delete removes a language profile. Missing codes are not an error.
func (r *LanguageRepository) Delete(ctx context.Context, code string) error {
	query, args, err := psql.
		Delete("language_profiles").
		Where(sq.Eq{"code": code}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete language profile: %w", err)
	}
	return nil
}
