package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/transquote/internal/config"
	"github.com/mtlprog/transquote/internal/database"
	"github.com/mtlprog/transquote/internal/domain"
	"github.com/mtlprog/transquote/internal/repository"
	"github.com/mtlprog/transquote/internal/service"
)

func loadConfigFile(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadConfig reads the config file and, when a database URL is given,
// replaces the configured languages with the database rows.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := loadConfigFile(c)
	if err != nil {
		return config.Config{}, err
	}

	databaseURL := c.String("database-url")
	if databaseURL == "" {
		slog.Info("using configured language rates", "languages", cfg.Rates.Len())
		return cfg, nil
	}

	rates, err := loadRates(c.Context, databaseURL)
	if err != nil {
		return config.Config{}, err
	}
	slog.Info("using language rates from database", "languages", rates.Len())
	cfg.Rates = rates
	return cfg, nil
}

func loadRates(ctx context.Context, databaseURL string) (*domain.RateTable, error) {
	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	rates, err := repository.NewLanguageRepository(db.Pool()).RateTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load language rates: %w", err)
	}
	return rates, nil
}

func newQuoteService(cfg config.Config) *service.QuoteService {
	surcharge := service.NewSurcharge(cfg.DiscountTypes, cfg.Tax)
	return service.NewQuoteService(
		service.NewPriceQuoter(cfg.Rates, surcharge),
		service.NewDeadlineEngine(cfg.Rates, surcharge, cfg.MinDuration, cfg.Location),
		cfg.DefaultSchedule,
	)
}
