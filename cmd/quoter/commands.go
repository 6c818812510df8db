package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/transquote/internal/database"
	"github.com/mtlprog/transquote/internal/domain"
	"github.com/mtlprog/transquote/internal/handler/dto"
	"github.com/mtlprog/transquote/internal/repository"
)

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "Print the price and deadline for one job",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "language", Usage: "Source language code", Required: true},
			&cli.StringFlag{Name: "mimetype", Value: "doc", Usage: "Document type"},
			&cli.IntFlag{Name: "count", Usage: "Number of characters", Required: true},
			&cli.IntSliceFlag{Name: "work-hours", Usage: "Shift hours as start,end (e.g. 10,15)"},
			&cli.IntSliceFlag{Name: "work-days", Usage: "Work days as start,end with 0 = Sunday (e.g. 1,5)"},
			&cli.TimestampFlag{Name: "at", Layout: time.RFC3339, Usage: "Job start as RFC 3339; now when omitted"},
		},
		Action: runQuote,
	}
}

func runQuote(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	body := dto.CalculateRequest{
		Language:  c.String("language"),
		Mimetype:  c.String("mimetype"),
		Count:     float64(c.Int("count")),
		WorkHours: optionalInts(c, "work-hours"),
		WorkDays:  optionalInts(c, "work-days"),
	}
	if c.IsSet("at") {
		body.ReferenceTime = c.Timestamp("at")
	}
	req, err := body.ToDomain(cfg.DefaultSchedule)
	if err != nil {
		return fmt.Errorf("invalid quote request: %w", err)
	}

	quote, err := newQuoteService(cfg).Quote(c.Context, req)
	if err != nil {
		return fmt.Errorf("quote failed: %w", err)
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewCalculateResponse(quote))
}

// optionalInts distinguishes an unset slice flag from an empty one.
func optionalInts(c *cli.Context, name string) []int {
	if !c.IsSet(name) {
		return nil
	}
	v := c.IntSlice(name)
	if v == nil {
		v = []int{}
	}
	return v
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database migrations",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "sync-languages",
				Usage: "Upsert the config file languages into the database after migrating",
			},
		},
		Action: runMigrate,
	}
}

func runMigrate(c *cli.Context) error {
	ctx := c.Context

	databaseURL := c.String("database-url")
	if databaseURL == "" {
		return fmt.Errorf("--database-url is required")
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if !c.Bool("sync-languages") {
		return nil
	}

	cfg, err := loadConfigFile(c)
	if err != nil {
		return err
	}
	profiles := cfg.Rates.Profiles()
	if err := repository.NewLanguageRepository(db.Pool()).Upsert(ctx, profiles); err != nil {
		return fmt.Errorf("failed to sync languages: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "synced %d languages\n", len(profiles))
	return nil
}

func languagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "Inspect or edit language rates",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Print the active language rates",
				Action: runLanguagesList,
			},
			{
				Name:      "delete",
				Usage:     "Remove a language from the database",
				ArgsUsage: "CODE",
				Action:    runLanguagesDelete,
			},
		},
	}
}

func runLanguagesList(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	return printLanguages(c, cfg.Rates.Profiles())
}

func printLanguages(c *cli.Context, profiles []domain.LanguageProfile) error {
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tRATE/CHAR\tMINIMUM\tCHARS/HOUR")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g\n", p.Code, p.RatePerChar, p.MinimumPrice, p.CharsPerHour)
	}
	return tw.Flush()
}

func runLanguagesDelete(c *cli.Context) error {
	ctx := c.Context

	code := c.Args().First()
	if code == "" {
		return fmt.Errorf("language code is required")
	}
	databaseURL := c.String("database-url")
	if databaseURL == "" {
		return fmt.Errorf("--database-url is required")
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := repository.NewLanguageRepository(db.Pool()).Delete(ctx, code); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deleted %s\n", code)
	return nil
}
