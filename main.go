package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/phsofohio-maker/harmony-development-sub000/internal/census"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/dates"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/report"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/store"
)

const defaultTopN = 10

func main() {
	inputPath := flag.String("input", "", "Path to patient census CSV")
	asOf := flag.String("as-of", "", "Report as-of date (YYYY-MM-DD)")
	topN := flag.Int("top", defaultTopN, "Top N highest-risk patients to show")
	jsonOut := flag.String("json", "", "Optional JSON output path")
	alertsOut := flag.String("alerts", "", "Optional CSV output for alert tiers")
	minTier := flag.String("min-tier", "high", "Minimum urgency tier for alerts (medium, high, critical)")
	dbEnabled := flag.Bool("db", false, "Store report in Postgres (requires HARMONY_COMPLIANCE_DB_URL or DATABASE_URL)")
	dbSchema := flag.String("db-schema", "harmony_compliance", "Postgres schema for audit tables")
	dbTag := flag.String("db-tag", "", "Optional label for this audit run")
	initDB := flag.Bool("init-db", false, "Initialize database schema and seed data if empty")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	logger := newLogger(*verbose)

	if *inputPath == "" {
		exitWithError(errors.New("--input is required"))
	}

	// The as-of date is captured once here; every sub-calculation receives it
	// as a parameter so a run that straddles midnight stays consistent.
	asOfDate := time.Now()
	if *asOf != "" {
		parsed, err := dates.ParseDate(*asOf)
		if err != nil {
			exitWithError(fmt.Errorf("invalid --as-of date: %w", err))
		}
		asOfDate = parsed
	}
	asOfDate = dates.DateOnly(asOfDate)

	roster, err := census.Load(*inputPath, logger)
	if err != nil {
		exitWithError(err)
	}
	logger.Debug().Int("patients", len(roster.Patients)).Int("invalid_rows", roster.InvalidRows).Msg("census loaded")

	auditReport := report.Build(roster, asOfDate, *topN)

	report.Print(auditReport, *inputPath)

	if *jsonOut != "" {
		if err := report.WriteJSON(auditReport, *jsonOut); err != nil {
			exitWithError(err)
		}
		fmt.Printf("\nJSON report saved to %s\n", *jsonOut)
	}

	if *alertsOut != "" {
		if err := report.WriteAlertsCSV(auditReport, *alertsOut, *minTier); err != nil {
			exitWithError(err)
		}
		fmt.Printf("Alert CSV saved to %s\n", *alertsOut)
	}

	if *dbEnabled || *initDB {
		dbURL := store.URLFromEnv()
		if dbURL == "" {
			exitWithError(errors.New("database URL missing; set HARMONY_COMPLIANCE_DB_URL or DATABASE_URL"))
		}
		cfg := store.Config{
			URL:    dbURL,
			Schema: *dbSchema,
			Tag:    *dbTag,
		}
		seeded := false
		if *initDB {
			runID, err := store.Seed(auditReport, cfg, logger)
			if err != nil {
				exitWithError(err)
			}
			if runID != "" {
				seeded = true
				fmt.Printf("\nSeeded Postgres with initial audit run (run_id=%s)\n", runID)
			}
		}
		if *dbEnabled {
			if seeded {
				fmt.Println("Skipped duplicate insert; current report already used for seed.")
			} else {
				runID, err := store.StoreReport(auditReport, cfg, logger)
				if err != nil {
					exitWithError(err)
				}
				fmt.Printf("\nStored audit run in Postgres (run_id=%s)\n", runID)
			}
		}
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
