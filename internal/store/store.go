// Package store persists audit runs to Postgres so compliance posture can be
// trended across runs. Each run writes one compliance_runs row plus the
// per-patient and per-facility detail in a single transaction.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/phsofohio-maker/harmony-development-sub000/internal/report"
)

// Config carries the connection settings for one store operation.
type Config struct {
	URL    string
	Schema string
	Tag    string
}

// URLFromEnv resolves the database URL, preferring the tool-specific variable.
func URLFromEnv() string {
	if value := strings.TrimSpace(os.Getenv("HARMONY_COMPLIANCE_DB_URL")); value != "" {
		return value
	}
	return strings.TrimSpace(os.Getenv("DATABASE_URL"))
}

func sanitizeSchema(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("db schema is required")
	}
	valid := regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	if !valid.MatchString(value) {
		return "", fmt.Errorf("invalid schema name: %s", value)
	}
	return value, nil
}

// Seed initializes the schema and stores the report only when no prior runs
// exist. Returns an empty run id when data was already present.
func Seed(auditReport report.Report, cfg Config, logger zerolog.Logger) (string, error) {
	schema, err := sanitizeSchema(cfg.Schema)
	if err != nil {
		return "", err
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return "", err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return "", err
	}

	if err := ensureSchema(ctx, db, schema); err != nil {
		return "", err
	}

	var count int
	if err := db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s.compliance_runs`, schema)).Scan(&count); err != nil {
		return "", err
	}
	if count > 0 {
		logger.Info().Int("existing_runs", count).Msg("compliance data already present; skipping seed")
		return "", nil
	}

	return storeReportTx(ctx, db, auditReport, schema, cfg.Tag)
}

// StoreReport initializes the schema if needed and stores one audit run.
func StoreReport(auditReport report.Report, cfg Config, logger zerolog.Logger) (string, error) {
	schema, err := sanitizeSchema(cfg.Schema)
	if err != nil {
		return "", err
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return "", err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return "", err
	}

	if err := ensureSchema(ctx, db, schema); err != nil {
		return "", err
	}

	runID, err := storeReportTx(ctx, db, auditReport, schema, cfg.Tag)
	if err != nil {
		return "", err
	}
	logger.Debug().Str("run_id", runID).Int("patients", len(auditReport.Patients)).Msg("stored audit run")
	return runID, nil
}

func storeReportTx(ctx context.Context, db *sql.DB, auditReport report.Report, schema string, tag string) (string, error) {
	runID := uuid.New()
	asOf, err := time.Parse("2006-01-02", auditReport.Summary.AsOf)
	if err != nil {
		return "", err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s.compliance_runs (
			id, as_of, total_patients, normal_count, medium_count,
			high_count, critical_count, cert_overdue_count, f2f_overdue_count,
			visit_overdue_count, visit_action_needed_count, incomplete_count,
			invalid_rows, run_tag
		) VALUES (
			$1,$2,$3,$4,$5,
			$6,$7,$8,$9,
			$10,$11,$12,
			$13,$14
		)`, schema),
		runID,
		asOf,
		auditReport.Summary.TotalPatients,
		auditReport.Summary.NormalCount,
		auditReport.Summary.MediumCount,
		auditReport.Summary.HighCount,
		auditReport.Summary.CriticalCount,
		auditReport.Summary.CertOverdueCount,
		auditReport.Summary.F2FOverdueCount,
		auditReport.Summary.VisitOverdueCount,
		auditReport.Summary.VisitActionNeededCount,
		auditReport.Summary.IncompleteCount,
		auditReport.Summary.InvalidRows,
		nullString(tag),
	)
	if err != nil {
		_ = tx.Rollback()
		return "", err
	}

	insertPatientSQL := fmt.Sprintf(`
		INSERT INTO %s.compliance_patients (
			id, run_id, patient_id, facility, current_period, period_name,
			certification_end, days_until_cert_end, cert_overdue, cert_urgency,
			requires_f2f, f2f_reason, f2f_overdue, huv1_status, huv2_status,
			overall_urgency, has_issues, incomplete_data
		) VALUES (
			$1,$2,$3,$4,$5,$6,
			$7,$8,$9,$10,
			$11,$12,$13,$14,$15,
			$16,$17,$18
		)`, schema)

	for _, entry := range auditReport.Patients {
		_, err = tx.ExecContext(ctx, insertPatientSQL,
			uuid.New(),
			runID,
			entry.PatientID,
			nullString(entry.Facility),
			entry.CurrentPeriod,
			entry.PeriodName,
			entry.CertificationEnd,
			entry.DaysUntilCertEnd,
			entry.CertOverdue,
			entry.CertUrgency,
			entry.RequiresF2F,
			nullString(entry.F2FReason),
			entry.F2FOverdue,
			entry.HUV1Status,
			entry.HUV2Status,
			entry.OverallUrgency,
			entry.HasIssues,
			entry.IncompleteData,
		)
		if err != nil {
			_ = tx.Rollback()
			return "", err
		}
	}

	insertFacilitySQL := fmt.Sprintf(`
		INSERT INTO %s.compliance_facility_summary (
			id, run_id, facility, patients, normal_count, medium_count,
			high_count, critical_count, cert_overdue_count, visit_overdue_count
		) VALUES (
			$1,$2,$3,$4,$5,$6,
			$7,$8,$9,$10
		)`, schema)

	for _, entry := range auditReport.FacilitySummary {
		_, err = tx.ExecContext(ctx, insertFacilitySQL,
			uuid.New(),
			runID,
			entry.Facility,
			entry.Patients,
			entry.NormalCount,
			entry.MediumCount,
			entry.HighCount,
			entry.CriticalCount,
			entry.CertOverdueCount,
			entry.VisitOverdueCount,
		)
		if err != nil {
			_ = tx.Rollback()
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID.String(), nil
}

func ensureSchema(ctx context.Context, db *sql.DB, schema string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema)); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.compliance_runs (
			id uuid PRIMARY KEY,
			as_of date NOT NULL,
			total_patients integer NOT NULL,
			normal_count integer NOT NULL,
			medium_count integer NOT NULL,
			high_count integer NOT NULL,
			critical_count integer NOT NULL,
			cert_overdue_count integer NOT NULL,
			f2f_overdue_count integer NOT NULL,
			visit_overdue_count integer NOT NULL,
			visit_action_needed_count integer NOT NULL,
			incomplete_count integer NOT NULL,
			invalid_rows integer NOT NULL,
			run_tag text,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.compliance_patients (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.compliance_runs(id) ON DELETE CASCADE,
			patient_id text NOT NULL,
			facility text,
			current_period integer NOT NULL,
			period_name text NOT NULL,
			certification_end text NOT NULL,
			days_until_cert_end integer NOT NULL,
			cert_overdue boolean NOT NULL,
			cert_urgency text NOT NULL,
			requires_f2f boolean NOT NULL,
			f2f_reason text,
			f2f_overdue boolean NOT NULL,
			huv1_status text NOT NULL,
			huv2_status text NOT NULL,
			overall_urgency text NOT NULL,
			has_issues boolean NOT NULL,
			incomplete_data boolean NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.compliance_facility_summary (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.compliance_runs(id) ON DELETE CASCADE,
			facility text NOT NULL,
			patients integer NOT NULL,
			normal_count integer NOT NULL,
			medium_count integer NOT NULL,
			high_count integer NOT NULL,
			critical_count integer NOT NULL,
			cert_overdue_count integer NOT NULL,
			visit_overdue_count integer NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_compliance_patients_run_idx ON %s.compliance_patients (run_id)`, schema, schema))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_compliance_patients_urgency_idx ON %s.compliance_patients (overall_urgency)`, schema, schema))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_compliance_facility_summary_run_idx ON %s.compliance_facility_summary (run_id)`, schema, schema))
	return err
}

func nullString(value string) sql.NullString {
	if strings.TrimSpace(value) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
