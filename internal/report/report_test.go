package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phsofohio-maker/harmony-development-sub000/internal/census"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/dates"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/model"
)

var asOf = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func testRoster() census.Roster {
	return census.Roster{
		Patients: []model.PatientSnapshot{
			// Quiet: early period 1, visits done.
			model.NewPatientSnapshot(model.PatientSnapshot{
				PatientID:     "P-QUIET",
				Facility:      "Westside",
				AdmissionDate: dates.AddDays(asOf, -40),
				StartOfCare:   dates.AddDays(asOf, -40),
				HUV1Completed: true,
				HUV2Completed: true,
			}),
			// Critical: readmitted into period 3 with the F2F outstanding.
			model.NewPatientSnapshot(model.PatientSnapshot{
				PatientID:             "P-F2F",
				Facility:              "Eastside",
				AdmissionDate:         dates.AddDays(asOf, -10),
				StartOfCare:           dates.AddDays(asOf, -10),
				StartingBenefitPeriod: 3,
				IsReadmission:         true,
				HUV1Completed:         true,
			}),
			// High: HUV1 window open.
			model.NewPatientSnapshot(model.PatientSnapshot{
				PatientID:     "P-HUV",
				Facility:      "Westside",
				AdmissionDate: dates.AddDays(asOf, -7),
				StartOfCare:   dates.AddDays(asOf, -7),
			}),
			// Incomplete: no admission date on record.
			model.NewPatientSnapshot(model.PatientSnapshot{
				PatientID: "P-NODATA",
				Facility:  "Eastside",
			}),
		},
		InvalidRows: 2,
	}
}

func TestBuildSummaryCounts(t *testing.T) {
	built := Build(testRoster(), asOf, 10)

	if built.Summary.TotalPatients != 4 {
		t.Fatalf("expected 4 patients, got %d", built.Summary.TotalPatients)
	}
	if built.Summary.CriticalCount != 1 || built.Summary.HighCount != 1 {
		t.Fatalf("unexpected tier counts %+v", built.Summary)
	}
	if built.Summary.NormalCount != 2 {
		t.Fatalf("expected 2 normal (quiet + no data), got %d", built.Summary.NormalCount)
	}
	if built.Summary.F2FOverdueCount != 1 {
		t.Fatalf("expected 1 F2F overdue, got %d", built.Summary.F2FOverdueCount)
	}
	if built.Summary.IncompleteCount != 1 {
		t.Fatalf("expected 1 incomplete, got %d", built.Summary.IncompleteCount)
	}
	if built.Summary.InvalidRows != 2 {
		t.Fatalf("expected invalid rows carried through, got %d", built.Summary.InvalidRows)
	}
	if built.Summary.AsOf != "2026-06-15" {
		t.Fatalf("unexpected as-of %q", built.Summary.AsOf)
	}
}

func TestBuildOrdering(t *testing.T) {
	built := Build(testRoster(), asOf, 2)

	if built.Patients[0].PatientID != "P-F2F" {
		t.Fatalf("expected most urgent patient first, got %s", built.Patients[0].PatientID)
	}
	if built.Patients[1].PatientID != "P-HUV" {
		t.Fatalf("expected high tier second, got %s", built.Patients[1].PatientID)
	}
	if len(built.TopRisks) != 2 {
		t.Fatalf("expected top list capped at 2, got %d", len(built.TopRisks))
	}

	// Within the normal tier the patient with a real deadline outranks the
	// one with no data; the zero-value delta must not jump the queue.
	if built.Patients[2].PatientID != "P-QUIET" {
		t.Fatalf("expected patient with runway third, got %s", built.Patients[2].PatientID)
	}
	if built.Patients[3].PatientID != "P-NODATA" {
		t.Fatalf("expected no-data patient last, got %s", built.Patients[3].PatientID)
	}
}

func TestBuildFacilityRollupMatchesSummary(t *testing.T) {
	built := Build(testRoster(), asOf, 10)

	var patients, critical, high, medium, normal int
	for _, facility := range built.FacilitySummary {
		patients += facility.Patients
		critical += facility.CriticalCount
		high += facility.HighCount
		medium += facility.MediumCount
		normal += facility.NormalCount
	}
	if patients != built.Summary.TotalPatients {
		t.Fatalf("facility patients %d != total %d", patients, built.Summary.TotalPatients)
	}
	if critical != built.Summary.CriticalCount || high != built.Summary.HighCount ||
		medium != built.Summary.MediumCount || normal != built.Summary.NormalCount {
		t.Fatal("facility tier counts do not sum to the roster summary")
	}
}

func TestBuildRowContent(t *testing.T) {
	built := Build(testRoster(), asOf, 10)

	var f2fRow, noDataRow *PatientCompliance
	for i := range built.Patients {
		switch built.Patients[i].PatientID {
		case "P-F2F":
			f2fRow = &built.Patients[i]
		case "P-NODATA":
			noDataRow = &built.Patients[i]
		}
	}
	if f2fRow == nil || noDataRow == nil {
		t.Fatal("expected both rows present")
	}

	if f2fRow.PeriodName != "3rd 60-Day" {
		t.Fatalf("unexpected period name %q", f2fRow.PeriodName)
	}
	if !f2fRow.F2FOverdue || f2fRow.F2FReason != "Readmission + Period 3+" {
		t.Fatalf("unexpected F2F fields %+v", f2fRow)
	}
	if f2fRow.HUV1Status != string(model.VisitComplete) {
		t.Fatalf("expected complete HUV1, got %s", f2fRow.HUV1Status)
	}
	if len(f2fRow.RequiredDocuments) != 2 || f2fRow.RequiredDocuments[0] != "60DAY" {
		t.Fatalf("unexpected documents %v", f2fRow.RequiredDocuments)
	}

	if !noDataRow.IncompleteData {
		t.Fatal("expected incomplete data flag")
	}
	if noDataRow.CertificationEnd != "N/A" || noDataRow.PeriodName != "Unknown" {
		t.Fatalf("expected N/A placeholders, got %+v", noDataRow)
	}
}

func TestWriteAlertsCSVMinTier(t *testing.T) {
	built := Build(testRoster(), asOf, 10)
	path := filepath.Join(t.TempDir(), "alerts.csv")

	if err := WriteAlertsCSV(built, path, "high"); err != nil {
		t.Fatalf("write alerts: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open alerts: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read alerts: %v", err)
	}
	// Header plus the critical and high rows only.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "P-F2F" || rows[2][0] != "P-HUV" {
		t.Fatalf("unexpected alert ordering: %v", rows)
	}

	if err := WriteAlertsCSV(built, path, "someday"); err == nil {
		t.Fatal("expected error for invalid min tier")
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	built := Build(testRoster(), asOf, 10)
	path := filepath.Join(t.TempDir(), "report.json")

	if err := WriteJSON(built, path); err != nil {
		t.Fatalf("write json: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty JSON report")
	}
}
