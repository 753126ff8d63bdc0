package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/phsofohio-maker/harmony-development-sub000/internal/model"
)

// Print writes the human-readable report to stdout.
func Print(report Report, inputPath string) {
	fmt.Println("Harmony Hospice Compliance Audit")
	fmt.Println(strings.Repeat("=", 38))
	fmt.Printf("Input: %s\n", filepath.Base(inputPath))
	fmt.Printf("As of: %s\n", report.Summary.AsOf)
	fmt.Printf("Total patients: %d\n", report.Summary.TotalPatients)
	fmt.Printf("Normal: %d | Medium: %d | High: %d | Critical: %d\n",
		report.Summary.NormalCount,
		report.Summary.MediumCount,
		report.Summary.HighCount,
		report.Summary.CriticalCount,
	)
	fmt.Printf("Cert overdue: %d | F2F overdue: %d | Visits overdue: %d | Visits due: %d\n",
		report.Summary.CertOverdueCount,
		report.Summary.F2FOverdueCount,
		report.Summary.VisitOverdueCount,
		report.Summary.VisitActionNeededCount,
	)
	if report.Summary.IncompleteCount > 0 {
		fmt.Printf("Patients with incomplete data: %d\n", report.Summary.IncompleteCount)
	}
	if report.Summary.InvalidRows > 0 {
		fmt.Printf("Invalid rows skipped: %d\n", report.Summary.InvalidRows)
	}

	fmt.Println("\nTop risks")
	fmt.Println(strings.Repeat("-", 38))
	if len(report.TopRisks) == 0 {
		fmt.Println("No patients found.")
	} else {
		for _, entry := range report.TopRisks {
			facility := entry.Facility
			if facility == "" {
				facility = "Unassigned"
			}
			fmt.Printf("%s | %s | %s | cert ends %s (%+d days) | HUV1 %s | HUV2 %s | %s\n",
				entry.PatientID,
				facility,
				entry.PeriodName,
				entry.CertificationEnd,
				entry.DaysUntilCertEnd,
				entry.HUV1Status,
				entry.HUV2Status,
				entry.OverallUrgency,
			)
			if entry.F2FOverdue {
				fmt.Printf("  F2F overdue (%s; deadline %s)\n", entry.F2FReason, entry.F2FDeadline)
			}
		}
	}

	if len(report.FacilitySummary) > 0 {
		fmt.Println("\nFacility summary")
		fmt.Println(strings.Repeat("-", 38))
		for _, entry := range report.FacilitySummary {
			fmt.Printf("%s | patients %d | normal %d | medium %d | high %d | critical %d | cert overdue %d | visits overdue %d\n",
				entry.Facility,
				entry.Patients,
				entry.NormalCount,
				entry.MediumCount,
				entry.HighCount,
				entry.CriticalCount,
				entry.CertOverdueCount,
				entry.VisitOverdueCount,
			)
		}
	}
}

// WriteJSON saves the full report to path.
func WriteJSON(report Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteAlertsCSV saves the patients at or above minTier to path, most urgent
// first.
func WriteAlertsCSV(report Report, path string, minTier string) error {
	threshold, ok := model.TierRank(model.Tier(minTier))
	if !ok {
		return fmt.Errorf("invalid --min-tier value: %s", minTier)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{
		"patient_id",
		"facility",
		"period",
		"certification_end",
		"days_until_cert_end",
		"cert_overdue",
		"f2f_overdue",
		"f2f_reason",
		"huv1_status",
		"huv2_status",
		"overall_urgency",
	}); err != nil {
		return err
	}

	for _, entry := range report.Patients {
		rank, _ := model.TierRank(model.Tier(entry.OverallUrgency))
		if rank < threshold {
			continue
		}
		record := []string{
			entry.PatientID,
			entry.Facility,
			entry.PeriodName,
			entry.CertificationEnd,
			strconv.Itoa(entry.DaysUntilCertEnd),
			strconv.FormatBool(entry.CertOverdue),
			strconv.FormatBool(entry.F2FOverdue),
			entry.F2FReason,
			entry.HUV1Status,
			entry.HUV2Status,
			entry.OverallUrgency,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
