// Package census loads a patient-roster CSV into snapshots the compliance
// engine can evaluate. Column discovery is tolerant of header spelling; rows
// missing a patient id are counted invalid and skipped, and unparseable dates
// degrade to absent so the engine fails closed instead of crashing.
package census

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/phsofohio-maker/harmony-development-sub000/internal/dates"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/model"
)

// Roster is the parsed census plus the count of rows that could not be used.
type Roster struct {
	Patients    []model.PatientSnapshot
	InvalidRows int
}

// Load reads a roster CSV from path.
func Load(path string, logger zerolog.Logger) (Roster, error) {
	file, err := os.Open(path)
	if err != nil {
		return Roster{}, err
	}
	defer file.Close()
	return Parse(file, logger)
}

// Parse reads a roster CSV from an open reader.
func Parse(input io.Reader, logger zerolog.Logger) (Roster, error) {
	reader := csv.NewReader(input)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return Roster{}, fmt.Errorf("unable to read header: %w", err)
	}

	colMap := normalizeHeaders(headers)
	idIdx, ok := findColumn(colMap, []string{"patient_id", "patientid", "patient", "mrn", "record_number"})
	if !ok {
		return Roster{}, errors.New("missing patient_id column")
	}
	admissionIdx, ok := findColumn(colMap, []string{"admission_date", "admitted_at", "admission", "admit_date"})
	if !ok {
		return Roster{}, errors.New("missing admission_date column")
	}
	socIdx, _ := findColumn(colMap, []string{"start_of_care", "soc", "soc_date", "care_start_date"})
	periodIdx, _ := findColumn(colMap, []string{"benefit_period", "starting_benefit_period", "period"})
	priorDaysIdx, _ := findColumn(colMap, []string{"prior_hospice_days", "prior_days"})
	readmitIdx, _ := findColumn(colMap, []string{"readmission", "is_readmission", "readmit"})
	facilityIdx, _ := findColumn(colMap, []string{"facility", "location", "team", "branch"})
	f2fDoneIdx, _ := findColumn(colMap, []string{"f2f_completed", "f2f_done", "face_to_face_completed"})
	f2fDateIdx, _ := findColumn(colMap, []string{"f2f_date", "face_to_face_date"})
	huv1DoneIdx, _ := findColumn(colMap, []string{"huv1_completed", "huv1_done"})
	huv1DateIdx, _ := findColumn(colMap, []string{"huv1_date"})
	huv2DoneIdx, _ := findColumn(colMap, []string{"huv2_completed", "huv2_done"})
	huv2DateIdx, _ := findColumn(colMap, []string{"huv2_date"})

	roster := Roster{}
	line := 1

	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Roster{}, fmt.Errorf("unable to read CSV: %w", err)
		}
		line++
		if len(record) == 0 {
			continue
		}

		patientID := getValue(record, idIdx)
		if patientID == "" {
			roster.InvalidRows++
			logger.Warn().Int("line", line).Msg("skipping row without patient id")
			continue
		}

		snapshot := model.PatientSnapshot{
			PatientID: patientID,
			Facility:  getValue(record, facilityIdx),
		}

		if raw := getValue(record, admissionIdx); raw != "" {
			parsed, err := dates.ParseDate(raw)
			if err != nil {
				logger.Warn().Int("line", line).Str("patient_id", patientID).Str("value", raw).
					Msg("unparseable admission date; treating as absent")
			} else {
				snapshot.AdmissionDate = dates.DateOnly(parsed)
			}
		}
		snapshot.StartOfCare = optionalDate(record, socIdx, line, patientID, "start_of_care", logger)
		snapshot.F2FDate = optionalDate(record, f2fDateIdx, line, patientID, "f2f_date", logger)
		snapshot.HUV1Date = optionalDate(record, huv1DateIdx, line, patientID, "huv1_date", logger)
		snapshot.HUV2Date = optionalDate(record, huv2DateIdx, line, patientID, "huv2_date", logger)

		snapshot.StartingBenefitPeriod = parseInt(getValue(record, periodIdx), 1)
		snapshot.PriorHospiceDays = parseInt(getValue(record, priorDaysIdx), 0)
		snapshot.IsReadmission = parseBool(getValue(record, readmitIdx))
		snapshot.F2FCompleted = parseBool(getValue(record, f2fDoneIdx))
		snapshot.HUV1Completed = parseBool(getValue(record, huv1DoneIdx))
		snapshot.HUV2Completed = parseBool(getValue(record, huv2DoneIdx))

		roster.Patients = append(roster.Patients, model.NewPatientSnapshot(snapshot))
	}

	return roster, nil
}

func optionalDate(record []string, idx int, line int, patientID string, column string, logger zerolog.Logger) time.Time {
	raw := getValue(record, idx)
	if raw == "" {
		return time.Time{}
	}
	parsed, err := dates.ParseDate(raw)
	if err != nil {
		logger.Warn().Int("line", line).Str("patient_id", patientID).Str("column", column).Str("value", raw).
			Msg("unparseable date; treating as absent")
		return time.Time{}
	}
	return dates.DateOnly(parsed)
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "t", "yes", "y", "1":
		return true
	default:
		return false
	}
}

func normalizeHeaders(headers []string) map[string]int {
	result := make(map[string]int, len(headers))
	for idx, header := range headers {
		normalized := normalizeHeader(header)
		if _, exists := result[normalized]; !exists {
			result[normalized] = idx
		}
	}
	return result
}

func normalizeHeader(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.ReplaceAll(value, " ", "")
	value = strings.ReplaceAll(value, "_", "")
	value = strings.ReplaceAll(value, "-", "")
	return value
}

func findColumn(headers map[string]int, names []string) (int, bool) {
	for _, name := range names {
		if idx, ok := headers[normalizeHeader(name)]; ok {
			return idx, true
		}
	}
	return -1, false
}

func getValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
