// Package report runs the compliance engine over a census roster for one
// as-of date and assembles the audit report: roster summary, per-facility
// rollup, top-risk list, and the full per-patient set.
package report

import (
	"sort"
	"time"

	"github.com/phsofohio-maker/harmony-development-sub000/internal/census"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/compliance"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/dates"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/model"
)

// PatientCompliance is one patient's row in the report. Dates are rendered
// M/D/YYYY with "N/A" for absent values so the row is display-ready.
type PatientCompliance struct {
	PatientID         string   `json:"patient_id"`
	Facility          string   `json:"facility"`
	CurrentPeriod     int      `json:"current_period"`
	PeriodName        string   `json:"period_name"`
	CertificationEnd  string   `json:"certification_end"`
	NotifyDate        string   `json:"notify_date"`
	DaysUntilCertEnd  int      `json:"days_until_cert_end"`
	CertOverdue       bool     `json:"cert_overdue"`
	CertUrgency       string   `json:"cert_urgency"`
	RequiresF2F       bool     `json:"requires_f2f"`
	F2FReason         string   `json:"f2f_reason,omitempty"`
	F2FDeadline       string   `json:"f2f_deadline,omitempty"`
	F2FOverdue        bool     `json:"f2f_overdue"`
	HUV1Status        string   `json:"huv1_status"`
	HUV1WindowEnd     string   `json:"huv1_window_end"`
	HUV2Status        string   `json:"huv2_status"`
	HUV2WindowEnd     string   `json:"huv2_window_end"`
	RequiredDocuments []string `json:"required_documents,omitempty"`
	OverallUrgency    string   `json:"overall_urgency"`
	HasIssues         bool     `json:"has_issues"`
	IncompleteData    bool     `json:"incomplete_data"`
}

// FacilitySummary rolls urgency counts up per facility.
type FacilitySummary struct {
	Facility          string `json:"facility"`
	Patients          int    `json:"patients"`
	NormalCount       int    `json:"normal_count"`
	MediumCount       int    `json:"medium_count"`
	HighCount         int    `json:"high_count"`
	CriticalCount     int    `json:"critical_count"`
	CertOverdueCount  int    `json:"cert_overdue_count"`
	VisitOverdueCount int    `json:"visit_overdue_count"`
}

// Summary is the roster-wide rollup for one audit run.
type Summary struct {
	AsOf                   string `json:"as_of"`
	TotalPatients          int    `json:"total_patients"`
	NormalCount            int    `json:"normal_count"`
	MediumCount            int    `json:"medium_count"`
	HighCount              int    `json:"high_count"`
	CriticalCount          int    `json:"critical_count"`
	CertOverdueCount       int    `json:"cert_overdue_count"`
	F2FOverdueCount        int    `json:"f2f_overdue_count"`
	VisitOverdueCount      int    `json:"visit_overdue_count"`
	VisitActionNeededCount int    `json:"visit_action_needed_count"`
	IncompleteCount        int    `json:"incomplete_count"`
	InvalidRows            int    `json:"invalid_rows"`
}

// Report is the full output of one audit run.
type Report struct {
	Summary         Summary             `json:"summary"`
	FacilitySummary []FacilitySummary   `json:"facility_summary"`
	TopRisks        []PatientCompliance `json:"top_risks"`
	Patients        []PatientCompliance `json:"patients"`
}

// Build evaluates every patient in the roster against one as-of date and
// assembles the report. Patients are ordered most urgent first (tier rank,
// then days until certification end, then patient id for determinism).
func Build(roster census.Roster, asOf time.Time, topN int) Report {
	asOf = dates.DateOnly(asOf)

	rows := make([]PatientCompliance, 0, len(roster.Patients))
	facilityBuckets := map[string][]PatientCompliance{}
	summary := Summary{
		AsOf:          asOf.Format("2006-01-02"),
		TotalPatients: len(roster.Patients),
		InvalidRows:   roster.InvalidRows,
	}

	for _, snapshot := range roster.Patients {
		row := buildRow(compliance.Evaluate(snapshot, asOf))
		rows = append(rows, row)

		switch model.Tier(row.OverallUrgency) {
		case model.TierNormal:
			summary.NormalCount++
		case model.TierMedium:
			summary.MediumCount++
		case model.TierHigh:
			summary.HighCount++
		case model.TierCritical:
			summary.CriticalCount++
		}
		if row.CertOverdue {
			summary.CertOverdueCount++
		}
		if row.F2FOverdue {
			summary.F2FOverdueCount++
		}
		if row.HUV1Status == string(model.VisitOverdue) || row.HUV2Status == string(model.VisitOverdue) {
			summary.VisitOverdueCount++
		}
		if row.HUV1Status == string(model.VisitActionNeeded) || row.HUV2Status == string(model.VisitActionNeeded) {
			summary.VisitActionNeededCount++
		}
		if row.IncompleteData {
			summary.IncompleteCount++
		}

		facilityKey := row.Facility
		if facilityKey == "" {
			facilityKey = "Unassigned"
		}
		facilityBuckets[facilityKey] = append(facilityBuckets[facilityKey], row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		rankI, _ := model.TierRank(model.Tier(rows[i].OverallUrgency))
		rankJ, _ := model.TierRank(model.Tier(rows[j].OverallUrgency))
		if rankI != rankJ {
			return rankI > rankJ
		}
		// Rows without a computed schedule carry a meaningless zero delta;
		// they sort after patients with a real deadline in the same tier.
		if rows[i].IncompleteData != rows[j].IncompleteData {
			return !rows[i].IncompleteData
		}
		if rows[i].DaysUntilCertEnd != rows[j].DaysUntilCertEnd {
			return rows[i].DaysUntilCertEnd < rows[j].DaysUntilCertEnd
		}
		return rows[i].PatientID < rows[j].PatientID
	})

	topRisks := rows
	if topN > 0 && len(topRisks) > topN {
		topRisks = topRisks[:topN]
	}

	facilitySummary := buildFacilitySummary(facilityBuckets)
	if len(facilitySummary) > 1 {
		sort.Slice(facilitySummary, func(i, j int) bool {
			return facilitySummary[i].CriticalCount+facilitySummary[i].HighCount >
				facilitySummary[j].CriticalCount+facilitySummary[j].HighCount
		})
	}

	return Report{
		Summary:         summary,
		FacilitySummary: facilitySummary,
		TopRisks:        topRisks,
		Patients:        rows,
	}
}

func buildRow(result compliance.Summary) PatientCompliance {
	row := PatientCompliance{
		PatientID:        result.PatientID,
		Facility:         result.Facility,
		PeriodName:       "Unknown",
		CertificationEnd: dates.FormatDate(time.Time{}),
		NotifyDate:       dates.FormatDate(time.Time{}),
		CertUrgency:      string(model.TierNormal),
		HUV1Status:       "unknown",
		HUV1WindowEnd:    dates.FormatDate(time.Time{}),
		HUV2Status:       "unknown",
		HUV2WindowEnd:    dates.FormatDate(time.Time{}),
		OverallUrgency:   string(result.OverallUrgency),
		HasIssues:        result.HasIssues,
		IncompleteData:   result.Certification == nil || result.Visits == nil,
	}

	if cert := result.Certification; cert != nil {
		row.CurrentPeriod = cert.Period.CurrentPeriod
		row.PeriodName = cert.Rule.ShortName
		row.CertificationEnd = dates.FormatDate(cert.CertificationEndDate)
		row.NotifyDate = dates.FormatDate(cert.NotifyDate)
		row.DaysUntilCertEnd = cert.DaysUntilCertEnd
		row.CertOverdue = cert.IsOverdue
		row.CertUrgency = string(cert.Urgency)
		row.RequiresF2F = cert.RequiresF2F
		row.F2FReason = cert.F2FReason
		row.F2FOverdue = cert.F2FOverdue
		if cert.RequiresF2F {
			row.F2FDeadline = dates.FormatDate(cert.F2FDeadline)
		}
		for _, doc := range cert.RequiredDocuments {
			row.RequiredDocuments = append(row.RequiredDocuments, string(doc))
		}
	}

	if visitResult := result.Visits; visitResult != nil {
		row.HUV1Status = string(visitResult.Visit1.Status)
		row.HUV1WindowEnd = dates.FormatDate(visitResult.Visit1.WindowEnd)
		row.HUV2Status = string(visitResult.Visit2.Status)
		row.HUV2WindowEnd = dates.FormatDate(visitResult.Visit2.WindowEnd)
	}

	return row
}

func buildFacilitySummary(buckets map[string][]PatientCompliance) []FacilitySummary {
	result := make([]FacilitySummary, 0, len(buckets))
	for facility, entries := range buckets {
		facilitySummary := FacilitySummary{Facility: facility, Patients: len(entries)}
		for _, entry := range entries {
			switch model.Tier(entry.OverallUrgency) {
			case model.TierNormal:
				facilitySummary.NormalCount++
			case model.TierMedium:
				facilitySummary.MediumCount++
			case model.TierHigh:
				facilitySummary.HighCount++
			case model.TierCritical:
				facilitySummary.CriticalCount++
			}
			if entry.CertOverdue {
				facilitySummary.CertOverdueCount++
			}
			if entry.HUV1Status == string(model.VisitOverdue) || entry.HUV2Status == string(model.VisitOverdue) {
				facilitySummary.VisitOverdueCount++
			}
		}
		result = append(result, facilitySummary)
	}
	return result
}
