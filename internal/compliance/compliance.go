// Package compliance merges the certification schedule and the HOPE visit
// windows into one urgency-ranked summary per patient.
package compliance

import (
	"time"

	"github.com/phsofohio-maker/harmony-development-sub000/internal/certification"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/dates"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/model"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/visits"
)

// Summary is the aggregate compliance picture for one patient on one day.
// Either sub-result may be nil when its anchor date is absent; the summary is
// still produced from whatever is known.
type Summary struct {
	PatientID      string
	Facility       string
	AsOf           time.Time
	Certification  *certification.Record
	Visits         *visits.Result
	OverallUrgency model.Tier
	HasIssues      bool
}

// Evaluate computes the full compliance summary for a patient. The as-of date
// is normalized once here and threaded through every sub-calculation, so a
// computation that straddles midnight still sees a single consistent day.
func Evaluate(snapshot model.PatientSnapshot, today time.Time) Summary {
	today = dates.DateOnly(today)

	cert := certification.Calculate(snapshot, today)
	visitResult := visits.Calculate(snapshot, today)

	urgency := model.TierNormal
	if cert != nil {
		urgency = model.MaxTier(urgency, cert.Urgency)
		if cert.F2FOverdue {
			urgency = model.TierCritical
		}
	}
	if visitResult != nil {
		if visitResult.AnyOverdue {
			urgency = model.TierCritical
		} else if visitResult.AnyActionNeeded {
			urgency = model.MaxTier(urgency, model.TierHigh)
		}
	}

	return Summary{
		PatientID:      snapshot.PatientID,
		Facility:       snapshot.Facility,
		AsOf:           today,
		Certification:  cert,
		Visits:         visitResult,
		OverallUrgency: urgency,
		HasIssues:      urgency == model.TierCritical || urgency == model.TierHigh,
	}
}
