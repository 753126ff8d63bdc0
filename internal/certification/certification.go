// Package certification computes the certification schedule and status for a
// single patient as of a single day: where the patient sits in their benefit
// period, when the certification window closes, which documents that window
// requires, and whether a Face-to-Face encounter gates it.
package certification

import (
	"time"

	"github.com/phsofohio-maker/harmony-development-sub000/internal/benefit"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/dates"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/model"
)

// NextPeriodPreview is the one-period-ahead lookahead. The next period's own
// readmission status is not knowable in advance, so its rule is resolved with
// readmission false.
type NextPeriodPreview struct {
	Period    int
	Rule      benefit.PeriodRule
	StartDate time.Time
}

// Record is the full certification-tracking result for one patient. It is
// rebuilt from scratch on every call and never written back anywhere.
type Record struct {
	Period benefit.PeriodState
	Rule   benefit.PeriodRule

	CertificationEndDate time.Time
	NotifyDate           time.Time
	DaysUntilCertEnd     int
	IsOverdue            bool
	Urgency              model.Tier

	RequiresF2F      bool
	F2FReason        string
	F2FDeadline      time.Time
	F2FDaysRemaining int
	F2FCompleted     bool
	F2FDate          time.Time
	F2FOverdue       bool

	RequiredDocuments []benefit.DocumentType
	NextPeriod        NextPeriodPreview
}

// Calculate derives the certification record for a patient as of today.
// Returns nil when the admission date is absent; callers treat that as
// insufficient data, not as a fault.
func Calculate(snapshot model.PatientSnapshot, today time.Time) *Record {
	if snapshot.AdmissionDate.IsZero() {
		return nil
	}

	admission := dates.DateOnly(snapshot.AdmissionDate)
	today = dates.DateOnly(today)

	// Prior hospice days advance the period clock, so every day offset is
	// anchored at the effective start of the benefit history rather than the
	// admission date; otherwise prior days would push the deadlines later.
	anchor := dates.AddDays(admission, -snapshot.PriorHospiceDays)
	daysSinceAdmission := dates.DaysBetween(anchor, today)
	state := benefit.ResolvePeriod(snapshot.StartingBenefitPeriod, daysSinceAdmission)
	rule := benefit.RuleFor(state.CurrentPeriod, snapshot.IsReadmission)

	certEnd := dates.AddDays(anchor, state.PeriodEndDayOffset)
	daysUntil := dates.DaysBetween(today, certEnd)

	record := &Record{
		Period:               state,
		Rule:                 rule,
		CertificationEndDate: certEnd,
		NotifyDate:           dates.AddDays(certEnd, -rule.NotifyLeadDays),
		DaysUntilCertEnd:     daysUntil,
		IsOverdue:            daysUntil < 0,
		Urgency:              urgencyFor(daysUntil),
		RequiresF2F:          rule.RequiresF2F,
		F2FCompleted:         snapshot.F2FCompleted,
		F2FDate:              dates.DateOnly(snapshot.F2FDate),
		RequiredDocuments:    rule.RequiredDocuments,
		NextPeriod: NextPeriodPreview{
			Period:    state.CurrentPeriod + 1,
			Rule:      benefit.RuleFor(state.CurrentPeriod+1, false),
			StartDate: dates.AddDays(anchor, state.PeriodEndDayOffset),
		},
	}

	if rule.RequiresF2F {
		record.F2FReason = f2fReason(snapshot.IsReadmission, state.CurrentPeriod)
		record.F2FDeadline = dates.AddDays(anchor, state.PeriodStartDayOffset)
		record.F2FDaysRemaining = dates.DaysBetween(today, record.F2FDeadline)
		record.F2FOverdue = !snapshot.F2FCompleted && record.F2FDaysRemaining < 0
	}

	return record
}

func urgencyFor(daysUntilCertEnd int) model.Tier {
	switch {
	case daysUntilCertEnd < 0:
		return model.TierCritical
	case daysUntilCertEnd <= 7:
		return model.TierHigh
	case daysUntilCertEnd <= 14:
		return model.TierMedium
	default:
		return model.TierNormal
	}
}

func f2fReason(isReadmission bool, currentPeriod int) string {
	switch {
	case isReadmission && currentPeriod >= 3:
		return "Readmission + Period 3+"
	case isReadmission:
		return "Readmission"
	default:
		return "Period 3+"
	}
}
