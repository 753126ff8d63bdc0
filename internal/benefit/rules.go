// Package benefit models Medicare hospice benefit periods: the resolver that
// walks elapsed days into the current period, and the closed rule table that
// describes each period's duration, paperwork, and Face-to-Face policy.
package benefit

import (
	"fmt"

	"github.com/phsofohio-maker/harmony-development-sub000/internal/dates"
)

// DocumentType identifies a certification document template.
type DocumentType string

const (
	Doc90DayInitial   DocumentType = "90DAY_INITIAL"
	Doc90DaySecond    DocumentType = "90DAY_SECOND"
	Doc60Day          DocumentType = "60DAY"
	DocAttendCert     DocumentType = "ATTEND_CERT"
	DocPatientHistory DocumentType = "PATIENT_HISTORY"
	DocProgressNote   DocumentType = "PROGRESS_NOTE"
)

// PeriodType tags the three benefit-period shapes.
type PeriodType string

const (
	PeriodInitial90    PeriodType = "initial90"
	PeriodSecond90     PeriodType = "second90"
	PeriodSubsequent60 PeriodType = "subsequent60"
)

// PeriodRule is the static metadata for one benefit period. Rules are derived
// per lookup; nothing here is patient state.
type PeriodRule struct {
	Name              string
	ShortName         string
	Type              PeriodType
	DurationDays      int
	RequiredDocuments []DocumentType
	RequiresF2F       bool
	NotifyLeadDays    int
}

// DurationDays is 90 for periods 1 and 2, 60 for every period after,
// unconditionally.
func DurationDays(period int) int {
	if period <= 2 {
		return 90
	}
	return 60
}

// RuleFor returns the rule for a benefit period. A Face-to-Face encounter is
// required from period 3 onward, and in any period for a readmission.
func RuleFor(period int, isReadmission bool) PeriodRule {
	if period < 1 {
		period = 1
	}
	switch period {
	case 1:
		return PeriodRule{
			Name:              "Initial Period (1st 90 days)",
			ShortName:         "1st 90-Day",
			Type:              PeriodInitial90,
			DurationDays:      90,
			RequiredDocuments: []DocumentType{Doc90DayInitial, DocAttendCert, DocPatientHistory},
			RequiresF2F:       isReadmission,
			NotifyLeadDays:    14,
		}
	case 2:
		return PeriodRule{
			Name:              "Second Period (2nd 90 days)",
			ShortName:         "2nd 90-Day",
			Type:              PeriodSecond90,
			DurationDays:      90,
			RequiredDocuments: []DocumentType{Doc90DaySecond, DocProgressNote},
			RequiresF2F:       isReadmission,
			NotifyLeadDays:    14,
		}
	default:
		ordinal := fmt.Sprintf("%d%s", period, dates.OrdinalSuffix(period))
		return PeriodRule{
			Name:              fmt.Sprintf("Subsequent Period (%s 60-day)", ordinal),
			ShortName:         fmt.Sprintf("%s 60-Day", ordinal),
			Type:              PeriodSubsequent60,
			DurationDays:      60,
			RequiredDocuments: []DocumentType{Doc60Day, DocProgressNote},
			RequiresF2F:       true,
			NotifyLeadDays:    10,
		}
	}
}
