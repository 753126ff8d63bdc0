package model

import "strings"

// Tier is the urgency ranking used for certifications and for the aggregate
// patient status. Ordering is TierCritical > TierHigh > TierMedium >
// TierNormal.
type Tier string

const (
	TierNormal   Tier = "normal"
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierCritical Tier = "critical"
)

// TierRank maps a tier to its ordering value. The bool is false for
// unrecognized input.
func TierRank(value Tier) (int, bool) {
	switch Tier(strings.ToLower(strings.TrimSpace(string(value)))) {
	case TierNormal:
		return 0, true
	case TierMedium:
		return 1, true
	case TierHigh:
		return 2, true
	case TierCritical:
		return 3, true
	default:
		return 0, false
	}
}

// MaxTier returns the more urgent of two tiers.
func MaxTier(a Tier, b Tier) Tier {
	rankA, _ := TierRank(a)
	rankB, _ := TierRank(b)
	if rankB > rankA {
		return b
	}
	return a
}

// VisitStatus is the state of one HOPE update visit window as of a given day.
type VisitStatus string

const (
	VisitUpcoming     VisitStatus = "upcoming"
	VisitActionNeeded VisitStatus = "action-needed"
	VisitOverdue      VisitStatus = "overdue"
	VisitComplete     VisitStatus = "complete"
)
