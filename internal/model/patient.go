// Package model holds the value types shared across the compliance engine.
package model

import "time"

// PatientSnapshot is the per-patient input to a compliance computation. The
// engine never mutates it; absent dates are zero values. Build snapshots with
// NewPatientSnapshot so the numeric defaults are applied exactly once instead
// of being re-checked inside the calculators.
type PatientSnapshot struct {
	PatientID string
	Facility  string

	AdmissionDate time.Time
	StartOfCare   time.Time

	StartingBenefitPeriod int
	PriorHospiceDays      int
	IsReadmission         bool

	F2FCompleted bool
	F2FDate      time.Time

	HUV1Completed bool
	HUV1Date      time.Time
	HUV2Completed bool
	HUV2Date      time.Time
}

// NewPatientSnapshot applies defaults for out-of-range numeric inputs: a
// starting period below 1 becomes 1, negative prior hospice days become 0.
func NewPatientSnapshot(snapshot PatientSnapshot) PatientSnapshot {
	if snapshot.StartingBenefitPeriod < 1 {
		snapshot.StartingBenefitPeriod = 1
	}
	if snapshot.PriorHospiceDays < 0 {
		snapshot.PriorHospiceDays = 0
	}
	return snapshot
}
