// Package visits computes the two HOPE Update Visit (HUV) windows anchored at
// a patient's start of care: visit 1 must land on days 5-14, visit 2 on days
// 15-28, both ends inclusive.
package visits

import (
	"time"

	"github.com/phsofohio-maker/harmony-development-sub000/internal/dates"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/model"
)

// Window start/end day offsets from start of care.
const (
	visit1StartDay = 5
	visit1EndDay   = 14
	visit2StartDay = 15
	visit2EndDay   = 28
)

// Window is the status of one HUV window as of a single day. A completed
// visit is terminal: its status stays complete no matter what the dates say.
type Window struct {
	Visit         int
	WindowStart   time.Time
	WindowEnd     time.Time
	Completed     bool
	CompletedDate time.Time
	Status        model.VisitStatus
}

// Result pairs both windows with the aggregate flags the urgency rollup
// consumes.
type Result struct {
	Visit1          Window
	Visit2          Window
	AnyOverdue      bool
	AnyActionNeeded bool
}

// Calculate derives both visit windows as of today. Returns nil when the
// start-of-care date is absent.
func Calculate(snapshot model.PatientSnapshot, today time.Time) *Result {
	if snapshot.StartOfCare.IsZero() {
		return nil
	}

	soc := dates.DateOnly(snapshot.StartOfCare)
	today = dates.DateOnly(today)

	visit1 := buildWindow(1, soc, visit1StartDay, visit1EndDay, snapshot.HUV1Completed, snapshot.HUV1Date, today)
	visit2 := buildWindow(2, soc, visit2StartDay, visit2EndDay, snapshot.HUV2Completed, snapshot.HUV2Date, today)

	return &Result{
		Visit1:          visit1,
		Visit2:          visit2,
		AnyOverdue:      visit1.Status == model.VisitOverdue || visit2.Status == model.VisitOverdue,
		AnyActionNeeded: visit1.Status == model.VisitActionNeeded || visit2.Status == model.VisitActionNeeded,
	}
}

func buildWindow(visit int, soc time.Time, startDay int, endDay int, completed bool, completedDate time.Time, today time.Time) Window {
	window := Window{
		Visit:         visit,
		WindowStart:   dates.AddDays(soc, startDay),
		WindowEnd:     dates.AddDays(soc, endDay),
		Completed:     completed,
		CompletedDate: dates.DateOnly(completedDate),
	}
	window.Status = windowStatus(window, today)
	return window
}

// windowStatus is evaluated fresh each call; the completed short-circuit runs
// before any date comparison. Comparisons count whole days so the window
// boundaries stay inclusive regardless of location.
func windowStatus(window Window, today time.Time) model.VisitStatus {
	switch {
	case window.Completed:
		return model.VisitComplete
	case dates.DaysBetween(window.WindowEnd, today) > 0:
		return model.VisitOverdue
	case dates.DaysBetween(window.WindowStart, today) >= 0:
		return model.VisitActionNeeded
	default:
		return model.VisitUpcoming
	}
}
