package visits

import (
	"testing"
	"time"

	"github.com/phsofohio-maker/harmony-development-sub000/internal/dates"
	"github.com/phsofohio-maker/harmony-development-sub000/internal/model"
)

var today = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func TestCalculateMissingStartOfCare(t *testing.T) {
	if result := Calculate(model.PatientSnapshot{PatientID: "P-1"}, today); result != nil {
		t.Fatalf("expected nil result without start of care, got %+v", result)
	}
}

func TestVisit1StateMachine(t *testing.T) {
	cases := []struct {
		daysSinceSOC int
		want         model.VisitStatus
	}{
		{4, model.VisitUpcoming},      // window opens at day 5
		{5, model.VisitActionNeeded},  // first day of window
		{14, model.VisitActionNeeded}, // last day of window
		{15, model.VisitOverdue},      // day after window end
	}
	for _, tc := range cases {
		snapshot := model.PatientSnapshot{
			PatientID:   "P-1",
			StartOfCare: dates.AddDays(today, -tc.daysSinceSOC),
		}
		result := Calculate(snapshot, today)
		if result.Visit1.Status != tc.want {
			t.Fatalf("day %d: expected HUV1 %s, got %s", tc.daysSinceSOC, tc.want, result.Visit1.Status)
		}
	}
}

func TestVisit2Window(t *testing.T) {
	soc := dates.AddDays(today, -15)
	result := Calculate(model.PatientSnapshot{PatientID: "P-1", StartOfCare: soc}, today)

	if !result.Visit2.WindowStart.Equal(dates.AddDays(soc, 15)) {
		t.Fatalf("unexpected HUV2 window start %v", result.Visit2.WindowStart)
	}
	if !result.Visit2.WindowEnd.Equal(dates.AddDays(soc, 28)) {
		t.Fatalf("unexpected HUV2 window end %v", result.Visit2.WindowEnd)
	}
	if result.Visit2.Status != model.VisitActionNeeded {
		t.Fatalf("day 15: expected HUV2 action-needed, got %s", result.Visit2.Status)
	}

	late := Calculate(model.PatientSnapshot{PatientID: "P-1", StartOfCare: dates.AddDays(today, -29)}, today)
	if late.Visit2.Status != model.VisitOverdue {
		t.Fatalf("day 29: expected HUV2 overdue, got %s", late.Visit2.Status)
	}
}

func TestCompletedIsSticky(t *testing.T) {
	for _, daysSinceSOC := range []int{4, 5, 14, 15, 40} {
		snapshot := model.PatientSnapshot{
			PatientID:     "P-1",
			StartOfCare:   dates.AddDays(today, -daysSinceSOC),
			HUV1Completed: true,
			HUV1Date:      dates.AddDays(today, -2),
		}
		result := Calculate(snapshot, today)
		if result.Visit1.Status != model.VisitComplete {
			t.Fatalf("day %d: completed visit must stay complete, got %s", daysSinceSOC, result.Visit1.Status)
		}
	}
}

func TestAggregateFlags(t *testing.T) {
	// HUV1 overdue, HUV2 inside its window.
	result := Calculate(model.PatientSnapshot{
		PatientID:   "P-1",
		StartOfCare: dates.AddDays(today, -16),
	}, today)
	if !result.AnyOverdue {
		t.Fatal("expected AnyOverdue")
	}
	if !result.AnyActionNeeded {
		t.Fatal("expected AnyActionNeeded from HUV2")
	}

	// Both visits completed: nothing outstanding regardless of dates.
	done := Calculate(model.PatientSnapshot{
		PatientID:     "P-1",
		StartOfCare:   dates.AddDays(today, -40),
		HUV1Completed: true,
		HUV2Completed: true,
	}, today)
	if done.AnyOverdue || done.AnyActionNeeded {
		t.Fatalf("completed visits must not raise flags: %+v", done)
	}
}
