package model

import "testing"

func TestTierRank(t *testing.T) {
	order := []Tier{TierNormal, TierMedium, TierHigh, TierCritical}
	prev := -1
	for _, tier := range order {
		rank, ok := TierRank(tier)
		if !ok {
			t.Fatalf("tier %s not recognized", tier)
		}
		if rank <= prev {
			t.Fatalf("tier %s rank %d not above previous %d", tier, rank, prev)
		}
		prev = rank
	}

	if _, ok := TierRank("someday"); ok {
		t.Fatal("unknown tier must not rank")
	}
	if rank, ok := TierRank(" Critical "); !ok || rank != 3 {
		t.Fatalf("expected case-insensitive match, got %d %v", rank, ok)
	}
}

func TestMaxTier(t *testing.T) {
	if got := MaxTier(TierMedium, TierHigh); got != TierHigh {
		t.Fatalf("expected high, got %s", got)
	}
	if got := MaxTier(TierCritical, TierNormal); got != TierCritical {
		t.Fatalf("expected critical, got %s", got)
	}
}

func TestNewPatientSnapshotDefaults(t *testing.T) {
	snapshot := NewPatientSnapshot(PatientSnapshot{
		PatientID:             "P-1",
		StartingBenefitPeriod: -3,
		PriorHospiceDays:      -10,
	})
	if snapshot.StartingBenefitPeriod != 1 {
		t.Fatalf("expected period default 1, got %d", snapshot.StartingBenefitPeriod)
	}
	if snapshot.PriorHospiceDays != 0 {
		t.Fatalf("expected prior days default 0, got %d", snapshot.PriorHospiceDays)
	}
}
