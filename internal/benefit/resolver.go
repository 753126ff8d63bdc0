package benefit

// PeriodState locates a patient inside their current benefit period. Offsets
// are whole days measured from the admission date; successive periods are
// contiguous, so one period's end offset is the next period's start offset.
type PeriodState struct {
	CurrentPeriod         int
	DaysIntoPeriod        int
	DaysRemainingInPeriod int
	PeriodDurationDays    int
	PeriodStartDayOffset  int
	PeriodEndDayOffset    int
}

// ResolvePeriod walks daysSinceAdmission through successive period durations
// starting at startingPeriod. The last day of each period is inclusive: a day
// count equal to the cumulative end offset stays in that period, and one more
// day rolls into the next. Out-of-range inputs clamp (period to 1, days to 0).
func ResolvePeriod(startingPeriod int, daysSinceAdmission int) PeriodState {
	if startingPeriod < 1 {
		startingPeriod = 1
	}
	if daysSinceAdmission < 0 {
		daysSinceAdmission = 0
	}

	currentPeriod := startingPeriod
	startOffset := 0
	for {
		duration := DurationDays(currentPeriod)
		if daysSinceAdmission <= startOffset+duration {
			daysInto := daysSinceAdmission - startOffset
			return PeriodState{
				CurrentPeriod:         currentPeriod,
				DaysIntoPeriod:        daysInto,
				DaysRemainingInPeriod: duration - daysInto,
				PeriodDurationDays:    duration,
				PeriodStartDayOffset:  startOffset,
				PeriodEndDayOffset:    startOffset + duration,
			}
		}
		startOffset += duration
		currentPeriod++
	}
}
