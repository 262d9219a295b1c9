package streak

import "time"

// ComputeStreak turns the last check-in timestamp and the current streak into
// the new streak count for a check-in happening at now. Calendar days are
// compared on a fixed UTC boundary so the result does not depend on the
// caller's timezone.
//
//   - no previous check-in        -> 1
//   - same calendar day           -> unchanged (idempotent re-check)
//   - previous calendar day       -> streak + 1
//   - gap of two or more days     -> 1
func ComputeStreak(lastCheckIn *time.Time, currentStreak int, now time.Time) int {
	if lastCheckIn == nil {
		return 1
	}

	lastY, lastM, lastD := lastCheckIn.UTC().Date()
	nowY, nowM, nowD := now.UTC().Date()
	if lastY == nowY && lastM == nowM && lastD == nowD {
		if currentStreak < 1 {
			return 1
		}
		return currentStreak
	}

	yesterday := now.UTC().AddDate(0, 0, -1)
	yY, yM, yD := yesterday.Date()
	if lastY == yY && lastM == yM && lastD == yD {
		return currentStreak + 1
	}

	return 1
}

// SameUTCDay reports whether two timestamps fall on the same UTC calendar day.
func SameUTCDay(a, b time.Time) bool {
	aY, aM, aD := a.UTC().Date()
	bY, bM, bD := b.UTC().Date()
	return aY == bY && aM == bM && aD == bD
}
