package review

import (
	"math"
	"time"
)

// gapDays maps a capped correct streak to the number of whole days that
// must pass since the last review before the word is due again. Streaks
// above the table cap reuse the last entry.
var gapDays = [...]int{0, 1, 2, 4, 7, 15}

// maxStreak is the streak at which the interval stops growing.
const maxStreak = len(gapDays) - 1

// GapForStreak returns the review interval in whole days for a correct
// streak. Pure function.
func GapForStreak(correctCount int) int {
	if correctCount < 0 {
		correctCount = 0
	}
	if correctCount > maxStreak {
		correctCount = maxStreak
	}
	return gapDays[correctCount]
}

// IsDue reports whether a word whose last review happened on lastReview
// is due again at now. Both instants are reduced to calendar days in
// the server's local timezone; time of day never affects scheduling.
// Pure function.
func IsDue(correctCount int, lastReview, now time.Time) bool {
	return WholeDaysBetween(lastReview, now) >= GapForStreak(correctCount)
}

// DayStart returns midnight of the instant's calendar day in the
// server's local timezone.
func DayStart(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// WholeDaysBetween returns the number of whole calendar days from a to
// b. Negative when b's day precedes a's. Rounding absorbs DST-shortened
// and DST-lengthened days.
func WholeDaysBetween(a, b time.Time) int {
	return int(math.Round(DayStart(b).Sub(DayStart(a)).Hours() / 24))
}
