package matching

import "time"

// Conflict windows are half-open [start, end) intervals. The canonical
// two-inequality test is used everywhere: two windows overlap when each
// starts before the other ends. Windows that merely touch at a boundary
// (one ending exactly when the other starts) do NOT overlap.
func intervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// minutesOverlap is the same predicate in minute-of-day space, used for
// legacy schedule entries that carry local clock times instead of instants.
func minutesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
