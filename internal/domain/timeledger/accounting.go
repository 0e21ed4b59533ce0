package timeledger

import "time"

// Pure time-accounting arithmetic. These functions never touch the clock or
// the store; "now" is always supplied by the caller.

// WorkedMinutes returns the wall-clock span between checkIn and checkOut
// minus the closed exits, floored at zero.
func WorkedMinutes(checkIn, checkOut time.Time, exits []ExitInterval) int {
	elapsed := clampMinutes(checkOut.Sub(checkIn))

	exitMinutes := 0
	for _, x := range exits {
		if x.IsOpen() {
			continue
		}
		exitMinutes += x.DurationMinutes
	}

	worked := elapsed - exitMinutes
	if worked < 0 {
		worked = 0
	}
	return worked
}

// Totals computes the finalized figures for a checked-out day.
func Totals(checkIn, checkOut time.Time, exits []ExitInterval, standardMinutes int) (total, overtime int, complete bool) {
	total = WorkedMinutes(checkIn, checkOut, exits)
	overtime = total - standardMinutes
	if overtime < 0 {
		overtime = 0
	}
	complete = total >= standardMinutes
	return total, overtime, complete
}

// LiveTotals estimates the figures for an in-progress day using now as a
// stand-in for the check-out. If an exit is open, the live clock stops at
// the exit's start. Live estimates are for display only and are never
// persisted as final totals.
func LiveTotals(entry *Entry, now time.Time, standardMinutes int) (total, overtime int, complete bool) {
	if entry.CheckIn == nil {
		return 0, 0, false
	}
	asOf := now
	if open := entry.OpenExit(); open != nil && open.StartTime.Before(asOf) {
		asOf = open.StartTime
	}
	return Totals(*entry.CheckIn, asOf, entry.Exits, standardMinutes)
}

func clampMinutes(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}
