package timeledger

import (
	"time"
)

// Status of a daily ledger entry.
type Status string

const (
	StatusPresent    Status = "present"
	StatusIncomplete Status = "incomplete"
	StatusAbsent     Status = "absent"
	StatusLate       Status = "late"
	StatusOnLeave    Status = "on_leave"
)

// Entry is one staff member's attendance record for one calendar day.
// There is at most one entry per (StaffID, Date). The entry owns its exits.
type Entry struct {
	ID                 string
	StaffID            string
	Date               time.Time
	CheckIn            *time.Time
	CheckOut           *time.Time
	Exits              []ExitInterval
	TotalWorkedMinutes int
	OvertimeMinutes    int
	// StandardMinutes is the daily standard captured at check-out time, so a
	// later config change never rewrites finalized totals.
	StandardMinutes int
	IsComplete      bool
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	StaffName *string
}

// ExitInterval is a temporary mid-day departure with a mandatory reason.
// DurationMinutes stays 0 while the exit is open; once closed the interval
// is immutable.
type ExitInterval struct {
	ID              string
	EntryID         string
	StartTime       time.Time
	EndTime         *time.Time
	Reason          string
	DurationMinutes int
	CreatedAt       time.Time
}

// IsOpen reports whether the exit has not been closed yet.
func (x *ExitInterval) IsOpen() bool {
	return x.EndTime == nil
}

// OpenExit returns the entry's open exit, if any. The state machine
// guarantees at most one.
func (e *Entry) OpenExit() *ExitInterval {
	for i := range e.Exits {
		if e.Exits[i].IsOpen() {
			return &e.Exits[i]
		}
	}
	return nil
}

// ClosedExits returns the finalized exits in recorded order.
func (e *Entry) ClosedExits() []ExitInterval {
	closed := make([]ExitInterval, 0, len(e.Exits))
	for _, x := range e.Exits {
		if !x.IsOpen() {
			closed = append(closed, x)
		}
	}
	return closed
}

// IsFinalized reports whether the day has been checked out.
func (e *Entry) IsFinalized() bool {
	return e.CheckOut != nil
}

// ApplyCheckIn records the check-in time. Valid on a fresh entry or on a
// pre-created placeholder without a check-in.
func (e *Entry) ApplyCheckIn(now time.Time) error {
	if e.CheckIn != nil {
		return ErrAlreadyCheckedIn
	}
	checkIn := now
	e.CheckIn = &checkIn
	e.Status = StatusPresent
	return nil
}

// ApplyCheckOut finalizes the day: it computes total worked and overtime
// minutes against standardMinutes and marks the entry complete or not.
// CheckedOut is terminal for the day.
func (e *Entry) ApplyCheckOut(now time.Time, standardMinutes int) error {
	if e.CheckIn == nil {
		return ErrNotCheckedIn
	}
	if e.CheckOut != nil {
		return ErrAlreadyCheckedOut
	}
	if e.OpenExit() != nil {
		return ErrExitStillOpen
	}
	if !now.After(*e.CheckIn) {
		return ErrCheckOutNotAfterCheckIn
	}

	checkOut := now
	e.CheckOut = &checkOut
	e.StandardMinutes = standardMinutes
	e.TotalWorkedMinutes, e.OvertimeMinutes, e.IsComplete = Totals(*e.CheckIn, checkOut, e.Exits, standardMinutes)
	if e.IsComplete {
		e.Status = StatusPresent
	} else {
		e.Status = StatusIncomplete
	}
	return nil
}

// StartExit opens a new exit interval. Requires an open check-in, no
// check-out, no other open exit and a non-empty reason.
func (e *Entry) StartExit(reason string, now time.Time) (*ExitInterval, error) {
	if e.CheckIn == nil {
		return nil, ErrNotCheckedIn
	}
	if e.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}
	if e.OpenExit() != nil {
		return nil, ErrExitAlreadyOpen
	}
	if isBlank(reason) {
		return nil, ErrMissingReason
	}

	exit := ExitInterval{
		EntryID:   e.ID,
		StartTime: now,
		Reason:    reason,
	}
	e.Exits = append(e.Exits, exit)
	return &e.Exits[len(e.Exits)-1], nil
}

// EndExit closes the identified exit. Duration is floored at zero so clock
// skew is clamped, not surfaced as an error.
func (e *Entry) EndExit(exitID string, now time.Time) (*ExitInterval, error) {
	for i := range e.Exits {
		if e.Exits[i].ID != exitID {
			continue
		}
		if !e.Exits[i].IsOpen() {
			return nil, ErrExitAlreadyClosed
		}
		endTime := now
		e.Exits[i].EndTime = &endTime
		e.Exits[i].DurationMinutes = clampMinutes(endTime.Sub(e.Exits[i].StartTime))
		return &e.Exits[i], nil
	}
	return nil, ErrExitNotFound
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
