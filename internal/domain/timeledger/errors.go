package timeledger

import "errors"

// Time ledger domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn        = errors.New("you have already checked in today")
	ErrNotCheckedIn            = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut       = errors.New("you have already checked out")
	ErrCheckOutNotAfterCheckIn = errors.New("check-out must be after check-in")

	// Exit errors
	ErrExitStillOpen     = errors.New("a temporary exit is still open")
	ErrExitAlreadyOpen   = errors.New("another temporary exit is already open")
	ErrExitAlreadyClosed = errors.New("temporary exit is already closed")
	ErrExitNotFound      = errors.New("temporary exit not found")
	ErrMissingReason     = errors.New("exit reason is required")

	// General errors
	ErrEntryNotFound = errors.New("time ledger entry not found")
	ErrEntryModified = errors.New("time ledger entry was modified concurrently, retry")
)
