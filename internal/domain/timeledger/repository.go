package timeledger

import (
	"context"
	"time"
)

// Repository defines data access for ledger entries and their exits.
//
// Mutating methods are contracts for atomic conditional updates: each one
// must be a single state-guarded statement so concurrent transitions on the
// same entry cannot both succeed. A zero-row result means the guard failed;
// callers re-read the entry to classify the conflict.
type Repository interface {
	// Create inserts a new entry. The (staff_id, date) unique key is the
	// idempotency guard; ErrAlreadyCheckedIn on conflict.
	Create(ctx context.Context, entry Entry) (Entry, error)

	// GetByID retrieves an entry with its exits.
	GetByID(ctx context.Context, id string) (Entry, error)

	// GetByStaffAndDate returns nil when no entry exists for the day.
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*Entry, error)

	// SetCheckIn fills the check-in of a placeholder entry, guarded on
	// check_in IS NULL.
	SetCheckIn(ctx context.Context, id string, checkIn time.Time) (Entry, error)

	// FinalizeCheckOut persists the finalized totals, guarded on the entry
	// still being open, having no open exit, and its exit set matching the
	// one the totals were computed from; ErrEntryModified when an exit was
	// added since the caller's read.
	FinalizeCheckOut(ctx context.Context, entry Entry) (Entry, error)

	// List retrieves entries with filters and pagination.
	List(ctx context.Context, filter EntryFilter) ([]Entry, int64, error)

	// SumOvertimeMinutes aggregates overtime across finalized entries for a
	// staff/month/year window.
	SumOvertimeMinutes(ctx context.Context, staffID string, month, year int) (int, error)

	// AddExit appends an open exit, guarded on the parent entry still being
	// checked in and not finalized, and by the partial unique index on open
	// exits; ErrExitAlreadyOpen on conflict, ErrAlreadyCheckedOut when the
	// entry was finalized concurrently.
	AddExit(ctx context.Context, exit ExitInterval) (ExitInterval, error)

	GetExitByID(ctx context.Context, id string) (ExitInterval, error)

	// CloseExit sets the end time and duration, guarded on end_time IS NULL.
	CloseExit(ctx context.Context, id string, endTime time.Time, durationMinutes int) (ExitInterval, error)
}
