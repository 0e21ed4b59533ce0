package advance

import (
	"context"
	"time"
)

// Repository defines the payroll-facing access to advance records. The
// settlement methods run inside the payroll transaction so a re-run of an
// unpaid period first releases its settlements, then consumes the current
// outstanding balance again.
type Repository interface {
	// ListApprovedUnsettled returns the outstanding approved advances for a
	// staff member, oldest first.
	ListApprovedUnsettled(ctx context.Context, staffID string) ([]Advance, error)

	// MarkSettled stamps the given advances as consumed by the (month, year)
	// payroll run.
	MarkSettled(ctx context.Context, ids []string, month, year int, settledAt time.Time) error

	// ReleaseSettlementsForPeriod clears the settlement stamps a previous run
	// of the same period left behind.
	ReleaseSettlementsForPeriod(ctx context.Context, staffID string, month, year int) error

	// ListByStaff returns all advances for a staff member, newest first.
	ListByStaff(ctx context.Context, staffID string) ([]Advance, error)
}
