package payroll

import (
	"context"
	"time"
)

// Repository defines data access for payroll records. The (staff_id,
// period_month, period_year) unique key plus the atomic upsert is the
// serialization contract: two concurrent runs for the same period cannot
// produce divergent rows.
type Repository interface {
	// Upsert creates or fully overwrites the record for the request's
	// period, resetting is_paid and paid_date. The overwrite is guarded on
	// is_paid = false; a record paid since the caller's check stays frozen
	// and the upsert fails with ErrPayrollAlreadyPaid.
	Upsert(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetByStaffPeriod returns ErrPayrollRecordNotFound when the period has
	// not been processed yet.
	GetByStaffPeriod(ctx context.Context, staffID string, month, year int) (Record, error)

	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)

	// MarkPaid is guarded on is_paid = false; it distinguishes a missing
	// record from an already-paid one.
	MarkPaid(ctx context.Context, id string, paidDate time.Time) (Record, error)

	// Delete refuses paid records.
	Delete(ctx context.Context, id string) error
}
