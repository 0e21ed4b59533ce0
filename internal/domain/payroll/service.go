package payroll

import (
	"context"
	"time"
)

// Service exposes the monthly payroll aggregation and the one-way payment
// transition.
type Service interface {
	ProcessPayroll(ctx context.Context, req ProcessPayrollRequest, now time.Time) (RecordResponse, error)
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)
	MarkPaid(ctx context.Context, req MarkPaidRequest) (RecordResponse, error)
	DeleteRecord(ctx context.Context, id string) error
}
