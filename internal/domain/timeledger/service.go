package timeledger

import (
	"context"
	"time"
)

// Service exposes the attendance state machine. Every mutating operation
// takes the current time from the caller; the core never reads the wall
// clock itself.
type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest, now time.Time) (EntryResponse, error)
	CheckOut(ctx context.Context, entryID string, now time.Time) (EntryResponse, error)
	StartExit(ctx context.Context, req StartExitRequest, now time.Time) (ExitResponse, error)
	EndExit(ctx context.Context, exitID string, now time.Time) (ExitResponse, error)
	GetEntry(ctx context.Context, entryID string, now time.Time) (EntryResponse, error)
	ListEntries(ctx context.Context, filter EntryFilter) (ListEntriesResponse, error)
	OvertimeTotal(ctx context.Context, staffID string, month, year int) (OvertimeTotalResponse, error)
}
