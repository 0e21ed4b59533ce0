package timeledger

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/salonops/timecore-backend-go/internal/domain/timeledger"
	"github.com/shopspring/decimal"
)

type TimeLedgerServiceImpl struct {
	repo timeledger.Repository
	// standardMinutes is captured per check-out; changing the config later
	// never rewrites finalized entries.
	standardMinutes int
}

func NewTimeLedgerService(repo timeledger.Repository, standardMinutes int) timeledger.Service {
	return &TimeLedgerServiceImpl{
		repo:            repo,
		standardMinutes: standardMinutes,
	}
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// timePtrToString safely converts a *time.Time to an ISO-8601 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

// CheckIn implements timeledger.Service.
func (s *TimeLedgerServiceImpl) CheckIn(ctx context.Context, req timeledger.CheckInRequest, now time.Time) (timeledger.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeledger.EntryResponse{}, err
	}

	date := dayOf(now)

	existing, err := s.repo.GetByStaffAndDate(ctx, req.StaffID, date)
	if err != nil {
		return timeledger.EntryResponse{}, fmt.Errorf("failed to get entry for staff and date: %w", err)
	}

	if existing != nil {
		// Pre-created placeholder: fill in the check-in. Anything else is a
		// double check-in.
		if err := existing.ApplyCheckIn(now); err != nil {
			return timeledger.EntryResponse{}, err
		}
		updated, err := s.repo.SetCheckIn(ctx, existing.ID, now)
		if err != nil {
			return timeledger.EntryResponse{}, err
		}
		return mapEntryToResponse(updated, nil), nil
	}

	entry := timeledger.Entry{
		StaffID: req.StaffID,
		Date:    date,
	}
	if err := entry.ApplyCheckIn(now); err != nil {
		return timeledger.EntryResponse{}, err
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return timeledger.EntryResponse{}, err
	}

	return mapEntryToResponse(created, nil), nil
}

// CheckOut implements timeledger.Service.
func (s *TimeLedgerServiceImpl) CheckOut(ctx context.Context, entryID string, now time.Time) (timeledger.EntryResponse, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return timeledger.EntryResponse{}, err
	}

	if err := entry.ApplyCheckOut(now, s.standardMinutes); err != nil {
		return timeledger.EntryResponse{}, err
	}

	// The repository re-checks the entry state and its exit set in the same
	// statement; a concurrent check-out loses with ErrAlreadyCheckedOut and a
	// concurrent exit cycle with ErrEntryModified.
	finalized, err := s.repo.FinalizeCheckOut(ctx, entry)
	if err != nil {
		return timeledger.EntryResponse{}, err
	}

	return mapEntryToResponse(finalized, nil), nil
}

// StartExit implements timeledger.Service.
func (s *TimeLedgerServiceImpl) StartExit(ctx context.Context, req timeledger.StartExitRequest, now time.Time) (timeledger.ExitResponse, error) {
	if err := req.Validate(); err != nil {
		return timeledger.ExitResponse{}, err
	}

	entry, err := s.repo.GetByID(ctx, req.EntryID)
	if err != nil {
		return timeledger.ExitResponse{}, err
	}

	exit, err := entry.StartExit(req.Reason, now)
	if err != nil {
		return timeledger.ExitResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return timeledger.ExitResponse{}, fmt.Errorf("failed to generate exit id: %w", err)
	}
	exit.ID = id.String()

	created, err := s.repo.AddExit(ctx, *exit)
	if err != nil {
		return timeledger.ExitResponse{}, err
	}

	return mapExitToResponse(created), nil
}

// EndExit implements timeledger.Service.
func (s *TimeLedgerServiceImpl) EndExit(ctx context.Context, exitID string, now time.Time) (timeledger.ExitResponse, error) {
	exit, err := s.repo.GetExitByID(ctx, exitID)
	if err != nil {
		return timeledger.ExitResponse{}, err
	}

	entry, err := s.repo.GetByID(ctx, exit.EntryID)
	if err != nil {
		return timeledger.ExitResponse{}, err
	}

	closed, err := entry.EndExit(exitID, now)
	if err != nil {
		return timeledger.ExitResponse{}, err
	}

	persisted, err := s.repo.CloseExit(ctx, exitID, *closed.EndTime, closed.DurationMinutes)
	if err != nil {
		return timeledger.ExitResponse{}, err
	}

	return mapExitToResponse(persisted), nil
}

// GetEntry implements timeledger.Service. For an in-progress day the
// response carries a live estimate computed with now as a stand-in for the
// check-out; the estimate is never written back.
func (s *TimeLedgerServiceImpl) GetEntry(ctx context.Context, entryID string, now time.Time) (timeledger.EntryResponse, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return timeledger.EntryResponse{}, err
	}

	var live *timeledger.LiveEstimate
	if !entry.IsFinalized() && entry.CheckIn != nil {
		worked, overtime, complete := timeledger.LiveTotals(&entry, now, s.standardMinutes)
		live = &timeledger.LiveEstimate{
			WorkedMinutes:   worked,
			OvertimeMinutes: overtime,
			IsComplete:      complete,
		}
	}

	return mapEntryToResponse(entry, live), nil
}

// ListEntries implements timeledger.Service.
func (s *TimeLedgerServiceImpl) ListEntries(ctx context.Context, filter timeledger.EntryFilter) (timeledger.ListEntriesResponse, error) {
	if err := filter.Validate(); err != nil {
		return timeledger.ListEntriesResponse{}, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return timeledger.ListEntriesResponse{}, fmt.Errorf("failed to list entries: %w", err)
	}

	responses := make([]timeledger.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, mapEntryToResponse(e, nil))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return timeledger.ListEntriesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Entries:    responses,
	}, nil
}

// OvertimeTotal implements timeledger.Service. This is the sole handoff
// point to payroll: overtime minutes across finalized entries, in hours.
func (s *TimeLedgerServiceImpl) OvertimeTotal(ctx context.Context, staffID string, month, year int) (timeledger.OvertimeTotalResponse, error) {
	minutes, err := s.repo.SumOvertimeMinutes(ctx, staffID, month, year)
	if err != nil {
		return timeledger.OvertimeTotalResponse{}, fmt.Errorf("failed to sum overtime minutes: %w", err)
	}

	hours := decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)

	return timeledger.OvertimeTotalResponse{
		StaffID:      staffID,
		Month:        month,
		Year:         year,
		TotalOtHours: hours,
	}, nil
}

func mapExitToResponse(x timeledger.ExitInterval) timeledger.ExitResponse {
	return timeledger.ExitResponse{
		ID:              x.ID,
		EntryID:         x.EntryID,
		StartTime:       x.StartTime.UTC().Format(time.RFC3339),
		EndTime:         timePtrToString(x.EndTime),
		Reason:          x.Reason,
		DurationMinutes: x.DurationMinutes,
	}
}

func mapEntryToResponse(e timeledger.Entry, live *timeledger.LiveEstimate) timeledger.EntryResponse {
	exits := make([]timeledger.ExitResponse, 0, len(e.Exits))
	for _, x := range e.Exits {
		exits = append(exits, mapExitToResponse(x))
	}

	return timeledger.EntryResponse{
		ID:                 e.ID,
		StaffID:            e.StaffID,
		StaffName:          e.StaffName,
		Date:               e.Date.Format("2006-01-02"),
		CheckIn:            timePtrToString(e.CheckIn),
		CheckOut:           timePtrToString(e.CheckOut),
		Exits:              exits,
		TotalWorkedMinutes: e.TotalWorkedMinutes,
		OvertimeMinutes:    e.OvertimeMinutes,
		StandardMinutes:    e.StandardMinutes,
		IsComplete:         e.IsComplete,
		Status:             string(e.Status),
		Live:               live,
	}
}
