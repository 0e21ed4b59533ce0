package advance

import (
	"context"
	"fmt"
	"time"

	"github.com/salonops/timecore-backend-go/internal/domain/advance"
	"github.com/salonops/timecore-backend-go/internal/domain/staff"
)

type AdvanceServiceImpl struct {
	advanceRepo advance.Repository
	staffRepo   staff.Repository
}

func NewAdvanceService(advanceRepo advance.Repository, staffRepo staff.Repository) advance.Service {
	return &AdvanceServiceImpl{
		advanceRepo: advanceRepo,
		staffRepo:   staffRepo,
	}
}

// ListByStaff implements advance.Service.
func (s *AdvanceServiceImpl) ListByStaff(ctx context.Context, staffID string) (advance.ListAdvancesResponse, error) {
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return advance.ListAdvancesResponse{}, err
	}

	advances, err := s.advanceRepo.ListByStaff(ctx, staffID)
	if err != nil {
		return advance.ListAdvancesResponse{}, fmt.Errorf("failed to list advances: %w", err)
	}

	responses := make([]advance.AdvanceResponse, 0, len(advances))
	for _, a := range advances {
		responses = append(responses, mapToAdvanceResponse(a))
	}

	return advance.ListAdvancesResponse{
		StaffID:  staffID,
		Advances: responses,
	}, nil
}

func mapToAdvanceResponse(a advance.Advance) advance.AdvanceResponse {
	var settledAt *string
	if a.SettledAt != nil {
		str := a.SettledAt.UTC().Format(time.RFC3339)
		settledAt = &str
	}

	return advance.AdvanceResponse{
		ID:                 a.ID,
		StaffID:            a.StaffID,
		Amount:             a.Amount,
		Reason:             a.Reason,
		Status:             string(a.Status),
		SettledAt:          settledAt,
		SettledPeriodMonth: a.SettledPeriodMonth,
		SettledPeriodYear:  a.SettledPeriodYear,
		CreatedAt:          a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
