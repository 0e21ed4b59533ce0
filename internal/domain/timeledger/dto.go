package timeledger

import (
	"github.com/salonops/timecore-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CheckInRequest struct {
	StaffID string `json:"staff_id"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "is required"})
	} else if !validator.IsValidUUID(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StartExitRequest struct {
	EntryID string `json:"-"`
	Reason  string `json:"reason"`
}

func (r *StartExitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EntryID) {
		errs = append(errs, validator.ValidationError{Field: "entry_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryFilter struct {
	StaffID   *string `json:"staff_id,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Status    *string `json:"status,omitempty"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
	SortBy    string  `json:"sort_by"`
	SortOrder string  `json:"sort_order"`
}

var validStatuses = []string{
	string(StatusPresent), string(StatusIncomplete),
	string(StatusAbsent), string(StatusLate), string(StatusOnLeave),
}

func (f *EntryFilter) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if value != nil && *value != "" {
			if _, ok := validator.IsValidDate(*value); !ok {
				errs = append(errs, validator.ValidationError{Field: field, Message: "must be in YYYY-MM-DD format"})
			}
		}
	}

	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a valid status"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExitResponse struct {
	ID              string  `json:"id"`
	EntryID         string  `json:"entry_id"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	Reason          string  `json:"reason"`
	DurationMinutes int     `json:"duration_minutes"`
}

// LiveEstimate is the display-only projection of an in-progress day, using
// the request time as a stand-in for check-out. It is never persisted.
type LiveEstimate struct {
	WorkedMinutes   int  `json:"worked_minutes"`
	OvertimeMinutes int  `json:"overtime_minutes"`
	IsComplete      bool `json:"is_complete"`
}

type EntryResponse struct {
	ID                 string         `json:"id"`
	StaffID            string         `json:"staff_id"`
	StaffName          *string        `json:"staff_name,omitempty"`
	Date               string         `json:"date"`
	CheckIn            *string        `json:"check_in,omitempty"`
	CheckOut           *string        `json:"check_out,omitempty"`
	Exits              []ExitResponse `json:"exits"`
	TotalWorkedMinutes int            `json:"total_worked_minutes"`
	OvertimeMinutes    int            `json:"overtime_minutes"`
	StandardMinutes    int            `json:"standard_minutes,omitempty"`
	IsComplete         bool           `json:"is_complete"`
	Status             string         `json:"status"`
	Live               *LiveEstimate  `json:"live_estimate,omitempty"`
}

type ListEntriesResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Entries    []EntryResponse `json:"entries"`
}

// OvertimeTotalResponse is the sole handoff point from the time ledger to
// payroll: finalized overtime minutes for the period, converted to hours.
type OvertimeTotalResponse struct {
	StaffID      string          `json:"staff_id"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	TotalOtHours decimal.Decimal `json:"total_ot_hours"`
}
