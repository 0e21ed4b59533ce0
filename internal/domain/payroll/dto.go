package payroll

import (
	"github.com/salonops/timecore-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ProcessPayrollRequest carries the operator-entered adjustments for one
// staff/period run. OtHours is pre-filled from the ledger's overtime total
// but stays operator-editable.
type ProcessPayrollRequest struct {
	StaffID            string          `json:"staff_id"`
	Month              string          `json:"month"`
	Year               int             `json:"year"`
	OtHours            decimal.Decimal `json:"ot_hours"`
	ExtraDays          int             `json:"extra_days"`
	FoodDeduction      decimal.Decimal `json:"food_deduction"`
	RecurringDeduction decimal.Decimal `json:"recurring_deduction"`
}

func (r *ProcessPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "is required"})
	} else if !validator.IsValidUUID(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "must be a valid UUID"})
	}
	if _, err := ParseMonthName(r.Month); err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "is not a valid month name"})
	}
	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is out of range"})
	}
	if r.OtHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "ot_hours", Message: "must be non-negative"})
	}
	if r.ExtraDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "extra_days", Message: "must be non-negative"})
	}
	if r.FoodDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "food_deduction", Message: "must be non-negative"})
	}
	if r.RecurringDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "recurring_deduction", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaidRequest struct {
	ID       string `json:"-"`
	PaidDate string `json:"paid_date"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.PaidDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "paid_date", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID                 string          `json:"id"`
	StaffID            string          `json:"staff_id"`
	StaffName          *string         `json:"staff_name,omitempty"`
	PeriodMonth        int             `json:"period_month"`
	PeriodYear         int             `json:"period_year"`
	BaseSalary         decimal.Decimal `json:"base_salary"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	OvertimeAmount     decimal.Decimal `json:"overtime_amount"`
	ExtraDays          int             `json:"extra_days"`
	ExtraDayPay        decimal.Decimal `json:"extra_day_pay"`
	FoodDeduction      decimal.Decimal `json:"food_deduction"`
	RecurringDeduction decimal.Decimal `json:"recurring_deduction"`
	AdvanceDeducted    decimal.Decimal `json:"advance_deducted"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	NetSalary          decimal.Decimal `json:"net_salary"`
	IsPaid             bool            `json:"is_paid"`
	PaidDate           *string         `json:"paid_date,omitempty"`
}

type RecordFilter struct {
	StaffID     *string `json:"staff_id,omitempty"`
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	IsPaid      *bool   `json:"is_paid,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Records    []RecordResponse `json:"records"`
}
