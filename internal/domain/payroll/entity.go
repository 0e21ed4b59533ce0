package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is the monthly compensation computation for one staff member.
// Unique per (StaffID, PeriodMonth, PeriodYear); re-processing an unpaid
// period overwrites the prior computation, a paid record is frozen.
type Record struct {
	ID                 string
	StaffID            string
	PeriodMonth        int
	PeriodYear         int
	BaseSalary         decimal.Decimal
	OvertimeHours      decimal.Decimal
	OvertimeAmount     decimal.Decimal
	ExtraDays          int
	ExtraDayPay        decimal.Decimal
	FoodDeduction      decimal.Decimal
	RecurringDeduction decimal.Decimal
	AdvanceDeducted    decimal.Decimal
	TotalEarnings      decimal.Decimal
	TotalDeductions    decimal.Decimal
	// NetSalary may be negative; it is surfaced as-is, never clamped.
	NetSalary decimal.Decimal
	IsPaid    bool
	PaidDate  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	StaffName *string
}
