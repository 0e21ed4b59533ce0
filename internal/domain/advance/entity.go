package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdvanceStatus enum
type AdvanceStatus string

const (
	StatusPending  AdvanceStatus = "pending"
	StatusApproved AdvanceStatus = "approved"
	StatusRejected AdvanceStatus = "rejected"
)

// Advance is a pre-approved cash advance to a staff member. An approved
// advance stays outstanding until a payroll run consumes it; the settlement
// columns record which (month, year) run deducted it, so the same advance is
// deducted exactly once.
type Advance struct {
	ID                 string
	StaffID            string
	Amount             decimal.Decimal
	Reason             *string
	Status             AdvanceStatus
	SettledAt          *time.Time
	SettledPeriodMonth *int
	SettledPeriodYear  *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsOutstanding reports whether the advance is approved and not yet
// consumed by a payroll run.
func (a *Advance) IsOutstanding() bool {
	return a.Status == StatusApproved && a.SettledAt == nil
}
