package advance

import (
	"github.com/shopspring/decimal"
)

type AdvanceResponse struct {
	ID                 string          `json:"id"`
	StaffID            string          `json:"staff_id"`
	Amount             decimal.Decimal `json:"amount"`
	Reason             *string         `json:"reason,omitempty"`
	Status             string          `json:"status"`
	SettledAt          *string         `json:"settled_at,omitempty"`
	SettledPeriodMonth *int            `json:"settled_period_month,omitempty"`
	SettledPeriodYear  *int            `json:"settled_period_year,omitempty"`
	CreatedAt          string          `json:"created_at"`
}

type ListAdvancesResponse struct {
	StaffID  string            `json:"staff_id"`
	Advances []AdvanceResponse `json:"advances"`
}
