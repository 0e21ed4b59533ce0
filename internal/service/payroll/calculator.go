package payroll

import "github.com/shopspring/decimal"

// Pure payroll arithmetic, kept free of store access so a run is a
// deterministic function of its inputs.

var daysPerMonth = decimal.NewFromInt(30)

type Inputs struct {
	BaseSalary          decimal.Decimal
	OvertimeRatePerHour decimal.Decimal
	OtHours             decimal.Decimal
	ExtraDays           int
	FoodDeduction       decimal.Decimal
	RecurringDeduction  decimal.Decimal
	AdvanceDeducted     decimal.Decimal
}

type Breakdown struct {
	OvertimeAmount  decimal.Decimal
	ExtraDayPay     decimal.Decimal
	TotalEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	// NetSalary may be negative; it is surfaced as-is.
	NetSalary decimal.Decimal
}

// Compute derives the monthly breakdown. Extra days are paid at a per-diem
// of baseSalary/30 regardless of the period's actual length.
func Compute(in Inputs) Breakdown {
	perDiem := in.BaseSalary.Div(daysPerMonth)

	otAmount := in.OtHours.Mul(in.OvertimeRatePerHour)
	extraDayPay := decimal.NewFromInt(int64(in.ExtraDays)).Mul(perDiem)

	totalEarnings := in.BaseSalary.Add(otAmount).Add(extraDayPay)
	totalDeductions := in.FoodDeduction.Add(in.RecurringDeduction).Add(in.AdvanceDeducted)

	return Breakdown{
		OvertimeAmount:  otAmount,
		ExtraDayPay:     extraDayPay,
		TotalEarnings:   totalEarnings,
		TotalDeductions: totalDeductions,
		NetSalary:       totalEarnings.Sub(totalDeductions),
	}
}
