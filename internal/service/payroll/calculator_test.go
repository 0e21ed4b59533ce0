package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestCompute_ReferenceScenario(t *testing.T) {
	// base 30000, 5 OT hours at 50/h, no extra days, food 2500, advances 1000
	b := Compute(Inputs{
		BaseSalary:          d(30000),
		OvertimeRatePerHour: d(50),
		OtHours:             d(5),
		ExtraDays:           0,
		FoodDeduction:       d(2500),
		RecurringDeduction:  d(0),
		AdvanceDeducted:     d(1000),
	})

	assert.True(t, b.OvertimeAmount.Equal(d(250)), "ot amount: %s", b.OvertimeAmount)
	assert.True(t, b.ExtraDayPay.Equal(d(0)), "extra day pay: %s", b.ExtraDayPay)
	assert.True(t, b.TotalEarnings.Equal(d(30250)), "earnings: %s", b.TotalEarnings)
	assert.True(t, b.TotalDeductions.Equal(d(3500)), "deductions: %s", b.TotalDeductions)
	assert.True(t, b.NetSalary.Equal(d(26750)), "net: %s", b.NetSalary)
}

func TestCompute_ExtraDaysUsePerDiem(t *testing.T) {
	b := Compute(Inputs{
		BaseSalary:          d(30000),
		OvertimeRatePerHour: d(50),
		ExtraDays:           3,
	})

	// perDiem = 30000 / 30 = 1000
	assert.True(t, b.ExtraDayPay.Equal(d(3000)), "extra day pay: %s", b.ExtraDayPay)
	assert.True(t, b.TotalEarnings.Equal(d(33000)), "earnings: %s", b.TotalEarnings)
}

func TestCompute_NetMayBeNegative(t *testing.T) {
	b := Compute(Inputs{
		BaseSalary:      d(10000),
		AdvanceDeducted: d(12000),
	})

	assert.True(t, b.NetSalary.Equal(d(-2000)), "net: %s", b.NetSalary)
}

func TestCompute_Deterministic(t *testing.T) {
	in := Inputs{
		BaseSalary:          decimal.RequireFromString("28750.50"),
		OvertimeRatePerHour: decimal.RequireFromString("47.25"),
		OtHours:             decimal.RequireFromString("6.5"),
		ExtraDays:           2,
		FoodDeduction:       d(1800),
		RecurringDeduction:  d(500),
		AdvanceDeducted:     d(3000),
	}

	first := Compute(in)
	second := Compute(in)

	assert.True(t, first.OvertimeAmount.Equal(second.OvertimeAmount))
	assert.True(t, first.ExtraDayPay.Equal(second.ExtraDayPay))
	assert.True(t, first.TotalEarnings.Equal(second.TotalEarnings))
	assert.True(t, first.TotalDeductions.Equal(second.TotalDeductions))
	assert.True(t, first.NetSalary.Equal(second.NetSalary))
}
