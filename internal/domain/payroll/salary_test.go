package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(
		d(30000),
		Allowances{HRA: d(2000), Medical: d(500), Bonus: d(0)},
		Deductions{PF: d(1800), Tax: d(1200)},
		d(1000),
	)

	assert.True(t, totals.TotalAllowances.Equal(d(2500)), "totalAllowances = %s", totals.TotalAllowances)
	assert.True(t, totals.TotalDeductions.Equal(d(3000)), "totalDeductions = %s", totals.TotalDeductions)
	assert.True(t, totals.NetSalary.Equal(d(28500)), "netSalary = %s", totals.NetSalary)
}

func TestComputeTotals_ZeroComponents(t *testing.T) {
	totals := ComputeTotals(d(30000), Allowances{}, Deductions{}, decimal.Zero)

	assert.True(t, totals.TotalAllowances.IsZero())
	assert.True(t, totals.TotalDeductions.IsZero())
	assert.True(t, totals.NetSalary.Equal(d(30000)))
}

func TestComputeTotals_TotalsAlwaysMatchComponents(t *testing.T) {
	cases := []struct {
		name       string
		allowances Allowances
		deductions Deductions
	}{
		{"all set", Allowances{HRA: d(1000), Medical: d(200), Bonus: d(300)}, Deductions{PF: d(150), Tax: d(250)}},
		{"partial", Allowances{Medical: d(700)}, Deductions{Tax: d(90)}},
		{"empty", Allowances{}, Deductions{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			totals := ComputeTotals(d(10000), c.allowances, c.deductions, decimal.Zero)
			assert.True(t, totals.TotalAllowances.Equal(c.allowances.Total()))
			assert.True(t, totals.TotalDeductions.Equal(c.deductions.Total()))
			assert.True(t, totals.NetSalary.Equal(
				d(10000).Add(c.allowances.Total()).Sub(c.deductions.Total()),
			))
		})
	}
}

func TestComputeTotals_NegativeNetAllowed(t *testing.T) {
	// Deductions plus advance exceeding earnings produce a negative net,
	// representing a debt carried by the employee.
	totals := ComputeTotals(
		d(1000),
		Allowances{},
		Deductions{PF: d(500), Tax: d(700)},
		d(400),
	)

	assert.True(t, totals.NetSalary.Equal(d(-600)), "netSalary = %s", totals.NetSalary)
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		month int
		year  int
		want  int
	}{
		{1, 2025, 31},
		{2, 2025, 28},
		{2, 2024, 29}, // leap year
		{2, 2000, 29}, // century leap year
		{2, 1900, 28}, // century non-leap year
		{4, 2025, 30},
		{12, 2024, 31},
	}

	for _, c := range cases {
		got := DaysInMonth(c.month, c.year)
		assert.Equal(t, c.want, got, "DaysInMonth(%d, %d)", c.month, c.year)
	}
}

func TestResolveTotalDays(t *testing.T) {
	explicit := 26
	assert.Equal(t, 26, ResolveTotalDays(2, 2024, &explicit))

	zero := 0
	assert.Equal(t, 29, ResolveTotalDays(2, 2024, &zero), "zero override falls back to calendar days")
	assert.Equal(t, 29, ResolveTotalDays(2, 2024, nil))
	assert.Equal(t, 28, ResolveTotalDays(2, 2025, nil))
}
