package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals are the derived figures of a payroll record. They are always
// recomputed from the submitted components and never taken from the client.
type Totals struct {
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
}

// ComputeTotals derives the aggregate figures from basic salary, itemized
// components and the advance already paid out:
//
//	netSalary = basicSalary + totalAllowances - totalDeductions - advance
//
// The result may be negative when deductions and advance exceed earnings;
// a negative net salary represents a debt carried by the employee.
func ComputeTotals(basicSalary decimal.Decimal, allowances Allowances, deductions Deductions, advance decimal.Decimal) Totals {
	totalAllowances := allowances.Total()
	totalDeductions := deductions.Total()

	return Totals{
		TotalAllowances: totalAllowances,
		TotalDeductions: totalDeductions,
		NetSalary:       basicSalary.Add(totalAllowances).Sub(totalDeductions).Sub(advance),
	}
}

// DaysInMonth returns the number of calendar days in the given month/year,
// accounting for leap years.
func DaysInMonth(month, year int) int {
	// Day zero of the next month is the last day of this month.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ResolveTotalDays returns the explicit value when one was supplied and
// non-zero, otherwise the number of days in the period's calendar month.
func ResolveTotalDays(month, year int, explicit *int) int {
	if explicit != nil && *explicit != 0 {
		return *explicit
	}
	return DaysInMonth(month, year)
}
