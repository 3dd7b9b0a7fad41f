package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allowances is the fixed set of salary components added on top of basic pay.
type Allowances struct {
	HRA     decimal.Decimal `json:"hra"`
	Medical decimal.Decimal `json:"medical"`
	Bonus   decimal.Decimal `json:"bonus"`
}

// Total sums every allowance component.
func (a Allowances) Total() decimal.Decimal {
	return a.HRA.Add(a.Medical).Add(a.Bonus)
}

// Deductions is the fixed set of salary components subtracted from pay.
type Deductions struct {
	PF  decimal.Decimal `json:"pf"`
	Tax decimal.Decimal `json:"tax"`
}

// Total sums every deduction component.
func (d Deductions) Total() decimal.Decimal {
	return d.PF.Add(d.Tax)
}

// PayrollRecord is the canonical salary record for one employee and one
// calendar month. At most one record exists per (employee, month, year);
// saves for an existing period overwrite in place.
type PayrollRecord struct {
	ID          string
	SchoolID    string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int

	BasicSalary     decimal.Decimal
	Allowances      Allowances
	TotalAllowances decimal.Decimal
	Deductions      Deductions
	TotalDeductions decimal.Decimal
	Advance         decimal.Decimal

	TotalDays   int
	Present     int
	Absent      int
	LateDays    int
	LateMinutes int

	NetSalary decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
