package payroll

import (
	"github.com/campushq/school-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UpsertPayrollRequest carries one payroll save. Aggregate fields
// (total_allowances, total_deductions, net_salary) are intentionally absent:
// they are always recomputed server-side from the itemized components.
type UpsertPayrollRequest struct {
	EmployeeID  string          `json:"employee_id"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Allowances  Allowances      `json:"allowances"`
	Deductions  Deductions      `json:"deductions"`
	Advance     decimal.Decimal `json:"advance"`
	TotalDays   *int            `json:"total_days,omitempty"`

	// Attendance counters. When all four are omitted the engine fills them
	// from the attendance log for the same (employee, month, year).
	Present     *int `json:"present,omitempty"`
	Absent      *int `json:"absent,omitempty"`
	LateDays    *int `json:"late_days,omitempty"`
	LateMinutes *int `json:"late_minutes,omitempty"`
}

func (r *UpsertPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a four-digit year"})
	}
	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	if r.Allowances.HRA.IsNegative() || r.Allowances.Medical.IsNegative() || r.Allowances.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allowances", Message: "components must be non-negative"})
	}
	if r.Deductions.PF.IsNegative() || r.Deductions.Tax.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deductions", Message: "components must be non-negative"})
	}
	if r.Advance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "advance", Message: "must be non-negative"})
	}
	if r.TotalDays != nil && *r.TotalDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "total_days", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HasAttendanceCounters reports whether the caller supplied any attendance
// counter explicitly.
func (r *UpsertPayrollRequest) HasAttendanceCounters() bool {
	return r.Present != nil || r.Absent != nil || r.LateDays != nil || r.LateMinutes != nil
}

type PayrollRecordResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	PeriodMonth     int             `json:"period_month"`
	PeriodYear      int             `json:"period_year"`
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	Allowances      Allowances      `json:"allowances"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	Deductions      Deductions      `json:"deductions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	Advance         decimal.Decimal `json:"advance"`
	TotalDays       int             `json:"total_days"`
	Present         int             `json:"present"`
	Absent          int             `json:"absent"`
	LateDays        int             `json:"late_days"`
	LateMinutes     int             `json:"late_minutes"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}

// SalaryRowResponse is one row of the period listing. PayrollID is nil when
// no record has been saved yet and the row is a synthesized default view.
type SalaryRowResponse struct {
	PayrollID       *string         `json:"payroll_id"`
	EmployeeID      string          `json:"employee_id"`
	Name            string          `json:"name"`
	Department      string          `json:"department"`
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	Allowances      Allowances      `json:"allowances"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	Deductions      Deductions      `json:"deductions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	Advance         decimal.Decimal `json:"advance"`
	TotalDays       int             `json:"total_days"`
	Present         int             `json:"present"`
	Absent          int             `json:"absent"`
	LateDays        int             `json:"late_days"`
	LateMinutes     int             `json:"late_minutes"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}

type PayrollSummaryResponse struct {
	PeriodMonth     int             `json:"period_month"`
	PeriodYear      int             `json:"period_year"`
	RecordCount     int             `json:"record_count"`
	TotalBasic      decimal.Decimal `json:"total_basic"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalAdvance    decimal.Decimal `json:"total_advance"`
	TotalNet        decimal.Decimal `json:"total_net"`
}
