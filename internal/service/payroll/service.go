package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushq/school-backend-go/internal/domain/attendance"
	"github.com/campushq/school-backend-go/internal/domain/employee"
	"github.com/campushq/school-backend-go/internal/domain/payroll"
	"github.com/campushq/school-backend-go/internal/pkg/database"
	"github.com/campushq/school-backend-go/internal/pkg/jwt"
	"github.com/campushq/school-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// lookupConcurrency caps the fan-out of per-employee point lookups during a
// period listing. The lookups touch disjoint keys, so they carry no ordering
// requirement between each other.
const lookupConcurrency = 8

type PayrollServiceImpl struct {
	db              *database.DB
	payrollRepo     payroll.PayrollRepository
	employeeRepo    employee.EmployeeRepository
	attendanceStats attendance.SummaryProvider
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceStats attendance.SummaryProvider,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:              db,
		payrollRepo:     payrollRepo,
		employeeRepo:    employeeRepo,
		attendanceStats: attendanceStats,
	}
}

// UpsertPayroll saves the canonical record for one (employee, month, year)
// key. Derived totals are always recomputed from the submitted components;
// aggregate figures in the request body are never trusted. When the request
// carries no attendance counters they are pulled from the attendance log.
func (s *PayrollServiceImpl) UpsertPayroll(ctx context.Context, req payroll.UpsertPayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	// The employee must exist in this school's roster.
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, schoolID); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record := payroll.PayrollRecord{
		SchoolID:    schoolID,
		EmployeeID:  req.EmployeeID,
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		BasicSalary: req.BasicSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		Advance:     req.Advance,
		TotalDays:   payroll.ResolveTotalDays(req.Month, req.Year, req.TotalDays),
	}

	totals := payroll.ComputeTotals(req.BasicSalary, req.Allowances, req.Deductions, req.Advance)
	record.TotalAllowances = totals.TotalAllowances
	record.TotalDeductions = totals.TotalDeductions
	record.NetSalary = totals.NetSalary

	if req.HasAttendanceCounters() {
		record.Present = intOrZero(req.Present)
		record.Absent = intOrZero(req.Absent)
		record.LateDays = intOrZero(req.LateDays)
		record.LateMinutes = intOrZero(req.LateMinutes)
	} else {
		summary, err := s.attendanceStats.MonthlySummary(ctx, schoolID, req.EmployeeID, req.Month, req.Year)
		if err != nil {
			return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to get attendance summary: %w", err)
		}
		record.Present = summary.Present
		record.Absent = summary.Absent
		record.LateDays = summary.LateDays
		record.LateMinutes = summary.LateMinutes
	}

	saved, err := s.payrollRepo.Upsert(ctx, record)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return mapToRecordResponse(saved), nil
}

// ListSalariesForPeriod projects the active roster onto the period: stored
// records are returned verbatim, employees without one get a synthesized
// default view. The projection is read-only and never creates a record.
func (s *PayrollServiceImpl) ListSalariesForPeriod(ctx context.Context, month, year int) ([]payroll.SalaryRowResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	roster, err := s.employeeRepo.GetActiveBySchoolID(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}

	// Point lookups touch disjoint keys and fan out concurrently. The
	// response is all-or-nothing: any failure (including cancellation)
	// abandons the in-flight lookups and nothing partial is returned.
	rows := make([]payroll.SalaryRowResponse, len(roster))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)

	for i, emp := range roster {
		i, emp := i, emp
		g.Go(func() error {
			rec, err := s.payrollRepo.GetByEmployeePeriod(gctx, schoolID, emp.ID, month, year)
			switch {
			case err == nil:
				rows[i] = storedSalaryRow(emp, rec)
			case errors.Is(err, payroll.ErrPayrollRecordNotFound):
				rows[i] = defaultSalaryRow(emp, month, year)
			default:
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

// GetPayroll fetches the stored record for one employee and period.
func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecordResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	rec, err := s.payrollRepo.GetByEmployeePeriod(ctx, schoolID, employeeID, month, year)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return mapToRecordResponse(rec), nil
}

// GetPeriodSummary aggregates the stored records of one period.
func (s *PayrollServiceImpl) GetPeriodSummary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}

	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}

	return s.payrollRepo.GetPeriodSummary(ctx, schoolID, month, year)
}

// ========== HELPERS ==========

func validatePeriod(month, year int) error {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a four-digit year"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func storedSalaryRow(emp employee.Employee, rec payroll.PayrollRecord) payroll.SalaryRowResponse {
	id := rec.ID
	return payroll.SalaryRowResponse{
		PayrollID:       &id,
		EmployeeID:      emp.ID,
		Name:            emp.FullName(),
		Department:      emp.Department,
		BasicSalary:     rec.BasicSalary,
		Allowances:      rec.Allowances,
		TotalAllowances: rec.TotalAllowances,
		Deductions:      rec.Deductions,
		TotalDeductions: rec.TotalDeductions,
		Advance:         rec.Advance,
		TotalDays:       rec.TotalDays,
		Present:         rec.Present,
		Absent:          rec.Absent,
		LateDays:        rec.LateDays,
		LateMinutes:     rec.LateMinutes,
		NetSalary:       rec.NetSalary,
	}
}

func defaultSalaryRow(emp employee.Employee, month, year int) payroll.SalaryRowResponse {
	return payroll.SalaryRowResponse{
		PayrollID:   nil,
		EmployeeID:  emp.ID,
		Name:        emp.FullName(),
		Department:  emp.Department,
		BasicSalary: emp.Salary,
		TotalDays:   payroll.DaysInMonth(month, year),
		NetSalary:   emp.Salary,
	}
}

func mapToRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	return payroll.PayrollRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		PeriodMonth:     r.PeriodMonth,
		PeriodYear:      r.PeriodYear,
		BasicSalary:     r.BasicSalary,
		Allowances:      r.Allowances,
		TotalAllowances: r.TotalAllowances,
		Deductions:      r.Deductions,
		TotalDeductions: r.TotalDeductions,
		Advance:         r.Advance,
		TotalDays:       r.TotalDays,
		Present:         r.Present,
		Absent:          r.Absent,
		LateDays:        r.LateDays,
		LateMinutes:     r.LateMinutes,
		NetSalary:       r.NetSalary,
	}
}
