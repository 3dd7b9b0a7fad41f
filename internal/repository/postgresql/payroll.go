package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campushq/school-backend-go/internal/domain/payroll"
	"github.com/campushq/school-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `id, school_id, employee_id, period_month, period_year,
	basic_salary, allowance_hra, allowance_medical, allowance_bonus, total_allowances,
	deduction_pf, deduction_tax, total_deductions, advance,
	total_days, present, absent, late_days, late_minutes, net_salary,
	created_at, updated_at`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.SchoolID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.BasicSalary, &rec.Allowances.HRA, &rec.Allowances.Medical, &rec.Allowances.Bonus,
		&rec.TotalAllowances, &rec.Deductions.PF, &rec.Deductions.Tax, &rec.TotalDeductions,
		&rec.Advance, &rec.TotalDays, &rec.Present, &rec.Absent, &rec.LateDays,
		&rec.LateMinutes, &rec.NetSalary, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Upsert implements payroll.PayrollRepository. The UNIQUE constraint on
// (school_id, employee_id, period_month, period_year) plus ON CONFLICT makes
// the save atomic; the database serializes concurrent saves for the same key.
func (r *payrollRepository) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, school_id, employee_id, period_month, period_year,
			basic_salary, allowance_hra, allowance_medical, allowance_bonus, total_allowances,
			deduction_pf, deduction_tax, total_deductions, advance,
			total_days, present, absent, late_days, late_minutes, net_salary
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (school_id, employee_id, period_month, period_year) DO UPDATE SET
			basic_salary = EXCLUDED.basic_salary,
			allowance_hra = EXCLUDED.allowance_hra,
			allowance_medical = EXCLUDED.allowance_medical,
			allowance_bonus = EXCLUDED.allowance_bonus,
			total_allowances = EXCLUDED.total_allowances,
			deduction_pf = EXCLUDED.deduction_pf,
			deduction_tax = EXCLUDED.deduction_tax,
			total_deductions = EXCLUDED.total_deductions,
			advance = EXCLUDED.advance,
			total_days = EXCLUDED.total_days,
			present = EXCLUDED.present,
			absent = EXCLUDED.absent,
			late_days = EXCLUDED.late_days,
			late_minutes = EXCLUDED.late_minutes,
			net_salary = EXCLUDED.net_salary,
			updated_at = NOW()
		RETURNING ` + payrollColumns

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query,
		record.SchoolID, record.EmployeeID, record.PeriodMonth, record.PeriodYear,
		record.BasicSalary, record.Allowances.HRA, record.Allowances.Medical, record.Allowances.Bonus,
		record.TotalAllowances, record.Deductions.PF, record.Deductions.Tax, record.TotalDeductions,
		record.Advance, record.TotalDays, record.Present, record.Absent, record.LateDays,
		record.LateMinutes, record.NetSalary,
	))
	if err != nil {
		// Raced inserts can still surface the unique violation when the
		// conflicting row is not yet visible to this transaction.
		if strings.Contains(err.Error(), "uk_payroll_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordConflict
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return rec, nil
}

// GetByEmployeePeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, schoolID, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE school_id = $1 AND employee_id = $2 AND period_month = $3 AND period_year = $4
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, schoolID, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

// GetPeriodSummary implements payroll.PayrollRepository.
func (r *payrollRepository) GetPeriodSummary(ctx context.Context, schoolID string, month, year int) (payroll.PayrollSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			COALESCE(SUM(basic_salary), 0),
			COALESCE(SUM(total_allowances), 0),
			COALESCE(SUM(total_deductions), 0),
			COALESCE(SUM(advance), 0),
			COALESCE(SUM(net_salary), 0)
		FROM payroll_records
		WHERE school_id = $1 AND period_month = $2 AND period_year = $3
	`

	summary := payroll.PayrollSummaryResponse{PeriodMonth: month, PeriodYear: year}
	err := q.QueryRow(ctx, query, schoolID, month, year).Scan(
		&summary.RecordCount, &summary.TotalBasic, &summary.TotalAllowances,
		&summary.TotalDeductions, &summary.TotalAdvance, &summary.TotalNet,
	)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	return summary, nil
}
