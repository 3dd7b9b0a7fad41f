package payroll

import "context"

// PayrollRepository defines data access for payroll records.
// All methods take schoolID to prevent cross-school data access.
type PayrollRepository interface {
	// Upsert atomically inserts or overwrites the record for its
	// (employee, month, year) key. The store serializes concurrent upserts
	// for the same key; the engine holds no locks of its own.
	Upsert(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, schoolID, employeeID string, month, year int) (PayrollRecord, error)
	GetPeriodSummary(ctx context.Context, schoolID string, month, year int) (PayrollSummaryResponse, error)
}

type PayrollService interface {
	UpsertPayroll(ctx context.Context, req UpsertPayrollRequest) (PayrollRecordResponse, error)
	ListSalariesForPeriod(ctx context.Context, month, year int) ([]SalaryRowResponse, error)
	GetPayroll(ctx context.Context, employeeID string, month, year int) (PayrollRecordResponse, error)
	GetPeriodSummary(ctx context.Context, month, year int) (PayrollSummaryResponse, error)
}
