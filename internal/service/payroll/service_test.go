package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/school-backend-go/internal/domain/attendance"
	"github.com/campushq/school-backend-go/internal/domain/employee"
	"github.com/campushq/school-backend-go/internal/domain/payroll"
	"github.com/campushq/school-backend-go/internal/pkg/jwt"
	"github.com/campushq/school-backend-go/internal/pkg/validator"
)

const testSchoolID = "school-1"

func authedContext(t *testing.T) context.Context {
	t.Helper()

	jwtService := jwt.NewJWTService("test-secret", "1h")
	tokenString, _, err := jwtService.GenerateAccessToken("user-1", testSchoolID, "admin")
	require.NoError(t, err)

	token, err := jwtService.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

// ========== FAKES ==========

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	m := make(map[string]employee.Employee, len(emps))
	for _, e := range emps {
		m[e.ID] = e
	}
	return &fakeEmployeeRepo{employees: m}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id, schoolID string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.SchoolID != schoolID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetActiveBySchoolID(_ context.Context, schoolID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.SchoolID == schoolID && e.Status == employee.StatusActive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}

func (f *fakeEmployeeRepo) ListBySchoolID(_ context.Context, schoolID string, _ *employee.Status) ([]employee.Employee, error) {
	return f.GetActiveBySchoolID(context.Background(), schoolID)
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ string, _ employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) SetStatus(_ context.Context, id, _ string, status employee.Status) error {
	e := f.employees[id]
	e.Status = status
	f.employees[id] = e
	return nil
}

type fakePayrollRepo struct {
	mu          sync.Mutex
	records     map[string]payroll.PayrollRecord
	upsertCalls int
	nextID      int

	// failFor makes GetByEmployeePeriod fail for one employee ID.
	failFor string
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.PayrollRecord)}
}

func periodKey(schoolID, employeeID string, month, year int) string {
	return fmt.Sprintf("%s|%s|%d|%d", schoolID, employeeID, month, year)
}

func (f *fakePayrollRepo) Upsert(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.upsertCalls++
	key := periodKey(record.SchoolID, record.EmployeeID, record.PeriodMonth, record.PeriodYear)
	if existing, ok := f.records[key]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		f.nextID++
		record.ID = fmt.Sprintf("payroll-%d", f.nextID)
		record.CreatedAt = time.Now()
	}
	record.UpdatedAt = time.Now()
	f.records[key] = record
	return record, nil
}

func (f *fakePayrollRepo) GetByEmployeePeriod(_ context.Context, schoolID, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFor != "" && f.failFor == employeeID {
		return payroll.PayrollRecord{}, errors.New("connection reset")
	}
	rec, ok := f.records[periodKey(schoolID, employeeID, month, year)]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (f *fakePayrollRepo) GetPeriodSummary(_ context.Context, schoolID string, month, year int) (payroll.PayrollSummaryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	summary := payroll.PayrollSummaryResponse{PeriodMonth: month, PeriodYear: year}
	for _, rec := range f.records {
		if rec.SchoolID != schoolID || rec.PeriodMonth != month || rec.PeriodYear != year {
			continue
		}
		summary.RecordCount++
		summary.TotalBasic = summary.TotalBasic.Add(rec.BasicSalary)
		summary.TotalAllowances = summary.TotalAllowances.Add(rec.TotalAllowances)
		summary.TotalDeductions = summary.TotalDeductions.Add(rec.TotalDeductions)
		summary.TotalAdvance = summary.TotalAdvance.Add(rec.Advance)
		summary.TotalNet = summary.TotalNet.Add(rec.NetSalary)
	}
	return summary, nil
}

type fakeSummaryProvider struct {
	summary attendance.Summary
	err     error
	calls   int
}

func (f *fakeSummaryProvider) MonthlySummary(_ context.Context, _, employeeID string, _, _ int) (attendance.Summary, error) {
	f.calls++
	if f.err != nil {
		return attendance.Summary{}, f.err
	}
	s := f.summary
	s.EmployeeID = employeeID
	return s, nil
}

// ========== HELPERS ==========

func testEmployee(id, code, firstName string, salary int64) employee.Employee {
	return employee.Employee{
		ID:           id,
		SchoolID:     testSchoolID,
		EmployeeCode: code,
		FirstName:    firstName,
		LastName:     "Sharma",
		Department:   "Science",
		Salary:       decimal.NewFromInt(salary),
		Status:       employee.StatusActive,
	}
}

func ptr(v int) *int { return &v }

func newTestService(payrollRepo *fakePayrollRepo, employeeRepo *fakeEmployeeRepo, stats *fakeSummaryProvider) payroll.PayrollService {
	return NewPayrollService(nil, payrollRepo, employeeRepo, stats)
}

func validUpsertRequest() payroll.UpsertPayrollRequest {
	return payroll.UpsertPayrollRequest{
		EmployeeID:  "emp-1",
		Month:       2,
		Year:        2025,
		BasicSalary: decimal.NewFromInt(30000),
		Allowances: payroll.Allowances{
			HRA:     decimal.NewFromInt(2000),
			Medical: decimal.NewFromInt(500),
		},
		Deductions: payroll.Deductions{
			PF:  decimal.NewFromInt(1800),
			Tax: decimal.NewFromInt(1200),
		},
		Advance: decimal.NewFromInt(1000),
		Present: ptr(20),
		Absent:  ptr(2),
	}
}

// ========== UPSERT ==========

func TestUpsertPayroll_ComputesTotals(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestService(repo, newFakeEmployeeRepo(testEmployee("emp-1", "EMP001", "Asha", 30000)), &fakeSummaryProvider{})

	resp, err := svc.UpsertPayroll(authedContext(t), validUpsertRequest())
	require.NoError(t, err)

	assert.True(t, resp.TotalAllowances.Equal(decimal.NewFromInt(2500)))
	assert.True(t, resp.TotalDeductions.Equal(decimal.NewFromInt(3000)))
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(28500)))
	assert.Equal(t, 28, resp.TotalDays, "February 2025 has 28 days")
	assert.NotEmpty(t, resp.ID)
}

func TestUpsertPayroll_ExplicitTotalDaysWins(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestService(repo, newFakeEmployeeRepo(testEmployee("emp-1", "EMP001", "Asha", 30000)), &fakeSummaryProvider{})

	req := validUpsertRequest()
	req.TotalDays = ptr(26)

	resp, err := svc.UpsertPayroll(authedContext(t), req)
	require.NoError(t, err)
	assert.Equal(t, 26, resp.TotalDays)
}

func TestUpsertPayroll_Idempotent(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestService(repo, newFakeEmployeeRepo(testEmployee("emp-1", "EMP001", "Asha", 30000)), &fakeSummaryProvider{})
	ctx := authedContext(t)

	first, err := svc.UpsertPayroll(ctx, validUpsertRequest())
	require.NoError(t, err)

	second, err := svc.UpsertPayroll(ctx, validUpsertRequest())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "re-saving the same period keeps the same record")
	assert.Len(t, repo.records, 1)
	assert.True(t, second.NetSalary.Equal(first.NetSalary))
}

func TestUpsertPayroll_LastWriteWins(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestService(repo, newFakeEmployeeRepo(testEmployee("emp-1", "EMP001", "Asha", 30000)), &fakeSummaryProvider{})
	ctx := authedContext(t)

	_, err := svc.UpsertPayroll(ctx, validUpsertRequest())
	require.NoError(t, err)

	req := validUpsertRequest()
	req.Advance = decimal.NewFromInt(5000)

	resp, err := svc.UpsertPayroll(ctx, req)
	require.NoError(t, err)

	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(24500)), "netSalary = %s", resp.NetSalary)
	assert.Len(t, repo.records, 1)
}

func TestUpsertPayroll_ValidationErrors(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestService(repo, newFakeEmployeeRepo(), &fakeSummaryProvider{})

	req := validUpsertRequest()
	req.EmployeeID = ""
	req.Month = 13
	req.Advance = decimal.NewFromInt(-100)

	_, err := svc.UpsertPayroll(authedContext(t), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
	assert.Zero(t, repo.upsertCalls, "invalid requests must not reach the store")
}

func TestUpsertPayroll_EmployeeNotFound(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestService(repo, newFakeEmployeeRepo(), &fakeSummaryProvider{})

	_, err := svc.UpsertPayroll(authedContext(t), validUpsertRequest())

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Zero(t, repo.upsertCalls)
}

func TestUpsertPayroll_CountersFilledFromAttendanceLog(t *testing.T) {
	repo := newFakePayrollRepo()
	stats := &fakeSummaryProvider{summary: attendance.Summary{Present: 19, Absent: 3, LateDays: 2, LateMinutes: 35}}
	svc := newTestService(repo, newFakeEmployeeRepo(testEmployee("emp-1", "EMP001", "Asha", 30000)), stats)

	req := validUpsertRequest()
	req.Present = nil
	req.Absent = nil

	resp, err := svc.UpsertPayroll(authedContext(t), req)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.calls)
	assert.Equal(t, 19, resp.Present)
	assert.Equal(t, 3, resp.Absent)
	assert.Equal(t, 2, resp.LateDays)
	assert.Equal(t, 35, resp.LateMinutes)
}

func TestUpsertPayroll_RequestCountersWin(t *testing.T) {
	repo := newFakePayrollRepo()
	stats := &fakeSummaryProvider{summary: attendance.Summary{Present: 19, Absent: 3}}
	svc := newTestService(repo, newFakeEmployeeRepo(testEmployee("emp-1", "EMP001", "Asha", 30000)), stats)

	// A single explicit counter disables the attendance lookup entirely;
	// omitted siblings default to zero rather than mixing sources.
	req := validUpsertRequest()
	req.Present = ptr(18)
	req.Absent = nil

	resp, err := svc.UpsertPayroll(authedContext(t), req)
	require.NoError(t, err)

	assert.Zero(t, stats.calls)
	assert.Equal(t, 18, resp.Present)
	assert.Zero(t, resp.Absent)
}

func TestUpsertPayroll_MissingClaims(t *testing.T) {
	svc := newTestService(newFakePayrollRepo(), newFakeEmployeeRepo(), &fakeSummaryProvider{})

	_, err := svc.UpsertPayroll(context.Background(), validUpsertRequest())
	assert.Error(t, err)
}

// ========== PERIOD LISTING ==========

func TestListSalariesForPeriod_SynthesizesDefaults(t *testing.T) {
	repo := newFakePayrollRepo()
	empRepo := newFakeEmployeeRepo(
		testEmployee("emp-1", "EMP001", "Asha", 30000),
		testEmployee("emp-2", "EMP002", "Vikram", 42000),
	)
	svc := newTestService(repo, empRepo, &fakeSummaryProvider{})

	rows, err := svc.ListSalariesForPeriod(authedContext(t), 2, 2024)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Nil(t, first.PayrollID, "unsaved employees get a synthesized view")
	assert.Equal(t, "emp-1", first.EmployeeID)
	assert.Equal(t, "Asha Sharma", first.Name)
	assert.True(t, first.BasicSalary.Equal(decimal.NewFromInt(30000)))
	assert.True(t, first.NetSalary.Equal(decimal.NewFromInt(30000)))
	assert.Equal(t, 29, first.TotalDays, "February 2024 is a leap month")
	assert.True(t, first.TotalAllowances.IsZero())
	assert.True(t, first.TotalDeductions.IsZero())

	assert.Zero(t, repo.upsertCalls, "listing must never write records")
	assert.Empty(t, repo.records)
}

func TestListSalariesForPeriod_RepeatedListingPersistsNothing(t *testing.T) {
	repo := newFakePayrollRepo()
	empRepo := newFakeEmployeeRepo(testEmployee("emp-1", "EMP001", "Asha", 30000))
	svc := newTestService(repo, empRepo, &fakeSummaryProvider{})
	ctx := authedContext(t)

	first, err := svc.ListSalariesForPeriod(ctx, 6, 2025)
	require.NoError(t, err)

	second, err := svc.ListSalariesForPeriod(ctx, 6, 2025)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Empty(t, repo.records)
}

func TestListSalariesForPeriod_MixedStoredAndDefault(t *testing.T) {
	repo := newFakePayrollRepo()
	empRepo := newFakeEmployeeRepo(
		testEmployee("emp-1", "EMP001", "Asha", 30000),
		testEmployee("emp-2", "EMP002", "Vikram", 42000),
	)
	svc := newTestService(repo, empRepo, &fakeSummaryProvider{})
	ctx := authedContext(t)

	saved, err := svc.UpsertPayroll(ctx, validUpsertRequest())
	require.NoError(t, err)

	rows, err := svc.ListSalariesForPeriod(ctx, 2, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Roster order: EMP001 first.
	stored := rows[0]
	require.NotNil(t, stored.PayrollID)
	assert.Equal(t, saved.ID, *stored.PayrollID)
	assert.True(t, stored.NetSalary.Equal(decimal.NewFromInt(28500)))
	assert.Equal(t, 20, stored.Present)

	synthesized := rows[1]
	assert.Nil(t, synthesized.PayrollID)
	assert.Equal(t, "emp-2", synthesized.EmployeeID)
	assert.True(t, synthesized.NetSalary.Equal(decimal.NewFromInt(42000)))
}

func TestListSalariesForPeriod_InactiveEmployeesExcluded(t *testing.T) {
	inactive := testEmployee("emp-2", "EMP002", "Vikram", 42000)
	inactive.Status = employee.StatusInactive

	empRepo := newFakeEmployeeRepo(testEmployee("emp-1", "EMP001", "Asha", 30000), inactive)
	svc := newTestService(newFakePayrollRepo(), empRepo, &fakeSummaryProvider{})

	rows, err := svc.ListSalariesForPeriod(authedContext(t), 6, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "emp-1", rows[0].EmployeeID)
}

func TestListSalariesForPeriod_AllOrNothing(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.failFor = "emp-2"
	empRepo := newFakeEmployeeRepo(
		testEmployee("emp-1", "EMP001", "Asha", 30000),
		testEmployee("emp-2", "EMP002", "Vikram", 42000),
		testEmployee("emp-3", "EMP003", "Meera", 35000),
	)
	svc := newTestService(repo, empRepo, &fakeSummaryProvider{})

	rows, err := svc.ListSalariesForPeriod(authedContext(t), 6, 2025)
	assert.Error(t, err)
	assert.Nil(t, rows, "a failed lookup yields no partial listing")
}

func TestListSalariesForPeriod_InvalidPeriod(t *testing.T) {
	svc := newTestService(newFakePayrollRepo(), newFakeEmployeeRepo(), &fakeSummaryProvider{})

	_, err := svc.ListSalariesForPeriod(authedContext(t), 0, 99)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

// ========== POINT LOOKUP AND SUMMARY ==========

func TestGetPayroll_NotFound(t *testing.T) {
	svc := newTestService(newFakePayrollRepo(), newFakeEmployeeRepo(), &fakeSummaryProvider{})

	_, err := svc.GetPayroll(authedContext(t), "emp-1", 6, 2025)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestGetPeriodSummary_AggregatesStoredRecords(t *testing.T) {
	repo := newFakePayrollRepo()
	empRepo := newFakeEmployeeRepo(
		testEmployee("emp-1", "EMP001", "Asha", 30000),
		testEmployee("emp-2", "EMP002", "Vikram", 42000),
	)
	svc := newTestService(repo, empRepo, &fakeSummaryProvider{})
	ctx := authedContext(t)

	_, err := svc.UpsertPayroll(ctx, validUpsertRequest())
	require.NoError(t, err)

	second := validUpsertRequest()
	second.EmployeeID = "emp-2"
	second.BasicSalary = decimal.NewFromInt(42000)
	_, err = svc.UpsertPayroll(ctx, second)
	require.NoError(t, err)

	summary, err := svc.GetPeriodSummary(ctx, 2, 2025)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.RecordCount)
	assert.True(t, summary.TotalBasic.Equal(decimal.NewFromInt(72000)))
	assert.True(t, summary.TotalNet.Equal(decimal.NewFromInt(69000)), "totalNet = %s", summary.TotalNet)
}
