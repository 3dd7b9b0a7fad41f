package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/campushq/school-backend-go/internal/config"
	"github.com/campushq/school-backend-go/internal/domain/attendance"
	"github.com/campushq/school-backend-go/internal/domain/employee"
	"github.com/campushq/school-backend-go/internal/pkg/database"
	"github.com/campushq/school-backend-go/internal/pkg/jwt"
	"github.com/campushq/school-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	workdayStart   string
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	schoolCfg config.SchoolConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		workdayStart:   schoolCfg.WorkdayStart,
	}
}

// CheckIn marks one employee present for a day. A second check-in for the
// same day is rejected. Lateness is derived against the school's workday
// start, not taken from the request.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.employeeRepo.GetByID(ctx, req.EmployeeID, schoolID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	checkInAt, _ := time.Parse(time.RFC3339, req.CheckInAt)

	checkedIn, err := a.attendanceRepo.HasCheckedIn(ctx, req.EmployeeID, date, schoolID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if checkedIn {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	status, lateMinutes := a.classify(date, checkInAt)

	rec, err := a.attendanceRepo.Create(ctx, attendance.Attendance{
		SchoolID:    schoolID,
		EmployeeID:  req.EmployeeID,
		Date:        date,
		CheckInAt:   checkInAt,
		Status:      status,
		LateMinutes: lateMinutes,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapToResponse(rec), nil
}

// classify compares a check-in against the workday start for that date.
func (a *AttendanceServiceImpl) classify(date, checkInAt time.Time) (attendance.Status, int) {
	start, err := time.Parse("15:04", a.workdayStart)
	if err != nil {
		return attendance.StatusPresent, 0
	}

	threshold := time.Date(date.Year(), date.Month(), date.Day(),
		start.Hour(), start.Minute(), 0, 0, checkInAt.Location())

	if checkInAt.After(threshold) {
		return attendance.StatusLate, int(checkInAt.Sub(threshold).Minutes())
	}
	return attendance.StatusPresent, 0
}

// CheckOut records the end of an attendance day.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := a.attendanceRepo.GetByID(ctx, req.ID, schoolID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if rec.CheckOutAt != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOutAt, _ := time.Parse(time.RFC3339, req.CheckOutAt)
	if checkOutAt.Before(rec.CheckInAt) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeIn
	}

	if err := a.attendanceRepo.SetCheckOut(ctx, req.ID, schoolID, checkOutAt); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec.CheckOutAt = &checkOutAt
	return mapToResponse(rec), nil
}

// ListForMonth returns the attendance log for a month, optionally narrowed
// to one employee.
func (a *AttendanceServiceImpl) ListForMonth(ctx context.Context, month, year int, employeeID *string) ([]attendance.AttendanceResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := a.attendanceRepo.ListForMonth(ctx, schoolID, month, year, employeeID)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, mapToResponse(rec))
	}

	return result, nil
}

// MonthlySummary aggregates one employee's counters for a month. This is the
// figure the payroll engine consumes; the engine never derives counters from
// the raw log itself.
func (a *AttendanceServiceImpl) MonthlySummary(ctx context.Context, employeeID string, month, year int) (attendance.SummaryResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return attendance.SummaryResponse{}, err
	}

	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	if _, err := a.employeeRepo.GetByID(ctx, employeeID, schoolID); err != nil {
		return attendance.SummaryResponse{}, err
	}

	summary, err := a.attendanceRepo.MonthlySummary(ctx, schoolID, employeeID, month, year)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to get monthly summary: %w", err)
	}

	totalDays := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	return attendance.SummaryResponse{
		EmployeeID:  employeeID,
		Month:       month,
		Year:        year,
		TotalDays:   totalDays,
		Present:     summary.Present,
		Absent:      summary.Absent,
		LateDays:    summary.LateDays,
		LateMinutes: summary.LateMinutes,
	}, nil
}

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

func mapToResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	var checkOut *string
	if rec.CheckOutAt != nil {
		s := rec.CheckOutAt.Format(time.RFC3339)
		checkOut = &s
	}

	employeeName := ""
	if rec.EmployeeName != nil {
		employeeName = *rec.EmployeeName
	}

	return attendance.AttendanceResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: employeeName,
		Date:         rec.Date.Format("2006-01-02"),
		CheckInAt:    rec.CheckInAt.Format(time.RFC3339),
		CheckOutAt:   checkOut,
		Status:       string(rec.Status),
		LateMinutes:  rec.LateMinutes,
	}
}
