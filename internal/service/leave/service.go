package leave

import (
	"context"
	"time"

	"github.com/campushq/school-backend-go/internal/domain/employee"
	"github.com/campushq/school-backend-go/internal/domain/leave"
	"github.com/campushq/school-backend-go/internal/pkg/database"
	"github.com/campushq/school-backend-go/internal/pkg/jwt"
	"github.com/campushq/school-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type LeaveServiceImpl struct {
	db           *database.DB
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	withTx       func(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error
}

func NewLeaveService(db *database.DB, leaveRepo leave.LeaveRepository, employeeRepo employee.EmployeeRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		db:           db,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		withTx:       postgresql.WithTransaction,
	}
}

// ApplyLeave files a new request. The day count is derived from the date
// range; a request always starts out pending.
func (s *LeaveServiceImpl) ApplyLeave(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, schoolID); err != nil {
		return leave.LeaveResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	rec, err := s.leaveRepo.Create(ctx, leave.Leave{
		SchoolID:   schoolID,
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		Reason:     req.Reason,
		StartDate:  startDate,
		EndDate:    endDate,
		NumDays:    numDays(startDate, endDate),
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return mapToResponse(rec), nil
}

// numDays counts the calendar days of the range, both endpoints included.
func numDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func (s *LeaveServiceImpl) GetLeave(ctx context.Context, id string) (leave.LeaveResponse, error) {
	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	rec, err := s.leaveRepo.GetByID(ctx, id, schoolID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return mapToResponse(rec), nil
}

func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, status *leave.Status, employeeID *string) ([]leave.LeaveResponse, error) {
	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.leaveRepo.ListBySchoolID(ctx, schoolID, status, employeeID)
	if err != nil {
		return nil, err
	}

	result := make([]leave.LeaveResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, mapToResponse(rec))
	}

	return result, nil
}

// ReviewLeave records an approve/reject decision. The check-then-update runs
// inside one transaction; a request that was already decided is not
// overwritten.
func (s *LeaveServiceImpl) ReviewLeave(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	reviewerID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	var resp leave.LeaveResponse
	err = s.withTx(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		rec, err := s.leaveRepo.GetByID(txCtx, req.ID, schoolID)
		if err != nil {
			return err
		}
		if rec.Status != leave.StatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		if err := s.leaveRepo.UpdateStatus(txCtx, req.ID, schoolID, leave.Status(req.Status), reviewerID); err != nil {
			return err
		}

		rec, err = s.leaveRepo.GetByID(txCtx, req.ID, schoolID)
		if err != nil {
			return err
		}

		resp = mapToResponse(rec)
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return resp, nil
}

func (s *LeaveServiceImpl) DeleteLeave(ctx context.Context, id string) error {
	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.leaveRepo.Delete(ctx, id, schoolID)
}

func mapToResponse(rec leave.Leave) leave.LeaveResponse {
	var reviewedAt *string
	if rec.ReviewedAt != nil {
		s := rec.ReviewedAt.Format(time.RFC3339)
		reviewedAt = &s
	}

	employeeName := ""
	if rec.EmployeeName != nil {
		employeeName = *rec.EmployeeName
	}

	return leave.LeaveResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: employeeName,
		LeaveType:    rec.LeaveType,
		Reason:       rec.Reason,
		StartDate:    rec.StartDate.Format("2006-01-02"),
		EndDate:      rec.EndDate.Format("2006-01-02"),
		NumDays:      rec.NumDays,
		Status:       string(rec.Status),
		ReviewedBy:   rec.ReviewedBy,
		ReviewedAt:   reviewedAt,
	}
}
