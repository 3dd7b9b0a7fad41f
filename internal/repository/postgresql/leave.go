package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushq/school-backend-go/internal/domain/leave"
	"github.com/campushq/school-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `l.id, l.school_id, l.employee_id, l.leave_type, l.reason,
	l.start_date, l.end_date, l.num_days, l.status, l.reviewed_by, l.reviewed_at,
	l.created_at, l.updated_at`

func scanLeave(row pgx.Row, withName bool) (leave.Leave, error) {
	var rec leave.Leave
	dest := []interface{}{
		&rec.ID, &rec.SchoolID, &rec.EmployeeID, &rec.LeaveType, &rec.Reason,
		&rec.StartDate, &rec.EndDate, &rec.NumDays, &rec.Status,
		&rec.ReviewedBy, &rec.ReviewedAt, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if withName {
		dest = append(dest, &rec.EmployeeName)
	}
	err := row.Scan(dest...)
	return rec, err
}

// Create implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) Create(ctx context.Context, request leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leaves AS l (id, school_id, employee_id, leave_type, reason, start_date, end_date, num_days, status)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + leaveColumns

	rec, err := scanLeave(q.QueryRow(ctx, query,
		request.SchoolID, request.EmployeeID, request.LeaveType, request.Reason,
		request.StartDate, request.EndDate, request.NumDays, request.Status,
	), false)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return rec, nil
}

// GetByID implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) GetByID(ctx context.Context, id string, schoolID string) (leave.Leave, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveColumns + `, e.first_name || ' ' || e.last_name AS employee_name
		FROM leaves l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1 AND l.school_id = $2
	`

	rec, err := scanLeave(q.QueryRow(ctx, query, id, schoolID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return rec, nil
}

// ListBySchoolID implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) ListBySchoolID(ctx context.Context, schoolID string, status *leave.Status, employeeID *string) ([]leave.Leave, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveColumns + `, e.first_name || ' ' || e.last_name AS employee_name
		FROM leaves l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.school_id = $1
	`
	args := []interface{}{schoolID}
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND l.status = $%d", len(args))
	}
	if employeeID != nil {
		args = append(args, *employeeID)
		query += fmt.Sprintf(" AND l.employee_id = $%d", len(args))
	}
	query += " ORDER BY l.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var records []leave.Leave
	for rows.Next() {
		rec, err := scanLeave(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// UpdateStatus implements leave.LeaveRepository. The status predicate keeps a
// raced second review from overwriting the first decision.
func (l *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, schoolID string, status leave.Status, reviewedBy string) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leaves
		SET status = $3, reviewed_by = $4, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND school_id = $2 AND status = $5
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, schoolID, status, reviewedBy, leave.StatusPending).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveRequestAlreadyProcessed
		}
		return fmt.Errorf("failed to update leave status: %w", err)
	}

	return nil
}

// Delete implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) Delete(ctx context.Context, id string, schoolID string) error {
	q := GetQuerier(ctx, l.db)

	query := `DELETE FROM leaves WHERE id = $1 AND school_id = $2 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id, schoolID).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to delete leave request: %w", err)
	}

	return nil
}
