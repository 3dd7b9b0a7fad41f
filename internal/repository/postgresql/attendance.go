package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campushq/school-backend-go/internal/domain/attendance"
	"github.com/campushq/school-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (id, school_id, employee_id, date, check_in_at, status, late_minutes)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6)
		RETURNING id, school_id, employee_id, date, check_in_at, check_out_at, status, late_minutes, created_at, updated_at
	`

	var rec attendance.Attendance
	err := q.QueryRow(ctx, query,
		record.SchoolID, record.EmployeeID, record.Date, record.CheckInAt,
		record.Status, record.LateMinutes,
	).Scan(
		&rec.ID, &rec.SchoolID, &rec.EmployeeID, &rec.Date, &rec.CheckInAt,
		&rec.CheckOutAt, &rec.Status, &rec.LateMinutes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_attendance_day") {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByID(ctx context.Context, id string, schoolID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.school_id, a.employee_id, a.date, a.check_in_at, a.check_out_at,
			a.status, a.late_minutes, a.created_at, a.updated_at
		FROM attendances a
		WHERE a.id = $1 AND a.school_id = $2
	`

	var rec attendance.Attendance
	err := q.QueryRow(ctx, query, id, schoolID).Scan(
		&rec.ID, &rec.SchoolID, &rec.EmployeeID, &rec.Date, &rec.CheckInAt,
		&rec.CheckOutAt, &rec.Status, &rec.LateMinutes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return rec, nil
}

// HasCheckedIn implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) HasCheckedIn(ctx context.Context, employeeID string, date time.Time, schoolID string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE employee_id = $1 AND date = $2 AND school_id = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date, schoolID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance existence: %w", err)
	}

	return exists, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) SetCheckOut(ctx context.Context, id string, schoolID string, checkOutAt time.Time) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out_at = $3, updated_at = NOW()
		WHERE id = $1 AND school_id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, schoolID, checkOutAt).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to set check-out: %w", err)
	}

	return nil
}

// ListForMonth implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListForMonth(ctx context.Context, schoolID string, month, year int, employeeID *string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	start, end := attendance.MonthRange(month, year)

	query := `
		SELECT a.id, a.school_id, a.employee_id, a.date, a.check_in_at, a.check_out_at,
			a.status, a.late_minutes, a.created_at, a.updated_at,
			e.first_name || ' ' || e.last_name AS employee_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.school_id = $1 AND a.date >= $2 AND a.date < $3
	`
	args := []interface{}{schoolID, start, end}
	if employeeID != nil {
		query += " AND a.employee_id = $4"
		args = append(args, *employeeID)
	}
	query += " ORDER BY a.date, e.employee_code"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var rec attendance.Attendance
		if err := rows.Scan(
			&rec.ID, &rec.SchoolID, &rec.EmployeeID, &rec.Date, &rec.CheckInAt,
			&rec.CheckOutAt, &rec.Status, &rec.LateMinutes, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// MonthlySummary implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) MonthlySummary(ctx context.Context, schoolID, employeeID string, month, year int) (attendance.Summary, error) {
	q := GetQuerier(ctx, a.db)

	start, end := attendance.MonthRange(month, year)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ($5, $6)),
			COUNT(*) FILTER (WHERE status = $7),
			COUNT(*) FILTER (WHERE status = $6),
			COALESCE(SUM(late_minutes), 0)
		FROM attendances
		WHERE school_id = $1 AND employee_id = $2 AND date >= $3 AND date < $4
	`

	summary := attendance.Summary{EmployeeID: employeeID}
	err := q.QueryRow(ctx, query,
		schoolID, employeeID, start, end,
		attendance.StatusPresent, attendance.StatusLate, attendance.StatusAbsent,
	).Scan(&summary.Present, &summary.Absent, &summary.LateDays, &summary.LateMinutes)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to get attendance summary: %w", err)
	}

	return summary, nil
}
