package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string, schoolID string) (Attendance, error)
	HasCheckedIn(ctx context.Context, employeeID string, date time.Time, schoolID string) (bool, error)
	SetCheckOut(ctx context.Context, id string, schoolID string, checkOutAt time.Time) error
	ListForMonth(ctx context.Context, schoolID string, month, year int, employeeID *string) ([]Attendance, error)
	// MonthlySummary aggregates one employee's counters for a month.
	// An employee with no rows for the period yields a zero summary, not an error.
	MonthlySummary(ctx context.Context, schoolID, employeeID string, month, year int) (Summary, error)
}
