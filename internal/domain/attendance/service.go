package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	ListForMonth(ctx context.Context, month, year int, employeeID *string) ([]AttendanceResponse, error)
	MonthlySummary(ctx context.Context, employeeID string, month, year int) (SummaryResponse, error)
}

// SummaryProvider is the capability the payroll engine depends on to obtain
// attendance counters for a period instead of trusting numbers in the
// request body.
type SummaryProvider interface {
	MonthlySummary(ctx context.Context, schoolID, employeeID string, month, year int) (Summary, error)
}
