package attendance

import (
	"time"

	"github.com/campushq/school-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`         // YYYY-MM-DD
	CheckInAt  string `json:"check_in_at"`  // RFC3339
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDateTime(r.CheckInAt); !ok {
		errs = append(errs, validator.ValidationError{Field: "check_in_at", Message: "must be an RFC3339 timestamp"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	ID         string
	CheckOutAt string `json:"check_out_at"` // RFC3339
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDateTime(r.CheckOutAt); !ok {
		errs = append(errs, validator.ValidationError{Field: "check_out_at", Message: "must be an RFC3339 timestamp"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckInAt    string  `json:"check_in_at"`
	CheckOutAt   *string `json:"check_out_at,omitempty"`
	Status       string  `json:"status"`
	LateMinutes  int     `json:"late_minutes"`
}

type SummaryResponse struct {
	EmployeeID  string `json:"employee_id"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	TotalDays   int    `json:"total_days"`
	Present     int    `json:"present"`
	Absent      int    `json:"absent"`
	LateDays    int    `json:"late_days"`
	LateMinutes int    `json:"late_minutes"`
}

// MonthRange returns the UTC half-open interval [first, next-first) covering
// a calendar month.
func MonthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
