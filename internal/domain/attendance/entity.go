package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
)

// Attendance is one employee's record for one calendar day.
// At most one row exists per (employee, date).
type Attendance struct {
	ID          string
	SchoolID    string
	EmployeeID  string
	Date        time.Time
	CheckInAt   time.Time
	CheckOutAt  *time.Time
	Status      Status
	LateMinutes int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
}

// Summary aggregates one employee's attendance counters for a calendar month.
// It is the authoritative source the payroll engine reads when a save does
// not carry counters of its own.
type Summary struct {
	EmployeeID  string
	Present     int
	Absent      int
	LateDays    int
	LateMinutes int
}
