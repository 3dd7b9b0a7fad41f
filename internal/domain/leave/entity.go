package leave

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Leave is one employee's leave request. NumDays is derived from the date
// range on apply and never taken from the client.
type Leave struct {
	ID         string
	SchoolID   string
	EmployeeID string

	LeaveType string
	Reason    string
	StartDate time.Time
	EndDate   time.Time
	NumDays   int

	Status     Status
	ReviewedBy *string
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}
