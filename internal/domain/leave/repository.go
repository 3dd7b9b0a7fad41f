package leave

import "context"

type LeaveRepository interface {
	Create(ctx context.Context, request Leave) (Leave, error)
	GetByID(ctx context.Context, id string, schoolID string) (Leave, error)
	ListBySchoolID(ctx context.Context, schoolID string, status *Status, employeeID *string) ([]Leave, error)
	// UpdateStatus records a review decision for a still-pending request.
	// A request reviewed concurrently yields ErrLeaveRequestAlreadyProcessed.
	UpdateStatus(ctx context.Context, id string, schoolID string, status Status, reviewedBy string) error
	Delete(ctx context.Context, id string, schoolID string) error
}

type LeaveService interface {
	ApplyLeave(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	GetLeave(ctx context.Context, id string) (LeaveResponse, error)
	ListLeaves(ctx context.Context, status *Status, employeeID *string) ([]LeaveResponse, error)
	ReviewLeave(ctx context.Context, req ReviewLeaveRequest) (LeaveResponse, error)
	DeleteLeave(ctx context.Context, id string) error
}
