package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string, schoolID string) (Employee, error)
	// GetActiveBySchoolID returns the active roster in stable employee-code
	// order, so repeated listings over the same snapshot are deterministic.
	GetActiveBySchoolID(ctx context.Context, schoolID string) ([]Employee, error)
	ListBySchoolID(ctx context.Context, schoolID string, status *Status) ([]Employee, error)
	Update(ctx context.Context, schoolID string, req UpdateEmployeeRequest) error
	SetStatus(ctx context.Context, id string, schoolID string, status Status) error
}
