package employee

import (
	"context"
)

// EmployeeService defines business logic for employee directory operations
// (schoolID comes from JWT claims on the request context).
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, status *Status) ([]EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeactivateEmployee(ctx context.Context, id string) error
}
