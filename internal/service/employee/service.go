package employee

import (
	"context"
	"time"

	"github.com/campushq/school-backend-go/internal/domain/employee"
	"github.com/campushq/school-backend-go/internal/pkg/database"
	"github.com/campushq/school-backend-go/internal/pkg/jwt"
	"github.com/campushq/school-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	withTx       func(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error
}

func NewEmployeeService(db *database.DB, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		withTx:       postgresql.WithTransaction,
	}
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	joinDate, _ := time.Parse("2006-01-02", req.JoinDate)

	var gender *employee.Gender
	if req.Gender != nil {
		g := employee.Gender(*req.Gender)
		gender = &g
	}

	var dob *time.Time
	if req.DOB != nil {
		parsed, _ := time.Parse("2006-01-02", *req.DOB)
		dob = &parsed
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		SchoolID:       schoolID,
		EmployeeCode:   req.EmployeeCode,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Gender:         gender,
		DOB:            dob,
		Department:     req.Department,
		Designation:    req.Designation,
		EmploymentType: employee.EmploymentType(req.EmploymentType),
		JoinDate:       joinDate,
		Salary:         req.Salary,
		Status:         employee.StatusActive,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id, schoolID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapToResponse(emp), nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, status *employee.Status) ([]employee.EmployeeResponse, error) {
	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListBySchoolID(ctx, schoolID, status)
	if err != nil {
		return nil, err
	}

	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, mapToResponse(emp))
	}

	return result, nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Update and re-read inside one transaction so the returned view cannot
	// interleave with a concurrent update.
	var resp employee.EmployeeResponse
	err = s.withTx(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.employeeRepo.Update(txCtx, schoolID, req); err != nil {
			return err
		}

		emp, err := s.employeeRepo.GetByID(txCtx, req.ID, schoolID)
		if err != nil {
			return err
		}

		resp = mapToResponse(emp)
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return resp, nil
}

func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string) error {
	schoolID, err := jwt.SchoolIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.employeeRepo.SetStatus(ctx, id, schoolID, employee.StatusInactive)
}

func mapToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:             emp.ID,
		EmployeeCode:   emp.EmployeeCode,
		Name:           emp.FullName(),
		Email:          emp.Email,
		PhoneNumber:    emp.PhoneNumber,
		Department:     emp.Department,
		Designation:    emp.Designation,
		EmploymentType: string(emp.EmploymentType),
		JoinDate:       emp.JoinDate.Format("2006-01-02"),
		Salary:         emp.Salary,
		Status:         string(emp.Status),
	}
}
