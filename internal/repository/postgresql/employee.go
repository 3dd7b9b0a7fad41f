package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campushq/school-backend-go/internal/domain/employee"
	"github.com/campushq/school-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, school_id, employee_code, first_name, last_name, email, phone_number,
	gender, dob, department, designation, employment_type, join_date, salary, status,
	created_at, updated_at, deleted_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.SchoolID, &emp.EmployeeCode, &emp.FirstName, &emp.LastName,
		&emp.Email, &emp.PhoneNumber, &emp.Gender, &emp.DOB, &emp.Department,
		&emp.Designation, &emp.EmploymentType, &emp.JoinDate, &emp.Salary,
		&emp.Status, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, school_id, employee_code, first_name, last_name, email, phone_number,
			gender, dob, department, designation, employment_type, join_date, salary, status
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + employeeColumns

	emp, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.SchoolID, newEmployee.EmployeeCode, newEmployee.FirstName,
		newEmployee.LastName, newEmployee.Email, newEmployee.PhoneNumber,
		newEmployee.Gender, newEmployee.DOB, newEmployee.Department,
		newEmployee.Designation, newEmployee.EmploymentType, newEmployee.JoinDate,
		newEmployee.Salary, newEmployee.Status,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		if strings.Contains(err.Error(), "uk_employee_email") {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, schoolID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, schoolID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetActiveBySchoolID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActiveBySchoolID(ctx context.Context, schoolID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE school_id = $1 AND status = $2 AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, schoolID, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// ListBySchoolID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListBySchoolID(ctx context.Context, schoolID string, status *employee.Status) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE school_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{schoolID}
	if status != nil {
		query += " AND status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY employee_code"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, schoolID string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, e.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, schoolID}
	argIdx := 3

	addSet := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.FirstName != nil {
		addSet("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		addSet("last_name", *req.LastName)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.PhoneNumber != nil {
		addSet("phone_number", *req.PhoneNumber)
	}
	if req.Department != nil {
		addSet("department", *req.Department)
	}
	if req.Designation != nil {
		addSet("designation", *req.Designation)
	}
	if req.EmploymentType != nil {
		addSet("employment_type", *req.EmploymentType)
	}
	if req.Salary != nil {
		addSet("salary", *req.Salary)
	}
	if req.Status != nil {
		addSet("status", *req.Status)
	}

	query := fmt.Sprintf(`
		UPDATE employees
		SET %s
		WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		if strings.Contains(err.Error(), "uk_employee_email") {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// SetStatus implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SetStatus(ctx context.Context, id string, schoolID string, status employee.Status) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, schoolID, status).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to set employee status: %w", err)
	}

	return nil
}
