package employee

import (
	"github.com/campushq/school-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode   string          `json:"employee_code"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	Gender         *string         `json:"gender,omitempty"`
	DOB            *string         `json:"dob,omitempty"`
	Department     string          `json:"department"`
	Designation    string          `json:"designation"`
	EmploymentType string          `json:"employment_type"`
	JoinDate       string          `json:"join_date"`
	Salary         decimal.Decimal `json:"salary"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "is required"})
	}
	if r.Gender != nil && *r.Gender != string(Male) && *r.Gender != string(Female) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "must be Male or Female"})
	}
	if r.DOB != nil {
		if _, ok := validator.IsValidDate(*r.DOB); !ok {
			errs = append(errs, validator.ValidationError{Field: "dob", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if _, ok := validator.IsValidDate(r.JoinDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "join_date", Message: "must be in YYYY-MM-DD format"})
	}
	switch EmploymentType(r.EmploymentType) {
	case EmploymentTypeFullTime, EmploymentTypePartTime, EmploymentTypeContract:
	default:
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "must be full-time, part-time or contract"})
	}
	if r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID             string
	FirstName      *string          `json:"first_name,omitempty"`
	LastName       *string          `json:"last_name,omitempty"`
	Email          *string          `json:"email,omitempty"`
	PhoneNumber    *string          `json:"phone_number,omitempty"`
	Department     *string          `json:"department,omitempty"`
	Designation    *string          `json:"designation,omitempty"`
	EmploymentType *string          `json:"employment_type,omitempty"`
	Salary         *decimal.Decimal `json:"salary,omitempty"`
	Status         *string          `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be non-negative"})
	}
	if r.Status != nil {
		switch Status(*r.Status) {
		case StatusActive, StatusInactive, StatusOnLeave:
		default:
			errs = append(errs, validator.ValidationError{Field: "status", Message: "must be active, inactive or on-leave"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	EmployeeCode   string          `json:"employee_code"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	Department     string          `json:"department"`
	Designation    string          `json:"designation"`
	EmploymentType string          `json:"employment_type"`
	JoinDate       string          `json:"join_date"`
	Salary         decimal.Decimal `json:"salary"`
	Status         string          `json:"status"`
}
