package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             string
	SchoolID       string
	EmployeeCode   string
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    *string
	Gender         *Gender
	DOB            *time.Time
	Department     string
	Designation    string
	EmploymentType EmploymentType
	JoinDate       time.Time
	// Salary is the nominal monthly salary used as the default basic pay
	// when no payroll record has been saved for a period yet.
	Salary    decimal.Decimal
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "full-time"
	EmploymentTypePartTime EmploymentType = "part-time"
	EmploymentTypeContract EmploymentType = "contract"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOnLeave  Status = "on-leave"
)
