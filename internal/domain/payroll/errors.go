package payroll

import "errors"

var (
	ErrPayrollRecordNotFound = errors.New("payroll record not found")
	ErrPayrollRecordConflict = errors.New("concurrent payroll save for the same period")
)
