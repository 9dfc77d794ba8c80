package payslip

import "errors"

var (
	ErrInvalidMonth     = errors.New("month must be between 1 and 12")
	ErrInvalidYear      = errors.New("year must be a 4-digit value")
	ErrInvalidSalary    = errors.New("monthly salary must be a non-negative amount")
	ErrEmployeeRequired = errors.New("an employee must be selected")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrBreakdownMissing = errors.New("salary breakdown has not been calculated")
	ErrNegativeAmount   = errors.New("amounts must not be negative")
	ErrNegativeNet      = errors.New("net salary is negative, check deductions")
	ErrInvalidDays      = errors.New("paid days must not exceed working days or the days in the month")
	ErrDuplicatePayslip = errors.New("payslip already exists for this period")
	ErrPayslipNotFound  = errors.New("payslip not found")
	ErrRenderFailed     = errors.New("payslip saved but document generation failed")
	ErrDocumentNotReady = errors.New("payslip document has not been generated")
)
