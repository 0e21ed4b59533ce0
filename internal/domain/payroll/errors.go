package payroll

import "errors"

var (
	ErrPayrollRecordNotFound  = errors.New("payroll record not found")
	ErrPayrollAlreadyPaid     = errors.New("payroll record already paid, cannot modify")
	ErrCannotDeletePaidRecord = errors.New("cannot delete paid payroll record")
	ErrInvalidPeriod          = errors.New("invalid payroll period")
	ErrInvalidMonthName       = errors.New("invalid month name")
)
