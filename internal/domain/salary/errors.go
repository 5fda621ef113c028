package salary

import "errors"

var (
	ErrSalaryIncreaseNotFound = errors.New("salary increase not found")
	ErrPendingIncreaseExists  = errors.New("employee already has a salary increase awaiting approval")
	ErrNotOwner               = errors.New("salary increase belongs to another employee")
)
