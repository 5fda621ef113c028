package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNIPExists        = errors.New("NIP already registered")
	ErrInvalidNIP       = errors.New("NIP must be exactly 18 digits")
	ErrEmployeeRetired  = errors.New("employee is already retired")
)
