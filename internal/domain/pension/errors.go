package pension

import "errors"

var (
	ErrPensionRequestNotFound = errors.New("pension request not found")
	ErrActivePensionExists    = errors.New("employee already has an active pension request")
	ErrNotOwner               = errors.New("pension request belongs to another employee")
	ErrInvalidAttachment      = errors.New("invalid attachment file type")
)
