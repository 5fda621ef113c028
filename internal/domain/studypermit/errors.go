package studypermit

import "errors"

var (
	ErrStudyPermitNotFound = errors.New("study permit request not found")
	ErrInvalidDateRange    = errors.New("end date must not be before start date")
	ErrNotOwner            = errors.New("study permit request belongs to another employee")
	ErrInvalidAttachment   = errors.New("invalid attachment file type")
)
