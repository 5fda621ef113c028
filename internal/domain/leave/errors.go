package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveQuotaNotFound   = errors.New("leave quota not found")
	ErrLeaveQuotaExists     = errors.New("leave quota already exists for this employee and year")
	ErrInsufficientQuota    = errors.New("insufficient leave quota")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrUnknownLeaveType     = errors.New("unknown leave type")
	ErrNotOwner             = errors.New("leave request belongs to another employee")
	ErrInvalidAttachment    = errors.New("invalid attachment file type")
)
