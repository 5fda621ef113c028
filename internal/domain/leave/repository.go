package leave

import (
	"context"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

// LeaveQuotaRepository - interface for leave_quotas table
type LeaveQuotaRepository interface {
	Create(ctx context.Context, quota LeaveQuota) (LeaveQuota, error)
	GetByID(ctx context.Context, id string) (LeaveQuota, error)
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) (LeaveQuota, error)
	GetByIDForUpdate(ctx context.Context, id string) (LeaveQuota, error)
	List(ctx context.Context, filter LeaveQuotaFilter) ([]LeaveQuota, int64, error)
	Update(ctx context.Context, quota LeaveQuota) error
	AdjustRemaining(ctx context.Context, id string, delta int) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	Update(ctx context.Context, request LeaveRequest) error
	UpdateStatus(ctx context.Context, id string, status approval.Status, quotaDeducted bool) error
	ListEndedApproved(ctx context.Context, before string) ([]LeaveRequest, error)
}
