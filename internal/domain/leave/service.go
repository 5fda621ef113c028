package leave

import (
	"context"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

type LeaveService interface {
	// Type
	ListLeaveTypes() []LeaveType
	// Quota
	CreateLeaveQuota(ctx context.Context, req CreateLeaveQuotaRequest) (LeaveQuotaResponse, error)
	UpdateLeaveQuota(ctx context.Context, req UpdateLeaveQuotaRequest) (LeaveQuotaResponse, error)
	ListLeaveQuota(ctx context.Context, filter LeaveQuotaFilter) (ListLeaveQuotaResponse, error)
	GetMyQuota(ctx context.Context, employeeID string, year int) (LeaveQuotaResponse, error)
	// Request
	Preview(ctx context.Context, req PreviewLeaveRequest) (PreviewLeaveResponse, error)
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, actor approval.Actor, id string) (LeaveRequestResponse, error)
	ListLeaveRequest(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	ExportLeaveRequests(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
	DecideLeaveRequest(ctx context.Context, actor approval.Actor, id string, req approval.DecisionRequest) (LeaveRequestResponse, error)
	ResubmitLeaveRequest(ctx context.Context, actor approval.Actor, req ResubmitLeaveRequestRequest) (LeaveRequestResponse, error)
	CancelLeaveRequest(ctx context.Context, actor approval.Actor, id string, req approval.CancelRequest) (LeaveRequestResponse, error)
	CompleteFinishedLeave(ctx context.Context) (int, error)
}
