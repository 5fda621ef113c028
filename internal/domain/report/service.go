package report

import (
	"context"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/pension"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/salary"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/studypermit"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/document"
)

// ReportService renders single records and filtered lists as downloadable
// PDF or XLSX documents. Single records go through the same visibility
// checks as the JSON endpoints.
type ReportService interface {
	LeaveRequest(ctx context.Context, actor approval.Actor, id string, format document.Format) (document.File, error)
	LeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter, format document.Format) (document.File, error)

	StudyPermit(ctx context.Context, actor approval.Actor, id string, format document.Format) (document.File, error)
	StudyPermits(ctx context.Context, filter studypermit.StudyPermitFilter, format document.Format) (document.File, error)

	SalaryIncrease(ctx context.Context, actor approval.Actor, id string, format document.Format) (document.File, error)
	SalaryIncreases(ctx context.Context, filter salary.SalaryIncreaseFilter, format document.Format) (document.File, error)

	Pension(ctx context.Context, actor approval.Actor, id string, format document.Format) (document.File, error)
	Pensions(ctx context.Context, filter pension.PensionFilter, format document.Format) (document.File, error)
}
