package report

import (
	"context"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/pension"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/report"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/salary"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/studypermit"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/document"
)

type ReportServiceImpl struct {
	leaveService       leave.LeaveService
	studyPermitService studypermit.StudyPermitService
	salaryService      salary.SalaryIncreaseService
	pensionService     pension.PensionService

	agency string
	now    func() time.Time
}

// NewReportService builds documents from the request services. agency is
// printed as the subtitle of every document.
func NewReportService(
	leaveService leave.LeaveService,
	studyPermitService studypermit.StudyPermitService,
	salaryService salary.SalaryIncreaseService,
	pensionService pension.PensionService,
	agency string,
) report.ReportService {
	return &ReportServiceImpl{
		leaveService:       leaveService,
		studyPermitService: studyPermitService,
		salaryService:      salaryService,
		pensionService:     pensionService,
		agency:             agency,
		now:                time.Now,
	}
}

func (s *ReportServiceImpl) render(format document.Format, doc document.Document) (document.File, error) {
	doc.Subtitle = s.agency
	doc.GeneratedAt = s.now()
	return document.Render(format, doc)
}

// LeaveRequest implements report.ReportService.
func (s *ReportServiceImpl) LeaveRequest(ctx context.Context, actor approval.Actor, id string, format document.Format) (document.File, error) {
	resp, err := s.leaveService.GetLeaveRequest(ctx, actor, id)
	if err != nil {
		return document.File{}, err
	}
	return s.render(format, leaveRequestDocument(resp))
}

// LeaveRequests implements report.ReportService.
func (s *ReportServiceImpl) LeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter, format document.Format) (document.File, error) {
	items, err := s.leaveService.ExportLeaveRequests(ctx, filter)
	if err != nil {
		return document.File{}, err
	}
	return s.render(format, leaveRequestListDocument(items))
}

// StudyPermit implements report.ReportService.
func (s *ReportServiceImpl) StudyPermit(ctx context.Context, actor approval.Actor, id string, format document.Format) (document.File, error) {
	resp, err := s.studyPermitService.Get(ctx, actor, id)
	if err != nil {
		return document.File{}, err
	}
	return s.render(format, studyPermitDocument(resp))
}

// StudyPermits implements report.ReportService.
func (s *ReportServiceImpl) StudyPermits(ctx context.Context, filter studypermit.StudyPermitFilter, format document.Format) (document.File, error) {
	items, err := s.studyPermitService.Export(ctx, filter)
	if err != nil {
		return document.File{}, err
	}
	return s.render(format, studyPermitListDocument(items))
}

// SalaryIncrease implements report.ReportService.
func (s *ReportServiceImpl) SalaryIncrease(ctx context.Context, actor approval.Actor, id string, format document.Format) (document.File, error) {
	resp, err := s.salaryService.Get(ctx, actor, id)
	if err != nil {
		return document.File{}, err
	}
	return s.render(format, salaryIncreaseDocument(resp))
}

// SalaryIncreases implements report.ReportService.
func (s *ReportServiceImpl) SalaryIncreases(ctx context.Context, filter salary.SalaryIncreaseFilter, format document.Format) (document.File, error) {
	items, err := s.salaryService.Export(ctx, filter)
	if err != nil {
		return document.File{}, err
	}
	return s.render(format, salaryIncreaseListDocument(items))
}

// Pension implements report.ReportService.
func (s *ReportServiceImpl) Pension(ctx context.Context, actor approval.Actor, id string, format document.Format) (document.File, error) {
	resp, err := s.pensionService.Get(ctx, actor, id)
	if err != nil {
		return document.File{}, err
	}
	return s.render(format, pensionDocument(resp))
}

// Pensions implements report.ReportService.
func (s *ReportServiceImpl) Pensions(ctx context.Context, filter pension.PensionFilter, format document.Format) (document.File, error) {
	items, err := s.pensionService.Export(ctx, filter)
	if err != nil {
		return document.File{}, err
	}
	return s.render(format, pensionListDocument(items))
}

var _ report.ReportService = (*ReportServiceImpl)(nil)
