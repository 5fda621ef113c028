package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/file"
)

// Preview implements leave.LeaveService.
func (s *LeaveServiceImpl) Preview(ctx context.Context, req leave.PreviewLeaveRequest) (leave.PreviewLeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.PreviewLeaveResponse{}, err
	}
	if _, err := s.activeEmployee(ctx, req.EmployeeID); err != nil {
		return leave.PreviewLeaveResponse{}, err
	}

	days, err := leave.CountDays(req.Start, req.End)
	if err != nil {
		return leave.PreviewLeaveResponse{}, err
	}

	resp := leave.PreviewLeaveResponse{
		LeaveType: req.LeaveType,
		IsAnnual:  leave.IsAnnual(req.LeaveType),
		DayCount:  days,
	}

	quota, ok, err := s.remainingFor(ctx, req.EmployeeID, req.Start.Year())
	if err != nil {
		return leave.PreviewLeaveResponse{}, err
	}
	remaining := 0
	if ok {
		remaining = quota.RemainingDays
		resp.RemainingDays = &remaining
	} else if resp.IsAnnual {
		resp.RemainingDays = &remaining
	}
	resp.SubmitAllowed = leave.SubmitAllowed(req.LeaveType, days, remaining)

	return resp, nil
}

// CreateLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := s.activeEmployee(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	days, err := leave.CountDays(req.Start, req.End)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	quota, hasQuota, err := s.remainingFor(ctx, emp.ID, req.Start.Year())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	remaining := 0
	if hasQuota {
		remaining = quota.RemainingDays
	}
	if !leave.SubmitAllowed(req.LeaveType, days, remaining) {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientQuota
	}

	steps, err := s.chains.Steps(approval.KindLeave)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to build approval chain: %w", err)
	}

	request := leave.LeaveRequest{
		EmployeeID:         emp.ID,
		EmployeeNIP:        emp.NIP,
		EmployeeName:       emp.FullName,
		LeaveType:          req.LeaveType,
		StartDate:          req.Start,
		EndDate:            req.End,
		DayCount:           days,
		Reason:             strings.TrimSpace(req.Reason),
		AddressDuringLeave: strings.TrimSpace(req.AddressDuringLeave),
		PhoneDuringLeave:   strings.TrimSpace(req.PhoneDuringLeave),
		Status:             approval.StatusSubmitted,
	}
	if hasQuota && leave.IsAnnual(req.LeaveType) {
		request.QuotaID = &quota.ID
	}

	if req.File != nil && req.FileHeader != nil {
		url, err := s.fileService.UploadAttachment(ctx, attachmentFolder, emp.ID, req.File, req.FileHeader.Filename)
		if err != nil {
			if errors.Is(err, file.ErrInvalidFileType) {
				return leave.LeaveRequestResponse{}, leave.ErrInvalidAttachment
			}
			return leave.LeaveRequestResponse{}, err
		}
		request.AttachmentURL = &url
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.LeaveRequestRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		created.EmployeeName = emp.FullName
		created.EmployeeNIP = emp.NIP

		created.Steps, err = s.StepRepository.CreateSteps(ctx, approval.KindLeave, created.ID, steps)
		if err != nil {
			return fmt.Errorf("failed to create approval steps: %w", err)
		}
		request = created
		return nil
	})
	if err != nil {
		if request.AttachmentURL != nil {
			if delErr := s.fileService.DeleteAttachment(ctx, *request.AttachmentURL); delErr != nil {
				slog.Warn("Failed to remove orphaned leave attachment", "url", *request.AttachmentURL, "error", delErr)
			}
		}
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToRequestResponse(request), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, actor approval.Actor, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	if !actor.ViewAll && !actor.Owns(request.EmployeeID) {
		return leave.LeaveRequestResponse{}, leave.ErrNotOwner
	}
	return s.withSteps(ctx, request)
}

// ListLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequest(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	filter.Unpaged = false
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	items, err := s.responses(ctx, requests)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	return pagination.NewList(items, filter.Params, total), nil
}

// ExportLeaveRequests implements leave.LeaveService. It returns every request
// matching filter, ignoring pagination.
func (s *LeaveServiceImpl) ExportLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	filter.Unpaged = true
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, _, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return s.responses(ctx, requests)
}

// DecideLeaveRequest implements leave.LeaveService. The final approval of an
// annual leave request deducts its days from the quota in the same transaction.
func (s *LeaveServiceImpl) DecideLeaveRequest(ctx context.Context, actor approval.Actor, id string, req approval.DecisionRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	decision, _ := approval.ParseDecision(req.Decision)

	var (
		request leave.LeaveRequest
		outcome approval.Outcome
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.LeaveRequestRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		steps, err := s.StepRepository.ListByRequest(ctx, approval.KindLeave, id)
		if err != nil {
			return fmt.Errorf("failed to get approval steps: %w", err)
		}

		outcome, err = approval.Decide(request.Status, steps, actor, decision, req.Note, s.now())
		if err != nil {
			return err
		}
		if err := s.StepRepository.UpdateStep(ctx, outcome.Step, approval.StatusSubmitted); err != nil {
			return fmt.Errorf("failed to update approval step: %w", err)
		}

		deducted := request.QuotaDeducted
		if outcome.Final && leave.IsAnnual(request.LeaveType) && !deducted {
			if err := s.deductQuota(ctx, &request); err != nil {
				return err
			}
			deducted = true
		}

		if outcome.RequestStatus != request.Status || deducted != request.QuotaDeducted {
			if err := s.LeaveRequestRepository.UpdateStatus(ctx, id, outcome.RequestStatus, deducted); err != nil {
				return fmt.Errorf("failed to update leave request status: %w", err)
			}
		}
		request.Status = outcome.RequestStatus
		request.QuotaDeducted = deducted
		request.Steps = outcome.Steps
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.notify(ctx, request, request.Status, strings.TrimSpace(req.Note), actor.UserID)
	return leave.ToRequestResponse(request), nil
}

// deductQuota locks the quota row of the request and subtracts its days.
func (s *LeaveServiceImpl) deductQuota(ctx context.Context, request *leave.LeaveRequest) error {
	quotaID := request.QuotaID
	if quotaID == nil {
		quota, ok, err := s.remainingFor(ctx, request.EmployeeID, request.StartDate.Year())
		if err != nil {
			return err
		}
		if !ok {
			return leave.ErrInsufficientQuota
		}
		quotaID = &quota.ID
	}

	quota, err := s.LeaveQuotaRepository.GetByIDForUpdate(ctx, *quotaID)
	if err != nil {
		return err
	}
	if quota.RemainingDays < request.DayCount {
		return leave.ErrInsufficientQuota
	}
	if err := s.LeaveQuotaRepository.AdjustRemaining(ctx, quota.ID, -request.DayCount); err != nil {
		return err
	}
	request.QuotaID = &quota.ID
	return nil
}

// ResubmitLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ResubmitLeaveRequest(ctx context.Context, actor approval.Actor, req leave.ResubmitLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var request leave.LeaveRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.LeaveRequestRepository.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		if !actor.Owns(request.EmployeeID) {
			return leave.ErrNotOwner
		}
		steps, err := s.StepRepository.ListByRequest(ctx, approval.KindLeave, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get approval steps: %w", err)
		}
		outcome, err := approval.Resubmit(request.Status, steps)
		if err != nil {
			return err
		}

		if err := s.applyResubmit(ctx, &request, req); err != nil {
			return err
		}
		request.Status = outcome.RequestStatus

		if err := s.LeaveRequestRepository.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		if err := s.StepRepository.UpdateStep(ctx, outcome.Step, approval.StatusRevision); err != nil {
			return fmt.Errorf("failed to update approval step: %w", err)
		}
		request.Steps = outcome.Steps
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.notify(ctx, request, request.Status, "", actor.UserID)
	return leave.ToRequestResponse(request), nil
}

// applyResubmit copies the edited fields and re-runs the day count and quota check.
func (s *LeaveServiceImpl) applyResubmit(ctx context.Context, request *leave.LeaveRequest, req leave.ResubmitLeaveRequestRequest) error {
	if req.LeaveType != nil {
		request.LeaveType = *req.LeaveType
	}
	if req.StartDate != nil {
		request.StartDate, _ = validator.IsValidDate(*req.StartDate)
	}
	if req.EndDate != nil {
		request.EndDate, _ = validator.IsValidDate(*req.EndDate)
	}
	if req.Reason != nil {
		request.Reason = strings.TrimSpace(*req.Reason)
	}
	if req.AddressDuringLeave != nil {
		request.AddressDuringLeave = strings.TrimSpace(*req.AddressDuringLeave)
	}
	if req.PhoneDuringLeave != nil {
		request.PhoneDuringLeave = strings.TrimSpace(*req.PhoneDuringLeave)
	}

	days, err := leave.CountDays(request.StartDate, request.EndDate)
	if err != nil {
		return err
	}
	request.DayCount = days

	quota, ok, err := s.remainingFor(ctx, request.EmployeeID, request.StartDate.Year())
	if err != nil {
		return err
	}
	remaining := 0
	request.QuotaID = nil
	if ok {
		remaining = quota.RemainingDays
		if leave.IsAnnual(request.LeaveType) {
			request.QuotaID = &quota.ID
		}
	}
	if !leave.SubmitAllowed(request.LeaveType, days, remaining) {
		return leave.ErrInsufficientQuota
	}
	return nil
}

// CancelLeaveRequest implements leave.LeaveService. Cancelling an approved
// request gives its deducted days back to the quota.
func (s *LeaveServiceImpl) CancelLeaveRequest(ctx context.Context, actor approval.Actor, id string, req approval.CancelRequest) (leave.LeaveRequestResponse, error) {
	var request leave.LeaveRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.LeaveRequestRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := approval.Cancel(request.Status, request.EmployeeID, actor); err != nil {
			return err
		}

		if request.QuotaDeducted && request.QuotaID != nil {
			if err := s.LeaveQuotaRepository.AdjustRemaining(ctx, *request.QuotaID, request.DayCount); err != nil {
				return fmt.Errorf("failed to restore leave quota: %w", err)
			}
			request.QuotaDeducted = false
		}

		if err := s.LeaveRequestRepository.UpdateStatus(ctx, id, approval.StatusCancelled, request.QuotaDeducted); err != nil {
			return fmt.Errorf("failed to update leave request status: %w", err)
		}
		request.Status = approval.StatusCancelled

		request.Steps, err = s.StepRepository.ListByRequest(ctx, approval.KindLeave, id)
		if err != nil {
			return fmt.Errorf("failed to get approval steps: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.notify(ctx, request, request.Status, strings.TrimSpace(req.Reason), actor.UserID)
	return leave.ToRequestResponse(request), nil
}
