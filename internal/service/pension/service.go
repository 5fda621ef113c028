package pension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/notification"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/pension"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/approvalchain"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/file"
)

const attachmentFolder = "pension"

type PensionServiceImpl struct {
	tx database.Transactor
	pension.PensionRepository
	approval.StepRepository
	employee.EmployeeRepository
	chains      approvalchain.Chains
	fileService file.FileService
	notifier    notification.Notifier

	now func() time.Time
}

func NewPensionService(
	tx database.Transactor,
	repository pension.PensionRepository,
	stepRepository approval.StepRepository,
	employeeRepository employee.EmployeeRepository,
	chains approvalchain.Chains,
	fileService file.FileService,
	notifier notification.Notifier,
) *PensionServiceImpl {
	return &PensionServiceImpl{
		tx:                 tx,
		PensionRepository:  repository,
		StepRepository:     stepRepository,
		EmployeeRepository: employeeRepository,
		chains:             chains,
		fileService:        fileService,
		notifier:           notifier,
		now:                time.Now,
	}
}

// Create implements pension.PensionService.
func (s *PensionServiceImpl) Create(ctx context.Context, req pension.CreatePensionRequest) (pension.PensionResponse, error) {
	if err := req.Validate(); err != nil {
		return pension.PensionResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return pension.PensionResponse{}, err
	}
	if emp.IsRetired() {
		return pension.PensionResponse{}, employee.ErrEmployeeRetired
	}

	active, err := s.PensionRepository.HasActive(ctx, emp.ID)
	if err != nil {
		return pension.PensionResponse{}, fmt.Errorf("failed to check active pension requests: %w", err)
	}
	if active {
		return pension.PensionResponse{}, pension.ErrActivePensionExists
	}

	steps, err := s.chains.Steps(approval.KindPension)
	if err != nil {
		return pension.PensionResponse{}, fmt.Errorf("failed to build approval chain: %w", err)
	}

	request := pension.PensionRequest{
		EmployeeID:    emp.ID,
		PensionType:   pension.PensionType(req.PensionType),
		FilingDate:    req.Filing,
		EffectiveDate: req.Effective,
		Reason:        strings.TrimSpace(req.Reason),
		Status:        approval.StatusSubmitted,
	}

	if req.File != nil && req.FileHeader != nil {
		url, err := s.fileService.UploadAttachment(ctx, attachmentFolder, emp.ID, req.File, req.FileHeader.Filename)
		if err != nil {
			if errors.Is(err, file.ErrInvalidFileType) {
				return pension.PensionResponse{}, pension.ErrInvalidAttachment
			}
			return pension.PensionResponse{}, err
		}
		request.AttachmentURL = &url
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.PensionRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create pension request: %w", err)
		}
		created.EmployeeName = emp.FullName
		created.EmployeeNIP = emp.NIP

		created.Steps, err = s.StepRepository.CreateSteps(ctx, approval.KindPension, created.ID, steps)
		if err != nil {
			return fmt.Errorf("failed to create approval steps: %w", err)
		}
		request = created
		return nil
	})
	if err != nil {
		if request.AttachmentURL != nil {
			if delErr := s.fileService.DeleteAttachment(ctx, *request.AttachmentURL); delErr != nil {
				slog.Warn("Failed to remove orphaned pension attachment", "url", *request.AttachmentURL, "error", delErr)
			}
		}
		return pension.PensionResponse{}, err
	}

	return pension.ToResponse(request), nil
}

// Get implements pension.PensionService.
func (s *PensionServiceImpl) Get(ctx context.Context, actor approval.Actor, id string) (pension.PensionResponse, error) {
	request, err := s.PensionRepository.GetByID(ctx, id)
	if err != nil {
		return pension.PensionResponse{}, err
	}
	if !actor.ViewAll && !actor.Owns(request.EmployeeID) {
		return pension.PensionResponse{}, pension.ErrNotOwner
	}

	request.Steps, err = s.StepRepository.ListByRequest(ctx, approval.KindPension, id)
	if err != nil {
		return pension.PensionResponse{}, fmt.Errorf("failed to get approval steps: %w", err)
	}
	return pension.ToResponse(request), nil
}

// List implements pension.PensionService.
func (s *PensionServiceImpl) List(ctx context.Context, filter pension.PensionFilter) (pension.ListPensionResponse, error) {
	filter.Unpaged = false
	if err := filter.Validate(); err != nil {
		return pension.ListPensionResponse{}, err
	}

	requests, total, err := s.PensionRepository.List(ctx, filter)
	if err != nil {
		return pension.ListPensionResponse{}, fmt.Errorf("failed to list pension requests: %w", err)
	}
	items, err := s.responses(ctx, requests)
	if err != nil {
		return pension.ListPensionResponse{}, err
	}
	return pagination.NewList(items, filter.Params, total), nil
}

// Export implements pension.PensionService.
func (s *PensionServiceImpl) Export(ctx context.Context, filter pension.PensionFilter) ([]pension.PensionResponse, error) {
	filter.Unpaged = true
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, _, err := s.PensionRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pension requests: %w", err)
	}
	return s.responses(ctx, requests)
}

func (s *PensionServiceImpl) responses(ctx context.Context, requests []pension.PensionRequest) ([]pension.PensionResponse, error) {
	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	steps, err := s.StepRepository.ListByRequests(ctx, approval.KindPension, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get approval steps: %w", err)
	}

	out := make([]pension.PensionResponse, 0, len(requests))
	for _, r := range requests {
		r.Steps = steps[r.ID]
		out = append(out, pension.ToResponse(r))
	}
	return out, nil
}

// Decide implements pension.PensionService.
func (s *PensionServiceImpl) Decide(ctx context.Context, actor approval.Actor, id string, req approval.DecisionRequest) (pension.PensionResponse, error) {
	if err := req.Validate(); err != nil {
		return pension.PensionResponse{}, err
	}
	decision, _ := approval.ParseDecision(req.Decision)

	var request pension.PensionRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.PensionRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		steps, err := s.StepRepository.ListByRequest(ctx, approval.KindPension, id)
		if err != nil {
			return fmt.Errorf("failed to get approval steps: %w", err)
		}

		outcome, err := approval.Decide(request.Status, steps, actor, decision, req.Note, s.now())
		if err != nil {
			return err
		}
		if err := s.StepRepository.UpdateStep(ctx, outcome.Step, approval.StatusSubmitted); err != nil {
			return fmt.Errorf("failed to update approval step: %w", err)
		}
		if outcome.RequestStatus != request.Status {
			if err := s.PensionRepository.UpdateStatus(ctx, id, outcome.RequestStatus); err != nil {
				return fmt.Errorf("failed to update pension request status: %w", err)
			}
		}
		request.Status = outcome.RequestStatus
		request.Steps = outcome.Steps
		return nil
	})
	if err != nil {
		return pension.PensionResponse{}, err
	}

	s.notify(ctx, request, strings.TrimSpace(req.Note), actor.UserID)
	return pension.ToResponse(request), nil
}

// Resubmit implements pension.PensionService.
func (s *PensionServiceImpl) Resubmit(ctx context.Context, actor approval.Actor, req pension.ResubmitPensionRequest) (pension.PensionResponse, error) {
	if err := req.Validate(); err != nil {
		return pension.PensionResponse{}, err
	}

	var request pension.PensionRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.PensionRepository.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		if !actor.Owns(request.EmployeeID) && !actor.CancelAny {
			return pension.ErrNotOwner
		}
		steps, err := s.StepRepository.ListByRequest(ctx, approval.KindPension, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get approval steps: %w", err)
		}
		outcome, err := approval.Resubmit(request.Status, steps)
		if err != nil {
			return err
		}

		if req.PensionType != nil {
			request.PensionType = pension.PensionType(*req.PensionType)
		}
		if req.EffectiveDate != nil {
			request.EffectiveDate, _ = validator.IsValidDate(*req.EffectiveDate)
		}
		if req.Reason != nil {
			request.Reason = strings.TrimSpace(*req.Reason)
		}
		if request.EffectiveDate.Before(request.FilingDate) {
			var errs validator.ValidationErrors
			errs.Add("effective_date", "effective_date must not be before filing_date")
			return errs
		}
		request.Status = outcome.RequestStatus

		if err := s.PensionRepository.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update pension request: %w", err)
		}
		if err := s.StepRepository.UpdateStep(ctx, outcome.Step, approval.StatusRevision); err != nil {
			return fmt.Errorf("failed to update approval step: %w", err)
		}
		request.Steps = outcome.Steps
		return nil
	})
	if err != nil {
		return pension.PensionResponse{}, err
	}

	s.notify(ctx, request, "", actor.UserID)
	return pension.ToResponse(request), nil
}

// Cancel implements pension.PensionService.
func (s *PensionServiceImpl) Cancel(ctx context.Context, actor approval.Actor, id string, req approval.CancelRequest) (pension.PensionResponse, error) {
	return s.transition(ctx, id, approval.StatusCancelled, strings.TrimSpace(req.Reason), actor.UserID,
		func(ctx context.Context, r pension.PensionRequest) error {
			return approval.Cancel(r.Status, r.EmployeeID, actor)
		})
}

// Complete implements pension.PensionService. Completing an approved pension
// retires the employee.
func (s *PensionServiceImpl) Complete(ctx context.Context, actor approval.Actor, id string) (pension.PensionResponse, error) {
	return s.transition(ctx, id, approval.StatusCompleted, "", actor.UserID,
		func(ctx context.Context, r pension.PensionRequest) error {
			if !approval.CanTransition(r.Status, approval.StatusCompleted) {
				return approval.ErrInvalidTransition
			}
			if err := s.EmployeeRepository.UpdateEmploymentStatus(ctx, r.EmployeeID, employee.EmploymentStatusPensiun); err != nil {
				return fmt.Errorf("failed to retire employee: %w", err)
			}
			return nil
		})
}

// transition runs apply and moves the request to status within one transaction.
func (s *PensionServiceImpl) transition(ctx context.Context, id string, to approval.Status, note, actorID string, apply func(context.Context, pension.PensionRequest) error) (pension.PensionResponse, error) {
	var request pension.PensionRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.PensionRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(ctx, request); err != nil {
			return err
		}
		if err := s.PensionRepository.UpdateStatus(ctx, id, to); err != nil {
			return fmt.Errorf("failed to update pension request status: %w", err)
		}
		request.Status = to

		request.Steps, err = s.StepRepository.ListByRequest(ctx, approval.KindPension, id)
		if err != nil {
			return fmt.Errorf("failed to get approval steps: %w", err)
		}
		return nil
	})
	if err != nil {
		return pension.PensionResponse{}, err
	}

	s.notify(ctx, request, note, actorID)
	return pension.ToResponse(request), nil
}

func (s *PensionServiceImpl) notify(ctx context.Context, r pension.PensionRequest, note, actorID string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, notification.StatusChange{
		Kind:       approval.KindPension,
		RequestID:  r.ID,
		EmployeeID: r.EmployeeID,
		Status:     r.Status,
		Note:       note,
		ActorID:    actorID,
		At:         s.now(),
	})
}

var _ pension.PensionService = (*PensionServiceImpl)(nil)
