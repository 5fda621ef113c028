package studypermit

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
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/studypermit"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/approvalchain"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/file"
)

const attachmentFolder = "study-permit"

type StudyPermitServiceImpl struct {
	tx database.Transactor
	studypermit.StudyPermitRepository
	approval.StepRepository
	employee.EmployeeRepository
	chains      approvalchain.Chains
	fileService file.FileService
	notifier    notification.Notifier

	now func() time.Time
}

func NewStudyPermitService(
	tx database.Transactor,
	repository studypermit.StudyPermitRepository,
	stepRepository approval.StepRepository,
	employeeRepository employee.EmployeeRepository,
	chains approvalchain.Chains,
	fileService file.FileService,
	notifier notification.Notifier,
) *StudyPermitServiceImpl {
	return &StudyPermitServiceImpl{
		tx:                    tx,
		StudyPermitRepository: repository,
		StepRepository:        stepRepository,
		EmployeeRepository:    employeeRepository,
		chains:                chains,
		fileService:           fileService,
		notifier:              notifier,
		now:                   time.Now,
	}
}

// Create implements studypermit.StudyPermitService.
func (s *StudyPermitServiceImpl) Create(ctx context.Context, req studypermit.CreateStudyPermitRequest) (studypermit.StudyPermitResponse, error) {
	if err := req.Validate(); err != nil {
		return studypermit.StudyPermitResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return studypermit.StudyPermitResponse{}, err
	}
	if emp.IsRetired() {
		return studypermit.StudyPermitResponse{}, employee.ErrEmployeeRetired
	}

	months, err := studypermit.DurationMonths(req.Start, req.End)
	if err != nil {
		return studypermit.StudyPermitResponse{}, err
	}

	steps, err := s.chains.Steps(approval.KindStudyPermit)
	if err != nil {
		return studypermit.StudyPermitResponse{}, fmt.Errorf("failed to build approval chain: %w", err)
	}

	permit := studypermit.StudyPermitRequest{
		EmployeeID:     emp.ID,
		Institution:    strings.TrimSpace(req.Institution),
		Program:        strings.TrimSpace(req.Program),
		Degree:         studypermit.Degree(req.Degree),
		StartDate:      req.Start,
		EndDate:        req.End,
		DurationMonths: months,
		FundingSource:  studypermit.FundingSource(req.FundingSource),
		Reason:         req.Reason,
		Status:         approval.StatusSubmitted,
	}

	if req.File != nil && req.FileHeader != nil {
		url, err := s.fileService.UploadAttachment(ctx, attachmentFolder, emp.ID, req.File, req.FileHeader.Filename)
		if err != nil {
			if errors.Is(err, file.ErrInvalidFileType) {
				return studypermit.StudyPermitResponse{}, studypermit.ErrInvalidAttachment
			}
			return studypermit.StudyPermitResponse{}, err
		}
		permit.AttachmentURL = &url
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.StudyPermitRepository.Create(ctx, permit)
		if err != nil {
			return fmt.Errorf("failed to create study permit request: %w", err)
		}
		created.EmployeeName = emp.FullName
		created.EmployeeNIP = emp.NIP

		created.Steps, err = s.StepRepository.CreateSteps(ctx, approval.KindStudyPermit, created.ID, steps)
		if err != nil {
			return fmt.Errorf("failed to create approval steps: %w", err)
		}
		permit = created
		return nil
	})
	if err != nil {
		if permit.AttachmentURL != nil {
			if delErr := s.fileService.DeleteAttachment(ctx, *permit.AttachmentURL); delErr != nil {
				slog.Warn("Failed to remove orphaned study permit attachment", "url", *permit.AttachmentURL, "error", delErr)
			}
		}
		return studypermit.StudyPermitResponse{}, err
	}

	return studypermit.ToResponse(permit), nil
}

// Get implements studypermit.StudyPermitService.
func (s *StudyPermitServiceImpl) Get(ctx context.Context, actor approval.Actor, id string) (studypermit.StudyPermitResponse, error) {
	permit, err := s.StudyPermitRepository.GetByID(ctx, id)
	if err != nil {
		return studypermit.StudyPermitResponse{}, err
	}
	if !actor.ViewAll && !actor.Owns(permit.EmployeeID) {
		return studypermit.StudyPermitResponse{}, studypermit.ErrNotOwner
	}

	permit.Steps, err = s.StepRepository.ListByRequest(ctx, approval.KindStudyPermit, id)
	if err != nil {
		return studypermit.StudyPermitResponse{}, fmt.Errorf("failed to get approval steps: %w", err)
	}
	return studypermit.ToResponse(permit), nil
}

// List implements studypermit.StudyPermitService.
func (s *StudyPermitServiceImpl) List(ctx context.Context, filter studypermit.StudyPermitFilter) (studypermit.ListStudyPermitResponse, error) {
	filter.Unpaged = false
	if err := filter.Validate(); err != nil {
		return studypermit.ListStudyPermitResponse{}, err
	}

	permits, total, err := s.StudyPermitRepository.List(ctx, filter)
	if err != nil {
		return studypermit.ListStudyPermitResponse{}, fmt.Errorf("failed to list study permit requests: %w", err)
	}
	items, err := s.responses(ctx, permits)
	if err != nil {
		return studypermit.ListStudyPermitResponse{}, err
	}
	return pagination.NewList(items, filter.Params, total), nil
}

// Export implements studypermit.StudyPermitService.
func (s *StudyPermitServiceImpl) Export(ctx context.Context, filter studypermit.StudyPermitFilter) ([]studypermit.StudyPermitResponse, error) {
	filter.Unpaged = true
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	permits, _, err := s.StudyPermitRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list study permit requests: %w", err)
	}
	return s.responses(ctx, permits)
}

func (s *StudyPermitServiceImpl) responses(ctx context.Context, permits []studypermit.StudyPermitRequest) ([]studypermit.StudyPermitResponse, error) {
	ids := make([]string, 0, len(permits))
	for _, p := range permits {
		ids = append(ids, p.ID)
	}
	steps, err := s.StepRepository.ListByRequests(ctx, approval.KindStudyPermit, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get approval steps: %w", err)
	}

	out := make([]studypermit.StudyPermitResponse, 0, len(permits))
	for _, p := range permits {
		p.Steps = steps[p.ID]
		out = append(out, studypermit.ToResponse(p))
	}
	return out, nil
}

// Decide implements studypermit.StudyPermitService.
func (s *StudyPermitServiceImpl) Decide(ctx context.Context, actor approval.Actor, id string, req approval.DecisionRequest) (studypermit.StudyPermitResponse, error) {
	if err := req.Validate(); err != nil {
		return studypermit.StudyPermitResponse{}, err
	}
	decision, _ := approval.ParseDecision(req.Decision)

	var permit studypermit.StudyPermitRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		permit, err = s.StudyPermitRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		steps, err := s.StepRepository.ListByRequest(ctx, approval.KindStudyPermit, id)
		if err != nil {
			return fmt.Errorf("failed to get approval steps: %w", err)
		}

		outcome, err := approval.Decide(permit.Status, steps, actor, decision, req.Note, s.now())
		if err != nil {
			return err
		}
		if err := s.StepRepository.UpdateStep(ctx, outcome.Step, approval.StatusSubmitted); err != nil {
			return fmt.Errorf("failed to update approval step: %w", err)
		}
		if outcome.RequestStatus != permit.Status {
			if err := s.StudyPermitRepository.UpdateStatus(ctx, id, outcome.RequestStatus); err != nil {
				return fmt.Errorf("failed to update study permit status: %w", err)
			}
		}
		permit.Status = outcome.RequestStatus
		permit.Steps = outcome.Steps
		return nil
	})
	if err != nil {
		return studypermit.StudyPermitResponse{}, err
	}

	s.notify(ctx, permit, strings.TrimSpace(req.Note), actor.UserID)
	return studypermit.ToResponse(permit), nil
}

// Resubmit implements studypermit.StudyPermitService.
func (s *StudyPermitServiceImpl) Resubmit(ctx context.Context, actor approval.Actor, req studypermit.ResubmitStudyPermitRequest) (studypermit.StudyPermitResponse, error) {
	if err := req.Validate(); err != nil {
		return studypermit.StudyPermitResponse{}, err
	}

	var permit studypermit.StudyPermitRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		permit, err = s.StudyPermitRepository.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		if !actor.Owns(permit.EmployeeID) {
			return studypermit.ErrNotOwner
		}
		steps, err := s.StepRepository.ListByRequest(ctx, approval.KindStudyPermit, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get approval steps: %w", err)
		}
		outcome, err := approval.Resubmit(permit.Status, steps)
		if err != nil {
			return err
		}

		applyResubmit(&permit, req)
		permit.DurationMonths, err = studypermit.DurationMonths(permit.StartDate, permit.EndDate)
		if err != nil {
			return err
		}
		permit.Status = outcome.RequestStatus

		if err := s.StudyPermitRepository.Update(ctx, permit); err != nil {
			return fmt.Errorf("failed to update study permit request: %w", err)
		}
		if err := s.StepRepository.UpdateStep(ctx, outcome.Step, approval.StatusRevision); err != nil {
			return fmt.Errorf("failed to update approval step: %w", err)
		}
		permit.Steps = outcome.Steps
		return nil
	})
	if err != nil {
		return studypermit.StudyPermitResponse{}, err
	}

	s.notify(ctx, permit, "", actor.UserID)
	return studypermit.ToResponse(permit), nil
}

func applyResubmit(p *studypermit.StudyPermitRequest, req studypermit.ResubmitStudyPermitRequest) {
	if req.Institution != nil {
		p.Institution = strings.TrimSpace(*req.Institution)
	}
	if req.Program != nil {
		p.Program = strings.TrimSpace(*req.Program)
	}
	if req.Degree != nil {
		p.Degree = studypermit.Degree(*req.Degree)
	}
	if req.StartDate != nil {
		p.StartDate, _ = validator.IsValidDate(*req.StartDate)
	}
	if req.EndDate != nil {
		p.EndDate, _ = validator.IsValidDate(*req.EndDate)
	}
	if req.FundingSource != nil {
		p.FundingSource = studypermit.FundingSource(*req.FundingSource)
	}
	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		p.Reason = &reason
	}
}

// Cancel implements studypermit.StudyPermitService.
func (s *StudyPermitServiceImpl) Cancel(ctx context.Context, actor approval.Actor, id string, req approval.CancelRequest) (studypermit.StudyPermitResponse, error) {
	return s.transition(ctx, id, approval.StatusCancelled, strings.TrimSpace(req.Reason), actor.UserID, func(p studypermit.StudyPermitRequest) error {
		return approval.Cancel(p.Status, p.EmployeeID, actor)
	})
}

// Complete implements studypermit.StudyPermitService. Only approved permits
// can be marked as finished.
func (s *StudyPermitServiceImpl) Complete(ctx context.Context, actor approval.Actor, id string) (studypermit.StudyPermitResponse, error) {
	return s.transition(ctx, id, approval.StatusCompleted, "", actor.UserID, func(p studypermit.StudyPermitRequest) error {
		if !approval.CanTransition(p.Status, approval.StatusCompleted) {
			return approval.ErrInvalidTransition
		}
		return nil
	})
}

func (s *StudyPermitServiceImpl) transition(ctx context.Context, id string, to approval.Status, note, actorID string, check func(studypermit.StudyPermitRequest) error) (studypermit.StudyPermitResponse, error) {
	var permit studypermit.StudyPermitRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		permit, err = s.StudyPermitRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := check(permit); err != nil {
			return err
		}
		if err := s.StudyPermitRepository.UpdateStatus(ctx, id, to); err != nil {
			return fmt.Errorf("failed to update study permit status: %w", err)
		}
		permit.Status = to

		permit.Steps, err = s.StepRepository.ListByRequest(ctx, approval.KindStudyPermit, id)
		if err != nil {
			return fmt.Errorf("failed to get approval steps: %w", err)
		}
		return nil
	})
	if err != nil {
		return studypermit.StudyPermitResponse{}, err
	}

	s.notify(ctx, permit, note, actorID)
	return studypermit.ToResponse(permit), nil
}

func (s *StudyPermitServiceImpl) notify(ctx context.Context, p studypermit.StudyPermitRequest, note, actorID string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, notification.StatusChange{
		Kind:       approval.KindStudyPermit,
		RequestID:  p.ID,
		EmployeeID: p.EmployeeID,
		Status:     p.Status,
		Note:       note,
		ActorID:    actorID,
		At:         s.now(),
	})
}

var _ studypermit.StudyPermitService = (*StudyPermitServiceImpl)(nil)
