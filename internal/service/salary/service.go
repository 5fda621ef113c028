package salary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/notification"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/salary"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/approvalchain"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
)

type SalaryIncreaseServiceImpl struct {
	tx database.Transactor
	salary.SalaryIncreaseRepository
	approval.StepRepository
	employee.EmployeeRepository
	chains   approvalchain.Chains
	notifier notification.Notifier

	now func() time.Time
}

func NewSalaryIncreaseService(
	tx database.Transactor,
	repository salary.SalaryIncreaseRepository,
	stepRepository approval.StepRepository,
	employeeRepository employee.EmployeeRepository,
	chains approvalchain.Chains,
	notifier notification.Notifier,
) *SalaryIncreaseServiceImpl {
	return &SalaryIncreaseServiceImpl{
		tx:                       tx,
		SalaryIncreaseRepository: repository,
		StepRepository:           stepRepository,
		EmployeeRepository:       employeeRepository,
		chains:                   chains,
		notifier:                 notifier,
		now:                      time.Now,
	}
}

// Create implements salary.SalaryIncreaseService. The old base salary defaults
// to the employee's current one.
func (s *SalaryIncreaseServiceImpl) Create(ctx context.Context, actor approval.Actor, req salary.CreateSalaryIncreaseRequest) (salary.SalaryIncreaseResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryIncreaseResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return salary.SalaryIncreaseResponse{}, err
	}
	if emp.IsRetired() {
		return salary.SalaryIncreaseResponse{}, employee.ErrEmployeeRetired
	}

	pending, err := s.SalaryIncreaseRepository.HasPending(ctx, emp.ID)
	if err != nil {
		return salary.SalaryIncreaseResponse{}, fmt.Errorf("failed to check pending salary increases: %w", err)
	}
	if pending {
		return salary.SalaryIncreaseResponse{}, salary.ErrPendingIncreaseExists
	}

	steps, err := s.chains.Steps(approval.KindSalaryIncrease)
	if err != nil {
		return salary.SalaryIncreaseResponse{}, fmt.Errorf("failed to build approval chain: %w", err)
	}

	increase := salary.SalaryIncrease{
		EmployeeID:       emp.ID,
		OldBaseSalary:    emp.BaseSalary,
		NewBaseSalary:    req.NewBaseSalary,
		OldEffectiveDate: req.OldEffective,
		NewEffectiveDate: req.NewEffective,
		Note:             trimmed(req.Note),
		Status:           approval.StatusSubmitted,
	}
	if req.OldBaseSalary != nil {
		increase.OldBaseSalary = *req.OldBaseSalary
	}
	if actor.UserID != "" {
		createdBy := actor.UserID
		increase.CreatedBy = &createdBy
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.SalaryIncreaseRepository.Create(ctx, increase)
		if err != nil {
			return fmt.Errorf("failed to create salary increase: %w", err)
		}
		created.EmployeeName = emp.FullName
		created.EmployeeNIP = emp.NIP

		created.Steps, err = s.StepRepository.CreateSteps(ctx, approval.KindSalaryIncrease, created.ID, steps)
		if err != nil {
			return fmt.Errorf("failed to create approval steps: %w", err)
		}
		increase = created
		return nil
	})
	if err != nil {
		return salary.SalaryIncreaseResponse{}, err
	}

	return salary.ToResponse(increase), nil
}

// Get implements salary.SalaryIncreaseService.
func (s *SalaryIncreaseServiceImpl) Get(ctx context.Context, actor approval.Actor, id string) (salary.SalaryIncreaseResponse, error) {
	increase, err := s.SalaryIncreaseRepository.GetByID(ctx, id)
	if err != nil {
		return salary.SalaryIncreaseResponse{}, err
	}
	if !actor.ViewAll && !actor.Owns(increase.EmployeeID) {
		return salary.SalaryIncreaseResponse{}, salary.ErrNotOwner
	}

	increase.Steps, err = s.StepRepository.ListByRequest(ctx, approval.KindSalaryIncrease, id)
	if err != nil {
		return salary.SalaryIncreaseResponse{}, fmt.Errorf("failed to get approval steps: %w", err)
	}
	return salary.ToResponse(increase), nil
}

// List implements salary.SalaryIncreaseService.
func (s *SalaryIncreaseServiceImpl) List(ctx context.Context, filter salary.SalaryIncreaseFilter) (salary.ListSalaryIncreaseResponse, error) {
	filter.Unpaged = false
	if err := filter.Validate(); err != nil {
		return salary.ListSalaryIncreaseResponse{}, err
	}

	increases, total, err := s.SalaryIncreaseRepository.List(ctx, filter)
	if err != nil {
		return salary.ListSalaryIncreaseResponse{}, fmt.Errorf("failed to list salary increases: %w", err)
	}
	items, err := s.responses(ctx, increases)
	if err != nil {
		return salary.ListSalaryIncreaseResponse{}, err
	}
	return pagination.NewList(items, filter.Params, total), nil
}

// Export implements salary.SalaryIncreaseService.
func (s *SalaryIncreaseServiceImpl) Export(ctx context.Context, filter salary.SalaryIncreaseFilter) ([]salary.SalaryIncreaseResponse, error) {
	filter.Unpaged = true
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	increases, _, err := s.SalaryIncreaseRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary increases: %w", err)
	}
	return s.responses(ctx, increases)
}

func (s *SalaryIncreaseServiceImpl) responses(ctx context.Context, increases []salary.SalaryIncrease) ([]salary.SalaryIncreaseResponse, error) {
	ids := make([]string, 0, len(increases))
	for _, inc := range increases {
		ids = append(ids, inc.ID)
	}
	steps, err := s.StepRepository.ListByRequests(ctx, approval.KindSalaryIncrease, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get approval steps: %w", err)
	}

	out := make([]salary.SalaryIncreaseResponse, 0, len(increases))
	for _, inc := range increases {
		inc.Steps = steps[inc.ID]
		out = append(out, salary.ToResponse(inc))
	}
	return out, nil
}

// Decide implements salary.SalaryIncreaseService. The final approval writes
// the new base salary to the employee in the same transaction.
func (s *SalaryIncreaseServiceImpl) Decide(ctx context.Context, actor approval.Actor, id string, req approval.DecisionRequest) (salary.SalaryIncreaseResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryIncreaseResponse{}, err
	}
	decision, _ := approval.ParseDecision(req.Decision)

	var increase salary.SalaryIncrease
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		increase, err = s.SalaryIncreaseRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		steps, err := s.StepRepository.ListByRequest(ctx, approval.KindSalaryIncrease, id)
		if err != nil {
			return fmt.Errorf("failed to get approval steps: %w", err)
		}

		outcome, err := approval.Decide(increase.Status, steps, actor, decision, req.Note, s.now())
		if err != nil {
			return err
		}
		if err := s.StepRepository.UpdateStep(ctx, outcome.Step, approval.StatusSubmitted); err != nil {
			return fmt.Errorf("failed to update approval step: %w", err)
		}
		if outcome.Final {
			if err := s.EmployeeRepository.UpdateBaseSalary(ctx, increase.EmployeeID, increase.NewBaseSalary); err != nil {
				return fmt.Errorf("failed to apply new base salary: %w", err)
			}
		}
		if outcome.RequestStatus != increase.Status {
			if err := s.SalaryIncreaseRepository.UpdateStatus(ctx, id, outcome.RequestStatus); err != nil {
				return fmt.Errorf("failed to update salary increase status: %w", err)
			}
		}
		increase.Status = outcome.RequestStatus
		increase.Steps = outcome.Steps
		return nil
	})
	if err != nil {
		return salary.SalaryIncreaseResponse{}, err
	}

	s.notify(ctx, increase, strings.TrimSpace(req.Note), actor.UserID)
	return salary.ToResponse(increase), nil
}

// Resubmit implements salary.SalaryIncreaseService. Salary increases are
// filed by HR, so the applicant check is on CancelAny rather than ownership.
func (s *SalaryIncreaseServiceImpl) Resubmit(ctx context.Context, actor approval.Actor, req salary.ResubmitSalaryIncreaseRequest) (salary.SalaryIncreaseResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryIncreaseResponse{}, err
	}
	if !actor.CancelAny {
		return salary.SalaryIncreaseResponse{}, salary.ErrNotOwner
	}

	var increase salary.SalaryIncrease
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		increase, err = s.SalaryIncreaseRepository.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		steps, err := s.StepRepository.ListByRequest(ctx, approval.KindSalaryIncrease, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get approval steps: %w", err)
		}
		outcome, err := approval.Resubmit(increase.Status, steps)
		if err != nil {
			return err
		}

		if req.NewBaseSalary != nil {
			increase.NewBaseSalary = *req.NewBaseSalary
		}
		if req.NewEffectiveDate != nil {
			increase.NewEffectiveDate, _ = validator.IsValidDate(*req.NewEffectiveDate)
		}
		if req.Note != nil {
			increase.Note = trimmed(req.Note)
		}
		if increase.NewEffectiveDate.Before(increase.OldEffectiveDate) {
			var errs validator.ValidationErrors
			errs.Add("new_effective_date", "new_effective_date must not be before old_effective_date")
			return errs
		}
		increase.Status = outcome.RequestStatus

		if err := s.SalaryIncreaseRepository.Update(ctx, increase); err != nil {
			return fmt.Errorf("failed to update salary increase: %w", err)
		}
		if err := s.StepRepository.UpdateStep(ctx, outcome.Step, approval.StatusRevision); err != nil {
			return fmt.Errorf("failed to update approval step: %w", err)
		}
		increase.Steps = outcome.Steps
		return nil
	})
	if err != nil {
		return salary.SalaryIncreaseResponse{}, err
	}

	s.notify(ctx, increase, "", actor.UserID)
	return salary.ToResponse(increase), nil
}

// Cancel implements salary.SalaryIncreaseService.
func (s *SalaryIncreaseServiceImpl) Cancel(ctx context.Context, actor approval.Actor, id string, req approval.CancelRequest) (salary.SalaryIncreaseResponse, error) {
	if !actor.CancelAny {
		return salary.SalaryIncreaseResponse{}, approval.ErrCancelNotAllowed
	}

	var increase salary.SalaryIncrease
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		increase, err = s.SalaryIncreaseRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if increase.Status == approval.StatusApproved {
			// the new salary is already on the employee record
			return approval.ErrInvalidTransition
		}
		if err := approval.Cancel(increase.Status, increase.EmployeeID, actor); err != nil {
			return err
		}
		if err := s.SalaryIncreaseRepository.UpdateStatus(ctx, id, approval.StatusCancelled); err != nil {
			return fmt.Errorf("failed to update salary increase status: %w", err)
		}
		increase.Status = approval.StatusCancelled

		increase.Steps, err = s.StepRepository.ListByRequest(ctx, approval.KindSalaryIncrease, id)
		if err != nil {
			return fmt.Errorf("failed to get approval steps: %w", err)
		}
		return nil
	})
	if err != nil {
		return salary.SalaryIncreaseResponse{}, err
	}

	s.notify(ctx, increase, strings.TrimSpace(req.Reason), actor.UserID)
	return salary.ToResponse(increase), nil
}

func (s *SalaryIncreaseServiceImpl) notify(ctx context.Context, inc salary.SalaryIncrease, note, actorID string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, notification.StatusChange{
		Kind:       approval.KindSalaryIncrease,
		RequestID:  inc.ID,
		EmployeeID: inc.EmployeeID,
		Status:     inc.Status,
		Note:       note,
		ActorID:    actorID,
		At:         s.now(),
	})
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

var _ salary.SalaryIncreaseService = (*SalaryIncreaseServiceImpl)(nil)
