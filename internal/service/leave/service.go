package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/notification"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/approvalchain"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/file"
)

const attachmentFolder = "leave"

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveQuotaRepository
	leave.LeaveRequestRepository
	approval.StepRepository
	employee.EmployeeRepository
	chains      approvalchain.Chains
	fileService file.FileService
	notifier    notification.Notifier

	now func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	quotaRepository leave.LeaveQuotaRepository,
	requestRepository leave.LeaveRequestRepository,
	stepRepository approval.StepRepository,
	employeeRepository employee.EmployeeRepository,
	chains approvalchain.Chains,
	fileService file.FileService,
	notifier notification.Notifier,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveQuotaRepository:   quotaRepository,
		LeaveRequestRepository: requestRepository,
		StepRepository:         stepRepository,
		EmployeeRepository:     employeeRepository,
		chains:                 chains,
		fileService:            fileService,
		notifier:               notifier,
		now:                    time.Now,
	}
}

// ListLeaveTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveTypes() []leave.LeaveType {
	return leave.LeaveTypes()
}

// activeEmployee loads the applicant and refuses retired employees.
func (s *LeaveServiceImpl) activeEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.IsRetired() {
		return employee.Employee{}, employee.ErrEmployeeRetired
	}
	return emp, nil
}

// remainingFor returns the quota of the employee for year. ok is false when
// no quota row exists.
func (s *LeaveServiceImpl) remainingFor(ctx context.Context, employeeID string, year int) (leave.LeaveQuota, bool, error) {
	quota, err := s.LeaveQuotaRepository.GetByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveQuotaNotFound) {
			return leave.LeaveQuota{}, false, nil
		}
		return leave.LeaveQuota{}, false, fmt.Errorf("failed to get leave quota: %w", err)
	}
	return quota, true, nil
}

func (s *LeaveServiceImpl) withSteps(ctx context.Context, r leave.LeaveRequest) (leave.LeaveRequestResponse, error) {
	steps, err := s.StepRepository.ListByRequest(ctx, approval.KindLeave, r.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get approval steps: %w", err)
	}
	r.Steps = steps
	return leave.ToRequestResponse(r), nil
}

func (s *LeaveServiceImpl) responses(ctx context.Context, requests []leave.LeaveRequest) ([]leave.LeaveRequestResponse, error) {
	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	steps, err := s.StepRepository.ListByRequests(ctx, approval.KindLeave, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get approval steps: %w", err)
	}

	out := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		r.Steps = steps[r.ID]
		out = append(out, leave.ToRequestResponse(r))
	}
	return out, nil
}

func (s *LeaveServiceImpl) notify(ctx context.Context, r leave.LeaveRequest, status approval.Status, note, actorID string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, notification.StatusChange{
		Kind:       approval.KindLeave,
		RequestID:  r.ID,
		EmployeeID: r.EmployeeID,
		Status:     status,
		Note:       note,
		ActorID:    actorID,
		At:         s.now(),
	})
}

// CompleteFinishedLeave implements leave.LeaveService. Approved requests whose
// end date lies before today become SELESAI. A failing request is logged and
// skipped so one bad row does not block the rest.
func (s *LeaveServiceImpl) CompleteFinishedLeave(ctx context.Context) (int, error) {
	now := s.now()
	today := now.Format("2006-01-02")

	ended, err := s.LeaveRequestRepository.ListEndedApproved(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list finished leave: %w", err)
	}

	var errs []error
	completed := 0
	for _, candidate := range ended {
		var (
			r    leave.LeaveRequest
			done bool
		)
		// A cancel may have landed after the listing; the locked row decides.
		err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
			var err error
			r, err = s.LeaveRequestRepository.GetByIDForUpdate(ctx, candidate.ID)
			if err != nil {
				return err
			}
			if !r.HasEnded(now) || !approval.CanTransition(r.Status, approval.StatusCompleted) {
				return nil
			}
			if err := s.LeaveRequestRepository.UpdateStatus(ctx, r.ID, approval.StatusCompleted, r.QuotaDeducted); err != nil {
				return err
			}
			done = true
			return nil
		})
		if err != nil {
			slog.Error("Failed to complete leave request", "leave_request_id", candidate.ID, "error", err)
			errs = append(errs, fmt.Errorf("complete leave request %s: %w", candidate.ID, err))
			continue
		}
		if !done {
			continue
		}
		completed++
		s.notify(ctx, r, approval.StatusCompleted, "", "")
	}
	return completed, errors.Join(errs...)
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)
