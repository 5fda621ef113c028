package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
)

// CreateLeaveQuota implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveQuota(ctx context.Context, req leave.CreateLeaveQuotaRequest) (leave.LeaveQuotaResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveQuotaResponse{}, err
	}

	emp, err := s.activeEmployee(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveQuotaResponse{}, err
	}

	created, err := s.LeaveQuotaRepository.Create(ctx, leave.LeaveQuota{
		EmployeeID:    emp.ID,
		Year:          req.Year,
		TotalDays:     req.TotalDays,
		RemainingDays: req.TotalDays,
	})
	if err != nil {
		if errors.Is(err, leave.ErrLeaveQuotaExists) {
			return leave.LeaveQuotaResponse{}, err
		}
		return leave.LeaveQuotaResponse{}, fmt.Errorf("failed to create leave quota: %w", err)
	}
	if created.EmployeeName == nil {
		name := emp.FullName
		created.EmployeeName = &name
	}

	return leave.ToQuotaResponse(created), nil
}

// UpdateLeaveQuota implements leave.LeaveService. Changing only the total
// shifts the remaining days by the same amount, floored at zero.
func (s *LeaveServiceImpl) UpdateLeaveQuota(ctx context.Context, req leave.UpdateLeaveQuotaRequest) (leave.LeaveQuotaResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveQuotaResponse{}, err
	}

	var updated leave.LeaveQuota
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		quota, err := s.LeaveQuotaRepository.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.TotalDays != nil {
			delta := *req.TotalDays - quota.TotalDays
			quota.TotalDays = *req.TotalDays
			if req.RemainingDays == nil {
				quota.RemainingDays = max(quota.RemainingDays+delta, 0)
			}
		}
		if req.RemainingDays != nil {
			quota.RemainingDays = *req.RemainingDays
		}
		if quota.RemainingDays > quota.TotalDays {
			var errs validator.ValidationErrors
			errs.Add("remaining_days", "remaining_days must not exceed total_days")
			return errs
		}

		if err := s.LeaveQuotaRepository.Update(ctx, quota); err != nil {
			return fmt.Errorf("failed to update leave quota: %w", err)
		}
		updated = quota
		return nil
	})
	if err != nil {
		return leave.LeaveQuotaResponse{}, err
	}

	return leave.ToQuotaResponse(updated), nil
}

// ListLeaveQuota implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveQuota(ctx context.Context, filter leave.LeaveQuotaFilter) (leave.ListLeaveQuotaResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveQuotaResponse{}, err
	}

	quotas, total, err := s.LeaveQuotaRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveQuotaResponse{}, fmt.Errorf("failed to list leave quotas: %w", err)
	}

	items := make([]leave.LeaveQuotaResponse, 0, len(quotas))
	for _, q := range quotas {
		items = append(items, leave.ToQuotaResponse(q))
	}
	return pagination.NewList(items, filter.Params, total), nil
}

// GetMyQuota implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyQuota(ctx context.Context, employeeID string, year int) (leave.LeaveQuotaResponse, error) {
	if year == 0 {
		year = s.now().Year()
	}
	quota, err := s.LeaveQuotaRepository.GetByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveQuotaNotFound) {
			return leave.LeaveQuotaResponse{}, err
		}
		return leave.LeaveQuotaResponse{}, fmt.Errorf("failed to get leave quota: %w", err)
	}
	return leave.ToQuotaResponse(quota), nil
}
