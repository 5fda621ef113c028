package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	quotaRepo    leave.LeaveQuotaRepository

	now func() time.Time
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	quotaRepo leave.LeaveQuotaRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		quotaRepo:    quotaRepo,
		now:          time.Now,
	}
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return employee.ToResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService. Civil servants (PNS and
// PPPK) get this year's annual leave quota in the same transaction.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.employeeRepo.ExistsByNIP(ctx, req.NIP, nil)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check NIP existence: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrNIPExists
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)
	newEmployee := employee.Employee{
		NIP:              req.NIP,
		FullName:         strings.TrimSpace(req.FullName),
		Gender:           employee.Gender(req.Gender),
		BirthPlace:       req.BirthPlace,
		Position:         strings.TrimSpace(req.Position),
		Rank:             strings.TrimSpace(req.Rank),
		WorkUnit:         strings.TrimSpace(req.WorkUnit),
		EmploymentStatus: employee.EmploymentStatus(req.EmploymentStatus),
		HireDate:         hireDate,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		BaseSalary:       req.BaseSalary,
	}
	if req.BirthDate != nil && *req.BirthDate != "" {
		dob, _ := validator.IsValidDate(*req.BirthDate)
		newEmployee.BirthDate = &dob
	}

	var created employee.Employee
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.employeeRepo.Create(ctx, newEmployee)
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		if !entitledToAnnualLeave(created.EmploymentStatus) {
			return nil
		}
		quota, err := s.quotaRepo.Create(ctx, leave.LeaveQuota{
			EmployeeID:    created.ID,
			Year:          s.now().Year(),
			TotalDays:     leave.DefaultAnnualDays,
			RemainingDays: leave.DefaultAnnualDays,
		})
		if err != nil {
			return fmt.Errorf("failed to assign leave quota: %w", err)
		}
		slog.Info("Assigned annual leave quota", "employee_id", created.ID, "year", quota.Year, "days", quota.TotalDays)
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(created), nil
}

func entitledToAnnualLeave(status employee.EmploymentStatus) bool {
	return status == employee.EmploymentStatusPNS || status == employee.EmploymentStatusPPPK
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	// Check for duplicate NIP if being updated
	if req.NIP != nil && *req.NIP != existing.NIP {
		exists, err := s.employeeRepo.ExistsByNIP(ctx, *req.NIP, &existing.ID)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to check NIP: %w", err)
		}
		if exists {
			return employee.EmployeeResponse{}, employee.ErrNIPExists
		}
	}

	req.Apply(&existing)
	if err := s.employeeRepo.Update(ctx, existing); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get updated employee: %w", err)
	}
	return employee.ToResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return pagination.NewList(responses, filter.Params, total), nil
}
