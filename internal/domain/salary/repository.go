package salary

import (
	"context"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

type SalaryIncreaseRepository interface {
	Create(ctx context.Context, s SalaryIncrease) (SalaryIncrease, error)
	GetByID(ctx context.Context, id string) (SalaryIncrease, error)
	GetByIDForUpdate(ctx context.Context, id string) (SalaryIncrease, error)
	List(ctx context.Context, filter SalaryIncreaseFilter) ([]SalaryIncrease, int64, error)
	HasPending(ctx context.Context, employeeID string) (bool, error)
	Update(ctx context.Context, s SalaryIncrease) error
	UpdateStatus(ctx context.Context, id string, status approval.Status) error
}
