package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByNIP(ctx context.Context, nip string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByNIP(ctx context.Context, nip string, excludeID *string) (bool, error)
	Update(ctx context.Context, e Employee) error
	UpdateBaseSalary(ctx context.Context, id string, salary decimal.Decimal) error
	UpdateEmploymentStatus(ctx context.Context, id string, status EmploymentStatus) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
}
