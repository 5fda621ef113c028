package pension

import (
	"context"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

type PensionRepository interface {
	Create(ctx context.Context, req PensionRequest) (PensionRequest, error)
	GetByID(ctx context.Context, id string) (PensionRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (PensionRequest, error)
	List(ctx context.Context, filter PensionFilter) ([]PensionRequest, int64, error)
	HasActive(ctx context.Context, employeeID string) (bool, error)
	Update(ctx context.Context, req PensionRequest) error
	UpdateStatus(ctx context.Context, id string, status approval.Status) error
}
