package studypermit

import (
	"context"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

type StudyPermitRepository interface {
	Create(ctx context.Context, req StudyPermitRequest) (StudyPermitRequest, error)
	GetByID(ctx context.Context, id string) (StudyPermitRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (StudyPermitRequest, error)
	List(ctx context.Context, filter StudyPermitFilter) ([]StudyPermitRequest, int64, error)
	Update(ctx context.Context, req StudyPermitRequest) error
	UpdateStatus(ctx context.Context, id string, status approval.Status) error
}
