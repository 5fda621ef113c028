package studypermit

import (
	"context"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

type StudyPermitService interface {
	Create(ctx context.Context, req CreateStudyPermitRequest) (StudyPermitResponse, error)
	Get(ctx context.Context, actor approval.Actor, id string) (StudyPermitResponse, error)
	List(ctx context.Context, filter StudyPermitFilter) (ListStudyPermitResponse, error)
	Export(ctx context.Context, filter StudyPermitFilter) ([]StudyPermitResponse, error)
	Decide(ctx context.Context, actor approval.Actor, id string, req approval.DecisionRequest) (StudyPermitResponse, error)
	Resubmit(ctx context.Context, actor approval.Actor, req ResubmitStudyPermitRequest) (StudyPermitResponse, error)
	Cancel(ctx context.Context, actor approval.Actor, id string, req approval.CancelRequest) (StudyPermitResponse, error)
	Complete(ctx context.Context, actor approval.Actor, id string) (StudyPermitResponse, error)
}
