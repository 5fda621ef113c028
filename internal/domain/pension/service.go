package pension

import (
	"context"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

type PensionService interface {
	Create(ctx context.Context, req CreatePensionRequest) (PensionResponse, error)
	Get(ctx context.Context, actor approval.Actor, id string) (PensionResponse, error)
	List(ctx context.Context, filter PensionFilter) (ListPensionResponse, error)
	Export(ctx context.Context, filter PensionFilter) ([]PensionResponse, error)
	Decide(ctx context.Context, actor approval.Actor, id string, req approval.DecisionRequest) (PensionResponse, error)
	Resubmit(ctx context.Context, actor approval.Actor, req ResubmitPensionRequest) (PensionResponse, error)
	Cancel(ctx context.Context, actor approval.Actor, id string, req approval.CancelRequest) (PensionResponse, error)
	Complete(ctx context.Context, actor approval.Actor, id string) (PensionResponse, error)
}
