package salary

import (
	"context"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

type SalaryIncreaseService interface {
	Create(ctx context.Context, actor approval.Actor, req CreateSalaryIncreaseRequest) (SalaryIncreaseResponse, error)
	Get(ctx context.Context, actor approval.Actor, id string) (SalaryIncreaseResponse, error)
	List(ctx context.Context, filter SalaryIncreaseFilter) (ListSalaryIncreaseResponse, error)
	Export(ctx context.Context, filter SalaryIncreaseFilter) ([]SalaryIncreaseResponse, error)
	Decide(ctx context.Context, actor approval.Actor, id string, req approval.DecisionRequest) (SalaryIncreaseResponse, error)
	Resubmit(ctx context.Context, actor approval.Actor, req ResubmitSalaryIncreaseRequest) (SalaryIncreaseResponse, error)
	Cancel(ctx context.Context, actor approval.Actor, id string, req approval.CancelRequest) (SalaryIncreaseResponse, error)
}
