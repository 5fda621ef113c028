package approval

import "context"

// StepRepository persists approval steps for every request kind.
type StepRepository interface {
	CreateSteps(ctx context.Context, kind Kind, requestID string, steps []Step) ([]Step, error)
	ListByRequest(ctx context.Context, kind Kind, requestID string) ([]Step, error)
	ListByRequests(ctx context.Context, kind Kind, requestIDs []string) (map[string][]Step, error)
	// UpdateStep writes a decided step. It returns ErrInvalidTransition when the
	// stored step is no longer in status from.
	UpdateStep(ctx context.Context, step Step, from Status) error
}
