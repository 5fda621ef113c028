package postgresql

import (
	"context"
	"fmt"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
)

type approvalStepRepositoryImpl struct {
	db *database.DB
}

func NewApprovalStepRepository(db *database.DB) approval.StepRepository {
	return &approvalStepRepositoryImpl{db: db}
}

const approvalStepColumns = `
	id, request_kind, request_id, sequence, approver_role, approver_id, approver_name,
	status, decided_at, note, created_at, updated_at
`

func (r *approvalStepRepositoryImpl) CreateSteps(ctx context.Context, kind approval.Kind, requestID string, steps []approval.Step) ([]approval.Step, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approval_steps (request_kind, request_id, sequence, approver_role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	created := make([]approval.Step, 0, len(steps))
	for _, s := range steps {
		s.RequestKind = kind
		s.RequestID = requestID
		if err := q.QueryRow(ctx, query, kind, requestID, s.Sequence, s.ApproverRole, s.Status).
			Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("insert approval step %d: %w", s.Sequence, err)
		}
		created = append(created, s)
	}
	return created, nil
}

func (r *approvalStepRepositoryImpl) ListByRequest(ctx context.Context, kind approval.Kind, requestID string) ([]approval.Step, error) {
	byRequest, err := r.ListByRequests(ctx, kind, []string{requestID})
	if err != nil {
		return nil, err
	}
	return byRequest[requestID], nil
}

func (r *approvalStepRepositoryImpl) ListByRequests(ctx context.Context, kind approval.Kind, requestIDs []string) (map[string][]approval.Step, error) {
	result := make(map[string][]approval.Step, len(requestIDs))
	if len(requestIDs) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + approvalStepColumns + `
		FROM approval_steps
		WHERE request_kind = $1 AND request_id = ANY($2::uuid[])
		ORDER BY request_id, sequence
	`

	rows, err := q.Query(ctx, query, kind, requestIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s approval.Step
		if err := rows.Scan(
			&s.ID, &s.RequestKind, &s.RequestID, &s.Sequence, &s.ApproverRole, &s.ApproverID, &s.ApproverName,
			&s.Status, &s.DecidedAt, &s.Note, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result[s.RequestID] = append(result[s.RequestID], s)
	}
	return result, rows.Err()
}

func (r *approvalStepRepositoryImpl) UpdateStep(ctx context.Context, step approval.Step, from approval.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE approval_steps
		SET status = $2, approver_id = $3, approver_name = $4, decided_at = $5, note = $6, updated_at = NOW()
		WHERE id = $1 AND status = $7
	`
	tag, err := q.Exec(ctx, query, step.ID, step.Status, step.ApproverID, step.ApproverName, step.DecidedAt, step.Note, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return approval.ErrInvalidTransition
	}
	return nil
}
