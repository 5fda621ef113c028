package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/pension"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
)

type pensionRepositoryImpl struct {
	db *database.DB
}

func NewPensionRepository(db *database.DB) pension.PensionRepository {
	return &pensionRepositoryImpl{db: db}
}

const pensionSelect = `
	SELECT pr.id, pr.employee_id, e.nip, e.full_name,
		   pr.pension_type, pr.filing_date, pr.effective_date, pr.reason, pr.attachment_url,
		   pr.status, pr.submitted_at, pr.created_at, pr.updated_at
	FROM pension_requests pr
	JOIN employees e ON pr.employee_id = e.id
`

func scanPension(row pgx.Row) (pension.PensionRequest, error) {
	var pr pension.PensionRequest
	err := row.Scan(
		&pr.ID, &pr.EmployeeID, &pr.EmployeeNIP, &pr.EmployeeName,
		&pr.PensionType, &pr.FilingDate, &pr.EffectiveDate, &pr.Reason, &pr.AttachmentURL,
		&pr.Status, &pr.SubmittedAt, &pr.CreatedAt, &pr.UpdatedAt,
	)
	return pr, err
}

func (r *pensionRepositoryImpl) Create(ctx context.Context, req pension.PensionRequest) (pension.PensionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pension_requests (
			employee_id, pension_type, filing_date, effective_date, reason, attachment_url, status,
			submitted_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW(), NOW())
		RETURNING id, submitted_at, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.PensionType, req.FilingDate, req.EffectiveDate, req.Reason, req.AttachmentURL, req.Status,
	).Scan(&req.ID, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return pension.PensionRequest{}, pension.ErrActivePensionExists
		}
		return pension.PensionRequest{}, err
	}
	return req, nil
}

func (r *pensionRepositoryImpl) GetByID(ctx context.Context, id string) (pension.PensionRequest, error) {
	return r.get(ctx, pensionSelect+` WHERE pr.id = $1`, id)
}

// GetByIDForUpdate locks the request row until the surrounding transaction ends.
func (r *pensionRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (pension.PensionRequest, error) {
	return r.get(ctx, pensionSelect+` WHERE pr.id = $1 FOR UPDATE OF pr`, id)
}

func (r *pensionRepositoryImpl) get(ctx context.Context, query, id string) (pension.PensionRequest, error) {
	q := GetQuerier(ctx, r.db)

	pr, err := scanPension(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return pension.PensionRequest{}, pension.ErrPensionRequestNotFound
		}
		return pension.PensionRequest{}, err
	}
	return pr, nil
}

func (r *pensionRepositoryImpl) List(ctx context.Context, filter pension.PensionFilter) ([]pension.PensionRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		w.add("pr.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Status != nil && *filter.Status != "" {
		w.add("pr.status = $%d", *filter.Status)
	}
	if filter.PensionType != nil && *filter.PensionType != "" {
		w.add("pr.pension_type = $%d", *filter.PensionType)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM pension_requests pr `+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := pensionSelect + w.where() + ` ORDER BY pr.submitted_at DESC`
	if !filter.Unpaged {
		query += " " + w.page(filter.Limit, filter.Offset())
	}
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := make([]pension.PensionRequest, 0)
	for rows.Next() {
		pr, err := scanPension(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, pr)
	}
	return requests, total, rows.Err()
}

// HasActive reports whether the employee has a pension request that is not closed.
func (r *pensionRepositoryImpl) HasActive(ctx context.Context, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM pension_requests WHERE employee_id = $1 AND status IN ($2, $3, $4))`
	var exists bool
	err := q.QueryRow(ctx, query, employeeID, approval.StatusSubmitted, approval.StatusRevision, approval.StatusApproved).Scan(&exists)
	return exists, err
}

func (r *pensionRepositoryImpl) Update(ctx context.Context, req pension.PensionRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pension_requests
		SET pension_type = $2, filing_date = $3, effective_date = $4, reason = $5, status = $6, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, req.ID, req.PensionType, req.FilingDate, req.EffectiveDate, req.Reason, req.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return pension.ErrPensionRequestNotFound
	}
	return nil
}

func (r *pensionRepositoryImpl) UpdateStatus(ctx context.Context, id string, status approval.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE pension_requests SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return pension.ErrPensionRequestNotFound
	}
	return nil
}
