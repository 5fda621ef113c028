package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/studypermit"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
)

type studyPermitRepositoryImpl struct {
	db *database.DB
}

func NewStudyPermitRepository(db *database.DB) studypermit.StudyPermitRepository {
	return &studyPermitRepositoryImpl{db: db}
}

const studyPermitSelect = `
	SELECT sp.id, sp.employee_id, e.nip, e.full_name,
		   sp.institution, sp.program, sp.degree, sp.start_date, sp.end_date,
		   sp.duration_months, sp.funding_source, sp.reason, sp.attachment_url,
		   sp.status, sp.submitted_at, sp.created_at, sp.updated_at
	FROM study_permits sp
	JOIN employees e ON sp.employee_id = e.id
`

func scanStudyPermit(row pgx.Row) (studypermit.StudyPermitRequest, error) {
	var sp studypermit.StudyPermitRequest
	err := row.Scan(
		&sp.ID, &sp.EmployeeID, &sp.EmployeeNIP, &sp.EmployeeName,
		&sp.Institution, &sp.Program, &sp.Degree, &sp.StartDate, &sp.EndDate,
		&sp.DurationMonths, &sp.FundingSource, &sp.Reason, &sp.AttachmentURL,
		&sp.Status, &sp.SubmittedAt, &sp.CreatedAt, &sp.UpdatedAt,
	)
	return sp, err
}

func (r *studyPermitRepositoryImpl) Create(ctx context.Context, req studypermit.StudyPermitRequest) (studypermit.StudyPermitRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO study_permits (
			employee_id, institution, program, degree, start_date, end_date,
			duration_months, funding_source, reason, attachment_url, status,
			submitted_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW(), NOW())
		RETURNING id, submitted_at, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.Institution, req.Program, req.Degree, req.StartDate, req.EndDate,
		req.DurationMonths, req.FundingSource, req.Reason, req.AttachmentURL, req.Status,
	).Scan(&req.ID, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return studypermit.StudyPermitRequest{}, err
	}
	return req, nil
}

func (r *studyPermitRepositoryImpl) GetByID(ctx context.Context, id string) (studypermit.StudyPermitRequest, error) {
	return r.get(ctx, studyPermitSelect+` WHERE sp.id = $1`, id)
}

// GetByIDForUpdate locks the request row until the surrounding transaction ends.
func (r *studyPermitRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (studypermit.StudyPermitRequest, error) {
	return r.get(ctx, studyPermitSelect+` WHERE sp.id = $1 FOR UPDATE OF sp`, id)
}

func (r *studyPermitRepositoryImpl) get(ctx context.Context, query, id string) (studypermit.StudyPermitRequest, error) {
	q := GetQuerier(ctx, r.db)

	sp, err := scanStudyPermit(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return studypermit.StudyPermitRequest{}, studypermit.ErrStudyPermitNotFound
		}
		return studypermit.StudyPermitRequest{}, err
	}
	return sp, nil
}

func (r *studyPermitRepositoryImpl) List(ctx context.Context, filter studypermit.StudyPermitFilter) ([]studypermit.StudyPermitRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		w.add("sp.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Status != nil && *filter.Status != "" {
		w.add("sp.status = $%d", *filter.Status)
	}
	if filter.Degree != nil && *filter.Degree != "" {
		w.add("sp.degree = $%d", *filter.Degree)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		w.add("sp.end_date >= $%d::date", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		w.add("sp.start_date <= $%d::date", *filter.EndDate)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM study_permits sp `+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := studyPermitSelect + w.where() + ` ORDER BY sp.submitted_at DESC`
	if !filter.Unpaged {
		query += " " + w.page(filter.Limit, filter.Offset())
	}
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	permits := make([]studypermit.StudyPermitRequest, 0)
	for rows.Next() {
		sp, err := scanStudyPermit(rows)
		if err != nil {
			return nil, 0, err
		}
		permits = append(permits, sp)
	}
	return permits, total, rows.Err()
}

func (r *studyPermitRepositoryImpl) Update(ctx context.Context, req studypermit.StudyPermitRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE study_permits
		SET institution = $2, program = $3, degree = $4, start_date = $5, end_date = $6,
			duration_months = $7, funding_source = $8, reason = $9, status = $10, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		req.ID, req.Institution, req.Program, req.Degree, req.StartDate, req.EndDate,
		req.DurationMonths, req.FundingSource, req.Reason, req.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return studypermit.ErrStudyPermitNotFound
	}
	return nil
}

func (r *studyPermitRepositoryImpl) UpdateStatus(ctx context.Context, id string, status approval.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE study_permits SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return studypermit.ErrStudyPermitNotFound
	}
	return nil
}
