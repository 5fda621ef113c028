package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/salary"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
)

type salaryIncreaseRepositoryImpl struct {
	db *database.DB
}

func NewSalaryIncreaseRepository(db *database.DB) salary.SalaryIncreaseRepository {
	return &salaryIncreaseRepositoryImpl{db: db}
}

const salaryIncreaseSelect = `
	SELECT si.id, si.employee_id, e.nip, e.full_name,
		   si.old_base_salary, si.new_base_salary, si.old_effective_date, si.new_effective_date,
		   si.note, si.status, si.created_by, si.submitted_at, si.created_at, si.updated_at
	FROM salary_increases si
	JOIN employees e ON si.employee_id = e.id
`

func scanSalaryIncrease(row pgx.Row) (salary.SalaryIncrease, error) {
	var si salary.SalaryIncrease
	err := row.Scan(
		&si.ID, &si.EmployeeID, &si.EmployeeNIP, &si.EmployeeName,
		&si.OldBaseSalary, &si.NewBaseSalary, &si.OldEffectiveDate, &si.NewEffectiveDate,
		&si.Note, &si.Status, &si.CreatedBy, &si.SubmittedAt, &si.CreatedAt, &si.UpdatedAt,
	)
	return si, err
}

func (r *salaryIncreaseRepositoryImpl) Create(ctx context.Context, s salary.SalaryIncrease) (salary.SalaryIncrease, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_increases (
			employee_id, old_base_salary, new_base_salary, old_effective_date, new_effective_date,
			note, status, created_by, submitted_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW(), NOW())
		RETURNING id, submitted_at, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		s.EmployeeID, s.OldBaseSalary, s.NewBaseSalary, s.OldEffectiveDate, s.NewEffectiveDate,
		s.Note, s.Status, s.CreatedBy,
	).Scan(&s.ID, &s.SubmittedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return salary.SalaryIncrease{}, salary.ErrPendingIncreaseExists
		}
		return salary.SalaryIncrease{}, err
	}
	return s, nil
}

func (r *salaryIncreaseRepositoryImpl) GetByID(ctx context.Context, id string) (salary.SalaryIncrease, error) {
	return r.get(ctx, salaryIncreaseSelect+` WHERE si.id = $1`, id)
}

// GetByIDForUpdate locks the request row until the surrounding transaction ends.
func (r *salaryIncreaseRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (salary.SalaryIncrease, error) {
	return r.get(ctx, salaryIncreaseSelect+` WHERE si.id = $1 FOR UPDATE OF si`, id)
}

func (r *salaryIncreaseRepositoryImpl) get(ctx context.Context, query, id string) (salary.SalaryIncrease, error) {
	q := GetQuerier(ctx, r.db)

	si, err := scanSalaryIncrease(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return salary.SalaryIncrease{}, salary.ErrSalaryIncreaseNotFound
		}
		return salary.SalaryIncrease{}, err
	}
	return si, nil
}

func (r *salaryIncreaseRepositoryImpl) List(ctx context.Context, filter salary.SalaryIncreaseFilter) ([]salary.SalaryIncrease, int64, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		w.add("si.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Status != nil && *filter.Status != "" {
		w.add("si.status = $%d", *filter.Status)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM salary_increases si `+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := salaryIncreaseSelect + w.where() + ` ORDER BY si.submitted_at DESC`
	if !filter.Unpaged {
		query += " " + w.page(filter.Limit, filter.Offset())
	}
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	increases := make([]salary.SalaryIncrease, 0)
	for rows.Next() {
		si, err := scanSalaryIncrease(rows)
		if err != nil {
			return nil, 0, err
		}
		increases = append(increases, si)
	}
	return increases, total, rows.Err()
}

// HasPending reports whether the employee has an increase still in the approval flow.
func (r *salaryIncreaseRepositoryImpl) HasPending(ctx context.Context, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM salary_increases WHERE employee_id = $1 AND status IN ($2, $3))`
	var exists bool
	err := q.QueryRow(ctx, query, employeeID, approval.StatusSubmitted, approval.StatusRevision).Scan(&exists)
	return exists, err
}

func (r *salaryIncreaseRepositoryImpl) Update(ctx context.Context, s salary.SalaryIncrease) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_increases
		SET new_base_salary = $2, new_effective_date = $3, note = $4, status = $5, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, s.ID, s.NewBaseSalary, s.NewEffectiveDate, s.Note, s.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return salary.ErrSalaryIncreaseNotFound
	}
	return nil
}

func (r *salaryIncreaseRepositoryImpl) UpdateStatus(ctx context.Context, id string, status approval.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE salary_increases SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return salary.ErrSalaryIncreaseNotFound
	}
	return nil
}
