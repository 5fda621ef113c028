package postgresql

import (
	"context"
	"fmt"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
)

type leaveQuotaRepositoryImpl struct {
	db *database.DB
}

func NewLeaveQuotaRepository(db *database.DB) leave.LeaveQuotaRepository {
	return &leaveQuotaRepositoryImpl{db: db}
}

const leaveQuotaSelect = `
	SELECT lq.id, lq.employee_id, lq.year, lq.total_days, lq.remaining_days,
		   lq.created_at, lq.updated_at, e.full_name
	FROM leave_quotas lq
	JOIN employees e ON lq.employee_id = e.id
`

func (r *leaveQuotaRepositoryImpl) scanOne(ctx context.Context, query string, args ...any) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	var quota leave.LeaveQuota
	err := q.QueryRow(ctx, query, args...).Scan(
		&quota.ID, &quota.EmployeeID, &quota.Year, &quota.TotalDays, &quota.RemainingDays,
		&quota.CreatedAt, &quota.UpdatedAt, &quota.EmployeeName,
	)
	if err != nil {
		if isNoRows(err) {
			return leave.LeaveQuota{}, leave.ErrLeaveQuotaNotFound
		}
		return leave.LeaveQuota{}, err
	}
	return quota, nil
}

func (r *leaveQuotaRepositoryImpl) Create(ctx context.Context, quota leave.LeaveQuota) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_quotas (employee_id, year, total_days, remaining_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, quota.EmployeeID, quota.Year, quota.TotalDays, quota.RemainingDays).
		Scan(&quota.ID, &quota.CreatedAt, &quota.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return leave.LeaveQuota{}, leave.ErrLeaveQuotaExists
		}
		return leave.LeaveQuota{}, err
	}
	return quota, nil
}

func (r *leaveQuotaRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveQuota, error) {
	return r.scanOne(ctx, leaveQuotaSelect+` WHERE lq.id = $1`, id)
}

// GetByIDForUpdate locks the quota row until the surrounding transaction ends.
func (r *leaveQuotaRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveQuota, error) {
	return r.scanOne(ctx, leaveQuotaSelect+` WHERE lq.id = $1 FOR UPDATE OF lq`, id)
}

func (r *leaveQuotaRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) (leave.LeaveQuota, error) {
	return r.scanOne(ctx, leaveQuotaSelect+` WHERE lq.employee_id = $1 AND lq.year = $2`, employeeID, year)
}

func (r *leaveQuotaRepositoryImpl) List(ctx context.Context, filter leave.LeaveQuotaFilter) ([]leave.LeaveQuota, int64, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		w.add("lq.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Year != nil {
		w.add("lq.year = $%d", *filter.Year)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_quotas lq ` + w.where()
	if err := q.QueryRow(ctx, countQuery, w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := leaveQuotaSelect + w.where() + ` ORDER BY lq.year DESC, e.full_name ` + w.page(filter.Limit, filter.Offset())
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	quotas := make([]leave.LeaveQuota, 0)
	for rows.Next() {
		var quota leave.LeaveQuota
		if err := rows.Scan(
			&quota.ID, &quota.EmployeeID, &quota.Year, &quota.TotalDays, &quota.RemainingDays,
			&quota.CreatedAt, &quota.UpdatedAt, &quota.EmployeeName,
		); err != nil {
			return nil, 0, err
		}
		quotas = append(quotas, quota)
	}
	return quotas, total, rows.Err()
}

func (r *leaveQuotaRepositoryImpl) Update(ctx context.Context, quota leave.LeaveQuota) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_quotas
		SET total_days = $2, remaining_days = $3, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, quota.ID, quota.TotalDays, quota.RemainingDays)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveQuotaNotFound
	}
	return nil
}

// AdjustRemaining adds delta to remaining_days. A decrement below zero fails
// with ErrInsufficientQuota.
func (r *leaveQuotaRepositoryImpl) AdjustRemaining(ctx context.Context, id string, delta int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_quotas
		SET remaining_days = LEAST(remaining_days + $2, total_days), updated_at = NOW()
		WHERE id = $1 AND remaining_days + $2 >= 0
	`
	tag, err := q.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("adjust leave quota: %w", err)
	}
	if tag.RowsAffected() != 1 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return leave.ErrInsufficientQuota
	}
	return nil
}
