package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id, e.nip, e.full_name, lr.leave_type,
		   lr.start_date, lr.end_date, lr.day_count,
		   lr.reason, lr.address_during_leave, lr.phone_during_leave, lr.attachment_url,
		   lr.status, lr.quota_id, lr.quota_deducted,
		   lr.submitted_at, lr.created_at, lr.updated_at
	FROM leave_requests lr
	JOIN employees e ON lr.employee_id = e.id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.EmployeeNIP, &lr.EmployeeName, &lr.LeaveType,
		&lr.StartDate, &lr.EndDate, &lr.DayCount,
		&lr.Reason, &lr.AddressDuringLeave, &lr.PhoneDuringLeave, &lr.AttachmentURL,
		&lr.Status, &lr.QuotaID, &lr.QuotaDeducted,
		&lr.SubmittedAt, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type, start_date, end_date, day_count,
			reason, address_during_leave, phone_during_leave, attachment_url,
			status, quota_id, quota_deducted,
			submitted_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, FALSE,
			NOW(), NOW(), NOW()
		) RETURNING id, submitted_at, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveType, request.StartDate, request.EndDate, request.DayCount,
		request.Reason, request.AddressDuringLeave, request.PhoneDuringLeave, request.AttachmentURL,
		request.Status, request.QuotaID,
	).Scan(&request.ID, &request.SubmittedAt, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.get(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id)
}

// GetByIDForUpdate locks the request row until the surrounding transaction ends.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.get(ctx, leaveRequestSelect+` WHERE lr.id = $1 FOR UPDATE OF lr`, id)
}

func (r *leaveRequestRepositoryImpl) get(ctx context.Context, query, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		w.add("lr.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Status != nil && *filter.Status != "" {
		w.add("lr.status = $%d", *filter.Status)
	}
	if filter.LeaveType != nil && *filter.LeaveType != "" {
		w.add("lr.leave_type = $%d", *filter.LeaveType)
	}
	// Date filters select requests overlapping the window.
	if filter.StartDate != nil && *filter.StartDate != "" {
		w.add("lr.end_date >= $%d::date", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		w.add("lr.start_date <= $%d::date", *filter.EndDate)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_requests lr ` + w.where()
	if err := q.QueryRow(ctx, countQuery, w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := leaveRequestSelect + w.where() + ` ORDER BY lr.submitted_at DESC`
	if !filter.Unpaged {
		query += " " + w.page(filter.Limit, filter.Offset())
	}
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, lr)
	}
	return requests, total, rows.Err()
}

// Update rewrites the applicant-editable fields after a revision.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET leave_type = $2, start_date = $3, end_date = $4, day_count = $5,
			reason = $6, address_during_leave = $7, phone_during_leave = $8,
			quota_id = $9, status = $10, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		request.ID, request.LeaveType, request.StartDate, request.EndDate, request.DayCount,
		request.Reason, request.AddressDuringLeave, request.PhoneDuringLeave,
		request.QuotaID, request.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status approval.Status, quotaDeducted bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, quota_deducted = $3, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id, status, quotaDeducted)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// ListEndedApproved returns approved requests whose end date is before the given date.
func (r *leaveRequestRepositoryImpl) ListEndedApproved(ctx context.Context, before string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + ` WHERE lr.status = $1 AND lr.end_date < $2::date ORDER BY lr.end_date`
	rows, err := q.Query(ctx, query, approval.StatusApproved, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}
