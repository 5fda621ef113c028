package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/dashboard"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

var requestTables = map[approval.Kind]string{
	approval.KindLeave:          "leave_requests",
	approval.KindStudyPermit:    "study_permits",
	approval.KindSalaryIncrease: "salary_increases",
	approval.KindPension:        "pension_requests",
}

// GetEmployeeSummary returns total, new (since date) and per status counts in single query
func (r *dashboardRepositoryImpl) GetEmployeeSummary(ctx context.Context, since time.Time) (*dashboard.EmployeeSummaryStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN hire_date >= $1 THEN 1 ELSE 0 END), 0) as new_count,
			COALESCE(SUM(CASE WHEN employment_status = 'PNS' THEN 1 ELSE 0 END), 0) as pns,
			COALESCE(SUM(CASE WHEN employment_status = 'PPPK' THEN 1 ELSE 0 END), 0) as pppk,
			COALESCE(SUM(CASE WHEN employment_status = 'Honorer' THEN 1 ELSE 0 END), 0) as honorer,
			COALESCE(SUM(CASE WHEN employment_status = 'Pensiun' THEN 1 ELSE 0 END), 0) as pensiun
		FROM employees
		WHERE deleted_at IS NULL
	`

	var stats dashboard.EmployeeSummaryStats
	err := q.QueryRow(ctx, query, since).Scan(
		&stats.Total, &stats.New, &stats.PNS, &stats.PPPK, &stats.Honorer, &stats.Pensiun,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee summary: %w", err)
	}
	return &stats, nil
}

func (r *dashboardRepositoryImpl) CountRequestsByStatus(ctx context.Context, kind approval.Kind, employeeID *string) (map[approval.Status]int64, error) {
	table, ok := requestTables[kind]
	if !ok {
		return nil, approval.ErrUnknownKind
	}
	q := GetQuerier(ctx, r.db)

	var wb whereBuilder
	if employeeID != nil {
		wb.add("employee_id = $%d", *employeeID)
	}
	query := `SELECT status, COUNT(*) FROM ` + table + ` ` + wb.where() + ` GROUP BY status`

	rows, err := q.Query(ctx, query, wb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s by status: %w", kind, err)
	}
	defer rows.Close()

	counts := make(map[approval.Status]int64)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan %s status count: %w", kind, err)
		}
		counts[approval.Status(status)] += n
	}
	return counts, rows.Err()
}
