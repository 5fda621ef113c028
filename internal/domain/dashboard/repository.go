package dashboard

import (
	"context"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

// EmployeeSummaryStats combines all employee summary counts in single query
type EmployeeSummaryStats struct {
	Total   int64
	New     int64
	PNS     int64
	PPPK    int64
	Honorer int64
	Pensiun int64
}

type DashboardRepository interface {
	// GetEmployeeSummary returns total, new (hired since), and per employment status counts
	GetEmployeeSummary(ctx context.Context, since time.Time) (*EmployeeSummaryStats, error)

	// CountRequestsByStatus groups one kind's requests by status, optionally for a single employee
	CountRequestsByStatus(ctx context.Context, kind approval.Kind, employeeID *string) (map[approval.Status]int64, error)
}
