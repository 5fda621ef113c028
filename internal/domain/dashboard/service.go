package dashboard

import "context"

type DashboardService interface {
	// GetDashboard returns combined dashboard data. A nil employeeID means
	// every employee and includes the employee summary.
	GetDashboard(ctx context.Context, employeeID *string) (*DashboardResponse, error)
}
