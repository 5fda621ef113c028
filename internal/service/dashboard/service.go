package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/dashboard"
)

const newEmployeeWindow = 30 * 24 * time.Hour

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
	}
}

// GetDashboard runs the employee summary and one count per request kind in parallel.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, employeeID *string) (*dashboard.DashboardResponse, error) {
	now := time.Now()
	kinds := approval.AllKinds()

	var employeeSummary *dashboard.EmployeeSummaryResponse
	requests := make([]dashboard.RequestSummaryResponse, len(kinds))

	g, gCtx := errgroup.WithContext(ctx)

	if employeeID == nil {
		g.Go(func() error {
			stats, err := s.GetEmployeeSummary(gCtx, now.Add(-newEmployeeWindow))
			if err != nil {
				return err
			}
			employeeSummary = &dashboard.EmployeeSummaryResponse{
				TotalEmployee: stats.Total,
				NewEmployee:   stats.New,
				PNS:           stats.PNS,
				PPPK:          stats.PPPK,
				Honorer:       stats.Honorer,
				Pensiun:       stats.Pensiun,
			}
			return nil
		})
	}

	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			counts, err := s.CountRequestsByStatus(gCtx, kind, employeeID)
			if err != nil {
				return err
			}
			requests[i] = dashboard.NewRequestSummary(kind, counts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		EmployeeSummary: employeeSummary,
		Requests:        requests,
		UpdatedAt:       now.Format(time.RFC3339),
	}, nil
}
