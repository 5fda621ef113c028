package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/dashboard"
)

type fakeDashboardRepo struct {
	mu        sync.Mutex
	counts    map[approval.Kind]map[approval.Status]int64
	scoped    []*string
	summaries int
	failKind  approval.Kind
}

func (f *fakeDashboardRepo) GetEmployeeSummary(_ context.Context, _ time.Time) (*dashboard.EmployeeSummaryStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries++
	return &dashboard.EmployeeSummaryStats{Total: 10, New: 2, PNS: 6, PPPK: 2, Honorer: 1, Pensiun: 1}, nil
}

func (f *fakeDashboardRepo) CountRequestsByStatus(_ context.Context, kind approval.Kind, employeeID *string) (map[approval.Status]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scoped = append(f.scoped, employeeID)
	if kind == f.failKind {
		return nil, errors.New("boom")
	}
	return f.counts[kind], nil
}

func TestGetDashboard_AllEmployees(t *testing.T) {
	repo := &fakeDashboardRepo{counts: map[approval.Kind]map[approval.Status]int64{
		approval.KindLeave:   {approval.StatusSubmitted: 2, approval.StatusApproved: 1},
		approval.KindPension: {approval.StatusCompleted: 4},
	}}
	svc := NewDashboardService(repo)

	out, err := svc.GetDashboard(context.Background(), nil)

	require.NoError(t, err)
	require.NotNil(t, out.EmployeeSummary)
	assert.EqualValues(t, 10, out.EmployeeSummary.TotalEmployee)
	assert.EqualValues(t, 6, out.EmployeeSummary.PNS)
	require.Len(t, out.Requests, len(approval.AllKinds()))
	assert.Equal(t, approval.KindLeave, out.Requests[0].Kind)
	assert.EqualValues(t, 3, out.Requests[0].Total)
	assert.EqualValues(t, 2, out.Requests[0].Open)
	assert.Equal(t, approval.KindPension, out.Requests[3].Kind)
	assert.EqualValues(t, 4, out.Requests[3].Total)
	assert.Zero(t, out.Requests[3].Open)
}

func TestGetDashboard_OwnEmployeeSkipsSummary(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := NewDashboardService(repo)
	employeeID := "emp-1"

	out, err := svc.GetDashboard(context.Background(), &employeeID)

	require.NoError(t, err)
	assert.Nil(t, out.EmployeeSummary)
	assert.Zero(t, repo.summaries)
	require.Len(t, repo.scoped, len(approval.AllKinds()))
	for _, scoped := range repo.scoped {
		require.NotNil(t, scoped)
		assert.Equal(t, "emp-1", *scoped)
	}
}

func TestGetDashboard_RepositoryError(t *testing.T) {
	repo := &fakeDashboardRepo{failKind: approval.KindSalaryIncrease}
	svc := NewDashboardService(repo)

	_, err := svc.GetDashboard(context.Background(), nil)

	assert.EqualError(t, err, "boom")
}
