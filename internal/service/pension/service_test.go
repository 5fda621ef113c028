package pension

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/pension"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/approvalchain"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePensions struct {
	byID map[string]pension.PensionRequest
	// checkMisses makes HasActive miss a request that is not committed yet.
	checkMisses bool
}

func (f *fakePensions) Create(_ context.Context, r pension.PensionRequest) (pension.PensionRequest, error) {
	if f.active(r.EmployeeID) {
		return pension.PensionRequest{}, pension.ErrActivePensionExists
	}
	r.ID = fmt.Sprintf("pn-%d", len(f.byID)+1)
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakePensions) GetByID(_ context.Context, id string) (pension.PensionRequest, error) {
	r, ok := f.byID[id]
	if !ok {
		return pension.PensionRequest{}, pension.ErrPensionRequestNotFound
	}
	return r, nil
}

func (f *fakePensions) GetByIDForUpdate(ctx context.Context, id string) (pension.PensionRequest, error) {
	return f.GetByID(ctx, id)
}

func (f *fakePensions) List(_ context.Context, _ pension.PensionFilter) ([]pension.PensionRequest, int64, error) {
	out := make([]pension.PensionRequest, 0, len(f.byID))
	for _, r := range f.byID {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakePensions) HasActive(_ context.Context, employeeID string) (bool, error) {
	if f.checkMisses {
		return false, nil
	}
	return f.active(employeeID), nil
}

func (f *fakePensions) active(employeeID string) bool {
	for _, r := range f.byID {
		if r.EmployeeID == employeeID && !r.Status.IsTerminal() {
			return true
		}
	}
	return false
}

func (f *fakePensions) Update(_ context.Context, r pension.PensionRequest) error {
	f.byID[r.ID] = r
	return nil
}

func (f *fakePensions) UpdateStatus(_ context.Context, id string, status approval.Status) error {
	r, ok := f.byID[id]
	if !ok {
		return pension.ErrPensionRequestNotFound
	}
	r.Status = status
	f.byID[id] = r
	return nil
}

func newService(t *testing.T) (*PensionServiceImpl, *servicetest.Employees, *servicetest.Notifier) {
	t.Helper()
	svc, _, employees, notifier := newServiceWithStore(t)
	return svc, employees, notifier
}

func newServiceWithStore(t *testing.T) (*PensionServiceImpl, *fakePensions, *servicetest.Employees, *servicetest.Notifier) {
	t.Helper()
	employees := servicetest.NewEmployees(employee.Employee{ID: "emp-1", NIP: "196405121990031002", FullName: "Slamet Riyadi", EmploymentStatus: employee.EmploymentStatusPNS})
	notifier := &servicetest.Notifier{}
	pensions := &fakePensions{byID: map[string]pension.PensionRequest{}}
	svc := NewPensionService(&servicetest.Tx{}, pensions, servicetest.NewSteps(),
		employees, approvalchain.Defaults(), servicetest.NewFiles(), notifier)
	svc.now = func() time.Time { return time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC) }
	return svc, pensions, employees, notifier
}

func validRequest() pension.CreatePensionRequest {
	return pension.CreatePensionRequest{
		EmployeeID:    "emp-1",
		PensionType:   "BUP",
		FilingDate:    "2025-05-02",
		EffectiveDate: "2025-06-01",
		Reason:        "Mencapai batas usia pensiun",
	}
}

var hr = approval.Actor{UserID: "user-hr", Role: user.RoleKepegawaian, ViewAll: true, CancelAny: true}

func TestCompleteRetiresEmployee(t *testing.T) {
	svc, employees, notifier := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "DIAJUKAN", created.Status)

	_, err = svc.Create(ctx, validRequest())
	assert.ErrorIs(t, err, pension.ErrActivePensionExists)

	_, err = svc.Decide(ctx, hr, created.ID, approval.DecisionRequest{Decision: "approve"})
	require.NoError(t, err)
	approved, err := svc.Decide(ctx, approval.Actor{UserID: "user-head", Role: user.RolePimpinan}, created.ID, approval.DecisionRequest{Decision: "approve"})
	require.NoError(t, err)
	assert.Equal(t, "DISETUJUI", approved.Status)
	assert.Equal(t, employee.EmploymentStatusPNS, employees.ByID["emp-1"].EmploymentStatus)

	done, err := svc.Complete(ctx, hr, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SELESAI", done.Status)
	assert.Equal(t, employee.EmploymentStatusPensiun, employees.ByID["emp-1"].EmploymentStatus)
	assert.Equal(t, []approval.Status{approval.StatusSubmitted, approval.StatusApproved, approval.StatusCompleted}, notifier.Statuses())

	_, err = svc.Create(ctx, validRequest())
	assert.ErrorIs(t, err, employee.ErrEmployeeRetired)
}

func TestCreateRejectedByStoreWhenActiveCheckMisses(t *testing.T) {
	svc, pensions, _, _ := newServiceWithStore(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	pensions.checkMisses = true
	_, err = svc.Create(ctx, validRequest())
	assert.ErrorIs(t, err, pension.ErrActivePensionExists)
	assert.Len(t, pensions.byID, 1)
}

func TestCompleteRequiresApproval(t *testing.T) {
	svc, employees, _ := newService(t)

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), hr, created.ID)
	assert.ErrorIs(t, err, approval.ErrInvalidTransition)
	assert.Equal(t, employee.EmploymentStatusPNS, employees.ByID["emp-1"].EmploymentStatus)
}

func TestEffectiveDateBeforeFiling(t *testing.T) {
	svc, _, _ := newService(t)

	req := validRequest()
	req.EffectiveDate = "2025-01-01"
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestResubmitAndCancel(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	_, err = svc.Decide(ctx, hr, created.ID, approval.DecisionRequest{Decision: "revise", Note: "Lampirkan SK"})
	require.NoError(t, err)

	before := "2025-04-01"
	_, err = svc.Resubmit(ctx, hr, pension.ResubmitPensionRequest{ID: created.ID, EffectiveDate: &before})
	assert.Error(t, err)

	after := "2025-07-01"
	resp, err := svc.Resubmit(ctx, hr, pension.ResubmitPensionRequest{ID: created.ID, EffectiveDate: &after})
	require.NoError(t, err)
	assert.Equal(t, "DIAJUKAN", resp.Status)
	assert.Equal(t, after, resp.EffectiveDate)

	empID := "emp-1"
	cancelled, err := svc.Cancel(ctx, approval.Actor{UserID: "user-1", EmployeeID: &empID, Role: user.RolePegawai}, created.ID, approval.CancelRequest{})
	require.NoError(t, err)
	assert.Equal(t, "DIBATALKAN", cancelled.Status)
}
