package leave

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/approvalchain"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuotas struct {
	byID map[string]leave.LeaveQuota
}

func (f *fakeQuotas) Create(_ context.Context, q leave.LeaveQuota) (leave.LeaveQuota, error) {
	for _, existing := range f.byID {
		if existing.EmployeeID == q.EmployeeID && existing.Year == q.Year {
			return leave.LeaveQuota{}, leave.ErrLeaveQuotaExists
		}
	}
	q.ID = fmt.Sprintf("quota-%d", len(f.byID)+1)
	f.byID[q.ID] = q
	return q, nil
}

func (f *fakeQuotas) GetByID(_ context.Context, id string) (leave.LeaveQuota, error) {
	q, ok := f.byID[id]
	if !ok {
		return leave.LeaveQuota{}, leave.ErrLeaveQuotaNotFound
	}
	return q, nil
}

func (f *fakeQuotas) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveQuota, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeQuotas) GetByEmployeeYear(_ context.Context, employeeID string, year int) (leave.LeaveQuota, error) {
	for _, q := range f.byID {
		if q.EmployeeID == employeeID && q.Year == year {
			return q, nil
		}
	}
	return leave.LeaveQuota{}, leave.ErrLeaveQuotaNotFound
}

func (f *fakeQuotas) List(_ context.Context, _ leave.LeaveQuotaFilter) ([]leave.LeaveQuota, int64, error) {
	out := make([]leave.LeaveQuota, 0, len(f.byID))
	for _, q := range f.byID {
		out = append(out, q)
	}
	return out, int64(len(out)), nil
}

func (f *fakeQuotas) Update(_ context.Context, q leave.LeaveQuota) error {
	if _, ok := f.byID[q.ID]; !ok {
		return leave.ErrLeaveQuotaNotFound
	}
	f.byID[q.ID] = q
	return nil
}

func (f *fakeQuotas) AdjustRemaining(_ context.Context, id string, delta int) error {
	q, ok := f.byID[id]
	if !ok {
		return leave.ErrLeaveQuotaNotFound
	}
	if q.RemainingDays+delta < 0 {
		return leave.ErrInsufficientQuota
	}
	q.RemainingDays = min(q.RemainingDays+delta, q.TotalDays)
	f.byID[id] = q
	return nil
}

type fakeRequests struct {
	byID   map[string]leave.LeaveRequest
	locked []string
	// afterList runs once the ended requests are collected, before they are returned.
	afterList func()
}

func (f *fakeRequests) Create(_ context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.ID = fmt.Sprintf("leave-%d", len(f.byID)+1)
	r.SubmittedAt = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeRequests) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	r, ok := f.byID[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeRequests) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	f.locked = append(f.locked, id)
	return f.GetByID(ctx, id)
}

func (f *fakeRequests) List(_ context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	out := make([]leave.LeaveRequest, 0, len(f.byID))
	for _, r := range f.byID {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequests) Update(_ context.Context, r leave.LeaveRequest) error {
	f.byID[r.ID] = r
	return nil
}

func (f *fakeRequests) UpdateStatus(_ context.Context, id string, status approval.Status, quotaDeducted bool) error {
	r, ok := f.byID[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	r.Status = status
	r.QuotaDeducted = quotaDeducted
	f.byID[id] = r
	return nil
}

func (f *fakeRequests) ListEndedApproved(_ context.Context, before string) ([]leave.LeaveRequest, error) {
	out := make([]leave.LeaveRequest, 0)
	for _, r := range f.byID {
		if r.Status == approval.StatusApproved && r.EndDate.Format("2006-01-02") < before {
			out = append(out, r)
		}
	}
	if f.afterList != nil {
		f.afterList()
	}
	return out, nil
}

type fixture struct {
	svc      *LeaveServiceImpl
	quotas   *fakeQuotas
	requests *fakeRequests
	files    *servicetest.Files
	notifier *servicetest.Notifier
}

const (
	applicantID = "emp-1"
	otherID     = "emp-2"
)

func newFixture(t *testing.T) fixture {
	t.Helper()
	employees := servicetest.NewEmployees(
		employee.Employee{ID: applicantID, NIP: "198503302010011001", FullName: "Budi Santoso", EmploymentStatus: employee.EmploymentStatusPNS},
		employee.Employee{ID: otherID, NIP: "199001012015021002", FullName: "Siti Aminah", EmploymentStatus: employee.EmploymentStatusPensiun},
	)
	f := fixture{
		quotas: &fakeQuotas{byID: map[string]leave.LeaveQuota{
			"quota-1": {ID: "quota-1", EmployeeID: applicantID, Year: 2025, TotalDays: 12, RemainingDays: 5},
		}},
		requests: &fakeRequests{byID: map[string]leave.LeaveRequest{}},
		files:    servicetest.NewFiles(),
		notifier: &servicetest.Notifier{},
	}
	f.svc = NewLeaveService(&servicetest.Tx{}, f.quotas, f.requests, servicetest.NewSteps(), employees,
		approvalchain.Defaults(), f.files, f.notifier)
	f.svc.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return f
}

func applicant() approval.Actor {
	id := applicantID
	return approval.Actor{UserID: "user-1", EmployeeID: &id, Name: "Budi Santoso", Role: user.RolePegawai}
}

func annualRequest(start, end string) leave.CreateLeaveRequestRequest {
	return leave.CreateLeaveRequestRequest{
		EmployeeID:         applicantID,
		LeaveType:          "cuti tahunan",
		StartDate:          start,
		EndDate:            end,
		Reason:             "Acara keluarga",
		AddressDuringLeave: "Jl. Merdeka 1, Bandung",
		PhoneDuringLeave:   "081234567890",
	}
}

func approveAll(t *testing.T, f fixture, id string) leave.LeaveRequestResponse {
	t.Helper()
	var resp leave.LeaveRequestResponse
	for _, role := range []user.Role{user.RoleAtasan, user.RolePimpinan} {
		var err error
		resp, err = f.svc.DecideLeaveRequest(context.Background(), approval.Actor{UserID: "user-" + string(role), Role: role}, id,
			approval.DecisionRequest{Decision: "approve"})
		require.NoError(t, err)
	}
	return resp
}

func TestCreateLeaveRequest_AnnualWithinQuota(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.CreateLeaveRequest(context.Background(), annualRequest("2025-03-10", "2025-03-12"))
	require.NoError(t, err)

	assert.Equal(t, leave.NameAnnual, resp.LeaveType)
	assert.Equal(t, 3, resp.DayCount)
	assert.Equal(t, "DIAJUKAN", resp.Status)
	assert.Equal(t, "pending", resp.Badge.Category)
	require.Len(t, resp.Timeline, 2)
	assert.Equal(t, "atasan", resp.Timeline[0].ApproverRole)
	require.NotNil(t, resp.CurrentApproverRole)
	assert.Equal(t, "atasan", *resp.CurrentApproverRole)

	stored := f.requests.byID[resp.ID]
	require.NotNil(t, stored.QuotaID)
	assert.Equal(t, "quota-1", *stored.QuotaID)
	assert.Equal(t, 5, f.quotas.byID["quota-1"].RemainingDays, "submission must not deduct the quota")
}

func TestCreateLeaveRequest_ExceedsQuota(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateLeaveRequest(context.Background(), annualRequest("2025-03-10", "2025-03-15"))
	assert.ErrorIs(t, err, leave.ErrInsufficientQuota)
	assert.Empty(t, f.requests.byID)
}

func TestCreateLeaveRequest_NonAnnualIgnoresQuota(t *testing.T) {
	f := newFixture(t)
	req := annualRequest("2025-03-10", "2025-03-24")
	req.LeaveType = "CUTI_SAKIT"

	resp, err := f.svc.CreateLeaveRequest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Cuti Sakit", resp.LeaveType)
	assert.Equal(t, 15, resp.DayCount)
	assert.Nil(t, f.requests.byID[resp.ID].QuotaID)
}

func TestCreateLeaveRequest_Guards(t *testing.T) {
	f := newFixture(t)

	req := annualRequest("2025-03-12", "2025-03-10")
	_, err := f.svc.CreateLeaveRequest(context.Background(), req)
	assert.Error(t, err)

	req = annualRequest("2025-03-10", "2025-03-10")
	req.EmployeeID = otherID
	_, err = f.svc.CreateLeaveRequest(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeRetired)

	req = annualRequest("2025-03-10", "2025-03-10")
	req.EmployeeID = "missing"
	_, err = f.svc.CreateLeaveRequest(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestApprovalDeductsQuotaOnFinalStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, annualRequest("2025-03-10", "2025-03-12"))
	require.NoError(t, err)

	_, err = f.svc.DecideLeaveRequest(ctx, applicant(), created.ID, approval.DecisionRequest{Decision: "approve"})
	assert.ErrorIs(t, err, approval.ErrNotCurrentApprover)

	first, err := f.svc.DecideLeaveRequest(ctx, approval.Actor{UserID: "user-atasan", Role: user.RoleAtasan}, created.ID,
		approval.DecisionRequest{Decision: "approve"})
	require.NoError(t, err)
	assert.Equal(t, "DIAJUKAN", first.Status)
	assert.Equal(t, 5, f.quotas.byID["quota-1"].RemainingDays)

	final, err := f.svc.DecideLeaveRequest(ctx, approval.Actor{UserID: "user-pimpinan", Role: user.RolePimpinan}, created.ID,
		approval.DecisionRequest{Decision: "approve"})
	require.NoError(t, err)
	assert.Equal(t, "DISETUJUI", final.Status)
	assert.Nil(t, final.CurrentApproverRole)
	assert.Equal(t, 2, f.quotas.byID["quota-1"].RemainingDays)
	assert.True(t, f.requests.byID[created.ID].QuotaDeducted)

	assert.Equal(t, []approval.Status{approval.StatusSubmitted, approval.StatusApproved}, f.notifier.Statuses())
}

func TestApprovalFailsWhenQuotaWasSpentMeanwhile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, annualRequest("2025-03-10", "2025-03-14"))
	require.NoError(t, err)

	q := f.quotas.byID["quota-1"]
	q.RemainingDays = 2
	f.quotas.byID["quota-1"] = q

	_, err = f.svc.DecideLeaveRequest(ctx, approval.Actor{UserID: "admin", Role: user.RoleAdmin}, created.ID,
		approval.DecisionRequest{Decision: "approve"})
	require.NoError(t, err)
	_, err = f.svc.DecideLeaveRequest(ctx, approval.Actor{UserID: "admin", Role: user.RoleAdmin}, created.ID,
		approval.DecisionRequest{Decision: "approve"})
	assert.ErrorIs(t, err, leave.ErrInsufficientQuota)
	assert.Equal(t, approval.StatusSubmitted, f.requests.byID[created.ID].Status)
}

func TestReviseAndResubmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, annualRequest("2025-03-10", "2025-03-12"))
	require.NoError(t, err)

	_, err = f.svc.DecideLeaveRequest(ctx, approval.Actor{UserID: "user-atasan", Role: user.RoleAtasan}, created.ID,
		approval.DecisionRequest{Decision: "revise"})
	require.Error(t, err, "revise requires a note")

	revised, err := f.svc.DecideLeaveRequest(ctx, approval.Actor{UserID: "user-atasan", Role: user.RoleAtasan}, created.ID,
		approval.DecisionRequest{Decision: "revise", Note: "Lengkapi alamat"})
	require.NoError(t, err)
	assert.Equal(t, "DIREVISI", revised.Status)
	assert.Equal(t, "orange", revised.Badge.Color)

	end := "2025-03-11"
	address := "Jl. Asia Afrika 10, Bandung"
	other := otherID
	_, err = f.svc.ResubmitLeaveRequest(ctx, approval.Actor{UserID: "user-2", EmployeeID: &other, Role: user.RolePegawai},
		leave.ResubmitLeaveRequestRequest{ID: created.ID, EndDate: &end})
	assert.ErrorIs(t, err, leave.ErrNotOwner)

	resubmitted, err := f.svc.ResubmitLeaveRequest(ctx, applicant(),
		leave.ResubmitLeaveRequestRequest{ID: created.ID, EndDate: &end, AddressDuringLeave: &address})
	require.NoError(t, err)
	assert.Equal(t, "DIAJUKAN", resubmitted.Status)
	assert.Equal(t, 2, resubmitted.DayCount)
	assert.Equal(t, address, resubmitted.AddressDuringLeave)
	assert.Equal(t, "DIAJUKAN", resubmitted.Timeline[0].Status)
	assert.Nil(t, resubmitted.Timeline[0].Note)

	_, err = f.svc.ResubmitLeaveRequest(ctx, applicant(), leave.ResubmitLeaveRequestRequest{ID: created.ID})
	assert.ErrorIs(t, err, approval.ErrInvalidTransition)
}

func TestRejectIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, annualRequest("2025-03-10", "2025-03-10"))
	require.NoError(t, err)

	rejected, err := f.svc.DecideLeaveRequest(ctx, approval.Actor{UserID: "user-atasan", Role: user.RoleAtasan}, created.ID,
		approval.DecisionRequest{Decision: "reject", Note: "Kebutuhan dinas"})
	require.NoError(t, err)
	assert.Equal(t, "DITOLAK", rejected.Status)

	_, err = f.svc.CancelLeaveRequest(ctx, applicant(), created.ID, approval.CancelRequest{})
	assert.ErrorIs(t, err, approval.ErrInvalidTransition)
}

func TestCancelApprovedRestoresQuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, annualRequest("2025-03-10", "2025-03-12"))
	require.NoError(t, err)
	approveAll(t, f, created.ID)
	require.Equal(t, 2, f.quotas.byID["quota-1"].RemainingDays)

	_, err = f.svc.CancelLeaveRequest(ctx, applicant(), created.ID, approval.CancelRequest{Reason: "batal"})
	assert.ErrorIs(t, err, approval.ErrCancelNotAllowed)

	hr := approval.Actor{UserID: "user-hr", Role: user.RoleKepegawaian, ViewAll: true, CancelAny: true}
	cancelled, err := f.svc.CancelLeaveRequest(ctx, hr, created.ID, approval.CancelRequest{Reason: "Tugas mendesak"})
	require.NoError(t, err)
	assert.Equal(t, "DIBATALKAN", cancelled.Status)
	assert.Equal(t, 5, f.quotas.byID["quota-1"].RemainingDays)
	assert.False(t, f.requests.byID[created.ID].QuotaDeducted)
}

func TestApplicantCancelsPendingRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, annualRequest("2025-03-10", "2025-03-12"))
	require.NoError(t, err)

	cancelled, err := f.svc.CancelLeaveRequest(ctx, applicant(), created.ID, approval.CancelRequest{})
	require.NoError(t, err)
	assert.Equal(t, "DIBATALKAN", cancelled.Status)
	assert.Equal(t, 5, f.quotas.byID["quota-1"].RemainingDays)
}

func TestGetLeaveRequestVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, annualRequest("2025-03-10", "2025-03-12"))
	require.NoError(t, err)

	got, err := f.svc.GetLeaveRequest(ctx, applicant(), created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Timeline, 2)

	other := otherID
	_, err = f.svc.GetLeaveRequest(ctx, approval.Actor{EmployeeID: &other, Role: user.RolePegawai}, created.ID)
	assert.ErrorIs(t, err, leave.ErrNotOwner)

	_, err = f.svc.GetLeaveRequest(ctx, approval.Actor{Role: user.RolePimpinan, ViewAll: true}, created.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetLeaveRequest(ctx, applicant(), "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestCreateLeaveRequestWithAttachment(t *testing.T) {
	f := newFixture(t)
	req := annualRequest("2025-03-10", "2025-03-10")

	resp, err := f.svc.CreateLeaveRequest(context.Background(), withFile(req, "surat.pdf", "%PDF-1.4"))
	require.NoError(t, err)
	require.NotNil(t, resp.AttachmentURL)
	assert.Contains(t, *resp.AttachmentURL, "/leave/"+applicantID+"/")
	assert.Len(t, f.files.Stored, 1)
}

func TestCompleteFinishedLeave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	finished, err := f.svc.CreateLeaveRequest(ctx, annualRequest("2025-03-10", "2025-03-11"))
	require.NoError(t, err)
	approveAll(t, f, finished.ID)

	ongoing, err := f.svc.CreateLeaveRequest(ctx, annualRequest("2025-03-20", "2025-03-20"))
	require.NoError(t, err)
	approveAll(t, f, ongoing.ID)

	f.svc.now = func() time.Time { return time.Date(2025, 3, 20, 1, 0, 0, 0, time.UTC) }
	n, err := f.svc.CompleteFinishedLeave(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, approval.StatusCompleted, f.requests.byID[finished.ID].Status)
	assert.Equal(t, approval.StatusApproved, f.requests.byID[ongoing.ID].Status)
	assert.True(t, f.requests.byID[finished.ID].QuotaDeducted)
}

func TestCompleteFinishedLeaveSkipsRequestCancelledAfterListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, annualRequest("2025-03-10", "2025-03-11"))
	require.NoError(t, err)
	approveAll(t, f, created.ID)
	require.Equal(t, 3, f.quotas.byID["quota-1"].RemainingDays)

	hr := approval.Actor{UserID: "user-hr", Role: user.RoleKepegawaian, ViewAll: true, CancelAny: true}
	f.requests.afterList = func() {
		_, err := f.svc.CancelLeaveRequest(ctx, hr, created.ID, approval.CancelRequest{Reason: "Tugas mendesak"})
		require.NoError(t, err)
	}

	f.svc.now = func() time.Time { return time.Date(2025, 3, 20, 1, 0, 0, 0, time.UTC) }
	n, err := f.svc.CompleteFinishedLeave(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, approval.StatusCancelled, f.requests.byID[created.ID].Status)
	assert.Equal(t, 5, f.quotas.byID["quota-1"].RemainingDays)
}

func TestMutationsReadTheRequestLocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, annualRequest("2025-03-10", "2025-03-12"))
	require.NoError(t, err)
	_, err = f.svc.GetLeaveRequest(ctx, applicant(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, f.requests.locked)

	_, err = f.svc.DecideLeaveRequest(ctx, approval.Actor{UserID: "user-atasan", Role: user.RoleAtasan}, created.ID,
		approval.DecisionRequest{Decision: "revise", Note: "Lengkapi alamat"})
	require.NoError(t, err)
	_, err = f.svc.ResubmitLeaveRequest(ctx, applicant(), leave.ResubmitLeaveRequestRequest{ID: created.ID})
	require.NoError(t, err)
	_, err = f.svc.CancelLeaveRequest(ctx, applicant(), created.ID, approval.CancelRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{created.ID, created.ID, created.ID}, f.requests.locked)
}

func TestPreview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Preview(ctx, leave.PreviewLeaveRequest{EmployeeID: applicantID, LeaveType: "CUTI_TAHUNAN", StartDate: "2025-03-10", EndDate: "2025-03-16"})
	require.NoError(t, err)
	assert.True(t, resp.IsAnnual)
	assert.Equal(t, 7, resp.DayCount)
	require.NotNil(t, resp.RemainingDays)
	assert.Equal(t, 5, *resp.RemainingDays)
	assert.False(t, resp.SubmitAllowed)

	resp, err = f.svc.Preview(ctx, leave.PreviewLeaveRequest{EmployeeID: applicantID, LeaveType: "CUTI_TAHUNAN", StartDate: "2026-01-05", EndDate: "2026-01-05"})
	require.NoError(t, err)
	require.NotNil(t, resp.RemainingDays)
	assert.Equal(t, 0, *resp.RemainingDays)
	assert.False(t, resp.SubmitAllowed)
}

func TestLeaveQuotaLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateLeaveQuota(ctx, leave.CreateLeaveQuotaRequest{EmployeeID: applicantID, Year: 2025, TotalDays: 12})
	assert.ErrorIs(t, err, leave.ErrLeaveQuotaExists)

	created, err := f.svc.CreateLeaveQuota(ctx, leave.CreateLeaveQuotaRequest{EmployeeID: applicantID, Year: 2026, TotalDays: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, created.RemainingDays)
	require.NotNil(t, created.EmployeeName)
	assert.Equal(t, "Budi Santoso", *created.EmployeeName)

	total := 10
	updated, err := f.svc.UpdateLeaveQuota(ctx, leave.UpdateLeaveQuotaRequest{ID: "quota-1", TotalDays: &total})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.TotalDays)
	assert.Equal(t, 3, updated.RemainingDays)
	assert.Equal(t, 7, updated.UsedDays)

	remaining := 11
	_, err = f.svc.UpdateLeaveQuota(ctx, leave.UpdateLeaveQuotaRequest{ID: "quota-1", RemainingDays: &remaining})
	assert.Error(t, err)

	mine, err := f.svc.GetMyQuota(ctx, applicantID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, mine.Year)

	list, err := f.svc.ListLeaveQuota(ctx, leave.LeaveQuotaFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Pagination.Total)
	assert.Equal(t, 20, list.Pagination.Limit)
}

func TestExportIgnoresPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, day := range []string{"2025-03-10", "2025-03-11"} {
		_, err := f.svc.CreateLeaveRequest(ctx, annualRequest(day, day))
		require.NoError(t, err)
	}

	rows, err := f.svc.ExportLeaveRequests(ctx, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, r := range rows {
		assert.True(t, strings.HasPrefix(r.ID, "leave-"))
		assert.Len(t, r.Timeline, 2)
	}
}

type memFile struct{ *bytes.Reader }

func (memFile) Close() error { return nil }

func withFile(req leave.CreateLeaveRequestRequest, name, content string) leave.CreateLeaveRequestRequest {
	req.File = memFile{bytes.NewReader([]byte(content))}
	req.FileHeader = &multipart.FileHeader{Filename: name}
	return req
}
