package studypermit

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/studypermit"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/approvalchain"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/file"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePermits struct {
	byID map[string]studypermit.StudyPermitRequest
}

func (f *fakePermits) Create(_ context.Context, p studypermit.StudyPermitRequest) (studypermit.StudyPermitRequest, error) {
	p.ID = fmt.Sprintf("sp-%d", len(f.byID)+1)
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakePermits) GetByID(_ context.Context, id string) (studypermit.StudyPermitRequest, error) {
	p, ok := f.byID[id]
	if !ok {
		return studypermit.StudyPermitRequest{}, studypermit.ErrStudyPermitNotFound
	}
	return p, nil
}

func (f *fakePermits) GetByIDForUpdate(ctx context.Context, id string) (studypermit.StudyPermitRequest, error) {
	return f.GetByID(ctx, id)
}

func (f *fakePermits) List(_ context.Context, _ studypermit.StudyPermitFilter) ([]studypermit.StudyPermitRequest, int64, error) {
	out := make([]studypermit.StudyPermitRequest, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePermits) Update(_ context.Context, p studypermit.StudyPermitRequest) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakePermits) UpdateStatus(_ context.Context, id string, status approval.Status) error {
	p, ok := f.byID[id]
	if !ok {
		return studypermit.ErrStudyPermitNotFound
	}
	p.Status = status
	f.byID[id] = p
	return nil
}

func newService(t *testing.T) (*StudyPermitServiceImpl, *fakePermits, *servicetest.Files, *servicetest.Notifier) {
	t.Helper()
	permits := &fakePermits{byID: map[string]studypermit.StudyPermitRequest{}}
	files := servicetest.NewFiles()
	notifier := &servicetest.Notifier{}
	employees := servicetest.NewEmployees(employee.Employee{ID: "emp-1", NIP: "198503302010011001", FullName: "Budi Santoso", EmploymentStatus: employee.EmploymentStatusPNS})
	svc := NewStudyPermitService(&servicetest.Tx{}, permits, servicetest.NewSteps(), employees, approvalchain.Defaults(), files, notifier)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc, permits, files, notifier
}

func owner() approval.Actor {
	id := "emp-1"
	return approval.Actor{UserID: "user-1", EmployeeID: &id, Role: user.RolePegawai}
}

func validRequest() studypermit.CreateStudyPermitRequest {
	return studypermit.CreateStudyPermitRequest{
		EmployeeID:    "emp-1",
		Institution:   "Universitas Padjadjaran",
		Program:       "Magister Administrasi Publik",
		Degree:        "S2",
		StartDate:     "2025-09-01",
		EndDate:       "2027-08-31",
		FundingSource: "APBD",
	}
}

func TestCreateComputesDurationAndChain(t *testing.T) {
	svc, _, _, _ := newService(t)

	resp, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 25, resp.DurationMonths)
	assert.Equal(t, "DIAJUKAN", resp.Status)
	require.Len(t, resp.Timeline, 3)
	assert.Equal(t, []string{"atasan", "kepegawaian", "pimpinan"},
		[]string{resp.Timeline[0].ApproverRole, resp.Timeline[1].ApproverRole, resp.Timeline[2].ApproverRole})
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc, _, files, _ := newService(t)

	req := validRequest()
	req.Degree = "SMA"
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)

	req = validRequest()
	req.EmployeeID = "emp-404"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	files.Reject = file.ErrInvalidFileType
	req = validRequest()
	req.File = memFile{bytes.NewReader([]byte("MZ"))}
	req.FileHeader = &multipart.FileHeader{Filename: "setup.exe"}
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, studypermit.ErrInvalidAttachment)
}

type memFile struct{ *bytes.Reader }

func (memFile) Close() error { return nil }

func TestFullApprovalThenComplete(t *testing.T) {
	svc, permits, _, notifier := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.Complete(ctx, approval.Actor{Role: user.RoleKepegawaian}, created.ID)
	assert.ErrorIs(t, err, approval.ErrInvalidTransition)

	for _, role := range []user.Role{user.RoleAtasan, user.RoleKepegawaian, user.RolePimpinan} {
		_, err := svc.Decide(ctx, approval.Actor{UserID: "u-" + string(role), Role: role}, created.ID, approval.DecisionRequest{Decision: "approve"})
		require.NoError(t, err)
	}
	assert.Equal(t, approval.StatusApproved, permits.byID[created.ID].Status)

	done, err := svc.Complete(ctx, approval.Actor{UserID: "u-hr", Role: user.RoleKepegawaian}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SELESAI", done.Status)
	assert.Equal(t, "blue", done.Badge.Color)
	assert.Equal(t, approval.StatusCompleted, notifier.Statuses()[len(notifier.Statuses())-1])
}

func TestResubmitRecomputesDuration(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	_, err = svc.Decide(ctx, approval.Actor{UserID: "u-atasan", Role: user.RoleAtasan}, created.ID,
		approval.DecisionRequest{Decision: "revise", Note: "Periode studi terlalu panjang"})
	require.NoError(t, err)

	end := "2026-08-31"
	resp, err := svc.Resubmit(ctx, owner(), studypermit.ResubmitStudyPermitRequest{ID: created.ID, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, 13, resp.DurationMonths)
	assert.Equal(t, "DIAJUKAN", resp.Status)
	require.NotNil(t, resp.CurrentApproverRole)
	assert.Equal(t, "atasan", *resp.CurrentApproverRole)
}

func TestCancelAndVisibility(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	other := "emp-9"
	_, err = svc.Get(ctx, approval.Actor{EmployeeID: &other}, created.ID)
	assert.ErrorIs(t, err, studypermit.ErrNotOwner)

	_, err = svc.Cancel(ctx, approval.Actor{EmployeeID: &other}, created.ID, approval.CancelRequest{})
	assert.ErrorIs(t, err, approval.ErrCancelNotAllowed)

	cancelled, err := svc.Cancel(ctx, owner(), created.ID, approval.CancelRequest{Reason: "Tidak jadi kuliah"})
	require.NoError(t, err)
	assert.Equal(t, "DIBATALKAN", cancelled.Status)

	list, err := svc.List(ctx, studypermit.StudyPermitFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Pagination.Total)
}
