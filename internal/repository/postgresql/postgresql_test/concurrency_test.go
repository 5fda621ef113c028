package postgresql_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/pension"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/salary"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/approvalchain"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
	"github.com/simpeg-id/simpeg-backend-go/internal/repository/postgresql"
	leaveService "github.com/simpeg-id/simpeg-backend-go/internal/service/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaveSetup struct {
	svc       *leaveService.LeaveServiceImpl
	quotas    leave.LeaveQuotaRepository
	requests  leave.LeaveRequestRepository
	quotaID   string
	requestID string
	owner     approval.Actor
}

// newPendingLeave files a three-day annual leave that only waits for the final approval.
func newPendingLeave(t *testing.T, ctx context.Context, db *database.DB, nip string) leaveSetup {
	t.Helper()
	e := createEmployee(t, ctx, db, nip, "Dewi Lestari")

	s := leaveSetup{
		quotas:   postgresql.NewLeaveQuotaRepository(db),
		requests: postgresql.NewLeaveRequestRepository(db),
	}
	q, err := s.quotas.Create(ctx, leave.LeaveQuota{EmployeeID: e.ID, Year: 2025, TotalDays: 12, RemainingDays: 12})
	require.NoError(t, err)
	s.quotaID = q.ID

	s.svc = leaveService.NewLeaveService(postgresql.NewTxManager(db), s.quotas, s.requests,
		postgresql.NewApprovalStepRepository(db), postgresql.NewEmployeeRepository(db),
		approvalchain.Defaults(), nil, &servicetest.Notifier{})

	created, err := s.svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID:         e.ID,
		LeaveType:          leave.NameAnnual,
		StartDate:          "2025-03-10",
		EndDate:            "2025-03-12",
		Reason:             "Acara keluarga",
		AddressDuringLeave: "Jl. Merdeka 1, Bandung",
		PhoneDuringLeave:   "081234567890",
	})
	require.NoError(t, err)
	s.requestID = created.ID

	_, err = s.svc.DecideLeaveRequest(ctx, approval.Actor{UserID: "user-atasan", Role: user.RoleAtasan}, created.ID,
		approval.DecisionRequest{Decision: "approve"})
	require.NoError(t, err)

	id := e.ID
	s.owner = approval.Actor{UserID: "user-owner", EmployeeID: &id, Role: user.RolePegawai}
	return s
}

// runTogether starts every fn at the same time and returns their errors in order.
func runTogether(fns ...func() error) []error {
	errs := make([]error, len(fns))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, fn := range fns {
		i, fn := i, fn
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs[i] = fn()
		}()
	}
	close(start)
	wg.Wait()
	return errs
}

func TestConcurrentFinalApprovalsDeductOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := newPendingLeave(t, ctx, db, "198503302010011010")

	approve := func(role user.Role) func() error {
		return func() error {
			_, err := s.svc.DecideLeaveRequest(ctx, approval.Actor{UserID: "user-" + string(role), Role: role}, s.requestID,
				approval.DecisionRequest{Decision: "approve"})
			return err
		}
	}
	errs := runTogether(approve(user.RolePimpinan), approve(user.RoleAdmin))

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, approval.ErrInvalidTransition)
	}
	assert.Equal(t, 1, succeeded)

	q, err := s.quotas.GetByID(ctx, s.quotaID)
	require.NoError(t, err)
	assert.Equal(t, 9, q.RemainingDays)

	lr, err := s.requests.GetByID(ctx, s.requestID)
	require.NoError(t, err)
	assert.Equal(t, approval.StatusApproved, lr.Status)
	assert.True(t, lr.QuotaDeducted)
}

func TestConcurrentCancelAndFinalApprovalKeepQuotaConsistent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := newPendingLeave(t, ctx, db, "198503302010011011")

	runTogether(
		func() error {
			_, err := s.svc.DecideLeaveRequest(ctx, approval.Actor{UserID: "user-pimpinan", Role: user.RolePimpinan}, s.requestID,
				approval.DecisionRequest{Decision: "approve"})
			return err
		},
		func() error {
			_, err := s.svc.CancelLeaveRequest(ctx, s.owner, s.requestID, approval.CancelRequest{})
			return err
		},
	)

	q, err := s.quotas.GetByID(ctx, s.quotaID)
	require.NoError(t, err)
	lr, err := s.requests.GetByID(ctx, s.requestID)
	require.NoError(t, err)

	switch lr.Status {
	case approval.StatusApproved:
		assert.True(t, lr.QuotaDeducted)
		assert.Equal(t, 9, q.RemainingDays)
	case approval.StatusCancelled:
		assert.False(t, lr.QuotaDeducted)
		assert.Equal(t, 12, q.RemainingDays)
	default:
		t.Fatalf("unexpected status %s", lr.Status)
	}
}

func TestApprovalStepUpdateRequiresExpectedStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := newPendingLeave(t, ctx, db, "198503302010011012")
	steps := postgresql.NewApprovalStepRepository(db)

	listed, err := steps.ListByRequest(ctx, approval.KindLeave, s.requestID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	decided := listed[0]
	require.Equal(t, approval.StatusApproved, decided.Status)

	decided.Status = approval.StatusRejected
	assert.ErrorIs(t, steps.UpdateStep(ctx, decided, approval.StatusSubmitted), approval.ErrInvalidTransition)

	pending := listed[1]
	pending.Status = approval.StatusApproved
	require.NoError(t, steps.UpdateStep(ctx, pending, approval.StatusSubmitted))
	assert.ErrorIs(t, steps.UpdateStep(ctx, pending, approval.StatusSubmitted), approval.ErrInvalidTransition)
}

func TestOnePendingSalaryIncreasePerEmployee(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewSalaryIncreaseRepository(db)
	e := createEmployee(t, ctx, db, "198503302010011013", "Rudi Hartono")

	increase := salary.SalaryIncrease{
		EmployeeID:       e.ID,
		OldBaseSalary:    decimal.NewFromInt(3500000),
		NewBaseSalary:    decimal.NewFromInt(3750000),
		OldEffectiveDate: date("2023-04-01"),
		NewEffectiveDate: date("2025-04-01"),
		Status:           approval.StatusSubmitted,
	}
	first, err := repo.Create(ctx, increase)
	require.NoError(t, err)

	_, err = repo.Create(ctx, increase)
	assert.ErrorIs(t, err, salary.ErrPendingIncreaseExists)

	require.NoError(t, repo.UpdateStatus(ctx, first.ID, approval.StatusRejected))
	_, err = repo.Create(ctx, increase)
	assert.NoError(t, err)
}

func TestOneActivePensionPerEmployee(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewPensionRepository(db)
	e := createEmployee(t, ctx, db, "196405121990031014", "Slamet Riyadi")

	request := pension.PensionRequest{
		EmployeeID:    e.ID,
		PensionType:   pension.PensionTypeBUP,
		FilingDate:    date("2025-05-02"),
		EffectiveDate: date("2025-06-01"),
		Reason:        "Mencapai batas usia pensiun",
		Status:        approval.StatusSubmitted,
	}
	first, err := repo.Create(ctx, request)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, first.ID, approval.StatusApproved))
	_, err = repo.Create(ctx, request)
	assert.ErrorIs(t, err, pension.ErrActivePensionExists)

	require.NoError(t, repo.UpdateStatus(ctx, first.ID, approval.StatusCancelled))
	_, err = repo.Create(ctx, request)
	assert.NoError(t, err)
}
