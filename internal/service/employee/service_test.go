package employee

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQuotas struct {
	leave.LeaveQuotaRepository
	created []leave.LeaveQuota
}

func (r *recordingQuotas) Create(_ context.Context, q leave.LeaveQuota) (leave.LeaveQuota, error) {
	q.ID = "quota-1"
	r.created = append(r.created, q)
	return q, nil
}

func newService(t *testing.T, seed ...employee.Employee) (*EmployeeServiceImpl, *servicetest.Employees, *recordingQuotas) {
	t.Helper()
	employees := servicetest.NewEmployees(seed...)
	quotas := &recordingQuotas{}
	svc := NewEmployeeService(&servicetest.Tx{}, employees, quotas).(*EmployeeServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC) }
	return svc, employees, quotas
}

func validCreate() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		NIP:              "198503302010011001",
		FullName:         " Budi Santoso ",
		Gender:           "L",
		Position:         "Analis Kepegawaian",
		Rank:             "III/a",
		WorkUnit:         "Badan Kepegawaian Daerah",
		EmploymentStatus: "PNS",
		HireDate:         "2010-01-01",
		BaseSalary:       decimal.RequireFromString("3500000"),
	}
}

func TestCreateEmployeeAssignsAnnualQuota(t *testing.T) {
	svc, _, quotas := newService(t)

	resp, err := svc.CreateEmployee(context.Background(), validCreate())
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", resp.FullName)
	assert.Equal(t, "2010-01-01", resp.HireDate)

	require.Len(t, quotas.created, 1)
	assert.Equal(t, resp.ID, quotas.created[0].EmployeeID)
	assert.Equal(t, 2025, quotas.created[0].Year)
	assert.Equal(t, leave.DefaultAnnualDays, quotas.created[0].RemainingDays)
}

func TestCreateHonorerHasNoQuota(t *testing.T) {
	svc, _, quotas := newService(t)

	req := validCreate()
	req.EmploymentStatus = "Honorer"
	_, err := svc.CreateEmployee(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, quotas.created)
}

func TestCreateEmployeeRejectsDuplicateNIP(t *testing.T) {
	svc, _, _ := newService(t, employee.Employee{ID: "emp-1", NIP: "198503302010011001", FullName: "Budi"})

	_, err := svc.CreateEmployee(context.Background(), validCreate())
	assert.ErrorIs(t, err, employee.ErrNIPExists)

	req := validCreate()
	req.NIP = "12345"
	_, err = svc.CreateEmployee(context.Background(), req)
	assert.Error(t, err)
}

func TestUpdateEmployee(t *testing.T) {
	svc, _, _ := newService(t,
		employee.Employee{ID: "emp-1", NIP: "198503302010011001", FullName: "Budi", EmploymentStatus: employee.EmploymentStatusPNS},
		employee.Employee{ID: "emp-2", NIP: "199001012015021002", FullName: "Siti", EmploymentStatus: employee.EmploymentStatusPNS},
	)
	ctx := context.Background()

	taken := "199001012015021002"
	_, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "emp-1", NIP: &taken})
	assert.ErrorIs(t, err, employee.ErrNIPExists)

	rank := "III/b"
	resp, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "emp-1", Rank: &rank})
	require.NoError(t, err)
	assert.Equal(t, "III/b", resp.Rank)
	assert.Equal(t, "Budi", resp.FullName)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "emp-404", Rank: &rank})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeleteAndList(t *testing.T) {
	svc, _, _ := newService(t,
		employee.Employee{ID: "emp-1", NIP: "198503302010011001", FullName: "Budi"},
		employee.Employee{ID: "emp-2", NIP: "199001012015021002", FullName: "Siti"},
	)
	ctx := context.Background()

	require.NoError(t, svc.DeleteEmployee(ctx, "emp-1"))
	assert.ErrorIs(t, svc.DeleteEmployee(ctx, "emp-1"), employee.ErrEmployeeNotFound)

	_, err := svc.GetEmployee(ctx, "emp-1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	list, err := svc.ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Pagination.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "emp-2", list.Items[0].ID)
}
