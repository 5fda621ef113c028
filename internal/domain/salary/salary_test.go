package salary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
)

func TestCreateSalaryIncreaseValidate(t *testing.T) {
	old := decimal.NewFromInt(3_500_000)
	req := CreateSalaryIncreaseRequest{
		EmployeeID:       "emp-1",
		OldBaseSalary:    &old,
		NewBaseSalary:    decimal.NewFromInt(3_650_000),
		OldEffectiveDate: "2023-04-01",
		NewEffectiveDate: "2025-04-01",
	}
	require.NoError(t, req.Validate())

	req.NewBaseSalary = decimal.Zero
	req.NewEffectiveDate = "2022-04-01"
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "new_base_salary")
	assert.Contains(t, err.Error(), "new_effective_date must not be before old_effective_date")
}

func TestApproverRoleFollowsCurrentStep(t *testing.T) {
	s := SalaryIncrease{
		OldBaseSalary: decimal.NewFromInt(100),
		NewBaseSalary: decimal.NewFromInt(150),
		Status:        approval.StatusSubmitted,
		Steps: []approval.Step{
			{Sequence: 2, ApproverRole: user.RolePimpinan, Status: approval.StatusSubmitted},
			{Sequence: 1, ApproverRole: user.RoleKepegawaian, Status: approval.StatusApproved},
		},
	}

	resp := ToResponse(s)

	require.NotNil(t, resp.ApproverRole)
	assert.Equal(t, "pimpinan", *resp.ApproverRole)
	assert.True(t, resp.Difference.Equal(decimal.NewFromInt(50)))

	s.Status = approval.StatusApproved
	assert.Nil(t, s.ApproverRole())
}
