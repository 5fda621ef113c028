package employee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreate() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		NIP:              "198503302010011001",
		FullName:         "Budi Santoso",
		Gender:           "L",
		Position:         "Analis Kepegawaian",
		Rank:             "III/a",
		WorkUnit:         "Badan Kepegawaian Daerah",
		EmploymentStatus: "PNS",
		HireDate:         "2010-01-01",
		BaseSalary:       decimal.NewFromInt(3_500_000),
	}
}

func TestCreateEmployeeValidate(t *testing.T) {
	req := validCreate()
	require.NoError(t, req.Validate())

	req.NIP = "12345"
	req.EmploymentStatus = "Kontrak"
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nip must be exactly 18 digits")
	assert.Contains(t, err.Error(), "employment_status")
}

func TestUpdateEmployeeApply(t *testing.T) {
	e := Employee{FullName: "Budi", Rank: "III/a", BaseSalary: decimal.NewFromInt(100)}
	rank := "III/b"
	salary := decimal.NewFromInt(150)
	req := UpdateEmployeeRequest{ID: "emp-1", Rank: &rank, BaseSalary: &salary}

	require.NoError(t, req.Validate())
	req.Apply(&e)

	assert.Equal(t, "Budi", e.FullName)
	assert.Equal(t, "III/b", e.Rank)
	assert.True(t, e.BaseSalary.Equal(salary))
}
