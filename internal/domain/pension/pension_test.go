package pension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePensionValidate(t *testing.T) {
	req := CreatePensionRequest{
		EmployeeID:    "emp-1",
		PensionType:   "BUP",
		FilingDate:    "2025-01-15",
		EffectiveDate: "2025-07-01",
		Reason:        "Mencapai batas usia pensiun",
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, 2025, req.Effective.Year())

	req.PensionType = "Dini"
	req.EffectiveDate = "2024-12-31"
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pension_type")
	assert.Contains(t, err.Error(), "effective_date must not be before filing_date")
}

func TestPensionFilterValidate(t *testing.T) {
	pt := "Janda/Duda"
	f := PensionFilter{PensionType: &pt, Unpaged: true}
	require.NoError(t, f.Validate())
	assert.Equal(t, 0, f.Limit)
}
