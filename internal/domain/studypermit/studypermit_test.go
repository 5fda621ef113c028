package studypermit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationMonths(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2025-01-01", "2025-01-30", 1},
		{"2025-01-01", "2025-01-31", 2},
		{"2025-01-01", "2025-01-01", 1},
		{"2025-09-01", "2027-08-31", 25},
		{"0001-01-01", "9999-12-31", 121736},
	}
	for _, c := range cases {
		s, _ := time.Parse("2006-01-02", c.start)
		e, _ := time.Parse("2006-01-02", c.end)
		got, err := DurationMonths(s, e)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s..%s", c.start, c.end)
	}
}

func TestDurationMonthsRejectsReversedRange(t *testing.T) {
	s, _ := time.Parse("2006-01-02", "2025-02-01")
	e, _ := time.Parse("2006-01-02", "2025-01-01")
	_, err := DurationMonths(s, e)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateStudyPermitValidate(t *testing.T) {
	req := CreateStudyPermitRequest{
		EmployeeID:    "emp-1",
		Institution:   "Universitas Padjadjaran",
		Program:       "Magister Administrasi Publik",
		Degree:        "S2",
		StartDate:     "2025-09-01",
		EndDate:       "2027-08-31",
		FundingSource: "APBD",
	}
	require.NoError(t, req.Validate())

	req.Degree = "S4"
	req.FundingSource = "Swasta"
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "degree")
	assert.Contains(t, err.Error(), "funding_source")
}
