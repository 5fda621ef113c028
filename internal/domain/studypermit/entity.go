package studypermit

import (
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

type Degree string

const (
	DegreeD3      Degree = "D3"
	DegreeS1      Degree = "S1"
	DegreeS2      Degree = "S2"
	DegreeS3      Degree = "S3"
	DegreeProfesi Degree = "Profesi"
)

func AllDegrees() []string {
	return []string{string(DegreeD3), string(DegreeS1), string(DegreeS2), string(DegreeS3), string(DegreeProfesi)}
}

type FundingSource string

const (
	FundingMandiri  FundingSource = "Mandiri"
	FundingAPBD     FundingSource = "APBD"
	FundingAPBN     FundingSource = "APBN"
	FundingBeasiswa FundingSource = "Beasiswa"
)

func AllFundingSources() []string {
	return []string{string(FundingMandiri), string(FundingAPBD), string(FundingAPBN), string(FundingBeasiswa)}
}

type StudyPermitRequest struct {
	ID             string
	EmployeeID     string
	Institution    string
	Program        string
	Degree         Degree
	StartDate      time.Time
	EndDate        time.Time
	DurationMonths int
	FundingSource  FundingSource
	Reason         *string
	AttachmentURL  *string
	Status         approval.Status
	SubmittedAt    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Relationships
	EmployeeName string
	EmployeeNIP  string
	Steps        []approval.Step
}

// DurationMonths approximates the study length with 30-day months, rounding up.
func DurationMonths(start, end time.Time) (int, error) {
	s, e := dayNumber(start), dayNumber(end)
	if e < s {
		return 0, ErrInvalidDateRange
	}
	days := e - s + 1
	return int((days + 29) / 30), nil
}

func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
