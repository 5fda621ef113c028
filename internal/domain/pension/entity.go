package pension

import (
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

type PensionType string

const (
	PensionTypeBUP       PensionType = "BUP"       // batas usia pensiun
	PensionTypeAPS       PensionType = "APS"       // atas permintaan sendiri
	PensionTypeJandaDuda PensionType = "Janda/Duda"
	PensionTypeUzur      PensionType = "Uzur"
	PensionTypeMeninggal PensionType = "Meninggal"
)

func AllPensionTypes() []string {
	return []string{
		string(PensionTypeBUP),
		string(PensionTypeAPS),
		string(PensionTypeJandaDuda),
		string(PensionTypeUzur),
		string(PensionTypeMeninggal),
	}
}

type PensionRequest struct {
	ID            string
	EmployeeID    string
	PensionType   PensionType
	FilingDate    time.Time
	EffectiveDate time.Time
	Reason        string
	AttachmentURL *string
	Status        approval.Status
	SubmittedAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relationships
	EmployeeName string
	EmployeeNIP  string
	Steps        []approval.Step
}
