package leave

import (
	"strings"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

// LeaveType is one entry of the fixed civil-service leave vocabulary.
type LeaveType struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

const (
	CodeAnnual = "CUTI_TAHUNAN"
	NameAnnual = "Cuti Tahunan"

	// DefaultAnnualDays is the yearly annual leave entitlement of a civil servant.
	DefaultAnnualDays = 12
)

var leaveTypes = []LeaveType{
	{Code: CodeAnnual, Name: NameAnnual},
	{Code: "CUTI_SAKIT", Name: "Cuti Sakit"},
	{Code: "CUTI_BESAR", Name: "Cuti Besar"},
	{Code: "CUTI_MELAHIRKAN", Name: "Cuti Melahirkan"},
	{Code: "CUTI_ALASAN_PENTING", Name: "Cuti Karena Alasan Penting"},
	{Code: "CUTI_LUAR_TANGGUNGAN", Name: "Cuti di Luar Tanggungan Negara"},
}

func LeaveTypes() []LeaveType {
	out := make([]LeaveType, len(leaveTypes))
	copy(out, leaveTypes)
	return out
}

// FindLeaveType matches s against codes and names, ignoring case and surrounding spaces.
func FindLeaveType(s string) (LeaveType, bool) {
	s = strings.TrimSpace(s)
	for _, lt := range leaveTypes {
		if strings.EqualFold(lt.Code, s) || strings.EqualFold(lt.Name, s) {
			return lt, true
		}
	}
	return LeaveType{}, false
}

// IsAnnual reports whether a leave type string denotes annual leave.
func IsAnnual(leaveType string) bool {
	s := strings.TrimSpace(leaveType)
	return strings.EqualFold(s, NameAnnual) || strings.EqualFold(s, CodeAnnual)
}

// LeaveQuota entity
type LeaveQuota struct {
	ID            string
	EmployeeID    string
	Year          int
	TotalDays     int
	RemainingDays int
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	EmployeeName *string
}

func (q LeaveQuota) UsedDays() int {
	return q.TotalDays - q.RemainingDays
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	EmployeeNIP string
	LeaveType   string

	StartDate time.Time
	EndDate   time.Time
	DayCount  int

	Reason             string
	AddressDuringLeave string
	PhoneDuringLeave   string
	AttachmentURL      *string

	Status        approval.Status
	QuotaID       *string
	QuotaDeducted bool

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	EmployeeName string
	Steps        []approval.Step
}
