package dashboard

import "github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"

// DashboardResponse is the combined response for the dashboard endpoint.
// EmployeeSummary is only filled for callers who may see every employee.
type DashboardResponse struct {
	EmployeeSummary *EmployeeSummaryResponse `json:"employee_summary,omitempty"`
	Requests        []RequestSummaryResponse `json:"requests"`
	UpdatedAt       string                   `json:"updated_at"`
}

// ========== EMPLOYEE SUMMARY ==========

type EmployeeSummaryResponse struct {
	TotalEmployee int64 `json:"total_employee"`
	NewEmployee   int64 `json:"new_employee"` // hired within 30 days
	PNS           int64 `json:"pns"`
	PPPK          int64 `json:"pppk"`
	Honorer       int64 `json:"honorer"`
	Pensiun       int64 `json:"pensiun"`
}

// ========== REQUEST SUMMARY (per kind) ==========

// RequestSummaryResponse counts the requests of one kind by status.
// Open counts requests still waiting for an approver or a revision.
type RequestSummaryResponse struct {
	Kind     approval.Kind         `json:"kind"`
	Label    string                `json:"label"`
	Total    int64                 `json:"total"`
	Open     int64                 `json:"open"`
	ByStatus []StatusCountResponse `json:"by_status"`
}

type StatusCountResponse struct {
	Status approval.Status `json:"status"`
	Badge  approval.Badge  `json:"badge"`
	Count  int64           `json:"count"`
}

// NewRequestSummary lays counts out in lifecycle order, including statuses
// with no requests.
func NewRequestSummary(kind approval.Kind, counts map[approval.Status]int64) RequestSummaryResponse {
	out := RequestSummaryResponse{
		Kind:     kind,
		Label:    kind.Label(),
		ByStatus: make([]StatusCountResponse, 0, len(approval.AllStatuses())),
	}
	for _, st := range approval.AllStatuses() {
		n := counts[st]
		out.Total += n
		if st == approval.StatusSubmitted || st == approval.StatusRevision {
			out.Open += n
		}
		out.ByStatus = append(out.ByStatus, StatusCountResponse{
			Status: st,
			Badge:  approval.Classify(string(st)),
			Count:  n,
		})
	}
	return out
}
