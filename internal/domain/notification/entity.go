package notification

import (
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

const EventStatusChanged = "request.status_changed"

// StatusChange describes a request whose status moved, addressed to its applicant.
type StatusChange struct {
	Kind       approval.Kind
	RequestID  string
	EmployeeID string
	Status     approval.Status
	Note       string
	ActorID    string
	At         time.Time
}

// StatusChangedPayload is the SSE data of EventStatusChanged.
type StatusChangedPayload struct {
	Kind      string         `json:"kind"`
	RequestID string         `json:"request_id"`
	Status    string         `json:"status"`
	Badge     approval.Badge `json:"badge"`
	Note      string         `json:"note,omitempty"`
	At        string         `json:"at"`
}

func ToPayload(c StatusChange) StatusChangedPayload {
	return StatusChangedPayload{
		Kind:      string(c.Kind),
		RequestID: c.RequestID,
		Status:    string(c.Status),
		Badge:     c.Status.Badge(),
		Note:      c.Note,
		At:        c.At.Format(time.RFC3339),
	}
}
