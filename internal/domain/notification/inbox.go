package notification

import (
	"errors"
	"fmt"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is the stored copy of a status change shown in the user's inbox.
type Notification struct {
	ID          string
	RecipientID string
	Kind        approval.Kind
	RequestID   string
	Status      approval.Status
	Title       string
	Message     string
	Note        *string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// NewNotification builds the inbox entry of a status change for a recipient.
func NewNotification(recipientID string, c StatusChange) Notification {
	n := Notification{
		RecipientID: recipientID,
		Kind:        c.Kind,
		RequestID:   c.RequestID,
		Status:      c.Status,
		Title:       fmt.Sprintf("Permohonan %s %s", c.Kind.Label(), c.Status.Badge().Label),
		Message:     fmt.Sprintf("Status permohonan %s Anda sekarang %s.", c.Kind.Label(), c.Status),
		CreatedAt:   c.At,
	}
	if c.Note != "" {
		note := c.Note
		n.Note = &note
	}
	return n
}

type NotificationResponse struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	RequestID string         `json:"request_id"`
	Status    string         `json:"status"`
	Badge     approval.Badge `json:"badge"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Note      *string        `json:"note,omitempty"`
	IsRead    bool           `json:"is_read"`
	ReadAt    *string        `json:"read_at,omitempty"`
	CreatedAt string         `json:"created_at"`
}

func ToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		RequestID: n.RequestID,
		Status:    string(n.Status),
		Badge:     n.Status.Badge(),
		Title:     n.Title,
		Message:   n.Message,
		Note:      n.Note,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		readAt := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &readAt
	}
	return resp
}

type ListNotificationResponse = pagination.List[NotificationResponse]

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type NotificationFilter struct {
	UnreadOnly bool
	pagination.Params
}

func (f *NotificationFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Params.Normalize(&errs)
	return errs.Err()
}

type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

func (r *MarkAsReadRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.NotificationIDs) == 0 {
		errs.Add("notification_ids", "notification_ids is required")
	}
	return errs.Err()
}
