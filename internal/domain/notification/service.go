package notification

import (
	"context"

	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/sse"
)

// Notifier is what request services use to announce a status change.
type Notifier interface {
	// Notify queues a status change for delivery. It never blocks on delivery
	// and never fails the caller.
	Notify(ctx context.Context, change StatusChange)
}

type Service interface {
	Notifier

	// Subscribe opens the event stream of a user.
	Subscribe(ctx context.Context, userID string) (<-chan sse.Event, func())

	// Inbox
	List(ctx context.Context, userID string, filter NotificationFilter) (ListNotificationResponse, error)
	UnreadCount(ctx context.Context, userID string) (UnreadCountResponse, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, id string) error

	// Stop drains the queue and stops the workers.
	Stop()
}
