package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, recipientID string, filter NotificationFilter) ([]Notification, int64, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkAsRead(ctx context.Context, recipientID string, ids []string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
	Delete(ctx context.Context, recipientID, id string) error
}
