package notification

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/notification"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/email"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/sse"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 256
	AppName     string
	FrontendURL string
}

type service struct {
	repo   notification.Repository
	users  user.UserRepository
	hub    *sse.Hub
	mailer email.EmailService
	config Config

	queue    chan notification.StatusChange
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService starts the delivery workers. mailer may be nil.
func NewNotificationService(repo notification.Repository, users user.UserRepository, hub *sse.Hub, mailer email.EmailService, cfg Config) notification.Service {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}

	s := &service{
		repo:   repo,
		users:  users,
		hub:    hub,
		mailer: mailer,
		config: cfg,
		queue:  make(chan notification.StatusChange, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)
	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case change := <-s.queue:
			s.deliver(change)
		case <-s.stopCh:
			// Drain what is already queued before exiting.
			for {
				select {
				case change := <-s.queue:
					s.deliver(change)
				default:
					slog.Debug("Notification worker stopped", "worker", id)
					return
				}
			}
		}
	}
}

func (s *service) Notify(ctx context.Context, change notification.StatusChange) {
	if change.At.IsZero() {
		change.At = time.Now()
	}
	select {
	case <-s.stopCh:
		slog.Warn("Notification dropped after shutdown", "kind", change.Kind, "request_id", change.RequestID)
		return
	default:
	}

	select {
	case s.queue <- change:
	default:
		slog.Warn("Notification queue full, dropping", "kind", change.Kind, "request_id", change.RequestID)
	}
}

func (s *service) deliver(change notification.StatusChange) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	recipient, err := s.users.GetByEmployeeID(ctx, change.EmployeeID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.Debug("No account linked to employee, skipping notification", "employee_id", change.EmployeeID)
			return
		}
		slog.Error("Failed to resolve notification recipient", "employee_id", change.EmployeeID, "error", err)
		return
	}

	// The inbox copy is best effort; the live event still goes out without it.
	entry := notification.NewNotification(recipient.ID, change)
	if err := s.repo.Create(ctx, &entry); err != nil {
		slog.Error("Failed to store notification", "user_id", recipient.ID, "request_id", change.RequestID, "error", err)
		entry.ID = uuid.NewString()
	}

	s.hub.Publish(recipient.ID, sse.Event{
		ID:   entry.ID,
		Name: notification.EventStatusChanged,
		Data: notification.ToPayload(change),
	})

	if s.mailer == nil || recipient.Email == "" || !recipient.IsActive {
		return
	}
	err = s.mailer.SendStatusChanged(recipient.Email, email.StatusChangedData{
		RecipientName: recipient.DisplayName(),
		RequestLabel:  change.Kind.Label(),
		Status:        string(change.Status),
		StatusLabel:   change.Status.Badge().Label,
		Note:          change.Note,
		Link:          s.requestLink(change),
		AppName:       s.config.AppName,
	})
	if err != nil {
		slog.Error("Failed to send status email", "user_id", recipient.ID, "request_id", change.RequestID, "error", err)
	}
}

var kindPaths = map[approval.Kind]string{
	approval.KindLeave:          "leave",
	approval.KindStudyPermit:    "study-permits",
	approval.KindSalaryIncrease: "salary-increases",
	approval.KindPension:        "pensions",
}

func (s *service) requestLink(change notification.StatusChange) string {
	if s.config.FrontendURL == "" {
		return ""
	}
	return strings.TrimRight(s.config.FrontendURL, "/") + "/" + kindPaths[change.Kind] + "/" + change.RequestID
}

// Subscribe creates an SSE subscription for a user; it ends when ctx is done.
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan sse.Event, func()) {
	ch, unsubscribe := s.hub.Subscribe(userID)
	go func() {
		<-ctx.Done()
		unsubscribe()
	}()
	return ch, unsubscribe
}

func (s *service) List(ctx context.Context, userID string, filter notification.NotificationFilter) (notification.ListNotificationResponse, error) {
	if err := filter.Validate(); err != nil {
		return notification.ListNotificationResponse{}, err
	}

	items, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return notification.ListNotificationResponse{}, err
	}

	out := make([]notification.NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, notification.ToResponse(n))
	}
	return pagination.NewList(out, filter.Params, total), nil
}

func (s *service) UnreadCount(ctx context.Context, userID string) (notification.UnreadCountResponse, error) {
	count, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return notification.UnreadCountResponse{}, err
	}
	return notification.UnreadCountResponse{UnreadCount: count}, nil
}

func (s *service) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, userID, req.NotificationIDs)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("Notification service stopped")
	})
}
