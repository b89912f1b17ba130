package service

import (
	"context"
	"time"

	"learnhub/internal/model"
	"learnhub/internal/pubsub"
	"learnhub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier delivers in-app notifications. Callers treat failures as
// non-fatal.
type Notifier interface {
	Send(ctx context.Context, userID uuid.UUID, kind model.NotificationType, message string, lessonID *uuid.UUID) error
}

// NotificationItem is a notification as shown to its recipient.
type NotificationItem struct {
	ID          uuid.UUID              `json:"id"`
	Type        model.NotificationType `json:"type"`
	Message     string                 `json:"message"`
	Read        bool                   `json:"read"`
	LessonID    *uuid.UUID             `json:"lessonId,omitempty"`
	LessonTitle string                 `json:"lessonTitle,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

type NotificationService interface {
	Notifier
	List(ctx context.Context, actor Actor) ([]NotificationItem, error)
	MarkRead(ctx context.Context, actor Actor, id uuid.UUID) error
}

// notificationEvent is the Pub/Sub payload emitted for every stored notification.
type notificationEvent struct {
	ID       uuid.UUID              `json:"id"`
	UserID   uuid.UUID              `json:"userId"`
	Type     model.NotificationType `json:"type"`
	Message  string                 `json:"message"`
	LessonID *uuid.UUID             `json:"lessonId,omitempty"`
}

type notificationService struct {
	repo      repository.NotificationRepository
	publisher pubsub.Publisher
	topic     string
	logger    zerolog.Logger
}

// NewNotificationService creates a NotificationService. publisher may be nil,
// in which case notifications are only stored.
func NewNotificationService(repo repository.NotificationRepository, publisher pubsub.Publisher, topic string, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:      repo,
		publisher: publisher,
		topic:     topic,
		logger:    logger.With().Str("service", "NotificationService").Logger(),
	}
}

func (s *notificationService) Send(ctx context.Context, userID uuid.UUID, kind model.NotificationType, message string, lessonID *uuid.UUID) error {
	n := &model.Notification{
		UserID:   userID,
		Type:     kind,
		Message:  message,
		LessonID: lessonID,
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return err
	}

	if s.publisher == nil || s.topic == "" {
		return nil
	}
	event := notificationEvent{ID: n.ID, UserID: userID, Type: kind, Message: message, LessonID: lessonID}
	attrs := map[string]string{"type": string(kind)}
	if _, err := pubsub.PublishJSON(ctx, s.publisher, s.topic, event, attrs); err != nil {
		s.logger.Warn().Err(err).Str("notification_id", n.ID.String()).Msg("Failed to publish notification event")
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, actor Actor) ([]NotificationItem, error) {
	rows, err := s.repo.GetNotificationsByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	items := make([]NotificationItem, 0, len(rows))
	for _, n := range rows {
		item := NotificationItem{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			Read:      n.Read,
			LessonID:  n.LessonID,
			CreatedAt: n.CreatedAt,
		}
		if n.Lesson != nil {
			item.LessonTitle = n.Lesson.Title
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor Actor, id uuid.UUID) error {
	n, err := s.repo.GetNotificationByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return notFoundErr("Notification")
	}
	if n.UserID != actor.ID {
		return forbiddenErr("Unauthorized")
	}
	return s.repo.MarkNotificationRead(ctx, id)
}

// notifyBestEffort sends a notification and only logs failures.
func notifyBestEffort(ctx context.Context, n Notifier, logger zerolog.Logger, userID uuid.UUID, kind model.NotificationType, message string, lessonID *uuid.UUID) {
	if n == nil {
		return
	}
	if err := n.Send(ctx, userID, kind, message, lessonID); err != nil {
		logger.Warn().Err(err).Str("user_id", userID.String()).Str("type", string(kind)).Msg("Failed to send notification")
	}
}
