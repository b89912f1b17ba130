package repository

import (
	"context"
	"errors"
	"fmt"

	"learnhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	GetNotificationByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
	// GetNotificationsByUserID returns newest first, with the related lesson loaded
	GetNotificationsByUserID(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	if err := conn(ctx, r.db).Omit("Lesson").Create(n).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepo) GetNotificationByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	if err := conn(ctx, r.db).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &n, nil
}

func (r *notificationRepo) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	err := conn(ctx, r.db).Model(&model.Notification{}).Where("id = ?", id).Update("read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (r *notificationRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	var notifications []model.Notification
	err := conn(ctx, r.db).
		Preload("Lesson").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}
