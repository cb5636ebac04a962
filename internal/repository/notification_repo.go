package repository

import (
	"context"
	"time"

	"auromart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, n *model.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	ListUndelivered(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error)
	// ListStale returns undelivered notifications created before cutoff whose
	// user has a WhatsApp number, oldest first.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]model.Notification, error)
	MarkDelivered(ctx context.Context, id uuid.UUID, sentAt time.Time) error
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, tx *gorm.DB, n *model.Notification) error {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	return conn.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) ListUndelivered(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	var rows []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_delivered = ?", userID, false).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *notificationRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error) {
	var rows []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *notificationRepo) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]model.Notification, error) {
	var rows []model.Notification
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = notifications.user_id").
		Where("notifications.is_delivered = ? AND notifications.created_at < ?", false, cutoff).
		Where("users.whatsapp_number IS NOT NULL AND users.whatsapp_number <> ''").
		Order("notifications.created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *notificationRepo) MarkDelivered(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_delivered": true, "sent_at": sentAt}).Error
}
