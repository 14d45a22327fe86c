package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateLog(ctx context.Context, entry *NotificationLog) error
	ListByEvent(ctx context.Context, eventID string, limit int) ([]NotificationLog, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) CreateLog(ctx context.Context, entry *NotificationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListByEvent(ctx context.Context, eventID string, limit int) ([]NotificationLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var logs []NotificationLog
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
