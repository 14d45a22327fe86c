package auditlog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, entry *AuditLog) error
	List(ctx context.Context, filter Filter) ([]AuditLog, int64, error)
	GetByID(ctx context.Context, id uint) (*AuditLog, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) List(ctx context.Context, f Filter) ([]AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&AuditLog{})

	if f.UserID != nil {
		query = query.Where("user_id = ?", *f.UserID)
	}
	if f.EventID != nil {
		query = query.Where("event_id = ?", *f.EventID)
	}
	if f.Action != "" {
		query = query.Where("action = ?", f.Action)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	var logs []AuditLog
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error

	return logs, total, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*AuditLog, error) {
	var entry AuditLog
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
