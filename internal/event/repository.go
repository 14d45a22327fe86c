package event

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateEvent persists the event with its options and the seeded invitee
// grid in one transaction: either the whole survey exists or none of it.
func (r *Repository) CreateEvent(ctx context.Context, event *Event, seed func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		if seed != nil {
			return seed(tx)
		}
		return nil
	})
}

// GetEventByID loads the event with its options in display order
func (r *Repository) GetEventByID(ctx context.Context, id string) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).
		Preload("DateOptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, start_time ASC")
		}).
		Preload("VenueOptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListByCreator returns the creator's events, newest first
func (r *Repository) ListByCreator(ctx context.Context, creatorID string) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

// UpdateEvent saves title/description changes
func (r *Repository) UpdateEvent(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"title":       event.Title,
			"description": event.Description,
		}).Error
}

// DeleteEvent removes the event and everything hanging off it.
// Participant rows belong to another package's table; deleting through the
// table name keeps the cascade in one transaction without an import cycle.
func (r *Repository) DeleteEvent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM participants WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&DateOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&VenueOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, "id = ?", id).Error
	})
}
