package participation

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByEvent fetches all participant rows for an event, newest first.
// Historical duplicates cannot exist anymore (unique cell index), but the
// aggregator defends against them regardless.
func (r *Repository) ListByEvent(ctx context.Context, eventID string) ([]Participant, error) {
	var rows []Participant
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// InsertBatch seeds invitee rows inside the caller's transaction
func (r *Repository) InsertBatch(ctx context.Context, tx *gorm.DB, rows []Participant) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&rows).Error
}

// UpsertResponses writes one submission. The unique index on
// (event_id, email, date_option_id) turns resubmission into an in-place
// update of the same cells: no delete-then-insert, no widowed rows.
// venue_option_id is only touched when the submission carries a choice,
// so resubmitting availability never wipes a vote cast through /venue-vote.
func (r *Repository) UpsertResponses(ctx context.Context, rows []Participant) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "event_id"},
			{Name: "email"},
			{Name: "date_option_id"},
		},
		DoUpdates: clause.AssignmentColumns(upsertColumns(rows)),
	}).Create(&rows).Error
}

// upsertColumns picks the conflict-update column set for one submission.
// All rows of a submission share the same venue choice.
func upsertColumns(rows []Participant) []string {
	cols := []string{"name", "response", "user_id", "updated_at"}
	if len(rows) > 0 && rows[0].VenueOptionID != nil {
		cols = append(cols, "venue_option_id")
	}
	return cols
}

// SetVenueVote atomically replaces a participant's venue choice across all
// their rows for the event. A single conditional UPDATE: the old vote and
// the new vote can never both be counted.
func (r *Repository) SetVenueVote(ctx context.Context, eventID, email, venueOptionID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Participant{}).
		Where("event_id = ? AND email = ?", eventID, email).
		Updates(map[string]interface{}{
			"venue_option_id": venueOptionID,
			"updated_at":      time.Now(),
		})
	return res.RowsAffected, res.Error
}

// ===========================
// Cross-domain reads
// ===========================
// The event tables belong to the event package; reading them here through
// raw table queries keeps the import graph acyclic.

type EventInfo struct {
	ID          string
	Title       string
	Description string
	CreatorID   string
}

func (r *Repository) EventInfo(ctx context.Context, eventID string) (*EventInfo, error) {
	var info EventInfo
	err := r.db.WithContext(ctx).
		Table("events").
		Select("id, title, description, creator_id").
		Where("id = ?", eventID).
		Take(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

type DateOptionRow struct {
	ID        string
	Date      string
	StartTime string
	EndTime   string
}

func (r *Repository) DateOptions(ctx context.Context, eventID string) ([]DateOptionRow, error) {
	var rows []DateOptionRow
	err := r.db.WithContext(ctx).
		Table("date_options").
		Select("id, date, start_time, end_time").
		Where("event_id = ?", eventID).
		Order("date ASC, start_time ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) VenueOptionExists(ctx context.Context, eventID, venueOptionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("venue_options").
		Where("id = ? AND event_id = ?", venueOptionID, eventID).
		Count(&count).Error
	return count > 0, err
}
