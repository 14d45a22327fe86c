package event

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is one scheduling survey: a title, candidate dates, candidate
// venues, and the invited email list.
type Event struct {
	ID           string        `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string        `gorm:"size:200;not null" json:"title"`
	Description  string        `gorm:"type:text" json:"description"`
	CreatorID    string        `gorm:"type:uuid;not null;index" json:"creator_id"`
	DateOptions  []DateOption  `gorm:"foreignKey:EventID" json:"date_options"`
	VenueOptions []VenueOption `gorm:"foreignKey:EventID" json:"venue_options"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// DateOption is one candidate date (with optional time window)
type DateOption struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   string    `gorm:"type:uuid;not null;index" json:"event_id"`
	Date      string    `gorm:"size:10;not null" json:"date"`            // YYYY-MM-DD
	StartTime string    `gorm:"size:5" json:"start_time,omitempty"`      // HH:MM
	EndTime   string    `gorm:"size:5" json:"end_time,omitempty"`        // HH:MM
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (d *DateOption) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// VenueOption is one candidate venue participants can vote on
type VenueOption struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   string    `gorm:"type:uuid;not null;index" json:"event_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	URL       string    `gorm:"size:500" json:"url,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (v *VenueOption) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// ===========================
// Request payloads
// ===========================

type DateOptionInput struct {
	Date      string `json:"date" binding:"required" example:"2026-09-01"`
	StartTime string `json:"startTime" example:"19:00"`
	EndTime   string `json:"endTime" example:"21:00"`
}

type VenueOptionInput struct {
	Name string `json:"name" binding:"required" example:"Izakaya Torikizoku"`
	URL  string `json:"url" example:"https://tabelog.com/..."`
}

type CreateEventRequest struct {
	Title         string             `json:"title" binding:"required" example:"Team dinner"`
	Description   string             `json:"description" example:"End of quarter get-together"`
	DateOptions   []DateOptionInput  `json:"dateOptions" binding:"required,min=1"`
	VenueOptions  []VenueOptionInput `json:"venueOptions"`
	InviteeEmails []string           `json:"inviteeEmails"`
}

type UpdateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}
