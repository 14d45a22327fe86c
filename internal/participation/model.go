package participation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Response is the answer to one candidate date. The storage layer never
// writes NULL for "no answer yet": unanswered is its own value.
type Response string

const (
	ResponseUnanswered Response = "unanswered"
	ResponseYes        Response = "yes"
	ResponseNo         Response = "no"
	ResponseMaybe      Response = "maybe"
)

// ParseResponse maps request input to a Response. Unknown values fall back
// to unanswered so a bad client cannot invent grid states.
func ParseResponse(s string) Response {
	switch Response(s) {
	case ResponseYes, ResponseNo, ResponseMaybe:
		return Response(s)
	default:
		return ResponseUnanswered
	}
}

// Answered reports whether the participant actually chose something
func (r Response) Answered() bool {
	return r == ResponseYes || r == ResponseNo || r == ResponseMaybe
}

// Symbol renders the grid mark used in emails and exports
func (r Response) Symbol() string {
	switch r {
	case ResponseYes:
		return "○"
	case ResponseNo:
		return "×"
	case ResponseMaybe:
		return "△"
	default:
		return "-"
	}
}

// Participant is one (email, date option) cell of the availability grid.
// The composite unique index makes resubmission an upsert: one row per cell,
// never delete-then-insert.
type Participant struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID       string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_event_email_date" json:"event_id"`
	Email         string    `gorm:"size:255;not null;uniqueIndex:idx_event_email_date" json:"email"`
	DateOptionID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_event_email_date" json:"date_option_id"`
	Name          string    `gorm:"size:150" json:"name"`
	Response      Response  `gorm:"size:20;not null;default:'unanswered'" json:"response"`
	VenueOptionID *string   `gorm:"type:uuid" json:"venue_option_id,omitempty"`
	UserID        *string   `gorm:"type:uuid" json:"user_id,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Participant) TableName() string { return "participants" }

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ===========================
// Request payloads
// ===========================

type SubmitRequest struct {
	Email     string            `json:"email" example:"hanako@example.com"`
	Name      string            `json:"name" example:"Hanako Sato"`
	Responses map[string]string `json:"responses" binding:"required"` // date option ID -> yes|no|maybe
	// Optional venue choice submitted together with availability.
	// When absent, a vote previously cast through /venue-vote is kept.
	VenueOptionID *string `json:"venueOptionId,omitempty"`
}

type VenueVoteRequest struct {
	Email         string `json:"email" example:"hanako@example.com"`
	VenueOptionID string `json:"venueOptionId" binding:"required"`
}
