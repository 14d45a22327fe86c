package notification

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationLog - each actual message sent (or attempted). Email delivery
// is best-effort for invitations and participation notices, so the log is
// the only durable evidence of a failed send.
type NotificationLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	EventID    *string        `gorm:"type:uuid;index" json:"event_id,omitempty"`
	Kind       string         `gorm:"size:40;not null" json:"kind"` // invitation, participation, password_reset
	Subject    string         `gorm:"size:255" json:"subject"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Recipients datatypes.JSON `gorm:"type:jsonb;not null" json:"recipients"`
	Status     string         `gorm:"size:20;default:'pending'" json:"status"` // pending/sent/failed
	Error      *string        `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// EmailJob is the unit queued on Kafka (or handed to the in-process sender)
type EmailJob struct {
	EventID    *string  `json:"event_id,omitempty"`
	Kind       string   `json:"kind"`
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
}
