package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog represents the audit_logs table. One row per user-visible action
// (event created, response submitted, event viewed, ...); failures are rows
// too, with status=failure.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *string        `gorm:"type:uuid;index" json:"user_id"`  // nullable (invitee actions)
	EventID   *string        `gorm:"type:uuid;index" json:"event_id"` // nullable (auth actions)
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress string         `gorm:"size:45" json:"ip_address"`
	Status    string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Filter narrows audit log queries
type Filter struct {
	UserID  *string
	EventID *string
	Action  string
	Status  string
	Page    int
	Limit   int
}

// Page is one page of audit logs
type Page struct {
	Data       []AuditLog `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}
