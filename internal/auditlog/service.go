package auditlog

import (
	"context"
	"encoding/json"
	"log"
	"math"
)

type Service interface {
	// LogAction records one action. Logging is best-effort everywhere it is
	// called from: failures are printed and swallowed, never propagated.
	LogAction(ctx context.Context, userID *string, eventID *string, action string, details map[string]interface{}, ip string, status string) error
	GetAuditLogs(ctx context.Context, filter Filter) (*Page, error)
	GetAuditLogByID(ctx context.Context, id uint) (*AuditLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogAction(ctx context.Context, userID *string, eventID *string, action string, details map[string]interface{}, ip string, status string) error {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte(`{}`)
	}

	entry := &AuditLog{
		UserID:    userID,
		EventID:   eventID,
		Action:    action,
		Details:   payload,
		IPAddress: ip,
		Status:    status,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("❌ Audit log write failed (%s): %v", action, err)
		return err
	}
	return nil
}

func (s *service) GetAuditLogs(ctx context.Context, f Filter) (*Page, error) {
	logs, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	return &Page{
		Data:       logs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *service) GetAuditLogByID(ctx context.Context, id uint) (*AuditLog, error) {
	return s.repo.GetByID(ctx, id)
}
