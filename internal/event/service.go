package event

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yururi-apps/schedule-coordination-backend/config"
	"github.com/yururi-apps/schedule-coordination-backend/internal/auditlog"
	"github.com/yururi-apps/schedule-coordination-backend/internal/invitation"
	"github.com/yururi-apps/schedule-coordination-backend/internal/notification"
	"github.com/yururi-apps/schedule-coordination-backend/internal/participation"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotCreator    = errors.New("only the event creator can do this")
)

// Service wraps business logic for scheduling events
type Service struct {
	Repo     *Repository
	PartSvc  *participation.Service
	NotifSvc notification.Service
	AuditSvc auditlog.Service

	codec    invitation.Codec
	frontend string
}

func NewService(r *Repository, partSvc *participation.Service, notifSvc notification.Service, auditSvc auditlog.Service, cfg *config.Config) *Service {
	return &Service{
		Repo:     r,
		PartSvc:  partSvc,
		NotifSvc: notifSvc,
		AuditSvc: auditSvc,
		codec:    invitation.NewCodec(cfg.InviteTTLHours),
		frontend: cfg.FrontendURL,
	}
}

// ===========================
// 🎯 Create Event
// ===========================

// CreateEvent validates the request, persists the event with its candidate
// dates and venues, seeds one unanswered participant row per (invitee, date)
// in the same transaction, and then mails each invitee their tokenized link.
// Email failures are logged per recipient and never unwind the created event.
func (s *Service) CreateEvent(ctx context.Context, creatorID string, req *CreateEventRequest, ip string) (*Event, error) {
	dateOptions, err := buildDateOptions(req.DateOptions)
	if err != nil {
		s.AuditSvc.LogAction(ctx, &creatorID, nil, "EVENT_CREATED", map[string]interface{}{
			"title": req.Title,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	venueOptions := make([]VenueOption, 0, len(req.VenueOptions))
	for _, v := range req.VenueOptions {
		venueOptions = append(venueOptions, VenueOption{Name: v.Name, URL: v.URL})
	}

	emails, err := normalizeEmails(req.InviteeEmails)
	if err != nil {
		return nil, err
	}

	event := &Event{
		Title:        req.Title,
		Description:  req.Description,
		CreatorID:    creatorID,
		DateOptions:  dateOptions,
		VenueOptions: venueOptions,
	}

	// Date option IDs are assigned before the insert so the seeded invitee
	// grid can reference them inside the same transaction
	err = s.Repo.CreateEvent(ctx, event, func(tx *gorm.DB) error {
		dateIDs := make([]string, 0, len(event.DateOptions))
		for _, d := range event.DateOptions {
			dateIDs = append(dateIDs, d.ID)
		}
		return s.PartSvc.SeedInvitees(ctx, tx, event.ID, emails, dateIDs)
	})
	if err != nil {
		s.AuditSvc.LogAction(ctx, &creatorID, nil, "EVENT_CREATED", map[string]interface{}{
			"title": req.Title,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.sendInvitations(ctx, event, emails)

	s.AuditSvc.LogAction(ctx, &creatorID, &event.ID, "EVENT_CREATED", map[string]interface{}{
		"title":        event.Title,
		"date_options": len(event.DateOptions),
		"invitees":     len(emails),
	}, ip, "success")

	return event, nil
}

func buildDateOptions(inputs []DateOptionInput) ([]DateOption, error) {
	if len(inputs) == 0 {
		return nil, errors.New("at least one date option is required")
	}

	options := make([]DateOption, 0, len(inputs))
	for _, in := range inputs {
		if _, err := time.Parse("2006-01-02", in.Date); err != nil {
			return nil, errors.New("invalid date format. Use YYYY-MM-DD")
		}
		if in.StartTime != "" {
			if _, err := time.Parse("15:04", in.StartTime); err != nil {
				return nil, errors.New("invalid start time format. Use HH:MM in 24-hour format")
			}
		}
		if in.EndTime != "" {
			if _, err := time.Parse("15:04", in.EndTime); err != nil {
				return nil, errors.New("invalid end time format. Use HH:MM in 24-hour format")
			}
		}
		options = append(options, DateOption{
			ID:        newOptionID(),
			Date:      in.Date,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}
	return options, nil
}

func newOptionID() string { return uuid.NewString() }

func normalizeEmails(raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		email := strings.ToLower(strings.TrimSpace(e))
		if email == "" || seen[email] {
			continue
		}
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("invalid invitee email: %s", email)
		}
		seen[email] = true
		out = append(out, email)
	}
	return out, nil
}

func (s *Service) sendInvitations(ctx context.Context, event *Event, emails []string) {
	for _, email := range emails {
		token := s.codec.Generate(email, event.ID)
		inviteURL := fmt.Sprintf("%s/events/%s?token=%s", s.frontend, event.ID, token)
		s.NotifSvc.SendEventInvitation(ctx, email, event.ID, event.Title, event.Description, inviteURL)
	}
}

// ===========================
// 🔍 Event Detail (gated)
// ===========================

// DetailResponse is the event plus its aggregated responses and the
// viewer-specific gate outcome the form needs. Notifications carry recent
// email delivery attempts and are only populated for the creator.
type DetailResponse struct {
	Event          *Event                         `json:"event"`
	Summary        *participation.SummaryView     `json:"summary"`
	ResponderEmail string                         `json:"responder_email,omitempty"`
	EmailLocked    bool                           `json:"email_locked"`
	CanDelete      bool                           `json:"can_delete"`
	Notifications  []notification.NotificationLog `json:"notifications,omitempty"`
}

// GetEventDetail loads the event behind the access gate. The gate is
// re-evaluated on every request; a granted view is never remembered.
// The view itself is access-logged, log failures never block the read.
func (s *Service) GetEventDetail(ctx context.Context, eventID string, access invitation.Access, viewerID *string, ip string) (*DetailResponse, error) {
	if !access.Granted() {
		s.AuditSvc.LogAction(ctx, viewerID, &eventID, "EVENT_VIEWED", map[string]interface{}{
			"error": "access denied",
		}, ip, "failure")
		return nil, invitation.ErrAccessDenied
	}

	event, err := s.Repo.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	summary, err := s.PartSvc.Summary(ctx, eventID, participation.RosterAnswered)
	if err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, viewerID, &eventID, "EVENT_VIEWED", map[string]interface{}{
		"responder_email": access.ResponderEmail,
		"via_invitation":  access.State == invitation.GrantedInvitee,
	}, ip, "success")

	canDelete := false
	if viewerID != nil {
		canDelete = invitation.CanDelete(*viewerID, event.CreatorID)
	}

	// invitation delivery status is the creator's business, nobody else's
	var logs []notification.NotificationLog
	if canDelete {
		logs, err = s.NotifSvc.ListByEvent(ctx, eventID, 20)
		if err != nil {
			log.Printf("⚠️ Notification log lookup failed for event %s: %v", eventID, err)
			logs = nil
		}
	}

	return &DetailResponse{
		Event:          event,
		Summary:        summary,
		ResponderEmail: access.ResponderEmail,
		EmailLocked:    access.EmailLocked,
		CanDelete:      canDelete,
		Notifications:  logs,
	}, nil
}

// ===========================
// 📄 List Events
// ===========================

func (s *Service) ListEvents(ctx context.Context, creatorID string) ([]Event, error) {
	return s.Repo.ListByCreator(ctx, creatorID)
}

// ===========================
// 🛠 Update Event
// ===========================

func (s *Service) UpdateEvent(ctx context.Context, eventID, userID string, req *UpdateEventRequest, ip string) (*Event, error) {
	event, err := s.Repo.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if !invitation.CanDelete(userID, event.CreatorID) {
		s.AuditSvc.LogAction(ctx, &userID, &eventID, "EVENT_UPDATED", map[string]interface{}{
			"event_title": event.Title,
			"error":       "not the creator",
		}, ip, "failure")
		return nil, ErrNotCreator
	}

	originalTitle := event.Title
	event.Title = req.Title
	event.Description = req.Description

	if err := s.Repo.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if originalTitle != event.Title {
		changes["title_changed"] = map[string]string{"from": originalTitle, "to": event.Title}
	}
	s.AuditSvc.LogAction(ctx, &userID, &eventID, "EVENT_UPDATED", map[string]interface{}{
		"event_title": event.Title,
		"changes":     changes,
	}, ip, "success")

	return event, nil
}

// ===========================
// ❌ Delete Event
// ===========================

func (s *Service) DeleteEvent(ctx context.Context, eventID, userID, ip string) error {
	event, err := s.Repo.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if !invitation.CanDelete(userID, event.CreatorID) {
		s.AuditSvc.LogAction(ctx, &userID, &eventID, "EVENT_DELETED", map[string]interface{}{
			"event_title": event.Title,
			"error":       "not the creator",
		}, ip, "failure")
		return ErrNotCreator
	}

	if err := s.Repo.DeleteEvent(ctx, eventID); err != nil {
		return err
	}

	s.AuditSvc.LogAction(ctx, &userID, &eventID, "EVENT_DELETED", map[string]interface{}{
		"event_title": event.Title,
	}, ip, "success")

	return nil
}
