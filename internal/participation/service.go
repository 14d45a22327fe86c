package participation

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yururi-apps/schedule-coordination-backend/config"
	"github.com/yururi-apps/schedule-coordination-backend/internal/auditlog"
	"github.com/yururi-apps/schedule-coordination-backend/internal/auth"
	"github.com/yururi-apps/schedule-coordination-backend/internal/invitation"
	"github.com/yururi-apps/schedule-coordination-backend/internal/notification"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrUnknownVenue  = errors.New("venue option does not belong to this event")
	ErrNotInvited    = errors.New("no responses found for this participant")
)

// DateSummary is one column of the attendance matrix
type DateSummary struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time,omitempty"`
	EndTime   string    `json:"end_time,omitempty"`
	Label     string    `json:"label"`
	Tally     DateTally `json:"tally"`
}

// SummaryView is the aggregated state of one event's responses
type SummaryView struct {
	Dates      []DateSummary                  `json:"dates"`
	Roster     []RosterEntry                  `json:"roster"`
	Matrix     map[string]map[string]Response `json:"matrix"` // email -> date option ID -> response
	VenueVotes map[string]int                 `json:"venue_votes"`
}

type Service struct {
	repo     *Repository
	authRepo auth.Repository
	notifSvc notification.Service
	auditSvc auditlog.Service
	frontend string
}

func NewService(repo *Repository, authRepo auth.Repository, notifSvc notification.Service, auditSvc auditlog.Service, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		authRepo: authRepo,
		notifSvc: notifSvc,
		auditSvc: auditSvc,
		frontend: cfg.FrontendURL,
	}
}

// ===========================
// Submit responses
// ===========================

// Submit records one participant's answers for every candidate date of the
// event, with an optional venue choice in the same payload. Dates missing
// from the request are written as "no", matching how the response form
// treats an untouched row. Resubmission overwrites the participant's
// existing cells in place; an omitted venue choice leaves a previously
// cast vote untouched.
func (s *Service) Submit(ctx context.Context, eventID string, access invitation.Access, userID *string, req SubmitRequest, ip string) (*SummaryView, error) {
	email, err := access.ValidateResponder(req.Email)
	if err != nil {
		return nil, err
	}

	info, err := s.repo.EventInfo(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	dateOpts, err := s.repo.DateOptions(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(dateOpts) == 0 {
		return nil, ErrEventNotFound
	}

	if req.VenueOptionID != nil {
		ok, err := s.repo.VenueOptionExists(ctx, eventID, *req.VenueOptionID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUnknownVenue
		}
	}

	rows := make([]Participant, 0, len(dateOpts))
	answers := make(map[string]Response, len(dateOpts))
	for _, d := range dateOpts {
		resp := ResponseNo
		if raw, ok := req.Responses[d.ID]; ok {
			resp = ParseResponse(raw)
		}
		answers[d.ID] = resp
		rows = append(rows, Participant{
			EventID:       eventID,
			Email:         email,
			DateOptionID:  d.ID,
			Name:          req.Name,
			Response:      resp,
			VenueOptionID: req.VenueOptionID,
			UserID:        userID,
		})
	}

	if err := s.repo.UpsertResponses(ctx, rows); err != nil {
		return nil, err
	}

	// tell the creator; failure never unwinds the committed submission
	s.notifyCreator(ctx, info, dateOpts, email, req.Name, answers)

	_ = s.auditSvc.LogAction(ctx, userID, &info.ID, "RESPONSE_SUBMITTED", map[string]interface{}{
		"email":       email,
		"event_title": info.Title,
	}, ip, "success")

	return s.Summary(ctx, eventID, RosterAnswered)
}

func (s *Service) notifyCreator(ctx context.Context, info *EventInfo, dateOpts []DateOptionRow, email, name string, answers map[string]Response) {
	creatorEmail, err := s.authRepo.EmailByID(info.CreatorID)
	if err != nil {
		log.Printf("⚠️ Creator lookup failed for event %s, skipping notification: %v", info.ID, err)
		return
	}

	labels := make([]DateLabel, 0, len(dateOpts))
	for _, d := range dateOpts {
		labels = append(labels, DateLabel{ID: d.ID, Label: formatDateLabel(d)})
	}

	eventURL := fmt.Sprintf("%s/events/%s", s.frontend, info.ID)
	summary := FormatResponseSummary(labels, answers)
	s.notifSvc.SendParticipationNotice(ctx, creatorEmail, info.ID, email, name, summary, eventURL)
}

func formatDateLabel(d DateOptionRow) string {
	if d.StartTime != "" && d.EndTime != "" {
		return fmt.Sprintf("%s %s-%s", d.Date, d.StartTime, d.EndTime)
	}
	if d.StartTime != "" {
		return fmt.Sprintf("%s %s", d.Date, d.StartTime)
	}
	return d.Date
}

// ===========================
// Venue vote
// ===========================

// VoteVenue replaces the participant's venue choice. One UPDATE statement
// moves the vote, so tallies can never count the same participant twice.
func (s *Service) VoteVenue(ctx context.Context, eventID string, access invitation.Access, userID *string, req VenueVoteRequest, ip string) error {
	email, err := access.ValidateResponder(req.Email)
	if err != nil {
		return err
	}

	ok, err := s.repo.VenueOptionExists(ctx, eventID, req.VenueOptionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownVenue
	}

	affected, err := s.repo.SetVenueVote(ctx, eventID, email, req.VenueOptionID)
	if err != nil {
		return err
	}
	if affected == 0 {
		// a vote needs existing rows; the invitee grid is seeded at creation,
		// so this only happens for uninvited addresses on locked tokens
		return ErrNotInvited
	}

	_ = s.auditSvc.LogAction(ctx, userID, &eventID, "VENUE_VOTED", map[string]interface{}{
		"email":           email,
		"venue_option_id": req.VenueOptionID,
	}, ip, "success")

	return nil
}

// ===========================
// Summary
// ===========================

// Summary aggregates all rows of the event into the attendance matrix
func (s *Service) Summary(ctx context.Context, eventID string, policy RosterPolicy) (*SummaryView, error) {
	rows, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	dateOpts, err := s.repo.DateOptions(ctx, eventID)
	if err != nil {
		return nil, err
	}

	agg := NewAggregate(rows)
	roster := agg.Roster(policy)

	dates := make([]DateSummary, 0, len(dateOpts))
	for _, d := range dateOpts {
		dates = append(dates, DateSummary{
			ID:        d.ID,
			Date:      d.Date,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Label:     formatDateLabel(d),
			Tally:     agg.Tally(d.ID),
		})
	}

	matrix := make(map[string]map[string]Response, len(roster))
	for _, entry := range roster {
		cells := make(map[string]Response, len(dateOpts))
		for _, d := range dateOpts {
			cells[d.ID] = agg.ResponseFor(entry.Email, d.ID)
		}
		matrix[entry.Email] = cells
	}

	return &SummaryView{
		Dates:      dates,
		Roster:     roster,
		Matrix:     matrix,
		VenueVotes: agg.VenueTally(),
	}, nil
}

// SeedInvitees inserts the initial unanswered grid inside the event
// creation transaction: D date options x P invited emails.
func (s *Service) SeedInvitees(ctx context.Context, tx *gorm.DB, eventID string, emails []string, dateOptionIDs []string) error {
	rows := BuildInviteeRows(eventID, emails, dateOptionIDs)
	return s.repo.InsertBatch(ctx, tx, rows)
}
