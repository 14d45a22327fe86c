package reports

import (
	"context"
	"errors"

	"github.com/yururi-apps/schedule-coordination-backend/internal/event"
	"github.com/yururi-apps/schedule-coordination-backend/internal/invitation"
	"github.com/yururi-apps/schedule-coordination-backend/internal/participation"
)

var ErrNotCreator = errors.New("only the event creator can export responses")

type Service struct {
	eventRepo *event.Repository
	partSvc   *participation.Service
	exporter  Exporter
}

func NewService(eventRepo *event.Repository, partSvc *participation.Service) *Service {
	return &Service{
		eventRepo: eventRepo,
		partSvc:   partSvc,
		exporter:  NewExporter(),
	}
}

// ExportAttendance renders the full attendance matrix of one event.
// Creator only: exports include every invitee email.
func (s *Service) ExportAttendance(ctx context.Context, eventID, userID, format string) ([]byte, string, string, error) {
	ev, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}
	if !invitation.CanDelete(userID, ev.CreatorID) {
		return nil, "", "", ErrNotCreator
	}

	summary, err := s.partSvc.Summary(ctx, eventID, participation.RosterInvited)
	if err != nil {
		return nil, "", "", err
	}

	venueNames := make(map[string]string, len(ev.VenueOptions))
	for _, v := range ev.VenueOptions {
		venueNames[v.ID] = v.Name
	}

	data := AttendanceData{
		EventTitle: ev.Title,
		Dates:      summary.Dates,
		Roster:     summary.Roster,
		Matrix:     summary.Matrix,
		VenueVotes: summary.VenueVotes,
		VenueNames: venueNames,
	}

	return s.exporter.Export(format, data)
}
