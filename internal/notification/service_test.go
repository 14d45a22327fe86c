package notification

import (
	"context"
	"testing"

	"github.com/yururi-apps/schedule-coordination-backend/config"
)

type fakeRepository struct {
	logs []NotificationLog
}

func (f *fakeRepository) CreateLog(ctx context.Context, entry *NotificationLog) error {
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *fakeRepository) ListByEvent(ctx context.Context, eventID string, limit int) ([]NotificationLog, error) {
	var out []NotificationLog
	for _, l := range f.logs {
		if l.EventID != nil && *l.EventID == eventID {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestDeliverWritesLogAndListByEventReturnsIt(t *testing.T) {
	repo := &fakeRepository{}
	// empty config: the SMTP channel is unconfigured and sends are no-ops
	svc := NewService(repo, &config.Config{})

	eventID := "ev1"
	err := svc.Deliver(context.Background(), EmailJob{
		EventID:    &eventID,
		Kind:       "invitation",
		Recipients: []string{"hanako@example.com"},
		Subject:    "Invitation: Team dinner",
		Body:       "You have been invited.",
	})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	logs, err := svc.ListByEvent(context.Background(), eventID, 20)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	if logs[0].Kind != "invitation" || logs[0].Status != "sent" {
		t.Fatalf("log = kind %q status %q, want invitation/sent", logs[0].Kind, logs[0].Status)
	}

	other, err := svc.ListByEvent(context.Background(), "ev2", 20)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("got %d logs for another event, want 0", len(other))
	}
}
