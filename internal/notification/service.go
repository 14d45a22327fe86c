package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/yururi-apps/schedule-coordination-backend/config"
	"github.com/yururi-apps/schedule-coordination-backend/utils"
)

type Service interface {
	// SendEventInvitation mails one invitee their tokenized event link.
	// Best-effort: failures are logged and recorded, never returned.
	SendEventInvitation(ctx context.Context, to, eventID, eventTitle, eventDescription, inviteURL string)

	// SendParticipationNotice tells the event creator someone answered.
	// Best-effort, same policy as invitations.
	SendParticipationNotice(ctx context.Context, to, eventID, participantEmail, participantName, summary, eventURL string)

	// SendPasswordReset is synchronous: the caller surfaces the failure
	SendPasswordReset(ctx context.Context, to, resetURL string) error

	// Deliver performs the actual send + log write; the Kafka consumer and
	// the in-process fallback both end up here
	Deliver(ctx context.Context, job EmailJob) error

	// ListByEvent returns recent delivery attempts for one event, so the
	// creator can see whether invitations actually went out
	ListByEvent(ctx context.Context, eventID string, limit int) ([]NotificationLog, error)
}

type service struct {
	repo  Repository
	email Channel
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo:  repo,
		email: NewEmailSender(cfg),
	}
}

func (s *service) SendEventInvitation(ctx context.Context, to, eventID, eventTitle, eventDescription, inviteURL string) {
	body := fmt.Sprintf(
		"You have been invited to %q.\n\n%s\n\nAnswer your availability here:\n%s\n\nThis link is personal and expires; please do not forward it.",
		eventTitle, eventDescription, inviteURL,
	)

	s.dispatch(ctx, EmailJob{
		EventID:    &eventID,
		Kind:       "invitation",
		Recipients: []string{to},
		Subject:    fmt.Sprintf("Invitation: %s", eventTitle),
		Body:       body,
	})
}

func (s *service) SendParticipationNotice(ctx context.Context, to, eventID, participantEmail, participantName, summary, eventURL string) {
	who := participantEmail
	if participantName != "" {
		who = fmt.Sprintf("%s (%s)", participantName, participantEmail)
	}

	body := fmt.Sprintf(
		"%s answered the schedule survey.\n\n%s\n\nSee all responses:\n%s",
		who, summary, eventURL,
	)

	s.dispatch(ctx, EmailJob{
		EventID:    &eventID,
		Kind:       "participation",
		Recipients: []string{to},
		Subject:    "New availability response",
		Body:       body,
	})
}

func (s *service) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	job := EmailJob{
		Kind:       "password_reset",
		Recipients: []string{to},
		Subject:    "Reset your password",
		Body: fmt.Sprintf(
			"Click here to reset your password: %s\n\nIf you did not request this password reset, please ignore this email.",
			resetURL,
		),
	}
	// reset links must not sit in a queue behind bulk mail
	return s.Deliver(ctx, job)
}

// dispatch queues the job on Kafka when configured, else sends async in-process.
// Either way the caller never blocks on SMTP and never sees a send error:
// the mutation that triggered the mail has already committed.
func (s *service) dispatch(ctx context.Context, job EmailJob) {
	if utils.KafkaEnabled() {
		payload, err := json.Marshal(job)
		if err == nil && utils.PublishEmailJob(ctx, payload) == nil {
			return
		}
		log.Printf("⚠️ Kafka publish failed for %s email, falling back to direct send", job.Kind)
	}

	go func() {
		if err := s.Deliver(context.Background(), job); err != nil {
			log.Printf("❌ Failed to send %s email: %v", job.Kind, err)
		}
	}()
}

func (s *service) Deliver(ctx context.Context, job EmailJob) error {
	sendErr := s.email.Send(job.Recipients, job.Subject, job.Body)

	recipients, err := json.Marshal(job.Recipients)
	if err != nil {
		recipients = []byte(`[]`)
	}

	entry := &NotificationLog{
		EventID:    job.EventID,
		Kind:       job.Kind,
		Subject:    job.Subject,
		Body:       job.Body,
		Recipients: recipients,
		Status:     "sent",
	}
	if sendErr != nil {
		entry.Status = "failed"
		msg := sendErr.Error()
		entry.Error = &msg
	}

	if logErr := s.repo.CreateLog(ctx, entry); logErr != nil {
		log.Printf("❌ Notification log write failed: %v", logErr)
	}

	return sendErr
}

func (s *service) ListByEvent(ctx context.Context, eventID string, limit int) ([]NotificationLog, error) {
	return s.repo.ListByEvent(ctx, eventID, limit)
}
