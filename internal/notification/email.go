package notification

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/yururi-apps/schedule-coordination-backend/config"
)

// Channel delivers one message to a set of recipients
type Channel interface {
	Send(to []string, subject, body string) error
}

// EmailSender implements Channel over SMTP
type EmailSender struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
	FromAddr string
}

func NewEmailSender(cfg *config.Config) *EmailSender {
	return &EmailSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		FromName: cfg.SMTPFromName,
		FromAddr: cfg.SMTPFromEmail,
	}
}

func (e *EmailSender) Send(to []string, subject, body string) error {
	if e.Host == "" || e.Username == "" || e.Password == "" {
		log.Println("⚠️ SMTP not configured. Email not sent.")
		return nil
	}

	fromAddr := e.FromAddr
	if fromAddr == "" {
		fromAddr = e.Username
	}

	addr := fmt.Sprintf("%s:%s", e.Host, e.Port)

	// Dial plain first, then upgrade; some providers reject direct TLS dials
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         e.Host,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", e.Username, e.Password, e.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(fromAddr); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	from := fromAddr
	if e.FromName != "" {
		from = fmt.Sprintf("%s <%s>", e.FromName, fromAddr)
	}

	msg := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", from, strings.Join(to, ", "), subject, body)

	if _, err := w.Write([]byte(msg)); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		log.Printf("⚠️ QUIT command error (non-critical): %v", err)
	}

	return nil
}
