package email

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zordhalo/lontario-YC-sub000/config"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/pkg/logger"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService delivers interview notifications via SMTP. It implements
// domain.Notifier and never returns an error: failures are reported in the result.
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	fromName  string
	send      sendFunc
}

// NewEmailService creates a new email service from the SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		fromName:  cfg.SMTPFromName,
		send:      smtp.SendMail,
	}
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

type templateData struct {
	domain.InterviewEmailData
	When         string
	PreviousWhen string
}

func subjectFor(kind domain.NotificationType, data domain.InterviewEmailData) (string, error) {
	switch kind {
	case domain.NotifyInterviewScheduled:
		return fmt.Sprintf("Your AI interview for %s", data.JobTitle), nil
	case domain.NotifyInterviewRescheduled:
		return fmt.Sprintf("Your AI interview for %s has moved", data.JobTitle), nil
	case domain.NotifyInterviewCancelled:
		return fmt.Sprintf("Your AI interview for %s was cancelled", data.JobTitle), nil
	default:
		return "", fmt.Errorf("unknown notification type: %s", kind)
	}
}

// formatWhen renders t in the candidate's timezone when one was given.
func formatWhen(t time.Time, tz string) string {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return t.In(loc).Format("Monday, 2 January 2006 at 15:04 MST")
		}
	}
	return t.UTC().Format("Monday, 2 January 2006 at 15:04 MST")
}

// Render builds the subject and HTML body for a notification.
func Render(kind domain.NotificationType, data domain.InterviewEmailData) (string, string, error) {
	subject, err := subjectFor(kind, data)
	if err != nil {
		return "", "", err
	}

	td := templateData{InterviewEmailData: data, When: formatWhen(data.ScheduledAt, data.CandidateTimezone)}
	if data.PreviousTime != nil {
		td.PreviousWhen = formatWhen(*data.PreviousTime, data.CandidateTimezone)
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(kind), td); err != nil {
		return "", "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return subject, body.String(), nil
}

// Send renders and delivers one notification.
func (s *EmailService) Send(ctx context.Context, kind domain.NotificationType, to string, data domain.InterviewEmailData) domain.NotificationResult {
	if !s.IsConfigured() {
		return domain.NotificationResult{Error: "email service not configured"}
	}
	if err := ctx.Err(); err != nil {
		return domain.NotificationResult{Error: err.Error()}
	}

	subject, body, err := Render(kind, data)
	if err != nil {
		return domain.NotificationResult{Error: err.Error()}
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), messageDomain(s.fromEmail))
	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"Message-ID: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		from, to, subject, messageID, body,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		logger.Log.Warn("Failed to send email", "type", kind, "error", err)
		return domain.NotificationResult{Error: fmt.Sprintf("failed to send email: %v", err)}
	}

	return domain.NotificationResult{Success: true, MessageID: messageID}
}

func messageDomain(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return "localhost"
}
