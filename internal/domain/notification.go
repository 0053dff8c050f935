package domain

import (
	"context"
	"time"
)

type NotificationType string

const (
	NotifyInterviewScheduled   NotificationType = "interview_scheduled"
	NotifyInterviewRescheduled NotificationType = "interview_rescheduled"
	NotifyInterviewCancelled   NotificationType = "interview_cancelled"
)

// InterviewEmailData holds the template fields for interview emails.
type InterviewEmailData struct {
	CandidateName     string
	JobTitle          string
	InterviewLink     string
	ScheduledAt       time.Time
	PreviousTime      *time.Time
	DurationMinutes   int
	CandidateTimezone string
	CustomMessage     string
	Reason            string
	ExpiresAt         time.Time
}

// NotificationResult reports delivery; Notifier implementations never return errors.
type NotificationResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Notifier interface {
	Send(ctx context.Context, kind NotificationType, to string, data InterviewEmailData) NotificationResult
}
