package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrActiveInterviewExists is returned when an insert would give a candidate a second non-terminal interview.
	ErrActiveInterviewExists = errors.New("candidate already has an active interview")
	// ErrPregeneratedUnavailable means the pre-generated set was no longer ready to consume.
	ErrPregeneratedUnavailable = errors.New("pre-generated questions no longer available")
)

// InterviewStatus is the lifecycle state of an AI interview.
type InterviewStatus string

const (
	InterviewPending    InterviewStatus = "pending"
	InterviewScheduled  InterviewStatus = "scheduled"
	InterviewReady      InterviewStatus = "ready"
	InterviewSent       InterviewStatus = "sent"
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"
	InterviewExpired    InterviewStatus = "expired"
	InterviewAbandoned  InterviewStatus = "abandoned"
	InterviewMissed     InterviewStatus = "missed"
	InterviewCancelled  InterviewStatus = "cancelled"
)

// Scheduling bounds
const (
	MinInterviewDuration     = 15
	MaxInterviewDuration     = 120
	DefaultInterviewDuration = 30
	MaxCustomMessageLength   = 1000
)

// interviewTransitions lists the legal next states for each status.
var interviewTransitions = map[InterviewStatus][]InterviewStatus{
	InterviewPending:    {InterviewScheduled, InterviewReady, InterviewCancelled, InterviewExpired, InterviewMissed},
	InterviewScheduled:  {InterviewReady, InterviewSent, InterviewCancelled, InterviewExpired, InterviewMissed},
	InterviewReady:      {InterviewSent, InterviewCancelled, InterviewExpired, InterviewMissed},
	InterviewSent:       {InterviewInProgress, InterviewCancelled, InterviewExpired, InterviewMissed},
	InterviewInProgress: {InterviewCompleted, InterviewExpired, InterviewAbandoned},
}

// CanTransitionInterview reports whether from -> to is a legal status change.
func CanTransitionInterview(from, to InterviewStatus) bool {
	for _, next := range interviewTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s InterviewStatus) IsTerminal() bool {
	_, ok := interviewTransitions[s]
	return !ok
}

// IsCancellable reports whether the cancel operation is legal.
func (s InterviewStatus) IsCancellable() bool {
	return CanTransitionInterview(s, InterviewCancelled)
}

// IsReschedulable reports whether the interview has not started yet.
func (s InterviewStatus) IsReschedulable() bool {
	switch s {
	case InterviewPending, InterviewScheduled, InterviewReady, InterviewSent:
		return true
	}
	return false
}

// CancellableStatuses is the set a cancel may start from.
var CancellableStatuses = []InterviewStatus{InterviewPending, InterviewScheduled, InterviewReady, InterviewSent}

type AIInterview struct {
	ID                 uuid.UUID       `json:"id"`
	CandidateID        uuid.UUID       `json:"candidate_id"`
	JobID              uuid.UUID       `json:"job_id"`
	Status             InterviewStatus `json:"status"`
	ScheduledAt        time.Time       `json:"scheduled_at"`
	DurationMinutes    int             `json:"duration_minutes"`
	CandidateTimezone  *string         `json:"candidate_timezone,omitempty"`
	CustomMessage      *string         `json:"custom_message,omitempty"`
	AccessToken        string          `json:"access_token"`
	InterviewLink      string          `json:"interview_link"`
	ExpiresAt          time.Time       `json:"expires_at"`
	Questions          []Question      `json:"questions"`
	TotalQuestions     int             `json:"total_questions"`
	TotalEstimatedTime int             `json:"total_estimated_time"`
	PregeneratedID     *uuid.UUID      `json:"pregenerated_id,omitempty"`
	OverallScore       *int            `json:"overall_score"`
	Recommendation     *string         `json:"recommendation"`
	InviteSentAt       *time.Time      `json:"invite_sent_at,omitempty"`
	StartedAt          *time.Time      `json:"started_at,omitempty"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
	ReviewedAt         *time.Time      `json:"reviewed_at,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason       *string         `json:"cancel_reason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ScheduleInterviewRequest is the HTTP-facing scheduling contract.
type ScheduleInterviewRequest struct {
	CandidateID         uuid.UUID `json:"candidate_id" binding:"required"`
	JobID               uuid.UUID `json:"job_id" binding:"required"`
	ScheduledAt         time.Time `json:"scheduled_at" binding:"required,future_time"`
	DurationMinutes     int       `json:"duration_minutes" binding:"omitempty,min=15,max=120"`
	SendImmediateInvite *bool     `json:"send_immediate_invite"`
	CustomMessage       string    `json:"custom_message" binding:"max=1000"`
	CandidateTimezone   string    `json:"candidate_timezone" binding:"omitempty,iana_timezone"`
}

// ScheduleInterviewResult is returned after the interview row exists.
// Warnings carry partial failures such as an undelivered invite.
type ScheduleInterviewResult struct {
	Interview          *AIInterview `json:"interview"`
	InterviewLink      string       `json:"interview_link"`
	QuestionsGenerated bool         `json:"questions_generated"`
	Warnings           []string     `json:"warnings,omitempty"`
}

// InterviewMutationResult is returned by reschedule and cancel.
type InterviewMutationResult struct {
	Interview *AIInterview `json:"interview"`
	Warnings  []string     `json:"warnings,omitempty"`
}

// InterviewUpdate is a partial update; nil fields are left unchanged.
type InterviewUpdate struct {
	Status       *InterviewStatus
	ScheduledAt  *time.Time
	ExpiresAt    *time.Time
	InviteSentAt *time.Time
	ReviewedAt   *time.Time
	CancelledAt  *time.Time
	CancelReason *string
}

type InterviewRepository interface {
	// Create returns ErrActiveInterviewExists when the candidate already has an active interview.
	Create(ctx context.Context, interview *AIInterview) error
	// CreateFromPregenerated marks the ready set used and inserts the interview in one
	// transaction. ErrPregeneratedUnavailable means nothing was written.
	CreateFromPregenerated(ctx context.Context, interview *AIInterview, pregeneratedID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*AIInterview, error)
	// GetActiveByCandidate returns ErrNotFound when the candidate has no non-terminal interview.
	GetActiveByCandidate(ctx context.Context, candidateID uuid.UUID) (*AIInterview, error)
	GetLatestByCandidate(ctx context.Context, candidateID uuid.UUID) (*AIInterview, error)
	Update(ctx context.Context, id uuid.UUID, upd InterviewUpdate) (*AIInterview, error)
	// UpdateIfStatus applies upd only while the row is in one of the given statuses.
	// It returns ErrNotFound when no row matched.
	UpdateIfStatus(ctx context.Context, id uuid.UUID, allowed []InterviewStatus, upd InterviewUpdate) (*AIInterview, error)
	// ExpireOverdue moves rows in the given statuses with expires_at before now to target.
	ExpireOverdue(ctx context.Context, now time.Time, from []InterviewStatus, target InterviewStatus) (int64, error)
}

type InterviewUsecase interface {
	ScheduleInterview(ctx context.Context, req ScheduleInterviewRequest) (*ScheduleInterviewResult, error)
	RescheduleInterview(ctx context.Context, id uuid.UUID, scheduledAt time.Time, reason string) (*InterviewMutationResult, error)
	CancelInterview(ctx context.Context, id uuid.UUID, reason string) (*InterviewMutationResult, error)
	GetInterview(ctx context.Context, id uuid.UUID) (*AIInterview, error)
	GetCandidateInterview(ctx context.Context, candidateID uuid.UUID) (*AIInterview, error)
	MarkReviewed(ctx context.Context, id uuid.UUID) (*AIInterview, error)
	SweepExpired(ctx context.Context) (int64, error)
}
