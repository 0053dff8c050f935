package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Activity types
const (
	ActivityStageChanged         = "stage_changed"
	ActivityScored               = "ai_scored"
	ActivityStarred              = "starred"
	ActivityUnstarred            = "unstarred"
	ActivityArchived             = "archived"
	ActivityUnarchived           = "unarchived"
	ActivityInterviewScheduled   = "interview_scheduled"
	ActivityInterviewRescheduled = "interview_rescheduled"
	ActivityInterviewCancelled   = "interview_cancelled"
)

// Activity is one entry in a candidate's audit trail.
type Activity struct {
	ID          uuid.UUID      `json:"id"`
	CandidateID uuid.UUID      `json:"candidate_id"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	OldValue    *string        `json:"old_value,omitempty"`
	NewValue    *string        `json:"new_value,omitempty"`
	Actor       string         `json:"actor"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type ActivityRepository interface {
	Create(ctx context.Context, a *Activity) error
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Activity, error)
}
