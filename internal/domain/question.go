package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Question set bounds
const (
	MinInterviewQuestions = 6
	MaxInterviewQuestions = 10
)

// Pre-generated question set status
const (
	PregenStatusPending    = "pending"
	PregenStatusGenerating = "generating"
	PregenStatusReady      = "ready"
	PregenStatusFailed     = "failed"
	PregenStatusUsed       = "used"
)

type Question struct {
	ID            string   `json:"id"`
	Category      string   `json:"category"`   // technical, behavioral, system_design, problem_solving, culture
	Difficulty    string   `json:"difficulty"` // easy, medium, hard
	Question      string   `json:"question"`
	Context       string   `json:"context,omitempty"`
	ScoringRubric []string `json:"scoring_rubric"`
	EstimatedTime int      `json:"estimated_time"` // minutes
}

type QuestionSet struct {
	Questions          []Question `json:"questions"`
	TotalEstimatedTime int        `json:"total_estimated_time"`
}

// Validate checks the set size and that every question is usable.
func (s *QuestionSet) Validate() error {
	if s == nil {
		return fmt.Errorf("question set is empty")
	}
	n := len(s.Questions)
	if n < MinInterviewQuestions || n > MaxInterviewQuestions {
		return fmt.Errorf("expected %d-%d questions, got %d", MinInterviewQuestions, MaxInterviewQuestions, n)
	}
	for i, q := range s.Questions {
		if q.Question == "" {
			return fmt.Errorf("question %d has no text", i+1)
		}
		if len(q.ScoringRubric) == 0 {
			return fmt.Errorf("question %d has no scoring rubric", i+1)
		}
	}
	return nil
}

// EstimatedMinutes returns TotalEstimatedTime, or the sum of per-question
// estimates when the oracle left it blank.
func (s *QuestionSet) EstimatedMinutes() int {
	if s.TotalEstimatedTime > 0 {
		return s.TotalEstimatedTime
	}
	total := 0
	for _, q := range s.Questions {
		total += q.EstimatedTime
	}
	return total
}

// PregeneratedQuestions is a question set computed in the background after
// scoring so that scheduling can skip generation.
type PregeneratedQuestions struct {
	ID                 uuid.UUID  `json:"id"`
	CandidateID        uuid.UUID  `json:"candidate_id"`
	JobID              uuid.UUID  `json:"job_id"`
	Status             string     `json:"status"`
	Questions          []Question `json:"questions"`
	TotalQuestions     int        `json:"total_questions"`
	TotalEstimatedTime int        `json:"total_estimated_time"`
	ErrorMessage       *string    `json:"error_message,omitempty"`
	GeneratedAt        *time.Time `json:"generated_at,omitempty"`
	UsedAt             *time.Time `json:"used_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// IsStale reports whether a ready set should no longer be consumed.
func (p *PregeneratedQuestions) IsStale(now time.Time, maxAge time.Duration, jobUpdatedAt time.Time) bool {
	generated := p.CreatedAt
	if p.GeneratedAt != nil {
		generated = *p.GeneratedAt
	}
	if maxAge > 0 && now.Sub(generated) > maxAge {
		return true
	}
	return jobUpdatedAt.After(generated)
}

type QuestionRepository interface {
	CreatePending(ctx context.Context, candidateID, jobID uuid.UUID) (*PregeneratedQuestions, error)
	MarkGenerating(ctx context.Context, id uuid.UUID) error
	MarkReady(ctx context.Context, id uuid.UUID, set *QuestionSet) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	// GetLatestReady returns ErrNotFound when no ready set exists for the pair.
	GetLatestReady(ctx context.Context, candidateID, jobID uuid.UUID) (*PregeneratedQuestions, error)
}

// QuestionPregenerator queues background question generation.
type QuestionPregenerator interface {
	// Enqueue never blocks; false means the request was dropped.
	Enqueue(candidateID, jobID uuid.UUID) bool
}
