package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Candidate is a person in a job's pipeline. Persisted and served in snake_case;
// see CandidateView for the camelCase shape.
type Candidate struct {
	ID           uuid.UUID `json:"id"`
	JobID        uuid.UUID `json:"job_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	Location     *string   `json:"location,omitempty"`
	GitHubURL    *string   `json:"github_url,omitempty"`
	LinkedInURL  *string   `json:"linkedin_url,omitempty"`
	PortfolioURL *string   `json:"portfolio_url,omitempty"`
	ResumeURL    *string   `json:"resume_url,omitempty"`
	ResumeText   *string   `json:"resume_text,omitempty"`
	CoverLetter  *string   `json:"cover_letter,omitempty"`
	Skills       []string  `json:"skills"`
	Source       string    `json:"source"`

	// Enriched from the external profile fetch
	AvatarURL       *string `json:"avatar_url,omitempty"`
	YearsExperience *int    `json:"years_experience,omitempty"`

	// AI scoring. AIScore nil means "not yet scored"; 0 with a summary means
	// scoring ran but had insufficient data.
	AIScore          *int            `json:"ai_score"`
	AISummary        *string         `json:"ai_summary,omitempty"`
	AIStrengths      []string        `json:"ai_strengths"`
	AIConcerns       []string        `json:"ai_concerns"`
	AIScoreBreakdown *ScoreBreakdown `json:"ai_score_breakdown,omitempty"`
	AIRecommendation *string         `json:"ai_recommendation,omitempty"`
	ExtractedSkills  []string        `json:"extracted_skills"`
	ScoredAt         *time.Time      `json:"scored_at,omitempty"`

	Stage           Stage     `json:"stage"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	IsStarred       bool      `json:"is_starred"`
	IsArchived      bool      `json:"is_archived"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FullName joins first and last name.
func (c *Candidate) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// CreateCandidateInput is the payload for manual add or application.
type CreateCandidateInput struct {
	FirstName    string   `json:"first_name" binding:"required,max=100,valid_name"`
	LastName     string   `json:"last_name" binding:"max=100,valid_name"`
	Email        string   `json:"email" binding:"required,email"`
	Phone        *string  `json:"phone" binding:"omitempty,max=40,valid_phone"`
	Location     *string  `json:"location" binding:"omitempty,max=120"`
	GitHubURL    *string  `json:"github_url" binding:"omitempty,url"`
	LinkedInURL  *string  `json:"linkedin_url" binding:"omitempty,url"`
	PortfolioURL *string  `json:"portfolio_url" binding:"omitempty,url"`
	ResumeURL    *string  `json:"resume_url" binding:"omitempty,url"`
	ResumeText   *string  `json:"resume_text" binding:"omitempty,max=100000"`
	CoverLetter  *string  `json:"cover_letter" binding:"omitempty,max=20000"`
	Skills       []string `json:"skills"`
	Source       string   `json:"source" binding:"omitempty,oneof=applied manual referral sourced"`
}

// CandidateUpdate is a partial update; nil fields are left unchanged and
// updated_at is always bumped.
type CandidateUpdate struct {
	AIScore          *int
	AISummary        *string
	AIStrengths      *[]string
	AIConcerns       *[]string
	AIScoreBreakdown *ScoreBreakdown
	AIRecommendation *string
	ExtractedSkills  *[]string
	ScoredAt         *time.Time
	AvatarURL        *string
	YearsExperience  *int
	IsStarred        *bool
	IsArchived       *bool
}

// IsEmpty reports whether the update would only touch updated_at.
func (u CandidateUpdate) IsEmpty() bool {
	return u == CandidateUpdate{}
}

// StageChange is a single persisted stage transition.
type StageChange struct {
	From            Stage
	To              Stage
	RejectionReason *string
	Actor           string
}

// CandidateFilter narrows candidate listings. It doubles as the list cache key,
// so every field must be comparable and canonical.
type CandidateFilter struct {
	JobID    *uuid.UUID `json:"job_id,omitempty"`
	Stage    Stage      `json:"stage,omitempty"`
	Starred  *bool      `json:"starred,omitempty"`
	Archived *bool      `json:"archived,omitempty"`
	Search   string     `json:"search,omitempty"`
	MinScore *int       `json:"min_score,omitempty"`
	Sort     string     `json:"sort,omitempty"` // newest, oldest, score
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// Matches reports whether c would be returned by a query with this filter,
// ignoring pagination and free-text search.
func (f CandidateFilter) Matches(c *Candidate) bool {
	if f.JobID != nil && *f.JobID != c.JobID {
		return false
	}
	if f.Stage != "" && f.Stage != c.Stage {
		return false
	}
	if f.Starred != nil && *f.Starred != c.IsStarred {
		return false
	}
	if f.Archived != nil && *f.Archived != c.IsArchived {
		return false
	}
	if f.MinScore != nil && (c.AIScore == nil || *c.AIScore < *f.MinScore) {
		return false
	}
	return true
}

// StageChangeOptions carries the side data required by some target stages.
type StageChangeOptions struct {
	RejectionReason string `json:"rejection_reason"`
}

// CandidateCreated is returned by candidate creation: the candidate always
// exists, scoring may have failed.
type CandidateCreated struct {
	Candidate *Candidate     `json:"candidate"`
	Scoring   *ScoringResult `json:"scoring"`
}

type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (*Candidate, error)
	Fetch(ctx context.Context, filter CandidateFilter) ([]Candidate, int64, error)
	Update(ctx context.Context, id uuid.UUID, upd CandidateUpdate) (*Candidate, error)
	// ChangeStage persists the new stage and the matching activity entry.
	ChangeStage(ctx context.Context, id uuid.UUID, change StageChange) (*Candidate, error)
}

type PipelineUsecase interface {
	GetCandidate(ctx context.Context, id uuid.UUID) (*Candidate, error)
	ListCandidates(ctx context.Context, filter CandidateFilter) (*PaginatedResult[Candidate], error)
	MoveCandidate(ctx context.Context, id uuid.UUID, target Stage, opts StageChangeOptions) (*Candidate, error)
	AdvanceCandidate(ctx context.Context, id uuid.UUID) (*Candidate, error)
	StarCandidate(ctx context.Context, id uuid.UUID, starred bool) (*Candidate, error)
	ArchiveCandidate(ctx context.Context, id uuid.UUID, archived bool) (*Candidate, error)
	ListActivities(ctx context.Context, candidateID uuid.UUID) ([]Activity, error)
	// InvalidateCandidate marks cached views containing the candidate stale
	// after a write made outside the pipeline (scoring, scheduling).
	InvalidateCandidate(id uuid.UUID)
}

type ScoringUsecase interface {
	CreateCandidate(ctx context.Context, jobID uuid.UUID, input CreateCandidateInput) (*CandidateCreated, error)
	ScoreCandidate(ctx context.Context, id uuid.UUID) (*ScoringResult, error)
}
