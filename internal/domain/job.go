package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job lifecycle status
const (
	JobStatusDraft  = "draft"
	JobStatusActive = "active"
	JobStatusPaused = "paused"
	JobStatusClosed = "closed"
)

// Job levels
const (
	JobLevelJunior    = "junior"
	JobLevelMid       = "mid"
	JobLevelSenior    = "senior"
	JobLevelLead      = "lead"
	JobLevelPrincipal = "principal"
)

type Job struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Department         *string   `json:"department,omitempty"`
	Location           *string   `json:"location,omitempty"`
	Level              string    `json:"level"`
	RequiredSkills     []string  `json:"required_skills"`
	NiceToHaveSkills   []string  `json:"nice_to_have_skills"`
	Status             string    `json:"status"`
	IsArchived         bool      `json:"is_archived"`
	CreatedBy          *string   `json:"created_by,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	ApplicantCount     int       `json:"applicant_count"`
	ActiveCandidateCnt int       `json:"active_candidate_count"`
}

// IsValidJobStatus reports whether status is one of the lifecycle values.
func IsValidJobStatus(status string) bool {
	switch status {
	case JobStatusDraft, JobStatusActive, JobStatusPaused, JobStatusClosed:
		return true
	}
	return false
}

// JobFilter narrows job listings. Nil pointers mean "any".
type JobFilter struct {
	Status   string `json:"status,omitempty"`
	Archived *bool  `json:"archived,omitempty"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// JobUpdate carries a partial job edit; nil fields are left unchanged.
type JobUpdate struct {
	Title            *string   `json:"title" binding:"omitempty,min=2,max=200"`
	Description      *string   `json:"description" binding:"omitempty,max=20000"`
	Department       *string   `json:"department" binding:"omitempty,max=120"`
	Location         *string   `json:"location" binding:"omitempty,max=120"`
	Level            *string   `json:"level" binding:"omitempty,oneof=junior mid senior lead principal"`
	RequiredSkills   *[]string `json:"required_skills"`
	NiceToHaveSkills *[]string `json:"nice_to_have_skills"`
	Status           *string   `json:"status" binding:"omitempty,oneof=draft active paused closed"`
	IsArchived       *bool     `json:"-"`
}

// PaginatedResult is a generic paginated response wrapper
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter) ([]Job, int64, error)
	Update(ctx context.Context, id uuid.UUID, upd JobUpdate) (*Job, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, input CreateJobInput) (*Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter) (*PaginatedResult[Job], error)
	UpdateJob(ctx context.Context, id uuid.UUID, upd JobUpdate) (*Job, error)
	ArchiveJob(ctx context.Context, id uuid.UUID) (*Job, error)
	UnarchiveJob(ctx context.Context, id uuid.UUID) (*Job, error)
	ExportPipeline(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	// StorePipelineExport uploads the export and returns a short-lived download link.
	StorePipelineExport(ctx context.Context, id uuid.UUID) (*ExportLink, error)
}

// CreateJobInput is the payload for posting a job.
type CreateJobInput struct {
	Title            string   `json:"title" binding:"required,min=2,max=200"`
	Description      string   `json:"description" binding:"max=20000"`
	Department       *string  `json:"department" binding:"omitempty,max=120"`
	Location         *string  `json:"location" binding:"omitempty,max=120"`
	Level            string   `json:"level" binding:"omitempty,oneof=junior mid senior lead principal"`
	RequiredSkills   []string `json:"required_skills"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`
	Status           string   `json:"status" binding:"omitempty,oneof=draft active paused closed"`
}

// ExportLink points at an uploaded export.
type ExportLink struct {
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExportStore uploads generated files and returns a presigned URL.
type ExportStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte, ttl time.Duration) (string, error)
}
