package domain

import (
	"time"

	"github.com/google/uuid"
)

// Case selects the response field naming.
const (
	CaseSnake = "snake"
	CaseCamel = "camel"
)

// CandidateView is the camelCase shape of a Candidate served to UI clients.
type CandidateView struct {
	ID               uuid.UUID       `json:"id"`
	JobID            uuid.UUID       `json:"jobId"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Phone            *string         `json:"phone,omitempty"`
	Location         *string         `json:"location,omitempty"`
	GitHubURL        *string         `json:"githubUrl,omitempty"`
	LinkedInURL      *string         `json:"linkedinUrl,omitempty"`
	PortfolioURL     *string         `json:"portfolioUrl,omitempty"`
	ResumeURL        *string         `json:"resumeUrl,omitempty"`
	ResumeText       *string         `json:"resumeText,omitempty"`
	CoverLetter      *string         `json:"coverLetter,omitempty"`
	Skills           []string        `json:"skills"`
	Source           string          `json:"source"`
	AvatarURL        *string         `json:"avatarUrl,omitempty"`
	YearsExperience  *int            `json:"yearsExperience,omitempty"`
	AIScore          *int            `json:"aiScore"`
	AISummary        *string         `json:"aiSummary,omitempty"`
	AIStrengths      []string        `json:"aiStrengths"`
	AIConcerns       []string        `json:"aiConcerns"`
	AIScoreBreakdown *ScoreBreakdown `json:"aiScoreBreakdown,omitempty"`
	AIRecommendation *string         `json:"aiRecommendation,omitempty"`
	ExtractedSkills  []string        `json:"extractedSkills"`
	ScoredAt         *time.Time      `json:"scoredAt,omitempty"`
	Stage            Stage           `json:"stage"`
	RejectionReason  *string         `json:"rejectionReason,omitempty"`
	IsStarred        bool            `json:"isStarred"`
	IsArchived       bool            `json:"isArchived"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// NormalizeCandidate is the single snake_case -> camelCase mapping for candidates.
func NormalizeCandidate(c *Candidate) CandidateView {
	return CandidateView{
		ID:               c.ID,
		JobID:            c.JobID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Name:             c.FullName(),
		Email:            c.Email,
		Phone:            c.Phone,
		Location:         c.Location,
		GitHubURL:        c.GitHubURL,
		LinkedInURL:      c.LinkedInURL,
		PortfolioURL:     c.PortfolioURL,
		ResumeURL:        c.ResumeURL,
		ResumeText:       c.ResumeText,
		CoverLetter:      c.CoverLetter,
		Skills:           nonNil(c.Skills),
		Source:           c.Source,
		AvatarURL:        c.AvatarURL,
		YearsExperience:  c.YearsExperience,
		AIScore:          c.AIScore,
		AISummary:        c.AISummary,
		AIStrengths:      nonNil(c.AIStrengths),
		AIConcerns:       nonNil(c.AIConcerns),
		AIScoreBreakdown: c.AIScoreBreakdown,
		AIRecommendation: c.AIRecommendation,
		ExtractedSkills:  nonNil(c.ExtractedSkills),
		ScoredAt:         c.ScoredAt,
		Stage:            c.Stage,
		RejectionReason:  c.RejectionReason,
		IsStarred:        c.IsStarred,
		IsArchived:       c.IsArchived,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// Denormalize maps the view back to the persisted shape.
func (v CandidateView) Denormalize() Candidate {
	return Candidate{
		ID:               v.ID,
		JobID:            v.JobID,
		FirstName:        v.FirstName,
		LastName:         v.LastName,
		Email:            v.Email,
		Phone:            v.Phone,
		Location:         v.Location,
		GitHubURL:        v.GitHubURL,
		LinkedInURL:      v.LinkedInURL,
		PortfolioURL:     v.PortfolioURL,
		ResumeURL:        v.ResumeURL,
		ResumeText:       v.ResumeText,
		CoverLetter:      v.CoverLetter,
		Skills:           v.Skills,
		Source:           v.Source,
		AvatarURL:        v.AvatarURL,
		YearsExperience:  v.YearsExperience,
		AIScore:          v.AIScore,
		AISummary:        v.AISummary,
		AIStrengths:      v.AIStrengths,
		AIConcerns:       v.AIConcerns,
		AIScoreBreakdown: v.AIScoreBreakdown,
		AIRecommendation: v.AIRecommendation,
		ExtractedSkills:  v.ExtractedSkills,
		ScoredAt:         v.ScoredAt,
		Stage:            v.Stage,
		RejectionReason:  v.RejectionReason,
		IsStarred:        v.IsStarred,
		IsArchived:       v.IsArchived,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

type JobView struct {
	ID                   uuid.UUID `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Department           *string   `json:"department,omitempty"`
	Location             *string   `json:"location,omitempty"`
	Level                string    `json:"level"`
	RequiredSkills       []string  `json:"requiredSkills"`
	NiceToHaveSkills     []string  `json:"niceToHaveSkills"`
	Status               string    `json:"status"`
	IsArchived           bool      `json:"isArchived"`
	CreatedBy            *string   `json:"createdBy,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
	ApplicantCount       int       `json:"applicantCount"`
	ActiveCandidateCount int       `json:"activeCandidateCount"`
}

func NormalizeJob(j *Job) JobView {
	return JobView{
		ID:                   j.ID,
		Title:                j.Title,
		Description:          j.Description,
		Department:           j.Department,
		Location:             j.Location,
		Level:                j.Level,
		RequiredSkills:       nonNil(j.RequiredSkills),
		NiceToHaveSkills:     nonNil(j.NiceToHaveSkills),
		Status:               j.Status,
		IsArchived:           j.IsArchived,
		CreatedBy:            j.CreatedBy,
		CreatedAt:            j.CreatedAt,
		UpdatedAt:            j.UpdatedAt,
		ApplicantCount:       j.ApplicantCount,
		ActiveCandidateCount: j.ActiveCandidateCnt,
	}
}

func (v JobView) Denormalize() Job {
	return Job{
		ID:                 v.ID,
		Title:              v.Title,
		Description:        v.Description,
		Department:         v.Department,
		Location:           v.Location,
		Level:              v.Level,
		RequiredSkills:     v.RequiredSkills,
		NiceToHaveSkills:   v.NiceToHaveSkills,
		Status:             v.Status,
		IsArchived:         v.IsArchived,
		CreatedBy:          v.CreatedBy,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
		ApplicantCount:     v.ApplicantCount,
		ActiveCandidateCnt: v.ActiveCandidateCount,
	}
}

type InterviewView struct {
	ID                 uuid.UUID       `json:"id"`
	CandidateID        uuid.UUID       `json:"candidateId"`
	JobID              uuid.UUID       `json:"jobId"`
	Status             InterviewStatus `json:"status"`
	ScheduledAt        time.Time       `json:"scheduledAt"`
	DurationMinutes    int             `json:"durationMinutes"`
	CandidateTimezone  *string         `json:"candidateTimezone,omitempty"`
	CustomMessage      *string         `json:"customMessage,omitempty"`
	AccessToken        string          `json:"accessToken"`
	InterviewLink      string          `json:"interviewLink"`
	ExpiresAt          time.Time       `json:"expiresAt"`
	Questions          []Question      `json:"questions"`
	TotalQuestions     int             `json:"totalQuestions"`
	TotalEstimatedTime int             `json:"totalEstimatedTime"`
	PregeneratedID     *uuid.UUID      `json:"pregeneratedId,omitempty"`
	OverallScore       *int            `json:"overallScore"`
	Recommendation     *string         `json:"recommendation"`
	InviteSentAt       *time.Time      `json:"inviteSentAt,omitempty"`
	StartedAt          *time.Time      `json:"startedAt,omitempty"`
	CompletedAt        *time.Time      `json:"completedAt,omitempty"`
	ReviewedAt         *time.Time      `json:"reviewedAt,omitempty"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	CancelReason       *string         `json:"cancelReason,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func NormalizeInterview(i *AIInterview) InterviewView {
	return InterviewView{
		ID:                 i.ID,
		CandidateID:        i.CandidateID,
		JobID:              i.JobID,
		Status:             i.Status,
		ScheduledAt:        i.ScheduledAt,
		DurationMinutes:    i.DurationMinutes,
		CandidateTimezone:  i.CandidateTimezone,
		CustomMessage:      i.CustomMessage,
		AccessToken:        i.AccessToken,
		InterviewLink:      i.InterviewLink,
		ExpiresAt:          i.ExpiresAt,
		Questions:          i.Questions,
		TotalQuestions:     i.TotalQuestions,
		TotalEstimatedTime: i.TotalEstimatedTime,
		PregeneratedID:     i.PregeneratedID,
		OverallScore:       i.OverallScore,
		Recommendation:     i.Recommendation,
		InviteSentAt:       i.InviteSentAt,
		StartedAt:          i.StartedAt,
		CompletedAt:        i.CompletedAt,
		ReviewedAt:         i.ReviewedAt,
		CancelledAt:        i.CancelledAt,
		CancelReason:       i.CancelReason,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}

func (v InterviewView) Denormalize() AIInterview {
	return AIInterview{
		ID:                 v.ID,
		CandidateID:        v.CandidateID,
		JobID:              v.JobID,
		Status:             v.Status,
		ScheduledAt:        v.ScheduledAt,
		DurationMinutes:    v.DurationMinutes,
		CandidateTimezone:  v.CandidateTimezone,
		CustomMessage:      v.CustomMessage,
		AccessToken:        v.AccessToken,
		InterviewLink:      v.InterviewLink,
		ExpiresAt:          v.ExpiresAt,
		Questions:          v.Questions,
		TotalQuestions:     v.TotalQuestions,
		TotalEstimatedTime: v.TotalEstimatedTime,
		PregeneratedID:     v.PregeneratedID,
		OverallScore:       v.OverallScore,
		Recommendation:     v.Recommendation,
		InviteSentAt:       v.InviteSentAt,
		StartedAt:          v.StartedAt,
		CompletedAt:        v.CompletedAt,
		ReviewedAt:         v.ReviewedAt,
		CancelledAt:        v.CancelledAt,
		CancelReason:       v.CancelReason,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
