package domain

import (
	"context"
	"strings"

	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
)

// Recommendation values returned by the scoring oracle
const (
	RecommendStrongYes = "strong_yes"
	RecommendYes       = "yes"
	RecommendMaybe     = "maybe"
	RecommendNo        = "no"
	RecommendStrongNo  = "strong_no"
)

// MinScoringTextLength is the minimum combined profile text before the oracle is consulted.
const MinScoringTextLength = 50

const (
	InsufficientDataSummary = "Insufficient profile data to generate an AI assessment. Add a resume, cover letter or GitHub profile and re-run scoring."
	InsufficientDataConcern = "No resume or profile data available for analysis"
)

type ScoreBreakdown struct {
	SkillsMatch     int `json:"skills_match"`
	ExperienceMatch int `json:"experience_match"`
	EducationMatch  int `json:"education_match"`
	KeywordsMatch   int `json:"keywords_match"`
}

type SkillsAnalysis struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Bonus   []string `json:"bonus"`
}

// MatchScore is the oracle's assessment of a candidate against a job.
type MatchScore struct {
	OverallScore   int            `json:"overall_score"`
	Breakdown      ScoreBreakdown `json:"breakdown"`
	SkillsAnalysis SkillsAnalysis `json:"skills_analysis"`
	Summary        string         `json:"summary"`
	Strengths      []string       `json:"strengths"`
	Concerns       []string       `json:"concerns"`
	Recommendation string         `json:"recommendation"`
	Reasoning      string         `json:"reasoning"`
}

// CandidateData is the scoring input assembled from the candidate and its fetched profile.
type CandidateData struct {
	Name            string
	Skills          []string
	YearsExperience *int
	ResumeText      string
}

// JobData is the scoring input describing the job.
type JobData struct {
	Title            string
	Level            string
	Description      string
	RequiredSkills   []string
	NiceToHaveSkills []string
}

// ExternalProfile is public profile data fetched for a candidate (e.g. GitHub).
type ExternalProfile struct {
	Username        string   `json:"username"`
	Name            string   `json:"name"`
	Bio             string   `json:"bio"`
	AvatarURL       string   `json:"avatar_url"`
	Skills          []string `json:"skills"`
	YearsExperience *int     `json:"years_experience,omitempty"`
	PublicRepos     int      `json:"public_repos"`
	Highlights      []string `json:"highlights"`
}

// Text renders the profile as scoring input.
func (p *ExternalProfile) Text() string {
	if p == nil {
		return ""
	}
	var parts []string
	if p.Bio != "" {
		parts = append(parts, "GitHub bio: "+p.Bio)
	}
	if len(p.Skills) > 0 {
		parts = append(parts, "GitHub languages: "+strings.Join(p.Skills, ", "))
	}
	if len(p.Highlights) > 0 {
		parts = append(parts, "Notable repositories: "+strings.Join(p.Highlights, "; "))
	}
	return strings.Join(parts, "\n")
}

// ScoringOracle is the LLM-backed scoring and question generation service.
type ScoringOracle interface {
	ScoreCandidate(ctx context.Context, candidate CandidateData, job JobData) (*MatchScore, error)
	GenerateQuestions(ctx context.Context, job JobData, candidate CandidateData) (*QuestionSet, error)
}

// ProfileFetcher fetches public profile data from a profile URL.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, profileURL string) (*ExternalProfile, error)
}

// Scoring outcomes
const (
	ScoringOutcomeScored           = "scored"
	ScoringOutcomeInsufficientData = "insufficient_data"
	ScoringOutcomeFailed           = "failed"
)

// ScoringResult is the structured outcome of one scoring run. Failures are
// reported here instead of as errors so candidate creation is never blocked.
type ScoringResult struct {
	Success        bool          `json:"success"`
	Outcome        string        `json:"outcome"`
	Score          *int          `json:"score,omitempty"`
	ErrorKind      apperror.Kind `json:"error_kind,omitempty"`
	Message        string        `json:"message,omitempty"`
	ProfileFetched bool          `json:"profile_fetched"`
}
