package oracle

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
)

const (
	maxSummaryLength = 500
	maxListItems     = 5
)

const scoringSystemPrompt = "You are an expert technical recruiter. Evaluate candidates objectively against the job requirements. Return only valid JSON."

func buildScoringPrompt(candidate domain.CandidateData, job domain.JobData) string {
	years := "unknown"
	if candidate.YearsExperience != nil {
		years = fmt.Sprintf("%d", *candidate.YearsExperience)
	}

	var b strings.Builder
	b.WriteString("JOB\n")
	fmt.Fprintf(&b, "Title: %s\nLevel: %s\n", job.Title, job.Level)
	fmt.Fprintf(&b, "Required skills: %s\n", strings.Join(job.RequiredSkills, ", "))
	fmt.Fprintf(&b, "Nice-to-have skills: %s\n", strings.Join(job.NiceToHaveSkills, ", "))
	fmt.Fprintf(&b, "Description:\n%s\n\n", job.Description)

	b.WriteString("CANDIDATE\n")
	fmt.Fprintf(&b, "Name: %s\nYears of experience: %s\n", candidate.Name, years)
	fmt.Fprintf(&b, "Listed skills: %s\n", strings.Join(candidate.Skills, ", "))
	fmt.Fprintf(&b, "Profile text:\n\"\"\"\n%s\n\"\"\"\n\n", candidate.ResumeText)

	b.WriteString(`Score the candidate from 0 to 100. Required skills weigh more than nice-to-have skills.
Return JSON with this exact structure:
{
  "overall_score": 0,
  "breakdown": {"skills_match": 0, "experience_match": 0, "education_match": 0, "keywords_match": 0},
  "skills_analysis": {"matched": [], "missing": [], "bonus": []},
  "summary": "at most 500 characters",
  "strengths": ["at most 5"],
  "concerns": ["at most 5"],
  "recommendation": "strong_yes|yes|maybe|no|strong_no",
  "reasoning": "short explanation"
}`)
	return b.String()
}

// scoreReply mirrors domain.MatchScore with numeric fields as float64;
// models regularly answer 82.5 where an integer was asked for.
type scoreReply struct {
	OverallScore float64 `json:"overall_score"`
	Breakdown    struct {
		SkillsMatch     float64 `json:"skills_match"`
		ExperienceMatch float64 `json:"experience_match"`
		EducationMatch  float64 `json:"education_match"`
		KeywordsMatch   float64 `json:"keywords_match"`
	} `json:"breakdown"`
	SkillsAnalysis domain.SkillsAnalysis `json:"skills_analysis"`
	Summary        string                `json:"summary"`
	Strengths      []string              `json:"strengths"`
	Concerns       []string              `json:"concerns"`
	Recommendation string                `json:"recommendation"`
	Reasoning      string                `json:"reasoning"`
}

func (r scoreReply) toMatchScore() *domain.MatchScore {
	return &domain.MatchScore{
		OverallScore: clamp(r.OverallScore),
		Breakdown: domain.ScoreBreakdown{
			SkillsMatch:     clamp(r.Breakdown.SkillsMatch),
			ExperienceMatch: clamp(r.Breakdown.ExperienceMatch),
			EducationMatch:  clamp(r.Breakdown.EducationMatch),
			KeywordsMatch:   clamp(r.Breakdown.KeywordsMatch),
		},
		SkillsAnalysis: r.SkillsAnalysis,
		Summary:        r.Summary,
		Strengths:      r.Strengths,
		Concerns:       r.Concerns,
		Recommendation: r.Recommendation,
		Reasoning:      r.Reasoning,
	}
}

// ScoreCandidate asks the model for a MatchScore and normalizes it to the documented bounds.
func (c *Client) ScoreCandidate(ctx context.Context, candidate domain.CandidateData, job domain.JobData) (*domain.MatchScore, error) {
	var reply scoreReply
	if err := c.completeJSON(ctx, scoringSystemPrompt, buildScoringPrompt(candidate, job), 0.2, &reply); err != nil {
		return nil, err
	}
	score := reply.toMatchScore()
	normalizeScore(score)
	return score, nil
}

func normalizeScore(s *domain.MatchScore) {
	s.Summary = truncateRunes(s.Summary, maxSummaryLength)
	if len(s.Strengths) > maxListItems {
		s.Strengths = s.Strengths[:maxListItems]
	}
	if len(s.Concerns) > maxListItems {
		s.Concerns = s.Concerns[:maxListItems]
	}

	switch s.Recommendation {
	case domain.RecommendStrongYes, domain.RecommendYes, domain.RecommendMaybe, domain.RecommendNo, domain.RecommendStrongNo:
	default:
		s.Recommendation = domain.RecommendMaybe
	}
}

func clamp(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

// truncateRunes cuts s to at most n characters without splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
