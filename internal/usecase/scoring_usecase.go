package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
	"github.com/zordhalo/lontario-YC-sub000/pkg/logger"
)

// CandidateInvalidator marks cached candidate views stale.
type CandidateInvalidator interface {
	InvalidateCandidate(id uuid.UUID)
}

type scoringUsecase struct {
	candidateRepo domain.CandidateRepository
	jobRepo       domain.JobRepository
	activityRepo  domain.ActivityRepository
	oracle        domain.ScoringOracle
	profiles      domain.ProfileFetcher
	pregen        domain.QuestionPregenerator
	views         CandidateInvalidator
	now           func() time.Time
}

// NewScoringUsecase wires the scoring orchestrator. pregen and views may be nil.
func NewScoringUsecase(
	candidateRepo domain.CandidateRepository,
	jobRepo domain.JobRepository,
	activityRepo domain.ActivityRepository,
	oracle domain.ScoringOracle,
	profiles domain.ProfileFetcher,
	pregen domain.QuestionPregenerator,
	views CandidateInvalidator,
) domain.ScoringUsecase {
	return &scoringUsecase{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		activityRepo:  activityRepo,
		oracle:        oracle,
		profiles:      profiles,
		pregen:        pregen,
		views:         views,
		now:           time.Now,
	}
}

// CreateCandidate persists the candidate and then scores it. The candidate is
// returned even when scoring fails; the failure is described in Scoring.
func (u *scoringUsecase) CreateCandidate(ctx context.Context, jobID uuid.UUID, input domain.CreateCandidateInput) (*domain.CandidateCreated, error) {
	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, notFound(err, jobNotFoundMsg)
	}

	source := input.Source
	if source == "" {
		source = "applied"
	}
	c := &domain.Candidate{
		JobID:        jobID,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        input.Phone,
		Location:     input.Location,
		GitHubURL:    input.GitHubURL,
		LinkedInURL:  input.LinkedInURL,
		PortfolioURL: input.PortfolioURL,
		ResumeURL:    input.ResumeURL,
		ResumeText:   input.ResumeText,
		CoverLetter:  input.CoverLetter,
		Skills:       cleanSkills(input.Skills),
		Source:       source,
		Stage:        domain.StageApplied,
	}
	if c.FirstName == "" {
		return nil, apperror.Validation("First name is required")
	}
	if err := u.candidateRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.Log.Info("Candidate created", "candidate_id", c.ID, "job_id", jobID)

	result := u.score(ctx, c.ID)

	// Reload so the response carries whatever scoring persisted.
	if fresh, err := u.candidateRepo.GetByID(ctx, c.ID); err == nil {
		c = fresh
	} else {
		logger.Log.Warn("Failed to reload candidate after scoring", "candidate_id", c.ID, "error", err)
	}
	return &domain.CandidateCreated{Candidate: c, Scoring: result}, nil
}

// ScoreCandidate re-runs scoring. Only a missing candidate is an error; every
// other failure is reported in the result.
func (u *scoringUsecase) ScoreCandidate(ctx context.Context, id uuid.UUID) (*domain.ScoringResult, error) {
	if _, err := u.candidateRepo.GetByID(ctx, id); err != nil {
		return nil, notFound(err, candidateNotFoundMsg)
	}
	return u.score(ctx, id), nil
}

func (u *scoringUsecase) score(ctx context.Context, id uuid.UUID) *domain.ScoringResult {
	if u.views != nil {
		defer u.views.InvalidateCandidate(id)
	}

	c, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return failure(notFound(err, candidateNotFoundMsg))
	}
	job, err := u.jobRepo.GetByID(ctx, c.JobID)
	if err != nil {
		logger.Log.Warn("Scoring aborted, job missing", "candidate_id", id, "job_id", c.JobID, "error", err)
		return failure(notFound(err, jobNotFoundMsg))
	}

	// Profile enrichment is best effort.
	var profile *domain.ExternalProfile
	if c.GitHubURL != nil && strings.TrimSpace(*c.GitHubURL) != "" && u.profiles != nil {
		profile, err = u.profiles.FetchProfile(ctx, *c.GitHubURL)
		if err != nil {
			logger.Log.Warn("Profile fetch failed, scoring with local data", "candidate_id", id, "error", err)
			profile = nil
		}
	}

	enrich := domain.CandidateUpdate{}
	yearsExperience := c.YearsExperience
	if profile != nil {
		if profile.AvatarURL != "" {
			enrich.AvatarURL = &profile.AvatarURL
		}
		if profile.YearsExperience != nil {
			enrich.YearsExperience = profile.YearsExperience
			yearsExperience = profile.YearsExperience
		}
	}

	text := scoringText(c, profile)
	textLength := utf8.RuneCountInString(text)
	if textLength < domain.MinScoringTextLength {
		zero := 0
		summary := domain.InsufficientDataSummary
		concerns := []string{domain.InsufficientDataConcern}
		empty := []string{}
		scoredAt := u.now()
		enrich.AIScore = &zero
		enrich.AISummary = &summary
		enrich.AIConcerns = &concerns
		enrich.AIStrengths = &empty
		enrich.ScoredAt = &scoredAt
		if _, err := u.candidateRepo.Update(ctx, id, enrich); err != nil {
			return failure(err)
		}
		logger.Log.Info("Insufficient data for scoring", "candidate_id", id, "text_length", textLength)
		u.recordScored(ctx, id, 0, domain.ScoringOutcomeInsufficientData)
		return &domain.ScoringResult{
			Success:        true,
			Outcome:        domain.ScoringOutcomeInsufficientData,
			Score:          &zero,
			Message:        "0% - add more profile info",
			ProfileFetched: profile != nil,
		}
	}

	skills := c.Skills
	if profile != nil {
		skills = mergeSkills(skills, profile.Skills)
	}
	match, err := u.oracle.ScoreCandidate(ctx,
		domain.CandidateData{Name: c.FullName(), Skills: skills, YearsExperience: yearsExperience, ResumeText: text},
		jobData(job))
	if err != nil {
		// Touch updated_at and keep any enrichment; ai_score stays null.
		if _, uerr := u.candidateRepo.Update(ctx, id, enrich); uerr != nil {
			logger.Log.Warn("Failed to touch candidate after scoring failure", "candidate_id", id, "error", uerr)
		}
		classified := classifyOracleError(err)
		logger.Log.Warn("Scoring failed", "candidate_id", id, "kind", apperror.KindOf(classified), "error", err)
		res := failure(classified)
		res.ProfileFetched = profile != nil
		return res
	}

	extracted := mergeSkills(match.SkillsAnalysis.Matched, match.SkillsAnalysis.Bonus)
	scoredAt := u.now()
	enrich.AIScore = &match.OverallScore
	enrich.AISummary = &match.Summary
	enrich.AIStrengths = &match.Strengths
	enrich.AIConcerns = &match.Concerns
	enrich.AIScoreBreakdown = &match.Breakdown
	enrich.AIRecommendation = &match.Recommendation
	enrich.ExtractedSkills = &extracted
	enrich.ScoredAt = &scoredAt
	if _, err := u.candidateRepo.Update(ctx, id, enrich); err != nil {
		return failure(err)
	}

	logger.Log.Info("Candidate scored", "candidate_id", id, "score", match.OverallScore, "recommendation", match.Recommendation)
	u.recordScored(ctx, id, match.OverallScore, domain.ScoringOutcomeScored)

	if u.pregen != nil && !u.pregen.Enqueue(id, c.JobID) {
		logger.Log.Warn("Question pre-generation not queued", "candidate_id", id)
	}

	score := match.OverallScore
	return &domain.ScoringResult{
		Success:        true,
		Outcome:        domain.ScoringOutcomeScored,
		Score:          &score,
		ProfileFetched: profile != nil,
	}
}

func (u *scoringUsecase) recordScored(ctx context.Context, id uuid.UUID, score int, outcome string) {
	value := fmt.Sprintf("%d", score)
	recordActivity(ctx, u.activityRepo, &domain.Activity{
		CandidateID: id,
		Type:        domain.ActivityScored,
		Description: fmt.Sprintf("AI score %d (%s)", score, outcome),
		NewValue:    &value,
		Actor:       domain.SystemActor,
	})
}

// scoringText joins resume, cover letter and fetched profile text.
func scoringText(c *domain.Candidate, profile *domain.ExternalProfile) string {
	var parts []string
	if c.ResumeText != nil && strings.TrimSpace(*c.ResumeText) != "" {
		parts = append(parts, strings.TrimSpace(*c.ResumeText))
	}
	if c.CoverLetter != nil && strings.TrimSpace(*c.CoverLetter) != "" {
		parts = append(parts, strings.TrimSpace(*c.CoverLetter))
	}
	if t := profile.Text(); t != "" {
		parts = append(parts, t)
	}
	return strings.Join(parts, "\n\n")
}

// classifyOracleError keeps configuration and rate-limit errors and folds
// everything else into an integration error.
func classifyOracleError(err error) error {
	switch apperror.KindOf(err) {
	case apperror.KindConfiguration, apperror.KindRateLimit, apperror.KindIntegration:
		return err
	}
	return apperror.Integration("AI service request failed", err)
}

func failure(err error) *domain.ScoringResult {
	return &domain.ScoringResult{
		Success:   false,
		Outcome:   domain.ScoringOutcomeFailed,
		ErrorKind: apperror.KindOf(err),
		Message:   err.Error(),
	}
}

// mergeSkills concatenates lists, dropping case-insensitive duplicates.
func mergeSkills(lists ...[]string) []string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	return cleanSkills(all)
}
