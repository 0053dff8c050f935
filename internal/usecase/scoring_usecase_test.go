package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/internal/usecase"
	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
)

type scoringFixture struct {
	candidates *MockCandidateRepo
	jobs       *MockJobRepo
	activities *MockActivityRepo
	oracle     *MockOracle
	profiles   *MockProfileFetcher
	pregen     *MockPregenerator
	views      *MockInvalidator
	uc         domain.ScoringUsecase
}

func newScoringFixture() *scoringFixture {
	f := &scoringFixture{
		candidates: new(MockCandidateRepo),
		jobs:       new(MockJobRepo),
		activities: new(MockActivityRepo),
		oracle:     new(MockOracle),
		profiles:   new(MockProfileFetcher),
		pregen:     new(MockPregenerator),
		views:      new(MockInvalidator),
	}
	f.uc = usecase.NewScoringUsecase(f.candidates, f.jobs, f.activities, f.oracle, f.profiles, f.pregen, f.views)
	f.activities.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.views.On("InvalidateCandidate", mock.Anything).Return()
	return f
}

func TestCreateCandidateInsufficientData(t *testing.T) {
	f := newScoringFixture()
	job := newJob()
	id := uuid.New()
	stored := newCandidate(job.ID)
	stored.ID = id

	f.jobs.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	f.candidates.On("Create", mock.Anything, mock.AnythingOfType("*domain.Candidate")).Return(nil).Run(func(args mock.Arguments) {
		c := args.Get(1).(*domain.Candidate)
		assert.Equal(t, domain.StageApplied, c.Stage)
		assert.Equal(t, "ada@example.com", c.Email)
		c.ID = id
	})
	f.candidates.On("GetByID", mock.Anything, id).Return(stored, nil)
	f.candidates.On("Update", mock.Anything, id, mock.MatchedBy(func(upd domain.CandidateUpdate) bool {
		return upd.AIScore != nil && *upd.AIScore == 0 &&
			upd.AISummary != nil && *upd.AISummary == domain.InsufficientDataSummary &&
			upd.AIConcerns != nil && len(*upd.AIConcerns) == 1 && (*upd.AIConcerns)[0] == domain.InsufficientDataConcern
	})).Return(stored, nil)

	t.Run("Should persist a zero score without calling the oracle", func(t *testing.T) {
		res, err := f.uc.CreateCandidate(context.Background(), job.ID, domain.CreateCandidateInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     " Ada@Example.com ",
		})
		require.NoError(t, err)
		require.NotNil(t, res.Candidate)
		assert.True(t, res.Scoring.Success)
		assert.Equal(t, domain.ScoringOutcomeInsufficientData, res.Scoring.Outcome)
		require.NotNil(t, res.Scoring.Score)
		assert.Equal(t, 0, *res.Scoring.Score)

		f.oracle.AssertNotCalled(t, "ScoreCandidate", mock.Anything, mock.Anything, mock.Anything)
		f.pregen.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
		f.views.AssertCalled(t, "InvalidateCandidate", id)
		f.candidates.AssertExpectations(t)
	})
}

func TestCreateCandidateMissingJob(t *testing.T) {
	f := newScoringFixture()
	jobID := uuid.New()
	f.jobs.On("GetByID", mock.Anything, jobID).Return(nil, domain.ErrNotFound)

	t.Run("Should fail with not found before persisting", func(t *testing.T) {
		_, err := f.uc.CreateCandidate(context.Background(), jobID, domain.CreateCandidateInput{FirstName: "Ada", Email: "ada@example.com"})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
		f.candidates.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestScoreCandidateWithProfile(t *testing.T) {
	f := newScoringFixture()
	job := newJob()
	c := newCandidate(job.ID)
	c.GitHubURL = strPtr("https://github.com/ada")
	c.ResumeText = strPtr(strings.Repeat("Built distributed Go services backed by PostgreSQL. ", 40))
	years := 6

	f.candidates.On("GetByID", mock.Anything, c.ID).Return(c, nil)
	f.jobs.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	f.profiles.On("FetchProfile", mock.Anything, "https://github.com/ada").Return(&domain.ExternalProfile{
		Username:        "ada",
		AvatarURL:       "https://avatars.example/ada",
		Skills:          []string{"Go", "Docker"},
		YearsExperience: &years,
	}, nil)
	f.oracle.On("ScoreCandidate", mock.Anything, mock.MatchedBy(func(d domain.CandidateData) bool {
		return d.Name == "Ada Lovelace" && len(d.Skills) == 2 && d.YearsExperience != nil && *d.YearsExperience == 6
	}), mock.Anything).Return(&domain.MatchScore{
		OverallScore:   82,
		Summary:        "Strong backend match.",
		Strengths:      []string{"Go"},
		Concerns:       []string{},
		Recommendation: domain.RecommendYes,
		SkillsAnalysis: domain.SkillsAnalysis{Matched: []string{"Go", "PostgreSQL"}, Bonus: []string{"Docker", "go"}},
	}, nil)
	f.candidates.On("Update", mock.Anything, c.ID, mock.MatchedBy(func(upd domain.CandidateUpdate) bool {
		return upd.AIScore != nil && *upd.AIScore == 82 &&
			upd.ExtractedSkills != nil && len(*upd.ExtractedSkills) == 3 &&
			upd.AvatarURL != nil && upd.YearsExperience != nil && upd.ScoredAt != nil
	})).Return(c, nil)
	f.pregen.On("Enqueue", c.ID, job.ID).Return(true)

	t.Run("Should persist the oracle score and queue question pre-generation", func(t *testing.T) {
		res, err := f.uc.ScoreCandidate(context.Background(), c.ID)
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, domain.ScoringOutcomeScored, res.Outcome)
		assert.True(t, res.ProfileFetched)
		require.NotNil(t, res.Score)
		assert.GreaterOrEqual(t, *res.Score, 0)
		assert.LessOrEqual(t, *res.Score, 100)

		f.candidates.AssertExpectations(t)
		f.pregen.AssertExpectations(t)
	})
}

func TestScoreCandidateOracleFailure(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind apperror.Kind
	}{
		{"Should report rate limiting", apperror.RateLimited("AI service is busy, try again later", nil), apperror.KindRateLimit},
		{"Should report missing configuration", apperror.Configuration("AI service not configured", nil), apperror.KindConfiguration},
		{"Should classify unknown errors as integration", errors.New("connection reset"), apperror.KindIntegration},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newScoringFixture()
			job := newJob()
			c := newCandidate(job.ID)
			c.CoverLetter = strPtr(strings.Repeat("I have shipped Go services for years. ", 5))

			f.candidates.On("GetByID", mock.Anything, c.ID).Return(c, nil)
			f.jobs.On("GetByID", mock.Anything, job.ID).Return(job, nil)
			f.oracle.On("ScoreCandidate", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err)
			f.candidates.On("Update", mock.Anything, c.ID, mock.MatchedBy(func(upd domain.CandidateUpdate) bool {
				return upd.AIScore == nil && upd.ScoredAt == nil
			})).Return(c, nil)

			res, err := f.uc.ScoreCandidate(context.Background(), c.ID)
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Equal(t, domain.ScoringOutcomeFailed, res.Outcome)
			assert.Equal(t, tc.kind, res.ErrorKind)
			assert.Nil(t, res.Score)
			f.pregen.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
			f.candidates.AssertExpectations(t)
		})
	}
}

func TestScoreCandidateProfileFetchIsSoft(t *testing.T) {
	f := newScoringFixture()
	job := newJob()
	c := newCandidate(job.ID)
	c.GitHubURL = strPtr("https://github.com/ghost")
	c.ResumeText = strPtr(strings.Repeat("Go, Kubernetes, PostgreSQL, gRPC. ", 10))

	f.candidates.On("GetByID", mock.Anything, c.ID).Return(c, nil)
	f.jobs.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	f.profiles.On("FetchProfile", mock.Anything, mock.Anything).Return(nil, errors.New("status 404"))
	f.oracle.On("ScoreCandidate", mock.Anything, mock.Anything, mock.Anything).Return(&domain.MatchScore{
		OverallScore:   55,
		Recommendation: domain.RecommendMaybe,
		SkillsAnalysis: domain.SkillsAnalysis{Matched: []string{"Go"}},
	}, nil)
	f.candidates.On("Update", mock.Anything, c.ID, mock.MatchedBy(func(upd domain.CandidateUpdate) bool {
		return upd.AvatarURL == nil && upd.AIScore != nil
	})).Return(c, nil)
	f.pregen.On("Enqueue", c.ID, job.ID).Return(false)

	t.Run("Should score with local data when the profile fetch fails", func(t *testing.T) {
		res, err := f.uc.ScoreCandidate(context.Background(), c.ID)
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.False(t, res.ProfileFetched)
		assert.Equal(t, 55, *res.Score)
	})
}

func TestScoreCandidateCountsCharactersNotBytes(t *testing.T) {
	f := newScoringFixture()
	job := newJob()
	c := newCandidate(job.ID)
	// 40 characters, 80 bytes.
	c.CoverLetter = strPtr(strings.Repeat("é", 40))

	f.candidates.On("GetByID", mock.Anything, c.ID).Return(c, nil)
	f.jobs.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	f.candidates.On("Update", mock.Anything, c.ID, mock.MatchedBy(func(upd domain.CandidateUpdate) bool {
		return upd.AIScore != nil && *upd.AIScore == 0
	})).Return(c, nil)

	t.Run("Should treat short multi-byte text as insufficient data", func(t *testing.T) {
		res, err := f.uc.ScoreCandidate(context.Background(), c.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ScoringOutcomeInsufficientData, res.Outcome)
		f.oracle.AssertNotCalled(t, "ScoreCandidate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestScoreCandidateNotFound(t *testing.T) {
	f := newScoringFixture()
	id := uuid.New()
	f.candidates.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	t.Run("Should return not found", func(t *testing.T) {
		_, err := f.uc.ScoreCandidate(context.Background(), id)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}
