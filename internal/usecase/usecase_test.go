package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
)

// Mock Repositories
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Fetch(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Candidate), args.Get(1).(int64), args.Error(2)
}

func (m *MockCandidateRepo) Update(ctx context.Context, id uuid.UUID, upd domain.CandidateUpdate) (*domain.Candidate, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) ChangeStage(ctx context.Context, id uuid.UUID, change domain.StageChange) (*domain.Candidate, error) {
	args := m.Called(ctx, id, change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) Update(ctx context.Context, id uuid.UUID, upd domain.JobUpdate) (*domain.Job, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockActivityRepo) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]domain.Activity, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) CreatePending(ctx context.Context, candidateID, jobID uuid.UUID) (*domain.PregeneratedQuestions, error) {
	args := m.Called(ctx, candidateID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PregeneratedQuestions), args.Error(1)
}

func (m *MockQuestionRepo) MarkGenerating(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockQuestionRepo) MarkReady(ctx context.Context, id uuid.UUID, set *domain.QuestionSet) error {
	return m.Called(ctx, id, set).Error(0)
}

func (m *MockQuestionRepo) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	return m.Called(ctx, id, message).Error(0)
}

func (m *MockQuestionRepo) GetLatestReady(ctx context.Context, candidateID, jobID uuid.UUID) (*domain.PregeneratedQuestions, error) {
	args := m.Called(ctx, candidateID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PregeneratedQuestions), args.Error(1)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, iv *domain.AIInterview) error {
	return m.Called(ctx, iv).Error(0)
}

func (m *MockInterviewRepo) CreateFromPregenerated(ctx context.Context, iv *domain.AIInterview, pregeneratedID uuid.UUID) error {
	return m.Called(ctx, iv, pregeneratedID).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AIInterview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AIInterview), args.Error(1)
}

func (m *MockInterviewRepo) GetActiveByCandidate(ctx context.Context, candidateID uuid.UUID) (*domain.AIInterview, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AIInterview), args.Error(1)
}

func (m *MockInterviewRepo) GetLatestByCandidate(ctx context.Context, candidateID uuid.UUID) (*domain.AIInterview, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AIInterview), args.Error(1)
}

func (m *MockInterviewRepo) Update(ctx context.Context, id uuid.UUID, upd domain.InterviewUpdate) (*domain.AIInterview, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AIInterview), args.Error(1)
}

func (m *MockInterviewRepo) UpdateIfStatus(ctx context.Context, id uuid.UUID, allowed []domain.InterviewStatus, upd domain.InterviewUpdate) (*domain.AIInterview, error) {
	args := m.Called(ctx, id, allowed, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AIInterview), args.Error(1)
}

func (m *MockInterviewRepo) ExpireOverdue(ctx context.Context, now time.Time, from []domain.InterviewStatus, target domain.InterviewStatus) (int64, error) {
	args := m.Called(ctx, now, from, target)
	return args.Get(0).(int64), args.Error(1)
}

// Mock collaborators
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) ScoreCandidate(ctx context.Context, c domain.CandidateData, j domain.JobData) (*domain.MatchScore, error) {
	args := m.Called(ctx, c, j)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchScore), args.Error(1)
}

func (m *MockOracle) GenerateQuestions(ctx context.Context, j domain.JobData, c domain.CandidateData) (*domain.QuestionSet, error) {
	args := m.Called(ctx, j, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestionSet), args.Error(1)
}

type MockProfileFetcher struct {
	mock.Mock
}

func (m *MockProfileFetcher) FetchProfile(ctx context.Context, url string) (*domain.ExternalProfile, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExternalProfile), args.Error(1)
}

type MockPregenerator struct {
	mock.Mock
}

func (m *MockPregenerator) Enqueue(candidateID, jobID uuid.UUID) bool {
	return m.Called(candidateID, jobID).Bool(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, kind domain.NotificationType, to string, data domain.InterviewEmailData) domain.NotificationResult {
	return m.Called(ctx, kind, to, data).Get(0).(domain.NotificationResult)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateCandidate(id uuid.UUID) {
	m.Called(id)
}

// Fixtures
func newJob() *domain.Job {
	return &domain.Job{
		ID:             uuid.New(),
		Title:          "Backend Engineer",
		Description:    "Build and run Go services on Postgres.",
		Level:          domain.JobLevelSenior,
		RequiredSkills: []string{"Go", "PostgreSQL"},
		Status:         domain.JobStatusActive,
		UpdatedAt:      time.Now().Add(-48 * time.Hour),
	}
}

func newCandidate(jobID uuid.UUID) *domain.Candidate {
	return &domain.Candidate{
		ID:        uuid.New(),
		JobID:     jobID,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Stage:     domain.StageApplied,
		Skills:    []string{"Go"},
	}
}

func questions(n int) []domain.Question {
	out := make([]domain.Question, n)
	for i := range out {
		out[i] = domain.Question{
			ID:            uuid.NewString(),
			Category:      "technical",
			Difficulty:    "medium",
			Question:      "Describe a production incident you debugged.",
			ScoringRubric: []string{"Names a root cause"},
			EstimatedTime: 4,
		}
	}
	return out
}

func strPtr(s string) *string { return &s }
