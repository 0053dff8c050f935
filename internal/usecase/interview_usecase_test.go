package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/internal/usecase"
	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
)

type interviewFixture struct {
	interviews *MockInterviewRepo
	candidates *MockCandidateRepo
	jobs       *MockJobRepo
	questions  *MockQuestionRepo
	activities *MockActivityRepo
	oracle     *MockOracle
	notifier   *MockNotifier
	views      *MockInvalidator
	uc         domain.InterviewUsecase

	job       *domain.Job
	candidate *domain.Candidate
}

func newInterviewFixture() *interviewFixture {
	f := &interviewFixture{
		interviews: new(MockInterviewRepo),
		candidates: new(MockCandidateRepo),
		jobs:       new(MockJobRepo),
		questions:  new(MockQuestionRepo),
		activities: new(MockActivityRepo),
		oracle:     new(MockOracle),
		notifier:   new(MockNotifier),
		views:      new(MockInvalidator),
	}
	f.uc = usecase.NewInterviewUsecase(f.interviews, f.candidates, f.jobs, f.questions, f.activities, f.oracle, f.notifier, f.views,
		usecase.InterviewConfig{
			FrontendURL:      "https://app.example",
			AccessWindow:     168 * time.Hour,
			PregenStaleAfter: 72 * time.Hour,
		})
	f.job = newJob()
	f.candidate = newCandidate(f.job.ID)

	f.candidates.On("GetByID", mock.Anything, f.candidate.ID).Return(f.candidate, nil)
	f.jobs.On("GetByID", mock.Anything, f.job.ID).Return(f.job, nil)
	f.activities.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.views.On("InvalidateCandidate", mock.Anything).Return()
	return f
}

// expectCreate assigns an id to the created interview.
func (f *interviewFixture) expectCreate() {
	f.interviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.AIInterview")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.AIInterview).ID = uuid.New()
	})
}

// expectCreateFromPregenerated assigns an id when the set is claimed with the insert.
func (f *interviewFixture) expectCreateFromPregenerated(pregeneratedID uuid.UUID, err error) {
	call := f.interviews.On("CreateFromPregenerated", mock.Anything, mock.AnythingOfType("*domain.AIInterview"), pregeneratedID).Return(err).Once()
	if err == nil {
		call.Run(func(args mock.Arguments) {
			args.Get(1).(*domain.AIInterview).ID = uuid.New()
		})
	}
}

func (f *interviewFixture) request(at time.Time, invite bool) domain.ScheduleInterviewRequest {
	return domain.ScheduleInterviewRequest{
		CandidateID:         f.candidate.ID,
		JobID:               f.job.ID,
		ScheduledAt:         at,
		SendImmediateInvite: &invite,
	}
}

func readySet(candidateID, jobID uuid.UUID, n int) *domain.PregeneratedQuestions {
	generated := time.Now().Add(-time.Hour)
	return &domain.PregeneratedQuestions{
		ID:                 uuid.New(),
		CandidateID:        candidateID,
		JobID:              jobID,
		Status:             domain.PregenStatusReady,
		Questions:          questions(n),
		TotalQuestions:     n,
		TotalEstimatedTime: n * 4,
		GeneratedAt:        &generated,
		CreatedAt:          generated,
	}
}

func TestScheduleInterviewValidation(t *testing.T) {
	f := newInterviewFixture()

	t.Run("Should reject a scheduled time in the past", func(t *testing.T) {
		_, err := f.uc.ScheduleInterview(context.Background(), f.request(time.Now().Add(-24*time.Hour), true))
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		f.interviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject a duration outside bounds", func(t *testing.T) {
		req := f.request(time.Now().Add(24*time.Hour), false)
		req.DurationMinutes = 200
		_, err := f.uc.ScheduleInterview(context.Background(), req)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("Should reject an unknown timezone", func(t *testing.T) {
		req := f.request(time.Now().Add(24*time.Hour), false)
		req.CandidateTimezone = "Mars/Olympus_Mons"
		_, err := f.uc.ScheduleInterview(context.Background(), req)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("Should reject an oversized custom message", func(t *testing.T) {
		req := f.request(time.Now().Add(24*time.Hour), false)
		req.CustomMessage = strings.Repeat("x", domain.MaxCustomMessageLength+1)
		_, err := f.uc.ScheduleInterview(context.Background(), req)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	f.candidates.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestScheduleInterviewUsesPregeneratedQuestions(t *testing.T) {
	f := newInterviewFixture()
	pre := readySet(f.candidate.ID, f.job.ID, 8)
	at := time.Now().Add(48 * time.Hour)

	f.interviews.On("GetActiveByCandidate", mock.Anything, f.candidate.ID).Return(nil, domain.ErrNotFound)
	f.questions.On("GetLatestReady", mock.Anything, f.candidate.ID, f.job.ID).Return(pre, nil)
	f.expectCreateFromPregenerated(pre.ID, nil)

	t.Run("Should schedule instantly from a ready set", func(t *testing.T) {
		res, err := f.uc.ScheduleInterview(context.Background(), f.request(at, false))
		require.NoError(t, err)

		iv := res.Interview
		assert.Equal(t, 8, iv.TotalQuestions)
		assert.Equal(t, 32, iv.TotalEstimatedTime)
		assert.False(t, res.QuestionsGenerated)
		require.NotNil(t, iv.PregeneratedID)
		assert.Equal(t, pre.ID, *iv.PregeneratedID)
		assert.Equal(t, domain.InterviewScheduled, iv.Status)
		assert.Equal(t, domain.DefaultInterviewDuration, iv.DurationMinutes)
		assert.True(t, strings.HasPrefix(res.InterviewLink, "https://app.example/interview/"))
		assert.True(t, iv.ExpiresAt.After(iv.ScheduledAt.Add(time.Duration(iv.DurationMinutes)*time.Minute)))
		assert.Empty(t, res.Warnings)

		f.oracle.AssertNotCalled(t, "GenerateQuestions", mock.Anything, mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.interviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.interviews.AssertExpectations(t)
		f.views.AssertCalled(t, "InvalidateCandidate", f.candidate.ID)
	})
}

func TestScheduleInterviewNeverReusesUsedSet(t *testing.T) {
	f := newInterviewFixture()
	pre := readySet(f.candidate.ID, f.job.ID, 8)

	f.interviews.On("GetActiveByCandidate", mock.Anything, f.candidate.ID).Return(nil, domain.ErrNotFound)
	f.questions.On("GetLatestReady", mock.Anything, f.candidate.ID, f.job.ID).Return(pre, nil)
	// Another request claimed the set first.
	f.expectCreateFromPregenerated(pre.ID, domain.ErrPregeneratedUnavailable)
	f.oracle.On("GenerateQuestions", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.QuestionSet{Questions: questions(7), TotalEstimatedTime: 28}, nil)
	f.expectCreate()

	t.Run("Should generate a fresh set when the ready set was already used", func(t *testing.T) {
		res, err := f.uc.ScheduleInterview(context.Background(), f.request(time.Now().Add(time.Hour), false))
		require.NoError(t, err)
		assert.True(t, res.QuestionsGenerated)
		assert.Nil(t, res.Interview.PregeneratedID)
		assert.Equal(t, 7, res.Interview.TotalQuestions)
		f.interviews.AssertNumberOfCalls(t, "CreateFromPregenerated", 1)
		f.interviews.AssertNumberOfCalls(t, "Create", 1)
	})
}

func TestScheduleInterviewSkipsStaleSet(t *testing.T) {
	f := newInterviewFixture()
	pre := readySet(f.candidate.ID, f.job.ID, 8)
	f.job.UpdatedAt = time.Now()

	f.interviews.On("GetActiveByCandidate", mock.Anything, f.candidate.ID).Return(nil, domain.ErrNotFound)
	f.questions.On("GetLatestReady", mock.Anything, f.candidate.ID, f.job.ID).Return(pre, nil)
	f.oracle.On("GenerateQuestions", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.QuestionSet{Questions: questions(6)}, nil)
	f.expectCreate()

	t.Run("Should regenerate when the job changed after generation", func(t *testing.T) {
		res, err := f.uc.ScheduleInterview(context.Background(), f.request(time.Now().Add(time.Hour), false))
		require.NoError(t, err)
		assert.True(t, res.QuestionsGenerated)
		assert.Equal(t, 24, res.Interview.TotalEstimatedTime)
		f.interviews.AssertNotCalled(t, "CreateFromPregenerated", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestScheduleInterviewFailures(t *testing.T) {
	t.Run("Should refuse while another interview is active", func(t *testing.T) {
		f := newInterviewFixture()
		f.interviews.On("GetActiveByCandidate", mock.Anything, f.candidate.ID).
			Return(&domain.AIInterview{ID: uuid.New(), Status: domain.InterviewSent}, nil)

		_, err := f.uc.ScheduleInterview(context.Background(), f.request(time.Now().Add(time.Hour), true))
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
		f.interviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should surface generation errors without persisting", func(t *testing.T) {
		f := newInterviewFixture()
		f.interviews.On("GetActiveByCandidate", mock.Anything, f.candidate.ID).Return(nil, domain.ErrNotFound)
		f.questions.On("GetLatestReady", mock.Anything, f.candidate.ID, f.job.ID).Return(nil, domain.ErrNotFound)
		f.oracle.On("GenerateQuestions", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperror.RateLimited("AI service is busy, try again later", nil))

		_, err := f.uc.ScheduleInterview(context.Background(), f.request(time.Now().Add(time.Hour), true))
		assert.True(t, apperror.Is(err, apperror.KindRateLimit))
		f.interviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should report an active interview created concurrently as invalid state", func(t *testing.T) {
		f := newInterviewFixture()
		f.interviews.On("GetActiveByCandidate", mock.Anything, f.candidate.ID).Return(nil, domain.ErrNotFound)
		f.questions.On("GetLatestReady", mock.Anything, f.candidate.ID, f.job.ID).Return(nil, domain.ErrNotFound)
		f.oracle.On("GenerateQuestions", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.QuestionSet{Questions: questions(5)}, nil)
		f.interviews.On("Create", mock.Anything, mock.Anything).Return(domain.ErrActiveInterviewExists)

		_, err := f.uc.ScheduleInterview(context.Background(), f.request(time.Now().Add(time.Hour), true))
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
		f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.activities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should claim the ready set only together with the insert", func(t *testing.T) {
		f := newInterviewFixture()
		pre := readySet(f.candidate.ID, f.job.ID, 8)
		f.interviews.On("GetActiveByCandidate", mock.Anything, f.candidate.ID).Return(nil, domain.ErrNotFound)
		f.questions.On("GetLatestReady", mock.Anything, f.candidate.ID, f.job.ID).Return(pre, nil)
		f.expectCreateFromPregenerated(pre.ID, domain.ErrActiveInterviewExists)

		_, err := f.uc.ScheduleInterview(context.Background(), f.request(time.Now().Add(time.Hour), true))
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
		f.interviews.AssertExpectations(t)
		f.interviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.oracle.AssertNotCalled(t, "GenerateQuestions", mock.Anything, mock.Anything, mock.Anything)
		f.views.AssertNotCalled(t, "InvalidateCandidate", mock.Anything)
	})

	t.Run("Should surface a failed insert without generating again", func(t *testing.T) {
		f := newInterviewFixture()
		pre := readySet(f.candidate.ID, f.job.ID, 8)
		dbErr := errors.New("connection reset")
		f.interviews.On("GetActiveByCandidate", mock.Anything, f.candidate.ID).Return(nil, domain.ErrNotFound)
		f.questions.On("GetLatestReady", mock.Anything, f.candidate.ID, f.job.ID).Return(pre, nil)
		f.expectCreateFromPregenerated(pre.ID, dbErr)

		_, err := f.uc.ScheduleInterview(context.Background(), f.request(time.Now().Add(time.Hour), true))
		assert.ErrorIs(t, err, dbErr)
		f.oracle.AssertNotCalled(t, "GenerateQuestions", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject a candidate from another job", func(t *testing.T) {
		f := newInterviewFixture()
		f.candidate.JobID = uuid.New()

		_, err := f.uc.ScheduleInterview(context.Background(), f.request(time.Now().Add(time.Hour), true))
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})
}

func TestScheduleInterviewInvite(t *testing.T) {
	setup := func() *interviewFixture {
		f := newInterviewFixture()
		f.interviews.On("GetActiveByCandidate", mock.Anything, f.candidate.ID).Return(nil, domain.ErrNotFound)
		f.questions.On("GetLatestReady", mock.Anything, f.candidate.ID, f.job.ID).Return(readySet(f.candidate.ID, f.job.ID, 6), nil)
		f.interviews.On("CreateFromPregenerated", mock.Anything, mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.AIInterview).ID = uuid.New()
		})
		return f
	}

	t.Run("Should move to sent when the invite is delivered", func(t *testing.T) {
		f := setup()
		f.notifier.On("Send", mock.Anything, domain.NotifyInterviewScheduled, "ada@example.com", mock.MatchedBy(func(d domain.InterviewEmailData) bool {
			return d.CandidateName == "Ada Lovelace" && d.JobTitle == "Backend Engineer" && d.InterviewLink != ""
		})).Return(domain.NotificationResult{Success: true, MessageID: "m-1"})
		f.interviews.On("UpdateIfStatus", mock.Anything, mock.Anything, []domain.InterviewStatus{domain.InterviewScheduled},
			mock.MatchedBy(func(upd domain.InterviewUpdate) bool {
				return upd.Status != nil && *upd.Status == domain.InterviewSent && upd.InviteSentAt != nil
			})).Return(&domain.AIInterview{Status: domain.InterviewSent}, nil)

		res, err := f.uc.ScheduleInterview(context.Background(), f.request(time.Now().Add(time.Hour), true))
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewSent, res.Interview.Status)
		assert.Empty(t, res.Warnings)
	})

	t.Run("Should keep the interview and warn when the invite fails", func(t *testing.T) {
		f := setup()
		f.notifier.On("Send", mock.Anything, domain.NotifyInterviewScheduled, mock.Anything, mock.Anything).
			Return(domain.NotificationResult{Success: false, Error: "SMTP not configured"})

		res, err := f.uc.ScheduleInterview(context.Background(), f.request(time.Now().Add(time.Hour), true))
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewScheduled, res.Interview.Status)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "SMTP not configured")
		f.interviews.AssertNotCalled(t, "UpdateIfStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCancelInterview(t *testing.T) {
	t.Run("Should fail for a completed interview and leave it unchanged", func(t *testing.T) {
		f := newInterviewFixture()
		iv := &domain.AIInterview{ID: uuid.New(), CandidateID: f.candidate.ID, JobID: f.job.ID, Status: domain.InterviewCompleted}
		f.interviews.On("GetByID", mock.Anything, iv.ID).Return(iv, nil)

		_, err := f.uc.CancelInterview(context.Background(), iv.ID, "")
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
		assert.Equal(t, domain.InterviewCompleted, iv.Status)
		f.interviews.AssertNotCalled(t, "UpdateIfStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should fail for an already cancelled interview", func(t *testing.T) {
		f := newInterviewFixture()
		iv := &domain.AIInterview{ID: uuid.New(), Status: domain.InterviewCancelled}
		f.interviews.On("GetByID", mock.Anything, iv.ID).Return(iv, nil)

		_, err := f.uc.CancelInterview(context.Background(), iv.ID, "")
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	})

	t.Run("Should cancel and notify with the reason", func(t *testing.T) {
		f := newInterviewFixture()
		iv := &domain.AIInterview{ID: uuid.New(), CandidateID: f.candidate.ID, JobID: f.job.ID, Status: domain.InterviewSent}
		cancelled := *iv
		cancelled.Status = domain.InterviewCancelled

		f.interviews.On("GetByID", mock.Anything, iv.ID).Return(iv, nil)
		f.interviews.On("UpdateIfStatus", mock.Anything, iv.ID, domain.CancellableStatuses, mock.MatchedBy(func(upd domain.InterviewUpdate) bool {
			return *upd.Status == domain.InterviewCancelled && upd.CancelReason != nil && *upd.CancelReason == "Role filled"
		})).Return(&cancelled, nil)
		f.notifier.On("Send", mock.Anything, domain.NotifyInterviewCancelled, "ada@example.com", mock.MatchedBy(func(d domain.InterviewEmailData) bool {
			return d.Reason == "Role filled"
		})).Return(domain.NotificationResult{Success: true})

		res, err := f.uc.CancelInterview(context.Background(), iv.ID, " Role filled ")
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewCancelled, res.Interview.Status)
		assert.Empty(t, res.Warnings)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Should report a concurrent state change as invalid state", func(t *testing.T) {
		f := newInterviewFixture()
		iv := &domain.AIInterview{ID: uuid.New(), Status: domain.InterviewScheduled}
		f.interviews.On("GetByID", mock.Anything, iv.ID).Return(iv, nil)
		f.interviews.On("UpdateIfStatus", mock.Anything, iv.ID, mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

		_, err := f.uc.CancelInterview(context.Background(), iv.ID, "")
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	})
}

func TestRescheduleInterview(t *testing.T) {
	t.Run("Should reject a past time", func(t *testing.T) {
		f := newInterviewFixture()
		_, err := f.uc.RescheduleInterview(context.Background(), uuid.New(), time.Now().Add(-time.Minute), "")
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		f.interviews.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an interview that already started", func(t *testing.T) {
		f := newInterviewFixture()
		iv := &domain.AIInterview{ID: uuid.New(), Status: domain.InterviewInProgress}
		f.interviews.On("GetByID", mock.Anything, iv.ID).Return(iv, nil)

		_, err := f.uc.RescheduleInterview(context.Background(), iv.ID, time.Now().Add(time.Hour), "")
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	})

	t.Run("Should move the time and notify with the previous time", func(t *testing.T) {
		f := newInterviewFixture()
		old := time.Now().Add(24 * time.Hour).UTC()
		next := time.Now().Add(72 * time.Hour)
		iv := &domain.AIInterview{
			ID: uuid.New(), CandidateID: f.candidate.ID, JobID: f.job.ID,
			Status: domain.InterviewSent, ScheduledAt: old, DurationMinutes: 30,
			InterviewLink: "https://app.example/interview/tok", Questions: questions(6), TotalQuestions: 6,
		}
		moved := *iv
		moved.ScheduledAt = next.UTC()

		f.interviews.On("GetByID", mock.Anything, iv.ID).Return(iv, nil)
		f.interviews.On("UpdateIfStatus", mock.Anything, iv.ID, mock.Anything, mock.MatchedBy(func(upd domain.InterviewUpdate) bool {
			return upd.Status == nil && upd.ScheduledAt != nil && upd.ScheduledAt.Equal(next) &&
				upd.ExpiresAt != nil && upd.ExpiresAt.After(next)
		})).Return(&moved, nil)
		f.notifier.On("Send", mock.Anything, domain.NotifyInterviewRescheduled, "ada@example.com", mock.MatchedBy(func(d domain.InterviewEmailData) bool {
			return d.PreviousTime != nil && d.PreviousTime.Equal(old) && d.InterviewLink == iv.InterviewLink
		})).Return(domain.NotificationResult{Success: true})

		res, err := f.uc.RescheduleInterview(context.Background(), iv.ID, next, "Candidate asked")
		require.NoError(t, err)
		assert.Equal(t, 6, res.Interview.TotalQuestions)
		assert.Equal(t, iv.InterviewLink, res.Interview.InterviewLink)
		f.notifier.AssertExpectations(t)
	})
}

func TestMarkReviewed(t *testing.T) {
	t.Run("Should only review completed interviews", func(t *testing.T) {
		f := newInterviewFixture()
		iv := &domain.AIInterview{ID: uuid.New(), Status: domain.InterviewSent}
		f.interviews.On("GetByID", mock.Anything, iv.ID).Return(iv, nil)

		_, err := f.uc.MarkReviewed(context.Background(), iv.ID)
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	})

	t.Run("Should be idempotent once reviewed", func(t *testing.T) {
		f := newInterviewFixture()
		reviewed := time.Now().Add(-time.Hour)
		iv := &domain.AIInterview{ID: uuid.New(), Status: domain.InterviewCompleted, ReviewedAt: &reviewed}
		f.interviews.On("GetByID", mock.Anything, iv.ID).Return(iv, nil)

		got, err := f.uc.MarkReviewed(context.Background(), iv.ID)
		require.NoError(t, err)
		assert.Equal(t, reviewed, *got.ReviewedAt)
		f.interviews.AssertNotCalled(t, "UpdateIfStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSweepExpired(t *testing.T) {
	f := newInterviewFixture()
	f.interviews.On("ExpireOverdue", mock.Anything, mock.Anything, mock.MatchedBy(func(from []domain.InterviewStatus) bool {
		return len(from) == 4
	}), domain.InterviewExpired).Return(int64(2), nil)
	f.interviews.On("ExpireOverdue", mock.Anything, mock.Anything, []domain.InterviewStatus{domain.InterviewInProgress}, domain.InterviewAbandoned).
		Return(int64(1), nil)

	t.Run("Should expire unstarted and abandon started interviews", func(t *testing.T) {
		n, err := f.uc.SweepExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		f.interviews.AssertExpectations(t)
	})
}
