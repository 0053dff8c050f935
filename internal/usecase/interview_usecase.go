package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
	"github.com/zordhalo/lontario-YC-sub000/pkg/logger"
)

const interviewNotFoundMsg = "Interview not found"

var (
	preStartStatuses = []domain.InterviewStatus{
		domain.InterviewPending, domain.InterviewScheduled, domain.InterviewReady, domain.InterviewSent,
	}
	inProgressStatuses = []domain.InterviewStatus{domain.InterviewInProgress}
)

// InterviewConfig holds scheduling policy.
type InterviewConfig struct {
	FrontendURL string
	// AccessWindow is how long after scheduled_at the link stays valid.
	AccessWindow time.Duration
	// PregenStaleAfter is the maximum age of a consumable pre-generated set.
	PregenStaleAfter time.Duration
}

type interviewUsecase struct {
	interviewRepo domain.InterviewRepository
	candidateRepo domain.CandidateRepository
	jobRepo       domain.JobRepository
	questionRepo  domain.QuestionRepository
	activityRepo  domain.ActivityRepository
	oracle        domain.ScoringOracle
	notifier      domain.Notifier
	views         CandidateInvalidator
	cfg           InterviewConfig
	now           func() time.Time
}

func NewInterviewUsecase(
	interviewRepo domain.InterviewRepository,
	candidateRepo domain.CandidateRepository,
	jobRepo domain.JobRepository,
	questionRepo domain.QuestionRepository,
	activityRepo domain.ActivityRepository,
	oracle domain.ScoringOracle,
	notifier domain.Notifier,
	views CandidateInvalidator,
	cfg InterviewConfig,
) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo: interviewRepo,
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		questionRepo:  questionRepo,
		activityRepo:  activityRepo,
		oracle:        oracle,
		notifier:      notifier,
		views:         views,
		cfg:           cfg,
		now:           time.Now,
	}
}

// ScheduleInterview creates an interview for the candidate. Everything that can
// fail the request happens before the row is written; invite delivery after
// that only produces warnings.
func (u *interviewUsecase) ScheduleInterview(ctx context.Context, req domain.ScheduleInterviewRequest) (*domain.ScheduleInterviewResult, error) {
	now := u.now()
	if !req.ScheduledAt.After(now) {
		return nil, apperror.Validation("Scheduled time must be in the future")
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultInterviewDuration
	}
	if duration < domain.MinInterviewDuration || duration > domain.MaxInterviewDuration {
		return nil, apperror.Validation(fmt.Sprintf("Duration must be between %d and %d minutes", domain.MinInterviewDuration, domain.MaxInterviewDuration))
	}
	message := strings.TrimSpace(req.CustomMessage)
	if utf8.RuneCountInString(message) > domain.MaxCustomMessageLength {
		return nil, apperror.Validation(fmt.Sprintf("Custom message must be at most %d characters", domain.MaxCustomMessageLength))
	}
	timezone := strings.TrimSpace(req.CandidateTimezone)
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return nil, apperror.Validation("Invalid candidate timezone: " + timezone)
		}
	}

	candidate, err := u.candidateRepo.GetByID(ctx, req.CandidateID)
	if err != nil {
		return nil, notFound(err, candidateNotFoundMsg)
	}
	job, err := u.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, notFound(err, jobNotFoundMsg)
	}
	if candidate.JobID != job.ID {
		return nil, apperror.Validation("Candidate did not apply to this job")
	}

	active, err := u.interviewRepo.GetActiveByCandidate(ctx, candidate.ID)
	switch {
	case err == nil:
		return nil, apperror.InvalidState(fmt.Sprintf("Candidate already has an active interview (%s); reschedule or cancel it", active.Status))
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	pre := u.consumablePregenerated(ctx, candidate, job, now)
	var set *domain.QuestionSet
	if pre != nil {
		set = &domain.QuestionSet{Questions: pre.Questions, TotalEstimatedTime: pre.TotalEstimatedTime}
	} else if set, err = u.generateQuestions(ctx, candidate, job); err != nil {
		return nil, err
	}

	interview := &domain.AIInterview{
		CandidateID:     candidate.ID,
		JobID:           job.ID,
		Status:          domain.InterviewScheduled,
		ScheduledAt:     req.ScheduledAt.UTC(),
		DurationMinutes: duration,
		AccessToken:     uuid.NewString(),
		ExpiresAt:       u.expiresAt(req.ScheduledAt.UTC(), duration),
	}
	interview.InterviewLink = u.cfg.FrontendURL + "/interview/" + interview.AccessToken
	setQuestions(interview, set)
	if timezone != "" {
		interview.CandidateTimezone = &timezone
	}
	if message != "" {
		interview.CustomMessage = &message
	}

	generated, err := u.createInterview(ctx, interview, pre, candidate, job)
	if err != nil {
		if errors.Is(err, domain.ErrActiveInterviewExists) {
			return nil, apperror.InvalidState("Candidate already has an active interview; reschedule or cancel it")
		}
		return nil, err
	}
	logger.Log.Info("Interview scheduled",
		"interview_id", interview.ID,
		"candidate_id", candidate.ID,
		"questions", interview.TotalQuestions,
		"questions_generated", generated,
	)

	result := &domain.ScheduleInterviewResult{
		Interview:          interview,
		InterviewLink:      interview.InterviewLink,
		QuestionsGenerated: generated,
	}

	if req.SendImmediateInvite == nil || *req.SendImmediateInvite {
		if warning := u.notify(ctx, domain.NotifyInterviewScheduled, interview, candidate, job, nil, ""); warning != "" {
			result.Warnings = append(result.Warnings, warning)
		} else {
			sentAt := u.now()
			sent := domain.InterviewSent
			updated, err := u.interviewRepo.UpdateIfStatus(ctx, interview.ID,
				[]domain.InterviewStatus{domain.InterviewScheduled},
				domain.InterviewUpdate{Status: &sent, InviteSentAt: &sentAt})
			if err != nil {
				logger.Log.Warn("Invite sent but interview status not updated", "interview_id", interview.ID, "error", err)
			} else {
				result.Interview = updated
			}
		}
	}

	when := interview.ScheduledAt.Format(time.RFC3339)
	recordActivity(ctx, u.activityRepo, &domain.Activity{
		CandidateID: candidate.ID,
		Type:        domain.ActivityInterviewScheduled,
		Description: "AI interview scheduled",
		NewValue:    &when,
		Actor:       actorFromContext(ctx),
		Metadata: map[string]any{
			"interview_id":        interview.ID.String(),
			"questions_generated": generated,
			"duration_minutes":    duration,
		},
	})
	u.invalidate(candidate.ID)
	return result, nil
}

// consumablePregenerated returns the latest ready set when it is fresh enough to
// use. Lookup failures fall through to on-demand generation.
func (u *interviewUsecase) consumablePregenerated(ctx context.Context, c *domain.Candidate, job *domain.Job, now time.Time) *domain.PregeneratedQuestions {
	pre, err := u.questionRepo.GetLatestReady(ctx, c.ID, job.ID)
	switch {
	case err == nil && pre.IsStale(now, u.cfg.PregenStaleAfter, job.UpdatedAt):
		logger.Log.Info("Pre-generated questions are stale, regenerating", "pregenerated_id", pre.ID, "candidate_id", c.ID)
	case err == nil:
		return pre
	case !errors.Is(err, domain.ErrNotFound):
		logger.Log.Warn("Failed to look up pre-generated questions", "candidate_id", c.ID, "error", err)
	}
	return nil
}

func (u *interviewUsecase) generateQuestions(ctx context.Context, c *domain.Candidate, job *domain.Job) (*domain.QuestionSet, error) {
	set, err := u.oracle.GenerateQuestions(ctx, jobData(job), questionCandidateData(c))
	if err != nil {
		logger.Log.Warn("Question generation failed, interview not scheduled", "candidate_id", c.ID, "error", err)
		return nil, classifyOracleError(err)
	}
	return set, nil
}

func setQuestions(interview *domain.AIInterview, set *domain.QuestionSet) {
	interview.Questions = set.Questions
	interview.TotalQuestions = len(set.Questions)
	interview.TotalEstimatedTime = set.EstimatedMinutes()
}

// createInterview persists the interview. A ready set is claimed in the same
// transaction as the insert; when another request consumed it first, a fresh set
// is generated and the interview is inserted without one. generated reports
// whether the slow path ran.
func (u *interviewUsecase) createInterview(ctx context.Context, interview *domain.AIInterview, pre *domain.PregeneratedQuestions, c *domain.Candidate, job *domain.Job) (bool, error) {
	if pre == nil {
		return true, u.interviewRepo.Create(ctx, interview)
	}

	id := pre.ID
	interview.PregeneratedID = &id
	err := u.interviewRepo.CreateFromPregenerated(ctx, interview, id)
	if !errors.Is(err, domain.ErrPregeneratedUnavailable) {
		return false, err
	}

	logger.Log.Info("Pre-generated questions already used", "pregenerated_id", id)
	interview.PregeneratedID = nil
	set, err := u.generateQuestions(ctx, c, job)
	if err != nil {
		return true, err
	}
	setQuestions(interview, set)
	return true, u.interviewRepo.Create(ctx, interview)
}

// expiresAt keeps the link valid for the access window, and never shorter
// than the interview itself.
func (u *interviewUsecase) expiresAt(scheduledAt time.Time, duration int) time.Time {
	window := u.cfg.AccessWindow
	minimum := time.Duration(duration)*time.Minute + time.Hour
	if window < minimum {
		window = minimum
	}
	return scheduledAt.Add(window)
}

func (u *interviewUsecase) RescheduleInterview(ctx context.Context, id uuid.UUID, scheduledAt time.Time, reason string) (*domain.InterviewMutationResult, error) {
	if !scheduledAt.After(u.now()) {
		return nil, apperror.Validation("Scheduled time must be in the future")
	}

	current, err := u.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, interviewNotFoundMsg)
	}
	if !current.Status.IsReschedulable() {
		return nil, apperror.InvalidState(fmt.Sprintf("Interview cannot be rescheduled from status %s", current.Status))
	}

	newTime := scheduledAt.UTC()
	expires := u.expiresAt(newTime, current.DurationMinutes)
	updated, err := u.interviewRepo.UpdateIfStatus(ctx, id, preStartStatuses, domain.InterviewUpdate{
		ScheduledAt: &newTime,
		ExpiresAt:   &expires,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.InvalidState("Interview changed state while rescheduling")
		}
		return nil, err
	}
	logger.Log.Info("Interview rescheduled", "interview_id", id, "from", current.ScheduledAt, "to", newTime)

	result := &domain.InterviewMutationResult{Interview: updated}
	previous := current.ScheduledAt
	if warning := u.notifyByIDs(ctx, domain.NotifyInterviewRescheduled, updated, &previous, reason); warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	oldValue := previous.Format(time.RFC3339)
	newValue := newTime.Format(time.RFC3339)
	recordActivity(ctx, u.activityRepo, &domain.Activity{
		CandidateID: updated.CandidateID,
		Type:        domain.ActivityInterviewRescheduled,
		Description: "AI interview rescheduled",
		OldValue:    &oldValue,
		NewValue:    &newValue,
		Actor:       actorFromContext(ctx),
		Metadata:    reasonMetadata(updated.ID, reason),
	})
	u.invalidate(updated.CandidateID)
	return result, nil
}

func (u *interviewUsecase) CancelInterview(ctx context.Context, id uuid.UUID, reason string) (*domain.InterviewMutationResult, error) {
	current, err := u.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, interviewNotFoundMsg)
	}
	if !current.Status.IsCancellable() {
		return nil, apperror.InvalidState(fmt.Sprintf("Interview cannot be cancelled from status %s", current.Status))
	}

	cancelled := domain.InterviewCancelled
	at := u.now()
	upd := domain.InterviewUpdate{Status: &cancelled, CancelledAt: &at}
	reason = strings.TrimSpace(reason)
	if reason != "" {
		upd.CancelReason = &reason
	}
	updated, err := u.interviewRepo.UpdateIfStatus(ctx, id, domain.CancellableStatuses, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.InvalidState("Interview changed state while cancelling")
		}
		return nil, err
	}
	logger.Log.Info("Interview cancelled", "interview_id", id, "previous_status", current.Status)

	result := &domain.InterviewMutationResult{Interview: updated}
	if warning := u.notifyByIDs(ctx, domain.NotifyInterviewCancelled, updated, nil, reason); warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	oldValue := string(current.Status)
	newValue := string(domain.InterviewCancelled)
	recordActivity(ctx, u.activityRepo, &domain.Activity{
		CandidateID: updated.CandidateID,
		Type:        domain.ActivityInterviewCancelled,
		Description: "AI interview cancelled",
		OldValue:    &oldValue,
		NewValue:    &newValue,
		Actor:       actorFromContext(ctx),
		Metadata:    reasonMetadata(updated.ID, reason),
	})
	u.invalidate(updated.CandidateID)
	return result, nil
}

func (u *interviewUsecase) GetInterview(ctx context.Context, id uuid.UUID) (*domain.AIInterview, error) {
	iv, err := u.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, interviewNotFoundMsg)
	}
	return iv, nil
}

func (u *interviewUsecase) GetCandidateInterview(ctx context.Context, candidateID uuid.UUID) (*domain.AIInterview, error) {
	iv, err := u.interviewRepo.GetLatestByCandidate(ctx, candidateID)
	if err != nil {
		return nil, notFound(err, "No interview found for candidate")
	}
	return iv, nil
}

// MarkReviewed stamps reviewed_at on a completed interview. Repeat calls return
// the interview unchanged.
func (u *interviewUsecase) MarkReviewed(ctx context.Context, id uuid.UUID) (*domain.AIInterview, error) {
	iv, err := u.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, interviewNotFoundMsg)
	}
	if iv.Status != domain.InterviewCompleted {
		return nil, apperror.InvalidState("Only completed interviews can be reviewed")
	}
	if iv.ReviewedAt != nil {
		return iv, nil
	}

	at := u.now()
	updated, err := u.interviewRepo.UpdateIfStatus(ctx, id,
		[]domain.InterviewStatus{domain.InterviewCompleted},
		domain.InterviewUpdate{ReviewedAt: &at})
	if err != nil {
		return nil, notFound(err, interviewNotFoundMsg)
	}
	u.invalidate(updated.CandidateID)
	return updated, nil
}

// SweepExpired expires interviews whose link window has passed. Interviews that
// were started but never submitted become abandoned.
func (u *interviewUsecase) SweepExpired(ctx context.Context) (int64, error) {
	now := u.now()
	expired, err := u.interviewRepo.ExpireOverdue(ctx, now, preStartStatuses, domain.InterviewExpired)
	if err != nil {
		return 0, fmt.Errorf("expire overdue interviews: %w", err)
	}
	abandoned, err := u.interviewRepo.ExpireOverdue(ctx, now, inProgressStatuses, domain.InterviewAbandoned)
	if err != nil {
		return expired, fmt.Errorf("abandon overdue interviews: %w", err)
	}
	if total := expired + abandoned; total > 0 {
		logger.Log.Info("Overdue interviews swept", "expired", expired, "abandoned", abandoned)
	}
	return expired + abandoned, nil
}

// notifyByIDs loads the candidate and job for an email. Lookup failures become
// a warning like any other delivery failure.
func (u *interviewUsecase) notifyByIDs(ctx context.Context, kind domain.NotificationType, iv *domain.AIInterview, previous *time.Time, reason string) string {
	candidate, err := u.candidateRepo.GetByID(ctx, iv.CandidateID)
	if err != nil {
		logger.Log.Warn("Notification skipped, candidate lookup failed", "interview_id", iv.ID, "error", err)
		return "Candidate could not be notified: candidate lookup failed"
	}
	job, err := u.jobRepo.GetByID(ctx, iv.JobID)
	if err != nil {
		logger.Log.Warn("Notification skipped, job lookup failed", "interview_id", iv.ID, "error", err)
		return "Candidate could not be notified: job lookup failed"
	}
	return u.notify(ctx, kind, iv, candidate, job, previous, reason)
}

// notify sends one email and returns a warning for the caller when it was not delivered.
func (u *interviewUsecase) notify(ctx context.Context, kind domain.NotificationType, iv *domain.AIInterview, c *domain.Candidate, job *domain.Job, previous *time.Time, reason string) string {
	if u.notifier == nil {
		return "Candidate was not notified: email is not configured"
	}
	data := domain.InterviewEmailData{
		CandidateName:   c.FullName(),
		JobTitle:        job.Title,
		InterviewLink:   iv.InterviewLink,
		ScheduledAt:     iv.ScheduledAt,
		PreviousTime:    previous,
		DurationMinutes: iv.DurationMinutes,
		Reason:          reason,
		ExpiresAt:       iv.ExpiresAt,
	}
	if iv.CandidateTimezone != nil {
		data.CandidateTimezone = *iv.CandidateTimezone
	}
	if iv.CustomMessage != nil {
		data.CustomMessage = *iv.CustomMessage
	}

	res := u.notifier.Send(ctx, kind, c.Email, data)
	if !res.Success {
		logger.Log.Warn("Interview notification not delivered", "interview_id", iv.ID, "kind", kind, "error", res.Error)
		return "Candidate was not notified: " + res.Error
	}
	return ""
}

func (u *interviewUsecase) invalidate(candidateID uuid.UUID) {
	if u.views != nil {
		u.views.InvalidateCandidate(candidateID)
	}
}

func reasonMetadata(interviewID uuid.UUID, reason string) map[string]any {
	meta := map[string]any{"interview_id": interviewID.String()}
	if reason != "" {
		meta["reason"] = reason
	}
	return meta
}
