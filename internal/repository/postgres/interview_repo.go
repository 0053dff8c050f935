package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

const interviewColumns = `
	id, candidate_id, job_id, status, scheduled_at, duration_minutes, candidate_timezone, custom_message,
	access_token, interview_link, expires_at, questions::text, total_questions, total_estimated_time,
	pregenerated_id, overall_score, recommendation, invite_sent_at, started_at, completed_at,
	reviewed_at, cancelled_at, cancel_reason, created_at, updated_at`

// activeInterviewStatuses are the non-terminal statuses.
var activeInterviewStatuses = []string{
	string(domain.InterviewPending), string(domain.InterviewScheduled), string(domain.InterviewReady),
	string(domain.InterviewSent), string(domain.InterviewInProgress),
}

func scanInterview(row pgx.Row) (*domain.AIInterview, error) {
	var i domain.AIInterview
	var questions *string
	err := row.Scan(
		&i.ID, &i.CandidateID, &i.JobID, &i.Status, &i.ScheduledAt, &i.DurationMinutes, &i.CandidateTimezone, &i.CustomMessage,
		&i.AccessToken, &i.InterviewLink, &i.ExpiresAt, &questions, &i.TotalQuestions, &i.TotalEstimatedTime,
		&i.PregeneratedID, &i.OverallScore, &i.Recommendation, &i.InviteSentAt, &i.StartedAt, &i.CompletedAt,
		&i.ReviewedAt, &i.CancelledAt, &i.CancelReason, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := jsonbScan(questions, &i.Questions); err != nil {
		return nil, err
	}
	return &i, nil
}

func statusArgs(statuses []domain.InterviewStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// activeInterviewIndex enforces one non-terminal interview per candidate.
const activeInterviewIndex = "uq_ai_interviews_active_candidate"

// translateInsertError maps a violation of the active-interview index to the domain error.
func translateInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == activeInterviewIndex {
		return domain.ErrActiveInterviewExists
	}
	return err
}

func insertInterview(ctx context.Context, q queryRower, i *domain.AIInterview) error {
	questions, err := jsonbParam(i.Questions)
	if err != nil {
		return err
	}
	query := `INSERT INTO ai_interviews (
			candidate_id, job_id, status, scheduled_at, duration_minutes, candidate_timezone, custom_message,
			access_token, interview_link, expires_at, questions, total_questions, total_estimated_time, pregenerated_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::jsonb, $12, $13, $14)
		RETURNING id, created_at, updated_at`
	err = q.QueryRow(ctx, query,
		i.CandidateID, i.JobID, i.Status, i.ScheduledAt, i.DurationMinutes, i.CandidateTimezone, i.CustomMessage,
		i.AccessToken, i.InterviewLink, i.ExpiresAt, questions, i.TotalQuestions, i.TotalEstimatedTime, i.PregeneratedID,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	return translateInsertError(err)
}

func (r *interviewRepo) Create(ctx context.Context, i *domain.AIInterview) error {
	return insertInterview(ctx, r.db, i)
}

// CreateFromPregenerated claims the set with a conditional update and inserts the
// interview in the same transaction, so a failed insert leaves the set ready.
func (r *interviewRepo) CreateFromPregenerated(ctx context.Context, i *domain.AIInterview, pregeneratedID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE pregenerated_questions SET status = 'used', used_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND status = 'ready'`, pregeneratedID)
	if err != nil {
		return err
	}
	if result.RowsAffected() != 1 {
		return domain.ErrPregeneratedUnavailable
	}

	if err := insertInterview(ctx, tx, i); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *interviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AIInterview, error) {
	query := `SELECT ` + interviewColumns + ` FROM ai_interviews WHERE id = $1`
	return scanInterview(r.db.QueryRow(ctx, query, id))
}

func (r *interviewRepo) GetActiveByCandidate(ctx context.Context, candidateID uuid.UUID) (*domain.AIInterview, error) {
	query := `SELECT ` + interviewColumns + ` FROM ai_interviews
		WHERE candidate_id = $1 AND status = ANY($2::text[]) ORDER BY created_at DESC LIMIT 1`
	return scanInterview(r.db.QueryRow(ctx, query, candidateID, activeInterviewStatuses))
}

func (r *interviewRepo) GetLatestByCandidate(ctx context.Context, candidateID uuid.UUID) (*domain.AIInterview, error) {
	query := `SELECT ` + interviewColumns + ` FROM ai_interviews
		WHERE candidate_id = $1 ORDER BY created_at DESC LIMIT 1`
	return scanInterview(r.db.QueryRow(ctx, query, candidateID))
}

func (r *interviewRepo) Update(ctx context.Context, id uuid.UUID, upd domain.InterviewUpdate) (*domain.AIInterview, error) {
	return r.update(ctx, id, nil, upd)
}

func (r *interviewRepo) UpdateIfStatus(ctx context.Context, id uuid.UUID, allowed []domain.InterviewStatus, upd domain.InterviewUpdate) (*domain.AIInterview, error) {
	return r.update(ctx, id, allowed, upd)
}

func (r *interviewRepo) update(ctx context.Context, id uuid.UUID, allowed []domain.InterviewStatus, upd domain.InterviewUpdate) (*domain.AIInterview, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.ScheduledAt != nil {
		add("scheduled_at", *upd.ScheduledAt)
	}
	if upd.ExpiresAt != nil {
		add("expires_at", *upd.ExpiresAt)
	}
	if upd.InviteSentAt != nil {
		add("invite_sent_at", *upd.InviteSentAt)
	}
	if upd.ReviewedAt != nil {
		add("reviewed_at", *upd.ReviewedAt)
	}
	if upd.CancelledAt != nil {
		add("cancelled_at", *upd.CancelledAt)
	}
	if upd.CancelReason != nil {
		add("cancel_reason", *upd.CancelReason)
	}

	where := "id = $1"
	if allowed != nil {
		args = append(args, statusArgs(allowed))
		where += fmt.Sprintf(" AND status = ANY($%d::text[])", len(args))
	}

	query := fmt.Sprintf(`UPDATE ai_interviews SET %s WHERE %s RETURNING %s`,
		strings.Join(sets, ", "), where, interviewColumns)
	return scanInterview(r.db.QueryRow(ctx, query, args...))
}

func (r *interviewRepo) ExpireOverdue(ctx context.Context, now time.Time, from []domain.InterviewStatus, target domain.InterviewStatus) (int64, error) {
	query := `UPDATE ai_interviews SET status = $1, updated_at = NOW()
		WHERE status = ANY($2::text[]) AND expires_at < $3`
	result, err := r.db.Exec(ctx, query, target, statusArgs(from), now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
