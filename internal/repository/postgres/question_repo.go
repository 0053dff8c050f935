package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
)

type questionRepo struct {
	db *pgxpool.Pool
}

func NewQuestionRepository(db *pgxpool.Pool) domain.QuestionRepository {
	return &questionRepo{db: db}
}

func (r *questionRepo) CreatePending(ctx context.Context, candidateID, jobID uuid.UUID) (*domain.PregeneratedQuestions, error) {
	p := &domain.PregeneratedQuestions{
		CandidateID: candidateID,
		JobID:       jobID,
		Status:      domain.PregenStatusPending,
		Questions:   []domain.Question{},
	}
	query := `INSERT INTO pregenerated_questions (candidate_id, job_id, status, questions)
              VALUES ($1, $2, $3, '[]'::jsonb) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, candidateID, jobID, p.Status).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *questionRepo) setStatus(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *questionRepo) MarkGenerating(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx,
		`UPDATE pregenerated_questions SET status = 'generating', updated_at = NOW() WHERE id = $1 AND status = 'pending'`, id)
}

func (r *questionRepo) MarkReady(ctx context.Context, id uuid.UUID, set *domain.QuestionSet) error {
	questions, err := jsonbParam(set.Questions)
	if err != nil {
		return err
	}
	return r.setStatus(ctx,
		`UPDATE pregenerated_questions
		 SET status = 'ready', questions = $2::jsonb, total_questions = $3, total_estimated_time = $4,
		     generated_at = NOW(), error_message = NULL, updated_at = NOW()
		 WHERE id = $1`,
		id, questions, len(set.Questions), set.EstimatedMinutes())
}

func (r *questionRepo) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	return r.setStatus(ctx,
		`UPDATE pregenerated_questions SET status = 'failed', error_message = $2, updated_at = NOW() WHERE id = $1`,
		id, message)
}

func (r *questionRepo) GetLatestReady(ctx context.Context, candidateID, jobID uuid.UUID) (*domain.PregeneratedQuestions, error) {
	query := `SELECT id, candidate_id, job_id, status, questions::text, total_questions, total_estimated_time,
			error_message, generated_at, used_at, created_at, updated_at
		FROM pregenerated_questions
		WHERE candidate_id = $1 AND job_id = $2 AND status = 'ready'
		ORDER BY generated_at DESC NULLS LAST LIMIT 1`

	var p domain.PregeneratedQuestions
	var questions *string
	err := r.db.QueryRow(ctx, query, candidateID, jobID).Scan(
		&p.ID, &p.CandidateID, &p.JobID, &p.Status, &questions, &p.TotalQuestions, &p.TotalEstimatedTime,
		&p.ErrorMessage, &p.GeneratedAt, &p.UsedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := jsonbScan(questions, &p.Questions); err != nil {
		return nil, err
	}
	return &p, nil
}
