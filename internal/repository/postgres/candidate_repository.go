package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

const candidateColumns = `
	id, job_id, first_name, last_name, email, phone, location,
	github_url, linkedin_url, portfolio_url, resume_url, resume_text, cover_letter,
	skills, source, avatar_url, years_experience,
	ai_score, ai_summary, ai_strengths, ai_concerns, ai_score_breakdown::text, ai_recommendation,
	extracted_skills, scored_at,
	stage, rejection_reason, is_starred, is_archived, created_at, updated_at`

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	var breakdown *string
	err := row.Scan(
		&c.ID, &c.JobID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Location,
		&c.GitHubURL, &c.LinkedInURL, &c.PortfolioURL, &c.ResumeURL, &c.ResumeText, &c.CoverLetter,
		pq.Array(&c.Skills), &c.Source, &c.AvatarURL, &c.YearsExperience,
		&c.AIScore, &c.AISummary, pq.Array(&c.AIStrengths), pq.Array(&c.AIConcerns), &breakdown, &c.AIRecommendation,
		pq.Array(&c.ExtractedSkills), &c.ScoredAt,
		&c.Stage, &c.RejectionReason, &c.IsStarred, &c.IsArchived, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if breakdown != nil {
		c.AIScoreBreakdown = &domain.ScoreBreakdown{}
		if err := jsonbScan(breakdown, c.AIScoreBreakdown); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	query := `INSERT INTO candidates (
			job_id, first_name, last_name, email, phone, location,
			github_url, linkedin_url, portfolio_url, resume_url, resume_text, cover_letter,
			skills, source, stage
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		c.JobID, c.FirstName, c.LastName, c.Email, c.Phone, c.Location,
		c.GitHubURL, c.LinkedInURL, c.PortfolioURL, c.ResumeURL, c.ResumeText, c.CoverLetter,
		pq.Array(c.Skills), c.Source, c.Stage,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *candidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return scanCandidate(r.db.QueryRow(ctx, query, id))
}

func (r *candidateRepository) Fetch(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filter.JobID != nil {
		conditions = append(conditions, fmt.Sprintf("job_id = $%d", argIndex))
		args = append(args, *filter.JobID)
		argIndex++
	}
	if filter.Stage != "" {
		conditions = append(conditions, fmt.Sprintf("stage = $%d", argIndex))
		args = append(args, filter.Stage)
		argIndex++
	}
	if filter.Starred != nil {
		conditions = append(conditions, fmt.Sprintf("is_starred = $%d", argIndex))
		args = append(args, *filter.Starred)
		argIndex++
	}
	if filter.Archived != nil {
		conditions = append(conditions, fmt.Sprintf("is_archived = $%d", argIndex))
		args = append(args, *filter.Archived)
		argIndex++
	}
	if filter.MinScore != nil {
		conditions = append(conditions, fmt.Sprintf("ai_score >= $%d", argIndex))
		args = append(args, *filter.MinScore)
		argIndex++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	whereClause := strings.Join(conditions, " AND ")

	orderClause := "created_at DESC"
	switch filter.Sort {
	case "oldest":
		orderClause = "created_at ASC"
	case "score":
		orderClause = "ai_score DESC NULLS LAST, created_at DESC"
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidates WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		candidateColumns, whereClause, orderClause, argIndex, argIndex+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}

// Update always bumps updated_at, so an empty update is a "touch".
func (r *candidateRepository) Update(ctx context.Context, id uuid.UUID, upd domain.CandidateUpdate) (*domain.Candidate, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	add := func(expr string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}

	if upd.AIScore != nil {
		add("ai_score = $%d", *upd.AIScore)
	}
	if upd.AISummary != nil {
		add("ai_summary = $%d", *upd.AISummary)
	}
	if upd.AIStrengths != nil {
		add("ai_strengths = $%d", pq.Array(*upd.AIStrengths))
	}
	if upd.AIConcerns != nil {
		add("ai_concerns = $%d", pq.Array(*upd.AIConcerns))
	}
	if upd.AIScoreBreakdown != nil {
		raw, err := jsonbParam(upd.AIScoreBreakdown)
		if err != nil {
			return nil, err
		}
		add("ai_score_breakdown = $%d::jsonb", raw)
	}
	if upd.AIRecommendation != nil {
		add("ai_recommendation = $%d", *upd.AIRecommendation)
	}
	if upd.ExtractedSkills != nil {
		add("extracted_skills = $%d", pq.Array(*upd.ExtractedSkills))
	}
	if upd.ScoredAt != nil {
		add("scored_at = $%d", *upd.ScoredAt)
	}
	if upd.AvatarURL != nil {
		add("avatar_url = $%d", *upd.AvatarURL)
	}
	if upd.YearsExperience != nil {
		add("years_experience = $%d", *upd.YearsExperience)
	}
	if upd.IsStarred != nil {
		add("is_starred = $%d", *upd.IsStarred)
	}
	if upd.IsArchived != nil {
		add("is_archived = $%d", *upd.IsArchived)
	}

	query := fmt.Sprintf(`UPDATE candidates SET %s WHERE id = $1 RETURNING %s`, strings.Join(sets, ", "), candidateColumns)
	return scanCandidate(r.db.QueryRow(ctx, query, args...))
}

// ChangeStage writes the stage and its activity entry in one transaction.
func (r *candidateRepository) ChangeStage(ctx context.Context, id uuid.UUID, change domain.StageChange) (*domain.Candidate, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// rejection_reason only survives while the candidate stays rejected
	var reason *string
	if change.To == domain.StageRejected {
		reason = change.RejectionReason
	}

	query := fmt.Sprintf(`UPDATE candidates SET stage = $2, rejection_reason = $3, updated_at = NOW()
		WHERE id = $1 RETURNING %s`, candidateColumns)
	c, err := scanCandidate(tx.QueryRow(ctx, query, id, change.To, reason))
	if err != nil {
		return nil, err
	}

	from := string(change.From)
	to := string(change.To)
	activity := &domain.Activity{
		CandidateID: id,
		Type:        domain.ActivityStageChanged,
		Description: fmt.Sprintf("Moved from %s to %s", from, to),
		OldValue:    &from,
		NewValue:    &to,
		Actor:       change.Actor,
	}
	if reason != nil {
		activity.Metadata = map[string]any{"rejection_reason": *reason}
	}
	if err := insertActivity(ctx, tx, activity); err != nil {
		return nil, fmt.Errorf("record stage change: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
