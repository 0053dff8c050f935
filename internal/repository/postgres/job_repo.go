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

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

// jobColumns includes the derived pipeline counters.
const jobColumns = `
	j.id, j.title, j.description, j.department, j.location, j.level,
	j.required_skills, j.nice_to_have_skills, j.status, j.is_archived, j.created_by,
	j.created_at, j.updated_at,
	(SELECT COUNT(*) FROM candidates c WHERE c.job_id = j.id) AS applicant_count,
	(SELECT COUNT(*) FROM candidates c WHERE c.job_id = j.id AND NOT c.is_archived
		AND c.stage NOT IN ('hired', 'rejected')) AS active_candidate_count`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.Title, &job.Description, &job.Department, &job.Location, &job.Level,
		pq.Array(&job.RequiredSkills), pq.Array(&job.NiceToHaveSkills), &job.Status, &job.IsArchived, &job.CreatedBy,
		&job.CreatedAt, &job.UpdatedAt,
		&job.ApplicantCount, &job.ActiveCandidateCnt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (title, description, department, location, level, required_skills, nice_to_have_skills, status, is_archived, created_by)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		job.Title, job.Description, job.Department, job.Location, job.Level,
		pq.Array(job.RequiredSkills), pq.Array(job.NiceToHaveSkills), job.Status, job.IsArchived, job.CreatedBy,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.id = $1`
	return scanJob(r.db.QueryRow(ctx, query, id))
}

func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("j.status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Archived != nil {
		conditions = append(conditions, fmt.Sprintf("j.is_archived = $%d", argIndex))
		args = append(args, *filter.Archived)
		argIndex++
	}
	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs j WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs j WHERE %s ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d`,
		jobColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, id uuid.UUID, upd domain.JobUpdate) (*domain.Job, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Department != nil {
		add("department", *upd.Department)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Level != nil {
		add("level", *upd.Level)
	}
	if upd.RequiredSkills != nil {
		add("required_skills", pq.Array(*upd.RequiredSkills))
	}
	if upd.NiceToHaveSkills != nil {
		add("nice_to_have_skills", pq.Array(*upd.NiceToHaveSkills))
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.IsArchived != nil {
		add("is_archived", *upd.IsArchived)
	}

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $1`, strings.Join(sets, ", "))
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
