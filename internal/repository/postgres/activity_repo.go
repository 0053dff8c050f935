package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
)

type activityRepo struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) domain.ActivityRepository {
	return &activityRepo{db: db}
}

// queryRower is satisfied by both the pool and a transaction.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertActivity(ctx context.Context, q queryRower, a *domain.Activity) error {
	metadata, err := jsonbParam(a.Metadata)
	if err != nil {
		return err
	}
	if a.Metadata == nil {
		metadata = nil
	}
	query := `INSERT INTO candidate_activities (candidate_id, type, description, old_value, new_value, actor, metadata)
              VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb) RETURNING id, created_at`
	return q.QueryRow(ctx, query,
		a.CandidateID, a.Type, a.Description, a.OldValue, a.NewValue, a.Actor, metadata,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *activityRepo) Create(ctx context.Context, a *domain.Activity) error {
	return insertActivity(ctx, r.db, a)
}

func (r *activityRepo) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]domain.Activity, error) {
	query := `SELECT id, candidate_id, type, description, old_value, new_value, actor, metadata::text, created_at
              FROM candidate_activities WHERE candidate_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var a domain.Activity
		var metadata *string
		if err := rows.Scan(&a.ID, &a.CandidateID, &a.Type, &a.Description, &a.OldValue, &a.NewValue,
			&a.Actor, &metadata, &a.CreatedAt); err != nil {
			return nil, err
		}
		if err := jsonbScan(metadata, &a.Metadata); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
