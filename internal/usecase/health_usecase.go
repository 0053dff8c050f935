package usecase

import (
	"context"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	// Check reports each dependency as ok, down or disabled. The boolean is
	// false only when the database is unreachable.
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	db        Pinger
	optional  map[string]Pinger
	oracleSet bool
}

// NewHealthUsecase takes the database plus optional dependencies (nil means disabled).
func NewHealthUsecase(db Pinger, optional map[string]Pinger, oracleConfigured bool) HealthUsecase {
	return &healthUsecase{db: db, optional: optional, oracleSet: oracleConfigured}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "database": "ok"}
	healthy := true
	if u.db == nil || u.db.Ping(ctx) != nil {
		status["database"] = "down"
		status["status"] = "degraded"
		healthy = false
	}

	for name, p := range u.optional {
		switch {
		case p == nil:
			status[name] = "disabled"
		case p.Ping(ctx) != nil:
			status[name] = "down"
		default:
			status[name] = "ok"
		}
	}

	status["oracle"] = "disabled"
	if u.oracleSet {
		status["oracle"] = "ok"
	}
	return status, healthy
}
