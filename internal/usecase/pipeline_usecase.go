package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/internal/viewcache"
	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
	"github.com/zordhalo/lontario-YC-sub000/pkg/logger"
)

const (
	candidateViewKind    = "candidates"
	candidateNotFoundMsg = "Candidate not found"
)

type pipelineUsecase struct {
	candidateRepo domain.CandidateRepository
	activityRepo  domain.ActivityRepository
	cache         *viewcache.Cache
}

func NewPipelineUsecase(candidateRepo domain.CandidateRepository, activityRepo domain.ActivityRepository, cache *viewcache.Cache) domain.PipelineUsecase {
	return &pipelineUsecase{
		candidateRepo: candidateRepo,
		activityRepo:  activityRepo,
		cache:         cache,
	}
}

func (u *pipelineUsecase) GetCandidate(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	key := viewcache.DetailKey(candidateViewKind, id.String())
	var cached domain.Candidate
	if u.cache.Get(key, &cached) {
		return &cached, nil
	}

	c, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, candidateNotFoundMsg)
	}
	if err := u.cache.Set(key, c); err != nil {
		logger.Log.Warn("Failed to cache candidate", "candidate_id", id, "error", err)
	}
	return c, nil
}

func (u *pipelineUsecase) ListCandidates(ctx context.Context, filter domain.CandidateFilter) (*domain.PaginatedResult[domain.Candidate], error) {
	if filter.Stage != "" && !filter.Stage.IsValid() {
		return nil, apperror.Validation("Invalid stage: " + string(filter.Stage))
	}
	switch filter.Sort {
	case "", "newest", "oldest", "score":
	default:
		return nil, apperror.Validation("Invalid sort: " + filter.Sort)
	}
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)

	key := viewcache.ListKey(candidateViewKind, filter)
	var cached domain.PaginatedResult[domain.Candidate]
	if u.cache.Get(key, &cached) {
		return &cached, nil
	}

	candidates, total, err := u.candidateRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := paginate(candidates, total, filter.Page, filter.PageSize)
	if err := u.cache.Set(key, result); err != nil {
		logger.Log.Warn("Failed to cache candidate list", "error", err)
	}
	return result, nil
}

// MoveCandidate applies a stage change. Any stage may follow any other; only
// a rejection needs a reason.
func (u *pipelineUsecase) MoveCandidate(ctx context.Context, id uuid.UUID, target domain.Stage, opts domain.StageChangeOptions) (*domain.Candidate, error) {
	if !target.IsValid() {
		return nil, apperror.Validation("Invalid stage: " + string(target))
	}
	reason := strings.TrimSpace(opts.RejectionReason)
	if target == domain.StageRejected && reason == "" {
		return nil, apperror.Validation("A rejection reason is required to reject a candidate")
	}

	current, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, candidateNotFoundMsg)
	}

	change := domain.StageChange{From: current.Stage, To: target, Actor: actorFromContext(ctx)}
	if target == domain.StageRejected {
		change.RejectionReason = &reason
	}

	var updated *domain.Candidate
	err = u.mutate(id, func(c *domain.Candidate) {
		c.Stage = target
		c.RejectionReason = change.RejectionReason
	}, func() error {
		var cerr error
		updated, cerr = u.candidateRepo.ChangeStage(ctx, id, change)
		return cerr
	})
	if err != nil {
		logger.Log.Warn("Stage change failed, cached views rolled back", "candidate_id", id, "target", target, "error", err)
		return nil, notFound(err, candidateNotFoundMsg)
	}

	logger.Log.Info("Candidate stage changed", "candidate_id", id, "from", change.From, "to", target, "actor", change.Actor)
	return updated, nil
}

func (u *pipelineUsecase) AdvanceCandidate(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	current, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, candidateNotFoundMsg)
	}
	next, ok := domain.NextStage(current.Stage)
	if !ok {
		return nil, apperror.InvalidState("Candidate cannot advance from stage " + string(current.Stage))
	}
	return u.MoveCandidate(ctx, id, next, domain.StageChangeOptions{})
}

func (u *pipelineUsecase) StarCandidate(ctx context.Context, id uuid.UUID, starred bool) (*domain.Candidate, error) {
	activity := domain.ActivityUnstarred
	if starred {
		activity = domain.ActivityStarred
	}
	return u.toggle(ctx, id, domain.CandidateUpdate{IsStarred: &starred}, func(c *domain.Candidate) {
		c.IsStarred = starred
	}, activity)
}

func (u *pipelineUsecase) ArchiveCandidate(ctx context.Context, id uuid.UUID, archived bool) (*domain.Candidate, error) {
	activity := domain.ActivityUnarchived
	if archived {
		activity = domain.ActivityArchived
	}
	return u.toggle(ctx, id, domain.CandidateUpdate{IsArchived: &archived}, func(c *domain.Candidate) {
		c.IsArchived = archived
	}, activity)
}

func (u *pipelineUsecase) toggle(ctx context.Context, id uuid.UUID, upd domain.CandidateUpdate, apply func(*domain.Candidate), activityType string) (*domain.Candidate, error) {
	var updated *domain.Candidate
	err := u.mutate(id, apply, func() error {
		var cerr error
		updated, cerr = u.candidateRepo.Update(ctx, id, upd)
		return cerr
	})
	if err != nil {
		return nil, notFound(err, candidateNotFoundMsg)
	}

	recordActivity(ctx, u.activityRepo, &domain.Activity{
		CandidateID: id,
		Type:        activityType,
		Description: "Candidate " + strings.ReplaceAll(activityType, "_", " "),
		Actor:       actorFromContext(ctx),
	})
	return updated, nil
}

func (u *pipelineUsecase) ListActivities(ctx context.Context, candidateID uuid.UUID) ([]domain.Activity, error) {
	if _, err := u.candidateRepo.GetByID(ctx, candidateID); err != nil {
		return nil, notFound(err, candidateNotFoundMsg)
	}
	return u.activityRepo.ListByCandidate(ctx, candidateID)
}

func (u *pipelineUsecase) InvalidateCandidate(id uuid.UUID) {
	u.cache.Invalidate(u.affectedKeys(id)...)
}

// affectedKeys is the candidate's detail view plus every cached list, since
// any list may contain it.
func (u *pipelineUsecase) affectedKeys(id uuid.UUID) []viewcache.Key {
	detail := viewcache.DetailKey(candidateViewKind, id.String())
	keys := []viewcache.Key{detail}
	for _, k := range u.cache.Keys(candidateViewKind) {
		if k.List {
			keys = append(keys, k)
		}
	}
	return keys
}

// mutate runs commit through the optimistic cache protocol, applying fn to
// every cached copy of the candidate first.
func (u *pipelineUsecase) mutate(id uuid.UUID, fn func(*domain.Candidate), commit func() error) error {
	return u.cache.Mutate(viewcache.Mutation{
		Keys: u.affectedKeys(id),
		Apply: func(key viewcache.Key, raw []byte) ([]byte, bool, error) {
			if !key.List {
				var c domain.Candidate
				if err := json.Unmarshal(raw, &c); err != nil {
					return nil, false, err
				}
				fn(&c)
				out, err := json.Marshal(&c)
				return out, true, err
			}

			var page domain.PaginatedResult[domain.Candidate]
			if err := json.Unmarshal(raw, &page); err != nil {
				return nil, false, err
			}
			found := false
			for i := range page.Data {
				if page.Data[i].ID == id {
					fn(&page.Data[i])
					found = true
				}
			}
			if !found {
				return nil, false, nil
			}
			out, err := json.Marshal(&page)
			return out, true, err
		},
		Commit: commit,
	})
}

// recordActivity writes an audit entry; failures are logged, never returned.
func recordActivity(ctx context.Context, repo domain.ActivityRepository, a *domain.Activity) {
	if err := repo.Create(ctx, a); err != nil {
		logger.Log.Warn("Failed to record activity", "candidate_id", a.CandidateID, "type", a.Type, "error", err)
	}
}
