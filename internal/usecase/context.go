package usecase

import (
	"context"
	"errors"
	"math"

	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// actorFromContext returns the authenticated user id, or the system actor for
// background work.
func actorFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(domain.KeyUserID).(string); ok && id != "" {
		return id
	}
	return domain.SystemActor
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func paginate[T any](data []T, total int64, page, pageSize int) *domain.PaginatedResult[T] {
	if data == nil {
		data = []T{}
	}
	return &domain.PaginatedResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}
}

// notFound maps the repository sentinel to a 404 and passes other errors through.
func notFound(err error, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(message)
	}
	return err
}
