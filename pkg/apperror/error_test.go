package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("Should classify wrapped app errors", func(t *testing.T) {
		err := fmt.Errorf("scheduling: %w", apperror.InvalidState("already cancelled"))
		assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	})

	t.Run("Should treat plain errors as internal", func(t *testing.T) {
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(errors.New("boom")))
		assert.False(t, apperror.Is(nil, apperror.KindInternal))
	})

	t.Run("Should derive kind from HTTP code in New", func(t *testing.T) {
		assert.Equal(t, apperror.KindRateLimit, apperror.New(http.StatusTooManyRequests, "slow down", nil).Kind)
		assert.Equal(t, apperror.KindValidation, apperror.BadRequest("bad").Kind)
	})

	t.Run("Should unwrap the cause", func(t *testing.T) {
		cause := errors.New("quota")
		err := apperror.RateLimited("try again later", cause)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, http.StatusTooManyRequests, err.Code)
	})
}
