package v1

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
	"github.com/zordhalo/lontario-YC-sub000/pkg/validation"
)

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.Error(apperror.Validation("Invalid " + name))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds and validates the body, turning validator errors into one
// readable validation message.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if msgs := validation.FormatValidationErrors(err); len(msgs) > 0 {
			c.Error(apperror.Validation(strings.Join(msgs, "; ")))
		} else {
			c.Error(apperror.Validation("Invalid request body"))
		}
		return false
	}
	return true
}

func camelCase(c *gin.Context) bool {
	return c.Query("case") == domain.CaseCamel
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

func queryBool(c *gin.Context, key string) *bool {
	v, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return nil
	}
	return &v
}

func candidateOut(c *gin.Context, cand *domain.Candidate) interface{} {
	if cand != nil && camelCase(c) {
		return domain.NormalizeCandidate(cand)
	}
	return cand
}

func interviewOut(c *gin.Context, iv *domain.AIInterview) interface{} {
	if iv != nil && camelCase(c) {
		return domain.NormalizeInterview(iv)
	}
	return iv
}

func jobOut(c *gin.Context, j *domain.Job) interface{} {
	if j != nil && camelCase(c) {
		return domain.NormalizeJob(j)
	}
	return j
}
