package validation

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type scheduleForm struct {
	ScheduledAt       time.Time `validate:"required,future_time"`
	CandidateTimezone string    `validate:"omitempty,iana_timezone"`
	FirstName         string    `validate:"valid_name"`
	Phone             string    `validate:"valid_phone"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

func TestCustomValidators(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()
	v := newValidator()

	t.Run("Should accept a valid form", func(t *testing.T) {
		err := v.Struct(scheduleForm{
			ScheduledAt:       fixed.Add(time.Hour),
			CandidateTimezone: "America/New_York",
			FirstName:         "Anne-Marie O'Neil",
			Phone:             "+1 555-010-9999",
		})
		assert.NoError(t, err)
	})

	t.Run("Should reject past times and unknown zones", func(t *testing.T) {
		err := v.Struct(scheduleForm{
			ScheduledAt:       fixed.Add(-time.Minute),
			CandidateTimezone: "Moon/Base",
		})
		msgs := FormatValidationErrors(err)
		assert.Contains(t, msgs, "Scheduled time must be in the future")
		assert.Contains(t, msgs, "Candidate timezone must be an IANA timezone such as Europe/Berlin")
	})

	t.Run("Should reject Local as a timezone", func(t *testing.T) {
		err := v.Struct(scheduleForm{ScheduledAt: fixed.Add(time.Hour), CandidateTimezone: "Local"})
		assert.Error(t, err)
	})

	t.Run("Should reject names with digits", func(t *testing.T) {
		err := v.Struct(scheduleForm{ScheduledAt: fixed.Add(time.Hour), FirstName: "R2D2"})
		assert.Equal(t, []string{"First name may only contain letters, spaces and . ' -"}, FormatValidationErrors(err))
	})
}
