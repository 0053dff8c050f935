package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Candidate fields
	"FirstName":    "First name",
	"LastName":     "Last name",
	"Email":        "Email",
	"Phone":        "Phone",
	"GitHubURL":    "GitHub URL",
	"LinkedInURL":  "LinkedIn URL",
	"PortfolioURL": "Portfolio URL",
	"ResumeURL":    "Resume URL",
	"ResumeText":   "Resume text",
	"CoverLetter":  "Cover letter",

	// Job fields
	"NiceToHaveSkills": "Nice-to-have skills",
	"RequiredSkills":   "Required skills",

	// Interview fields
	"CandidateID":       "Candidate",
	"JobID":             "Job",
	"ScheduledAt":       "Scheduled time",
	"DurationMinutes":   "Duration (minutes)",
	"CustomMessage":     "Custom message",
	"CandidateTimezone": "Candidate timezone",
	"RejectionReason":   "Rejection reason",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))
	case "email":
		return fmt.Sprintf("%s is not a valid email address", label)
	case "url":
		return fmt.Sprintf("%s is not a valid URL", label)
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and . ' -", label)
	case "valid_phone":
		return fmt.Sprintf("%s must be 7-15 digits with an optional leading +", label)
	case "iana_timezone":
		return fmt.Sprintf("%s must be an IANA timezone such as Europe/Berlin", label)
	case "future_time":
		return fmt.Sprintf("%s must be in the future", label)
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
