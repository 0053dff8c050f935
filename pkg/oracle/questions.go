package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
)

const questionSystemPrompt = "You design structured technical interviews. Return only valid JSON."

func buildQuestionPrompt(job domain.JobData, candidate domain.CandidateData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Design an interview for the %s %s role.\n", job.Level, job.Title)
	fmt.Fprintf(&b, "Required skills: %s\n", strings.Join(job.RequiredSkills, ", "))
	fmt.Fprintf(&b, "Nice-to-have skills: %s\n", strings.Join(job.NiceToHaveSkills, ", "))
	fmt.Fprintf(&b, "Job description:\n%s\n\n", job.Description)
	fmt.Fprintf(&b, "Candidate: %s\nSkills: %s\n", candidate.Name, strings.Join(candidate.Skills, ", "))
	if candidate.ResumeText != "" {
		fmt.Fprintf(&b, "Background:\n\"\"\"\n%s\n\"\"\"\n", candidate.ResumeText)
	}
	fmt.Fprintf(&b, `
Write between %d and %d questions mixing technical, behavioral, system_design, problem_solving and culture.
Tailor follow-ups to gaps in the candidate's background.
Return JSON with this exact structure:
{
  "questions": [
    {
      "id": "q1",
      "category": "technical|behavioral|system_design|problem_solving|culture",
      "difficulty": "easy|medium|hard",
      "question": "...",
      "context": "why this question is asked",
      "scoring_rubric": ["at least one criterion"],
      "estimated_time": 5
    }
  ],
  "total_estimated_time": 30
}`, domain.MinInterviewQuestions, domain.MaxInterviewQuestions)
	return b.String()
}

// GenerateQuestions returns a validated 6-10 question set.
func (c *Client) GenerateQuestions(ctx context.Context, job domain.JobData, candidate domain.CandidateData) (*domain.QuestionSet, error) {
	var set domain.QuestionSet
	if err := c.completeJSON(ctx, questionSystemPrompt, buildQuestionPrompt(job, candidate), 0.7, &set); err != nil {
		return nil, err
	}

	for i := range set.Questions {
		if set.Questions[i].ID == "" {
			set.Questions[i].ID = fmt.Sprintf("q%d", i+1)
		}
	}
	if len(set.Questions) > domain.MaxInterviewQuestions {
		set.Questions = set.Questions[:domain.MaxInterviewQuestions]
		set.TotalEstimatedTime = 0
	}
	set.TotalEstimatedTime = set.EstimatedMinutes()

	if err := set.Validate(); err != nil {
		return nil, apperror.Integration(MsgUnavailable, fmt.Errorf("invalid question set: %w", err))
	}
	return &set, nil
}
