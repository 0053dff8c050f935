package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
	"github.com/zordhalo/lontario-YC-sub000/pkg/logger"
)

const (
	maxExportRows  = 10000
	exportLinkTTL  = 15 * time.Minute
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportKeyRoot  = "pipeline-exports"
	jobNotFoundMsg = "Job not found"
)

type jobUsecase struct {
	jobRepo       domain.JobRepository
	candidateRepo domain.CandidateRepository
	exportStore   domain.ExportStore
	now           func() time.Time
}

// NewJobUsecase wires job management. exportStore may be nil when object
// storage is not configured.
func NewJobUsecase(jobRepo domain.JobRepository, candidateRepo domain.CandidateRepository, exportStore domain.ExportStore) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		exportStore:   exportStore,
		now:           time.Now,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, input domain.CreateJobInput) (*domain.Job, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperror.Validation("Title is required")
	}

	job := &domain.Job{
		Title:            title,
		Description:      input.Description,
		Department:       input.Department,
		Location:         input.Location,
		Level:            input.Level,
		RequiredSkills:   cleanSkills(input.RequiredSkills),
		NiceToHaveSkills: cleanSkills(input.NiceToHaveSkills),
		Status:           input.Status,
	}
	if job.Level == "" {
		job.Level = domain.JobLevelMid
	}
	if job.Status == "" {
		job.Status = domain.JobStatusDraft
	}
	if !domain.IsValidJobStatus(job.Status) {
		return nil, apperror.Validation("Invalid job status: " + job.Status)
	}
	actor := actorFromContext(ctx)
	job.CreatedBy = &actor

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	logger.Log.Info("Job created", "job_id", job.ID, "actor", actor)
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, jobNotFoundMsg)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) (*domain.PaginatedResult[domain.Job], error) {
	if filter.Status != "" && !domain.IsValidJobStatus(filter.Status) {
		return nil, apperror.Validation("Invalid job status: " + filter.Status)
	}
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)

	jobs, total, err := u.jobRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return paginate(jobs, total, filter.Page, filter.PageSize), nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, id uuid.UUID, upd domain.JobUpdate) (*domain.Job, error) {
	if upd.Title != nil {
		t := strings.TrimSpace(*upd.Title)
		if t == "" {
			return nil, apperror.Validation("Title cannot be empty")
		}
		upd.Title = &t
	}
	if upd.Status != nil && !domain.IsValidJobStatus(*upd.Status) {
		return nil, apperror.Validation("Invalid job status: " + *upd.Status)
	}
	if upd.RequiredSkills != nil {
		s := cleanSkills(*upd.RequiredSkills)
		upd.RequiredSkills = &s
	}
	if upd.NiceToHaveSkills != nil {
		s := cleanSkills(*upd.NiceToHaveSkills)
		upd.NiceToHaveSkills = &s
	}

	job, err := u.jobRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, notFound(err, jobNotFoundMsg)
	}
	return job, nil
}

func (u *jobUsecase) ArchiveJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return u.setArchived(ctx, id, true)
}

func (u *jobUsecase) UnarchiveJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return u.setArchived(ctx, id, false)
}

func (u *jobUsecase) setArchived(ctx context.Context, id uuid.UUID, archived bool) (*domain.Job, error) {
	job, err := u.jobRepo.Update(ctx, id, domain.JobUpdate{IsArchived: &archived})
	if err != nil {
		return nil, notFound(err, jobNotFoundMsg)
	}
	logger.Log.Info("Job archive state changed", "job_id", id, "archived", archived)
	return job, nil
}

// ExportPipeline renders every candidate of a job as an xlsx sheet.
func (u *jobUsecase) ExportPipeline(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", notFound(err, jobNotFoundMsg)
	}

	candidates, _, err := u.candidateRepo.Fetch(ctx, domain.CandidateFilter{
		JobID:    &id,
		Sort:     "score",
		Page:     1,
		PageSize: maxExportRows,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch candidates for export: %w", err)
	}

	data, err := buildPipelineWorkbook(job, candidates)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("pipeline_%s_%s.xlsx", slug(job.Title), u.now().Format("20060102_150405"))
	return data, filename, nil
}

func (u *jobUsecase) StorePipelineExport(ctx context.Context, id uuid.UUID) (*domain.ExportLink, error) {
	if u.exportStore == nil {
		return nil, apperror.Configuration("Export storage not configured", nil)
	}
	data, filename, err := u.ExportPipeline(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s/%s", exportKeyRoot, id, filename)
	url, err := u.exportStore.Upload(ctx, key, xlsxMIME, data, exportLinkTTL)
	if err != nil {
		return nil, apperror.Integration("Failed to upload export", err)
	}
	return &domain.ExportLink{Filename: filename, URL: url, ExpiresAt: u.now().Add(exportLinkTTL)}, nil
}

var pipelineColumns = []string{"NAME", "EMAIL", "STAGE", "AI SCORE", "RECOMMENDATION", "STARRED", "ARCHIVED", "APPLIED"}

func buildPipelineWorkbook(job *domain.Job, candidates []domain.Candidate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheetName := "Pipeline"
	f.SetSheetName("Sheet1", sheetName)

	for i, header := range pipelineColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Style headers - Dark Blue background with White text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(pipelineColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, c := range candidates {
		values := []interface{}{
			c.FullName(),
			c.Email,
			string(c.Stage),
			scoreCell(&c),
			derefOr(c.AIRecommendation, ""),
			yesNo(c.IsStarred),
			yesNo(c.IsArchived),
			c.CreatedAt.Format("2006-01-02"),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := range pipelineColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}
	f.SetDocProps(&excelize.DocProperties{Title: job.Title + " pipeline"})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// scoreCell separates "never scored" from the explicit insufficient-data zero.
func scoreCell(c *domain.Candidate) interface{} {
	if c.AIScore == nil {
		return "Not scored"
	}
	if *c.AIScore == 0 && c.AISummary != nil && *c.AISummary == domain.InsufficientDataSummary {
		return "Insufficient data"
	}
	return *c.AIScore
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "_"):
			b.WriteByte('_')
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// cleanSkills trims, drops empties and de-duplicates case-insensitively.
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
