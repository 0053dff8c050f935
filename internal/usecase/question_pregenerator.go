package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/pkg/logger"
)

const pregenJobTimeout = 3 * time.Minute

type pregenJob struct {
	candidateID uuid.UUID
	jobID       uuid.UUID
	queuedAt    time.Time
}

// QuestionPregenerator generates interview questions in the background after
// scoring, so scheduling can consume a ready set instead of waiting on the oracle.
type QuestionPregenerator struct {
	candidateRepo domain.CandidateRepository
	jobRepo       domain.JobRepository
	questionRepo  domain.QuestionRepository
	oracle        domain.ScoringOracle
	workers       int
	queue         chan pregenJob
	done          chan struct{}
	// mu orders Enqueue against Stop so no job is accepted after the drain begins.
	mu            sync.RWMutex
	stopped       bool
	wg            sync.WaitGroup
	stopOnce      sync.Once
}

func NewQuestionPregenerator(
	candidateRepo domain.CandidateRepository,
	jobRepo domain.JobRepository,
	questionRepo domain.QuestionRepository,
	oracle domain.ScoringOracle,
	workers, queueSize int,
) *QuestionPregenerator {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &QuestionPregenerator{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		questionRepo:  questionRepo,
		oracle:        oracle,
		workers:       workers,
		queue:         make(chan pregenJob, queueSize),
		done:          make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (p *QuestionPregenerator) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	logger.Log.Info("Question pre-generation workers started", "workers", p.workers)
}

// Stop rejects new work, lets the workers drain what was already queued and
// waits for them to finish.
func (p *QuestionPregenerator) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped = true
		close(p.done)
		p.mu.Unlock()
		p.wg.Wait()
		logger.Log.Info("Question pre-generation workers stopped")
	})
}

// Enqueue returns false once Stop has been called.
func (p *QuestionPregenerator) Enqueue(candidateID, jobID uuid.UUID) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		logger.Log.Warn("Question pre-generation stopped, dropping request", "candidate_id", candidateID, "job_id", jobID)
		return false
	}
	select {
	case p.queue <- pregenJob{candidateID: candidateID, jobID: jobID, queuedAt: time.Now()}:
		return true
	default:
		logger.Log.Warn("Question pre-generation queue full, dropping request", "candidate_id", candidateID, "job_id", jobID)
		return false
	}
}

func (p *QuestionPregenerator) worker(n int) {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.queue:
			p.run(n, job)
		case <-p.done:
			for {
				select {
				case job := <-p.queue:
					p.run(n, job)
				default:
					return
				}
			}
		}
	}
}

func (p *QuestionPregenerator) run(n int, job pregenJob) {
	ctx, cancel := context.WithTimeout(context.Background(), pregenJobTimeout)
	defer cancel()
	p.process(ctx, job)
	logger.Log.Debug("Pre-generation job finished", "worker", n, "candidate_id", job.candidateID, "took", time.Since(job.queuedAt))
}

// process runs one pending -> generating -> ready|failed cycle.
func (p *QuestionPregenerator) process(ctx context.Context, job pregenJob) {
	row, err := p.questionRepo.CreatePending(ctx, job.candidateID, job.jobID)
	if err != nil {
		logger.Log.Warn("Failed to create pre-generation row", "candidate_id", job.candidateID, "error", err)
		return
	}
	if err := p.questionRepo.MarkGenerating(ctx, row.ID); err != nil {
		logger.Log.Warn("Failed to mark pre-generation as generating", "pregenerated_id", row.ID, "error", err)
		return
	}

	set, err := p.generate(ctx, job)
	if err != nil {
		logger.Log.Warn("Question pre-generation failed", "pregenerated_id", row.ID, "candidate_id", job.candidateID, "error", err)
		if merr := p.questionRepo.MarkFailed(ctx, row.ID, err.Error()); merr != nil {
			logger.Log.Warn("Failed to mark pre-generation as failed", "pregenerated_id", row.ID, "error", merr)
		}
		return
	}

	if err := p.questionRepo.MarkReady(ctx, row.ID, set); err != nil {
		logger.Log.Warn("Failed to store pre-generated questions", "pregenerated_id", row.ID, "error", err)
		return
	}
	logger.Log.Info("Interview questions pre-generated", "pregenerated_id", row.ID, "candidate_id", job.candidateID, "questions", len(set.Questions))
}

func (p *QuestionPregenerator) generate(ctx context.Context, job pregenJob) (*domain.QuestionSet, error) {
	c, err := p.candidateRepo.GetByID(ctx, job.candidateID)
	if err != nil {
		return nil, notFound(err, candidateNotFoundMsg)
	}
	j, err := p.jobRepo.GetByID(ctx, job.jobID)
	if err != nil {
		return nil, notFound(err, jobNotFoundMsg)
	}
	return p.oracle.GenerateQuestions(ctx, jobData(j), questionCandidateData(c))
}

func jobData(j *domain.Job) domain.JobData {
	return domain.JobData{
		Title:            j.Title,
		Level:            j.Level,
		Description:      j.Description,
		RequiredSkills:   j.RequiredSkills,
		NiceToHaveSkills: j.NiceToHaveSkills,
	}
}

// questionCandidateData builds the profile used for question generation from
// what scoring persisted.
func questionCandidateData(c *domain.Candidate) domain.CandidateData {
	skills := c.Skills
	if len(c.ExtractedSkills) > 0 {
		skills = mergeSkills(c.Skills, c.ExtractedSkills)
	}
	return domain.CandidateData{
		Name:            c.FullName(),
		Skills:          skills,
		YearsExperience: c.YearsExperience,
		ResumeText:      scoringText(c, nil),
	}
}
