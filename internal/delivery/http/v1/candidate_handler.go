package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zordhalo/lontario-YC-sub000/internal/delivery/http/response"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
)

type CandidateHandler struct {
	pipelineUC  domain.PipelineUsecase
	scoringUC   domain.ScoringUsecase
	interviewUC domain.InterviewUsecase
}

// NewCandidateHandler registers candidate routes. aiLimit guards the routes
// that call the model.
func NewCandidateHandler(protected *gin.RouterGroup, pipelineUC domain.PipelineUsecase, scoringUC domain.ScoringUsecase, interviewUC domain.InterviewUsecase, aiLimit gin.HandlerFunc) {
	handler := &CandidateHandler{pipelineUC: pipelineUC, scoringUC: scoringUC, interviewUC: interviewUC}

	protected.POST("/jobs/:id/candidates", aiLimit, handler.Create)

	candidates := protected.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.GET("/:id", handler.Get)
		candidates.POST("/:id/score", aiLimit, handler.Score)
		candidates.POST("/:id/stage", handler.MoveStage)
		candidates.POST("/:id/advance", handler.Advance)
		candidates.POST("/:id/star", handler.Star)
		candidates.POST("/:id/archive", handler.Archive)
		candidates.GET("/:id/activities", handler.Activities)
		candidates.GET("/:id/interview", handler.Interview)
	}
}

type MoveStageRequest struct {
	Stage           domain.Stage `json:"stage" binding:"required"`
	RejectionReason string       `json:"rejection_reason" binding:"max=1000"`
}

type ToggleRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// Create godoc
// @Summary      Add a candidate to a job
// @Description  Persists the candidate, then scores it inline. Scoring failure is reported in the body and never fails creation.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id         path      string                       true  "Job ID"
// @Param        candidate  body      domain.CreateCandidateInput  true  "Candidate JSON"
// @Success      201        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      429        {object}  response.Response
// @Router       /jobs/{id}/candidates [post]
// @Security     BearerAuth
func (h *CandidateHandler) Create(c *gin.Context) {
	jobID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req domain.CreateCandidateInput
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.scoringUC.CreateCandidate(c.Request.Context(), jobID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidate created", gin.H{
		"candidate": candidateOut(c, created.Candidate),
		"scoring":   created.Scoring,
	})
}

// List godoc
// @Summary      List candidates
// @Tags         candidates
// @Produce      json
// @Param        job_id     query     string  false  "Job ID"
// @Param        stage      query     string  false  "Pipeline stage"
// @Param        starred    query     bool    false  "Starred filter"
// @Param        archived   query     bool    false  "Archived filter"
// @Param        search     query     string  false  "Name or email search"
// @Param        min_score  query     int     false  "Minimum AI score"
// @Param        sort       query     string  false  "newest, oldest or score"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /candidates [get]
// @Security     BearerAuth
func (h *CandidateHandler) List(c *gin.Context) {
	filter := domain.CandidateFilter{
		Stage:    domain.Stage(c.Query("stage")),
		Starred:  queryBool(c, "starred"),
		Archived: queryBool(c, "archived"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if raw := c.Query("job_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.Error(apperror.Validation("Invalid job_id"))
			return
		}
		filter.JobID = &id
	}
	if c.Query("min_score") != "" {
		score := queryInt(c, "min_score", 0)
		filter.MinScore = &score
	}

	result, err := h.pipelineUC.ListCandidates(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	if camelCase(c) {
		views := make([]domain.CandidateView, 0, len(result.Data))
		for i := range result.Data {
			views = append(views, domain.NormalizeCandidate(&result.Data[i]))
		}
		response.Success(c, http.StatusOK, "Candidates retrieved", domain.PaginatedResult[domain.CandidateView]{
			Data: views, Total: result.Total, Page: result.Page, PageSize: result.PageSize, TotalPages: result.TotalPages,
		})
		return
	}
	response.Success(c, http.StatusOK, "Candidates retrieved", result)
}

// Get godoc
// @Summary      Get a candidate
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	cand, err := h.pipelineUC.GetCandidate(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate retrieved", candidateOut(c, cand))
}

// Score godoc
// @Summary      Re-run AI scoring
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /candidates/{id}/score [post]
// @Security     BearerAuth
func (h *CandidateHandler) Score(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	result, err := h.scoringUC.ScoreCandidate(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Scoring finished", result)
}

// MoveStage godoc
// @Summary      Move a candidate to a stage
// @Description  Moving to rejected requires rejection_reason.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Candidate ID"
// @Param        body  body      MoveStageRequest  true  "Target stage"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /candidates/{id}/stage [post]
// @Security     BearerAuth
func (h *CandidateHandler) MoveStage(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req MoveStageRequest
	if !bindJSON(c, &req) {
		return
	}

	cand, err := h.pipelineUC.MoveCandidate(c.Request.Context(), id, req.Stage, domain.StageChangeOptions{
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Stage updated", candidateOut(c, cand))
}

// Advance godoc
// @Summary      Advance a candidate to the next stage
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /candidates/{id}/advance [post]
// @Security     BearerAuth
func (h *CandidateHandler) Advance(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	cand, err := h.pipelineUC.AdvanceCandidate(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Stage updated", candidateOut(c, cand))
}

// Star godoc
// @Summary      Star or unstar a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Candidate ID"
// @Param        body  body      ToggleRequest  true  "New value"
// @Success      200   {object}  response.Response
// @Router       /candidates/{id}/star [post]
// @Security     BearerAuth
func (h *CandidateHandler) Star(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req ToggleRequest
	if !bindJSON(c, &req) {
		return
	}
	cand, err := h.pipelineUC.StarCandidate(c.Request.Context(), id, *req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate updated", candidateOut(c, cand))
}

// Archive godoc
// @Summary      Archive or restore a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Candidate ID"
// @Param        body  body      ToggleRequest  true  "New value"
// @Success      200   {object}  response.Response
// @Router       /candidates/{id}/archive [post]
// @Security     BearerAuth
func (h *CandidateHandler) Archive(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req ToggleRequest
	if !bindJSON(c, &req) {
		return
	}
	cand, err := h.pipelineUC.ArchiveCandidate(c.Request.Context(), id, *req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate updated", candidateOut(c, cand))
}

// Activities godoc
// @Summary      Candidate activity log
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Router       /candidates/{id}/activities [get]
// @Security     BearerAuth
func (h *CandidateHandler) Activities(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	activities, err := h.pipelineUC.ListActivities(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Activities retrieved", activities)
}

// Interview godoc
// @Summary      Latest interview for a candidate
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/interview [get]
// @Security     BearerAuth
func (h *CandidateHandler) Interview(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	iv, err := h.interviewUC.GetCandidateInterview(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview retrieved", interviewOut(c, iv))
}
