package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zordhalo/lontario-YC-sub000/internal/delivery/http/response"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.POST("", handler.Create)
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.Get)
		jobs.PATCH("/:id", handler.Update)
		jobs.POST("/:id/archive", handler.Archive)
		jobs.POST("/:id/unarchive", handler.Unarchive)
		jobs.GET("/:id/pipeline/export", handler.ExportPipeline)
	}
}

// Create godoc
// @Summary      Create a job
// @Description  Post a new job. Status defaults to draft and level to mid.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.CreateJobInput  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req domain.CreateJobInput
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", jobOut(c, job))
}

// List godoc
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        status     query     string  false  "draft, active, paused or closed"
// @Param        archived   query     bool    false  "Archived filter"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	filter := domain.JobFilter{
		Status:   c.Query("status"),
		Archived: queryBool(c, "archived"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}

	result, err := h.jobUC.ListJobs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	if camelCase(c) {
		views := make([]domain.JobView, 0, len(result.Data))
		for i := range result.Data {
			views = append(views, domain.NormalizeJob(&result.Data[i]))
		}
		response.Success(c, http.StatusOK, "Jobs retrieved", domain.PaginatedResult[domain.JobView]{
			Data: views, Total: result.Total, Page: result.Page, PageSize: result.PageSize, TotalPages: result.TotalPages,
		})
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", result)
}

// Get godoc
// @Summary      Get a job
// @Description  Includes applicant_count and active_candidate_count.
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved", jobOut(c, job))
}

// Update godoc
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string            true  "Job ID"
// @Param        job  body      domain.JobUpdate  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [patch]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req domain.JobUpdate
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", jobOut(c, job))
}

// Archive godoc
// @Summary      Archive a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Router       /jobs/{id}/archive [post]
// @Security     BearerAuth
func (h *JobHandler) Archive(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	job, err := h.jobUC.ArchiveJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job archived", jobOut(c, job))
}

// Unarchive godoc
// @Summary      Restore an archived job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Router       /jobs/{id}/unarchive [post]
// @Security     BearerAuth
func (h *JobHandler) Unarchive(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	job, err := h.jobUC.UnarchiveJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job restored", jobOut(c, job))
}

// ExportPipeline godoc
// @Summary      Export the job pipeline as xlsx
// @Description  Streams the workbook, or with store=true uploads it and returns a 15 minute download link.
// @Tags         jobs
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id     path   string  true   "Job ID"
// @Param        store  query  bool    false  "Upload to export storage instead of streaming"
// @Success      200
// @Failure      404  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /jobs/{id}/pipeline/export [get]
// @Security     BearerAuth
func (h *JobHandler) ExportPipeline(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if store := queryBool(c, "store"); store != nil && *store {
		link, err := h.jobUC.StorePipelineExport(c.Request.Context(), id)
		if err != nil {
			c.Error(err)
			return
		}
		response.Success(c, http.StatusOK, "Export uploaded", link)
		return
	}

	data, filename, err := h.jobUC.ExportPipeline(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
