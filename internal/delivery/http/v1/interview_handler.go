package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zordhalo/lontario-YC-sub000/internal/delivery/http/response"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(protected *gin.RouterGroup, interviewUC domain.InterviewUsecase, aiLimit gin.HandlerFunc) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	interviews := protected.Group("/interviews")
	{
		interviews.POST("/schedule", aiLimit, handler.Schedule)
		interviews.GET("/:id", handler.Get)
		interviews.POST("/:id/reschedule", handler.Reschedule)
		interviews.POST("/:id/cancel", handler.Cancel)
		interviews.POST("/:id/review", handler.Review)
	}
}

type RescheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required,future_time"`
	Reason      string    `json:"reason" binding:"max=1000"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

// Schedule godoc
// @Summary      Schedule an AI interview
// @Description  Reuses a fresh pre-generated question set when one exists, otherwise generates questions on demand. Invite delivery failures are returned as warnings.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ScheduleInterviewRequest  true  "Scheduling request"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /interviews/schedule [post]
// @Security     BearerAuth
func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req domain.ScheduleInterviewRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.interviewUC.ScheduleInterview(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.SuccessWithWarnings(c, http.StatusCreated, "Interview scheduled", gin.H{
		"interview":           interviewOut(c, result.Interview),
		"interview_link":      result.InterviewLink,
		"questions_generated": result.QuestionsGenerated,
	}, result.Warnings)
}

// Get godoc
// @Summary      Get an interview
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	iv, err := h.interviewUC.GetInterview(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview retrieved", interviewOut(c, iv))
}

// Reschedule godoc
// @Summary      Move an interview to a new time
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Interview ID"
// @Param        body  body      RescheduleRequest  true  "New time"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /interviews/{id}/reschedule [post]
// @Security     BearerAuth
func (h *InterviewHandler) Reschedule(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req RescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.interviewUC.RescheduleInterview(c.Request.Context(), id, req.ScheduledAt, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWithWarnings(c, http.StatusOK, "Interview rescheduled", interviewOut(c, result.Interview), result.Warnings)
}

// Cancel godoc
// @Summary      Cancel an interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id    path      string         true   "Interview ID"
// @Param        body  body      CancelRequest  false  "Reason"
// @Success      200   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /interviews/{id}/cancel [post]
// @Security     BearerAuth
func (h *InterviewHandler) Cancel(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req CancelRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	result, err := h.interviewUC.CancelInterview(c.Request.Context(), id, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWithWarnings(c, http.StatusOK, "Interview cancelled", interviewOut(c, result.Interview), result.Warnings)
}

// Review godoc
// @Summary      Mark a completed interview as reviewed
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /interviews/{id}/review [post]
// @Security     BearerAuth
func (h *InterviewHandler) Review(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	iv, err := h.interviewUC.MarkReviewed(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview reviewed", interviewOut(c, iv))
}
