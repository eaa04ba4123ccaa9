package v1

import (
	"net/http"

	"go-learnlab-backend/internal/delivery/http/response"
	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(public *gin.RouterGroup, protected *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	// Shared sessions are browsable without an account.
	public.GET("/interviews/public", handler.ListPublic)

	interviews := protected.Group("/interviews")
	{
		interviews.POST("", handler.Create)
		interviews.GET("", handler.List)
		interviews.GET("/:id", handler.Get)
		interviews.PUT("/:id", handler.Update)
		interviews.DELETE("/:id", handler.Delete)
		interviews.POST("/:id/start", handler.Start)
		interviews.POST("/:id/responses", handler.SubmitResponse)
		interviews.POST("/:id/complete", handler.Complete)
		interviews.GET("/:id/feedback", handler.Feedback)
	}
}

type InterviewConfigRequest struct {
	Role            string   `json:"role" binding:"required,min=2,max=100"`
	Company         string   `json:"company" binding:"omitempty,max=100"`
	ExperienceLevel string   `json:"experienceLevel" binding:"omitempty,oneof=entry mid senior executive"`
	Duration        int      `json:"duration" binding:"omitempty,min=5,max=120"`
	QuestionTypes   []string `json:"questionTypes"`
	Difficulty      string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

func (r InterviewConfigRequest) toDomain() domain.InterviewConfig {
	return domain.InterviewConfig{
		Role:            r.Role,
		Company:         r.Company,
		ExperienceLevel: r.ExperienceLevel,
		Duration:        r.Duration,
		QuestionTypes:   r.QuestionTypes,
		Difficulty:      r.Difficulty,
	}
}

type CreateInterviewRequest struct {
	Title         string                 `json:"title" binding:"required,min=1,max=100"`
	Mode          string                 `json:"mode" binding:"required,oneof=ai-interviewer scenario-based custom"`
	Configuration InterviewConfigRequest `json:"configuration" binding:"required"`
	Tags          []string               `json:"tags"`
	IsPublic      bool                   `json:"isPublic"`
}

// Create godoc
// @Summary      Create an interview session
// @Description  Creates a draft session; questions are generated when the session starts
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        interview  body      CreateInterviewRequest  true  "Interview setup"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /interviews [post]
func (h *InterviewHandler) Create(c *gin.Context) {
	var req CreateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	interview, err := h.interviewUC.CreateInterview(c.Request.Context(), currentUserID(c), domain.CreateInterviewInput{
		Title:         req.Title,
		Mode:          req.Mode,
		Configuration: req.Configuration.toDomain(),
		Tags:          req.Tags,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Interview created", interview)
}

func (h *InterviewHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	filter := domain.InterviewFilter{
		Status: c.Query("status"),
		Mode:   c.Query("mode"),
	}

	interviews, total, err := h.interviewUC.ListInterviews(c.Request.Context(), currentUserID(c), filter, page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interviews retrieved", gin.H{
		"interviews": interviews,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"pages":      pageCount(total, limit),
	})
}

func (h *InterviewHandler) ListPublic(c *gin.Context) {
	page, limit := pagination(c)

	interviews, total, err := h.interviewUC.ListPublicInterviews(c.Request.Context(), c.Query("mode"), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Public interviews retrieved", gin.H{
		"interviews": interviews,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"pages":      pageCount(total, limit),
	})
}

func (h *InterviewHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	interview, err := h.interviewUC.GetInterview(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview retrieved", interview)
}

type UpdateInterviewRequest struct {
	Title         *string                 `json:"title" binding:"omitempty,min=1,max=100"`
	Configuration *InterviewConfigRequest `json:"configuration"`
	Tags          []string                `json:"tags"`
	IsPublic      *bool                   `json:"isPublic"`
}

func (h *InterviewHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	update := domain.InterviewUpdate{
		Title:    req.Title,
		Tags:     req.Tags,
		IsPublic: req.IsPublic,
	}
	if req.Configuration != nil {
		cfg := req.Configuration.toDomain()
		update.Configuration = &cfg
	}

	interview, err := h.interviewUC.UpdateInterview(c.Request.Context(), id, currentUserID(c), update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview updated", interview)
}

func (h *InterviewHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.interviewUC.DeleteInterview(c.Request.Context(), id, currentUserID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview deleted", nil)
}

// Start godoc
// @Summary      Start an interview session
// @Description  Generates the question set and moves the draft to in-progress. Starting a non-draft session is rejected.
// @Tags         interviews
// @Produce      json
// @Param        id  path  int  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id}/start [post]
func (h *InterviewHandler) Start(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	interview, err := h.interviewUC.StartInterview(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview started", interview)
}

type SubmitResponseRequest struct {
	QuestionID   string `json:"questionId" binding:"required"`
	AnswerText   string `json:"answerText" binding:"omitempty,max=10000"`
	ResponseTime int    `json:"responseTime" binding:"omitempty,min=0"`
	AudioURL     string `json:"audioUrl" binding:"omitempty,url"`
}

func (h *InterviewHandler) SubmitResponse(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	resp, err := h.interviewUC.SubmitResponse(c.Request.Context(), id, currentUserID(c), domain.InterviewResponse{
		QuestionID:   req.QuestionID,
		AnswerText:   req.AnswerText,
		ResponseTime: req.ResponseTime,
		AudioURL:     req.AudioURL,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Response recorded", resp)
}

// Complete godoc
// @Summary      Complete an interview session
// @Description  Scores the session, generates feedback and updates the user's running stats
// @Tags         interviews
// @Produce      json
// @Param        id  path  int  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id}/complete [post]
func (h *InterviewHandler) Complete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	interview, err := h.interviewUC.CompleteInterview(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview completed", interview)
}

func (h *InterviewHandler) Feedback(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	interview, err := h.interviewUC.GetFeedback(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Feedback retrieved", gin.H{
		"score":    interview.Score,
		"feedback": interview.Feedback,
	})
}
