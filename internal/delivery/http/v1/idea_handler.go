package v1

import (
	"net/http"
	"strconv"

	"go-learnlab-backend/internal/delivery/http/response"
	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type IdeaHandler struct {
	ideaUC domain.IdeaUsecase
}

func NewIdeaHandler(protected *gin.RouterGroup, ideaUC domain.IdeaUsecase) {
	handler := &IdeaHandler{ideaUC: ideaUC}

	ideas := protected.Group("/ideas")
	{
		ideas.POST("", handler.Create)
		ideas.GET("", handler.List)
		ideas.GET("/:id", handler.Get)
		ideas.PUT("/:id", handler.Update)
		ideas.DELETE("/:id", handler.Delete)
		ideas.POST("/:id/reprocess", handler.Reprocess)
		ideas.POST("/:id/summary", handler.Summary)
	}
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.BadRequest("Invalid id parameter")
	}
	return id, nil
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

func pageCount(total int64, limit int) int64 {
	if limit < 1 {
		limit = 10
	}
	return (total + int64(limit) - 1) / int64(limit)
}

type CreateIdeaRequest struct {
	Title         string `json:"title" binding:"required,min=1,max=100"`
	OriginalInput string `json:"originalInput" binding:"required,min=10,max=5000"`
	Context       string `json:"context" binding:"required,oneof=hackathon startup presentation innovation other"`
	Tone          string `json:"tone" binding:"omitempty,oneof=formal persuasive casual professional"`
}

// Create godoc
// @Summary      Submit an idea for refinement
// @Description  Stores the raw idea and runs AI structuring, evaluation and output generation
// @Tags         ideas
// @Accept       json
// @Produce      json
// @Param        idea  body      CreateIdeaRequest  true  "Idea"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /ideas [post]
func (h *IdeaHandler) Create(c *gin.Context) {
	var req CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	idea, err := h.ideaUC.CreateIdea(c.Request.Context(), currentUserID(c), domain.CreateIdeaInput{
		Title:         req.Title,
		OriginalInput: req.OriginalInput,
		Context:       req.Context,
		Tone:          req.Tone,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Idea created", idea)
}

func (h *IdeaHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	filter := domain.IdeaFilter{
		Status:  c.Query("status"),
		Context: c.Query("context"),
	}

	ideas, total, err := h.ideaUC.ListIdeas(c.Request.Context(), currentUserID(c), filter, page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Ideas retrieved", gin.H{
		"ideas": ideas,
		"total": total,
		"page":  page,
		"limit": limit,
		"pages": pageCount(total, limit),
	})
}

func (h *IdeaHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	idea, err := h.ideaUC.GetIdea(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Idea retrieved", idea)
}

type UpdateIdeaRequest struct {
	Title         *string         `json:"title" binding:"omitempty,min=1,max=100"`
	OriginalInput *string         `json:"originalInput" binding:"omitempty,min=10,max=5000"`
	Context       *string         `json:"context" binding:"omitempty,oneof=hackathon startup presentation innovation other"`
	Customization domain.Document `json:"customization"`
	Tags          []string        `json:"tags"`
	IsPublic      *bool           `json:"isPublic"`
}

func (h *IdeaHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	idea, err := h.ideaUC.UpdateIdea(c.Request.Context(), id, currentUserID(c), domain.IdeaUpdate{
		Title:         req.Title,
		OriginalInput: req.OriginalInput,
		Context:       req.Context,
		Customization: req.Customization,
		Tags:          req.Tags,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Idea updated", idea)
}

func (h *IdeaHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.ideaUC.DeleteIdea(c.Request.Context(), id, currentUserID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Idea deleted", nil)
}

type ReprocessIdeaRequest struct {
	Tone    string `json:"tone" binding:"omitempty,oneof=formal persuasive casual professional"`
	Context string `json:"context" binding:"omitempty,oneof=hackathon startup presentation innovation other"`
}

// Reprocess godoc
// @Summary      Re-run AI refinement on an idea
// @Description  Reruns the enrichment chain, optionally with a new tone or context. A failed run is reported through the idea's error status, not an error response.
// @Tags         ideas
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "Idea ID"
// @Param        options  body      ReprocessIdeaRequest  false "Overrides"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /ideas/{id}/reprocess [post]
func (h *IdeaHandler) Reprocess(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req ReprocessIdeaRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
	}

	idea, err := h.ideaUC.ReprocessIdea(c.Request.Context(), id, currentUserID(c), req.Tone, req.Context)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Idea reprocessed", idea)
}

func (h *IdeaHandler) Summary(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	summary, err := h.ideaUC.GenerateSummary(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Summary generated", gin.H{"summary": summary})
}
