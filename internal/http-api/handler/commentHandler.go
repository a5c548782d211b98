package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/middleware"
	"titlehub/internal/http-api/permissions"
	"titlehub/internal/http-api/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	comments := rg.Group("/:title_id/reviews/:review_id/comments", middleware.Authorize(permissions.AuthorOrAdminOrModerator))
	comments.GET("", h.List)
	comments.POST("", h.Create)
	comments.GET("/:comment_id", h.Get)
	comments.PATCH("/:comment_id", h.Update)
	comments.PUT("/:comment_id", h.Update)
	comments.DELETE("/:comment_id", h.Delete)
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	comments, err := h.commentService.ListByReview(c.Request.Context(), titleID, reviewID, page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requester := middleware.RequesterFrom(c)
	comment, err := h.commentService.Create(c.Request.Context(), titleID, reviewID, requester.ID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}
	if !h.allowObject(c, titleID, reviewID, commentID) {
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), titleID, reviewID, commentID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}
	if !h.allowObject(c, titleID, reviewID, commentID) {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), titleID, reviewID, commentID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) allowObject(c *gin.Context, titleID, reviewID, commentID int64) bool {
	comment, err := h.commentService.Find(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		h.respondError(c, err)
		return false
	}

	requester := middleware.RequesterFrom(c)
	if decision := permissions.CanTouchObject(requester, c.Request.Method, comment); !decision.Allowed {
		c.JSON(permissions.DenialStatus(requester, c.Request.Method), gin.H{"error": decision.Reason})
		return false
	}
	return true
}

func (h *CommentHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
	case errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process the request"})
	}
}

func commentPath(c *gin.Context) (titleID, reviewID, commentID int64, ok bool) {
	titleID, reviewID, ok = reviewPath(c)
	if !ok {
		return 0, 0, 0, false
	}
	commentID, ok = pathID(c, "comment_id", "invalid comment id")
	if !ok {
		return 0, 0, 0, false
	}
	return titleID, reviewID, commentID, true
}
