package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/middleware"
	"titlehub/internal/http-api/permissions"
	"titlehub/internal/http-api/repository"
	"titlehub/internal/http-api/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes nests reviews under the titles group. The group
// middleware covers the collection rules; Update and Delete additionally
// check ownership against the loaded review.
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/:title_id/reviews", middleware.Authorize(permissions.AuthorOrAdminOrModerator))
	reviews.GET("", h.List)
	reviews.POST("", h.Create)
	reviews.GET("/:review_id", h.Get)
	reviews.PATCH("/:review_id", h.Update)
	reviews.PUT("/:review_id", h.Update)
	reviews.DELETE("/:review_id", h.Delete)
}

func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := titleID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	reviews, err := h.reviewService.ListByTitle(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := titleID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requester := middleware.RequesterFrom(c)
	review, err := h.reviewService.Create(c.Request.Context(), titleID, requester.ID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}
	if !h.allowObject(c, titleID, reviewID) {
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), titleID, reviewID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}
	if !h.allowObject(c, titleID, reviewID) {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), titleID, reviewID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// allowObject loads the review and applies the ownership check. It writes
// the error response itself and reports whether the handler may proceed.
func (h *ReviewHandler) allowObject(c *gin.Context, titleID, reviewID int64) bool {
	review, err := h.reviewService.Find(c.Request.Context(), titleID, reviewID)
	if err != nil {
		h.respondError(c, err)
		return false
	}

	requester := middleware.RequesterFrom(c)
	if decision := permissions.CanTouchObject(requester, c.Request.Method, review); !decision.Allowed {
		c.JSON(permissions.DenialStatus(requester, c.Request.Method), gin.H{"error": decision.Reason})
		return false
	}
	return true
}

func (h *ReviewHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTitleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
	case errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
	case errors.Is(err, repository.ErrDuplicateReview):
		c.JSON(http.StatusBadRequest, gin.H{"error": "you have already reviewed this title"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process the request"})
	}
}

func reviewPath(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, ok = pathID(c, "title_id", "invalid title id")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = pathID(c, "review_id", "invalid review id")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func pathID(c *gin.Context, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
		return 0, false
	}
	return id, true
}
