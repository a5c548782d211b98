package dto

import (
	"time"

	"titlehub/internal/http-api/models"
)

// CreateReviewDTO for posting a review. Author and title are never taken
// from the body; they come from the token and the URL path.
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required,min=1,max=5000"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewDTO is a partial update; nil fields are left untouched.
type UpdateReviewDTO struct {
	Text  *string `json:"text" binding:"omitempty,min=1,max=5000"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        review.ID,
		Text:      review.Text,
		Author:    review.Author.Username,
		Score:     review.Score,
		CreatedAt: review.CreatedAt,
	}
}

// PaginatedReviewResponse for returning paginated reviews
type PaginatedReviewResponse struct {
	Data       []ReviewResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

func NewPaginatedReviewResponse(data []ReviewResponse, total, page, pageSize int) *PaginatedReviewResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedReviewResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
