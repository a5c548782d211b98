package dto

import (
	"titlehub/internal/http-api/models"
)

// TitleRequest is the write payload: genre and category arrive as slug
// references, validated against existing rows before the write.
type TitleRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

// TitleUpdateRequest is the partial write payload for PATCH: nil fields are
// left untouched on the stored row.
type TitleUpdateRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=100"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Genre       *[]string `json:"genre"`
	Category    *string   `json:"category"`
}

// ToUpdate lifts a full write payload into the partial form, with every
// field treated as provided. Used by PUT, which requires the full payload.
func (r TitleRequest) ToUpdate() TitleUpdateRequest {
	genre := r.Genre
	return TitleUpdateRequest{
		Name:        &r.Name,
		Year:        r.Year,
		Description: r.Description,
		Genre:       &genre,
		Category:    r.Category,
	}
}

// TitleResponse is the read representation: genre and category are nested
// full objects, rating is attached.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        *int              `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// TitleWriteResponse echoes a write back in slug form.
type TitleWriteResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Year        *int     `json:"year"`
	Rating      *float64 `json:"rating"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

func FromModelToTitleResponse(t *models.Title) *TitleResponse {
	genres := make([]GenreResponse, 0, len(t.Genres))
	for _, g := range t.Genres {
		genres = append(genres, GenreFromModel(g))
	}

	var category *CategoryResponse
	if t.Category != nil {
		c := CategoryFromModel(*t.Category)
		category = &c
	}

	return &TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       genres,
		Category:    category,
	}
}

func FromModelToTitleWriteResponse(t *models.Title) *TitleWriteResponse {
	genres := make([]string, 0, len(t.Genres))
	for _, g := range t.Genres {
		genres = append(genres, g.Slug)
	}

	var category *string
	if t.Category != nil {
		category = &t.Category.Slug
	}

	return &TitleWriteResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       genres,
		Category:    category,
	}
}

type PaginatedTitleResponse struct {
	Data       []TitleResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

func NewPaginatedTitleResponse(data []TitleResponse, total, page, pageSize int) *PaginatedTitleResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedTitleResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
