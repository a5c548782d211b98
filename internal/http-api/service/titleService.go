package service

import (
	"context"
	"errors"
	"fmt"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/models"
	"titlehub/internal/http-api/repository"
	"titlehub/internal/http-api/validators"

	"gorm.io/gorm"
)

var (
	ErrTitleNotFound   = errors.New("title not found")
	ErrFutureYear      = errors.New("year must not be greater than the current year")
	ErrUnknownGenre    = errors.New("unknown genre slug")
	ErrUnknownCategory = errors.New("unknown category slug")
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.PaginatedTitleResponse, error)
	Get(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, in dto.TitleRequest) (*dto.TitleWriteResponse, error)
	Update(ctx context.Context, id int64, in dto.TitleUpdateRequest) (*dto.TitleWriteResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	genreRepo    repository.GenreRepository
	categoryRepo repository.CategoryRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	genreRepo repository.GenreRepository,
	categoryRepo repository.CategoryRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		genreRepo:    genreRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.PaginatedTitleResponse, error) {
	titles, total, err := s.titleRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		responses = append(responses, *dto.FromModelToTitleResponse(&titles[i]))
	}
	return dto.NewPaginatedTitleResponse(responses, int(total), page, pageSize), nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Create(ctx context.Context, in dto.TitleRequest) (*dto.TitleWriteResponse, error) {
	title, err := s.buildTitle(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}
	return dto.FromModelToTitleWriteResponse(title), nil
}

// Update mutates the stored row in place so fields absent from the payload,
// created_at included, survive the write.
func (s *titleService) Update(ctx context.Context, id int64, in dto.TitleUpdateRequest) (*dto.TitleWriteResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Year != nil {
		if err := validators.YearNotInFuture(*in.Year); err != nil {
			return nil, ErrFutureYear
		}
		title.Year = in.Year
	}
	if in.Description != nil {
		title.Description = in.Description
	}
	if in.Genre != nil {
		genres, err := s.resolveGenres(ctx, *in.Genre)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}
	if in.Category != nil {
		category, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}
	return dto.FromModelToTitleWriteResponse(title), nil
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

// buildTitle validates the payload and resolves slug references into rows.
func (s *titleService) buildTitle(ctx context.Context, in dto.TitleRequest) (*models.Title, error) {
	if in.Year != nil {
		if err := validators.YearNotInFuture(*in.Year); err != nil {
			return nil, ErrFutureYear
		}
	}

	title := &models.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
	}

	if len(in.Genre) > 0 {
		genres, err := s.resolveGenres(ctx, in.Genre)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	if in.Category != nil {
		category, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	return title, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return []models.Genre{}, nil
	}
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownGenre, missingSlugs(slugs, genres))
	}
	return genres, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, slug)
		}
		return nil, err
	}
	return category, nil
}

func missingSlugs(requested []string, found []models.Genre) []string {
	have := make(map[string]bool, len(found))
	for _, g := range found {
		have[g.Slug] = true
	}
	var missing []string
	for _, slug := range requested {
		if !have[slug] {
			missing = append(missing, slug)
		}
	}
	return missing
}
