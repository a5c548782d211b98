package repository

import (
	"context"
	"fmt"

	"titlehub/internal/http-api/models"

	"gorm.io/gorm"
)

// ratingSelect attaches the mean review score to every title row. Computed
// per read so the value can never drift from the reviews table.
const ratingSelect = "titles.*, (SELECT AVG(score) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// TitleFilter narrows title listings. Zero-value fields impose no constraint;
// the set composes with AND.
type TitleFilter struct {
	Name     string // case-insensitive substring match
	Genre    string // exact genre slug
	Category string // exact category slug
	Year     *int   // exact year
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, t *models.Title) error
	Update(ctx context.Context, t *models.Title) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Title{}), filter)

	if err := query.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.
		Select(ratingSelect).
		Preload("Genres").
		Preload("Category").
		Order("titles.id desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}

	return list, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	if err := r.db.WithContext(ctx).
		Select(ratingSelect).
		Preload("Genres").
		Preload("Category").
		First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *titleRepository) Create(ctx context.Context, t *models.Title) error {
	// Genres carry primary keys already, so Create only writes join rows
	// for the association.
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create title: %w", err)
	}
	return nil
}

// Update saves scalar fields and replaces the genre set.
func (r *titleRepository) Update(ctx context.Context, t *models.Title) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	// Save selects every column; CreatedAt stays omitted so a caller passing
	// a partially populated struct cannot zero it.
	if err := tx.Omit("Genres", "Category", "CreatedAt").Save(t).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("update title: %w", err)
	}
	if err := tx.Model(t).Association("Genres").Replace(t.Genres); err != nil {
		tx.Rollback()
		return fmt.Errorf("replace title genres: %w", err)
	}
	return tx.Commit().Error
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titleRepository) applyFilter(query *gorm.DB, filter TitleFilter) *gorm.DB {
	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Genre != "" {
		query = query.
			Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres g ON g.id = tg.genre_id").
			Where("g.slug = ?", filter.Genre)
	}
	if filter.Category != "" {
		query = query.
			Joins("JOIN categories c ON c.id = titles.category_id").
			Where("c.slug = ?", filter.Category)
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}
	return query
}
