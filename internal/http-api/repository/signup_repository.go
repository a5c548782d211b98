package repository

import (
	"context"

	"titlehub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SignupRepository interface {
	// Upsert writes the pending record, replacing any prior code for the email.
	Upsert(ctx context.Context, signup *models.PendingSignup) error
	FindByEmail(ctx context.Context, email string) (*models.PendingSignup, error)
	Delete(ctx context.Context, email string) error
}

type signupRepository struct {
	db *gorm.DB
}

func NewSignupRepository(db *gorm.DB) SignupRepository {
	return &signupRepository{db: db}
}

func (r *signupRepository) Upsert(ctx context.Context, signup *models.PendingSignup) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"confirmation_code", "created_at"}),
	}).Create(signup).Error
}

func (r *signupRepository) FindByEmail(ctx context.Context, email string) (*models.PendingSignup, error) {
	var signup models.PendingSignup
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&signup).Error; err != nil {
		return nil, err
	}
	return &signup, nil
}

func (r *signupRepository) Delete(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&models.PendingSignup{}).Error
}
