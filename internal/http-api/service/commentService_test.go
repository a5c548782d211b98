package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/models"
)

func newTestCommentService() (CommentService, *MockCommentRepository, *MockReviewRepository) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	return NewCommentService(commentRepo, reviewRepo), commentRepo, reviewRepo
}

func TestCommentCreate_Success(t *testing.T) {
	svc, commentRepo, reviewRepo := newTestCommentService()

	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(1), int64(10)).Return(&models.Review{ID: 10, TitleID: 1}, nil)

	var created *models.Comment
	commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Comment)
			created.ID = 100
		}).
		Return(nil)
	commentRepo.On("GetByID", mock.Anything, int64(100)).Return(&models.Comment{
		ID:       100,
		ReviewID: 10,
		UserID:   "user-1",
		Text:     "agreed",
		Author:   models.User{Username: "reader"},
	}, nil)

	resp, err := svc.Create(context.Background(), 1, 10, "user-1", dto.CreateCommentDTO{Text: "agreed"})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), created.ReviewID)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, "reader", resp.Author)
}

func TestCommentCreate_ReviewUnderDifferentTitle(t *testing.T) {
	svc, commentRepo, reviewRepo := newTestCommentService()

	// Review 10 belongs to title 1; resolving it through title 2 misses.
	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(2), int64(10)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), 2, 10, "user-1", dto.CreateCommentDTO{Text: "agreed"})

	assert.ErrorIs(t, err, ErrReviewNotFound)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentFind_WrongReviewIsNotFound(t *testing.T) {
	svc, commentRepo, reviewRepo := newTestCommentService()

	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(1), int64(11)).Return(&models.Review{ID: 11, TitleID: 1}, nil)
	// The comment exists but hangs off review 10, not 11.
	commentRepo.On("GetByID", mock.Anything, int64(100)).Return(&models.Comment{ID: 100, ReviewID: 10}, nil)

	_, err := svc.Find(context.Background(), 1, 11, 100)

	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentDelete_Success(t *testing.T) {
	svc, commentRepo, reviewRepo := newTestCommentService()

	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(1), int64(10)).Return(&models.Review{ID: 10, TitleID: 1}, nil)
	commentRepo.On("GetByID", mock.Anything, int64(100)).Return(&models.Comment{ID: 100, ReviewID: 10}, nil)
	commentRepo.On("Delete", mock.Anything, int64(100)).Return(nil)

	err := svc.Delete(context.Background(), 1, 10, 100)

	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}
