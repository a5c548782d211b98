package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/middleware"
	"titlehub/internal/http-api/models"
	"titlehub/internal/http-api/service"
)

// MockCategoryService mocks the CategoryService interface
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, search string, page, pageSize int) (*dto.PaginatedCategoryResponse, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedCategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, in dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// setupCategoryRouter mirrors the server wiring, including the 405 behavior
// for verbs that are not part of the category capability set.
func setupCategoryRouter(authService service.AuthService, categoryService service.CategoryService) *gin.Engine {
	router := setupRouter()
	router.HandleMethodNotAllowed = true
	api := router.Group("/api/v1")
	api.Use(middleware.OptionalAuthenticate(authService))
	NewCategoryHandler(categoryService).RegisterRoutes(api.Group("/categories"))
	return router
}

func TestCategoryList_AnonymousAllowed(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockCategories := new(MockCategoryService)
	router := setupCategoryRouter(mockAuth, mockCategories)

	mockCategories.On("List", mock.Anything, "", 1, 20).
		Return(dto.NewPaginatedCategoryResponse([]dto.CategoryResponse{{Name: "Movies", Slug: "movies"}}, 1, 1, 20), nil)

	req, _ := http.NewRequest("GET", "/api/v1/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryCreate_AnonymousIs401(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockCategories := new(MockCategoryService)
	router := setupCategoryRouter(mockAuth, mockCategories)

	body, _ := json.Marshal(gin.H{"name": "Movies", "slug": "movies"})
	req, _ := http.NewRequest("POST", "/api/v1/categories", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCategoryCreate_PlainUserIs403(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockCategories := new(MockCategoryService)
	router := setupCategoryRouter(mockAuth, mockCategories)

	mockAuth.On("ValidateToken", "user-token").Return(claimsFor("user-1", "reader", models.RoleUser), nil)

	body, _ := json.Marshal(gin.H{"name": "Movies", "slug": "movies"})
	req, _ := http.NewRequest("POST", "/api/v1/categories", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer user-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockCategories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryCreate_AdminAllowed(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockCategories := new(MockCategoryService)
	router := setupCategoryRouter(mockAuth, mockCategories)

	mockAuth.On("ValidateToken", "admin-token").Return(claimsFor("admin-1", "root", models.RoleAdmin), nil)
	mockCategories.On("Create", mock.Anything, dto.CreateCategoryDTO{Name: "Movies", Slug: "movies"}).
		Return(&dto.CategoryResponse{Name: "Movies", Slug: "movies"}, nil)

	body, _ := json.Marshal(gin.H{"name": "Movies", "slug": "movies"})
	req, _ := http.NewRequest("POST", "/api/v1/categories", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockCategories.AssertExpectations(t)
}

func TestCategoryDetailGet_Is405(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockCategories := new(MockCategoryService)
	router := setupCategoryRouter(mockAuth, mockCategories)

	// Only DELETE is registered on the detail path.
	req, _ := http.NewRequest("GET", "/api/v1/categories/movies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCategoryDelete_AdminAllowed(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockCategories := new(MockCategoryService)
	router := setupCategoryRouter(mockAuth, mockCategories)

	mockAuth.On("ValidateToken", "admin-token").Return(claimsFor("admin-1", "root", models.RoleAdmin), nil)
	mockCategories.On("DeleteBySlug", mock.Anything, "movies").Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/v1/categories/movies", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCategoryDelete_UnknownSlugIs404(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockCategories := new(MockCategoryService)
	router := setupCategoryRouter(mockAuth, mockCategories)

	mockAuth.On("ValidateToken", "admin-token").Return(claimsFor("admin-1", "root", models.RoleAdmin), nil)
	mockCategories.On("DeleteBySlug", mock.Anything, "ghost").Return(service.ErrCategoryNotFound)

	req, _ := http.NewRequest("DELETE", "/api/v1/categories/ghost", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
