package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"titlehub/internal/http-api/service"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RequestCode(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) IssueToken(ctx context.Context, email, code string) (string, error) {
	args := m.Called(ctx, email, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSendEmail_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/auth/email", handler.SendEmail)

	mockAuthService.On("RequestCode", mock.Anything, "reader@example.com").Return(nil)

	w := postJSON(router, "/auth/email", gin.H{"email": "reader@example.com"})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "the confirmation code has been sent", response["message"])
	mockAuthService.AssertExpectations(t)
}

func TestSendEmail_MissingEmailStillReturns200(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/auth/email", handler.SendEmail)

	w := postJSON(router, "/auth/email", gin.H{})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response["message"], "email address")
	mockAuthService.AssertNotCalled(t, "RequestCode", mock.Anything, mock.Anything)
}

func TestSendEmail_MailFailureReturns200Message(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/auth/email", handler.SendEmail)

	mockAuthService.On("RequestCode", mock.Anything, "reader@example.com").
		Return(service.ErrMailDispatch)

	w := postJSON(router, "/auth/email", gin.H{"email": "reader@example.com"})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "failed to send the confirmation email", response["message"])
}

func TestSendEmail_Throttled(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/auth/email", handler.SendEmail)

	mockAuthService.On("RequestCode", mock.Anything, "reader@example.com").
		Return(service.ErrTooManyCodes)

	w := postJSON(router, "/auth/email", gin.H{"email": "reader@example.com"})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestIssueToken_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/auth/token", handler.IssueToken)

	mockAuthService.On("IssueToken", mock.Anything, "reader@example.com", "code-1").
		Return("signed-token", nil)

	w := postJSON(router, "/auth/token", gin.H{
		"email":             "reader@example.com",
		"confirmation_code": "code-1",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "signed-token", response["token"])
}

func TestIssueToken_InvalidCodeReturns200Message(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/auth/token", handler.IssueToken)

	mockAuthService.On("IssueToken", mock.Anything, "reader@example.com", "wrong").
		Return("", service.ErrInvalidCode)

	w := postJSON(router, "/auth/token", gin.H{
		"email":             "reader@example.com",
		"confirmation_code": "wrong",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "invalid confirmation code", response["message"])
}

func TestIssueToken_MissingBodyIs400(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/auth/token", handler.IssueToken)

	w := postJSON(router, "/auth/token", gin.H{"email": "reader@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueToken_InternalError(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/auth/token", handler.IssueToken)

	mockAuthService.On("IssueToken", mock.Anything, "reader@example.com", "code-1").
		Return("", errors.New("db down"))

	w := postJSON(router, "/auth/token", gin.H{
		"email":             "reader@example.com",
		"confirmation_code": "code-1",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
