package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/email", h.SendEmail)
	rg.POST("/token", h.IssueToken)
}

// SendEmail generates a confirmation code for the address and mails it.
// Delivery problems are reported as message payloads with status 200 so
// clients can surface them without treating the request as failed.
func (h *AuthHandler) SendEmail(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "there must be a valid email address"})
		return
	}

	err := h.authService.RequestCode(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "the confirmation code has been sent"})
	case errors.Is(err, service.ErrTooManyCodes):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many confirmation requests, try again later"})
	case errors.Is(err, service.ErrMailDispatch):
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "failed to send the confirmation email"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process the request"})
	}
}

func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and confirmation_code are required"})
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), req.Email, req.ConfirmationCode)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
	case errors.Is(err, service.ErrNoPendingCode):
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "you must request a confirmation code first"})
	case errors.Is(err, service.ErrInvalidCode):
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "invalid confirmation code"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue the token"})
	}
}
