package middleware

import (
	"net/http"
	"strings"

	"titlehub/internal/http-api/permissions"
	"titlehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const requesterKey = "requester"

// Authenticate requires a valid Bearer token and stores the resolved
// requester in the context.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := requesterFromHeader(c, authService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing authorization header"})
			c.Abort()
			return
		}
		c.Set(requesterKey, requester)
		c.Next()
	}
}

// OptionalAuthenticate resolves the Bearer token when present and falls back
// to an anonymous requester otherwise. Read endpoints that allow anonymous
// access hang off groups using this middleware.
func OptionalAuthenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if requester, ok := requesterFromHeader(c, authService); ok {
			c.Set(requesterKey, requester)
		} else {
			c.Set(requesterKey, permissions.Requester{})
		}
		c.Next()
	}
}

func requesterFromHeader(c *gin.Context, authService service.AuthService) (permissions.Requester, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return permissions.Requester{}, false
	}

	// Expected format: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return permissions.Requester{}, false
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		return permissions.Requester{}, false
	}

	return permissions.Requester{
		ID:            claims.UserID,
		Username:      claims.Username,
		Role:          claims.Role,
		Authenticated: true,
	}, true
}

// RequesterFrom returns the requester stored by the auth middlewares; the
// zero value means anonymous.
func RequesterFrom(c *gin.Context) permissions.Requester {
	value, exists := c.Get(requesterKey)
	if !exists {
		return permissions.Requester{}
	}
	requester, ok := value.(permissions.Requester)
	if !ok {
		return permissions.Requester{}
	}
	return requester
}

// Authorize evaluates the collection-level predicate chain for the request
// method. Denials map to 401 for anonymous unsafe requests, 403 otherwise.
func Authorize(preds ...permissions.Predicate) gin.HandlerFunc {
	chain := permissions.Chain(preds...)
	return func(c *gin.Context) {
		requester := RequesterFrom(c)
		if d := chain(requester, c.Request.Method); !d.Allowed {
			c.JSON(permissions.DenialStatus(requester, c.Request.Method), gin.H{"error": d.Reason})
			c.Abort()
			return
		}
		c.Next()
	}
}
